package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OgnjenAdzic28/portfolio/internal/clipboard"
)

func copyCmd() *cobra.Command {
	var block int
	cmd := &cobra.Command{
		Use:   "copy <slug>",
		Short: "Copy a code block of a post to the system clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(siteCfg)
			if err != nil {
				return err
			}
			p, err := a.posts.PostBySlug(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			body, err := p.Content(cmd.Context())
			if err != nil {
				return err
			}
			blocks := a.pipeline.CodeBlocks(body)
			if block < 1 || block > len(blocks) {
				return fmt.Errorf("post %s has %d code blocks, cannot copy block %d", p.Slug, len(blocks), block)
			}

			control := clipboard.NewControl(blocks[block-1], clipboard.System{},
				clipboard.WithLogger(log.With().Str("component", "clipboard").Logger()),
			)
			defer control.Close()
			if !control.Copy() {
				return fmt.Errorf("could not copy block %d of %s", block, p.Slug)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied! (block %d of %s, %d bytes)\n", block, p.Slug, len(control.Text()))
			return nil
		},
	}
	cmd.Flags().IntVar(&block, "block", 1, "1-based index of the code block")
	return cmd
}
