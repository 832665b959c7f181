package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OgnjenAdzic28/portfolio/internal/builder"
)

func buildCmd() *cobra.Command {
	var (
		out   string
		clean bool
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Export the site as static files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = siteCfg.OutputDir
			}
			a, err := newApp(siteCfg)
			if err != nil {
				return err
			}
			pageCount, err := builder.BuildSite(cmd.Context(), out, a.pages, builder.BuildOptions{CleanDestination: clean})
			if err != nil {
				return err
			}
			log.Info().Int("pages", pageCount).Str("dir", out).Msg("Build successful")
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output directory (default from site.yaml)")
	cmd.Flags().BoolVar(&clean, "clean", false, "empty the output directory first")
	return cmd
}
