package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OgnjenAdzic28/portfolio/internal/scaffold"
)

func newCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Scaffold a site or a post",
	}

	siteCmd := &cobra.Command{
		Use:         "site <dir>",
		Short:       "Create a new site in dir",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"config": "none"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return scaffold.CreateNewSite(args[0])
		},
	}

	postCmd := &cobra.Command{
		Use:   "post <title>",
		Short: "Create a post from the site's archetype",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := scaffold.CreateNewPost(".", siteCfg, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.AddCommand(siteCmd, postCmd)
	return cmd
}
