package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
)

func postsCmd() *cobra.Command {
	var featured bool
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List published posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(siteCfg)
			if err != nil {
				return err
			}
			var posts []blog.Post
			if featured {
				posts, err = a.posts.FeaturedPosts(cmd.Context())
			} else {
				posts, err = a.posts.AllPosts(cmd.Context())
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tDATE\tTITLE\tTAGS")
			for i := range posts {
				p := &posts[i]
				title := p.Title
				if p.Featured {
					title += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Date(), title, strings.Join(p.Tags, ","))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&featured, "featured", false, "only featured posts")
	return cmd
}
