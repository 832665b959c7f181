package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/OgnjenAdzic28/portfolio/internal/config"
	"github.com/OgnjenAdzic28/portfolio/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		port int
		dev  bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and its JSON API",
		Long: `serve renders every request from the files under the content directory.
With --dev, pages reload in the browser whenever a post changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				siteCfg.Port = port
			}
			a, err := newApp(siteCfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)

			var opts []server.Option
			if dev {
				hub := server.NewHub()
				defer hub.Close()
				opts = append(opts, server.WithLiveReload(hub))

				configPath := cfgFile
				if configPath == "" {
					configPath = config.DefaultConfigFile
				}
				watcher, err := server.NewWatcher(siteCfg.ContentDir, configPath)
				if err != nil {
					return err
				}
				g.Go(func() error {
					return watcher.Run(ctx, func(string) { hub.Reload() })
				})
			}

			srv := server.NewServer(a.pages, siteCfg.Port, opts...)
			g.Go(func() error {
				return srv.Run(ctx)
			})
			log.Info().Bool("dev", dev).Msg("Press Ctrl+C to stop")
			return g.Wait()
		},
	}
	cmd.Flags().IntVar(&port, "port", 1313, "port to listen on (default from site.yaml)")
	cmd.Flags().BoolVar(&dev, "dev", false, "watch content and live-reload open pages")
	return cmd
}
