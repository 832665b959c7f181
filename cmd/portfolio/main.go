// cmd/portfolio/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
	"github.com/OgnjenAdzic28/portfolio/internal/config"
	"github.com/OgnjenAdzic28/portfolio/internal/content"
	"github.com/OgnjenAdzic28/portfolio/internal/render"
	"github.com/OgnjenAdzic28/portfolio/internal/site"
)

var (
	cfgFile string
	debug   bool
	siteCfg config.SiteConfig

	shutdownTelemetry = func(context.Context) error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve and export the portfolio site and blog",
	Long: `portfolio renders the posts under content/posts into the home, about,
blog index and post pages. It serves them with a JSON API, exports them as
static files and scaffolds new sites and posts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./site.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd(), buildCmd(), postsCmd(), copyCmd(), newCmd())
}

func main() {
	err := rootCmd.Execute()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if serr := shutdownTelemetry(ctx); serr != nil {
		log.Warn().Err(serr).Msg("telemetry shutdown failed")
	}
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Operation failed:", err)
		os.Exit(1)
	}
}

func initialize(cmd *cobra.Command) error {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()

	// --debug also exports the resolver spans and counters to stderr.
	if debug {
		shutdown, err := setupTelemetry(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to set up telemetry: %w", err)
		}
		shutdownTelemetry = shutdown
	}

	// "new site" runs before any site.yaml exists.
	if cmd.Annotations["config"] == "none" {
		setLevel("info")
		return nil
	}

	cfg, err := config.LoadSiteConfig(cfgFile)
	if err != nil {
		return err
	}
	siteCfg = cfg
	setLevel(cfg.LogLevel)
	return nil
}

func setLevel(name string) {
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
}

// app is the wiring shared by the commands.
type app struct {
	posts    *blog.Resolver
	pipeline *render.Pipeline
	pages    *site.Site
}

func newApp(cfg config.SiteConfig) (*app, error) {
	// Rooted at the posts directory itself so contentDir may be absolute or
	// point outside the working directory.
	fsys := os.DirFS(cfg.PostsPath("."))
	store := content.NewFileStore(fsys, ".", cfg.PostExt)
	posts := blog.NewResolver(store,
		blog.WithFS(fsys, ".", cfg.PostExt),
		blog.WithDefaultAuthor(cfg.Author),
		blog.WithLogger(log.With().Str("component", "blog").Logger()),
	)
	pipeline := render.New(
		render.WithUnsafe(cfg.Unsafe),
		render.WithLogger(log.With().Str("component", "render").Logger()),
	)
	pages, err := site.New(cfg, posts, pipeline)
	if err != nil {
		return nil, err
	}
	return &app{posts: posts, pipeline: pipeline, pages: pages}, nil
}
