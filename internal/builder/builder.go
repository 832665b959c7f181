// internal/builder/builder.go
package builder

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/OgnjenAdzic28/portfolio/internal/site"
	"github.com/OgnjenAdzic28/portfolio/internal/util"
)

// BuildSite exports every page of pages under outputDir, followed by the
// static assets under outputDir/static. It returns the number of pages written.
func BuildSite(ctx context.Context, outputDir string, pages *site.Site, opts BuildOptions) (int, error) {
	logger := log.With().Str("component", "builder").Logger()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}
	if opts.CleanDestination {
		logger.Info().Str("dir", outputDir).Msg("cleaning destination directory")
		if err := cleanDir(outputDir); err != nil {
			return 0, err
		}
	}

	list, err := sitePages(ctx, pages)
	if err != nil {
		return 0, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var written atomic.Int64
	for _, p := range list {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := writePage(filepath.Join(outputDir, filepath.FromSlash(p.relPath)), p); err != nil {
				return fmt.Errorf("failed to render page %s: %w", p.relPath, err)
			}
			logger.Debug().Str("page", p.relPath).Msg("page written")
			written.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(written.Load()), err
	}

	if err := copyStaticAssets(site.Static(), filepath.Join(outputDir, "static")); err != nil {
		return int(written.Load()), fmt.Errorf("failed to copy static assets: %w", err)
	}
	return int(written.Load()), nil
}

// sitePages lists the fixed pages and one page per published post.
func sitePages(ctx context.Context, pages *site.Site) ([]page, error) {
	posts, err := pages.Posts().AllPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	list := []page{
		{relPath: "index.html", render: func(w io.Writer, base string) error { return pages.Home(ctx, w, base) }},
		{relPath: "about/index.html", render: func(w io.Writer, base string) error { return pages.About(w, base) }},
		{relPath: "blog/index.html", render: func(w io.Writer, base string) error { return pages.Index(ctx, w, base) }},
		{relPath: "404.html", render: func(w io.Writer, base string) error { return pages.NotFound(w, base) }},
	}
	for i := range posts {
		p := &posts[i]
		if !fs.ValidPath(p.Slug) || path.Base(p.Slug) != p.Slug {
			log.Warn().Str("slug", p.Slug).Msg("skipping post whose slug is not a valid directory name")
			continue
		}
		list = append(list, page{
			relPath: path.Join("blog", p.Slug, "index.html"),
			render:  func(w io.Writer, base string) error { return pages.Post(ctx, w, p, base) },
		})
	}
	return list, nil
}

// writePage renders p into outPath.
func writePage(outPath string, p page) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(outFile)
	if err := p.render(w, util.ComputeBaseHref(p.relPath)); err != nil {
		outFile.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

func cleanDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// copyStaticAssets copies every file of assets into outputDir.
func copyStaticAssets(assets fs.FS, outputDir string) error {
	return fs.WalkDir(assets, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		dest := filepath.Join(outputDir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return err
		}
		src, err := assets.Open(p)
		if err != nil {
			return err
		}
		defer src.Close()
		dst, err := os.Create(dest)
		if err != nil {
			return err
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			return err
		}
		return dst.Close()
	})
}
