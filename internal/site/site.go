// internal/site/site.go
package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
	"github.com/OgnjenAdzic28/portfolio/internal/config"
	"github.com/OgnjenAdzic28/portfolio/internal/render"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// homeLatest is how many recent posts the home page lists.
const homeLatest = 4

// Page template names.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageIndex    = "blog"
	PagePost     = "post"
	PageNotFound = "notfound"
)

// Static holds the stylesheet and the copy button script, rooted so that
// "style.css" is at the top.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"join":       strings.Join,
	"pathEscape": url.PathEscape,
	"initial": func(name string) string {
		r, _ := utf8.DecodeRuneInString(name)
		if r == utf8.RuneError {
			return ""
		}
		return string(unicode.ToUpper(r))
	},
	"cardOf": cardOf,
}

type cardData struct {
	BaseHref string
	Post     *blog.Post
}

// cardOf pairs a post with the page it is listed on.
func cardOf(page PageData, post any) (cardData, error) {
	switch p := post.(type) {
	case blog.Post:
		return cardData{BaseHref: page.BaseHref, Post: &p}, nil
	case *blog.Post:
		if p != nil {
			return cardData{BaseHref: page.BaseHref, Post: p}, nil
		}
	}
	return cardData{}, fmt.Errorf("cannot list %T as a post card", post)
}

// Site renders the portfolio pages from the post collection.
type Site struct {
	cfg      config.SiteConfig
	posts    *blog.Resolver
	pipeline *render.Pipeline
	tmpl     *template.Template
	logger   zerolog.Logger
}

func New(cfg config.SiteConfig, posts *blog.Resolver, pipeline *render.Pipeline) (*Site, error) {
	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}
	return &Site{
		cfg:      cfg,
		posts:    posts,
		pipeline: pipeline,
		tmpl:     tmpl,
		logger:   log.With().Str("component", "site").Logger(),
	}, nil
}

func (s *Site) Config() config.SiteConfig { return s.cfg }

func (s *Site) Posts() *blog.Resolver { return s.posts }

// Strategy is the render strategy used for post bodies.
func (s *Site) Strategy() render.Strategy {
	if s.cfg.LegacyHTML {
		return render.StrategyPreRendered
	}
	return render.StrategyMarkdown
}

// PostHTML loads and renders the body of p.
func (s *Site) PostHTML(ctx context.Context, p *blog.Post) (template.HTML, error) {
	body, err := p.Content(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load content of %s: %w", p.Slug, err)
	}
	out, err := s.pipeline.Render(body, s.Strategy())
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", p.Slug, err)
	}
	return out, nil
}

func (s *Site) Home(ctx context.Context, w io.Writer, baseHref string) error {
	all, err := s.posts.AllPosts(ctx)
	if err != nil {
		return err
	}
	featured, err := s.posts.FeaturedPosts(ctx)
	if err != nil {
		return err
	}
	data := s.page(PageMeta(s.cfg, "Portfolio", ""), baseHref)
	data.Latest = all[:min(homeLatest, len(all))]
	data.Featured = featured
	return s.execute(w, PageHome, data)
}

func (s *Site) About(w io.Writer, baseHref string) error {
	return s.execute(w, PageAbout, s.page(PageMeta(s.cfg, "About", "about"), baseHref))
}

func (s *Site) Index(ctx context.Context, w io.Writer, baseHref string) error {
	all, err := s.posts.AllPosts(ctx)
	if err != nil {
		return err
	}
	data := s.page(PageMeta(s.cfg, "Blog", "blog"), baseHref)
	data.Layout = IndexLayout(all)
	return s.execute(w, PageIndex, data)
}

func (s *Site) Post(ctx context.Context, w io.Writer, p *blog.Post, baseHref string) error {
	content, err := s.PostHTML(ctx, p)
	if err != nil {
		return err
	}
	data := s.page(PostMeta(s.cfg, p), baseHref)
	data.Post = p
	data.Content = content
	return s.execute(w, PagePost, data)
}

func (s *Site) NotFound(w io.Writer, baseHref string) error {
	return s.execute(w, PageNotFound, s.page(NotFoundMeta(s.cfg), baseHref))
}

func (s *Site) page(meta Meta, baseHref string) PageData {
	return PageData{Site: s.cfg, Meta: meta, BaseHref: baseHref}
}

// execute renders into memory first so a failing template writes nothing.
func (s *Site) execute(w io.Writer, name string, data PageData) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("template execution failed")
		return fmt.Errorf("failed to render page %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
