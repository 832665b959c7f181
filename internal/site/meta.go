package site

import (
	"net/url"
	"time"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
	"github.com/OgnjenAdzic28/portfolio/internal/config"
)

// PostMeta builds the head metadata of a post page.
func PostMeta(cfg config.SiteConfig, p *blog.Post) Meta {
	description := p.Excerpt
	if description == "" {
		description = "Read this blog post by " + cfg.Title
	}
	keywords := make([]string, 0, len(p.Tags)+len(cfg.Keywords))
	keywords = append(keywords, p.Tags...)
	keywords = append(keywords, cfg.Keywords...)

	m := Meta{
		Title:         p.Title + " - " + cfg.Title,
		Description:   description,
		Canonical:     cfg.BaseURL + "/blog/" + url.PathEscape(p.Slug),
		Keywords:      keywords,
		Author:        p.Author.Name,
		Type:          "article",
		PublishedTime: p.PublishedDate.Format(time.DateOnly),
		Tags:          p.Tags,
	}
	if p.CoverImage != nil {
		m.Image = *p.CoverImage
	}
	return m
}

// NotFoundMeta is used when a post cannot be resolved.
func NotFoundMeta(cfg config.SiteConfig) Meta {
	return Meta{
		Title:       "Post Not Found - " + cfg.Title,
		Description: "The requested blog post could not be found.",
		Type:        "website",
	}
}

// PageMeta describes one of the fixed pages. An empty path is the home page.
func PageMeta(cfg config.SiteConfig, title, path string) Meta {
	return Meta{
		Title:       cfg.Title + " - " + title,
		Description: cfg.Description,
		Canonical:   cfg.BaseURL + "/" + path,
		Keywords:    cfg.Keywords,
		Author:      cfg.Author,
		Type:        "website",
	}
}
