// internal/site/models.go
package site

import (
	"html/template"

	"github.com/OgnjenAdzic28/portfolio/internal/blog"
	"github.com/OgnjenAdzic28/portfolio/internal/config"
)

// Meta is the head metadata of a page.
type Meta struct {
	Title         string
	Description   string
	Canonical     string
	Keywords      []string
	Author        string
	Type          string // OpenGraph type, "website" or "article"
	Image         string
	PublishedTime string
	Tags          []string
}

// PageData is the struct passed to templates.
type PageData struct {
	Site     config.SiteConfig
	Meta     Meta
	BaseHref string

	// Post pages.
	Post    *blog.Post
	Content template.HTML

	// Home and blog index.
	Latest   []blog.Post
	Featured []blog.Post
	Layout   Layout
}
