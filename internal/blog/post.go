// internal/blog/post.go
package blog

import (
	"context"
	"errors"
	"time"

	"github.com/OgnjenAdzic28/portfolio/internal/content"
)

// ErrNotFound is returned when no published post answers to a slug.
var ErrNotFound = errors.New("post not found")

const (
	DefaultReadTime = 5
	DefaultAuthor   = "ognjen"
)

type Author struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

// Post is a published blog post with defaults filled in.
type Post struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"publishedDate"`
	Excerpt       string    `json:"excerpt"`
	ReadTime      int       `json:"readTime"`
	Featured      bool      `json:"featured"`
	Tags          []string  `json:"tags"`
	CoverImage    *string   `json:"coverImage"`
	Author        Author    `json:"author"`

	body func(ctx context.Context) (string, error)
}

// Content loads the post body with its front matter removed. It is
// evaluated on every call; nothing is cached.
func (p *Post) Content(ctx context.Context) (string, error) {
	if p.body == nil {
		return "", nil
	}
	return p.body(ctx)
}

// Date formats the publication date the way the blog pages show it.
func (p *Post) Date() string {
	return p.PublishedDate.Format("January 2, 2006")
}

// assemble returns nil for entries without a publication date.
func (r *Resolver) assemble(slug string, e *content.Entry) *Post {
	if e == nil || e.PublishedDate == nil {
		return nil
	}
	post := &Post{
		Slug:          slug,
		Title:         e.Title,
		PublishedDate: e.PublishedDate.Time,
		Excerpt:       e.Excerpt,
		ReadTime:      DefaultReadTime,
		Featured:      e.Featured,
		Tags:          []string{},
		CoverImage:    e.CoverImage,
		Author:        Author{Name: r.author},
	}
	if e.ReadTime != nil && *e.ReadTime > 0 {
		post.ReadTime = *e.ReadTime
	}
	if len(e.Tags) > 0 {
		post.Tags = append(post.Tags, e.Tags...)
	}
	if e.Author != nil {
		if e.Author.Name != "" {
			post.Author.Name = e.Author.Name
		}
		post.Author.Avatar = e.Author.Avatar
	}
	post.body = func(ctx context.Context) (string, error) {
		return r.loadBody(ctx, slug, e)
	}
	return post
}
