// internal/content/models.go
package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Store.Read when no file backs the slug.
var ErrNotFound = errors.New("entry not found")

// Store is the read-only view of the post collection.
type Store interface {
	// All returns every record in the collection's natural (file name) order.
	All(ctx context.Context) ([]Record, error)
	// Read returns the entry stored under slug, or ErrNotFound.
	Read(ctx context.Context, slug string) (*Entry, error)
}

// Record pairs an entry with the slug it is stored under.
type Record struct {
	Slug  string
	Entry *Entry
}

// Author is the nested author object of a post's front matter.
type Author struct {
	Name   string  `yaml:"name"`
	Avatar *string `yaml:"avatar"`
}

// Entry holds the raw front matter of one post. Fields are left nil or
// zero when absent; defaults are applied by the blog package.
type Entry struct {
	Title         string   `yaml:"title"`
	PublishedDate *Date    `yaml:"publishedDate"`
	Excerpt       string   `yaml:"excerpt"`
	ReadTime      *int     `yaml:"readTime"`
	Featured      bool     `yaml:"featured"`
	Tags          []string `yaml:"tags"`
	CoverImage    *string  `yaml:"coverImage"`
	Author        *Author  `yaml:"author"`

	body []byte
}

// Date is a calendar date as written by the content editor.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate accepts the date layouts found in post front matter.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or RFC3339", s)
}

func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", n.Line)
	}
	t, err := ParseDate(n.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	d.Time = t
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.Format("2006-01-02"), nil
}
