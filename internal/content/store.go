// internal/content/store.go
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/adrg/frontmatter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/verkaro/editml-go"
	"gopkg.in/yaml.v3"
)

// yamlFrontMatter restricts parsing to the "---" fenced YAML blocks the editor writes.
var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// FileStore is a Store backed by one file per post in a single directory.
type FileStore struct {
	fsys   fs.FS
	dir    string
	ext    string
	logger zerolog.Logger
}

// NewFileStore serves the posts found in dir (e.g. "content/posts") of fsys
// whose names end in ext (e.g. ".mdoc").
func NewFileStore(fsys fs.FS, dir, ext string) *FileStore {
	return &FileStore{
		fsys:   fsys,
		dir:    dir,
		ext:    ext,
		logger: log.With().Str("component", "content").Str("dir", dir).Logger(),
	}
}

// All lists the collection. Files that fail to parse are skipped and logged
// so a single broken post does not take the listing down.
func (s *FileStore) All(ctx context.Context) ([]Record, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}

	records := make([]Record, 0, len(entries))
	for _, de := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if de.IsDir() || !strings.HasSuffix(de.Name(), s.ext) {
			continue
		}
		slug := strings.TrimSuffix(de.Name(), s.ext)
		entry, err := s.load(slug)
		if err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("skipping unreadable post")
			continue
		}
		records = append(records, Record{Slug: slug, Entry: entry})
	}
	return records, nil
}

// Read returns the entry for slug. Slugs that cannot name a file directly
// inside the posts directory are reported as ErrNotFound.
func (s *FileStore) Read(ctx context.Context, slug string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if slug == "" || strings.ContainsAny(slug, `/\`) || !fs.ValidPath(s.Path(slug)) {
		return nil, ErrNotFound
	}
	entry, err := s.load(slug)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return entry, err
}

// Path is the location of the file backing slug within the store's file system.
func (s *FileStore) Path(slug string) string {
	return path.Join(s.dir, slug+s.ext)
}

func (s *FileStore) load(slug string) (*Entry, error) {
	data, err := fs.ReadFile(s.fsys, s.Path(slug))
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("post %s is not valid UTF-8", slug)
	}
	return parseEntry(data)
}

func parseEntry(data []byte) (*Entry, error) {
	entry := &Entry{}
	body, err := frontmatter.Parse(bytes.NewReader(data), entry, yamlFrontMatter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}
	if entry.ReadTime != nil && (*entry.ReadTime < 1 || *entry.ReadTime > 60) {
		entry.ReadTime = nil
	}
	if entry.CoverImage != nil && *entry.CoverImage == "" {
		entry.CoverImage = nil
	}
	entry.body = body
	return entry, nil
}

// Content returns the entry body with EditML editorial marks resolved to
// their clean view, which is what the content editor previews.
func (e *Entry) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	nodes, parseIssues := editml.Parse(string(e.body))
	if len(parseIssues) > 0 && parseIssues[0].Severity == editml.SeverityError {
		return "", fmt.Errorf("editml parsing error: %s", parseIssues[0].Message)
	}
	clean, transformIssues := editml.TransformCleanView(nodes)
	if len(transformIssues) > 0 && transformIssues[0].Severity == editml.SeverityError {
		return "", fmt.Errorf("editml transformation error: %s", transformIssues[0].Message)
	}
	return clean, nil
}

// NewEntry builds an entry in memory, for stores that are not file backed.
func NewEntry(title string, published *Date, body string) *Entry {
	return &Entry{Title: title, PublishedDate: published, body: []byte(body)}
}
