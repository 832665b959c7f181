package blog

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"github.com/OgnjenAdzic28/portfolio/internal/content"
)

const frontMatterDelim = "---"

// ExtractBody drops everything up to and including the first "---" found
// after the opening delimiter and trims the rest. Text without a closing
// delimiter is returned as is.
func ExtractBody(text string) string {
	if len(text) < len(frontMatterDelim) {
		return text
	}
	end := strings.Index(text[len(frontMatterDelim):], frontMatterDelim)
	if end < 0 {
		return text
	}
	return strings.TrimSpace(text[len(frontMatterDelim)+end+len(frontMatterDelim):])
}

// loadBody prefers the raw file so editorial markup reaches the renderer as
// written; the store accessor is the fallback.
func (r *Resolver) loadBody(ctx context.Context, slug string, e *content.Entry) (string, error) {
	if r.fsys != nil {
		p := path.Join(r.postsDir, slug+r.ext)
		data, err := fs.ReadFile(r.fsys, p)
		if err == nil {
			return ExtractBody(string(data)), nil
		}
		r.logger.Warn().Err(err).Str("slug", slug).Str("path", p).Msg("direct read failed, using store content")
	}
	return e.Content(ctx)
}
