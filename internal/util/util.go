// internal/util/util.go
package util

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}\s-]+`)
	dashRuns     = regexp.MustCompile(`[\s-]+`)
)

// Slugify turns a post title into the file name used for it under content/posts.
// Diacritics are stripped, so "Čaša vode" becomes "casa-vode".
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, title)
	if err != nil {
		s = title
	}
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Humanize derives a display title from a slug, e.g. "hello-world" -> "Hello World".
func Humanize(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// ComputeBaseHref calculates the relative path back to the site root for a page
// written at relPath, so assets resolve when the export is opened from disk.
// For example, a page at blog/a/index.html gets a BaseHref of "../../".
func ComputeBaseHref(relPath string) string {
	dir := path.Dir(strings.TrimPrefix(relPath, "/"))
	if dir == "." || dir == "" {
		return ""
	}
	depth := strings.Count(dir, "/") + 1
	return strings.Repeat("../", depth)
}
