package blog

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("decoded identifier is not valid UTF-8")

// decodeComponent mirrors JavaScript's decodeURIComponent: every %XX
// sequence is decoded, "+" is left alone, and a malformed escape or a result
// that is not valid UTF-8 is an error.
func decodeComponent(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(decoded) {
		return "", errInvalidUTF8
	}
	return decoded, nil
}

// encodeComponent mirrors JavaScript's encodeURIComponent.
func encodeComponent(s string) string {
	const upperhex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// whitespaceRuns matches what JavaScript's \s matches: Go's \s plus \v,
// the Unicode separators and the byte order mark. NEL is not included.
var whitespaceRuns = regexp.MustCompile(`[\s\p{Z}\x{FEFF}\v]+`)

func normalizeSlug(s string) string {
	return strings.ToLower(whitespaceRuns.ReplaceAllString(s, "-"))
}

// A lookupStrategy derives the key used for a direct store read from the
// (already normalized) identifier. ok is false when the strategy does not apply.
type lookupStrategy struct {
	name      string
	candidate func(id string) (key string, ok bool)
}

// A slugMatcher decides whether a stored slug matches the identifier while
// enumerating the collection.
type slugMatcher struct {
	name  string
	match func(stored, id string) bool
}

// lookupStrategies run in order; a later one only runs when the earlier ones missed.
var lookupStrategies = []lookupStrategy{
	{name: "direct", candidate: directKey},
	{name: "decode-again", candidate: decodeAgainKey},
}

// slugMatchers are tried per record in collection order; the first record
// satisfying any matcher wins. Slugs differing only by case or whitespace can
// therefore shadow each other, and the earlier file wins.
var slugMatchers = []slugMatcher{
	{name: "exact", match: func(stored, id string) bool { return stored == id }},
	{name: "encoded", match: func(stored, id string) bool { return encodeComponent(stored) == id }},
	{name: "normalized", match: func(stored, id string) bool { return normalizeSlug(stored) == strings.ToLower(id) }},
}

func directKey(id string) (string, bool) {
	return id, true
}

func decodeAgainKey(id string) (string, bool) {
	if !strings.Contains(id, "%") {
		return "", false
	}
	decoded, err := decodeComponent(id)
	if err != nil {
		return "", false
	}
	return decoded, true
}

// matchSlug reports which matcher, if any, accepts stored for id.
func matchSlug(stored, id string) (string, bool) {
	for _, m := range slugMatchers {
		if m.match(stored, id) {
			return m.name, true
		}
	}
	return "", false
}
