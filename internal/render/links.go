// internal/render/links.go
package render

import (
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var postExtensions = []string{".mdoc", ".md"}

// postLinkTransformer points relative links to other post files at their blog page.
type postLinkTransformer struct{}

func newPostLinkTransformer() parser.ASTTransformer {
	return &postLinkTransformer{}
}

func (t *postLinkTransformer) Transform(node *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if dest, ok := PostLink(string(link.Destination)); ok {
			link.Destination = []byte(dest)
		}
		return ast.WalkContinue, nil
	})
}

// PostLink rewrites "other-post.mdoc#intro" style destinations to
// "/blog/other-post#intro". Absolute URLs and rooted paths are left alone.
func PostLink(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.Contains(dest, ":") {
		return "", false
	}
	target, fragment, hasFragment := strings.Cut(dest, "#")
	for _, ext := range postExtensions {
		if !strings.HasSuffix(target, ext) {
			continue
		}
		slug := path.Base(strings.TrimSuffix(target, ext))
		if slug == "." || slug == "/" || slug == "" {
			return "", false
		}
		out := "/blog/" + slug
		if hasFragment {
			out += "#" + fragment
		}
		return out, true
	}
	return "", false
}
