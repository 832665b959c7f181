// internal/render/styles.go
package render

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Presentation classes, one per node kind.
var styles = map[string]string{
	"h1":         "text-3xl font-medium text-foreground tracking-tight mb-6 mt-8 scroll-mt-20",
	"h2":         "text-2xl font-medium text-foreground tracking-tight mb-4 mt-8 border-b border-border pb-2 scroll-mt-20",
	"h3":         "text-xl font-medium text-foreground tracking-tight mb-3 mt-6 scroll-mt-20",
	"h4":         "text-lg font-medium text-foreground tracking-tight mb-2 mt-4 scroll-mt-20",
	"h5":         "text-base font-semibold text-foreground mb-2 mt-4 scroll-mt-20",
	"h6":         "text-sm font-semibold text-muted-foreground mb-2 mt-4 scroll-mt-20",
	"p":          "text-muted-foreground leading-[25px] mb-4",
	"a":          "text-foreground font-medium no-underline hover:underline transition-colors",
	"strong":     "text-foreground font-semibold",
	"em":         "text-foreground italic",
	"code":       "text-foreground bg-muted px-1.5 py-0.5 rounded text-sm font-mono border border-border",
	"ul":         "list-disc pl-6 my-4 space-y-1",
	"ol":         "list-decimal pl-6 my-4 space-y-1",
	"li":         "text-muted-foreground leading-[25px] my-1 marker:text-foreground",
	"blockquote": "border-l-4 border-border pl-4 py-2 italic text-muted-foreground bg-muted/30 rounded-r-lg my-6",
	"table":      "w-full border-collapse border border-border rounded-lg overflow-hidden shadow-sm",
	"thead":      "bg-muted/50",
	"th":         "border border-border px-4 py-3 text-left font-semibold text-foreground text-sm",
	"td":         "border border-border px-4 py-3 text-muted-foreground text-sm",
	"hr":         "border-border my-8 border-t",
	"img":        "rounded-lg border border-border shadow-sm my-6 max-w-full h-auto",
}

const (
	codeBlockWrapperClass = "code-block-wrapper relative group my-6"
	tableWrapperClass     = "overflow-x-auto my-6"
	copyButtonClass       = "copy-button absolute top-3 right-3 p-2 rounded-md bg-background/80 hover:bg-background border border-border/50 hover:border-border transition-all duration-200 backdrop-blur-sm"
)

var headingTags = [...]string{"h1", "h2", "h3", "h4", "h5", "h6"}

// tagFor names the element a styled node renders as, or "" for unstyled nodes.
func tagFor(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Heading:
		if v.Level >= 1 && v.Level <= len(headingTags) {
			return headingTags[v.Level-1]
		}
	case *ast.Paragraph:
		return "p"
	case *ast.Link, *ast.AutoLink:
		return "a"
	case *ast.Emphasis:
		if v.Level >= 2 {
			return "strong"
		}
		return "em"
	case *ast.CodeSpan:
		return "code"
	case *ast.List:
		if v.IsOrdered() {
			return "ol"
		}
		return "ul"
	case *ast.ListItem:
		return "li"
	case *ast.Blockquote:
		return "blockquote"
	case *ast.ThematicBreak:
		return "hr"
	case *ast.Image:
		return "img"
	case *extast.Table:
		return "table"
	case *extast.TableHeader:
		return "thead"
	case *extast.TableCell:
		if v.Parent() != nil && v.Parent().Kind() == extast.KindTableHeader {
			return "th"
		}
		return "td"
	}
	return ""
}

type styleTransformer struct{}

func newStyleTransformer() parser.ASTTransformer {
	return &styleTransformer{}
}

func (t *styleTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if class, ok := styles[tagFor(n)]; ok {
			n.SetAttributeString("class", []byte(class))
		}
		return ast.WalkContinue, nil
	})
}
