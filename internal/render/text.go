package render

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"golang.org/x/net/html"
)

// Parent is a structural node whose text is the text of its children.
type Parent interface {
	Children() []any
}

// Text flattens node to its plain text. Strings and numbers yield their
// string form, slices and arrays of any element type and structural nodes
// the concatenated text of their elements, anything else "".
func Text(node any) string {
	var b strings.Builder
	writeText(&b, node)
	return b.String()
}

func writeText(b *strings.Builder, node any) {
	switch v := node.(type) {
	case string:
		b.WriteString(v)
	case int:
		b.WriteString(strconv.Itoa(v))
	case int8, int16, int32, int64:
		b.WriteString(strconv.FormatInt(toInt64(v), 10))
	case uint, uint8, uint16, uint32, uint64:
		b.WriteString(strconv.FormatUint(toUint64(v), 10))
	case float32:
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	case []any:
		for _, c := range v {
			writeText(b, c)
		}
	case *html.Node:
		if v == nil {
			return
		}
		switch v.Type {
		case html.TextNode:
			b.WriteString(v.Data)
		case html.ElementNode, html.DocumentNode:
			for c := v.FirstChild; c != nil; c = c.NextSibling {
				writeText(b, c)
			}
		}
	case Parent:
		for _, c := range v.Children() {
			writeText(b, c)
		}
	default:
		// Typed slices and arrays such as []string or []*html.Node.
		rv := reflect.ValueOf(node)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return
		}
		for i := 0; i < rv.Len(); i++ {
			writeText(b, rv.Index(i).Interface())
		}
	}
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	}
	return 0
}

func toUint64(v any) uint64 {
	switch n := v.(type) {
	case uint:
		return uint64(n)
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	}
	return 0
}

// Markdown exposes a goldmark node to Text. Leaf blocks such as code blocks
// contribute their source lines.
func Markdown(n ast.Node, source []byte) Parent {
	return markdownNode{node: n, source: source}
}

type markdownNode struct {
	node   ast.Node
	source []byte
}

func (m markdownNode) Children() []any {
	if m.node == nil {
		return nil
	}
	switch v := m.node.(type) {
	case *ast.Text:
		out := []any{string(v.Segment.Value(m.source))}
		if v.SoftLineBreak() || v.HardLineBreak() {
			out = append(out, "\n")
		}
		return out
	case *ast.String:
		return []any{string(v.Value)}
	}

	var out []any
	if m.node.Type() == ast.TypeBlock && m.node.ChildCount() == 0 {
		lines := m.node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			out = append(out, string(line.Value(m.source)))
		}
		return out
	}
	for c := m.node.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, markdownNode{node: c, source: m.source})
	}
	return out
}
