// internal/render/codeblock.go
package render

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// blockRenderer takes over code blocks and tables from the stock renderers so
// they can be emitted inside their wrapper elements.
type blockRenderer struct {
	gmhtml.Config
}

func newBlockRenderer(opts ...gmhtml.Option) renderer.NodeRenderer {
	r := &blockRenderer{Config: gmhtml.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

func (r *blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(extast.KindTable, r.renderTable)
}

func (r *blockRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="` + codeBlockWrapperClass + `"><pre><code`)
	if fcb, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := fcb.Language(source); lang != nil {
			_, _ = w.WriteString(` class="language-`)
			r.Writer.Write(w, lang)
			_ = w.WriteByte('"')
		}
	}
	_ = w.WriteByte('>')
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.Writer.RawWrite(w, line.Value(source))
	}
	_, _ = w.WriteString("</code></pre>")
	writeCopyButton(w, Text(Markdown(node, source)))
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *blockRenderer) renderTable(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<div class="` + tableWrapperClass + `"><table`)
		if node.Attributes() != nil {
			gmhtml.RenderAttributes(w, node, extension.TableAttributeFilter)
		}
		_, _ = w.WriteString(">\n")
	} else {
		_, _ = w.WriteString("</table></div>\n")
	}
	return ast.WalkContinue, nil
}

func writeCopyButton(w util.BufWriter, payload string) {
	_, _ = w.WriteString(`<button type="button" class="` + copyButtonClass + `" aria-label="Copy code" data-copy-text="`)
	_, _ = w.Write(util.EscapeHTML([]byte(payload)))
	_, _ = w.WriteString(`">Copy</button>`)
}
