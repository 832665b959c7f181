package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseHTML(t *testing.T, s string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func first(t *testing.T, doc *html.Node, tag string) *html.Node {
	t.Helper()
	nodes := findAll(doc, tag)
	require.NotEmpty(t, nodes, "no <%s> in output", tag)
	return nodes[0]
}

func renderString(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

const stylesDoc = "# Title\n\n" +
	"Some *em* and **strong** with `code` and [link](other-post.mdoc#part).\n\n" +
	"> quote\n\n" +
	"- one\n- two\n\n" +
	"1. first\n\n" +
	"| a | b |\n|---|---|\n| 1 | 2 |\n\n" +
	"---\n\n" +
	"![alt](/images/blog/x.png)\n"

func TestRenderMarkdownStyles(t *testing.T) {
	out, err := New().Render(stylesDoc, StrategyMarkdown)
	require.NoError(t, err)
	doc := parseHTML(t, string(out))

	h1 := first(t, doc, "h1")
	assert.Equal(t, styles["h1"], attr(h1, "class"))
	assert.Equal(t, "title", attr(h1, "id"))

	for _, tag := range []string{"p", "em", "strong", "code", "blockquote", "ul", "ol", "li", "table", "thead", "th", "td", "hr", "img"} {
		assert.Equal(t, styles[tag], attr(first(t, doc, tag), "class"), tag)
	}

	a := first(t, doc, "a")
	assert.Equal(t, styles["a"], attr(a, "class"))
	assert.Equal(t, "/blog/other-post#part", attr(a, "href"))

	table := first(t, doc, "table")
	require.NotNil(t, table.Parent)
	assert.Equal(t, "div", table.Parent.Data)
	assert.Equal(t, tableWrapperClass, attr(table.Parent, "class"))
}

func TestRenderHeadingLevels(t *testing.T) {
	out, err := New().Render("# a\n## b\n### c\n#### d\n##### e\n###### f\n", StrategyMarkdown)
	require.NoError(t, err)
	doc := parseHTML(t, string(out))
	for _, tag := range headingTags {
		assert.Equal(t, styles[tag], attr(first(t, doc, tag), "class"), tag)
	}
}

func TestRenderCodeBlockCopyPayload(t *testing.T) {
	body := "Intro\n\n```go\nfmt.Println(\"hi\")\n\n// <tag> & more\n```\n"
	out, err := New().Render(body, StrategyMarkdown)
	require.NoError(t, err)
	doc := parseHTML(t, string(out))

	pre := first(t, doc, "pre")
	require.NotNil(t, pre.Parent)
	assert.Equal(t, codeBlockWrapperClass, attr(pre.Parent, "class"))
	assert.Equal(t, "language-go", attr(first(t, pre, "code"), "class"))

	want := "fmt.Println(\"hi\")\n\n// <tag> & more\n"
	assert.Equal(t, want, Text(pre))

	buttons := findAll(doc, "button")
	require.Len(t, buttons, 1)
	assert.Equal(t, want, attr(buttons[0], "data-copy-text"))
	assert.Equal(t, "button", attr(buttons[0], "type"))
	assert.Equal(t, "Copy code", attr(buttons[0], "aria-label"))
	assert.Same(t, pre.Parent, buttons[0].Parent)
}

func TestRenderIndentedCodeBlock(t *testing.T) {
	out, err := New().Render("Text\n\n    x := 1\n    y := 2\n", StrategyMarkdown)
	require.NoError(t, err)
	doc := parseHTML(t, string(out))

	buttons := findAll(doc, "button")
	require.Len(t, buttons, 1)
	assert.Equal(t, "x := 1\ny := 2\n", attr(buttons[0], "data-copy-text"))
}

func TestRenderSanitizes(t *testing.T) {
	body := "<script>alert(1)</script>\n\n<p onclick=\"x()\">hi</p>\n\n```\ncode\n```\n"

	safe, err := New().Render(body, StrategyMarkdown)
	require.NoError(t, err)
	assert.NotContains(t, string(safe), "<script")
	assert.NotContains(t, string(safe), "onclick")
	assert.Contains(t, string(safe), "<button")
	assert.Contains(t, string(safe), "data-copy-text")

	raw, err := New(WithUnsafe(true)).Render(body, StrategyMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<script>")
}

func TestRenderPreRendered(t *testing.T) {
	body := `<p>hi</p><pre><code>x</code></pre><div class="code-block-wrapper"><pre>y</pre></div>`
	out, err := New().Render(body, StrategyPreRendered)
	require.NoError(t, err)
	doc := parseHTML(t, string(out))

	var wrappers int
	for _, div := range findAll(doc, "div") {
		if hasClass(div, wrapperMarker) {
			wrappers++
		}
	}
	assert.Equal(t, 2, wrappers)

	buttons := findAll(doc, "button")
	require.Len(t, buttons, 1)
	assert.Equal(t, "x", attr(buttons[0], "data-copy-text"))
	assert.Equal(t, copyButtonHolderClass, attr(buttons[0].Parent, "class"))
}

func TestRenderUnknownStrategy(t *testing.T) {
	_, err := New().Render("x", Strategy(42))
	assert.Error(t, err)
	assert.Equal(t, "Strategy(42)", Strategy(42).String())
}

func TestCodeBlocks(t *testing.T) {
	body := "```sh\necho one\n```\n\nText `inline`\n\n    indented\n\n```\ntwo\nlines\n```\n"
	assert.Equal(t, []string{"echo one\n", "indented\n", "two\nlines\n"}, New().CodeBlocks(body))
	assert.Empty(t, New().CodeBlocks("no code here"))
}

func TestPostLink(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"other-post.mdoc", "/blog/other-post", true},
		{"./other-post.md", "/blog/other-post", true},
		{"../posts/deep-dive.mdoc#setup", "/blog/deep-dive#setup", true},
		{"https://example.com/readme.md", "", false},
		{"/docs/readme.md", "", false},
		{"notes.txt", "", false},
		{"#anchor", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := PostLink(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
