// internal/render/pipeline.go
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Strategy selects how a post body becomes HTML.
type Strategy int

const (
	// StrategyMarkdown parses the body as markdown.
	StrategyMarkdown Strategy = iota
	// StrategyPreRendered treats the body as finished HTML and only enhances
	// its code blocks. Kept for legacy content.
	StrategyPreRendered
)

func (s Strategy) String() string {
	switch s {
	case StrategyMarkdown:
		return "markdown"
	case StrategyPreRendered:
		return "pre-rendered"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Pipeline turns post bodies into sanitized HTML.
type Pipeline struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	unsafe bool
	logger zerolog.Logger
}

type Option func(*Pipeline)

// WithUnsafe disables sanitizing of the rendered HTML.
func WithUnsafe(unsafe bool) Option {
	return func(p *Pipeline) {
		p.unsafe = unsafe
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		md:     newMarkdown(),
		policy: newPolicy(),
		logger: log.With().Str("component", "render").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(newPostLinkTransformer(), 100),
				util.Prioritized(newStyleTransformer(), 200),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newBlockRenderer(gmhtml.WithUnsafe()), 100),
			),
		),
	)
}

// newPolicy extends the UGC policy with the presentation classes, the
// wrapper markup and the copy button.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowDataAttributes()
	p.AllowElements("button", "div")
	p.AllowAttrs("type", "aria-label").OnElements("button")
	return p
}

// Render converts body with the given strategy.
func (p *Pipeline) Render(body string, s Strategy) (template.HTML, error) {
	var (
		out []byte
		err error
	)
	switch s {
	case StrategyMarkdown:
		out, err = p.renderMarkdown(body)
	case StrategyPreRendered:
		out, err = p.renderPreRendered(body)
	default:
		return "", fmt.Errorf("unknown render strategy %v", s)
	}
	if err != nil {
		return "", err
	}
	if !p.unsafe {
		out = p.policy.SanitizeBytes(out)
	}
	return template.HTML(out), nil
}

func (p *Pipeline) renderMarkdown(body string) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown with goldmark: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Pipeline) renderPreRendered(body string) ([]byte, error) {
	container := element(atom.Div, "class", "enhanced-content")
	nodes, err := html.ParseFragment(strings.NewReader(body), element(atom.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pre-rendered html: %w", err)
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	Enhance(container)

	var buf bytes.Buffer
	if err := html.Render(&buf, container); err != nil {
		return nil, fmt.Errorf("failed to serialize enhanced html: %w", err)
	}
	p.logger.Debug().Int("nodes", len(nodes)).Msg("rendered legacy html")
	return buf.Bytes(), nil
}

// CodeBlocks returns the plain text of every code block in a markdown body,
// in document order.
func (p *Pipeline) CodeBlocks(body string) []string {
	source := []byte(body)
	doc := p.md.Parser().Parse(text.NewReader(source))

	var blocks []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			blocks = append(blocks, Text(Markdown(n, source)))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return blocks
}
