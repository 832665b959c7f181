package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const legacyDoc = `<div class="post"><pre>a<b>b</b></pre><p>x</p><section><pre>c</pre></section></div>`

func countWrappers(doc *html.Node) int {
	n := 0
	for _, div := range findAll(doc, "div") {
		if hasClass(div, wrapperMarker) {
			n++
		}
	}
	return n
}

func TestEnhanceWrapsEveryPre(t *testing.T) {
	doc := parseHTML(t, legacyDoc)

	Enhance(doc)

	assert.Equal(t, 2, countWrappers(doc))
	buttons := findAll(doc, "button")
	require.Len(t, buttons, 2)
	assert.Equal(t, "ab", attr(buttons[0], "data-copy-text"))
	assert.Equal(t, "c", attr(buttons[1], "data-copy-text"))
	for _, pre := range findAll(doc, "pre") {
		assert.Equal(t, enhanceWrapperClass, attr(pre.Parent, "class"))
	}
}

func TestEnhanceIdempotent(t *testing.T) {
	doc := parseHTML(t, legacyDoc)

	Enhance(doc)
	again := Enhance(doc)

	assert.Equal(t, 2, countWrappers(doc))
	assert.Len(t, findAll(doc, "button"), 2)

	again()
	assert.Equal(t, 2, countWrappers(doc), "teardown of a no-op pass must not unwrap")
}

func TestEnhanceTeardown(t *testing.T) {
	doc := parseHTML(t, legacyDoc)
	before := renderString(t, doc)

	teardown := Enhance(doc)
	require.NotEqual(t, before, renderString(t, doc))

	teardown()
	assert.Equal(t, 0, countWrappers(doc))
	assert.Empty(t, findAll(doc, "button"))
	assert.Len(t, findAll(doc, "pre"), 2)
	assert.Equal(t, before, renderString(t, doc))

	teardown()
	assert.Equal(t, before, renderString(t, doc))
}

func TestEnhanceKeepsExistingWrappers(t *testing.T) {
	doc := parseHTML(t, `<div class="code-block-wrapper relative group my-6"><pre>x</pre></div>`)
	before := renderString(t, doc)

	teardown := Enhance(doc)
	assert.Equal(t, before, renderString(t, doc))
	teardown()
	assert.Equal(t, before, renderString(t, doc))
}
