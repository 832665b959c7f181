// internal/render/enhance.go
package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	wrapperMarker         = "code-block-wrapper"
	enhanceWrapperClass   = "code-block-wrapper relative group"
	copyButtonHolderClass = "copy-button-container"
)

// Enhance wraps every <pre> under root that is not already inside a code
// block wrapper and mounts a copy button next to it. The returned teardown
// removes exactly the wrappers this call inserted and puts each <pre> back
// where it was. Calling Enhance again on an enhanced tree changes nothing.
func Enhance(root *html.Node) (teardown func()) {
	var pres []*html.Node
	collectPre(root, &pres)

	var inserted []*html.Node
	for _, pre := range pres {
		parent := pre.Parent
		if parent == nil || hasClass(parent, wrapperMarker) {
			continue
		}
		payload := Text(pre)

		wrapper := element(atom.Div, "class", enhanceWrapperClass)
		parent.InsertBefore(wrapper, pre)
		parent.RemoveChild(pre)
		wrapper.AppendChild(pre)

		holder := element(atom.Div, "class", copyButtonHolderClass)
		holder.AppendChild(copyButton(payload))
		wrapper.AppendChild(holder)

		inserted = append(inserted, wrapper)
	}

	return func() {
		for _, wrapper := range inserted {
			unwrap(wrapper)
		}
		inserted = nil
	}
}

func unwrap(wrapper *html.Node) {
	parent := wrapper.Parent
	if parent == nil {
		return
	}
	for c := wrapper.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Pre {
			wrapper.RemoveChild(c)
			parent.InsertBefore(c, wrapper)
			break
		}
	}
	parent.RemoveChild(wrapper)
}

func collectPre(n *html.Node, out *[]*html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Pre {
		*out = append(*out, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectPre(c, out)
	}
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func copyButton(payload string) *html.Node {
	btn := element(atom.Button,
		"type", "button",
		"class", copyButtonClass,
		"aria-label", "Copy code",
		"data-copy-text", payload,
	)
	btn.AppendChild(&html.Node{Type: html.TextNode, Data: "Copy"})
	return btn
}
