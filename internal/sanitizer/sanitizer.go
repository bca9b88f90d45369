// Package sanitizer makes user-edited rich-content fragments safe to store
// and re-render. It operates on a parsed HTML node tree, never on the live
// editing surface.
package sanitizer

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Clean removes script elements, event-handler attributes, and script-scheme
// URLs from fragment and returns the re-serialized markup. It is pure and
// idempotent; on any parse failure it returns the empty fragment.
func Clean(fragment string) string {
	if fragment == "" {
		return ""
	}
	nodes, err := parse(fragment)
	if err != nil {
		return ""
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if isScript(n) {
			continue
		}
		scrub(n)
		if err := html.Render(&buf, n); err != nil {
			return ""
		}
	}
	return buf.String()
}

// parse parses fragment in a div context so arbitrary flow content survives.
func parse(fragment string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	return html.ParseFragment(strings.NewReader(fragment), ctx)
}

func isScript(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Script
}

// scrub walks the subtree rooted at n, dropping script elements and unsafe
// attributes in place.
func scrub(n *html.Node) {
	if n.Type == html.ElementNode {
		n.Attr = safeAttrs(n.Attr)
	}
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		if isScript(c) {
			n.RemoveChild(c)
			continue
		}
		scrub(c)
	}
}

func safeAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		name := strings.ToLower(a.Key)
		if strings.HasPrefix(name, "on") {
			continue
		}
		if (name == "href" || name == "src") && scriptScheme(a.Val) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// scriptScheme reports whether the attribute value starts with a
// script-executing URI scheme after trimming and case folding.
func scriptScheme(val string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(val)), "javascript:")
}
