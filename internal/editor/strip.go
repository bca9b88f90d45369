package editor

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// formattingAtoms are the inline formatting elements removed by
// clear-formatting. Their children are kept.
var formattingAtoms = map[atom.Atom]bool{
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.U:      true,
	atom.S:      true,
	atom.Sub:    true,
	atom.Sup:    true,
	atom.Mark:   true,
	atom.Span:   true,
	atom.Font:   true,
}

// StripFormatting unwraps inline formatting elements in fragment, keeping
// their content. Structure (headings, links, figures, quotes) is untouched.
// Like the sanitizer it is pure and total: a parse failure yields "".
func StripFormatting(fragment string) string {
	if fragment == "" {
		return ""
	}
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return ""
	}

	// Re-parent under a scratch node so top-level formatting elements can be
	// unwrapped the same way as nested ones.
	root := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	unwrap(root)

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return ""
		}
	}
	return buf.String()
}

func unwrap(n *html.Node) {
	var next *html.Node
	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling
		unwrap(c)
		if c.Type == html.ElementNode && formattingAtoms[c.DataAtom] {
			for gc := c.FirstChild; gc != nil; gc = c.FirstChild {
				c.RemoveChild(gc)
				n.InsertBefore(gc, c)
			}
			n.RemoveChild(c)
		}
	}
}
