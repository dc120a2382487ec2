package pipeline

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// RemoveHeadingsTransform deletes the marker containers once the table
// of contents has been built from them. It runs immediately after the
// TOC transform.
//
// The containers exist only so the TOC builder records correct entries
// and anchors; the visible copy of each heading is the one rendered in
// the fragment's own position, so the duplicates must not survive into
// the final HTML. Any plain text carried inside a container is
// preserved by splicing it onto the following sibling's trailing text.
type RemoveHeadingsTransform struct{}

// Transform removes every marker container under root. Unlike a
// root-children-only sweep, the walk covers the whole tree, so a marker
// nested below a blockquote or list item is removed as well.
func (t *RemoveHeadingsTransform) Transform(root *html.Node) {
	parents := t.markerParents(root)
	for _, parent := range parents {
		t.sweep(parent)
	}
}

// markerParents collects the distinct parents of marker containers.
func (t *RemoveHeadingsTransform) markerParents(root *html.Node) []*html.Node {
	var parents []*html.Node
	seen := make(map[*html.Node]bool)
	htmltree.WalkElements(root, func(el *html.Node) {
		if el.Data == "div" && htmltree.HasClass(el, MarkerClass) {
			if p := el.Parent; p != nil && !seen[p] {
				seen[p] = true
				parents = append(parents, p)
			}
		}
	})
	return parents
}

// sweep scans parent's children in reverse order (reverse enables safe
// removal while iterating without skipping siblings), removing marker
// containers and carrying their text content forward.
func (t *RemoveHeadingsTransform) sweep(parent *html.Node) {
	carry := ""
	for c := parent.LastChild; c != nil; {
		prev := c.PrevSibling
		if c.Type == html.ElementNode && c.Data == "div" && htmltree.HasClass(c, MarkerClass) {
			carry = markerText(c) + carry
			parent.RemoveChild(c)
		} else if carry != "" {
			appendTrailingText(parent, c, carry)
			carry = ""
		}
		c = prev
	}
	if carry != "" {
		// Marker was the first child: attach the text at the front.
		parent.InsertBefore(htmltree.TextNode(carry), parent.FirstChild)
	}
}

// markerText returns the direct text content of a marker container,
// excluding the heading elements it carries.
func markerText(marker *html.Node) string {
	text := ""
	for c := marker.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text += c.Data
		}
	}
	return text
}

// appendTrailingText places carried text immediately after sibling.
// Adjacent text nodes are merged rather than stacked.
func appendTrailingText(parent, sibling *html.Node, text string) {
	if sibling.Type == html.TextNode {
		sibling.Data += text
		return
	}
	node := htmltree.TextNode(text)
	if sibling.NextSibling != nil {
		parent.InsertBefore(node, sibling.NextSibling)
	} else {
		parent.AppendChild(node)
	}
}
