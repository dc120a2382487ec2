package pipeline

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// DefaultPermalinkClass marks the anchor appended to identified headings.
const DefaultPermalinkClass = "headerlink"

// HeadingAnchors appends a permalink anchor to every heading that
// carries an id, the way documentation themes adorn headings once the
// table-of-contents pass has assigned their identifiers:
//
//	<h2 id="usage">Usage<a class="headerlink" href="#usage">&para;</a></h2>
//
// The anchor class is configuration, not a constant, because the
// harvesting transform must recognize and strip exactly this adornment.
type HeadingAnchors struct {
	Class string
}

// Transform adorns identified headings under root.
// Headings that already carry a permalink anchor are left alone, so the
// pass is idempotent across nested renders.
func (t *HeadingAnchors) Transform(root *html.Node) {
	htmltree.WalkElements(root, func(el *html.Node) {
		if htmltree.HeadingLevel(el) == 0 {
			return
		}
		id, ok := htmltree.Attr(el, "id")
		if !ok || id == "" {
			return
		}
		if last := lastElementChild(el); last != nil && htmltree.HasClass(last, t.Class) {
			return
		}
		anchor := htmltree.Element("a", "class", t.Class, "href", "#"+id)
		anchor.AppendChild(htmltree.TextNode("¶"))
		el.AppendChild(anchor)
	})
}

// lastElementChild returns the last child that is an element, or nil.
func lastElementChild(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}
