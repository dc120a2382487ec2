package pipeline

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// HarvestTransform records the heading elements found in a rendered
// fragment so the host document can splice them into its own table of
// contents. It runs near the very end of the shadow pipeline, after
// identifier namespacing, so the collected headings carry their final
// ids.
//
// Each heading is deep-copied: the copies must survive the fragment
// tree being discarded. The permalink anchor appended by HeadingAnchors
// is stripped from the copy (never from the original), leaving a
// heading structurally identical to one authored at top level, ready
// for a second table-of-contents pass.
type HarvestTransform struct {
	// PermalinkClass identifies the anchor adornment to strip. It comes
	// from the table-of-contents configuration rather than being
	// hard-coded here.
	PermalinkClass string

	headings []*html.Node
}

// Transform collects heading copies under root in document order.
func (t *HarvestTransform) Transform(root *html.Node) {
	htmltree.WalkElements(root, func(el *html.Node) {
		if htmltree.HeadingLevel(el) == 0 {
			return
		}
		cp := htmltree.Clone(el)
		if last := cp.LastChild; last != nil && last.Type == html.ElementNode && htmltree.HasClass(last, t.PermalinkClass) {
			cp.RemoveChild(last)
		}
		t.headings = append(t.headings, cp)
	})
}

// Drain returns the collected headings and resets the buffer for the
// next conversion.
func (t *HarvestTransform) Drain() []*html.Node {
	headings := t.headings
	t.headings = nil
	return headings
}
