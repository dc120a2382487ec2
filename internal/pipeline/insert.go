package pipeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// MarkerClass tags the temporary container that carries harvested
// headings into the host tree for the table-of-contents pass.
const MarkerClass = "mdexec-headings"

// InsertHeadingsTransform splices harvested fragment headings into the
// host tree so the table-of-contents builder sees them in place. It
// runs immediately before the TOC transform.
//
// Fragment output never enters the host parse directly: each converted
// fragment is stashed under an opaque placeholder, and the host tree
// contains an element whose text is exactly that placeholder. For every
// such element, the transform resolves placeholder -> converted output
// -> harvested headings and appends the headings (as structural copies)
// inside a marker container child.
type InsertHeadingsTransform struct {
	// Stash maps placeholder text to the converted fragment output it
	// stands for.
	Stash map[string]string
	// Assoc maps converted output to harvested heading batches.
	Assoc *Associations
}

// Transform appends marker containers under matched elements.
func (t *InsertHeadingsTransform) Transform(root *html.Node) {
	if t.Assoc == nil || t.Assoc.Empty() {
		return
	}
	htmltree.WalkElements(root, func(el *html.Node) {
		output, ok := t.resolve(el)
		if !ok {
			return
		}
		batch := t.Assoc.Take(output)
		if len(batch) == 0 {
			return
		}
		marker := htmltree.Element("div", "class", MarkerClass)
		for _, h := range batch {
			marker.AppendChild(htmltree.Clone(h))
		}
		el.AppendChild(marker)
	})
}

// resolve returns the converted output an element stands for, matching
// by exact text equality against the stash placeholders.
func (t *InsertHeadingsTransform) resolve(el *html.Node) (string, bool) {
	c := el.FirstChild
	if c == nil || c.Type != html.TextNode || c.NextSibling != nil {
		return "", false
	}
	output, ok := t.Stash[strings.TrimSpace(c.Data)]
	return output, ok
}
