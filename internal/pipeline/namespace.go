package pipeline

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// NamespaceTransform prefixes every identifier minted inside a fragment
// with a token unique to the current conversion, so ids from two
// fragments (or from a fragment and the host document) never collide.
//
// Rewritten attributes:
//   - id: prefixed directly
//   - href values starting with "#": the part after "#" is prefixed
//   - name: prefixed directly (footnote backrefs, radio groups)
//   - for on <label> elements: prefixed directly (tab set labels)
//
// An empty token makes the transform a no-op, leaving the tree
// untouched for standalone use of the same renderer.
type NamespaceTransform struct {
	Token string
}

// Transform rewrites identifier-bearing attributes under root.
func (t *NamespaceTransform) Transform(root *html.Node) {
	if t.Token == "" {
		return
	}
	htmltree.WalkElements(root, func(el *html.Node) {
		if id, ok := htmltree.Attr(el, "id"); ok && id != "" {
			htmltree.SetAttr(el, "id", t.Token+id)
		}
		if href, ok := htmltree.Attr(el, "href"); ok && strings.HasPrefix(href, "#") {
			htmltree.SetAttr(el, "href", "#"+t.Token+href[1:])
		}
		if name, ok := htmltree.Attr(el, "name"); ok && name != "" {
			htmltree.SetAttr(el, "name", t.Token+name)
		}
		if el.Data == "label" {
			if forAttr, ok := htmltree.Attr(el, "for"); ok && forAttr != "" {
				htmltree.SetAttr(el, "for", t.Token+forAttr)
			}
		}
	})
}
