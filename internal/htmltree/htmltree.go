// Package htmltree provides element-tree helpers and a prioritized
// transform pipeline over golang.org/x/net/html nodes.
//
// Rendered Markdown fragments are parsed into a tree, reshaped by an
// ordered sequence of transforms, and rendered back to HTML. Transforms
// run in ascending priority order, so relative placement between passes
// (e.g. "immediately after anchor computation") is expressed as adjacent
// priority values.
package htmltree

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Transform reshapes a parsed HTML tree in place.
type Transform interface {
	Transform(root *html.Node)
}

// TransformFunc adapts a function to the Transform interface.
type TransformFunc func(root *html.Node)

// Transform calls f(root).
func (f TransformFunc) Transform(root *html.Node) { f(root) }

// prioritizedTransform pairs a transform with its run priority.
type prioritizedTransform struct {
	transform Transform
	priority  int
}

// Pipeline is an ordered set of tree transforms.
// Registration order between equal priorities is preserved.
type Pipeline struct {
	transforms []prioritizedTransform
}

// NewPipeline creates an empty transform pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Register adds a transform at the given priority.
// Lower priorities run first.
func (p *Pipeline) Register(t Transform, priority int) {
	p.transforms = append(p.transforms, prioritizedTransform{transform: t, priority: priority})
	sort.SliceStable(p.transforms, func(i, j int) bool {
		return p.transforms[i].priority < p.transforms[j].priority
	})
}

// Run applies all registered transforms to root in priority order.
func (p *Pipeline) Run(root *html.Node) {
	for _, pt := range p.transforms {
		pt.transform.Transform(root)
	}
}

// Parse parses an HTML fragment into a detached container node.
// The container is a DocumentNode whose children are the fragment's
// top-level nodes, suitable for uniform traversal and later rendering
// without a wrapping <html><body>.
func Parse(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// Render serializes the children of a container node back to HTML.
func Render(container *html.Node) (string, error) {
	var buf strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// WalkElements visits every element node under root in document order,
// including root itself when it is an element.
func WalkElements(root *html.Node, visit func(el *html.Node)) {
	if root.Type == html.ElementNode {
		visit(root)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		WalkElements(c, visit)
	}
}

// Clone returns a detached deep copy of n.
// The copy shares no nodes with the original tree, so it survives the
// original being discarded or mutated.
func Clone(n *html.Node) *html.Node {
	copied := &html.Node{
		Type:     n.Type,
		DataAtom: n.DataAtom,
		Data:     n.Data,
		Attr:     append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		copied.AppendChild(Clone(c))
	}
	return copied
}

// Attr returns the value of the named attribute and whether it is set.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// HasClass reports whether the element's class attribute contains name.
func HasClass(n *html.Node, name string) bool {
	class, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	var buf strings.Builder
	appendText(&buf, n)
	return buf.String()
}

func appendText(buf *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		appendText(buf, c)
	}
}

// TextNode creates a detached text node.
func TextNode(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Element creates a detached element node with optional attributes given
// as key, value pairs.
func Element(tag string, attrs ...string) *html.Node {
	el := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr = append(el.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return el
}

// HeadingLevel returns the level of a heading element (1-6), or 0 when
// the node is not a heading.
func HeadingLevel(n *html.Node) int {
	if n.Type != html.ElementNode || len(n.Data) != 2 {
		return 0
	}
	if n.Data[0] != 'h' {
		return 0
	}
	if n.Data[1] < '1' || n.Data[1] > '6' {
		return 0
	}
	return int(n.Data[1] - '0')
}
