package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// Default TOC depth bounds.
const (
	DefaultTOCMinDepth = 1
	DefaultTOCMaxDepth = 6
)

// tocMarkerText is the paragraph text that marks where the table of
// contents should be placed. Without a marker the TOC is inserted at
// the top of the document.
const tocMarkerText = "[TOC]"

// TOCConfig configures the table-of-contents builder.
type TOCConfig struct {
	Title    string
	MinDepth int // minimum heading level included
	MaxDepth int // maximum heading level included
}

// tocEntry is one heading recorded for the table of contents.
type tocEntry struct {
	Level int
	ID    string
	Text  string
}

// TOCTransform builds a numbered table of contents from the heading
// elements present in the tree, including headings carried inside
// marker containers by the insertion transform. Headings without ids
// are skipped.
type TOCTransform struct {
	Config         *TOCConfig // nil disables TOC generation
	PermalinkClass string
}

// Transform collects headings and inserts the generated <nav>.
func (t *TOCTransform) Transform(root *html.Node) {
	if t.Config == nil {
		return
	}
	entries := t.collect(root)
	if len(entries) == 0 {
		return
	}
	nav := t.buildNav(entries)
	placeNav(root, nav)
}

// collect gathers TOC entries in document order within depth bounds.
func (t *TOCTransform) collect(root *html.Node) []tocEntry {
	minDepth := t.Config.MinDepth
	if minDepth == 0 {
		minDepth = DefaultTOCMinDepth
	}
	maxDepth := t.Config.MaxDepth
	if maxDepth == 0 {
		maxDepth = DefaultTOCMaxDepth
	}

	var entries []tocEntry
	htmltree.WalkElements(root, func(el *html.Node) {
		level := htmltree.HeadingLevel(el)
		if level < minDepth || level > maxDepth {
			return
		}
		id, ok := htmltree.Attr(el, "id")
		if !ok || id == "" {
			return
		}
		entries = append(entries, tocEntry{
			Level: level,
			ID:    id,
			Text:  headingText(el, t.PermalinkClass),
		})
	})
	return entries
}

// headingText returns the heading's text content with the permalink
// anchor excluded.
func headingText(el *html.Node, permalinkClass string) string {
	var buf strings.Builder
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && htmltree.HasClass(c, permalinkClass) {
			continue
		}
		buf.WriteString(htmltree.Text(c))
	}
	return strings.TrimSpace(buf.String())
}

// buildNav renders the entries as a <nav class="toc"> element tree.
func (t *TOCTransform) buildNav(entries []tocEntry) *html.Node {
	nav := htmltree.Element("nav", "class", "toc")

	if t.Config.Title != "" {
		title := htmltree.Element("h2", "class", "toc-title")
		title.AppendChild(htmltree.TextNode(t.Config.Title))
		nav.AppendChild(title)
	}

	list := htmltree.Element("div", "class", "toc-list")
	numbering := newNumberingState()

	for _, e := range entries {
		num, effectiveDepth := numbering.next(e.Level)

		item := htmltree.Element("div", "class", "toc-item")
		if indent := float64(effectiveDepth-1) * 1.5; indent > 0 {
			htmltree.SetAttr(item, "style", fmt.Sprintf("padding-left:%.1fem", indent))
		}
		link := htmltree.Element("a", "href", "#"+e.ID)
		link.AppendChild(htmltree.TextNode(num + " " + e.Text))
		item.AppendChild(link)
		list.AppendChild(item)
	}

	nav.AppendChild(list)
	return nav
}

// placeNav replaces a [TOC] marker paragraph, or prepends the nav to
// the document when no marker exists.
func placeNav(root *html.Node, nav *html.Node) {
	var marker *html.Node
	htmltree.WalkElements(root, func(el *html.Node) {
		if marker != nil || el.Data != "p" {
			return
		}
		if strings.TrimSpace(htmltree.Text(el)) == tocMarkerText {
			marker = el
		}
	})
	if marker != nil {
		marker.Parent.InsertBefore(nav, marker)
		marker.Parent.RemoveChild(marker)
		return
	}
	root.InsertBefore(nav, root.FirstChild)
}

// numberingState tracks hierarchical numbering for TOC entries.
// The first heading seen becomes level 1 regardless of its tag, and
// level jumps (h1 -> h3) are treated as direct children.
type numberingState struct {
	counters     [6]int
	minLevelSeen int
	lastLevel    int
}

func newNumberingState() *numberingState {
	return &numberingState{}
}

// next returns the number string ("1.2.") and effective depth for the
// given heading level.
func (n *numberingState) next(level int) (string, int) {
	if n.minLevelSeen == 0 {
		n.minLevelSeen = level
	}

	effectiveDepth := level - n.minLevelSeen + 1
	if effectiveDepth < 1 {
		effectiveDepth = 1
	}
	if n.lastLevel > 0 && effectiveDepth > n.lastLevel+1 {
		effectiveDepth = n.lastLevel + 1
	}

	for i := effectiveDepth; i < 6; i++ {
		n.counters[i] = 0
	}
	n.counters[effectiveDepth-1]++
	n.lastLevel = effectiveDepth

	parts := make([]string, 0, effectiveDepth)
	for i := 0; i < effectiveDepth; i++ {
		parts = append(parts, strconv.Itoa(n.counters[i]))
	}
	return strings.Join(parts, ".") + ".", effectiveDepth
}
