// Package pipeline implements the document conversion pipeline: goldmark
// construction, the element-tree transforms that namespace identifiers,
// harvest and re-integrate headings, build the table of contents, and the
// exec-fence handling for the host document.
package pipeline

import (
	"errors"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// Tree transform priorities. Lower values run first; adjacent values
// encode required relative placement between passes.
const (
	// PriorityAnchors assigns permalink anchors to identified headings.
	PriorityAnchors = 500
	// PriorityNamespace rewrites identifiers; runs immediately after
	// anchor assignment so namespaced ids include anchor targets.
	PriorityNamespace = 510
	// PriorityInsertHeadings splices harvested headings into the host
	// tree immediately before the table of contents is built.
	PriorityInsertHeadings = 520
	// PriorityTOC builds the table of contents.
	PriorityTOC = 530
	// PriorityRemoveHeadings deletes the heading carriers immediately
	// after the table of contents has been built.
	PriorityRemoveHeadings = 540
	// PriorityHarvest collects headings near the very end of the shadow
	// pipeline, after all identifier rewriting.
	PriorityHarvest = 900
)

// markdownMode selects the goldmark configuration for one renderer.
type markdownMode int

const (
	// hostMode parses the top-level document. Raw HTML stays disabled:
	// fragment output reaches the host via opaque placeholders, never as
	// inline HTML.
	hostMode markdownMode = iota
	// fragmentMode parses executed-block fragments standalone. Raw HTML
	// passthrough is required so assembled scaffolding (tab sets, result
	// wrappers) survives into the fragment tree.
	fragmentMode
)

// newMarkdown builds a goldmark instance with the shared extension set:
// GFM, footnotes, syntax highlighting with CSS classes, and auto heading
// IDs. Both the host renderer and every shadow renderer use this same
// configuration so footnotes, tables and highlighting behave identically
// at every nesting depth.
func newMarkdown(mode markdownMode, transformers ...util.PrioritizedValue) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes, styling stays in the stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // heading ids, required for anchors and the TOC
		),
	}
	if len(transformers) > 0 {
		opts = append(opts, goldmark.WithParserOptions(
			parser.WithASTTransformers(transformers...),
		))
	}
	if mode == fragmentMode {
		opts = append(opts, goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithXHTML(),
		))
	} else {
		opts = append(opts, goldmark.WithRendererOptions(
			html.WithXHTML(),
		))
	}
	return goldmark.New(opts...)
}
