package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// ShadowRenderer converts one fragment of Markdown without disturbing
// the host renderer's state. It is configured with the same extension
// set as the host (so footnotes, tables and highlighting behave
// identically) plus raw-HTML passthrough, which assembled fragments
// need for their tab-set and result-block scaffolding. Exec fences
// inside a fragment are handled too: that is what makes conversion
// nest to arbitrary depth.
//
// One shadow renderer exists per nesting depth, created lazily and kept
// for the lifetime of a single host document render pass. Each owns its
// own namespacing transform and heading buffer, so nested conversions
// at different depths never share mutable state.
type ShadowRenderer struct {
	md        goldmark.Markdown
	pipeline  *htmltree.Pipeline
	namespace *NamespaceTransform
	harvest   *HarvestTransform
}

// NewShadowRenderer builds a shadow renderer whose harvesting transform
// strips the given permalink adornment class.
func NewShadowRenderer(permalinkClass string) *ShadowRenderer {
	r := &ShadowRenderer{
		md:        newMarkdown(fragmentMode, util.Prioritized(&ExecBlockTransformer{}, 100)),
		namespace: &NamespaceTransform{},
		harvest:   &HarvestTransform{PermalinkClass: permalinkClass},
	}
	r.pipeline = htmltree.NewPipeline()
	r.pipeline.Register(&HeadingAnchors{Class: permalinkClass}, PriorityAnchors)
	r.pipeline.Register(r.namespace, PriorityNamespace)
	r.pipeline.Register(r.harvest, PriorityHarvest)
	return r
}

// Convert renders fragment Markdown to HTML under the given namespace
// token, returning the HTML and the headings harvested from it. The
// token applies to this call only; the transform is cleared afterwards
// so an un-namespaced standalone use of the renderer is unaffected.
//
// state handles exec fences nested inside the fragment; their converted
// output re-enters through placeholders exactly as in the host pass.
func (r *ShadowRenderer) Convert(text, token string, state *ExecState) (string, []*html.Node, error) {
	r.namespace.Token = token
	defer func() { r.namespace.Token = "" }()

	pctx := WithExecState(parser.NewContext(), state)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf, parser.WithContext(pctx)); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if len(state.Errs) > 0 {
		return "", nil, errors.Join(state.Errs...)
	}

	root, err := htmltree.Parse(buf.String())
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	r.pipeline.Run(root)

	out, err := htmltree.Render(root)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	return restoreStash(out, state.Stash), r.harvest.Drain(), nil
}
