package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdexec/internal/htmltree"
)

// HostConfig configures a host document renderer.
type HostConfig struct {
	TOC            *TOCConfig // nil disables TOC generation
	PermalinkClass string
}

// HostRenderer renders the top-level document. Exec-marked fences are
// executed and converted during parsing; their output re-enters the
// document through opaque placeholders after the tree transforms have
// run, so the host parser itself never needs raw HTML passthrough.
type HostRenderer struct {
	md  goldmark.Markdown
	cfg HostConfig
}

// NewHostRenderer builds a host renderer for one or more document
// render passes with a fixed configuration.
func NewHostRenderer(cfg HostConfig) *HostRenderer {
	if cfg.PermalinkClass == "" {
		cfg.PermalinkClass = DefaultPermalinkClass
	}
	return &HostRenderer{
		md: newMarkdown(hostMode, util.Prioritized(&ExecBlockTransformer{}, 100)),
		cfg: cfg,
	}
}

// Render converts host Markdown to body HTML. The state carries the
// exec handler and the placeholder stash for this pass; assoc receives
// the heading batches recorded by nested conversions and feeds the
// insertion transform.
//
// Goldmark does not support context natively, so cancellation uses the
// goroutine + select pattern; a cancelled context abandons the result.
func (h *HostRenderer) Render(ctx context.Context, markdown string, state *ExecState, assoc *Associations) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		out, err := h.render(markdown, state, assoc)
		done <- result{html: out, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// render is the synchronous conversion pass.
func (h *HostRenderer) render(markdown string, state *ExecState, assoc *Associations) (string, error) {
	pctx := WithExecState(parser.NewContext(), state)

	var buf bytes.Buffer
	if err := h.md.Convert([]byte(markdown), &buf, parser.WithContext(pctx)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}
	if len(state.Errs) > 0 {
		return "", errors.Join(state.Errs...)
	}

	root, err := htmltree.Parse(buf.String())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	pipeline := htmltree.NewPipeline()
	pipeline.Register(&HeadingAnchors{Class: h.cfg.PermalinkClass}, PriorityAnchors)
	pipeline.Register(&InsertHeadingsTransform{Stash: state.Stash, Assoc: assoc}, PriorityInsertHeadings)
	pipeline.Register(&TOCTransform{Config: h.cfg.TOC, PermalinkClass: h.cfg.PermalinkClass}, PriorityTOC)
	pipeline.Register(&RemoveHeadingsTransform{}, PriorityRemoveHeadings)
	pipeline.Run(root)

	out, err := htmltree.Render(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	return restoreStash(out, state.Stash), nil
}

// restoreStash substitutes fragment HTML back for its placeholders.
// Block-level placeholders replace their whole wrapping paragraph so
// block elements never end up nested inside <p>. A placeholder that
// never made it into the output is silently skipped: it is plain text
// and may legitimately have been dropped by surrounding formatting.
func restoreStash(out string, stash map[string]string) string {
	for placeholder, fragment := range stash {
		wrapped := "<p>" + placeholder + "</p>"
		if strings.Contains(out, wrapped) {
			out = strings.Replace(out, wrapped, fragment, 1)
			continue
		}
		out = strings.Replace(out, placeholder, fragment, 1)
	}
	return out
}
