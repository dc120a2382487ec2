package mdexec

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-mdexec/internal/htmltree"
	"github.com/alnah/go-mdexec/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ htmltree.Transform = (*pipeline.NamespaceTransform)(nil)
	_ htmltree.Transform = (*pipeline.HeadingAnchors)(nil)
	_ htmltree.Transform = (*pipeline.HarvestTransform)(nil)
	_ htmltree.Transform = (*pipeline.InsertHeadingsTransform)(nil)
	_ htmltree.Transform = (*pipeline.TOCTransform)(nil)
	_ htmltree.Transform = (*pipeline.RemoveHeadingsTransform)(nil)
)

// Renderer renders Markdown documents whose executed code blocks emit
// further Markdown. It is the per-document context for nested
// conversion: it tracks the current nesting depth, keeps one shadow
// renderer per depth, mints collision-free identifier namespaces, and
// carries harvested headings back into the host document's table of
// contents.
//
// A Renderer is not safe for concurrent use: conversion is synchronous
// and re-entrant, with nesting expressed as recursion into Convert
// while the outer call is still on the stack.
type Renderer struct {
	cfg   rendererConfig
	host  *pipeline.HostRenderer
	assoc *pipeline.Associations

	// shadows is indexed by nesting depth. Lazily grown, so total
	// renderer construction is bounded by the maximum depth actually
	// used, not by the number of executed blocks.
	shadows []*pipeline.ShadowRenderer
	depth   int
	counter int
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g. WithTOC, WithExecutor).
// Returns an error if the TOC configuration is invalid.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			tabs:           DefaultTabs(),
			permalinkClass: pipeline.DefaultPermalinkClass,
			executors:      make(map[string]ExecuteFunc),
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.cfg.toc.Validate(); err != nil {
		return nil, err
	}

	r.host = pipeline.NewHostRenderer(pipeline.HostConfig{
		TOC:            r.cfg.toc.tocConfig(),
		PermalinkClass: r.cfg.permalinkClass,
	})
	r.assoc = pipeline.NewAssociations()
	return r, nil
}

// Render runs the full host document pass: preprocessing, conversion
// with exec-block handling, heading insertion, table-of-contents
// construction, heading removal, and document shell wrapping. The
// context is used for cancellation.
//
// Shadow renderers and heading associations never survive across host
// documents; each call starts from a clean slate.
func (r *Renderer) Render(ctx context.Context, markdown string) (string, error) {
	if markdown == "" {
		return "", ErrEmptyMarkdown
	}

	r.shadows = nil
	r.assoc = pipeline.NewAssociations()

	content := pipeline.Preprocess(markdown)
	body, err := r.host.Render(ctx, content, r.newExecState(), r.assoc)
	if err != nil {
		return "", err
	}

	body = pipeline.RestoreHighlights(body)
	return pipeline.WrapDocument(r.cfg.title, r.cfg.style, body), nil
}

// Convert renders one Markdown fragment to HTML using a shadow
// renderer at the current nesting depth. Every identifier minted
// during the call is prefixed with a fresh namespace token, and any
// headings found in the fragment are recorded for later insertion
// into the host document's table of contents.
//
// stash maps opaque placeholders to literal HTML that must bypass
// Markdown parsing (pre-rendered executor output). Each placeholder
// literally present in the converted text is substituted after
// conversion, never re-parsed; a placeholder that was dropped by
// surrounding formatting is silently skipped.
//
// Convert nests safely to arbitrary depth: a fragment containing
// another executed block re-enters here with depth bookkeeping and
// per-depth renderers keeping every level independent. Depth is
// restored even when conversion fails.
func (r *Renderer) Convert(text string, stash map[string]string) (string, error) {
	shadow := r.shadowAt(r.depth)
	r.depth++
	defer func() { r.depth-- }()

	token := fmt.Sprintf("exec-%d--", r.counter)
	r.counter++

	out, headings, err := shadow.Convert(text, token, r.newExecState())
	if err != nil {
		return "", err
	}

	for placeholder, literal := range stash {
		out = strings.ReplaceAll(out, placeholder, literal)
	}

	r.assoc.Record(out, headings)
	return out, nil
}

// Depth returns the current nesting depth. Zero means no conversion is
// in progress.
func (r *Renderer) Depth() int {
	return r.depth
}

// shadowAt returns the shadow renderer for a nesting depth, creating
// it on first use.
func (r *Renderer) shadowAt(depth int) *pipeline.ShadowRenderer {
	for len(r.shadows) <= depth {
		r.shadows = append(r.shadows, pipeline.NewShadowRenderer(r.cfg.permalinkClass))
	}
	return r.shadows[depth]
}

// newExecState builds the per-conversion exec-fence state.
func (r *Renderer) newExecState() *pipeline.ExecState {
	return &pipeline.ExecState{
		Handle:         r.handleBlock,
		Stash:          make(map[string]string),
		NewPlaceholder: uuid.NewString,
	}
}

// recognizedOptions are fence options consumed by the block handler;
// everything else is passed through to the executor and re-emitted on
// the displayed source block.
var recognizedOptions = map[string]bool{
	"exec":   true,
	"html":   true,
	"source": true,
	"tabs":   true,
	"title":  true,
	"id":     true,
}

// handleBlock runs one exec-marked fence: executes its source, stashes
// pre-rendered HTML output behind a one-shot placeholder, assembles
// source and output per the requested placement, and converts the
// assembled Markdown through Convert.
func (r *Renderer) handleBlock(language, source string, options map[string]string) (string, error) {
	fn, ok := r.cfg.executors[language]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoExecutor, language)
	}

	execSource := source
	displaySource := source
	if language == LocationConsole {
		execSource = consoleCommands(source)
		displaySource = consoleDisplay(source)
	}

	extra := extraOptions(options)
	output, err := fn(execSource, extra)
	if err != nil {
		return "", fmt.Errorf("%w (%s): %v", ErrExecution, language, err)
	}

	stash := make(map[string]string)
	if options["html"] == "true" {
		placeholder := uuid.NewString()
		stash[placeholder] = output
		output = placeholder
	}

	if location := options["source"]; location != "" {
		output, err = Assemble(displaySource, location, output, language, r.tabsFor(options), extra)
		if err != nil {
			return "", err
		}
	}

	return r.Convert(output, stash)
}

// consoleCommands extracts the commands of a console session: the
// lines prefixed with "$ ", with the prefix removed.
func consoleCommands(source string) string {
	var commands []string
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(line, "$ ") {
			commands = append(commands, line[2:])
		}
	}
	return strings.Join(commands, "\n")
}

// consoleDisplay keeps only the command lines for display, prompt
// included.
func consoleDisplay(source string) string {
	var lines []string
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(line, "$ ") {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// tabsFor resolves tab titles for one block: a tabs="Source|Result"
// fence option overrides the renderer default.
func (r *Renderer) tabsFor(options map[string]string) Tabs {
	spec, ok := options["tabs"]
	if !ok {
		return r.cfg.tabs
	}
	parts := strings.SplitN(spec, "|", 2)
	tabs := r.cfg.tabs
	if len(parts) > 0 && parts[0] != "" {
		tabs.Source = parts[0]
	}
	if len(parts) > 1 && parts[1] != "" {
		tabs.Result = parts[1]
	}
	return tabs
}

// extraOptions copies the fence options the handler does not consume.
func extraOptions(options map[string]string) map[string]string {
	extra := make(map[string]string)
	for k, v := range options {
		if !recognizedOptions[k] {
			extra[k] = v
		}
	}
	return extra
}
