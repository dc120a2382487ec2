package mdexec

import (
	"fmt"

	"github.com/alnah/go-mdexec/internal/pipeline"
)

// Source placement locations. They control where the source code of an
// executed block appears relative to its output.
const (
	LocationAbove         = "above"
	LocationBelow         = "below"
	LocationTabbedLeft    = "tabbed-left"
	LocationTabbedRight   = "tabbed-right"
	LocationMaterialBlock = "material-block"
	LocationConsole       = "console"
)

// TOC depth bounds.
const (
	MinTOCDepth = 1
	MaxTOCDepth = 6
)

// Tabs holds the tab titles used by the tabbed placements.
type Tabs struct {
	Source string
	Result string
}

// DefaultTabs returns the default tab titles.
func DefaultTabs() Tabs {
	return Tabs{Source: "Source", Result: "Result"}
}

// TOC configures table-of-contents generation for the host document.
type TOC struct {
	Title    string
	MinDepth int // minimum heading level (0 = include h1)
	MaxDepth int // maximum heading level (0 = include h6)
}

// Validate checks that TOC depth bounds are valid.
// Returns nil if t is nil (nil means no TOC).
func (t *TOC) Validate() error {
	if t == nil {
		return nil
	}
	if t.MinDepth != 0 && (t.MinDepth < MinTOCDepth || t.MinDepth > MaxTOCDepth) {
		return fmt.Errorf("%w: min %d (must be between %d and %d)", ErrInvalidTOCDepth, t.MinDepth, MinTOCDepth, MaxTOCDepth)
	}
	if t.MaxDepth != 0 && (t.MaxDepth < MinTOCDepth || t.MaxDepth > MaxTOCDepth) {
		return fmt.Errorf("%w: max %d (must be between %d and %d)", ErrInvalidTOCDepth, t.MaxDepth, MinTOCDepth, MaxTOCDepth)
	}
	if t.MinDepth != 0 && t.MaxDepth != 0 && t.MinDepth > t.MaxDepth {
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidTOCDepth, t.MinDepth, t.MaxDepth)
	}
	return nil
}

// ExecuteFunc runs the source of one executed block and returns its
// output. Recognized option keys vary by executor; unrecognized fence
// options are passed through verbatim.
//
// Execution backends are external collaborators: the library never
// runs code itself, it only converts what executors return.
type ExecuteFunc func(source string, options map[string]string) (string, error)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	title          string
	style          string
	toc            *TOC
	tabs           Tabs
	permalinkClass string
	executors      map[string]ExecuteFunc
}

// WithTitle sets the <title> of the rendered document.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		r.cfg.title = title
	}
}

// WithStyle embeds CSS content into the rendered document.
func WithStyle(css string) Option {
	return func(r *Renderer) {
		r.cfg.style = css
	}
}

// WithTOC enables table-of-contents generation.
func WithTOC(toc TOC) Option {
	return func(r *Renderer) {
		r.cfg.toc = &toc
	}
}

// WithTabs sets the default tab titles for tabbed source placements.
func WithTabs(tabs Tabs) Option {
	return func(r *Renderer) {
		r.cfg.tabs = tabs
	}
}

// WithPermalinkClass overrides the class of the anchor adornment
// appended to identified headings.
func WithPermalinkClass(class string) Option {
	return func(r *Renderer) {
		r.cfg.permalinkClass = class
	}
}

// WithExecutor registers an executor for a fence language. Blocks
// marked exec="true" with that language are run through fn.
func WithExecutor(language string, fn ExecuteFunc) Option {
	return func(r *Renderer) {
		r.cfg.executors[language] = fn
	}
}

// tocConfig converts the public TOC type to the internal pipeline
// configuration.
func (t *TOC) tocConfig() *pipeline.TOCConfig {
	if t == nil {
		return nil
	}
	return &pipeline.TOCConfig{
		Title:    t.Title,
		MinDepth: t.MinDepth,
		MaxDepth: t.MaxDepth,
	}
}
