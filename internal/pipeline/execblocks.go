package pipeline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// execStateKey carries the per-render ExecState through the goldmark
// parser context into the AST transformer.
var execStateKey = parser.NewContextKey()

// ExecHandler executes one marked code block and returns the converted
// fragment HTML to stand in its place.
type ExecHandler func(language, source string, options map[string]string) (string, error)

// ExecState is the per-host-render state shared between the host
// renderer and the exec-fence transformer.
type ExecState struct {
	// Handle runs a block and converts its output.
	Handle ExecHandler
	// Stash maps opaque placeholders to converted fragment HTML. The
	// placeholders pass through host parsing as plain text and are
	// substituted back after all tree transforms have run.
	Stash map[string]string
	// NewPlaceholder mints a fresh opaque placeholder token.
	NewPlaceholder func() string
	// Errs collects failures raised while handling blocks; goldmark
	// transformers cannot return errors, so the host renderer surfaces
	// these after conversion.
	Errs []error
}

// WithExecState returns a parser.ParseOption exposing state to the
// exec-fence transformer for one conversion.
func WithExecState(pctx parser.Context, state *ExecState) parser.Context {
	pctx.Set(execStateKey, state)
	return pctx
}

// optionPattern matches key="value" pairs in a fence info line.
var optionPattern = regexp.MustCompile(`([A-Za-z_][\w-]*)(?:="([^"]*)")?`)

// ParseFenceInfo splits a fence info line into the language word and an
// options mapping. Bare words after the language are treated as boolean
// flags ("exec" becomes exec="true").
func ParseFenceInfo(info string) (string, map[string]string) {
	fields := optionPattern.FindAllStringSubmatch(info, -1)
	if len(fields) == 0 {
		return "", nil
	}
	language := fields[0][1]
	options := make(map[string]string, len(fields)-1)
	for _, f := range fields[1:] {
		if f[2] == "" && !strings.Contains(f[0], "=") {
			options[f[1]] = "true"
			continue
		}
		options[f[1]] = f[2]
	}
	return language, options
}

// ExecBlockTransformer replaces fenced code blocks marked for execution
// with an opaque placeholder paragraph. The block is executed and its
// output converted while the host document is still being parsed, so
// the host tree never contains the fragment's elements, only the
// placeholder text the insertion transform matches on.
type ExecBlockTransformer struct{}

// Transform collects marked fences, executes them in document order,
// and swaps each for its placeholder.
func (t *ExecBlockTransformer) Transform(doc *ast.Document, reader text.Reader, pctx parser.Context) {
	state, ok := pctx.Get(execStateKey).(*ExecState)
	if !ok || state == nil {
		return
	}

	// Collect first: the tree must not change mid-walk.
	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, enter bool) (ast.WalkStatus, error) {
		if !enter {
			return ast.WalkContinue, nil
		}
		fence, isFence := n.(*ast.FencedCodeBlock)
		if !isFence || fence.Info == nil {
			return ast.WalkContinue, nil
		}
		fences = append(fences, fence)
		return ast.WalkContinue, nil
	})

	for _, fence := range fences {
		info := string(fence.Info.Segment.Value(reader.Source()))
		language, options := ParseFenceInfo(info)
		if options["exec"] != "true" {
			continue
		}

		source := fenceSource(fence, reader.Source())
		converted, err := state.Handle(language, source, options)
		if err != nil {
			state.Errs = append(state.Errs, err)
			continue
		}

		placeholder := state.NewPlaceholder()
		state.Stash[placeholder] = converted

		para := ast.NewParagraph()
		para.AppendChild(para, ast.NewString([]byte(placeholder)))
		parent := fence.Parent()
		if parent != nil {
			parent.ReplaceChild(parent, fence, para)
		}
	}
}

// fenceSource concatenates the code lines of a fenced block.
func fenceSource(fence *ast.FencedCodeBlock, source []byte) string {
	var buf strings.Builder
	lines := fence.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimRight(buf.String(), "\n")
}
