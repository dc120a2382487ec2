// Package mdexec renders Markdown documents whose code blocks are
// executed, converting each block's Markdown output with the same
// extension configuration as the enclosing document and re-integrating
// any headings it produces into the host document's table of contents.
//
// # Quick Start
//
// Create a renderer, register an executor, and render:
//
//	r, err := mdexec.NewRenderer(
//	    mdexec.WithExecutor("python", runPython),
//	    mdexec.WithTOC(mdexec.TOC{Title: "Contents"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html, err := r.Render(ctx, source)
//
// Fenced code blocks marked exec="true" are run through the registered
// executor for their language:
//
//	```python exec="true" source="tabbed-left"
//	print("# Hello\n\nWorld")
//	```
//
// # Conversion Pipeline
//
// The render process follows these stages:
//
//  1. Markdown preprocessing (line normalization, ==highlight== syntax)
//  2. Host conversion via Goldmark (GFM, footnotes, syntax highlighting);
//     exec-marked fences are executed, their output converted by a
//     shadow renderer and stashed behind an opaque placeholder
//  3. Tree transforms: permalink anchors, harvested-heading insertion,
//     table-of-contents construction, heading-carrier removal
//  4. Placeholder restoration and document shell wrapping
//
// Each nesting depth of executed blocks gets its own lazily created
// shadow renderer, and every conversion mints a unique identifier
// namespace (exec-0--, exec-1--, ...) so ids from different fragments
// never collide. Headings found inside a fragment are harvested and
// spliced back into the host tree just long enough for the
// table-of-contents builder to record them, then removed so no heading
// is rendered twice.
//
// # Source Placement
//
// The source="..." fence option controls where the block's code appears
// relative to its output: above, below, tabbed-left, tabbed-right,
// material-block, or console. See Assemble.
//
// # Executors
//
// Execution backends are external: register an ExecuteFunc per fence
// language. An executor returning pre-rendered HTML (html="true" on
// the fence) bypasses Markdown parsing through a one-shot placeholder
// stash.
package mdexec
