package mdexec_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	mdexec "github.com/alnah/go-mdexec"
)

// fence builds a fenced exec block for test documents.
func fence(info, source string) string {
	return "```" + info + "\n" + source + "\n```\n"
}

// ---------------------------------------------------------------------------
// TestNewRenderer - Construction and option validation
// ---------------------------------------------------------------------------

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []mdexec.Option
		wantErr error
	}{
		{
			name: "defaults",
			opts: nil,
		},
		{
			name: "valid TOC bounds",
			opts: []mdexec.Option{mdexec.WithTOC(mdexec.TOC{MinDepth: 2, MaxDepth: 4})},
		},
		{
			name:    "min depth out of range",
			opts:    []mdexec.Option{mdexec.WithTOC(mdexec.TOC{MinDepth: 9})},
			wantErr: mdexec.ErrInvalidTOCDepth,
		},
		{
			name:    "max depth out of range",
			opts:    []mdexec.Option{mdexec.WithTOC(mdexec.TOC{MaxDepth: 7})},
			wantErr: mdexec.ErrInvalidTOCDepth,
		},
		{
			name:    "min exceeds max",
			opts:    []mdexec.Option{mdexec.WithTOC(mdexec.TOC{MinDepth: 4, MaxDepth: 2})},
			wantErr: mdexec.ErrInvalidTOCDepth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := mdexec.NewRenderer(tt.opts...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r == nil {
				t.Fatal("renderer is nil")
			}
			if r.Depth() != 0 {
				t.Errorf("initial depth = %d, want 0", r.Depth())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender - Host document rendering end to end
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	t.Run("empty markdown rejected", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer()
		_, err := r.Render(context.Background(), "")
		if !errors.Is(err, mdexec.ErrEmptyMarkdown) {
			t.Errorf("error = %v, want ErrEmptyMarkdown", err)
		}
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r, _ := mdexec.NewRenderer()
		_, err := r.Render(ctx, "# Doc")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("plain document wrapped in shell", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(mdexec.WithTitle("My Doc"), mdexec.WithStyle("body{}"))
		out, err := r.Render(context.Background(), "# Hello\n\nWorld")
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		for _, want := range []string{
			"<!DOCTYPE html>",
			"<title>My Doc</title>",
			"<style>body{}</style>",
			`<h1 id="hello">Hello`,
			"<p>World</p>",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q, got: %s", want, out)
			}
		}
	})

	t.Run("highlights become mark tags", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer()
		out, err := r.Render(context.Background(), "some ==important== text")
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(out, "<mark>important</mark>") {
			t.Errorf("highlight not converted: %s", out)
		}
	})

	t.Run("executed block output replaces the fence", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithTOC(mdexec.TOC{}),
			mdexec.WithExecutor("md", func(source string, options map[string]string) (string, error) {
				return "## Fragment\n\nHello", nil
			}),
		)

		doc := "# Top\n\n" + fence(`md exec="true"`, "ignored")
		out, err := r.Render(context.Background(), doc)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}

		for _, want := range []string{
			`<h2 id="exec-0--fragment">Fragment`,
			"<p>Hello</p>",
			`<a href="#top">1. Top</a>`,
			`<a href="#exec-0--fragment">1.1. Fragment</a>`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q, got: %s", want, out)
			}
		}
		if strings.Contains(out, "mdexec-headings") {
			t.Errorf("heading carrier survived into output: %s", out)
		}
		if strings.Contains(out, "ignored") {
			t.Errorf("fence source leaked into output: %s", out)
		}
	})

	t.Run("missing executor fails", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer()
		_, err := r.Render(context.Background(), fence(`py exec="true"`, "print(1)"))
		if !errors.Is(err, mdexec.ErrNoExecutor) {
			t.Errorf("error = %v, want ErrNoExecutor", err)
		}
	})

	t.Run("executor failure wrapped", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				return "", errors.New("interpreter crashed")
			}),
		)
		_, err := r.Render(context.Background(), fence(`py exec="true"`, "print(1)"))
		if !errors.Is(err, mdexec.ErrExecution) {
			t.Fatalf("error = %v, want ErrExecution", err)
		}
		if !strings.Contains(err.Error(), "interpreter crashed") {
			t.Errorf("cause lost: %v", err)
		}
	})

	t.Run("depth restored after failed render", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				return "", errors.New("boom")
			}),
		)
		_, err := r.Render(context.Background(), fence(`py exec="true"`, "x"))
		if err == nil {
			t.Fatal("expected error")
		}
		if r.Depth() != 0 {
			t.Errorf("depth after failure = %d, want 0", r.Depth())
		}
	})

	t.Run("unmarked fences are not executed", func(t *testing.T) {
		t.Parallel()

		called := false
		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				called = true
				return "", nil
			}),
		)
		out, err := r.Render(context.Background(), fence("py", "print(1)"))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if called {
			t.Error("unmarked fence was executed")
		}
		if !strings.Contains(out, "print") {
			t.Errorf("code block content missing: %s", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRenderNesting - Fragments that contain further executed blocks
// ---------------------------------------------------------------------------

func TestRenderNesting(t *testing.T) {
	t.Parallel()

	var r *mdexec.Renderer
	var depths []int
	calls := 0

	r, err := mdexec.NewRenderer(
		mdexec.WithExecutor("md", func(source string, options map[string]string) (string, error) {
			depths = append(depths, r.Depth())
			calls++
			if calls == 1 {
				return "## Outer\n\n" + fence(`md exec="true"`, "x"), nil
			}
			return "### Inner", nil
		}),
	)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}

	out, err := r.Render(context.Background(), "# Top\n\n"+fence(`md exec="true"`, "x"))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Host-level block executes at depth 0, the nested one while the
	// outer fragment conversion is still on the stack.
	if len(depths) != 2 || depths[0] != 0 || depths[1] != 1 {
		t.Errorf("executor depths = %v, want [0 1]", depths)
	}
	if r.Depth() != 0 {
		t.Errorf("final depth = %d, want 0", r.Depth())
	}

	// Each conversion minted its own namespace token.
	for _, want := range []string{
		`id="exec-0--outer"`,
		`id="exec-1--inner"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got: %s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRenderBlockOptions - Fence option handling
// ---------------------------------------------------------------------------

func TestRenderBlockOptions(t *testing.T) {
	t.Parallel()

	t.Run("html output bypasses markdown parsing", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				return `<div id="raw">*not emphasis*</div>`, nil
			}),
		)
		out, err := r.Render(context.Background(), fence(`py exec="true" html="true"`, "x"))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(out, `<div id="raw">*not emphasis*</div>`) {
			t.Errorf("pre-rendered HTML altered: %s", out)
		}
		if strings.Contains(out, "<em>") {
			t.Errorf("stashed HTML was re-parsed as markdown: %s", out)
		}
	})

	t.Run("source option assembles displayed code", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				return "the output", nil
			}),
		)
		out, err := r.Render(context.Background(), fence(`py exec="true" source="above"`, "print(1)"))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(out, "print") {
			t.Errorf("displayed source missing: %s", out)
		}
		if !strings.Contains(out, "the output") {
			t.Errorf("execution output missing: %s", out)
		}
	})

	t.Run("invalid source location fails", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				return "out", nil
			}),
		)
		_, err := r.Render(context.Background(), fence(`py exec="true" source="sideways"`, "x"))
		if !errors.Is(err, mdexec.ErrUnsupportedLocation) {
			t.Errorf("error = %v, want ErrUnsupportedLocation", err)
		}
	})

	t.Run("tabs option overrides default titles", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(string, map[string]string) (string, error) {
				return "out", nil
			}),
		)
		out, err := r.Render(context.Background(),
			fence(`py exec="true" source="tabbed-left" tabs="Code|Answer"`, "x"))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(out, ">Code</label>") || !strings.Contains(out, ">Answer</label>") {
			t.Errorf("custom tab titles missing: %s", out)
		}
	})

	t.Run("console block strips prompts for execution", func(t *testing.T) {
		t.Parallel()

		var executed string
		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("console", func(source string, options map[string]string) (string, error) {
				executed = source
				return "hi", nil
			}),
		)
		out, err := r.Render(context.Background(),
			fence(`console exec="true" source="console"`, "$ echo hi\nstale output"))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if executed != "echo hi" {
			t.Errorf("executed = %q, want %q", executed, "echo hi")
		}
		if !strings.Contains(out, "echo hi") {
			t.Errorf("displayed command missing: %s", out)
		}
		if strings.Contains(out, "stale output") {
			t.Errorf("non-command line survived into display: %s", out)
		}
	})

	t.Run("unrecognized options reach the executor", func(t *testing.T) {
		t.Parallel()

		var got map[string]string
		r, _ := mdexec.NewRenderer(
			mdexec.WithExecutor("py", func(source string, options map[string]string) (string, error) {
				got = options
				return "out", nil
			}),
		)
		_, err := r.Render(context.Background(),
			fence(`py exec="true" session="s1" title="T"`, "x"))
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if got["session"] != "s1" {
			t.Errorf("session option = %q, want %q", got["session"], "s1")
		}
		if _, ok := got["exec"]; ok {
			t.Error("consumed option leaked to executor")
		}
		if _, ok := got["title"]; ok {
			t.Error("recognized option leaked to executor")
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvert - Direct fragment conversion
// ---------------------------------------------------------------------------

func TestConvert(t *testing.T) {
	t.Parallel()

	t.Run("fresh token per conversion", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer()
		first, err := r.Convert("# Title\n\nBody", nil)
		if err != nil {
			t.Fatalf("first Convert failed: %v", err)
		}
		second, err := r.Convert("# Title\n\nBody", nil)
		if err != nil {
			t.Fatalf("second Convert failed: %v", err)
		}

		if !strings.Contains(first, `id="exec-0--title"`) {
			t.Errorf("first output missing token: %s", first)
		}
		if !strings.Contains(second, `id="exec-1--title"`) {
			t.Errorf("second output missing token: %s", second)
		}
	})

	t.Run("stash substitutes literal HTML", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer()
		out, err := r.Convert("before PLACEHOLDER-1 after", map[string]string{
			"PLACEHOLDER-1": `<video src="demo.mp4"></video>`,
		})
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if !strings.Contains(out, `<video src="demo.mp4"></video>`) {
			t.Errorf("stashed HTML missing: %s", out)
		}
		if strings.Contains(out, "PLACEHOLDER-1") {
			t.Errorf("placeholder survived: %s", out)
		}
	})

	t.Run("dropped placeholder is a silent no-op", func(t *testing.T) {
		t.Parallel()

		r, _ := mdexec.NewRenderer()
		out, err := r.Convert("no placeholder here", map[string]string{
			"NEVER-PRESENT": "<b>x</b>",
		})
		if err != nil {
			t.Fatalf("Convert failed: %v", err)
		}
		if strings.Contains(out, "<b>x</b>") {
			t.Errorf("absent placeholder substituted anyway: %s", out)
		}
	})
}
