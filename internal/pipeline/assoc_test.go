package pipeline_test

import (
	"testing"

	"golang.org/x/net/html"

	"github.com/alnah/go-mdexec/internal/htmltree"
	"github.com/alnah/go-mdexec/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestAssociations - FIFO heading batches keyed by fragment output
// ---------------------------------------------------------------------------

func TestAssociations(t *testing.T) {
	t.Parallel()

	heading := func(id string) *html.Node {
		h := htmltree.Element("h2", "id", id)
		h.AppendChild(htmltree.TextNode(id))
		return h
	}

	t.Run("identical outputs keep separate batches", func(t *testing.T) {
		t.Parallel()

		assoc := pipeline.NewAssociations()
		assoc.Record("<p>same</p>", []*html.Node{heading("exec-0--a")})
		assoc.Record("<p>same</p>", []*html.Node{heading("exec-1--a")})

		first := assoc.Take("<p>same</p>")
		if len(first) != 1 {
			t.Fatalf("first batch len = %d, want 1", len(first))
		}
		if id, _ := htmltree.Attr(first[0], "id"); id != "exec-0--a" {
			t.Errorf("first batch id = %q, want %q", id, "exec-0--a")
		}

		second := assoc.Take("<p>same</p>")
		if id, _ := htmltree.Attr(second[0], "id"); id != "exec-1--a" {
			t.Errorf("second batch id = %q, want %q", id, "exec-1--a")
		}

		if third := assoc.Take("<p>same</p>"); third != nil {
			t.Errorf("exhausted queue returned %v, want nil", third)
		}
	})

	t.Run("unknown output returns nil", func(t *testing.T) {
		t.Parallel()

		assoc := pipeline.NewAssociations()
		if got := assoc.Take("<p>never recorded</p>"); got != nil {
			t.Errorf("Take on unknown output = %v, want nil", got)
		}
	})

	t.Run("empty accounts only for batches with headings", func(t *testing.T) {
		t.Parallel()

		assoc := pipeline.NewAssociations()
		if !assoc.Empty() {
			t.Error("new table should be empty")
		}

		assoc.Record("<p>no headings</p>", nil)
		if !assoc.Empty() {
			t.Error("table with only empty batches should report empty")
		}

		assoc.Record("<p>with</p>", []*html.Node{heading("exec-0--x")})
		if assoc.Empty() {
			t.Error("table with a heading batch should not report empty")
		}

		assoc.Take("<p>with</p>")
		if !assoc.Empty() {
			t.Error("table should be empty after consuming the only batch")
		}
	})
}
