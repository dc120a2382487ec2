package pipeline

import "golang.org/x/net/html"

// Associations maps each converted fragment output to the headings
// harvested while producing it. It lives for exactly one host document
// render pass: written once per conversion, consumed once by the
// insertion transform.
//
// The key is the exact HTML text returned by the conversion. Because
// two executed blocks can legitimately produce byte-identical output,
// each key holds a FIFO queue of heading batches instead of a single
// value; insertion consumes one batch per matched element in document
// order, so identical outputs keep their own headings.
type Associations struct {
	batches map[string][][]*html.Node
}

// NewAssociations creates an empty association table.
func NewAssociations() *Associations {
	return &Associations{batches: make(map[string][][]*html.Node)}
}

// Record appends a heading batch for the given converted output.
// Empty batches are recorded too: the queue positions must line up
// with the fragments in document order.
func (a *Associations) Record(output string, headings []*html.Node) {
	a.batches[output] = append(a.batches[output], headings)
}

// Take removes and returns the oldest heading batch recorded for the
// given output, or nil when none remains.
func (a *Associations) Take(output string) []*html.Node {
	queue := a.batches[output]
	if len(queue) == 0 {
		return nil
	}
	batch := queue[0]
	a.batches[output] = queue[1:]
	return batch
}

// Empty reports whether no batch with headings remains.
func (a *Associations) Empty() bool {
	for _, queue := range a.batches {
		for _, batch := range queue {
			if len(batch) > 0 {
				return false
			}
		}
	}
	return true
}
