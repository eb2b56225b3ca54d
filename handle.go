package grib2

import (
	"fmt"

	"github.com/sdifrance/grib2/scanner"
)

// SubmessageIndex locates one submessage: which top-level GRIB message it
// came from, and which repeated-section group within that message.
type SubmessageIndex struct {
	Message, Submessage int
}

// Handle is the result of Open: every submessage a GRIB2 byte source
// contains, accessible by index.
type Handle struct {
	submessages []scanner.Submessage
}

// Len returns the number of submessages Open found.
func (h *Handle) Len() int {
	return len(h.submessages)
}

// Submessage returns the i'th submessage by positional order (not by
// SubmessageIndex — use All to get both together).
func (h *Handle) Submessage(i int) (*Submessage, error) {
	if i < 0 || i >= len(h.submessages) {
		return nil, fmt.Errorf("grib2: submessage index %d out of range [0, %d)", i, len(h.submessages))
	}
	return &Submessage{raw: h.submessages[i]}, nil
}

// All returns every submessage in the order Open found them, paired with
// its SubmessageIndex.
func (h *Handle) All() []IndexedSubmessage {
	out := make([]IndexedSubmessage, len(h.submessages))
	for i, s := range h.submessages {
		out[i] = IndexedSubmessage{
			Index:      SubmessageIndex{Message: s.MessageIndex, Submessage: s.SubmessageIndex},
			Submessage: &Submessage{raw: s},
		}
	}
	return out
}

// IndexedSubmessage pairs a Submessage with its SubmessageIndex, the
// element type All returns.
//
// go.mod pins Go 1.21, a release before iter.Seq2 and range-over-func
// (Go 1.23), so All returns a slice rather than an iterator.
type IndexedSubmessage struct {
	Index      SubmessageIndex
	Submessage *Submessage
}
