package render

import (
	"context"

	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/google/uuid"
)

// ResolutionState distinguishes the three outcomes of a tree lookup.
// They are distinct on purpose: a pending fetch gets a loading
// fallback, a missing pattern gets a deletion warning.
type ResolutionState int

const (
	// StateResolved means Tree carries the pattern's block tree.
	StateResolved ResolutionState = iota
	// StatePending means the fetch is still in flight; the caller shows
	// a loading fallback and re-renders when the data lands.
	StatePending
	// StateMissing means the pattern was deleted or never existed.
	StateMissing
)

type Resolution struct {
	State ResolutionState
	Tree  *blocktree.Node
}

// TreeSource resolves a pattern id to its block tree. Implementations
// may serve from cache, database, or an out-of-band loader; returned
// trees may be shared, so the expander clones before grafting. Errors
// are infrastructure failures only: pending and missing are states,
// not errors.
type TreeSource interface {
	Resolve(ctx context.Context, patternID uuid.UUID) (Resolution, error)
}
