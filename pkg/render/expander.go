package render

import (
	"context"

	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/google/uuid"
)

// Status is the outcome of expanding one pattern occurrence.
type Status string

const (
	StatusRendered Status = "rendered"
	// StatusCycle means the pattern is already being expanded on the
	// current render path. A structural condition, not an error: the
	// occurrence gets a "cannot render inside itself" fallback.
	StatusCycle   Status = "cycle"
	StatusMissing Status = "missing"
	StatusPending Status = "pending"
)

// NestedResult records the outcome of a pattern-reference node
// encountered during expansion, keyed by the node that requested it.
type NestedResult struct {
	NodeID    uuid.UUID
	PatternID uuid.UUID
	Status    Status
}

// Result is the product of one top-level render: the expanded tree,
// every node's edit mode, and the fallback status of each nested
// reference.
type Result struct {
	PatternID uuid.UUID
	Status    Status
	Tree      *blocktree.Node
	Modes     *Registry
	Nested    []*NestedResult
}

// Expander drives one render of a stored pattern: guard the pattern id
// on the render path, resolve its tree through the source, assign edit
// modes, and graft nested pattern content under reference nodes.
type Expander struct {
	source     TreeSource
	classifier blocktree.Classifier
}

func NewExpander(source TreeSource, classifier blocktree.Classifier) *Expander {
	return &Expander{source: source, classifier: classifier}
}

// Expand renders the pattern identified by patternID. A fresh Path and
// Registry are created per call, so concurrent expansions never share
// state.
func (e *Expander) Expand(ctx context.Context, patternID uuid.UUID, overridesEnabled bool) (*Result, error) {
	result := &Result{PatternID: patternID, Modes: NewRegistry()}

	status, tree, err := e.expand(ctx, patternID, overridesEnabled, NewPath(), result)
	if err != nil {
		return nil, err
	}
	result.Status = status
	result.Tree = tree
	return result, nil
}

// ExpandTree renders an ad-hoc tree that is not stored under any
// pattern id, e.g. an unsaved editor document. References inside the
// tree still resolve through the source and guard the render path.
// The caller owns the tree; it is mutated in place.
func (e *Expander) ExpandTree(ctx context.Context, tree *blocktree.Node, overridesEnabled bool) (*Result, error) {
	result := &Result{Status: StatusRendered, Tree: tree, Modes: NewRegistry()}
	if tree == nil {
		return result, nil
	}

	NewPropagator(e.classifier, result.Modes).Propagate(tree, overridesEnabled)

	if err := e.expandRefs(ctx, tree, NewPath(), result); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Expander) expand(ctx context.Context, id uuid.UUID, overridesEnabled bool, path *Path, res *Result) (Status, *blocktree.Node, error) {
	if !path.Enter(id) {
		return StatusCycle, nil, nil
	}
	defer path.Exit(id)

	resolution, err := e.source.Resolve(ctx, id)
	if err != nil {
		return "", nil, err
	}
	switch resolution.State {
	case StatePending:
		return StatusPending, nil, nil
	case StateMissing:
		return StatusMissing, nil, nil
	}

	// The source may hand out a shared (cached) tree; clone before
	// grafting so ownership stays exclusive and node ids stay unique
	// across sibling occurrences of the same pattern.
	tree := resolution.Tree.Clone()

	NewPropagator(e.classifier, res.Modes).Propagate(tree, overridesEnabled)

	if err := e.expandRefs(ctx, tree, path, res); err != nil {
		return "", nil, err
	}
	return StatusRendered, tree, nil
}

// expandRefs walks an already-propagated tree and expands every
// pattern-reference node in place. Grafted subtrees were fully handled
// by the nested expand call, so recursion stops at reference nodes.
func (e *Expander) expandRefs(ctx context.Context, n *blocktree.Node, path *Path, res *Result) error {
	if n.Kind == blocktree.KindPatternRef {
		refID, ok := n.RefID()
		if !ok {
			res.Nested = append(res.Nested, &NestedResult{NodeID: n.Id, Status: StatusMissing})
			return nil
		}

		// Nested patterns are never editable from the parent context:
		// expanding with overrides disabled marks the entire nested
		// subtree disabled, the reference node keeps its own mode.
		status, sub, err := e.expand(ctx, refID, false, path, res)
		if err != nil {
			return err
		}
		res.Nested = append(res.Nested, &NestedResult{NodeID: n.Id, PatternID: refID, Status: status})
		if status == StatusRendered && sub != nil {
			n.Children = sub.Children
		}
		return nil
	}

	for _, c := range n.Children {
		if err := e.expandRefs(ctx, c, path, res); err != nil {
			return err
		}
	}
	return nil
}
