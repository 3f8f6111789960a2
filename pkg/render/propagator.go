package render

import (
	"github.com/Initsogar/gutenberg/pkg/blocktree"
)

// Propagator assigns an edit mode to every node of a block tree,
// top-down. It writes only into the mode registry; nodes themselves are
// never mutated.
type Propagator struct {
	classifier blocktree.Classifier
	modes      ModeWriter
}

func NewPropagator(classifier blocktree.Classifier, modes ModeWriter) *Propagator {
	return &Propagator{classifier: classifier, modes: modes}
}

// Propagate walks the tree rooted at root. With overrides disabled the
// whole subtree is marked disabled and no per-node distinction is made.
// Otherwise overridable nodes get contentOnly, everything else gets
// disabled, and descendants of a pattern-reference node are uniformly
// forced to disabled: nested patterns-within-patterns are never made
// editable from the parent context. The reference node itself still
// receives its computed mode; the forcing applies to descendants only.
func (p *Propagator) Propagate(root *blocktree.Node, overridesEnabled bool) {
	if root == nil {
		return
	}
	if !overridesEnabled {
		p.PropagateMode(root, ModeDisabled)
		return
	}
	p.walk(root)
}

// PropagateMode assigns one mode to every node of the subtree. This is
// the "apply this same mode to all children" path; the overridable
// distinction is deliberately skipped under a forced mode.
func (p *Propagator) PropagateMode(root *blocktree.Node, mode EditMode) {
	if root == nil {
		return
	}
	p.modes.Set(root.Id, mode)
	for _, c := range root.Children {
		p.PropagateMode(c, mode)
	}
}

func (p *Propagator) walk(n *blocktree.Node) {
	mode := ModeDisabled
	if p.classifier.Overridable(n) {
		mode = ModeContentOnly
	}
	p.modes.Set(n.Id, mode)

	forceChildren := n.Kind == blocktree.KindPatternRef
	for _, c := range n.Children {
		if forceChildren {
			p.PropagateMode(c, ModeDisabled)
		} else {
			p.walk(c)
		}
	}
}
