package render

import (
	"context"
	"errors"
	"testing"

	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/google/uuid"
)

type fakeSource struct {
	trees   map[uuid.UUID]*blocktree.Node
	pending map[uuid.UUID]bool
	err     error
	calls   int
}

func (f *fakeSource) Resolve(_ context.Context, id uuid.UUID) (Resolution, error) {
	f.calls++
	if f.err != nil {
		return Resolution{}, f.err
	}
	if f.pending[id] {
		return Resolution{State: StatePending}, nil
	}
	tree, ok := f.trees[id]
	if !ok {
		return Resolution{State: StateMissing}, nil
	}
	return Resolution{State: StateResolved, Tree: tree}, nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		trees:   map[uuid.UUID]*blocktree.Node{},
		pending: map[uuid.UUID]bool{},
	}
}

func TestExpandSelfReference(t *testing.T) {
	// Pattern A embeds pattern A. The outer occurrence renders, the
	// inner one is cut as a cycle, and the render path unwinds clean.
	src := newFakeSource()
	a := uuid.New()
	src.trees[a] = container(leaf("core/paragraph", false), patternRef(a, false))

	e := NewExpander(src, blocktree.NewBindingClassifier())

	result, err := e.Expand(context.Background(), a, true)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if result.Status != StatusRendered {
		t.Fatalf("outer status = %q, want %q", result.Status, StatusRendered)
	}
	if len(result.Nested) != 1 {
		t.Fatalf("nested results = %d, want 1", len(result.Nested))
	}
	nested := result.Nested[0]
	if nested.Status != StatusCycle {
		t.Errorf("inner status = %q, want %q", nested.Status, StatusCycle)
	}
	if nested.PatternID != a {
		t.Errorf("inner pattern id = %s, want %s", nested.PatternID, a)
	}

	// Nothing was grafted under the cyclic reference.
	refNode := result.Tree.Children[1]
	if len(refNode.Children) != 0 {
		t.Errorf("cyclic reference has %d grafted children, want 0", len(refNode.Children))
	}

	// A second expansion of the same pattern must not be blocked by a
	// leaked path marker.
	again, err := e.Expand(context.Background(), a, true)
	if err != nil {
		t.Fatalf("second Expand returned error: %v", err)
	}
	if again.Status != StatusRendered {
		t.Errorf("second expand status = %q, want %q", again.Status, StatusRendered)
	}
}

func TestExpandUnwindsPathOnAllOutcomes(t *testing.T) {
	src := newFakeSource()
	rendered := uuid.New()
	pendingID := uuid.New()
	missingID := uuid.New()
	src.trees[rendered] = container(leaf("core/paragraph", false))
	src.pending[pendingID] = true

	e := NewExpander(src, blocktree.NewBindingClassifier())

	for _, id := range []uuid.UUID{rendered, pendingID, missingID} {
		path := NewPath()
		res := &Result{Modes: NewRegistry()}
		if _, _, err := e.expand(context.Background(), id, true, path, res); err != nil {
			t.Fatalf("expand(%s) returned error: %v", id, err)
		}
		if path.Depth() != 0 {
			t.Errorf("expand(%s) left path depth %d, want 0", id, path.Depth())
		}
	}
}

func TestExpandNestedPattern(t *testing.T) {
	// Pattern B's content is grafted under the reference node and is
	// fully disabled, even though B contains an overridable leaf.
	src := newFakeSource()
	a, b := uuid.New(), uuid.New()
	src.trees[b] = container(leaf("core/paragraph", true))
	src.trees[a] = container(leaf("core/heading", true), patternRef(b, false))

	e := NewExpander(src, blocktree.NewBindingClassifier())

	result, err := e.Expand(context.Background(), a, true)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if result.Status != StatusRendered {
		t.Fatalf("status = %q, want %q", result.Status, StatusRendered)
	}

	if got := result.Modes.Get(result.Tree.Children[0].Id); got != ModeContentOnly {
		t.Errorf("outer overridable leaf mode = %q, want %q", got, ModeContentOnly)
	}

	refNode := result.Tree.Children[1]
	if len(refNode.Children) != 1 {
		t.Fatalf("reference node has %d grafted children, want 1", len(refNode.Children))
	}
	if got := result.Modes.Get(refNode.Children[0].Id); got != ModeDisabled {
		t.Errorf("grafted overridable leaf mode = %q, want %q (nested content is never editable)", got, ModeDisabled)
	}

	if len(result.Nested) != 1 || result.Nested[0].Status != StatusRendered {
		t.Fatalf("nested results = %+v, want one rendered entry", result.Nested)
	}
}

func TestExpandSiblingDuplicatesAllowed(t *testing.T) {
	// The same pattern twice in sibling branches is legitimate; only
	// ancestor self-reference is a cycle.
	src := newFakeSource()
	a, b := uuid.New(), uuid.New()
	src.trees[b] = container(leaf("core/paragraph", false))
	src.trees[a] = container(patternRef(b, false), patternRef(b, false))

	e := NewExpander(src, blocktree.NewBindingClassifier())

	result, err := e.Expand(context.Background(), a, true)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(result.Nested) != 2 {
		t.Fatalf("nested results = %d, want 2", len(result.Nested))
	}
	for i, n := range result.Nested {
		if n.Status != StatusRendered {
			t.Errorf("nested[%d] status = %q, want %q", i, n.Status, StatusRendered)
		}
	}

	// Both grafts are independent clones with distinct node ids.
	first := result.Tree.Children[0].Children[0]
	second := result.Tree.Children[1].Children[0]
	if first.Id == second.Id {
		t.Error("sibling grafts share node ids, clones must have fresh ids")
	}
}

func TestExpandMissingAndPending(t *testing.T) {
	src := newFakeSource()
	a := uuid.New()
	missingRef := uuid.New()
	pendingRef := uuid.New()
	src.pending[pendingRef] = true
	src.trees[a] = container(patternRef(missingRef, false), patternRef(pendingRef, false))

	e := NewExpander(src, blocktree.NewBindingClassifier())

	result, err := e.Expand(context.Background(), a, true)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}

	got := map[uuid.UUID]Status{}
	for _, n := range result.Nested {
		got[n.PatternID] = n.Status
	}
	if got[missingRef] != StatusMissing {
		t.Errorf("missing pattern status = %q, want %q", got[missingRef], StatusMissing)
	}
	if got[pendingRef] != StatusPending {
		t.Errorf("pending pattern status = %q, want %q", got[pendingRef], StatusPending)
	}
}

func TestExpandTopLevelMissing(t *testing.T) {
	e := NewExpander(newFakeSource(), blocktree.NewBindingClassifier())

	result, err := e.Expand(context.Background(), uuid.New(), true)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if result.Status != StatusMissing {
		t.Errorf("status = %q, want %q", result.Status, StatusMissing)
	}
	if result.Tree != nil {
		t.Error("missing pattern must not carry a tree")
	}
}

func TestExpandMalformedReference(t *testing.T) {
	src := newFakeSource()
	a := uuid.New()
	bad := patternRef(uuid.New(), false)
	bad.Attributes["ref"] = "not-a-uuid"
	src.trees[a] = container(bad)

	e := NewExpander(src, blocktree.NewBindingClassifier())

	result, err := e.Expand(context.Background(), a, true)
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if len(result.Nested) != 1 || result.Nested[0].Status != StatusMissing {
		t.Fatalf("nested results = %+v, want one missing entry", result.Nested)
	}
}

func TestExpandSourceError(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("store unavailable")

	e := NewExpander(src, blocktree.NewBindingClassifier())

	if _, err := e.Expand(context.Background(), uuid.New(), true); err == nil {
		t.Fatal("infrastructure errors must propagate")
	}
}
