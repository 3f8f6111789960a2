package render

import "github.com/google/uuid"

// Path tracks which pattern ids are being expanded along the current
// render call chain. It exists to cut off self-referential pattern
// graphs: a pattern embedding itself, directly or through a chain,
// would otherwise expand forever.
//
// A Path belongs to exactly one top-level render. Concurrent renders
// each create their own; there is no shared state and no locking. Only
// ancestor self-reference is cut: the same pattern rendered twice in
// sibling branches is legitimate and passes.
type Path struct {
	active map[uuid.UUID]struct{}
	stack  []uuid.UUID
}

func NewPath() *Path {
	return &Path{active: make(map[uuid.UUID]struct{})}
}

// Enter records id as being expanded. Returns false without mutating
// anything when id is already active on this path, the signal to stop
// and render a fallback instead of recursing.
func (p *Path) Enter(id uuid.UUID) bool {
	if _, ok := p.active[id]; ok {
		return false
	}
	p.active[id] = struct{}{}
	p.stack = append(p.stack, id)
	return true
}

// Exit releases id. Callers pair every successful Enter with a deferred
// Exit so the marker is released on all return paths; a leaked marker
// would falsely block a later legitimate render of the same pattern.
func (p *Path) Exit(id uuid.UUID) {
	if _, ok := p.active[id]; !ok {
		return
	}
	delete(p.active, id)
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i] == id {
			p.stack = append(p.stack[:i], p.stack[i+1:]...)
			break
		}
	}
}

// IsActive reports whether id is currently being expanded on this path.
func (p *Path) IsActive(id uuid.UUID) bool {
	_, ok := p.active[id]
	return ok
}

// Depth returns how many patterns are currently being expanded.
func (p *Path) Depth() int {
	return len(p.stack)
}
