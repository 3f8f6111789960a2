package render

import "github.com/google/uuid"

// EditMode controls whether in-place editing of a node is permitted
// during one render pass. Modes are per render, never persisted.
type EditMode string

const (
	// ModeDefault is the unset/inherited mode.
	ModeDefault EditMode = ""
	// ModeDisabled blocks all editing of the node.
	ModeDisabled EditMode = "disabled"
	// ModeContentOnly allows replacing the node's content per instance
	// without touching the shared pattern definition.
	ModeContentOnly EditMode = "contentOnly"
)

// ModeWriter is the slice of the registry the propagator needs.
type ModeWriter interface {
	Set(id uuid.UUID, mode EditMode)
}

// Registry maps node ids to their edit mode for one render pass. The
// propagator writes into it; consumers of the rendered tree read from
// it to decide whether inline editing is allowed.
type Registry struct {
	modes map[uuid.UUID]EditMode
}

func NewRegistry() *Registry {
	return &Registry{modes: make(map[uuid.UUID]EditMode)}
}

func (r *Registry) Set(id uuid.UUID, mode EditMode) {
	r.modes[id] = mode
}

// Get returns ModeDefault for ids that were never assigned.
func (r *Registry) Get(id uuid.UUID) EditMode {
	return r.modes[id]
}

func (r *Registry) Len() int {
	return len(r.modes)
}

// All returns a copy of the assignments, keyed by node id string for
// direct use in API responses.
func (r *Registry) All() map[string]string {
	out := make(map[string]string, len(r.modes))
	for id, mode := range r.modes {
		out[id.String()] = string(mode)
	}
	return out
}
