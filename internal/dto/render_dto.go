package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type NestedRenderResult struct {
	NodeId    uuid.UUID `json:"node_id"`
	PatternId uuid.UUID `json:"pattern_id"`
	Status    string    `json:"status"`
}

type RenderPatternResponse struct {
	PatternId uuid.UUID            `json:"pattern_id"`
	Status    string               `json:"status"`
	Document  json.RawMessage      `json:"document,omitempty"`
	Modes     map[string]string    `json:"modes,omitempty"`
	Nested    []NestedRenderResult `json:"nested,omitempty"`
}

// PreviewRenderRequest renders an ad-hoc document without persisting
// it. References inside the document still resolve against stored
// patterns.
type PreviewRenderRequest struct {
	Content          json.RawMessage `json:"content" validate:"required"`
	OverridesEnabled bool            `json:"overrides_enabled"`
}

type PreviewRenderResponse struct {
	Document json.RawMessage      `json:"document"`
	Modes    map[string]string    `json:"modes,omitempty"`
	Nested   []NestedRenderResult `json:"nested,omitempty"`
}
