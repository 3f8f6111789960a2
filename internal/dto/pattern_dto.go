package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreatePatternRequest struct {
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=1000"`
	Content     json.RawMessage `json:"content" validate:"required"`
	SyncStatus  string          `json:"sync_status" validate:"omitempty,oneof=synced unsynced"`
}

type UpdatePatternRequest struct {
	Id          uuid.UUID       `json:"-" validate:"required"`
	Title       string          `json:"title" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"max=1000"`
	Content     json.RawMessage `json:"content" validate:"required"`
	SyncStatus  string          `json:"sync_status" validate:"omitempty,oneof=synced unsynced"`
}

type ListPatternsRequest struct {
	SyncStatus string `query:"sync_status" validate:"omitempty,oneof=synced unsynced"`
	Search     string `query:"search" validate:"max=255"`
	Limit      int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset     int    `query:"offset" validate:"omitempty,min=0"`
}

type PatternResponse struct {
	Id          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Content     json.RawMessage `json:"content,omitempty"`
	SyncStatus  string          `json:"sync_status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

type ListPatternsResponse struct {
	Patterns []PatternResponse `json:"patterns"`
	Total    int64             `json:"total"`
}

// PublishInvalidateTreeMessage is the payload carried on the tree
// invalidation topic.
type PublishInvalidateTreeMessage struct {
	PatternId uuid.UUID `json:"pattern_id"`
}
