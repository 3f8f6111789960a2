package entity

import (
	"time"

	"github.com/google/uuid"
)

type Pattern struct {
	Id          uuid.UUID
	Title       string
	Description string
	Content     []byte // serialized block document
	SyncStatus  string
	UserId      uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
