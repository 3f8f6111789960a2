package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserOwnedBy restricts queries to one user's patterns
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// BySyncStatus filters by pattern sync status
type BySyncStatus struct {
	Status string
}

func (s BySyncStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sync_status = ?", s.Status)
}

// TitleContains does a case-insensitive title search
type TitleContains struct {
	Query string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}
