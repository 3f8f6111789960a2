package mapper

import (
	"time"

	"github.com/Initsogar/gutenberg/internal/entity"
	"github.com/Initsogar/gutenberg/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PatternMapper struct{}

func NewPatternMapper() *PatternMapper {
	return &PatternMapper{}
}

func (m *PatternMapper) ToEntity(p *model.Pattern) *entity.Pattern {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Pattern{
		Id:          p.Id,
		Title:       p.Title,
		Description: p.Description,
		Content:     []byte(p.Content),
		SyncStatus:  p.SyncStatus,
		UserId:      p.UserId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   p.DeletedAt.Valid,
	}
}

func (m *PatternMapper) ToModel(p *entity.Pattern) *model.Pattern {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Pattern{
		Id:          p.Id,
		Title:       p.Title,
		Description: p.Description,
		Content:     datatypes.JSON(p.Content),
		SyncStatus:  p.SyncStatus,
		UserId:      p.UserId,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *PatternMapper) ToEntities(patterns []*model.Pattern) []*entity.Pattern {
	entities := make([]*entity.Pattern, len(patterns))
	for i, p := range patterns {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
