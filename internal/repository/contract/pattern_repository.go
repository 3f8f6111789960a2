package contract

import (
	"context"

	"github.com/Initsogar/gutenberg/internal/entity"
	"github.com/Initsogar/gutenberg/internal/repository/specification"

	"github.com/google/uuid"
)

type PatternRepository interface {
	Create(ctx context.Context, pattern *entity.Pattern) error
	Update(ctx context.Context, pattern *entity.Pattern) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Pattern, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Pattern, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
