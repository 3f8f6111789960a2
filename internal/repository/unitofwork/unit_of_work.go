package unitofwork

import (
	"context"

	"github.com/Initsogar/gutenberg/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	PatternRepository() contract.PatternRepository
}
