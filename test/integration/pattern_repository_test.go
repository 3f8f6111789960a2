package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Initsogar/gutenberg/internal/entity"
	"github.com/Initsogar/gutenberg/internal/repository/specification"
	"github.com/Initsogar/gutenberg/internal/repository/unitofwork"
	"github.com/Initsogar/gutenberg/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternRepository(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	ctx := context.Background()

	userId := uuid.New()
	pattern := &entity.Pattern{
		Id:         uuid.New(),
		Title:      "Integration Hero " + uuid.New().String(),
		Content:    []byte(`{"root":{"type":"core/group","children":[{"type":"core/paragraph"}]}}`),
		SyncStatus: "synced",
		UserId:     userId,
		CreatedAt:  time.Now(),
	}

	t.Run("Create and FindOne", func(t *testing.T) {
		require.NoError(t, uow.PatternRepository().Create(ctx, pattern))

		found, err := uow.PatternRepository().FindOne(ctx,
			specification.ByID{ID: pattern.Id},
			specification.UserOwnedBy{UserID: userId},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, pattern.Title, found.Title)
		assert.JSONEq(t, string(pattern.Content), string(found.Content))
	})

	t.Run("FindOne scoped to other user returns nil", func(t *testing.T) {
		found, err := uow.PatternRepository().FindOne(ctx,
			specification.ByID{ID: pattern.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Update", func(t *testing.T) {
		now := time.Now()
		pattern.Title = "Integration Hero Updated"
		pattern.SyncStatus = "unsynced"
		pattern.UpdatedAt = &now
		require.NoError(t, uow.PatternRepository().Update(ctx, pattern))

		found, err := uow.PatternRepository().FindOne(ctx, specification.ByID{ID: pattern.Id})
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Integration Hero Updated", found.Title)
		assert.Equal(t, "unsynced", found.SyncStatus)
	})

	t.Run("FindAll with filters", func(t *testing.T) {
		patterns, err := uow.PatternRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.BySyncStatus{Status: "unsynced"},
			specification.OrderBy{Field: "created_at", Desc: true},
			specification.Pagination{Limit: 10, Offset: 0},
		)
		require.NoError(t, err)
		assert.Len(t, patterns, 1)

		count, err := uow.PatternRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, uow.PatternRepository().Delete(ctx, pattern.Id))

		found, err := uow.PatternRepository().FindOne(ctx, specification.ByID{ID: pattern.Id})
		require.NoError(t, err)
		assert.Nil(t, found, "soft-deleted pattern should not be visible")
	})
}

func TestUnitOfWorkTransaction(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)

	pattern := &entity.Pattern{
		Id:         uuid.New(),
		Title:      "Rollback Victim",
		Content:    []byte(`{"root":{"type":"core/paragraph"}}`),
		SyncStatus: "synced",
		UserId:     uuid.New(),
		CreatedAt:  time.Now(),
	}

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.PatternRepository().Create(ctx, pattern))
	require.NoError(t, uow.Rollback())

	// After rollback the row must be gone.
	check := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	found, err := check.PatternRepository().FindOne(ctx, specification.ByID{ID: pattern.Id})
	require.NoError(t, err)
	assert.Nil(t, found)
}
