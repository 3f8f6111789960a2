package treecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Initsogar/gutenberg/internal/pkg/logger"
	"github.com/Initsogar/gutenberg/internal/repository/specification"
	"github.com/Initsogar/gutenberg/internal/repository/unitofwork"
	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/Initsogar/gutenberg/pkg/render"

	gocache "github.com/patrickmn/go-cache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	localTTL        = 5 * time.Minute
	localSweep      = 10 * time.Minute
	missingTTL      = 30 * time.Second
	redisKeyPrefix  = "pattern:tree:"
	defaultRedisTTL = 30 * time.Minute
)

// missingMarker is the negative-cache sentinel for deleted patterns.
type missingMarker struct{}

// Store resolves pattern ids to parsed block trees through a local
// go-cache layer, a shared redis layer, and finally the pattern
// repository. It implements render.TreeSource.
//
// This store resolves synchronously, so it never reports StatePending;
// that state belongs to sources that load out of band.
type Store struct {
	uowFactory unitofwork.RepositoryFactory
	rdb        *redis.Client
	local      *gocache.Cache
	redisTTL   time.Duration
	logger     logger.ILogger
}

func NewStore(uowFactory unitofwork.RepositoryFactory, rdb *redis.Client, redisTTL time.Duration, log logger.ILogger) *Store {
	if redisTTL <= 0 {
		redisTTL = defaultRedisTTL
	}
	return &Store{
		uowFactory: uowFactory,
		rdb:        rdb,
		local:      gocache.New(localTTL, localSweep),
		redisTTL:   redisTTL,
		logger:     log,
	}
}

// Resolve implements render.TreeSource. Returned trees are shared
// across renders; callers must clone before mutating.
func (s *Store) Resolve(ctx context.Context, patternID uuid.UUID) (render.Resolution, error) {
	key := patternID.String()

	if v, found := s.local.Get(key); found {
		if _, missing := v.(missingMarker); missing {
			return render.Resolution{State: render.StateMissing}, nil
		}
		return render.Resolution{State: render.StateResolved, Tree: v.(*blocktree.Node)}, nil
	}

	if tree, ok := s.fromRedis(ctx, key); ok {
		s.local.Set(key, tree, gocache.DefaultExpiration)
		return render.Resolution{State: render.StateResolved, Tree: tree}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pattern, err := uow.PatternRepository().FindOne(ctx, specification.ByID{ID: patternID})
	if err != nil {
		return render.Resolution{}, err
	}
	if pattern == nil {
		// Negative-cache briefly so a hot document full of dangling
		// references does not hammer the database.
		s.local.Set(key, missingMarker{}, missingTTL)
		return render.Resolution{State: render.StateMissing}, nil
	}

	tree, err := blocktree.ParseDocument(pattern.Content)
	if err != nil {
		return render.Resolution{}, fmt.Errorf("pattern %s has unparseable content: %w", patternID, err)
	}

	s.local.Set(key, tree, gocache.DefaultExpiration)
	if s.rdb != nil {
		if err := s.rdb.Set(ctx, redisKeyPrefix+key, []byte(pattern.Content), s.redisTTL).Err(); err != nil {
			s.logger.Warn("TreeCache", "Failed to write pattern tree to redis", map[string]interface{}{
				"pattern_id": key,
				"error":      err.Error(),
			})
		}
	}
	return render.Resolution{State: render.StateResolved, Tree: tree}, nil
}

func (s *Store) fromRedis(ctx context.Context, key string) (*blocktree.Node, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("TreeCache", "Redis lookup failed", map[string]interface{}{
				"pattern_id": key,
				"error":      err.Error(),
			})
		}
		return nil, false
	}
	tree, perr := blocktree.ParseDocument(raw)
	if perr != nil {
		s.logger.Warn("TreeCache", "Cached pattern tree is unparseable, dropping", map[string]interface{}{
			"pattern_id": key,
			"error":      perr.Error(),
		})
		s.rdb.Del(ctx, redisKeyPrefix+key)
		return nil, false
	}
	return tree, true
}

// Invalidate drops a pattern from both cache layers. Called by the
// invalidation consumer when a pattern is updated or deleted.
func (s *Store) Invalidate(ctx context.Context, patternID uuid.UUID) {
	key := patternID.String()
	s.local.Delete(key)
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
			s.logger.Warn("TreeCache", "Failed to invalidate redis entry", map[string]interface{}{
				"pattern_id": key,
				"error":      err.Error(),
			})
		}
	}
}
