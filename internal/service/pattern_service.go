package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Initsogar/gutenberg/internal/constant"
	"github.com/Initsogar/gutenberg/internal/dto"
	"github.com/Initsogar/gutenberg/internal/entity"
	"github.com/Initsogar/gutenberg/internal/pkg/logger"
	"github.com/Initsogar/gutenberg/internal/repository/specification"
	"github.com/Initsogar/gutenberg/internal/repository/unitofwork"
	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/Initsogar/gutenberg/pkg/events"
	pktNats "github.com/Initsogar/gutenberg/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPatternService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePatternRequest) (*dto.PatternResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PatternResponse, error)
	List(ctx context.Context, userId uuid.UUID, req *dto.ListPatternsRequest) (*dto.ListPatternsResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePatternRequest) (*dto.PatternResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type patternService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	logger           logger.ILogger
}

func NewPatternService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IPatternService {
	return &patternService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *patternService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePatternRequest) (*dto.PatternResponse, error) {
	if _, err := blocktree.ParseDocument(req.Content); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "content is not a valid block document: "+err.Error())
	}

	syncStatus := req.SyncStatus
	if syncStatus == "" {
		syncStatus = constant.SyncStatusSynced
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pattern := entity.Pattern{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		SyncStatus:  syncStatus,
		UserId:      userId,
		CreatedAt:   time.Now(),
	}

	if err := uow.PatternRepository().Create(ctx, &pattern); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.NewPatternCreated(pattern.Id, userId))

	return toPatternResponse(&pattern, false), nil
}

func (s *patternService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.PatternResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pattern, err := uow.PatternRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, nil // Not found
	}
	return toPatternResponse(pattern, true), nil
}

func (s *patternService) List(ctx context.Context, userId uuid.UUID, req *dto.ListPatternsRequest) (*dto.ListPatternsResponse, error) {
	filters := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
	}
	if req.SyncStatus != "" {
		filters = append(filters, specification.BySyncStatus{Status: req.SyncStatus})
	}
	if req.Search != "" {
		filters = append(filters, specification.TitleContains{Query: req.Search})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.PatternRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = 20
	}
	query := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)

	patterns, err := uow.PatternRepository().FindAll(ctx, query...)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListPatternsResponse{
		Patterns: make([]dto.PatternResponse, 0, len(patterns)),
		Total:    total,
	}
	for _, p := range patterns {
		// Listing omits content; documents can be large.
		resp.Patterns = append(resp.Patterns, *toPatternResponse(p, false))
	}
	return resp, nil
}

func (s *patternService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePatternRequest) (*dto.PatternResponse, error) {
	if _, err := blocktree.ParseDocument(req.Content); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "content is not a valid block document: "+err.Error())
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	pattern, err := uow.PatternRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if pattern == nil {
		return nil, nil // Not found
	}

	now := time.Now()
	pattern.Title = req.Title
	pattern.Description = req.Description
	pattern.Content = req.Content
	if req.SyncStatus != "" {
		pattern.SyncStatus = req.SyncStatus
	}
	pattern.UpdatedAt = &now

	if err := uow.PatternRepository().Update(ctx, pattern); err != nil {
		return nil, err
	}

	if err := s.publishInvalidation(ctx, pattern.Id); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.NewPatternUpdated(pattern.Id, userId))

	return toPatternResponse(pattern, false), nil
}

func (s *patternService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	pattern, err := uow.PatternRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if pattern == nil {
		return fiber.NewError(fiber.StatusNotFound, "pattern not found")
	}

	if err := uow.PatternRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := s.publishInvalidation(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, events.NewPatternDeleted(id, userId))

	return nil
}

// publishInvalidation pushes the pattern id onto the tree invalidation
// topic so every instance drops its cached tree.
func (s *patternService) publishInvalidation(ctx context.Context, patternId uuid.UUID) error {
	msgPayload := dto.PublishInvalidateTreeMessage{
		PatternId: patternId,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, msgJson)
}

func (s *patternService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	// Notifications are auxiliary; log and keep going.
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("PatternService", "Failed to publish event", map[string]interface{}{
			"event_type": evt.EventType(),
			"error":      err.Error(),
		})
	}
}

func toPatternResponse(p *entity.Pattern, includeContent bool) *dto.PatternResponse {
	resp := &dto.PatternResponse{
		Id:          p.Id,
		Title:       p.Title,
		Description: p.Description,
		SyncStatus:  p.SyncStatus,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if includeContent {
		resp.Content = json.RawMessage(p.Content)
	}
	return resp
}
