package service

import (
	"context"
	"encoding/json"

	"github.com/Initsogar/gutenberg/internal/dto"
	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/Initsogar/gutenberg/pkg/render"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRenderService interface {
	RenderPattern(ctx context.Context, patternId uuid.UUID, overridesEnabled bool) (*dto.RenderPatternResponse, error)
	Preview(ctx context.Context, req *dto.PreviewRenderRequest) (*dto.PreviewRenderResponse, error)
}

type renderService struct {
	source     render.TreeSource
	classifier blocktree.Classifier
}

func NewRenderService(source render.TreeSource, classifier blocktree.Classifier) IRenderService {
	return &renderService{
		source:     source,
		classifier: classifier,
	}
}

func (s *renderService) RenderPattern(ctx context.Context, patternId uuid.UUID, overridesEnabled bool) (*dto.RenderPatternResponse, error) {
	expander := render.NewExpander(s.source, s.classifier)
	result, err := expander.Expand(ctx, patternId, overridesEnabled)
	if err != nil {
		return nil, err
	}

	resp := &dto.RenderPatternResponse{
		PatternId: patternId,
		Status:    string(result.Status),
		Nested:    toNestedResults(result.Nested),
	}
	if result.Tree != nil {
		doc, err := blocktree.MarshalDocument(result.Tree)
		if err != nil {
			return nil, err
		}
		resp.Document = doc
		resp.Modes = result.Modes.All()
	}
	return resp, nil
}

func (s *renderService) Preview(ctx context.Context, req *dto.PreviewRenderRequest) (*dto.PreviewRenderResponse, error) {
	tree, err := blocktree.ParseDocument(req.Content)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "content is not a valid block document: "+err.Error())
	}

	expander := render.NewExpander(s.source, s.classifier)
	result, err := expander.ExpandTree(ctx, tree, req.OverridesEnabled)
	if err != nil {
		return nil, err
	}

	doc, err := blocktree.MarshalDocument(result.Tree)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewRenderResponse{
		Document: json.RawMessage(doc),
		Modes:    result.Modes.All(),
		Nested:   toNestedResults(result.Nested),
	}, nil
}

func toNestedResults(nested []*render.NestedResult) []dto.NestedRenderResult {
	if len(nested) == 0 {
		return nil
	}
	out := make([]dto.NestedRenderResult, 0, len(nested))
	for _, n := range nested {
		out = append(out, dto.NestedRenderResult{
			NodeId:    n.NodeID,
			PatternId: n.PatternID,
			Status:    string(n.Status),
		})
	}
	return out
}
