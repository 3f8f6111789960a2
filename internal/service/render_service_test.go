package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Initsogar/gutenberg/internal/dto"
	"github.com/Initsogar/gutenberg/pkg/blocktree"
	"github.com/Initsogar/gutenberg/pkg/render"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	trees map[uuid.UUID]*blocktree.Node
}

func (s *stubSource) Resolve(_ context.Context, patternID uuid.UUID) (render.Resolution, error) {
	tree, ok := s.trees[patternID]
	if !ok {
		return render.Resolution{State: render.StateMissing}, nil
	}
	return render.Resolution{State: render.StateResolved, Tree: tree}, nil
}

func mustParse(t *testing.T, doc string) *blocktree.Node {
	t.Helper()
	tree, err := blocktree.ParseDocument([]byte(doc))
	require.NoError(t, err)
	return tree
}

func TestRenderPatternProducesDocumentAndModes(t *testing.T) {
	patternId := uuid.New()
	source := &stubSource{trees: map[uuid.UUID]*blocktree.Node{
		patternId: mustParse(t, `{"root":{"type":"core/group","children":[{"type":"core/paragraph"}]}}`),
	}}
	svc := NewRenderService(source, blocktree.NewBindingClassifier())

	resp, err := svc.RenderPattern(context.Background(), patternId, true)
	require.NoError(t, err)

	assert.Equal(t, patternId, resp.PatternId)
	assert.Equal(t, string(render.StatusRendered), resp.Status)
	assert.NotEmpty(t, resp.Document)
	assert.Len(t, resp.Modes, 2)
	for _, mode := range resp.Modes {
		assert.Equal(t, string(render.ModeDisabled), mode)
	}
}

func TestRenderPatternMissing(t *testing.T) {
	svc := NewRenderService(&stubSource{trees: map[uuid.UUID]*blocktree.Node{}}, blocktree.NewBindingClassifier())

	resp, err := svc.RenderPattern(context.Background(), uuid.New(), true)
	require.NoError(t, err)

	assert.Equal(t, string(render.StatusMissing), resp.Status)
	assert.Empty(t, resp.Document)
	assert.Empty(t, resp.Modes)
}

func TestPreviewExpandsReferences(t *testing.T) {
	nestedId := uuid.New()
	source := &stubSource{trees: map[uuid.UUID]*blocktree.Node{
		nestedId: mustParse(t, `{"root":{"type":"core/group","children":[{"type":"core/paragraph"}]}}`),
	}}
	svc := NewRenderService(source, blocktree.NewBindingClassifier())

	doc := `{"root":{"type":"core/group","children":[{"type":"core/block","attributes":{"ref":"` + nestedId.String() + `"}}]}}`
	resp, err := svc.Preview(context.Background(), &dto.PreviewRenderRequest{
		Content:          json.RawMessage(doc),
		OverridesEnabled: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Nested, 1)
	assert.Equal(t, nestedId, resp.Nested[0].PatternId)
	assert.Equal(t, string(render.StatusRendered), resp.Nested[0].Status)

	var rendered map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Document, &rendered))
	root := rendered["root"].(map[string]interface{})
	ref := root["children"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "core/block", ref["type"])
	assert.NotEmpty(t, ref["children"], "nested pattern content should be grafted under the reference")
}

func TestPreviewRejectsInvalidDocument(t *testing.T) {
	svc := NewRenderService(&stubSource{trees: map[uuid.UUID]*blocktree.Node{}}, blocktree.NewBindingClassifier())

	_, err := svc.Preview(context.Background(), &dto.PreviewRenderRequest{Content: json.RawMessage(`{"root":{}}`)})
	assert.Error(t, err)
}
