package blocktree

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// docNode mirrors the serialized editor document. Ids are not part of
// the wire format; they are assigned per parse so they stay stable for
// the duration of one render.
type docNode struct {
	Type       string                 `json:"type"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Children   []docNode              `json:"children,omitempty"`
}

type document struct {
	Root docNode `json:"root"`
}

// ParseDocument converts a serialized block document into a Node tree.
// Node kinds are resolved here, once, so downstream consumers switch on
// Kind instead of comparing type strings.
func ParseDocument(raw []byte) (*Node, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse block document: %w", err)
	}
	if doc.Root.Type == "" {
		return nil, fmt.Errorf("block document has no root node")
	}
	return buildNode(doc.Root), nil
}

func buildNode(dn docNode) *Node {
	children := make([]*Node, len(dn.Children))
	for i, c := range dn.Children {
		children[i] = buildNode(c)
	}

	attrs := dn.Attributes
	if attrs == nil {
		attrs = map[string]interface{}{}
	}

	return &Node{
		Id:         uuid.New(),
		Type:       dn.Type,
		Kind:       ResolveKind(dn.Type, len(dn.Children)),
		Attributes: attrs,
		Children:   children,
	}
}

// MarshalDocument serializes a Node tree back into the wire format,
// including the per-render node ids so the frontend can join them
// against the edit-mode map.
func MarshalDocument(root *Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot marshal nil document")
	}
	return json.Marshal(map[string]interface{}{
		"root": marshalNode(root),
	})
}

func marshalNode(n *Node) map[string]interface{} {
	out := map[string]interface{}{
		"id":   n.Id.String(),
		"type": n.Type,
	}
	if len(n.Attributes) > 0 {
		out["attributes"] = n.Attributes
	}
	if len(n.Children) > 0 {
		children := make([]map[string]interface{}, len(n.Children))
		for i, c := range n.Children {
			children[i] = marshalNode(c)
		}
		out["children"] = children
	}
	return out
}
