package blocktree

import (
	"github.com/google/uuid"
)

// Kind classifies a node's behavioral role once, at construction time,
// so the rest of the pipeline never re-compares type strings.
type Kind int

const (
	KindLeaf Kind = iota
	KindContainer
	KindPatternRef
)

// PatternRefType is the block type that embeds a reusable pattern by
// reference. The referenced pattern id lives in the "ref" attribute.
const PatternRefType = "core/block"

// containerTypes are block types that exist to group other blocks.
// Anything else with children is still treated as a container.
var containerTypes = map[string]bool{
	"core/group":   true,
	"core/columns": true,
	"core/column":  true,
	"core/cover":   true,
	"core/quote":   true,
	"core/buttons": true,
	"core/list":    true,
	"root":         true,
}

// Node is one node of a block tree. Children ownership is exclusive:
// a node owns its subtree and nodes are never shared across trees.
// Relationships between patterns are expressed only via PatternRef
// nodes carrying a "ref" attribute, never by aliasing Node values.
type Node struct {
	Id         uuid.UUID
	Type       string
	Kind       Kind
	Attributes map[string]interface{}
	Children   []*Node
}

// ResolveKind maps a block type to its Kind. Exported so callers that
// build trees by hand (tests, seeders) classify the same way the parser
// does.
func ResolveKind(blockType string, childCount int) Kind {
	if blockType == PatternRefType {
		return KindPatternRef
	}
	if containerTypes[blockType] || childCount > 0 {
		return KindContainer
	}
	return KindLeaf
}

// RefID extracts the referenced pattern id from a PatternRef node.
// Returns false for non-reference nodes or malformed ref attributes.
func (n *Node) RefID() (uuid.UUID, bool) {
	if n.Kind != KindPatternRef {
		return uuid.Nil, false
	}
	raw, ok := n.Attributes["ref"].(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Clone deep-copies the subtree with fresh node ids. Used when a cached
// shared tree is grafted into a render: ids must stay unique within one
// rendered document even when the same pattern appears in two branches.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	attrs := make(map[string]interface{}, len(n.Attributes))
	for k, v := range n.Attributes {
		attrs[k] = v
	}

	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.Clone()
	}

	return &Node{
		Id:         uuid.New(),
		Type:       n.Type,
		Kind:       n.Kind,
		Attributes: attrs,
		Children:   children,
	}
}

// Count returns the number of nodes in the subtree including n itself.
func (n *Node) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
