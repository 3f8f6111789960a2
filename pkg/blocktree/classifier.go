package blocktree

// Classifier decides whether a node is eligible for per-instance content
// override. The render pipeline treats this as an opaque predicate.
type Classifier interface {
	Overridable(n *Node) bool
}

// BindingClassifier marks blocks whose metadata attribute carries a
// bindings entry, i.e. blocks the pattern author explicitly exposed for
// per-instance overrides. This matches how the editor tags overridable
// content.
type BindingClassifier struct{}

func NewBindingClassifier() BindingClassifier {
	return BindingClassifier{}
}

func (BindingClassifier) Overridable(n *Node) bool {
	if n == nil {
		return false
	}
	meta, ok := n.Attributes["metadata"].(map[string]interface{})
	if !ok {
		return false
	}
	_, hasBindings := meta["bindings"]
	return hasBindings
}
