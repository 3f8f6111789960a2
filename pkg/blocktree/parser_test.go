package blocktree

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
)

const sampleDoc = `{
	"root": {
		"type": "root",
		"children": [
			{"type": "core/paragraph", "attributes": {"content": "hello"}},
			{"type": "core/group", "children": [
				{"type": "core/image", "attributes": {"url": "/a.png"}}
			]},
			{"type": "core/block", "attributes": {"ref": "7c9e6679-7425-40de-944b-e07fc1f90ae7"}}
		]
	}
}`

func TestParseDocument(t *testing.T) {
	root, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	if root.Kind != KindContainer {
		t.Errorf("root kind = %v, want KindContainer", root.Kind)
	}
	if len(root.Children) != 3 {
		t.Fatalf("root has %d children, want 3", len(root.Children))
	}

	para := root.Children[0]
	if para.Kind != KindLeaf {
		t.Errorf("paragraph kind = %v, want KindLeaf", para.Kind)
	}
	if para.Attributes["content"] != "hello" {
		t.Errorf("paragraph content = %v, want hello", para.Attributes["content"])
	}

	group := root.Children[1]
	if group.Kind != KindContainer {
		t.Errorf("group kind = %v, want KindContainer", group.Kind)
	}

	ref := root.Children[2]
	if ref.Kind != KindPatternRef {
		t.Errorf("reference kind = %v, want KindPatternRef", ref.Kind)
	}
	id, ok := ref.RefID()
	if !ok {
		t.Fatal("RefID should resolve for a well-formed reference")
	}
	if id.String() != "7c9e6679-7425-40de-944b-e07fc1f90ae7" {
		t.Errorf("RefID = %s, want 7c9e6679-7425-40de-944b-e07fc1f90ae7", id)
	}
}

func TestParseDocumentRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not json", "{}", `{"root": {}}`} {
		if _, err := ParseDocument([]byte(raw)); err == nil {
			t.Errorf("ParseDocument(%q) should error", raw)
		}
	}
}

func TestParseAssignsUniqueIds(t *testing.T) {
	root, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	seen := map[uuid.UUID]bool{}
	var walk func(n *Node)
	walk = func(n *Node) {
		if seen[n.Id] {
			t.Errorf("duplicate node id %s", n.Id)
		}
		seen[n.Id] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)

	if len(seen) != root.Count() {
		t.Errorf("seen %d ids, Count = %d", len(seen), root.Count())
	}
}

func TestCloneFreshIds(t *testing.T) {
	root, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	clone := root.Clone()

	if clone.Id == root.Id {
		t.Error("clone should get a fresh root id")
	}
	if clone.Count() != root.Count() {
		t.Errorf("clone has %d nodes, original %d", clone.Count(), root.Count())
	}
	if clone.Children[0].Id == root.Children[0].Id {
		t.Error("clone children should get fresh ids")
	}

	// Attribute maps are copied, not shared.
	clone.Children[0].Attributes["content"] = "changed"
	if root.Children[0].Attributes["content"] != "hello" {
		t.Error("mutating a clone's attributes leaked into the original")
	}
}

func TestRefIDOnNonReference(t *testing.T) {
	n := &Node{Id: uuid.New(), Type: "core/paragraph", Kind: KindLeaf, Attributes: map[string]interface{}{}}
	if _, ok := n.RefID(); ok {
		t.Error("RefID should not resolve for non-reference nodes")
	}
}

func TestMarshalDocumentCarriesIds(t *testing.T) {
	root, err := ParseDocument([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseDocument returned error: %v", err)
	}

	raw, err := MarshalDocument(root)
	if err != nil {
		t.Fatalf("MarshalDocument returned error: %v", err)
	}

	var out struct {
		Root struct {
			Id       string            `json:"id"`
			Type     string            `json:"type"`
			Children []json.RawMessage `json:"children"`
		} `json:"root"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("marshaled document is not valid JSON: %v", err)
	}
	if out.Root.Id != root.Id.String() {
		t.Errorf("marshaled root id = %s, want %s", out.Root.Id, root.Id)
	}
	if len(out.Root.Children) != 3 {
		t.Errorf("marshaled root has %d children, want 3", len(out.Root.Children))
	}
}

func TestBindingClassifier(t *testing.T) {
	c := NewBindingClassifier()

	plain := &Node{Id: uuid.New(), Type: "core/paragraph", Kind: KindLeaf, Attributes: map[string]interface{}{}}
	if c.Overridable(plain) {
		t.Error("node without metadata should not be overridable")
	}

	bound := &Node{Id: uuid.New(), Type: "core/paragraph", Kind: KindLeaf, Attributes: map[string]interface{}{
		"metadata": map[string]interface{}{
			"name":     "cta",
			"bindings": map[string]interface{}{"content": map[string]interface{}{"source": "core/pattern-overrides"}},
		},
	}}
	if !c.Overridable(bound) {
		t.Error("node with metadata bindings should be overridable")
	}

	noBindings := &Node{Id: uuid.New(), Type: "core/paragraph", Kind: KindLeaf, Attributes: map[string]interface{}{
		"metadata": map[string]interface{}{"name": "named-only"},
	}}
	if c.Overridable(noBindings) {
		t.Error("metadata without bindings should not be overridable")
	}

	if c.Overridable(nil) {
		t.Error("nil node should not be overridable")
	}
}
