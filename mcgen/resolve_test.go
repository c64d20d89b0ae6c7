package mcgen

import (
	"testing"

	"mcpgen/protodef"
)

// TestResolveCompareToPrefixesThisArrow: a switch selector is
// always read off the packet struct pointer at its point of use, so the
// resolved path must be "this->"-prefixed even though the raw path itself
// names no such prefix.
func TestResolveCompareToPrefixesThisArrow(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	fields := []protodef.Field{
		{Name: "kind", Type: protodef.RawType{Tag: "varint"}},
	}
	tr.BuildFields(root, fields)

	resolved, err := ResolveCompareTo(tr, root, "kind")
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "this->kind" {
		t.Errorf("ResolveCompareTo = %q, want %q", resolved, "this->kind")
	}
}

func TestResolveCompareToAscendsOutOfNestedContainer(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	fields := []protodef.Field{
		{Name: "kind", Type: protodef.RawType{Tag: "varint"}},
		{Name: "body", Type: protodef.RawType{Tag: "container", Data: map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"name": "payload", "type": "u8"},
			},
		}}},
	}
	tr.BuildFields(root, fields)

	var bodyID NodeID = NoNode
	for _, fid := range tr.Node(root).Container.Fields {
		if tr.Node(fid).Name == "body" {
			bodyID = fid
		}
	}
	if bodyID == NoNode {
		t.Fatal("expected a 'body' field")
	}

	resolved, err := ResolveCompareTo(tr, bodyID, "../kind")
	if err != nil {
		t.Fatalf("ResolveCompareTo: %v", err)
	}
	if resolved != "this->kind" {
		t.Errorf("resolved = %q, want this->kind", resolved)
	}
}

func TestResolveCompareToMissingFieldErrors(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	if _, err := ResolveCompareTo(tr, root, "nosuchfield"); err == nil {
		t.Error("expected an error resolving a nonexistent compareTo target")
	}
}
