package mcgen

import (
	"strings"
	"testing"

	"mcpgen/protodef"
)

func TestArrayFixedCount(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	data := map[string]interface{}{"count": float64(3), "type": "u8"}
	id, err := tr.Build("items", root, protodef.RawType{Tag: "array", Data: data}, false)
	if err != nil {
		t.Fatal(err)
	}
	spec := tr.Node(id).Array
	if spec.CountKind != CountFixed || spec.FixedCount != 3 {
		t.Errorf("got %+v, want CountFixed with FixedCount 3", spec)
	}
}

func TestArrayPrefixedCount(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	data := map[string]interface{}{"countType": "varint", "type": "u8"}
	id, err := tr.Build("items", root, protodef.RawType{Tag: "array", Data: data}, false)
	if err != nil {
		t.Fatal(err)
	}
	spec := tr.Node(id).Array
	if spec.CountKind != CountPrefixed {
		t.Fatalf("got CountKind %v, want CountPrefixed", spec.CountKind)
	}
	if tr.Node(spec.CountPrefix).Kind != KindNumeric {
		t.Error("the count prefix should materialize as a numeric node")
	}
}

// TestArrayForeignCountResolvesSiblingField: a container with
// {varint count, array<u8>{count: "../count"} data}.
func TestArrayForeignCountResolvesSiblingField(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()

	fields := []protodef.Field{
		{Name: "count", Type: protodef.RawType{Tag: "varint"}},
		{Name: "data", Type: protodef.RawType{Tag: "array", Data: map[string]interface{}{
			"count": "../count",
			"type":  "u8",
		}}},
	}
	tr.BuildFields(root, fields)

	var dataID NodeID = NoNode
	for _, fid := range tr.Node(root).Container.Fields {
		if tr.Node(fid).Name == "data" {
			dataID = fid
		}
	}
	if dataID == NoNode {
		t.Fatal("expected a 'data' field to have been built")
	}
	spec := tr.Node(dataID).Array
	if spec.CountKind != CountForeign {
		t.Fatalf("got CountKind %v, want CountForeign", spec.CountKind)
	}

	resolved, err := ResolveForeignCount(tr, root, spec.ForeignPath)
	if err != nil {
		t.Fatalf("ResolveForeignCount: %v", err)
	}
	if resolved != "count" {
		t.Errorf("resolved path = %q, want %q", resolved, "count")
	}
}

func TestArrayForeignCountUnresolvablePathErrors(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	fields := []protodef.Field{
		{Name: "data", Type: protodef.RawType{Tag: "array", Data: map[string]interface{}{
			"count": "../nonexistent",
			"type":  "u8",
		}}},
	}
	tr.BuildFields(root, fields)
	dataID := tr.Node(root).Container.Fields[0]
	spec := tr.Node(dataID).Array
	if _, err := ResolveForeignCount(tr, root, spec.ForeignPath); err == nil {
		t.Error("expected an error resolving a path to a nonexistent field")
	}
}

// TestArrayNestedThroughContainerGetsDistinctIterator: depth counts
// every enclosing non-packet aggregate, so an inner array separated from
// its outer array by a container still gets its own iterator name
// instead of shadowing the outer loop's.
func TestArrayNestedThroughContainerGetsDistinctIterator(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	inner := map[string]interface{}{"countType": "varint", "type": "u8"}
	outer := map[string]interface{}{
		"count": float64(2),
		"type": []interface{}{"container", map[string]interface{}{
			"fields": []interface{}{
				map[string]interface{}{"name": "vals", "type": []interface{}{"array", inner}},
			},
		}},
	}
	id, err := tr.Build("grid", root, protodef.RawType{Tag: "array", Data: outer}, false)
	if err != nil {
		t.Fatal(err)
	}
	outerSpec := tr.Node(id).Array
	if outerSpec.Depth != 1 {
		t.Errorf("outer array Depth = %d, want 1", outerSpec.Depth)
	}

	elem := tr.Node(outerSpec.Elem)
	if elem.Kind != KindContainer {
		t.Fatalf("expected container element, got Kind %v", elem.Kind)
	}
	innerID := elem.Container.Fields[0]
	innerSpec := tr.Node(innerID).Array
	if innerSpec.Depth != 3 {
		t.Errorf("inner array Depth = %d, want 3 (outer array + container enclose it)", innerSpec.Depth)
	}

	enc := strings.Join(Emit(tr, id, "this->grid", ModeEncode, ""), "\n")
	if !strings.Contains(enc, "for (size_t i0 = 0; i0 < this->grid.size; i0++) {") {
		t.Errorf("outer loop should iterate i0:\n%s", enc)
	}
	if !strings.Contains(enc, "for (size_t i2 = 0; i2 < this->grid.data[i0].vals.size; i2++) {") {
		t.Errorf("inner loop should iterate i2 over the outer element's member:\n%s", enc)
	}
}

func TestNestedArrayIteratorDepth(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	inner := map[string]interface{}{"count": float64(2), "type": "u8"}
	outer := map[string]interface{}{"count": float64(2), "type": []interface{}{"array", inner}}
	id, err := tr.Build("grid", root, protodef.RawType{Tag: "array", Data: outer}, false)
	if err != nil {
		t.Fatal(err)
	}
	outerSpec := tr.Node(id).Array
	if outerSpec.Depth != 1 {
		t.Errorf("outer array Depth = %d, want 1", outerSpec.Depth)
	}
	innerNode := tr.Node(outerSpec.Elem)
	if innerNode.Kind != KindArray {
		t.Fatalf("expected nested array element, got Kind %v", innerNode.Kind)
	}
	if innerNode.Array.Depth != 2 {
		t.Errorf("inner array Depth = %d, want 2", innerNode.Array.Depth)
	}
}
