package mcgen

import (
	"fmt"

	"mcpgen/protodef"
)

// newArrayNode builds an array node, deciding among the three count
// flavors at construction time: fixed (a literal count), prefixed
// (countType names a numeric prefix), or foreign (count is a dotted path
// to another field).
func newArrayNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	elemRaw, err := requireField(data, "type", name)
	if err != nil {
		t.errf("array %s: %v", name, err)
		return NoNode, err
	}
	elemRT, err := rawTypeOf(elemRaw)
	if err != nil {
		t.errf("array %s: %v", name, err)
		return NoNode, err
	}

	spec := &ArraySpec{Depth: enclosingDepth(t, parent) + 1}
	var countTag string

	switch count := data["count"].(type) {
	case float64:
		spec.CountKind = CountFixed
		spec.FixedCount = int(count)
	case string:
		spec.CountKind = CountForeign
		spec.ForeignPath = count
	default:
		ctTag, ok := data["countType"].(string)
		if !ok {
			err := fmt.Errorf("array %s: must have one of count (literal), count (path string), or countType", name)
			t.errf("%s", err)
			return NoNode, err
		}
		spec.CountKind = CountPrefixed
		countTag = ctTag
	}

	n := &Node{
		Kind:        KindArray,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Array:       spec,
	}
	id := t.alloc(n)

	if spec.CountKind == CountPrefixed {
		countID, err := t.Build(name+"Count", id, protodef.RawType{Tag: countTag}, false)
		if err != nil {
			return NoNode, err
		}
		spec.CountPrefix = countID
	}

	elemID, err := t.Build(name, id, elemRT, false)
	if err != nil {
		return NoNode, err
	}
	spec.Elem = elemID

	registerVectorWrapper(t, id)
	return id, nil
}

// enclosingDepth counts every enclosing non-packet node on parent's
// chain, so the new array's own Depth is one more than that. Counting
// every aggregate, not just Array ancestors, is what keeps iterator
// names distinct when two arrays nest through an intermediate container:
// array<container{array<u8>}> gives the inner loop i2 against the outer
// i0 rather than shadowing it with a second i0.
func enclosingDepth(t *Tree, parent NodeID) int {
	depth := 0
	for p := parent; p != NoNode && !isPacketRoot(t, p); p = t.Node(p).Parent {
		depth++
	}
	return depth
}

// registerVectorWrapper interns the {size, data} vector typedef for an
// array field, analogous to registerOptionWrapper.
func registerVectorWrapper(t *Tree, id NodeID) {
	n := t.Node(id)
	elem := t.Node(n.Array.Elem)
	elemType := typeNameOf(elem)
	canonical := "mcp_vector_" + sanitizeTypeName(elemType)
	body := []string{
		fmt.Sprintf("typedef struct %s {", canonical),
		"\tuint32_t size;",
		fmt.Sprintf("\t%s* data;", elemType),
		"} " + canonical + ";",
	}
	name := t.Interner.Intern(canonical, body)
	n.Array.WrapperType = name
}
