package mcgen

import "mcpgen/protodef"

// newStringNode builds a variable-length, length-prefixed UTF-8 string
// node: length is varint-prefix bytes plus UTF-8 byte count, free
// releases the owned heap string via the runtime helper.
func newStringNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	return t.alloc(&Node{
		Kind:        KindString,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
	}), nil
}

// newBufferNode builds a length-prefixed byte vector node. The
// prefix count type is itself a Protodef numeric tag named by countType.
func newBufferNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	ctTag, err := stringField(data, "countType", name)
	if err != nil {
		t.errf("buffer %s: %v", name, err)
		return NoNode, err
	}
	n := &Node{
		Kind:        KindBuffer,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
	}
	id := t.alloc(n)
	countID, err := t.Build(name+"Count", id, protodef.RawType{Tag: ctTag}, false)
	if err != nil {
		return NoNode, err
	}
	n.Buffer = &BufferSpec{CountType: countID}
	return id, nil
}

// newRestBufferNode builds a node that absorbs the remainder of the
// packet buffer: decode sets size = remaining bytes and consumes
// them, so it is always decode-owned and free always releases it.
func newRestBufferNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	return t.alloc(&Node{
		Kind:        KindRestBuffer,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
	}), nil
}

// newNBTNode builds a plain (non-optional) NBT node, fully delegated to
// the runtime NBT codec.
func newNBTNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	return t.alloc(&Node{
		Kind:        KindNBT,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
	}), nil
}

// newOptionalNBTNode builds an optionalNbt node: an inline optional
// envelope around the delegated NBT codec (a TAG_END byte stands in for
// "absent" instead of a separate boolean tag).
func newOptionalNBTNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	return t.alloc(&Node{
		Kind:        KindNBT,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		NBT:         &NBTSpec{Optional: true},
	}), nil
}
