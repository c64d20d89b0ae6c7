package mcgen

// Constructor materializes a type node of one Protodef tag given a field
// name, parent node, and the raw type data object.
type Constructor func(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error)

// Registry is a process-lifetime mapping from Protodef type tag to
// Constructor. It is populated once via DefaultRegistry and never mutated
// thereafter; a lookup miss is a fatal schema-structural error.
type Registry map[string]Constructor

// DefaultRegistry returns the registry populated with every Protodef tag
// the upstream catalog uses. Order of
// registration is irrelevant: the map is read-only once construction
// begins.
func DefaultRegistry() Registry {
	r := make(Registry)

	for tag, spec := range numericTags {
		spec := spec
		r[tag] = func(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
			return newNumericNode(t, name, parent, spec, useCompare), nil
		}
	}

	r["void"] = newVoidNode
	r["string"] = newStringNode
	r["buffer"] = newBufferNode
	r["restBuffer"] = newRestBufferNode
	r["nbt"] = newNBTNode
	r["optionalNbt"] = newOptionalNBTNode

	for tag, rt := range delegatedTags {
		rt := rt
		r[tag] = func(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
			return newDelegatedNode(t, name, parent, rt, data, useCompare)
		}
	}

	r["container"] = newContainerNode
	r["bitfield"] = newBitfieldNode
	r["switch"] = newSwitchNode
	r["array"] = newArrayNode
	r["option"] = newOptionNode

	// ingredient/tags are count-prefixed vectors of plain varint on the
	// wire -- reuse the array machinery instead of a bespoke delegated
	// helper.
	r["ingredient"] = aliasArrayOfVarint
	r["tags"] = aliasArrayOfVarint

	return r
}

// aliasArrayOfVarint implements "ingredient"/"tags": an array<varint>
// counted by a varint prefix.
func aliasArrayOfVarint(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	synthesized := map[string]interface{}{
		"countType": "varint",
		"type":      "varint",
	}
	return newArrayNode(t, name, parent, synthesized, useCompare)
}
