package mcgen

// numericTags binds every numeric/fundamental Protodef tag to its
// (storage-type, byte-size, codec-postfix, signedness) tuple.
// Signed variants share the unsigned encoder by casting; varint/varlong
// are variable-length and compute length via their postfix helper
// instead of ByteSize. position delegates all three wire operations to
// the mcp_*_type_Position runtime helpers, which own the packed
// x(26)/y(12)/z(26) layout.
var numericTags = map[string]NumericSpec{
	"bool": {StorageType: "bool", ByteSize: 1, Postfix: "u8"},
	"u8":   {StorageType: "uint8_t", ByteSize: 1, Postfix: "u8"},
	"i8":   {StorageType: "int8_t", ByteSize: 1, Postfix: "u8", Signed: true},
	"u16":  {StorageType: "uint16_t", ByteSize: 2, Postfix: "u16"},
	"i16":  {StorageType: "int16_t", ByteSize: 2, Postfix: "u16", Signed: true},
	"u32":  {StorageType: "uint32_t", ByteSize: 4, Postfix: "u32"},
	"i32":  {StorageType: "int32_t", ByteSize: 4, Postfix: "u32", Signed: true},
	"u64":  {StorageType: "uint64_t", ByteSize: 8, Postfix: "u64"},
	"i64":  {StorageType: "int64_t", ByteSize: 8, Postfix: "u64", Signed: true},
	"f32":  {StorageType: "float", ByteSize: 4, Postfix: "u32", Signed: true},
	"f64":  {StorageType: "double", ByteSize: 8, Postfix: "u64", Signed: true},

	"varint":  {StorageType: "int32_t", Postfix: "varint", Variable: true, Signed: true},
	"varlong": {StorageType: "int64_t", Postfix: "varlong", Variable: true, Signed: true},

	"UUID": {StorageType: "mcp_uuid_t", ByteSize: 16, Postfix: "uuid"},

	"position": {StorageType: "mcp_position_t", ByteSize: 8, Postfix: "position", IsPosition: true},
}

func newNumericNode(t *Tree, name string, parent NodeID, spec NumericSpec, useCompare bool) NodeID {
	specCopy := spec
	return t.alloc(&Node{
		Kind:        KindNumeric,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Numeric:     &specCopy,
	})
}

func newVoidNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	// void carries no data: it occurs exclusively as a switch branch tag
	// meaning "this case has no fields", and is emitted only as a
	// comment, never as a storage slot.
	return t.alloc(&Node{
		Kind:        KindVoid,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
	}), nil
}
