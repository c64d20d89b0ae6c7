package mcgen

// NumericSpec is the payload for KindNumeric: every integer/float tag,
// plus the three "fixed-shape but not fixed-width" numerics (varint,
// varlong, and the packed position triple).
type NumericSpec struct {
	// StorageType is the C type used to declare a variable of this type.
	StorageType string
	// ByteSize is the on-wire size in bytes for fixed-width numerics; 0
	// for variable-length ones (varint/varlong), which compute their
	// length via Postfix's length helper instead.
	ByteSize int
	// Postfix names the runtime codec: encode_<Postfix>/decode_<Postfix>.
	Postfix string
	// Signed marks a signed numeric that shares its unsigned sibling's
	// encoder via a cast.
	Signed bool
	// Variable marks varint/varlong, whose length is not ByteSize but a
	// call to a variable-length helper (mcp_length_varint/mcp_length_varlong).
	Variable bool
	// IsPosition marks the packed x(26)/y(12)/z(26) triple, which
	// delegates all three wire operations to the mcp_*_type_Position
	// runtime helpers instead of a plain codec call.
	IsPosition bool
}

// DelegatedSpec is the payload for KindDelegated: types whose length,
// encode, decode and free bodies are each a single call into the runtime
// library, which owns the actual wire format.
type DelegatedSpec struct {
	// RuntimeName is the helper family name, e.g. "slot",
	// "metadata", "particle", "smelting", "entity_equipment",
	// "topbitset_array".
	RuntimeName string
	// NeedsFree marks a delegated type that owns heap state the runtime
	// free helper must release.
	NeedsFree bool
	// IDField names the foreign field (for particleData's compareTo)
	// that the runtime particle decoder needs to discriminate on.
	IDField string
}

// ContainerSpec is the payload for KindContainer, which is reused both for
// ordinary nested containers and for a packet's own root (IsPacketRoot).
type ContainerSpec struct {
	// Fields are this container's direct children, in schema order. A
	// null switch (see SwitchSpec.NullSwitch) among them contributes no
	// storage and emits nothing, but still occupies a slot here so that
	// emission order matches construction order.
	Fields []NodeID
	// IsPacketRoot marks the synthetic container that stands in for a
	// packet itself -- the root every non-packet node's parent chain
	// must reach exactly once.
	IsPacketRoot bool
	// TypeName is the synthesized struct type name registered in the
	// interner (e.g. "mcp_type_Metadata"), distinct from the node's
	// Name, which remains the display/variable name used at use sites.
	TypeName string
}

// BitSubfield is one named, non-"_unused" member of a bitfield.
type BitSubfield struct {
	Name    string
	BitSize int
	Signed  bool
	// Shift is the total bit width of all subfields declared after this
	// one (fields are MSB-first in the schema).
	Shift int
	Mask  uint64
}

// BitfieldSpec is the payload for KindBitfield.
type BitfieldSpec struct {
	// StorageBits is the width of the synthesized storage integer,
	// rounded up from the sum of all subfield widths (including
	// "_unused"/"unused" padding) to one of {8,16,32,64}.
	StorageBits int
	Subfields   []BitSubfield
	// TypeName is the synthesized struct type name registered in the
	// interner, distinct from the node's display Name.
	TypeName string
}

// BufferSpec is the payload for KindBuffer: the count-prefix codec.
type BufferSpec struct {
	CountType NodeID
}

// NBTSpec is the payload for KindNBT.
type NBTSpec struct {
	// Optional marks optionalNbt's inline envelope (TAG_END stands in
	// for "absent" rather than a separate boolean tag).
	Optional bool
}

// CountKind selects how an array's element count is determined.
type CountKind int

const (
	// CountFixed: a compile-time literal, recorded as a declaration
	// comment only -- the emitted loop bound is always <name>.size.
	CountFixed CountKind = iota
	// CountPrefixed: a numeric value read immediately before the elements.
	CountPrefixed
	// CountForeign: a dotted path to another field that already holds the count.
	CountForeign
)

// ArraySpec is the payload for KindArray.
type ArraySpec struct {
	CountKind   CountKind
	FixedCount  int
	CountPrefix NodeID // valid iff CountKind == CountPrefixed
	ForeignPath string // valid iff CountKind == CountForeign
	Elem        NodeID
	// Depth is one more than the number of enclosing non-packet
	// aggregates, used to name this array's loop iterator i<Depth-1> so
	// nested arrays get distinct iterator names even when the nesting
	// passes through an intermediate container or switch.
	Depth int
	// WrapperType is the interned {size, data} vector typedef name.
	WrapperType string
}

// OptionSpec is the payload for KindOption.
type OptionSpec struct {
	Inner NodeID
	// WrapperType is the interned {has_value, value} typedef name.
	WrapperType string
}

// SwitchSpec is the payload for KindSwitch -- see switchnode.go for the
// construction logic that populates it.
type SwitchSpec struct {
	CompareTo string

	IsInverse   bool
	IsUnion     bool
	NullSwitch  bool
	IsStrSwitch bool

	// LeadSister is the switch that absorbed this one's branches, if
	// NullSwitch is true. NoNode otherwise.
	LeadSister NodeID

	// HasDefault and DefaultCase describe the inverse switch's default
	// arm -- the only sub-case with a catch-all branch. A true union's
	// generated switch statement has no default: label; an unrecognized
	// discriminant value silently moves nothing.
	HasDefault  bool
	DefaultCase NodeID

	// MultiInverseNYI marks an inverse switch with more than one listed
	// void case, a shape no upstream catalog version exercises.
	// Construction still succeeds but emission produces a `// Multi-
	// Condition Inverse Not Yet Implemented` sentinel instead of real
	// dispatch logic.
	MultiInverseNYI bool

	// DeclFields is the deduplicated (by type+compare-key) union of every
	// branch's field across every case -- what the switch contributes as
	// struct storage members to its enclosing container, since only one
	// branch's worth is ever populated live but all must have a slot.
	DeclFields []NodeID

	// Keys preserves branch-map iteration order: sorted numerically for
	// integer-keyed switches, insertion order for string-keyed ones.
	Keys []string
	// Fields maps a branch key to the (possibly renamed, possibly
	// merged-in-from-a-sister) ordered field list for that branch.
	Fields map[string][]NodeID
}
