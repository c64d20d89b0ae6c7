// Copyright 2024 The mcpgen authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mcgen is the schema-tree compiler: it turns a Protodef type
// expression into a type node, and a type node into the four serializer
// operations (length, encode, decode, free) plus a declaration fragment.
//
// Type nodes are not a class hierarchy but a single tagged-sum struct
// (Kind selects which payload field is meaningful); emission is a switch
// over Kind rather than virtual dispatch, and parent back-links are
// plain integer NodeIDs into a Tree's node arena rather than live
// pointers, so the tree is cheaply copyable and free of reference
// cycles.
package mcgen

// NodeID is an index into a Tree's node arena. NoNode is the zero value's
// complement, used for "no parent" (i.e. this node is a packet root).
type NodeID int

// NoNode is the sentinel NodeID meaning "no such node" / "no parent".
const NoNode NodeID = -1

// Kind tags which payload of Node is meaningful.
type Kind int

// The type-node variants. Container and Bitfield are the only Complex
// kinds (they synthesize a named record type); Switch is neither Simple
// nor Complex -- it is a selector that contributes fields to its
// enclosing container rather than storing a value itself.
const (
	KindNumeric Kind = iota
	KindString
	KindBuffer
	KindRestBuffer
	KindNBT
	KindDelegated
	KindVoid
	KindContainer
	KindBitfield
	KindSwitch
	KindArray
	KindOption
)

// Node is one Protodef type occurrence in context.
type Node struct {
	id NodeID

	Kind Kind

	// Name is the display name used when referring to the variable
	// holding a value of this type. Empty for an anonymous field inside
	// another aggregate. It is fixed at construction time and never
	// mutated afterwards -- qualified (container-prefixed) names used
	// during emission are computed by the caller and threaded through
	// as an explicit parameter, never written back into Name. This is
	// what makes the "name discipline" invariant hold trivially: there
	// is nothing to restore because nothing is ever changed.
	Name string

	// CompareName is the name captured at construction, used only for
	// equality of sister fields inside switches (see switchnode.go).
	CompareName string
	// UseCompare selects CompareName over Name for that equality check.
	UseCompare bool

	// Parent is this node's enclosing node: a container, switch, array,
	// or (for a top-level field) the packet root. NoNode only for the
	// packet root itself.
	Parent NodeID

	Numeric   *NumericSpec
	Delegated *DelegatedSpec
	Container *ContainerSpec
	Bitfield  *BitfieldSpec
	Switch    *SwitchSpec
	Array     *ArraySpec
	Option    *OptionSpec
	Buffer    *BufferSpec
	NBT       *NBTSpec
}

// ID returns the node's identity within its owning Tree.
func (n *Node) ID() NodeID { return n.id }

// IsComplex reports whether this node requires a synthesized named record
// type (only containers and bitfields do).
func (n *Node) IsComplex() bool {
	return n.Kind == KindContainer || n.Kind == KindBitfield
}

// compareKey returns the name used for sister-field equality, selecting
// CompareName or Name per UseCompare.
func (n *Node) compareKey() string {
	if n.UseCompare {
		return n.CompareName
	}
	return n.Name
}
