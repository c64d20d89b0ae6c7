package mcgen

import (
	"fmt"
	"strings"

	"github.com/openconfig/gnmi/ctree"
	"mcpgen/internal/util"
	"mcpgen/protodef"
)

// Tree is the arena owning every node constructed for the packets built
// into it, plus the process-wide state (registry, interner, path index)
// shared across every packet built during one generator run. A Tree is built once and then
// walked repeatedly -- once per emission pass -- never mutated structurally
// after construction, per the concurrency model: single-threaded, batch,
// no suspension points.
type Tree struct {
	registry Registry
	Interner *Interner

	nodes []*Node

	// paths indexes every field appended by BuildFields, of any kind, by
	// its dotted structural path (ancestor names, '.'-joined) so that
	// compareTo/foreign-count resolution can validate that the target it
	// names actually exists, the same way genState.resolveLeafrefTarget
	// validates a leafref against the schema tree.
	paths *ctree.Tree

	Errs util.Errors
}

// NewTree creates a Tree backed by reg, sharing interner across every
// packet generated in this run (the interner is process-lifetime: it only
// ever grows, across every packet of every state/source).
func NewTree(reg Registry, interner *Interner) *Tree {
	return &Tree{
		registry: reg,
		Interner: interner,
		paths:    &ctree.Tree{},
	}
}

// alloc appends a freshly constructed node to the arena and returns its ID.
func (t *Tree) alloc(n *Node) NodeID {
	id := NodeID(len(t.nodes))
	n.id = id
	t.nodes = append(t.nodes, n)
	return id
}

// Node dereferences a NodeID. Panics on an out-of-range id, which can only
// happen from a programming error within this package (ids are never
// handed to callers except as opaque tokens obtained from this Tree).
func (t *Tree) Node(id NodeID) *Node {
	return t.nodes[id]
}

// errf records a schema-structural error without aborting construction of
// the rest of the tree, so the driver can report every broken packet in a
// single pass (per the ambient error-aggregation stack).
func (t *Tree) errf(format string, args ...interface{}) {
	t.Errs = util.AppendErr(t.Errs, fmt.Errorf(format, args...))
}

// Build dispatches a raw Protodef type expression to its registered
// constructor, producing one node parented under parent.
func (t *Tree) Build(name string, parent NodeID, raw protodef.RawType, useCompare bool) (NodeID, error) {
	ctor, ok := t.registry[raw.Tag]
	if !ok {
		err := fmt.Errorf("unknown type tag %q for field %q", raw.Tag, name)
		t.errf("%s", err)
		return NoNode, err
	}
	return ctor(t, name, parent, raw.Data, useCompare)
}

// path returns the dotted structural path of id, used both as the ctree
// index key and as a stable identifier for interning decisions.
func (t *Tree) path(id NodeID) string {
	var parts []string
	for cur := id; cur != NoNode; {
		n := t.Node(cur)
		if n.Name != "" {
			parts = append([]string{n.Name}, parts...)
		}
		cur = n.Parent
	}
	return strings.Join(parts, ".")
}

// indexPath registers id under its structural path in the ctree index, for
// later lookup by lookupPath (from resolvePath). Collisions (e.g. a string-switch rename
// re-introducing a field, see switchnode.go) are allowed to overwrite --
// the index is best-effort existence/identity evidence, not a uniqueness
// constraint; uniqueness is the interner's job, not the path tree's.
func (t *Tree) indexPath(id NodeID) {
	p := t.path(id)
	if p == "" {
		return
	}
	_ = t.paths.Add(strings.Split(p, "."), id)
}

// lookupPath resolves a dotted structural path back to the NodeID
// registered for it, or NoNode if nothing was indexed there.
func (t *Tree) lookupPath(p string) (NodeID, bool) {
	if p == "" {
		return NoNode, false
	}
	v := t.paths.GetLeafValue(strings.Split(p, "."))
	if v == nil {
		return NoNode, false
	}
	id, ok := v.(NodeID)
	return id, ok
}

// NewPacketRoot allocates the synthetic container node that stands in for
// a packet, per the data model's "root of each packet is the packet
// itself" invariant.
func (t *Tree) NewPacketRoot() NodeID {
	return t.alloc(&Node{
		Kind:      KindContainer,
		Parent:    NoNode,
		Container: &ContainerSpec{IsPacketRoot: true},
	})
}

// BuildFields constructs and appends every entry of fields into root's field
// list in schema order, handling each field's own parent/sister/collision
// bookkeeping through Build. It is shared between packet construction and
// ordinary nested container construction (container.go).
func (t *Tree) BuildFields(root NodeID, fields []protodef.Field) []NodeID {
	c := t.Node(root).Container
	for _, f := range fields {
		id, err := t.Build(f.Name, root, f.Type, false)
		if err != nil {
			continue
		}
		// Appended immediately, not batched until the loop ends, so that a
		// switch field built later in this same loop can find an earlier
		// sister switch (see findSisterSwitch in switchnode.go) by scanning
		// c.Fields as it stands so far.
		c.Fields = append(c.Fields, id)
		t.indexPath(id)
	}
	return c.Fields
}
