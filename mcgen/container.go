package mcgen

// newContainerNode builds an ordinary nested container: a complex type
// that synthesizes a named record type wrapping its child declarations.
func newContainerNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	fields, err := fieldsOf(data, "fields")
	if err != nil {
		t.errf("container %s: %v", name, err)
		return NoNode, err
	}
	n := &Node{
		Kind:        KindContainer,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Container:   &ContainerSpec{},
	}
	id := t.alloc(n)
	t.BuildFields(id, fields)
	registerTypedef(t, id)
	return id, nil
}

// registerTypedef interns the struct declaration body for a complex type
// node under its canonical name, resolving any shape collision per the
// interner's numeric-suffix retry. The chosen (possibly
// suffixed) interned name becomes the node's TypeName -- the name used
// wherever the *type* is referenced (declarations, sizeof, casts) -- and
// is kept distinct from Name, the variable/field name used at use sites.
func registerTypedef(t *Tree, id NodeID) {
	n := t.Node(id)
	canonical := "mcp_type_" + capitalize(n.Name)
	body := declareBody(t, id)
	typeName := t.Interner.Intern(canonical, body)
	switch n.Kind {
	case KindContainer:
		n.Container.TypeName = typeName
	case KindBitfield:
		n.Bitfield.TypeName = typeName
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
