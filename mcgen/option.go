package mcgen

import "fmt"

// newOptionNode builds an option<T> node: a composite-simple type.
// Its own node remains "simple" at use sites (no struct synthesis is
// needed for the field itself), but it registers a parametric optional
// wrapper typedef into the interner the first time a given inner type is
// wrapped, so repeated option<T> fields over the same T share one wrapper.
func newOptionNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	innerRaw, err := requireField(data, "type", name)
	if err != nil {
		t.errf("option %s: %v", name, err)
		return NoNode, err
	}
	rt, err := rawTypeOf(innerRaw)
	if err != nil {
		t.errf("option %s: %v", name, err)
		return NoNode, err
	}

	n := &Node{
		Kind:        KindOption,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Option:      &OptionSpec{},
	}
	id := t.alloc(n)
	innerID, err := t.Build(name, id, rt, false)
	if err != nil {
		return NoNode, err
	}
	n.Option.Inner = innerID

	registerOptionWrapper(t, id)
	return id, nil
}

// registerOptionWrapper interns the {has_value, value} wrapper typedef for
// an option<T> field. If the inner type is complex, its own typedef has
// already been registered (it was built first, above) so the wrapper
// simply references that name; if simple, the wrapper is a parametric
// optional over the inner storage type name.
func registerOptionWrapper(t *Tree, id NodeID) {
	n := t.Node(id)
	inner := t.Node(n.Option.Inner)
	innerType := typeNameOf(inner)
	canonical := "mcp_optional_" + sanitizeTypeName(innerType)
	body := []string{
		fmt.Sprintf("typedef struct %s {", canonical),
		"\tbool has_value;",
		fmt.Sprintf("\t%s value;", innerType),
		"} " + canonical + ";",
	}
	name := t.Interner.Intern(canonical, body)
	n.Option.WrapperType = name
}
