package mcgen

// runtimeTag names one delegated type's runtime helper family and whether
// it owns heap state that free must release.
type runtimeTag struct {
	Name      string
	NeedsFree bool
}

// delegatedTags binds every Protodef tag whose wire format is fully
// owned by the runtime library (the self-serializing helpers) to the
// runtime helper it calls into.
var delegatedTags = map[string]runtimeTag{
	"slot":                      {"slot", true},
	"minecraft_smelting_format": {"smelting", true},
	"entityMetadata":            {"metadata", true},
	"entity_equipment":          {"entity_equipment", false},
	"particleData":              {"particle", false},
	"topBitSetTerminatedArray":  {"topbitset_array", true},
}

func newDelegatedNode(t *Tree, name string, parent NodeID, rt runtimeTag, data map[string]interface{}, useCompare bool) (NodeID, error) {
	spec := &DelegatedSpec{RuntimeName: rt.Name, NeedsFree: rt.NeedsFree}
	if rt.Name == "particle" {
		if id, ok := data["compareTo"].(string); ok {
			spec.IDField = id
		}
	}
	return t.alloc(&Node{
		Kind:        KindDelegated,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Delegated:   spec,
	}), nil
}
