package mcgen

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/go-cmp/cmp"
	"mcpgen/internal/util"
	"mcpgen/protodef"
)

// newSwitchNode builds a switch node, the hardest type in the
// registry because "switch" in the upstream catalog is not one thing --
// it is whichever of five overlapping behaviors the branch shapes happen
// to produce:
//
//   - Inverse: every branch type is void and a default exists. Only a
//     single non-default case is supported; a second void case is a
//     schema shape no catalog version exercises, so it still constructs
//     but is flagged MultiInverseNYI and emitted as the NYI sentinel (see
//     inverse-mode emission in emit.go) rather than guessed at.
//   - Union: branch bodies exist and are not all structurally identical
//     -- a true tagged union, emitted as a real switch statement with no
//     default arm.
//   - Null switch: a non-union switch whose compareTo matches a switch
//     already built as an earlier sibling field. It contributes no
//     storage of its own; its branches are merged into that earlier
//     ("lead sister") switch instead.
//   - String switch: any branch key is not a bare digit or true/false,
//     so dispatch compiles to strcmp chains instead of a C switch.
//   - Optional-as-switch: exactly one case (after sister-merging), which
//     collapses at emission time to a plain if rather than a dispatch
//     construct -- decided in emit.go from the merged Keys/Fields shape,
//     not recorded separately here.
//
// Branch field nodes are parented directly under the switch node itself
// (not under the switch's own parent container): the switch owns its
// branch bodies, and declareContainerBody / Packet.DeclarationLines splice
// DeclFields into the enclosing container's declaration instead of a single
// switch-shaped member.
func newSwitchNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	compareTo, _ := data["compareTo"].(string)
	if compareTo == "" {
		err := fmt.Errorf("switch %s: missing required key \"compareTo\"", name)
		t.errf("%s", err)
		return NoNode, err
	}
	entries, _ := data["fields"].([]protodef.SwitchFieldEntry)

	spec := &SwitchSpec{CompareTo: compareTo}
	n := &Node{
		Kind:        KindSwitch,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Switch:      spec,
	}
	id := t.alloc(n)

	if allVoidBranches(entries) {
		spec.IsInverse = true
		defRT, ok := data["default"].(protodef.RawType)
		if !ok {
			err := fmt.Errorf("switch %s: every branch is void but no default is given", name)
			t.errf("%s", err)
			return NoNode, err
		}
		if nonDefaultCaseCount(entries) > 1 {
			// Not a schema-structural error: construction proceeds, but
			// emit.go must substitute the NYI sentinel for real dispatch
			// logic -- the generator never invents semantics for a shape
			// the catalog never exercises.
			spec.MultiInverseNYI = true
		}
		defID, err := t.Build(name, id, defRT, true)
		if err != nil {
			return NoNode, err
		}
		spec.DeclFields = append(spec.DeclFields, defID)
		spec.HasDefault = true
		spec.DefaultCase = defID
	} else {
		spec.IsUnion = detectUnion(entries)
	}

	if !spec.IsUnion {
		if sister := findSisterSwitch(t, parent, compareTo, id); sister != NoNode {
			spec.NullSwitch = true
			lead := sister
			if t.Node(sister).Switch.NullSwitch {
				lead = t.Node(sister).Switch.LeadSister
			}
			spec.LeadSister = lead
			mergeIntoSister(t, lead, name, entries, spec.IsInverse, data["default"])
			return id, nil
		}
	}

	processSwitchFields(t, id, name, entries)
	return id, nil
}

// allVoidBranches reports whether every branch type is the bare "void"
// tag -- the inverse sub-case's trigger condition. A switch with zero
// branches is not a candidate (there is nothing to be the inverse of).
func allVoidBranches(entries []protodef.SwitchFieldEntry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if e.Type.Tag != "void" {
			return false
		}
	}
	return true
}

// nonDefaultCaseCount counts branches, used only to detect the
// multi-condition inverse shape this generator declines to emit.
func nonDefaultCaseCount(entries []protodef.SwitchFieldEntry) int {
	return len(entries)
}

// detectUnion compares every non-void branch's raw type expression for
// structural equality. If they are not all identical, this switch is a
// genuine tagged union rather than "the same body under several
// conditions" -- the distinction the upstream catalog collapses into one
// "switch" tag but which compiles to different C.
func detectUnion(entries []protodef.SwitchFieldEntry) bool {
	var nonVoid []protodef.RawType
	for _, e := range entries {
		if e.Type.Tag != "void" {
			nonVoid = append(nonVoid, e.Type)
		}
	}
	if len(nonVoid) == 0 {
		return false
	}
	first := nonVoid[0]
	for _, rt := range nonVoid[1:] {
		if !cmp.Equal(first, rt) {
			return true
		}
	}
	return false
}

// findSisterSwitch scans parent's already-built fields (see the
// incremental-append note on Tree.BuildFields) for an earlier switch
// sharing compareTo, excluding self. Anonymous intermediate kinds (an
// array element, an option's inner type) never hold switch siblings, so
// a non-container parent simply yields no sister.
func findSisterSwitch(t *Tree, parent NodeID, compareTo string, self NodeID) NodeID {
	if parent == NoNode {
		return NoNode
	}
	p := t.Node(parent)
	if p.Container == nil {
		return NoNode
	}
	for _, fid := range p.Container.Fields {
		if fid == self {
			continue
		}
		f := t.Node(fid)
		if f.Kind == KindSwitch && f.Switch.CompareTo == compareTo {
			return fid
		}
	}
	return NoNode
}

// mergeIntoSister absorbs a null switch's branches into its lead sister:
// an inverse sister's default case joins the lead's DeclFields exactly as
// it would have if this switch had been the lead, and then the sister's
// own branch entries are processed into the lead's Fields/Keys.
func mergeIntoSister(t *Tree, leadID NodeID, sisterName string, entries []protodef.SwitchFieldEntry, sisterIsInverse bool, sisterDefault interface{}) {
	lead := t.Node(leadID)
	if sisterIsInverse {
		if defRT, ok := sisterDefault.(protodef.RawType); ok {
			defID, err := t.Build(sisterName, leadID, defRT, true)
			if err == nil {
				lead.Switch.DeclFields = append(lead.Switch.DeclFields, defID)
			}
		}
	}
	processSwitchFields(t, leadID, sisterName, entries)
}

// processSwitchFields builds one node per branch entry, accumulates the
// deduplicated declaration list, populates the branch dispatch map, fixes
// up any name collision the dedup step produced, and re-sorts Keys for
// integer-keyed switches. It is called once for a switch's own entries
// and again, on the lead sister, for every null switch merged into it --
// it is safe to call repeatedly because every step re-derives its result
// from the full accumulated state rather than from just this call's
// delta.
func processSwitchFields(t *Tree, id NodeID, name string, entries []protodef.SwitchFieldEntry) {
	n := t.Node(id)
	spec := n.Switch
	if spec.Fields == nil {
		spec.Fields = make(map[string][]NodeID)
	}

	for _, e := range entries {
		key := e.Key
		if !isPlainCase(key) {
			key = `"` + key + `"`
			spec.IsStrSwitch = true
		}

		fieldID, err := t.Build(name, id, e.Type, true)
		if err != nil {
			continue
		}
		field := t.Node(fieldID)

		if field.Kind != KindVoid && !declFieldsContain(t, spec.DeclFields, fieldID) {
			spec.DeclFields = append(spec.DeclFields, fieldID)
		}

		if !spec.IsInverse && field.Kind == KindVoid {
			continue
		}

		if _, ok := spec.Fields[key]; !ok {
			spec.Keys = append(spec.Keys, key)
		}
		spec.Fields[key] = append(spec.Fields[key], fieldID)
	}

	resolveBranchCollisions(t, spec, name)

	if !spec.IsStrSwitch {
		sortCaseKeys(spec.Keys)
	}
}

// sortCaseKeys orders an integer-keyed switch's branch keys by numeric
// value, so emission order is stable and reads 2 before 10. true/false
// keys (boolean switches) have no numeric value and sort after the
// integers, by string.
func sortCaseKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		a, aerr := strconv.Atoi(keys[i])
		b, berr := strconv.Atoi(keys[j])
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		case berr == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

// isPlainCase reports whether a branch key is usable bare in a C switch
// statement (a non-negative integer literal, or true/false) as opposed to
// needing strcmp dispatch.
func isPlainCase(key string) bool {
	if key == "true" || key == "false" {
		return true
	}
	if key == "" {
		return false
	}
	for _, r := range key {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// declFieldsContain reports whether candidate is equivalent (same kind,
// same resolved type name, same compare key) to an existing member of
// list -- the switch's own "don't declare the same storage twice" rule.
func declFieldsContain(t *Tree, list []NodeID, candidate NodeID) bool {
	for _, id := range list {
		if nodesEquivalent(t, id, candidate) {
			return true
		}
	}
	return false
}

func nodesEquivalent(t *Tree, a, b NodeID) bool {
	na, nb := t.Node(a), t.Node(b)
	if na.Kind != nb.Kind {
		return false
	}
	if typeNameOf(na) != typeNameOf(nb) {
		return false
	}
	return na.compareKey() == nb.compareKey()
}

// resolveBranchCollisions renames whichever DeclFields member backs each
// branch key, whenever more than one DeclFields entry would otherwise
// share the same struct member name (every branch field is constructed
// with the switch's own name, so two or more distinct branch types
// collide by construction). An anonymous switch (name == "") is left
// alone: its fields bubble up into the parent container using their
// original names, and renaming them would corrupt that container's own
// declaration.
//
// This is the one permanent, construction-time exception to a node's
// Name being fixed for good the moment it is built: the rename happens
// before the branch field node is ever read by a caller, and nothing
// mutates it again afterwards.
func resolveBranchCollisions(t *Tree, spec *SwitchSpec, name string) {
	if name == "" {
		return
	}
	decl := spec.DeclFields
	dupe := make(map[NodeID]bool, len(decl))
	for _, a := range decl {
		count := 0
		for _, b := range decl {
			if t.Node(a).compareKey() == t.Node(b).compareKey() {
				count++
			}
		}
		if count > 1 {
			dupe[a] = true
		}
	}
	if len(dupe) == 0 {
		return
	}

	for _, key := range spec.Keys {
		var same NodeID = NoNode
		for _, f := range spec.Fields[key] {
			if dupe[f] {
				same = f
				break
			}
		}
		if same == NoNode {
			continue
		}
		sameNode := t.Node(same)
		if spec.IsStrSwitch {
			newName := util.SanitizeKey(key)
			sameNode.Name = newName
			// The dedup step may have collapsed two distinct keys onto one
			// DeclFields representative (structurally identical branch
			// bodies). Renaming that representative for *this* key can
			// leave the *other* key's case with no field of its own name
			// left in DeclFields; re-add it so that case isn't silently
			// undeclared.
			stillPresent := false
			for _, d := range spec.DeclFields {
				if t.Node(d).Name == newName {
					stillPresent = true
					break
				}
			}
			if !stillPresent {
				spec.DeclFields = append(spec.DeclFields, same)
			}
		} else {
			sameNode.Name = fmt.Sprintf("%s_%s", name, key)
		}
	}
}
