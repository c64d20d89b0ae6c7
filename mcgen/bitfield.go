package mcgen

import "fmt"

// newBitfieldNode builds a bitfield: a complex type synthesizing a storage
// integer wide enough for the sum of all bit widths, rounded up to one of
// {8,16,32,64}. Fields are MSB-first in the schema; each named
// subfield's shift is the total bit width of all subfields declared after
// it. Fields literally named "_unused" or "unused" consume width but get
// no storage slot (exact match, not a prefix/substring heuristic, so a
// real field named e.g. "unused_flag" is never swallowed).
func newBitfieldNode(t *Tree, name string, parent NodeID, data map[string]interface{}, useCompare bool) (NodeID, error) {
	rawList, ok := data["fields"].([]interface{})
	if !ok {
		err := fmt.Errorf("bitfield %s: missing or malformed \"fields\"", name)
		t.errf("%s", err)
		return NoNode, err
	}

	type rawSub struct {
		name   string
		size   int
		signed bool
	}
	var raws []rawSub
	total := 0
	for _, item := range rawList {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fname, _ := m["name"].(string)
		size, _ := m["size"].(float64)
		signed, _ := m["signed"].(bool)
		raws = append(raws, rawSub{fname, int(size), signed})
		total += int(size)
	}

	storageBits := roundUpStorage(total)

	// Shift is the total width of every subfield declared *after* this
	// one (MSB-first schema order), so walk in reverse to accumulate it.
	var subs []BitSubfield
	shift := 0
	for i := len(raws) - 1; i >= 0; i-- {
		r := raws[i]
		if r.name == "_unused" || r.name == "unused" {
			shift += r.size
			continue
		}
		mask := (uint64(1)<<uint(r.size) - 1) << uint(shift)
		subs = append([]BitSubfield{{
			Name:    r.name,
			BitSize: r.size,
			Signed:  r.signed,
			Shift:   shift,
			Mask:    mask,
		}}, subs...)
		shift += r.size
	}

	n := &Node{
		Kind:        KindBitfield,
		Name:        name,
		CompareName: name,
		UseCompare:  useCompare,
		Parent:      parent,
		Bitfield:    &BitfieldSpec{StorageBits: storageBits, Subfields: subs},
	}
	id := t.alloc(n)
	registerTypedef(t, id)
	return id, nil
}

// roundUpStorage rounds a bit-width total up to the smallest storage
// width in {8,16,32,64} that can hold it.
func roundUpStorage(total int) int {
	for _, w := range []int{8, 16, 32, 64} {
		if total <= w {
			return w
		}
	}
	return 64
}
