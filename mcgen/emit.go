package mcgen

import (
	"fmt"
	"strings"

	"mcpgen/internal/util"
)

// Mode selects which of the four per-field operations to emit. Every
// Kind shares one Emit switch parameterized by Mode, since the
// structural shape of each type's body (loop, if-chain, switch
// statement) barely varies between modes; only the leaf lines differ.
type Mode int

// The four emission modes. Declaration, the fifth per-type operation,
// is handled separately by declareBody, since it produces type-level
// text rather than per-instance statements.
const (
	ModeEncode Mode = iota
	ModeDecode
	ModeLength
	ModeFree
)

// Emit produces the statement lines for one node's value, referenced by
// ref -- the fully qualified C expression a caller has already computed
// for this node (e.g. "this->foo.bar", or "this->arr.data[i0]"). ref is
// threaded explicitly rather than written back into the node, which is
// what keeps Node.Name immutable after construction: there is no
// save/restore dance because nothing is ever mutated to begin with.
func Emit(t *Tree, id NodeID, ref string, mode Mode, lenVar string) []string {
	n := t.Node(id)
	switch n.Kind {
	case KindNumeric:
		return emitNumeric(n.Numeric, ref, mode, lenVar)
	case KindVoid:
		return emitVoid(n, mode)
	case KindString:
		return emitString(ref, mode, lenVar)
	case KindBuffer:
		return emitBuffer(t, n, ref, mode, lenVar)
	case KindRestBuffer:
		return emitRestBuffer(ref, mode, lenVar)
	case KindNBT:
		return emitNBT(n, ref, mode, lenVar)
	case KindDelegated:
		return emitDelegated(n, ref, mode, lenVar)
	case KindContainer:
		return emitContainer(t, n, ref, mode, lenVar)
	case KindBitfield:
		return emitBitfield(n, ref, mode, lenVar)
	case KindArray:
		return emitArray(t, n, ref, mode, lenVar)
	case KindOption:
		return emitOption(t, n, ref, mode, lenVar)
	case KindSwitch:
		return emitSwitch(t, n, ref, mode, lenVar)
	default:
		return nil
	}
}

// needsFree reports whether emitting this node in ModeFree would produce
// any statements at all -- the check that lets a switch or option skip
// an `if` branch that would be empty, and lets a fixed array of
// plain numerics skip its loop entirely instead of looping to do nothing.
func needsFree(t *Tree, id NodeID) bool {
	n := t.Node(id)
	switch n.Kind {
	case KindString, KindBuffer, KindRestBuffer, KindNBT:
		return true
	case KindDelegated:
		return n.Delegated.NeedsFree
	case KindContainer:
		for _, fid := range n.Container.Fields {
			f := t.Node(fid)
			if f.Kind == KindSwitch && f.Switch.NullSwitch {
				continue
			}
			if needsFree(t, fid) {
				return true
			}
		}
		return false
	case KindArray:
		if n.Array.CountKind == CountFixed {
			return needsFree(t, n.Array.Elem)
		}
		return true
	case KindOption:
		return needsFree(t, n.Option.Inner)
	case KindSwitch:
		if n.Switch.NullSwitch {
			return false
		}
		for _, fid := range n.Switch.DeclFields {
			if needsFree(t, fid) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// joinName composes a child's qualified reference from its container's
// own qualified reference: a "->"-suffixed prefix (used
// only at packet scope, where "this" is a pointer) appends directly;
// otherwise a "." joins struct-by-value member access.
func joinName(prefix, child string) string {
	if child == "" {
		return prefix
	}
	if prefix == "" {
		return child
	}
	if strings.HasSuffix(prefix, "->") {
		return prefix + child
	}
	return prefix + "." + child
}

func indentAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "\t" + l
	}
	return out
}

// --- numeric ---------------------------------------------------------

func unsignedCastType(byteSize int) string {
	switch byteSize {
	case 1:
		return "uint8_t"
	case 2:
		return "uint16_t"
	case 4:
		return "uint32_t"
	default:
		return "uint64_t"
	}
}

func isFloatStorage(storageType string) bool {
	return storageType == "float" || storageType == "double"
}

// emitNumeric covers every fixed/variable-length numeric. Signed integers
// and floats share their unsigned sibling's wire codec via a pointer
// cast -- for integers a value cast is enough, but a float's bit pattern
// must be reinterpreted rather than numerically converted, so it always
// goes through a pointer dereference instead of a value cast.
func emitNumeric(spec *NumericSpec, ref string, mode Mode, lenVar string) []string {
	switch mode {
	case ModeFree:
		return nil
	case ModeLength:
		if spec.IsPosition {
			return []string{fmt.Sprintf("mcp_length_type_Position(&%s, %s);", ref, lenVar)}
		}
		if spec.Variable {
			return []string{fmt.Sprintf("*%s += mcp_length_%s(%s);", lenVar, spec.Postfix, ref)}
		}
		return []string{fmt.Sprintf("*%s += sizeof(%s);", lenVar, ref)}
	case ModeEncode:
		if spec.IsPosition {
			return []string{fmt.Sprintf("mcp_encode_type_Position(&%s, dest);", ref)}
		}
		if spec.Postfix == "uuid" {
			return []string{fmt.Sprintf("mcp_encode_%s(&%s, dest);", spec.Postfix, ref)}
		}
		if spec.Variable {
			return []string{fmt.Sprintf("mcp_encode_%s(%s, dest);", spec.Postfix, ref)}
		}
		if spec.Signed && isFloatStorage(spec.StorageType) {
			cast := unsignedCastType(spec.ByteSize)
			return []string{fmt.Sprintf("mcp_encode_%s(*(%s*)&%s, dest);", spec.Postfix, cast, ref)}
		}
		if spec.Signed {
			cast := unsignedCastType(spec.ByteSize)
			return []string{fmt.Sprintf("mcp_encode_%s((%s)%s, dest);", spec.Postfix, cast, ref)}
		}
		return []string{fmt.Sprintf("mcp_encode_%s(%s, dest);", spec.Postfix, ref)}
	case ModeDecode:
		if spec.IsPosition {
			return []string{fmt.Sprintf("mcp_decode_type_Position(&%s, src);", ref)}
		}
		if spec.Postfix == "uuid" {
			return []string{fmt.Sprintf("mcp_decode_%s(&%s, src);", spec.Postfix, ref)}
		}
		if spec.Variable {
			return []string{fmt.Sprintf("%s = mcp_decode_%s(src);", ref, spec.Postfix)}
		}
		if spec.Signed {
			cast := unsignedCastType(spec.ByteSize)
			return []string{fmt.Sprintf("mcp_decode_%s((%s*)&%s, src);", spec.Postfix, cast, ref)}
		}
		return []string{fmt.Sprintf("mcp_decode_%s(&%s, src);", spec.Postfix, ref)}
	}
	return nil
}

func emitVoid(n *Node, mode Mode) []string {
	if mode == ModeFree {
		return nil
	}
	return []string{fmt.Sprintf("/* '%s' is a void type */", n.Name)}
}

// --- string / buffer / rest-buffer / nbt ------------------------------

func emitString(ref string, mode Mode, lenVar string) []string {
	switch mode {
	case ModeEncode:
		return []string{fmt.Sprintf("mcp_encode_string(%s, dest);", ref)}
	case ModeDecode:
		return []string{fmt.Sprintf("mcp_decode_string(&%s, src);", ref)}
	case ModeLength:
		return []string{fmt.Sprintf("mcp_length_string(%s, %s);", ref, lenVar)}
	case ModeFree:
		return []string{fmt.Sprintf("mcp_free_string(&%s);", ref)}
	}
	return nil
}

// emitBuffer: the prefix count is itself a child node (built in
// stringbuffer.go), emitted first; the actual bytes move through one
// bulk runtime call rather than a per-byte loop. Decode mallocs the
// data pointer, so free always releases it, like restBuffer.
func emitBuffer(t *Tree, n *Node, ref string, mode Mode, lenVar string) []string {
	countRef := ref + ".size"
	switch mode {
	case ModeEncode:
		out := Emit(t, n.Buffer.CountType, countRef, ModeEncode, lenVar)
		return append(out, fmt.Sprintf("mcp_encode_buffer(&%s, dest);", ref))
	case ModeDecode:
		out := Emit(t, n.Buffer.CountType, countRef, ModeDecode, lenVar)
		return append(out, fmt.Sprintf("mcp_decode_buffer(&%s, src);", ref))
	case ModeLength:
		out := Emit(t, n.Buffer.CountType, countRef, ModeLength, lenVar)
		return append(out, fmt.Sprintf("*%s += sizeof(*%s.data) * %s.size;", lenVar, ref, ref))
	case ModeFree:
		return []string{fmt.Sprintf("free(%s.data);", ref)}
	}
	return nil
}

func emitRestBuffer(ref string, mode Mode, lenVar string) []string {
	switch mode {
	case ModeEncode:
		return []string{fmt.Sprintf("mcp_encode_buffer(&%s, dest);", ref)}
	case ModeDecode:
		return []string{
			fmt.Sprintf("%s.size = src->size - src->index;", ref),
			fmt.Sprintf("mcp_decode_buffer(&%s, src);", ref),
		}
	case ModeLength:
		return []string{fmt.Sprintf("*%s += (sizeof(*%s.data) * %s.size);", lenVar, ref, ref)}
	case ModeFree:
		return []string{fmt.Sprintf("free(%s.data);", ref)}
	}
	return nil
}

// emitNBT handles both plain nbt and optionalNbt (whose NBT.Optional
// envelope uses TAG_END in place of a separate boolean tag). The scratch
// tag byte each mode needs is declared in a local block rather than
// hoisted to a shared per-packet variable, so packet.go needs no
// separate hoisting pass.
func emitNBT(n *Node, ref string, mode Mode, lenVar string) []string {
	if n.NBT != nil && n.NBT.Optional {
		switch mode {
		case ModeEncode:
			return []string{
				fmt.Sprintf("if (%s.has_value) {", ref),
				fmt.Sprintf("\tmcp_encode_type_NbtTagCompound(&%s.value, dest);", ref),
				"} else {",
				"\tmcp_encode_u8(MCP_NBT_TAG_END, dest);",
				"}",
			}
		case ModeDecode:
			return []string{
				"{",
				"\tuint8_t mcp_nbt_tag;",
				"\tmcp_decode_u8(&mcp_nbt_tag, src);",
				"\tif (mcp_nbt_tag == MCP_NBT_TAG_COMPOUND) {",
				fmt.Sprintf("\t\t%s.has_value = true;", ref),
				fmt.Sprintf("\t\tmcp_decode_type_NbtTagCompound(&%s.value, src);", ref),
				"\t}",
				"}",
			}
		case ModeLength:
			return []string{
				fmt.Sprintf("if (%s.has_value) {", ref),
				fmt.Sprintf("\tmcp_length_type_NbtTagCompound(&%s.value, %s);", ref, lenVar),
				"} else {",
				fmt.Sprintf("\t*%s += 1;", lenVar),
				"}",
			}
		case ModeFree:
			return []string{
				fmt.Sprintf("if (%s.has_value) {", ref),
				fmt.Sprintf("\tmcp_free_type_NbtTagCompound(&%s.value);", ref),
				"}",
			}
		}
		return nil
	}
	switch mode {
	case ModeEncode:
		return []string{fmt.Sprintf("mcp_encode_type_NbtTagCompound(&%s, dest);", ref)}
	case ModeDecode:
		return []string{fmt.Sprintf("mcp_decode_type_NbtTagCompound(&%s, src);", ref)}
	case ModeLength:
		return []string{fmt.Sprintf("mcp_length_type_NbtTagCompound(&%s, %s);", ref, lenVar)}
	case ModeFree:
		return []string{fmt.Sprintf("mcp_free_type_NbtTagCompound(&%s);", ref)}
	}
	return nil
}

// --- delegated ---------------------------------------------------------

// emitDelegated calls into the runtime helper family that owns this
// type's wire format entirely; particleData additionally threads
// the foreign discriminant field its decoder needs.
func emitDelegated(n *Node, ref string, mode Mode, lenVar string) []string {
	d := n.Delegated
	postfix := "type_" + util.CamelCase(d.RuntimeName)
	switch mode {
	case ModeEncode:
		return []string{fmt.Sprintf("mcp_encode_%s(&%s, dest);", postfix, ref)}
	case ModeDecode:
		if d.RuntimeName == "particle" {
			return []string{fmt.Sprintf("mcp_decode_%s(&%s, (mcp_type_ParticleType)this->%s, src);", postfix, ref, d.IDField)}
		}
		return []string{fmt.Sprintf("mcp_decode_%s(&%s, src);", postfix, ref)}
	case ModeLength:
		return []string{fmt.Sprintf("mcp_length_%s(&%s, %s);", postfix, ref, lenVar)}
	case ModeFree:
		if !d.NeedsFree {
			return nil
		}
		return []string{fmt.Sprintf("mcp_free_%s(&%s);", postfix, ref)}
	}
	return nil
}

// --- container ---------------------------------------------------------

// emitContainer recurses into every direct field. A switch field is
// special-cased: a null switch contributes nothing, and a live switch is
// handed the container's own ref (not ref+switchName) so its branch
// fields land in the same struct scope as any ordinary sibling, matching
// how DeclFields was spliced into the declaration.
func emitContainer(t *Tree, n *Node, ref string, mode Mode, lenVar string) []string {
	var out []string
	for _, fid := range n.Container.Fields {
		f := t.Node(fid)
		if f.Kind == KindSwitch {
			if f.Switch.NullSwitch {
				continue
			}
			out = append(out, emitSwitch(t, f, ref, mode, lenVar)...)
			continue
		}
		out = append(out, Emit(t, fid, joinName(ref, f.Name), mode, lenVar)...)
	}
	return out
}

// --- bitfield ------------------------------------------------------------

func storageFor(bits int) (string, string) {
	switch bits {
	case 8:
		return "uint8_t", "u8"
	case 16:
		return "uint16_t", "u16"
	case 32:
		return "uint32_t", "u32"
	default:
		return "uint64_t", "u64"
	}
}

func bitStorageCType(bitSize int, signed bool) string {
	w := roundUpStorage(bitSize)
	switch {
	case w <= 8:
		if signed {
			return "int8_t"
		}
		return "uint8_t"
	case w <= 16:
		if signed {
			return "int16_t"
		}
		return "uint16_t"
	case w <= 32:
		if signed {
			return "int32_t"
		}
		return "uint32_t"
	default:
		if signed {
			return "int64_t"
		}
		return "uint64_t"
	}
}

// emitBitfield ORs every subfield, masked and shifted, into a
// zero-initialized storage var for encode; decode reverses the mask/shift
// and sign-extends any signed subfield whose top bit is set. The storage
// scratch var lives in its own block, like the scratch bytes of option
// and optionalNbt, so sibling bitfields in one scope never collide.
func emitBitfield(n *Node, ref string, mode Mode, lenVar string) []string {
	spec := n.Bitfield
	storageType, postfix := storageFor(spec.StorageBits)
	switch mode {
	case ModeEncode:
		body := []string{fmt.Sprintf("%s mcp_bitfield_storage = 0;", storageType)}
		for _, sub := range spec.Subfields {
			body = append(body, fmt.Sprintf("mcp_bitfield_storage |= (((%s)%s.%s) << %d) & 0x%XULL;", storageType, ref, sub.Name, sub.Shift, sub.Mask))
		}
		body = append(body, fmt.Sprintf("mcp_encode_%s(mcp_bitfield_storage, dest);", postfix))
		return blockOf(body)
	case ModeDecode:
		body := []string{
			fmt.Sprintf("%s mcp_bitfield_storage;", storageType),
			fmt.Sprintf("mcp_decode_%s(&mcp_bitfield_storage, src);", postfix),
		}
		for _, sub := range spec.Subfields {
			ct := bitStorageCType(sub.BitSize, sub.Signed)
			body = append(body, fmt.Sprintf("%s.%s = (%s)((mcp_bitfield_storage & 0x%XULL) >> %d);", ref, sub.Name, ct, sub.Mask, sub.Shift))
			if sub.Signed {
				body = append(body, fmt.Sprintf("if (%s.%s & (1ULL << %d)) { %s.%s -= (1LL << %d); }", ref, sub.Name, sub.BitSize-1, ref, sub.Name, sub.BitSize))
			}
		}
		return blockOf(body)
	case ModeLength:
		return []string{fmt.Sprintf("*%s += sizeof(%s);", lenVar, storageType)}
	case ModeFree:
		return nil
	}
	return nil
}

// blockOf wraps statements in their own brace block.
func blockOf(body []string) []string {
	out := []string{"{"}
	out = append(out, indentAll(body)...)
	return append(out, "}")
}

// --- array ---------------------------------------------------------------

// emitArray dispatches to one of the three count flavors decided at
// construction. The element's loop iterator is i<depth-1> so
// nested arrays get distinct names.
func emitArray(t *Tree, n *Node, ref string, mode Mode, lenVar string) []string {
	spec := n.Array
	iterator := fmt.Sprintf("i%d", spec.Depth-1)
	elemRef := fmt.Sprintf("%s.data[%s]", ref, iterator)
	switch spec.CountKind {
	case CountFixed:
		return emitFixedArray(t, spec.Elem, ref, elemRef, iterator, mode, lenVar)
	case CountPrefixed:
		return emitPrefixedArray(t, spec, ref, elemRef, iterator, mode, lenVar)
	default:
		return emitForeignArray(t, n, spec, ref, elemRef, iterator, mode, lenVar)
	}
}

func loopOver(bound, iterator string, body []string) []string {
	out := []string{fmt.Sprintf("for (size_t %s = 0; %s < %s; %s++) {", iterator, iterator, bound, iterator)}
	out = append(out, indentAll(body)...)
	return append(out, "}")
}

// emitFixedArray: the declared bound is always <name>.size (the literal
// count appears only as a declaration comment), and
// because fixed arrays are plain in-struct storage (never malloc'd),
// free only ever loop-frees elements, it never frees the array itself.
func emitFixedArray(t *Tree, elem NodeID, ref, elemRef, iterator string, mode Mode, lenVar string) []string {
	bound := ref + ".size"
	if mode == ModeFree && !needsFree(t, elem) {
		return nil
	}
	return loopOver(bound, iterator, Emit(t, elem, elemRef, mode, lenVar))
}

func emitPrefixedArray(t *Tree, spec *ArraySpec, ref, elemRef, iterator string, mode Mode, lenVar string) []string {
	countRef := ref + ".size"
	elemType := typeNameOf(t.Node(spec.Elem))
	switch mode {
	case ModeEncode:
		out := Emit(t, spec.CountPrefix, countRef, ModeEncode, lenVar)
		return append(out, loopOver(countRef, iterator, Emit(t, spec.Elem, elemRef, ModeEncode, lenVar))...)
	case ModeDecode:
		out := Emit(t, spec.CountPrefix, countRef, ModeDecode, lenVar)
		out = append(out, fmt.Sprintf("%s.data = malloc(%s * sizeof(%s));", ref, countRef, elemType))
		return append(out, loopOver(countRef, iterator, Emit(t, spec.Elem, elemRef, ModeDecode, lenVar))...)
	case ModeLength:
		out := Emit(t, spec.CountPrefix, countRef, ModeLength, lenVar)
		return append(out, loopOver(countRef, iterator, Emit(t, spec.Elem, elemRef, ModeLength, lenVar))...)
	case ModeFree:
		var out []string
		if needsFree(t, spec.Elem) {
			out = loopOver(countRef, iterator, Emit(t, spec.Elem, elemRef, ModeFree, lenVar))
		}
		return append(out, fmt.Sprintf("free(%s.data);", ref))
	}
	return nil
}

func emitForeignArray(t *Tree, n *Node, spec *ArraySpec, ref, elemRef, iterator string, mode Mode, lenVar string) []string {
	bound := ref + ".size"
	elemType := typeNameOf(t.Node(spec.Elem))
	switch mode {
	case ModeEncode:
		return loopOver(bound, iterator, Emit(t, spec.Elem, elemRef, ModeEncode, lenVar))
	case ModeDecode:
		foreignRef, err := ResolveForeignCount(t, n.Parent, spec.ForeignPath)
		if err != nil {
			t.errf("array %s: %v", n.Name, err)
			return []string{fmt.Sprintf("/* %v */", err)}
		}
		out := []string{
			fmt.Sprintf("%s.size = %s;", ref, foreignRef),
			fmt.Sprintf("%s.data = malloc(%s.size * sizeof(%s));", ref, ref, elemType),
		}
		return append(out, loopOver(bound, iterator, Emit(t, spec.Elem, elemRef, ModeDecode, lenVar))...)
	case ModeLength:
		return loopOver(bound, iterator, Emit(t, spec.Elem, elemRef, ModeLength, lenVar))
	case ModeFree:
		var out []string
		if needsFree(t, spec.Elem) {
			out = loopOver(bound, iterator, Emit(t, spec.Elem, elemRef, ModeFree, lenVar))
		}
		return append(out, fmt.Sprintf("free(%s.data);", ref))
	}
	return nil
}

// --- option --------------------------------------------------------------

// emitOption always (un)marshals the boolean tag; the inner emission is
// guarded by has_value in every mode, including length: an option with
// has_value=false contributes exactly 1 byte, never the inner's length.
func emitOption(t *Tree, n *Node, ref string, mode Mode, lenVar string) []string {
	inner := n.Option.Inner
	valueRef := ref + ".value"
	switch mode {
	case ModeEncode:
		out := []string{fmt.Sprintf("mcp_encode_u8((uint8_t)%s.has_value, dest);", ref)}
		if body := Emit(t, inner, valueRef, ModeEncode, lenVar); len(body) > 0 {
			out = append(out, fmt.Sprintf("if (%s.has_value) {", ref))
			out = append(out, indentAll(body)...)
			out = append(out, "}")
		}
		return out
	case ModeDecode:
		out := []string{
			"{",
			"\tuint8_t mcp_option_tag;",
			"\tmcp_decode_u8(&mcp_option_tag, src);",
			fmt.Sprintf("\t%s.has_value = mcp_option_tag != 0;", ref),
			"}",
		}
		if body := Emit(t, inner, valueRef, ModeDecode, lenVar); len(body) > 0 {
			out = append(out, fmt.Sprintf("if (%s.has_value) {", ref))
			out = append(out, indentAll(body)...)
			out = append(out, "}")
		}
		return out
	case ModeLength:
		out := []string{fmt.Sprintf("*%s += sizeof(%s.has_value);", lenVar, ref)}
		if body := Emit(t, inner, valueRef, ModeLength, lenVar); len(body) > 0 {
			out = append(out, fmt.Sprintf("if (%s.has_value) {", ref))
			out = append(out, indentAll(body)...)
			out = append(out, "}")
		}
		return out
	case ModeFree:
		if !needsFree(t, inner) {
			return nil
		}
		out := []string{fmt.Sprintf("if (%s.has_value) {", ref)}
		out = append(out, indentAll(Emit(t, inner, valueRef, ModeFree, lenVar))...)
		return append(out, "}")
	}
	return nil
}

// --- switch --------------------------------------------------------------

// emitSwitch dispatches the resolved sub-case. A null switch (absorbed
// into a lead sister at construction) emits nothing in every mode. Free
// mode additionally skips entirely if nothing among DeclFields would
// ever produce a free statement.
func emitSwitch(t *Tree, n *Node, ref string, mode Mode, lenVar string) []string {
	spec := n.Switch
	if spec.NullSwitch {
		return nil
	}
	if mode == ModeFree {
		any := false
		for _, fid := range spec.DeclFields {
			if needsFree(t, fid) {
				any = true
				break
			}
		}
		if !any {
			return nil
		}
	}

	comp, err := ResolveCompareTo(t, n.Parent, spec.CompareTo)
	if err != nil {
		t.errf("switch %s: %v", n.Name, err)
		return []string{fmt.Sprintf("/* %v */", err)}
	}

	if spec.IsInverse {
		return emitInverseSwitch(t, spec, ref, comp, mode, lenVar)
	}
	if len(spec.Keys) == 1 {
		return emitOptionalSwitch(t, spec, ref, comp, spec.Keys[0], mode, lenVar)
	}
	if spec.IsStrSwitch {
		return emitStrSwitch(t, spec, ref, comp, mode, lenVar)
	}
	return emitUnionSwitch(t, spec, ref, comp, mode, lenVar)
}

// emitCaseFields emits one branch's field list, each referenced the same
// way an ordinary sibling field of the switch's enclosing container
// would be -- ref here is already that container's own qualified name,
// not the switch's.
func emitCaseFields(t *Tree, ref string, fields []NodeID, mode Mode, lenVar string) []string {
	var out []string
	for _, fid := range fields {
		f := t.Node(fid)
		if f.Kind == KindVoid {
			continue
		}
		out = append(out, Emit(t, fid, joinName(ref, f.Name), mode, lenVar)...)
	}
	return out
}

func emitInverseSwitch(t *Tree, spec *SwitchSpec, ref, comp string, mode Mode, lenVar string) []string {
	if spec.MultiInverseNYI || len(spec.Keys) != 1 {
		return []string{"// Multi-Condition Inverse Not Yet Implemented"}
	}
	out := []string{fmt.Sprintf("if (%s != %s) {", comp, spec.Keys[0])}
	out = append(out, indentAll(emitCaseFields(t, ref, []NodeID{spec.DefaultCase}, mode, lenVar))...)
	return append(out, "}")
}

// emitOptionalSwitch collapses the single-case shape to a plain if,
// dispatching on true/false/integer equality or strcmp depending on the
// (possibly quoted) case key.
func emitOptionalSwitch(t *Tree, spec *SwitchSpec, ref, comp, caseKey string, mode Mode, lenVar string) []string {
	var cond string
	switch caseKey {
	case "true":
		cond = comp
	case "false":
		cond = "!" + comp
	default:
		if strings.HasPrefix(caseKey, `"`) {
			cond = fmt.Sprintf("!strcmp(%s, %s)", comp, caseKey)
		} else {
			cond = fmt.Sprintf("%s == %s", comp, caseKey)
		}
	}
	out := []string{fmt.Sprintf("if (%s) {", cond)}
	out = append(out, indentAll(emitCaseFields(t, ref, spec.Fields[caseKey], mode, lenVar))...)
	return append(out, "}")
}

func emitStrSwitch(t *Tree, spec *SwitchSpec, ref, comp string, mode Mode, lenVar string) []string {
	var out []string
	for i, key := range spec.Keys {
		if i == 0 {
			out = append(out, fmt.Sprintf("if (!strcmp(%s, %s)) {", comp, key))
		} else {
			out = append(out, fmt.Sprintf("} else if (!strcmp(%s, %s)) {", comp, key))
		}
		out = append(out, indentAll(emitCaseFields(t, ref, spec.Fields[key], mode, lenVar))...)
	}
	return append(out, "}")
}

func emitUnionSwitch(t *Tree, spec *SwitchSpec, ref, comp string, mode Mode, lenVar string) []string {
	out := []string{fmt.Sprintf("switch (%s) {", comp)}
	for _, key := range spec.Keys {
		out = append(out, fmt.Sprintf("\tcase %s:", key))
		body := emitCaseFields(t, ref, spec.Fields[key], mode, lenVar)
		out = append(out, indentAll(body)...)
		out = append(out, "\t\tbreak;")
	}
	return append(out, "}")
}

// --- declaration -----------------------------------------------------------

// declareBody produces a complex type's typedef body, consumed by
// registerTypedef (container.go, bitfield.go) before the interner
// assigns it a final (possibly suffixed) name.
func declareBody(t *Tree, id NodeID) []string {
	n := t.Node(id)
	switch n.Kind {
	case KindContainer:
		return declareContainerBody(t, n)
	case KindBitfield:
		return declareBitfieldBody(n)
	}
	return nil
}

func declareContainerBody(t *Tree, n *Node) []string {
	canonical := "mcp_type_" + capitalize(n.Name)
	out := []string{fmt.Sprintf("typedef struct %s {", canonical)}
	for _, fid := range n.Container.Fields {
		f := t.Node(fid)
		if f.Kind == KindSwitch {
			if f.Switch.NullSwitch {
				continue
			}
			for _, d := range f.Switch.DeclFields {
				out = append(out, "\t"+declareMember(t, d))
			}
			continue
		}
		out = append(out, "\t"+declareMember(t, fid))
	}
	return append(out, "} "+canonical+";")
}

func declareMember(t *Tree, id NodeID) string {
	n := t.Node(id)
	if n.Kind == KindVoid {
		return fmt.Sprintf("/* '%s' is a void type */", n.Name)
	}
	// A fixed-count array's literal bound lives only in this comment; the
	// loop bound stays <name>.size, which the caller keeps consistent.
	if n.Kind == KindArray && n.Array.CountKind == CountFixed {
		return fmt.Sprintf("%s %s /* %d length */;", typeNameOf(n), n.Name, n.Array.FixedCount)
	}
	return fmt.Sprintf("%s %s;", typeNameOf(n), n.Name)
}

func declareBitfieldBody(n *Node) []string {
	canonical := "mcp_type_" + capitalize(n.Name)
	out := []string{fmt.Sprintf("typedef struct %s {", canonical)}
	for _, sub := range n.Bitfield.Subfields {
		out = append(out, fmt.Sprintf("\t%s %s;", bitStorageCType(sub.BitSize, sub.Signed), sub.Name))
	}
	return append(out, "} "+canonical+";")
}
