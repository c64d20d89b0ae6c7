package mcgen

import "strings"

// typeNameOf returns the C type name used to declare a variable of n's
// type -- as distinct from n.Name, which is the variable/field name. This
// is what composite-simple wrappers (option<T>, array<T>) and bitfield
// subfield storage all key off of.
func typeNameOf(n *Node) string {
	switch n.Kind {
	case KindNumeric:
		return n.Numeric.StorageType
	case KindString:
		return "mcp_string_t"
	case KindBuffer, KindRestBuffer:
		return "mcp_buffer_t"
	case KindNBT:
		return "mcp_nbt_t"
	case KindDelegated:
		return "mcp_" + n.Delegated.RuntimeName + "_t"
	case KindVoid:
		return "void"
	case KindContainer:
		return n.Container.TypeName
	case KindBitfield:
		return n.Bitfield.TypeName
	case KindOption:
		return n.Option.WrapperType
	case KindArray:
		return n.Array.WrapperType
	default:
		return "void"
	}
}

// sanitizeTypeName turns a C type name into an identifier fragment
// suitable for splicing into a synthesized wrapper typedef name: a trailing
// "_t" is stripped, any "*" is spelled "ptr", and the first letter is
// capitalized ("uint8_t" becomes "Uint8").
func sanitizeTypeName(t string) string {
	t = strings.TrimSuffix(t, "_t")
	t = strings.ReplaceAll(t, "*", "ptr")
	return capitalize(t)
}
