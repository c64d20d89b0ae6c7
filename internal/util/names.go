package util

import (
	"fmt"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
)

// CamelCase turns a Protodef field or packet name (snake_case or
// kebab-case, as the upstream catalog spells them) into the CamelCase form
// used for display names and struct field identifiers.
func CamelCase(name string) string {
	return yang.CamelCase(strings.ReplaceAll(name, "-", "_"))
}

// MakeNameUnique returns name, or name with a numeric suffix appended, such
// that the result is not already present in definedNames. The chosen name
// is recorded in definedNames before it is returned. Suffix assignment is
// deterministic (caller-order dependent, starting at 1), matching the
// interner collision strategy.
func MakeNameUnique(name string, definedNames map[string]bool) string {
	if !definedNames[name] {
		definedNames[name] = true
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%d", name, i)
		if !definedNames[candidate] {
			definedNames[candidate] = true
			return candidate
		}
	}
}

// SanitizeKey turns a string-switch branch key into a C identifier
// fragment: surrounding quotes are stripped and colons become underscores.
func SanitizeKey(key string) string {
	key = strings.Trim(key, `"`)
	return strings.ReplaceAll(key, ":", "_")
}
