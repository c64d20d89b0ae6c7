package mcgen

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// typedef is one entry of the interner: the declaration lines registered
// under a canonical name.
type typedef struct {
	name string
	body []string
}

// Interner is the type-definition interner: a mapping from
// canonical type name to declaration body, deduplicating identical
// redefinitions and assigning a deterministic numeric suffix on shape
// collision. It is process-lifetime: shared by every packet built in one
// generator run, and only ever grows.
type Interner struct {
	byName map[string]*typedef
	// order preserves first-registration order, which is what makes the
	// interner's emitted name sequence deterministic across runs for a
	// fixed schema version (no hash-map iteration ever reaches the
	// caller).
	order []string
	// predeclared is the fixed roster of runtime-provided vector/optional
	// wrapper names. They never get a generated body: the runtime header
	// declares them ahead of the preamble, so Intern returns them as-is.
	predeclared map[string]bool
}

// NewInterner creates an empty Interner pre-seeded with the runtime's
// fixed vector/optional wrapper roster.
func NewInterner() *Interner {
	in := &Interner{
		byName:      make(map[string]*typedef),
		predeclared: make(map[string]bool),
	}
	for _, prim := range predeclaredWrappers {
		in.predeclared[prim] = true
	}
	return in
}

// predeclaredWrappers is the fixed roster of vector/optional wrapper
// typedefs the runtime library itself provides. Interning one of these
// names is a no-op returning the name unchanged: the wrapper already
// exists on the runtime side, so the preamble must not re-emit it, and
// its body must never participate in the suffix-collision dance.
var predeclaredWrappers = []string{
	"mcp_vector_Uint8",
	"mcp_vector_Int32",
	"mcp_vector_Mcp_slot",
	"mcp_optional_Mcp_string",
	"mcp_optional_Mcp_nbt",
	"mcp_optional_Int32",
	"mcp_optional_Mcp_uuid",
	"mcp_optional_Mcp_position",
}

// Intern registers body under canonical, applying the interner collision
// strategy: if canonical is unused, it is registered as-is; if it is
// already registered with an identical body (per deep structural
// equality, via cmp.Diff), the existing name is reused; otherwise a
// numeric suffix is appended, starting at 1, retried until a free or
// matching slot is found. It returns the name actually used.
func (in *Interner) Intern(canonical string, body []string) string {
	if in.predeclared[canonical] {
		return canonical
	}
	for i := 0; ; i++ {
		name := canonical
		if i > 0 {
			name = fmt.Sprintf("%s%d", canonical, i)
		}
		candidate := retitle(body, canonical, name)
		existing, ok := in.byName[name]
		if !ok {
			td := &typedef{name: name, body: candidate}
			in.byName[name] = td
			in.order = append(in.order, name)
			return name
		}
		if cmp.Diff(existing.body, candidate) == "" {
			return name
		}
		// Different shape under the same name: retry with the next
		// numeric suffix (deterministic, caller-order dependent).
	}
}

// retitle rewrites a typedef body's own name from old to new in its
// opening and closing lines, so a suffix-renamed typedef declares the
// suffixed name rather than the colliding canonical one. Only the first
// and last lines are touched: member lines may legitimately reference
// other typedefs whose names share the canonical as a prefix.
func retitle(body []string, old, new string) []string {
	if old == new || len(body) == 0 {
		return body
	}
	out := make([]string, len(body))
	copy(out, body)
	out[0] = strings.ReplaceAll(out[0], old, new)
	out[len(out)-1] = strings.ReplaceAll(out[len(out)-1], old, new)
	return out
}

// OrderedNames returns every interned typedef name in first-registration
// order, which is the order the preamble must emit them in to satisfy
// forward-reference requirements (a typedef referencing another must
// follow it).
func (in *Interner) OrderedNames() []string {
	out := make([]string, len(in.order))
	copy(out, in.order)
	return out
}

// Body returns the declaration lines registered under name.
func (in *Interner) Body(name string) []string {
	td, ok := in.byName[name]
	if !ok {
		return nil
	}
	return td.body
}
