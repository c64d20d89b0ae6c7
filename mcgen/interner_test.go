package mcgen

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

func TestInternerDeduplicatesIdenticalBody(t *testing.T) {
	in := NewInterner()
	body := []string{"typedef struct mcp_type_Foo {", "\tuint8_t x;", "} mcp_type_Foo;"}
	first := in.Intern("mcp_type_Foo", body)
	second := in.Intern("mcp_type_Foo", append([]string{}, body...))
	if first != "mcp_type_Foo" || second != "mcp_type_Foo" {
		t.Fatalf("identical bodies should reuse the same name, got %q then %q", first, second)
	}
	if len(in.OrderedNames()) != 1 {
		t.Fatalf("expected exactly one interned name, got %v", in.OrderedNames())
	}
}

func TestInternerSuffixesOnShapeCollision(t *testing.T) {
	in := NewInterner()
	bodyA := []string{"typedef struct mcp_type_Foo {", "\tuint8_t x;", "} mcp_type_Foo;"}
	bodyB := []string{"typedef struct mcp_type_Foo {", "\tuint16_t x;", "} mcp_type_Foo;"}

	first := in.Intern("mcp_type_Foo", bodyA)
	second := in.Intern("mcp_type_Foo", bodyB)
	third := in.Intern("mcp_type_Foo", bodyB)

	if first != "mcp_type_Foo" {
		t.Errorf("first registration = %q, want unsuffixed name", first)
	}
	if second != "mcp_type_Foo1" {
		t.Errorf("second registration (different shape) = %q, want mcp_type_Foo1", second)
	}
	if third != "mcp_type_Foo1" {
		t.Errorf("re-registering the same differing body should reuse its suffix, got %q", third)
	}

	// The suffixed entry's stored body must declare the suffixed name, not
	// the colliding canonical one.
	stored := in.Body("mcp_type_Foo1")
	if len(stored) == 0 || stored[0] != "typedef struct mcp_type_Foo1 {" {
		t.Errorf("suffixed typedef body should be retitled, got %v", stored)
	}
	if stored[len(stored)-1] != "} mcp_type_Foo1;" {
		t.Errorf("suffixed typedef closing line should be retitled, got %q", stored[len(stored)-1])
	}
}

func TestInternerOrderIsDeterministic(t *testing.T) {
	in := NewInterner()
	in.Intern("mcp_type_B", []string{"b"})
	in.Intern("mcp_type_A", []string{"a"})
	in.Intern("mcp_type_B", []string{"b"}) // re-registration shouldn't reorder.

	got := in.OrderedNames()
	want := []string{"mcp_type_B", "mcp_type_A"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("OrderedNames = %v, want %v (first-registration order)", got, want)
	}
}

// TestInternerOrderedNamesDeterministicAcrossRuns builds the same
// sequence of typedefs twice and unified-diffs the two renders,
// expecting an empty diff: for a fixed schema the emitted typedef
// stream must be byte-identical across runs.
func TestInternerOrderedNamesDeterministicAcrossRuns(t *testing.T) {
	build := func() []string {
		in := NewInterner()
		in.Intern("mcp_type_Handshake", []string{"typedef struct mcp_type_Handshake {", "\tint32_t protocol_version;", "} mcp_type_Handshake;"})
		in.Intern("mcp_type_Status", []string{"typedef struct mcp_type_Status {", "\tchar* json;", "} mcp_type_Status;"})
		in.Intern("mcp_type_Handshake", []string{"typedef struct mcp_type_Handshake {", "\tint32_t protocol_version;", "} mcp_type_Handshake;"})
		var out []string
		for _, name := range in.OrderedNames() {
			out = append(out, in.Body(name)...)
		}
		return out
	}

	first := build()
	second := build()

	diff := difflib.UnifiedDiff{
		A:        first,
		B:        second,
		FromFile: "run1",
		ToFile:   "run2",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		t.Fatalf("GetUnifiedDiffString: %v", err)
	}
	if text != "" {
		t.Errorf("interner output must be deterministic across runs, got diff:\n%s", text)
	}
}

func TestInternerPredeclaredRoster(t *testing.T) {
	in := NewInterner()
	for _, name := range predeclaredWrappers {
		if !in.predeclared[name] {
			t.Errorf("expected %q pre-seeded into the predeclared roster", name)
		}
	}
	// Interning a runtime-provided wrapper is a no-op: the name comes back
	// unchanged, no body is stored, and the preamble never re-emits it.
	got := in.Intern("mcp_vector_Int32", []string{"typedef struct mcp_vector_Int32 {", "} mcp_vector_Int32;"})
	if got != "mcp_vector_Int32" {
		t.Errorf("Intern of a predeclared wrapper = %q, want the name unchanged", got)
	}
	if len(in.OrderedNames()) != 0 {
		t.Errorf("predeclared wrappers must not enter the emitted typedef order, got %v", in.OrderedNames())
	}
	if in.Body("mcp_vector_Int32") != nil {
		t.Error("predeclared wrappers must not store a generated body")
	}
}
