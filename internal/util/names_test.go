package util

import "testing"

func TestCamelCase(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"handshake", "Handshake"},
		{"set_compression", "SetCompression"},
		{"legacy-server-list-ping", "LegacyServerListPing"},
		{"x", "X"},
	}
	for _, tt := range tests {
		if got := CamelCase(tt.name); got != tt.want {
			t.Errorf("CamelCase(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestMakeNameUnique(t *testing.T) {
	defined := map[string]bool{}
	first := MakeNameUnique("mcp_type_Foo", defined)
	if first != "mcp_type_Foo" {
		t.Fatalf("first call = %q, want unsuffixed", first)
	}
	second := MakeNameUnique("mcp_type_Foo", defined)
	if second != "mcp_type_Foo1" {
		t.Fatalf("second call = %q, want suffix 1", second)
	}
	third := MakeNameUnique("mcp_type_Foo", defined)
	if third != "mcp_type_Foo2" {
		t.Fatalf("third call = %q, want suffix 2", third)
	}
	if !defined["mcp_type_Foo"] || !defined["mcp_type_Foo1"] || !defined["mcp_type_Foo2"] {
		t.Fatalf("all three names should be recorded as defined: %v", defined)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := map[string]string{
		`"minecraft:stick"`: "minecraft_stick",
		`"foo"`:             "foo",
		`0`:                 "0",
	}
	for in, want := range tests {
		if got := SanitizeKey(in); got != want {
			t.Errorf("SanitizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}
