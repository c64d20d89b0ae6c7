package protodef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeCatalog(t *testing.T, dir, version, body string) {
	t.Helper()
	versionDir := filepath.Join(dir, version)
	if err := os.MkdirAll(versionDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(versionDir, "protocol.json"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadVersionBasicShape(t *testing.T) {
	dir := t.TempDir()
	doc := `{
  "version": "1.16.5",
  "versionN": 754,
  "protocol": {
    "handshaking": {
      "toServer": [
        {"id": 0, "name": "set_protocol", "fields": [
          {"name": "protocol_version", "type": "varint"},
          {"name": "server_host", "type": "string"},
          {"name": "server_port", "type": "u16"},
          {"name": "next_state", "type": "varint"}
        ]}
      ],
      "toClient": []
    }
  }
}`
	writeCatalog(t, dir, "1.16.5", doc)

	proto, err := LoadVersion(dir, "1.16.5")
	if err != nil {
		t.Fatalf("LoadVersion: %v", err)
	}
	if proto.VersionN != 754 {
		t.Errorf("VersionN = %d, want 754", proto.VersionN)
	}
	cl := proto.PacketsFor(Handshaking, Client)
	if len(cl) != 1 {
		t.Fatalf("expected 1 client-sourced handshaking packet, got %d", len(cl))
	}
	p := cl[0]
	if p.Name != "set_protocol" || p.IDNumber != 0 {
		t.Errorf("unexpected packet: %+v", p)
	}
	wantTags := []string{"varint", "string", "u16", "varint"}
	if len(p.Fields) != len(wantTags) {
		t.Fatalf("expected %d fields, got %d", len(wantTags), len(p.Fields))
	}
	for i, f := range p.Fields {
		if f.Type.Tag != wantTags[i] {
			t.Errorf("field %d tag = %q, want %q", i, f.Type.Tag, wantTags[i])
		}
	}

	sv := proto.PacketsFor(Handshaking, Server)
	if len(sv) != 0 {
		t.Errorf("expected no server-sourced handshaking packets, got %d", len(sv))
	}
}

func TestRawTypeUnmarshalBareTag(t *testing.T) {
	var rt RawType
	if err := rt.UnmarshalJSON([]byte(`"varint"`)); err != nil {
		t.Fatal(err)
	}
	if rt.Tag != "varint" || rt.Data != nil {
		t.Errorf("got %+v, want bare varint tag with nil data", rt)
	}
}

func TestRawTypeUnmarshalTagDataPair(t *testing.T) {
	var rt RawType
	if err := rt.UnmarshalJSON([]byte(`["buffer", {"countType": "varint"}]`)); err != nil {
		t.Fatal(err)
	}
	if rt.Tag != "buffer" {
		t.Errorf("Tag = %q, want buffer", rt.Tag)
	}
	if rt.Data["countType"] != "varint" {
		t.Errorf("Data = %+v, want countType=varint", rt.Data)
	}
}

func TestRawTypeUnmarshalSwitchPreservesFieldOrder(t *testing.T) {
	var rt RawType
	raw := `["switch", {"compareTo": "blockId", "fields": {"2": "i32", "1": "varint", "minecraft:stick": "string"}}]`
	if err := rt.UnmarshalJSON([]byte(raw)); err != nil {
		t.Fatal(err)
	}
	entries, ok := rt.Data["fields"].([]SwitchFieldEntry)
	if !ok {
		t.Fatalf("fields has unexpected type %T", rt.Data["fields"])
	}
	want := []SwitchFieldEntry{
		{Key: "2", Type: RawType{Tag: "i32"}},
		{Key: "1", Type: RawType{Tag: "varint"}},
		{Key: "minecraft:stick", Type: RawType{Tag: "string"}},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("switch fields order mismatch (-want +got):\n%s", diff)
	}
}

func TestRawTypeUnmarshalRejectsMalformed(t *testing.T) {
	var rt RawType
	if err := rt.UnmarshalJSON([]byte(`{"not": "valid"}`)); err == nil {
		t.Error("expected an error for a bare-object type expression")
	}
	if err := rt.UnmarshalJSON([]byte(`["tag_only"]`)); err == nil {
		t.Error("expected an error for a 1-element type expression array")
	}
}

func TestLoadVersionMissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadVersion(dir, "9.9.9"); err == nil {
		t.Error("expected an error for a missing catalog file")
	}
}
