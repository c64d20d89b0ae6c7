package mcgen

import (
	"strings"
	"testing"
)

// TestBitfieldSingleSignedFieldSignExtends reproduces the
// boundary scenario: a bitfield with a single signed 4-bit field must
// decode 0b1000 as -8. The node carries enough to compute that: mask
// 0xF, shift 0; emit.go's decode body subtracts 1<<4 whenever the stored
// bit pattern's sign bit (bit 3) is set, which is exactly the
// two's-complement correction 0b1000 (8) - 16 = -8.
func TestBitfieldSingleSignedFieldSignExtends(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	data := map[string]interface{}{
		"fields": []interface{}{
			map[string]interface{}{"name": "value", "size": float64(4), "signed": true},
		},
	}
	id2, err2 := newBitfieldNode(tr, "flags", root, data, false)
	if err2 != nil {
		t.Fatal(err2)
	}
	spec := tr.Node(id2).Bitfield
	if spec.StorageBits != 8 {
		t.Errorf("StorageBits = %d, want 8 (rounded up from 4)", spec.StorageBits)
	}
	if len(spec.Subfields) != 1 {
		t.Fatalf("expected 1 subfield, got %d", len(spec.Subfields))
	}
	sub := spec.Subfields[0]
	if sub.BitSize != 4 || !sub.Signed || sub.Shift != 0 || sub.Mask != 0xF {
		t.Fatalf("got %+v, want BitSize=4 Signed=true Shift=0 Mask=0xF", sub)
	}

	body := emitBitfield(tr.Node(id2), "this->flags", ModeDecode, "")
	joined := strings.Join(body, "\n")
	if !strings.Contains(joined, "-= (1LL << 4)") {
		t.Errorf("decode body should sign-extend by subtracting 1<<bitsize, got:\n%s", joined)
	}
	// The storage scratch var lives in its own block, so two bitfields
	// emitted in the same scope never redeclare it.
	if body[0] != "{" || body[len(body)-1] != "}" {
		t.Errorf("bitfield body should be brace-wrapped, got:\n%s", joined)
	}
	enc := emitBitfield(tr.Node(id2), "this->flags", ModeEncode, "")
	if enc[0] != "{" || enc[len(enc)-1] != "}" {
		t.Errorf("bitfield encode body should be brace-wrapped, got:\n%s", strings.Join(enc, "\n"))
	}
}

func TestBitfieldUnusedFieldsConsumeWidthOnly(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	data := map[string]interface{}{
		"fields": []interface{}{
			map[string]interface{}{"name": "_unused", "size": float64(4), "signed": false},
			map[string]interface{}{"name": "value", "size": float64(4), "signed": false},
		},
	}
	id, err := newBitfieldNode(tr, "flags", root, data, false)
	if err != nil {
		t.Fatal(err)
	}
	spec := tr.Node(id).Bitfield
	if len(spec.Subfields) != 1 {
		t.Fatalf("expected _unused to consume no storage slot, got %d subfields", len(spec.Subfields))
	}
	if spec.Subfields[0].Name != "value" || spec.Subfields[0].Shift != 0 {
		t.Errorf("value should occupy the low 4 bits (shift 0) since _unused is the MSB nibble, got %+v", spec.Subfields[0])
	}
	if spec.StorageBits != 8 {
		t.Errorf("StorageBits = %d, want 8", spec.StorageBits)
	}
}

func TestBitfieldRealUnusedFlagFieldNotSwallowed(t *testing.T) {
	tr := newTestTree()
	root := tr.NewPacketRoot()
	data := map[string]interface{}{
		"fields": []interface{}{
			map[string]interface{}{"name": "unused_flag", "size": float64(1), "signed": false},
		},
	}
	id, err := newBitfieldNode(tr, "flags", root, data, false)
	if err != nil {
		t.Fatal(err)
	}
	spec := tr.Node(id).Bitfield
	if len(spec.Subfields) != 1 || spec.Subfields[0].Name != "unused_flag" {
		t.Errorf("a field literally named 'unused_flag' must keep its storage slot, got %+v", spec.Subfields)
	}
}

func TestRoundUpStorage(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{1, 8}, {8, 8}, {9, 16}, {16, 16}, {17, 32}, {32, 32}, {33, 64}, {64, 64}, {65, 64},
	}
	for _, tt := range tests {
		if got := roundUpStorage(tt.total); got != tt.want {
			t.Errorf("roundUpStorage(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
