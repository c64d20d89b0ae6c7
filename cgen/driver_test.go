package cgen

import (
	"strings"
	"testing"

	"mcpgen/protodef"
)

func tinyProtocol() *protodef.Protocol {
	p := &protodef.Protocol{
		Version:  "1.16.5",
		VersionN: 754,
		Packets:  make(map[protodef.State]map[protodef.Source][]protodef.PacketDef),
	}
	for _, state := range protodef.States {
		p.Packets[state] = make(map[protodef.Source][]protodef.PacketDef)
	}
	p.Packets[protodef.Handshaking][protodef.Client] = []protodef.PacketDef{
		{
			IDNumber: 0,
			Name:     "set_protocol",
			Fields: []protodef.Field{
				{Name: "protocol_version", Type: protodef.RawType{Tag: "varint"}},
				{Name: "server_host", Type: protodef.RawType{Tag: "string"}},
				{Name: "server_port", Type: protodef.RawType{Tag: "u16"}},
				{Name: "next_state", Type: protodef.RawType{Tag: "varint"}},
			},
		},
	}
	p.Packets[protodef.Status][protodef.Client] = []protodef.PacketDef{
		{IDNumber: 0xFE, Name: "legacy_server_list_ping"},
	}
	p.Packets[protodef.Login][protodef.Server] = []protodef.PacketDef{
		{
			IDNumber: 3,
			Name:     "compress",
			Fields: []protodef.Field{
				{Name: "threshold", Type: protodef.RawType{Tag: "varint"}},
			},
		},
	}
	return p
}

func TestNewDriverBuildsEveryPacket(t *testing.T) {
	d, err := NewDriver(tinyProtocol())
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	if len(d.allPackets()) != 3 {
		t.Fatalf("expected 3 packets across all state/source pairs, got %d", len(d.allPackets()))
	}
	reg := d.registeredPackets(protodef.Status, protodef.Client)
	if len(reg) != 0 {
		t.Errorf("legacy_server_list_ping must not appear in the registered set, got %d entries", len(reg))
	}
}

func TestProtocolHeaderContainsPacketIDEnumAndDeclarations(t *testing.T) {
	d, err := NewDriver(tinyProtocol())
	if err != nil {
		t.Fatal(err)
	}
	header := strings.Join(d.ProtocolHeader(), "\n")

	for _, want := range []string{
		"MCP_CL_HS_SET_PROTOCOL = 0,",
		"__MCP_CL_HS_MAX = 1,",
		"typedef struct mcp_packet_CL_HS_SetProtocol {",
		"void mcp_encode_packet_CL_HS_SetProtocol(mcp_packet_CL_HS_SetProtocol* this, mcp_writer_t* dest);",
		"static inline void mcp_length_packet_CL_HS_SetProtocol(mcp_packet_CL_HS_SetProtocol* this, size_t* out_size) {",
		"mcp_packet_CL_ST_LegacyServerListPing", // struct still declared...
	} {
		if !strings.Contains(header, want) {
			t.Errorf("protocol.h missing expected fragment %q", want)
		}
	}
	if strings.Contains(header, "MCP_CL_ST_LEGACY_SERVER_LIST_PING") {
		t.Error("legacy_server_list_ping must not appear in any id enum")
	}
}

func TestProtocolImplFillsHandlerTableToExactMax(t *testing.T) {
	d, err := NewDriver(tinyProtocol())
	if err != nil {
		t.Fatal(err)
	}
	impl := strings.Join(d.ProtocolImpl(), "\n")
	if !strings.Contains(impl, "void mcp_encode_packet_CL_HS_SetProtocol(mcp_packet_CL_HS_SetProtocol* this, mcp_writer_t* dest) {") {
		t.Error("expected set_protocol's encode function body in protocol.c")
	}
	// One blank-handler entry per registered packet: a table with a single
	// packet must carry exactly one initialized slot, never one fewer.
	if strings.Count(impl, "\tmcp_blank_handler,") != 2 {
		t.Errorf("expected exactly 2 blank-handler slots (1 per registered packet), got %d", strings.Count(impl, "\tmcp_blank_handler,"))
	}
	// The cross-indexed registries are plain file-scope initializers.
	for _, want := range []string{
		"const char** protocol_cstrings[4][2] = {",
		"mcp_packet_handler_t* protocol_handlers[4][2] = {",
		"const size_t protocol_max_ids[4][2] = {",
	} {
		if !strings.Contains(impl, want) {
			t.Errorf("protocol.c missing registry definition %q", want)
		}
	}
}

func TestParticleHeaderEmitsCompatAliases(t *testing.T) {
	d, err := NewDriver(tinyProtocol())
	if err != nil {
		t.Fatal(err)
	}
	header := strings.Join(d.ParticleHeader(), "\n")
	if !strings.Contains(header, "MCP_PARTICLE_") {
		t.Error("expected at least one particle enum constant")
	}
	if !strings.Contains(header, "#define") {
		t.Error("expected compatibility #define aliases")
	}
}
