// Copyright 2024 The mcpgen authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mcgen

import (
	"fmt"
	"strings"

	"mcpgen/internal/util"
	"mcpgen/protodef"
)

// stateAbbrev and sourceAbbrev give the two-letter state/source tags used
// in packet-id symbols and struct names.
var stateAbbrev = map[protodef.State]string{
	protodef.Handshaking: "HS",
	protodef.Status:      "ST",
	protodef.Login:       "LG",
	protodef.Play:        "PL",
}

var sourceAbbrev = map[protodef.Source]string{
	protodef.Client: "CL",
	protodef.Server: "SV",
}

// legacyServerListPing is the one packet name excluded from the id
// enumeration and handler tables even though its struct is still
// declared.
const legacyServerListPing = "legacy_server_list_ping"

// Packet is the root of one schema tree: a single protocol message bound
// to a (state, source) pair, carrying everything the packet emitter
// needs to produce its five operations plus declaration.
type Packet struct {
	State    protodef.State
	Source   protodef.Source
	IDNumber int

	// RawName is the schema's own (snake/kebab-case) packet name.
	RawName string
	// DisplayName is the CamelCase form used in struct/function names.
	DisplayName string
	// StructName is the synthesized packet struct type name, unique across
	// every (state, source) pair since it is prefixed with both.
	StructName string
	// Postfix is the function-name fragment shared by this packet's five
	// operations (mcp_encode_<Postfix>, ...). Like StructName it carries
	// the source/state tags, so a packet name reused across states (e.g.
	// "ping" in both status and play) never collides at link time.
	Postfix string
	// Symbol is the packet-id enumeration constant.
	Symbol string
	// Registered is false only for legacyServerListPing: its struct is
	// still declared, but it is absent from the id enum and handler
	// tables.
	Registered bool

	Root NodeID
}

// BuildPacket constructs one packet's schema tree from its raw definition.
func BuildPacket(t *Tree, state protodef.State, source protodef.Source, def protodef.PacketDef) *Packet {
	root := t.NewPacketRoot()
	t.BuildFields(root, def.Fields)

	display := util.CamelCase(def.Name)
	p := &Packet{
		State:       state,
		Source:      source,
		IDNumber:    def.IDNumber,
		RawName:     def.Name,
		DisplayName: display,
		StructName:  fmt.Sprintf("mcp_packet_%s_%s_%s", sourceAbbrev[source], stateAbbrev[state], display),
		Postfix:     fmt.Sprintf("packet_%s_%s_%s", sourceAbbrev[source], stateAbbrev[state], display),
		Symbol:      fmt.Sprintf("MCP_%s_%s_%s", sourceAbbrev[source], stateAbbrev[state], snakeUpper(def.Name)),
		Registered:  def.Name != legacyServerListPing,
		Root:        root,
	}
	return p
}

// snakeUpper turns a schema packet name (snake_case or kebab-case) into
// the SCREAMING_SNAKE_CASE fragment used in its id symbol.
func snakeUpper(name string) string {
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ToUpper(name)
}

// varintSize returns the number of bytes the standard LEB128-style
// Protodef varint encoding needs for a non-negative value, computed at
// generation time using the same width table the runtime varint codec
// uses at encode time (7 payload bits per byte).
func varintSize(v int) int {
	if v < 0 {
		v = 0
	}
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// fields returns the packet's direct field nodes.
func (p *Packet) fields(t *Tree) []NodeID {
	return t.Node(p.Root).Container.Fields
}

// DeclarationLines produces the struct declaration, the prototypes for
// init/free/create/encode/decode, and the static inline length function.
func (p *Packet) DeclarationLines(t *Tree) []string {
	var out []string
	out = append(out, fmt.Sprintf("typedef struct %s {", p.StructName))
	for _, fid := range p.fields(t) {
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
	out = append(out, "} "+p.StructName+";")
	out = append(out, "")
	out = append(out, fmt.Sprintf("void mcp_init_%s(%s* this);", p.Postfix, p.StructName))
	out = append(out, fmt.Sprintf("void mcp_free_%s(%s* this);", p.Postfix, p.StructName))
	out = append(out, fmt.Sprintf("void mcp_create_%s(%s* this%s);", p.Postfix, p.StructName, p.CreateParams(t)))
	out = append(out, fmt.Sprintf("void mcp_encode_%s(%s* this, mcp_writer_t* dest);", p.Postfix, p.StructName))
	out = append(out, fmt.Sprintf("void mcp_decode_%s(%s* this, mcp_reader_t* src);", p.Postfix, p.StructName))
	out = append(out, fmt.Sprintf("static inline void mcp_length_%s(%s* this, size_t* out_size) {", p.Postfix, p.StructName))
	for _, l := range p.LengthBody(t) {
		out = append(out, "\t"+l)
	}
	out = append(out, "}")
	out = append(out, "")
	return out
}

// declFieldIDs returns every direct storage-bearing field of the packet,
// with a switch's DeclFields spliced in in place of the switch itself --
// the same flattening declareContainerBody/DeclarationLines apply, shared
// here so create's parameter list and body agree with the struct layout.
func (p *Packet) declFieldIDs(t *Tree) []NodeID {
	var out []NodeID
	for _, fid := range p.fields(t) {
		f := t.Node(fid)
		if f.Kind == KindSwitch {
			if f.Switch.NullSwitch {
				continue
			}
			for _, d := range f.Switch.DeclFields {
				if t.Node(d).Kind != KindVoid {
					out = append(out, d)
				}
			}
			continue
		}
		if f.Kind == KindVoid {
			continue
		}
		out = append(out, fid)
	}
	return out
}

// CreateParams renders the create prototype's
// parameter list: one parameter per struct member, named and
// typed exactly as the member itself.
func (p *Packet) CreateParams(t *Tree) string {
	var b strings.Builder
	for _, fid := range p.declFieldIDs(t) {
		n := t.Node(fid)
		b.WriteString(fmt.Sprintf(", %s %s", typeNameOf(n), n.Name))
	}
	return b.String()
}

// CreateBody assigns each parameter into its matching struct member.
func (p *Packet) CreateBody(t *Tree) []string {
	var out []string
	for _, fid := range p.declFieldIDs(t) {
		n := t.Node(fid)
		out = append(out, fmt.Sprintf("this->%s = %s;", n.Name, n.Name))
	}
	return out
}

// LengthBody seeds out_size with the packet-id varint's byte width,
// precomputed at generation time from the standard varint width table,
// and then grows it by every field's length contribution.
func (p *Packet) LengthBody(t *Tree) []string {
	out := []string{fmt.Sprintf("*out_size = %d;", varintSize(p.IDNumber))}
	for _, fid := range p.fields(t) {
		out = append(out, p.emitField(t, fid, ModeLength, "out_size")...)
	}
	return out
}

// emitField emits one top-level field at packet scope. A switch is handed
// the bare packet-pointer prefix rather than its own joined name: its
// branch fields are spliced directly into the packet struct, so they
// resolve as this-><branch_field>, exactly as emitContainer does for a
// switch nested in a named container.
func (p *Packet) emitField(t *Tree, fid NodeID, mode Mode, lenVar string) []string {
	f := t.Node(fid)
	if f.Kind == KindSwitch {
		if f.Switch.NullSwitch {
			return nil
		}
		return Emit(t, fid, "this->", mode, lenVar)
	}
	return Emit(t, fid, joinName("this->", f.Name), mode, lenVar)
}

// EncodeBody computes the packet length, writes the packet-id varint,
// then emits every field's encoder in schema order.
func (p *Packet) EncodeBody(t *Tree) []string {
	out := []string{
		"size_t mcp_packet_len = 0;",
		fmt.Sprintf("mcp_length_%s(this, &mcp_packet_len);", p.Postfix),
		"mcp_writer_reserve(dest, mcp_packet_len);",
		fmt.Sprintf("mcp_encode_varint(%d, dest);", p.IDNumber),
	}
	for _, fid := range p.fields(t) {
		out = append(out, p.emitField(t, fid, ModeEncode, "")...)
	}
	return out
}

// DecodeBody mirrors EncodeBody: the packet id itself has already been
// consumed by the caller's dispatch, so decode starts at the first field.
func (p *Packet) DecodeBody(t *Tree) []string {
	var out []string
	for _, fid := range p.fields(t) {
		out = append(out, p.emitField(t, fid, ModeDecode, "")...)
	}
	return out
}

// FreeBody releases every field that needs releasing. A packet
// with nothing to free still gets a well-formed, empty function body
// rather than being special-cased away, matching the uniform per-mode
// walker emit.go describes.
func (p *Packet) FreeBody(t *Tree) []string {
	var out []string
	for _, fid := range p.fields(t) {
		if !needsFree(t, fid) {
			continue
		}
		out = append(out, p.emitField(t, fid, ModeFree, "")...)
	}
	return out
}

// InitBody zero-initializes the packet struct -- the simplest possible
// init a caller must run before decode populates fields incrementally
// (foreign-count arrays, switches) so that an error partway through
// decode still leaves free() safe to call.
func (p *Packet) InitBody() []string {
	return []string{fmt.Sprintf("memset(this, 0, sizeof(%s));", p.StructName)}
}
