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

package cgen

import (
	"fmt"
	"strings"

	"mcpgen/mcgen"
	"mcpgen/protodef"
)

// ProtocolImpl produces <path>/protocol.c: every packet's five
// function bodies, the per-(state, source) name-string and
// handler-pointer arrays, and the cross-indexed registries that splice
// them together.
func (d *Driver) ProtocolImpl() []string {
	out := []string{
		"#include <stdlib.h>",
		"#include <string.h>",
		"#include \"mcp/protocol.h\"",
		"",
	}

	for _, p := range d.allPackets() {
		out = append(out, d.packetFunctions(p)...)
	}

	out = append(out, "static void mcp_blank_handler(void* conn, void* packet) {}")
	out = append(out, "")

	for _, state := range protodef.States {
		for _, source := range protodef.Sources {
			out = append(out, d.nameArray(state, source)...)
			out = append(out, d.handlerArray(state, source)...)
		}
	}

	out = append(out, d.registries()...)
	return out
}

// packetFunctions renders one packet's init/free/create/encode/decode
// bodies, each wrapped in its C function signature. Length is absent
// here: it is emitted as a static inline function alongside the struct
// declaration in protocol.h.
func (d *Driver) packetFunctions(p *mcgen.Packet) []string {
	var out []string

	out = append(out, fmt.Sprintf("void mcp_init_%s(%s* this) {", p.Postfix, p.StructName))
	out = append(out, indent(p.InitBody())...)
	out = append(out, "}", "")

	out = append(out, fmt.Sprintf("void mcp_create_%s(%s* this%s) {", p.Postfix, p.StructName, p.CreateParams(d.Tree)))
	out = append(out, indent(p.CreateBody(d.Tree))...)
	out = append(out, "}", "")

	out = append(out, fmt.Sprintf("void mcp_encode_%s(%s* this, mcp_writer_t* dest) {", p.Postfix, p.StructName))
	out = append(out, indent(p.EncodeBody(d.Tree))...)
	out = append(out, "}", "")

	out = append(out, fmt.Sprintf("void mcp_decode_%s(%s* this, mcp_reader_t* src) {", p.Postfix, p.StructName))
	out = append(out, indent(p.DecodeBody(d.Tree))...)
	out = append(out, "}", "")

	out = append(out, fmt.Sprintf("void mcp_free_%s(%s* this) {", p.Postfix, p.StructName))
	out = append(out, indent(p.FreeBody(d.Tree))...)
	out = append(out, "}", "")

	return out
}

// nameArray emits one (state, source) pair's packet-name string table,
// indexed by enumeration ordinal. A pair with no registered packets still
// gets a one-slot table: C forbids zero-length arrays, and the registry
// rows below need a valid array to point at.
func (d *Driver) nameArray(state protodef.State, source protodef.Source) []string {
	reg := d.registeredPackets(state, source)
	arr := fmt.Sprintf("mcp_names_%s_%s", sourceTag(source), stateTag(state))
	if len(reg) == 0 {
		return []string{fmt.Sprintf("static const char* %s[1] = { 0 };", arr), ""}
	}
	out := []string{fmt.Sprintf("static const char* %s[%d] = {", arr, len(reg))}
	for _, p := range reg {
		out = append(out, fmt.Sprintf("\t\"%s\",", p.RawName))
	}
	out = append(out, "};", "")
	return out
}

// handlerArray emits one (state, source) pair's handler-pointer table,
// filled with the blank handler in every one of its __MAX slots. The
// table is deliberately sized and filled to exactly __MAX entries, so a
// consumer dispatching any id below __MAX always lands on a callable
// pointer rather than a null slot.
func (d *Driver) handlerArray(state protodef.State, source protodef.Source) []string {
	reg := d.registeredPackets(state, source)
	arr := fmt.Sprintf("mcp_handlers_%s_%s", sourceTag(source), stateTag(state))
	if len(reg) == 0 {
		return []string{fmt.Sprintf("static mcp_packet_handler_t %s[1] = { 0 };", arr), ""}
	}
	out := []string{fmt.Sprintf("static mcp_packet_handler_t %s[%d] = {", arr, len(reg))}
	for range reg {
		out = append(out, "\tmcp_blank_handler,")
	}
	out = append(out, "};", "")
	return out
}

// registries emits the three cross-indexed lookup tables:
// protocol_cstrings[state][source], protocol_handlers[state][source],
// protocol_max_ids[state][source]. All three are plain file-scope
// initializers over the per-pair arrays above; the pointer rows are
// address constants, so no startup hook is needed.
func (d *Driver) registries() []string {
	ns, nr := len(protodef.States), len(protodef.Sources)

	out := []string{fmt.Sprintf("const char** protocol_cstrings[%d][%d] = {", ns, nr)}
	for _, state := range protodef.States {
		var row []string
		for _, source := range protodef.Sources {
			row = append(row, fmt.Sprintf("mcp_names_%s_%s", sourceTag(source), stateTag(state)))
		}
		out = append(out, "\t{ "+strings.Join(row, ", ")+" },")
	}
	out = append(out, "};", "")

	out = append(out, fmt.Sprintf("mcp_packet_handler_t* protocol_handlers[%d][%d] = {", ns, nr))
	for _, state := range protodef.States {
		var row []string
		for _, source := range protodef.Sources {
			row = append(row, fmt.Sprintf("mcp_handlers_%s_%s", sourceTag(source), stateTag(state)))
		}
		out = append(out, "\t{ "+strings.Join(row, ", ")+" },")
	}
	out = append(out, "};", "")

	out = append(out, fmt.Sprintf("const size_t protocol_max_ids[%d][%d] = {", ns, nr))
	for _, state := range protodef.States {
		var row []string
		for _, source := range protodef.Sources {
			row = append(row, fmt.Sprintf("%d", len(d.registeredPackets(state, source))))
		}
		out = append(out, "\t{ "+strings.Join(row, ", ")+" },")
	}
	out = append(out, "};", "")

	return out
}

func indent(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "\t" + l
	}
	return out
}
