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

	"mcpgen/protodef"
)

// ProtocolHeader produces <path>/mcp/protocol.h: the interner's
// typedef preamble, every packet struct's forward declaration plus its
// five function prototypes, the per-(state, source) id enumeration, and
// extern declarations of the three cross-indexed registries.
func (d *Driver) ProtocolHeader() []string {
	out := []string{
		"#ifndef MCP_PROTOCOL_H",
		"#define MCP_PROTOCOL_H",
		"",
		"#include <stdint.h>",
		"#include <stdbool.h>",
		"#include <stddef.h>",
		"#include <string.h>",
		"#include \"mcp/particle.h\"",
		"#include \"mcp/type.h\"",
		"#include \"mcp/codec.h\"",
		"",
		fmt.Sprintf("#define MCP_MC_VERSION \"%s\"", d.Version),
		fmt.Sprintf("#define MCP_PROTOCOL_VERSION %d", d.VersionN),
		"",
	}

	out = append(out, d.preambleTypedefs()...)

	for _, p := range d.allPackets() {
		out = append(out, p.DeclarationLines(d.Tree)...)
	}

	for _, state := range protodef.States {
		for _, source := range protodef.Sources {
			out = append(out, d.idEnum(state, source)...)
		}
	}

	out = append(out, "")
	out = append(out, "typedef void (*mcp_packet_handler_t)(void* conn, void* packet);")
	out = append(out, "")
	out = append(out, fmt.Sprintf("extern const char** protocol_cstrings[%d][%d];", len(protodef.States), len(protodef.Sources)))
	out = append(out, fmt.Sprintf("extern mcp_packet_handler_t* protocol_handlers[%d][%d];", len(protodef.States), len(protodef.Sources)))
	out = append(out, fmt.Sprintf("extern const size_t protocol_max_ids[%d][%d];", len(protodef.States), len(protodef.Sources)))
	out = append(out, "")
	out = append(out, "#endif // MCP_PROTOCOL_H")
	out = append(out, "")
	return out
}

// preambleTypedefs emits every interned typedef in first-registration
// order, so the name sequence is identical across runs and a typedef
// always follows anything it references. Runtime-provided wrappers have
// no stored body and are skipped.
func (d *Driver) preambleTypedefs() []string {
	var out []string
	for _, name := range d.Tree.Interner.OrderedNames() {
		body := d.Tree.Interner.Body(name)
		if len(body) == 0 {
			continue
		}
		out = append(out, body...)
		out = append(out, "")
	}
	return out
}

// idEnum emits one (state, source) pair's packet-id enumeration:
// MCP_<CL|SV>_<HS|ST|LG|PL>_<NAME>, ..., __MAX. LegacyServerListPing
// is excluded here even though its struct was declared above.
func (d *Driver) idEnum(state protodef.State, source protodef.Source) []string {
	reg := d.registeredPackets(state, source)
	out := []string{fmt.Sprintf("typedef enum mcp_id_%s_%s {", sourceTag(source), stateTag(state))}
	for _, p := range reg {
		out = append(out, fmt.Sprintf("\t%s = %d,", p.Symbol, p.IDNumber))
	}
	out = append(out, fmt.Sprintf("\t__MCP_%s_%s_MAX = %d,", sourceTag(source), stateTag(state), len(reg)))
	out = append(out, fmt.Sprintf("} mcp_id_%s_%s;", sourceTag(source), stateTag(state)))
	out = append(out, "")
	return out
}

func stateTag(s protodef.State) string {
	switch s {
	case protodef.Handshaking:
		return "HS"
	case protodef.Status:
		return "ST"
	case protodef.Login:
		return "LG"
	default:
		return "PL"
	}
}

func sourceTag(s protodef.Source) string {
	if s == protodef.Client {
		return "CL"
	}
	return "SV"
}
