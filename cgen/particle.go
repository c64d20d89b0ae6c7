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

	"mcpgen/internal/particlecat"
)

// ParticleHeader produces <path>/mcp/particle.h: an enumeration of
// every particle-type tag for the driver's chosen version, plus the four
// compatibility aliases bridging the pre/post-1.13 naming convention.
func (d *Driver) ParticleHeader() []string {
	defs := particlecat.Catalog(d.VersionN)

	out := []string{
		"#ifndef MCP_PARTICLE_H",
		"#define MCP_PARTICLE_H",
		"",
		"typedef enum mcp_type_ParticleType {",
	}
	for _, def := range defs {
		out = append(out, fmt.Sprintf("\tMCP_PARTICLE_%s = %d,", particleConst(def.Name), def.ID))
	}
	out = append(out, "} mcp_type_ParticleType;")
	out = append(out, "")

	out = append(out, fmt.Sprintf("// Catalog generated from protocol version %d, which uses the %s particle-name spelling.", d.VersionN, spellingLabel(d.VersionN)))
	for _, alias := range particlecat.CompatAliases {
		oldSym := "MCP_PARTICLE_" + particleConst(alias.Old)
		newSym := "MCP_PARTICLE_" + particleConst(alias.New)
		if particlecat.UsesOldSpelling(d.VersionN) {
			out = append(out, fmt.Sprintf("#define %s %s", newSym, oldSym))
		} else {
			out = append(out, fmt.Sprintf("#define %s %s", oldSym, newSym))
		}
	}
	out = append(out, "")
	out = append(out, "#endif // MCP_PARTICLE_H")
	out = append(out, "")
	return out
}

func spellingLabel(versionN int) string {
	if particlecat.UsesOldSpelling(versionN) {
		return "iconcrack/reddust"
	}
	return "item/dust"
}

// particleConst turns a particle's lower/snake-case catalog name into the
// SCREAMING_SNAKE fragment used in its enum constant.
func particleConst(name string) string {
	return strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}
