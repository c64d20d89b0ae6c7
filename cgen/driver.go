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

// Package cgen is the driver: it iterates states x sources x packets,
// builds one mcgen.Tree shared across the whole run, and composes the
// three output files (particle.h, protocol.c, protocol.h) from the
// per-packet fragments mcgen produces. It owns no compiler logic of its
// own -- every interesting invariant lives in mcgen; this package is
// thin orchestration atop that work.
package cgen

import (
	"fmt"

	"mcpgen/internal/util"
	"mcpgen/mcgen"
	"mcpgen/protodef"
)

// Driver holds one generator run's shared state: the single Tree (and its
// process-lifetime interner) every packet across every state/source is
// built into, plus the resulting packets grouped the way the output files
// need them grouped.
type Driver struct {
	Tree     *mcgen.Tree
	Packets  map[protodef.State]map[protodef.Source][]*mcgen.Packet
	Version  string
	VersionN int
}

// NewDriver builds every packet in proto into one shared schema tree,
// aggregating every schema-structural error across every packet (per the
// ambient error-aggregation stack) instead of stopping at the first.
func NewDriver(proto *protodef.Protocol) (*Driver, error) {
	reg := mcgen.DefaultRegistry()
	interner := mcgen.NewInterner()
	tree := mcgen.NewTree(reg, interner)

	packets := make(map[protodef.State]map[protodef.Source][]*mcgen.Packet)
	for _, state := range protodef.States {
		packets[state] = make(map[protodef.Source][]*mcgen.Packet)
		for _, source := range protodef.Sources {
			defs := proto.Packets[state][source]
			list := make([]*mcgen.Packet, 0, len(defs))
			for _, def := range defs {
				list = append(list, mcgen.BuildPacket(tree, state, source, def))
			}
			packets[state][source] = list
		}
	}

	if len(tree.Errs) > 0 {
		return nil, fmt.Errorf("mcpgen: %d schema error(s) while building version %s: %s", len(tree.Errs), proto.Version, util.ToString(tree.Errs))
	}

	return &Driver{Tree: tree, Packets: packets, Version: proto.Version, VersionN: proto.VersionN}, nil
}

// registeredPackets returns packets[state][source] minus
// legacyServerListPing, in schema order -- the set the id enum and
// handler tables are built from.
func (d *Driver) registeredPackets(state protodef.State, source protodef.Source) []*mcgen.Packet {
	var out []*mcgen.Packet
	for _, p := range d.Packets[state][source] {
		if p.Registered {
			out = append(out, p)
		}
	}
	return out
}

// allPackets iterates every packet across every state/source, in a
// stable order (state x source x schema order), for passes that need
// every struct declared regardless of registration (e.g. the header's
// forward declarations, which still declare LegacyServerListPing's
// struct).
func (d *Driver) allPackets() []*mcgen.Packet {
	var out []*mcgen.Packet
	for _, state := range protodef.States {
		for _, source := range protodef.Sources {
			out = append(out, d.Packets[state][source]...)
		}
	}
	return out
}
