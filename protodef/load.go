package protodef

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// wireField is the on-disk JSON shape of a Field.
type wireField struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// wirePacket is the on-disk JSON shape of a PacketDef.
type wirePacket struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Fields []wireField `json:"fields"`
}

// wireDirection holds the two source-keyed packet lists for one state.
type wireDirection struct {
	ToServer []wirePacket `json:"toServer"`
	ToClient []wirePacket `json:"toClient"`
}

// wireDoc is the top-level on-disk document for one protocol version.
type wireDoc struct {
	Version  string                   `json:"version"`
	VersionN int                      `json:"versionN"`
	Protocol map[string]wireDirection `json:"protocol"`
}

// UnmarshalJSON decodes either a bare string tag ("varint") or a
// [tag, data] pair (["array", {"countType": "varint", ...}]), matching
// Protodef's own on-the-wire type-expression shape.
func (r *RawType) UnmarshalJSON(b []byte) error {
	var tag string
	if err := json.Unmarshal(b, &tag); err == nil {
		r.Tag = tag
		r.Data = nil
		return nil
	}

	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("protodef: type expression is neither a string nor a [tag, data] pair: %s", b)
	}
	if len(pair) != 2 {
		return fmt.Errorf("protodef: type expression array must have exactly 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &tag); err != nil {
		return fmt.Errorf("protodef: type tag must be a string: %w", err)
	}

	if tag == "switch" {
		data, err := unmarshalSwitchData(pair[1])
		if err != nil {
			return err
		}
		r.Tag = tag
		r.Data = data
		return nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(pair[1], &data); err != nil {
		return fmt.Errorf("protodef: type data for tag %q must be an object: %w", tag, err)
	}
	r.Tag = tag
	r.Data = data
	return nil
}

// unmarshalSwitchData decodes a switch's type-data object, preserving the
// "fields" member's JSON key order (see SwitchFieldEntry) instead of
// flattening it into an order-erasing map[string]interface{}.
func unmarshalSwitchData(raw json.RawMessage) (map[string]interface{}, error) {
	var shape struct {
		CompareTo string          `json:"compareTo"`
		Fields    json.RawMessage `json:"fields"`
		Default   json.RawMessage `json:"default"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return nil, fmt.Errorf("protodef: switch type data: %w", err)
	}
	entries, err := decodeOrderedFields(shape.Fields)
	if err != nil {
		return nil, err
	}
	data := map[string]interface{}{
		"compareTo": shape.CompareTo,
		"fields":    entries,
	}
	if len(shape.Default) > 0 {
		var def RawType
		if err := json.Unmarshal(shape.Default, &def); err != nil {
			return nil, fmt.Errorf("protodef: switch default: %w", err)
		}
		data["default"] = def
	}
	return data, nil
}

// decodeOrderedFields walks a switch's "fields" JSON object token by token
// so the returned slice reflects on-the-wire member order, which matters
// for string-keyed switches (numeric-keyed switches get re-sorted by the
// constructor regardless).
func decodeOrderedFields(raw json.RawMessage) ([]SwitchFieldEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("protodef: switch fields: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("protodef: switch fields must be a JSON object")
	}
	var entries []SwitchFieldEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("protodef: switch fields: %w", err)
		}
		key, _ := keyTok.(string)
		var rt RawType
		if err := dec.Decode(&rt); err != nil {
			return nil, fmt.Errorf("protodef: switch field %q: %w", key, err)
		}
		entries = append(entries, SwitchFieldEntry{Key: key, Type: rt})
	}
	return entries, nil
}

// LoadVersion reads <catalogDir>/<version>/protocol.json and decodes it
// into a Protocol. It performs only structural JSON decoding, never type
// interpretation -- that is the compiler's job.
func LoadVersion(catalogDir, version string) (*Protocol, error) {
	path := filepath.Join(catalogDir, version, "protocol.json")
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("protodef: reading %s: %w", path, err)
	}

	var doc wireDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("protodef: parsing %s: %w", path, err)
	}

	p := &Protocol{
		Version:  doc.Version,
		VersionN: doc.VersionN,
		Packets:  make(map[State]map[Source][]PacketDef),
	}
	for _, state := range States {
		dir, ok := doc.Protocol[string(state)]
		if !ok {
			continue
		}
		p.Packets[state] = map[Source][]PacketDef{
			Client: toPacketDefs(dir.ToServer),
			Server: toPacketDefs(dir.ToClient),
		}
	}
	return p, nil
}

func toPacketDefs(wps []wirePacket) []PacketDef {
	defs := make([]PacketDef, 0, len(wps))
	for _, wp := range wps {
		fields := make([]Field, 0, len(wp.Fields))
		for _, wf := range wp.Fields {
			var rt RawType
			if len(wf.Type) > 0 {
				// Errors are surfaced by the caller re-walking with mcgen,
				// which reports them with full packet/path context; a
				// malformed single field must not abort the whole catalog.
				_ = json.Unmarshal(wf.Type, &rt)
			}
			fields = append(fields, Field{Name: wf.Name, Type: rt})
		}
		defs = append(defs, PacketDef{IDNumber: wp.ID, Name: wp.Name, Fields: fields})
	}
	return defs
}
