package mcgen

import (
	"fmt"

	"mcpgen/protodef"
)

// rawTypeOf extracts a nested type expression from a raw data map/value,
// as produced by generic JSON decoding: a bare tag string, or a [tag, data]
// pair decoded as a 2-element []interface{}.
func rawTypeOf(v interface{}) (protodef.RawType, error) {
	switch vv := v.(type) {
	case string:
		return protodef.RawType{Tag: vv}, nil
	case []interface{}:
		if len(vv) != 2 {
			return protodef.RawType{}, fmt.Errorf("nested type expression must have 2 elements, got %d", len(vv))
		}
		tag, ok := vv[0].(string)
		if !ok {
			return protodef.RawType{}, fmt.Errorf("nested type tag must be a string")
		}
		data, _ := vv[1].(map[string]interface{})
		return protodef.RawType{Tag: tag, Data: data}, nil
	case protodef.RawType:
		return vv, nil
	default:
		return protodef.RawType{}, fmt.Errorf("unrecognized type expression shape: %T", v)
	}
}

// requireField extracts a required key from data, erroring with field
// context if it is absent -- the "missing required data key" class of
// schema-structural error.
func requireField(data map[string]interface{}, key, fieldName string) (interface{}, error) {
	v, ok := data[key]
	if !ok {
		return nil, fmt.Errorf("field %q: missing required key %q", fieldName, key)
	}
	return v, nil
}

// stringField extracts a required string-valued key.
func stringField(data map[string]interface{}, key, fieldName string) (string, error) {
	v, err := requireField(data, key, fieldName)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: key %q must be a string, got %T", fieldName, key, v)
	}
	return s, nil
}

// fieldsOf extracts and decodes a "fields" array (used by container and
// switch branch bodies) into protodef.Field values.
func fieldsOf(data map[string]interface{}, key string) ([]protodef.Field, error) {
	raw, ok := data[key]
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("key %q must be an array", key)
	}
	var out []protodef.Field
	for _, item := range list {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("key %q: each entry must be an object", key)
		}
		name, _ := m["name"].(string)
		rt, err := rawTypeOf(m["type"])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		out = append(out, protodef.Field{Name: name, Type: rt})
	}
	return out, nil
}
