package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AttrKind identifies the type of a variant attribute value
type AttrKind string

const (
	AttrString AttrKind = "string"
	AttrNumber AttrKind = "number"
	AttrBool   AttrKind = "bool"
)

// AttrValue is a typed variant used for open attribute maps (animal
// attributes, person flags, application forms). Keeping the boundary typed
// means the domain never depends on untyped JSON payloads for invariants.
type AttrValue struct {
	Kind   AttrKind `json:"kind"`
	String string   `json:"string,omitempty"`
	Number float64  `json:"number,omitempty"`
	Bool   bool     `json:"bool,omitempty"`
}

// StringValue creates a string attribute value
func StringValue(s string) AttrValue {
	return AttrValue{Kind: AttrString, String: s}
}

// NumberValue creates a numeric attribute value
func NumberValue(n float64) AttrValue {
	return AttrValue{Kind: AttrNumber, Number: n}
}

// BoolValue creates a boolean attribute value
func BoolValue(b bool) AttrValue {
	return AttrValue{Kind: AttrBool, Bool: b}
}

// AttrMap is a key-to-variant map stored as JSON
type AttrMap map[string]AttrValue

// AttrSchema maps keys to their expected kinds for boundary validation
type AttrSchema map[string]AttrKind

// Validate checks every entry against the schema. Keys absent from the
// schema are allowed (the map is an open escape hatch) but typed keys must
// carry the declared kind.
func (m AttrMap) Validate(schema AttrSchema) error {
	for key, value := range m {
		expected, ok := schema[key]
		if !ok {
			continue
		}
		if value.Kind != expected {
			return fmt.Errorf("attribute %q must be of kind %s, got %s", key, expected, value.Kind)
		}
	}
	return nil
}

// GetBool returns the boolean value for key, false when absent or non-bool
func (m AttrMap) GetBool(key string) bool {
	v, ok := m[key]
	return ok && v.Kind == AttrBool && v.Bool
}

// GetString returns the string value for key
func (m AttrMap) GetString(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.Kind != AttrString {
		return "", false
	}
	return v.String, true
}

// Value implements driver.Valuer; AttrMap persists as a JSON document
func (m AttrMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (m *AttrMap) Scan(value interface{}) error {
	if value == nil {
		*m = make(AttrMap)
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AttrMap", value)
	}
	if len(data) == 0 {
		*m = make(AttrMap)
		return nil
	}
	return json.Unmarshal(data, m)
}
