package schema

import (
	"encoding/json"
	"fmt"
)

type wireField struct {
	Key      string `json:"key"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

// MarshalJSON serializes the schema as an ordered list of {key, type, required}.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}

	raw := make([]wireField, 0, len(s))
	for _, f := range s {
		if f.Type == nil {
			return nil, fmt.Errorf("field %s: type is nil", f.Key)
		}
		raw = append(raw, wireField{Key: f.Key, Type: f.Type.Name(), Required: f.Required})
	}
	return json.Marshal(raw)
}

// UnmarshalJSON deserializes the schema from its list form.
func (s *Schema) UnmarshalJSON(data []byte) error {
	if s == nil {
		return fmt.Errorf("schema: UnmarshalJSON on nil pointer")
	}
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var raw []wireField
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed := make(Schema, 0, len(raw))
	for _, f := range raw {
		t, err := ParseType(f.Type)
		if err != nil {
			return fmt.Errorf("field %s: %w", f.Key, err)
		}
		parsed = append(parsed, Field{Key: f.Key, Type: t, Required: f.Required})
	}

	*s = parsed
	return nil
}
