package schema

import "github.com/aretw0/aiforms/pkg/domain"

// Field is one entry of a Schema.
type Field struct {
	Key      string
	Type     Type
	Required bool
}

// Schema is the ordered list of fields a collected answer set is checked against.
type Schema []Field

// FromTable derives a schema from a field table.
// A field is required when it is marked so and carries no default.
func FromTable(table *domain.Table) Schema {
	specs := table.Specs()
	s := make(Schema, 0, len(specs))
	for _, spec := range specs {
		s = append(s, Field{
			Key:      spec.Name,
			Type:     ForTag(spec.Type),
			Required: spec.Required && spec.Default == nil,
		})
	}
	return s
}

// Lookup returns the field with the given key.
func (s Schema) Lookup(key string) (Field, bool) {
	for _, f := range s {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ValidateOption tunes a single Validate call.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	exempt map[string]bool
}

// Exempt lifts the required constraint for the given keys (e.g. skipped fields).
func Exempt(keys ...string) ValidateOption {
	return func(c *validateConfig) {
		for _, k := range keys {
			c.exempt[k] = true
		}
	}
}

// Validate checks if data conforms to the schema.
// Present values must match their type; missing required fields fail unless exempt.
// Keys absent from the schema are ignored. Errors follow schema order.
func Validate(schema Schema, data map[string]any, opts ...ValidateOption) error {
	if len(schema) == 0 {
		return nil
	}

	cfg := validateConfig{exempt: map[string]bool{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	var errs []error
	for _, field := range schema {
		value, exists := data[field.Key]
		if !exists {
			if field.Required && !cfg.exempt[field.Key] {
				errs = append(errs, &ValidationError{Key: field.Key, Reason: "field required"})
			}
			continue
		}

		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    field.Key,
				Reason: err.Error(),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateFields validates only specific fields from data against the schema.
// Missing fields are treated as an error.
func ValidateFields(schema Schema, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}

	var errs []error
	for _, key := range fields {
		field, ok := schema.Lookup(key)
		if !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "not defined in schema"})
			continue
		}

		value, exists := data[key]
		if !exists {
			errs = append(errs, &ValidationError{Key: key, Reason: "field required"})
			continue
		}

		if err := field.Type.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
