// Package formdef produces field specs for forms from declarative sources:
// YAML definition files and tagged Go structs.
package formdef

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/aiforms/pkg/domain"
)

// coreKeys are read directly from a field entry; everything else is metadata.
var coreKeys = map[string]bool{
	"name":        true,
	"type":        true,
	"description": true,
	"required":    true,
	"default":     true,
}

// Definition is a form declared in YAML.
//
//	name: signup
//	title: Create your account
//	fields:
//	  - name: email
//	    type: string
//	    description: Email address
//	    required: true
//	    priority: critical
//	  - name: company
//	    skip_if: {field: employed, equals: false}
type Definition struct {
	Name        string           `yaml:"name"`
	Title       string           `yaml:"title,omitempty"`
	Description string           `yaml:"description,omitempty"`
	Entries     []map[string]any `yaml:"fields"`

	specs []domain.FieldSpec
}

// Parse decodes and checks a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to decode form definition: %w", err)
	}

	specs, err := def.compile()
	if err != nil {
		if def.Name != "" {
			return nil, fmt.Errorf("form %s: %w", def.Name, err)
		}
		return nil, err
	}
	def.specs = specs
	return &def, nil
}

// Load reads and parses a YAML definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Fields implements ports.SchemaSource.
func (d *Definition) Fields() ([]domain.FieldSpec, error) {
	out := make([]domain.FieldSpec, len(d.specs))
	for i, s := range d.specs {
		out[i] = s.Clone()
	}
	return out, nil
}

func (d *Definition) compile() ([]domain.FieldSpec, error) {
	names := make(map[string]bool, len(d.Entries))
	specs := make([]domain.FieldSpec, 0, len(d.Entries))

	for i, entry := range d.Entries {
		spec, err := compileEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("field #%d: %w", i+1, err)
		}
		if names[spec.Name] {
			return nil, &domain.ConfigurationError{Field: spec.Name, Reason: fmt.Sprintf("duplicate field %q", spec.Name)}
		}
		names[spec.Name] = true
		specs = append(specs, spec)
	}

	// skip_if rules may only refer to declared fields.
	for _, entry := range d.Entries {
		raw, ok := entry["skip_if"].(map[string]any)
		if !ok {
			continue
		}
		if target, _ := raw["field"].(string); target != "" && !names[target] {
			return nil, &domain.ConfigurationError{
				Field:  target,
				Reason: fmt.Sprintf("skip_if refers to unknown field %q", target),
			}
		}
	}

	if _, err := domain.NewTable(specs...); err != nil {
		return nil, err
	}
	return specs, nil
}

func compileEntry(entry map[string]any) (domain.FieldSpec, error) {
	var spec domain.FieldSpec

	name, _ := entry["name"].(string)
	if name == "" {
		return spec, &domain.ConfigurationError{Reason: "field name is required"}
	}
	spec.Name = name

	typeName, _ := entry["type"].(string)
	tag, err := domain.ParseTypeTag(typeName)
	if err != nil {
		return spec, fmt.Errorf("%s: %w", name, err)
	}
	spec.Type = tag

	spec.Description, _ = entry["description"].(string)
	if req, ok := entry["required"]; ok {
		b, ok := req.(bool)
		if !ok {
			return spec, &domain.ConfigurationError{Field: name, Reason: fmt.Sprintf("%s: required must be a boolean", name)}
		}
		spec.Required = b
	}
	if def, ok := entry["default"]; ok {
		spec.Default = normalizeDefault(tag, def)
	}

	bag := make(map[string]any)
	for k, v := range entry {
		if !coreKeys[k] {
			bag[k] = v
		}
	}
	md, err := DecodeMetadata(bag)
	if err != nil {
		return spec, fmt.Errorf("%s: %w", name, err)
	}
	if err := md.Apply(&spec); err != nil {
		return spec, fmt.Errorf("%s: %w", name, err)
	}
	return spec, nil
}

// normalizeDefault converts YAML sequences into []string for list fields.
func normalizeDefault(tag domain.TypeTag, v any) any {
	items, ok := v.([]any)
	if !ok || tag != domain.TypeList {
		return v
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprint(item)
	}
	return out
}
