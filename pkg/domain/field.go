package domain

import (
	"fmt"
	"strings"
)

// Priority groups fields before dependency resolution runs.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Rank returns the sort key of the priority (CRITICAL=0 ... LOW=3).
// The zero value ranks as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// ParsePriority converts a case-insensitive priority name.
// An empty name yields PriorityMedium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", &ConfigurationError{Reason: fmt.Sprintf("unknown priority %q", s)}
	}
}

// TypeTag is the semantic type of a field. It drives default parsing and validation.
type TypeTag string

const (
	TypeString  TypeTag = "string"
	TypeInteger TypeTag = "integer"
	TypeFloat   TypeTag = "float"
	TypeBoolean TypeTag = "boolean"
	TypeList    TypeTag = "list" // list of strings
	TypeOther   TypeTag = "other"
)

// ParseTypeTag converts a type name (and its common aliases) to a TypeTag.
func ParseTypeTag(s string) (TypeTag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "string", "str", "text":
		return TypeString, nil
	case "integer", "int", "number":
		return TypeInteger, nil
	case "float", "decimal", "double":
		return TypeFloat, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "list", "[]string", "[string]", "list[str]", "strings":
		return TypeList, nil
	case "other", "any":
		return TypeOther, nil
	default:
		return "", &ConfigurationError{Reason: fmt.Sprintf("unsupported field type %q", s)}
	}
}

// SkipFunc decides, from the data collected so far, whether a field is bypassed.
// It is invoked only when the field would be visited and must not mutate data.
type SkipFunc func(collected map[string]any) bool

// MaxSurfacedExamples is how many examples are ever shown for a field.
const MaxSurfacedExamples = 3

// FieldSpec describes one named, typed slot of the output schema.
type FieldSpec struct {
	Name        string  `json:"name" yaml:"name"`
	Type        TypeTag `json:"type" yaml:"type"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`

	Priority Priority `json:"priority,omitempty" yaml:"priority,omitempty"`

	// Cluster is reserved for grouped presentation. Traversal ignores it.
	Cluster string `json:"cluster,omitempty" yaml:"cluster,omitempty"`

	CustomQuestion string   `json:"custom_question,omitempty" yaml:"custom_question,omitempty"`
	Examples       []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	ValidationHint string   `json:"validation_hint,omitempty" yaml:"validation_hint,omitempty"`

	// Dependencies must be visited before this field. Names absent from the table are ignored.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	SkipIf SkipFunc `json:"-" yaml:"-"`

	Required bool `json:"required" yaml:"required"`
	Default  any  `json:"default,omitempty" yaml:"default,omitempty"`
}

// EffectivePriority returns the priority, resolving the zero value to medium.
func (f *FieldSpec) EffectivePriority() Priority {
	if f.Priority == "" {
		return PriorityMedium
	}
	return f.Priority
}

// TopExamples returns at most the first three examples.
func (f *FieldSpec) TopExamples() []string {
	if len(f.Examples) <= MaxSurfacedExamples {
		return f.Examples
	}
	return f.Examples[:MaxSurfacedExamples]
}

// ShouldSkip evaluates the skip predicate, if any, against the collected data.
func (f *FieldSpec) ShouldSkip(collected map[string]any) bool {
	return f.SkipIf != nil && f.SkipIf(collected)
}

// Clone returns a copy whose slices can be mutated independently.
func (f FieldSpec) Clone() FieldSpec {
	f.Examples = append([]string(nil), f.Examples...)
	f.Dependencies = append([]string(nil), f.Dependencies...)
	return f
}
