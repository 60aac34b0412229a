package formdef

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/aiforms/pkg/domain"
)

// Metadata is the open bag of presentation and traversal hints attached to a field.
type Metadata struct {
	Priority       string    `mapstructure:"priority"`
	Cluster        string    `mapstructure:"cluster"`
	CustomQuestion string    `mapstructure:"custom_question"`
	Examples       []string  `mapstructure:"examples"`
	ValidationHint string    `mapstructure:"validation_hint"`
	Dependencies   []string  `mapstructure:"dependencies"`
	SkipIf         *SkipRule `mapstructure:"skip_if"`
}

// aliases maps shorthand keys (used in struct tags) to metadata keys.
var aliases = map[string]string{
	"question": "custom_question",
	"hint":     "validation_hint",
	"depends":  "dependencies",
}

// DecodeMetadata decodes bag strictly: unknown keys are an error.
func DecodeMetadata(bag map[string]any) (Metadata, error) {
	normalized := make(map[string]any, len(bag))
	for k, v := range bag {
		key := strings.ToLower(strings.TrimSpace(k))
		if alias, ok := aliases[key]; ok {
			key = alias
		}
		normalized[key] = v
	}

	var md Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           &md,
	})
	if err != nil {
		return md, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return md, fmt.Errorf("invalid field metadata: %w", err)
	}
	return md, nil
}

// Apply copies the metadata onto spec.
func (m Metadata) Apply(spec *domain.FieldSpec) error {
	priority, err := domain.ParsePriority(m.Priority)
	if err != nil {
		return err
	}
	spec.Priority = priority
	spec.Cluster = m.Cluster
	spec.CustomQuestion = m.CustomQuestion
	spec.Examples = m.Examples
	spec.ValidationHint = m.ValidationHint
	spec.Dependencies = m.Dependencies
	if m.SkipIf != nil {
		fn, err := m.SkipIf.Compile()
		if err != nil {
			return err
		}
		spec.SkipIf = fn
	}
	return nil
}
