package aiforms

import (
	"log/slog"
	"maps"

	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/ports"
)

type fieldConfig struct {
	name string
	opts []FieldOption
}

type config struct {
	name      string
	source    ports.SchemaSource
	specs     []domain.FieldSpec
	fields    []fieldConfig
	generator ports.QuestionGenerator
	parser    ports.AnswerParser
	hooks     domain.LifecycleHooks
	context   map[string]any
	logger    *slog.Logger
}

// Option defines a functional option for configuring a Form.
type Option func(*config)

// WithName sets the form name used in logs and events.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithSchemaSource reads the field specs from src.
func WithSchemaSource(src ports.SchemaSource) Option {
	return func(c *config) {
		c.source = src
	}
}

// WithFields appends explicit field specs.
func WithFields(specs ...domain.FieldSpec) Option {
	return func(c *config) {
		c.specs = append(c.specs, specs...)
	}
}

// WithField overrides metadata of an existing field at construction time.
func WithField(name string, opts ...FieldOption) Option {
	return func(c *config) {
		c.fields = append(c.fields, fieldConfig{name: name, opts: opts})
	}
}

// WithGenerator sets the question generator (default: generator.Template).
func WithGenerator(g ports.QuestionGenerator) Option {
	return func(c *config) {
		c.generator = g
	}
}

// WithParser sets the answer parser tried before the built-in parsing.
func WithParser(p ports.AnswerParser) Option {
	return func(c *config) {
		c.parser = p
	}
}

// WithLifecycleHooks registers observability hooks. Multiple calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithContext seeds the context handed to collaborators.
func WithContext(values map[string]any) Option {
	return func(c *config) {
		if c.context == nil {
			c.context = map[string]any{}
		}
		maps.Copy(c.context, values)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// FieldOption overrides one piece of field metadata.
type FieldOption func(*domain.FieldSpec)

// Priorities, re-exported for callers of Priority.
const (
	Critical = domain.PriorityCritical
	High     = domain.PriorityHigh
	Medium   = domain.PriorityMedium
	Low      = domain.PriorityLow
)

// Priority sets the priority bucket of the field.
func Priority(p domain.Priority) FieldOption {
	return func(f *domain.FieldSpec) { f.Priority = p }
}

// Question replaces the generated question with fixed text.
func Question(text string) FieldOption {
	return func(f *domain.FieldSpec) { f.CustomQuestion = text }
}

// Description sets the human-readable description.
func Description(text string) FieldOption {
	return func(f *domain.FieldSpec) { f.Description = text }
}

// ValidationHint sets the hint handed to parsing collaborators.
func ValidationHint(hint string) FieldOption {
	return func(f *domain.FieldSpec) { f.ValidationHint = hint }
}

// Examples sets sample answers. Only the first three are ever shown.
func Examples(examples ...string) FieldOption {
	return func(f *domain.FieldSpec) { f.Examples = append([]string(nil), examples...) }
}

// Cluster tags the field with a presentation group.
func Cluster(name string) FieldOption {
	return func(f *domain.FieldSpec) { f.Cluster = name }
}

// Dependencies lists fields that must be asked before this one.
func Dependencies(names ...string) FieldOption {
	return func(f *domain.FieldSpec) { f.Dependencies = append([]string(nil), names...) }
}

// SkipIf bypasses the field when fn reports true for the answers so far.
func SkipIf(fn domain.SkipFunc) FieldOption {
	return func(f *domain.FieldSpec) { f.SkipIf = fn }
}

// Required marks whether the field must be answered unless skipped or defaulted.
func Required(required bool) FieldOption {
	return func(f *domain.FieldSpec) { f.Required = required }
}

func applyAll(opts []FieldOption) func(*domain.FieldSpec) {
	return func(f *domain.FieldSpec) {
		for _, opt := range opts {
			opt(f)
		}
	}
}
