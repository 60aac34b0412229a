// Package runtime implements the conversation state machine behind a form.
//
// A Session owns the field table, the computed visitation order, the cursor
// into that order and the answers collected so far. It is driven by Start and
// Respond, each of which returns exactly one domain.Envelope. A Session is not
// safe for concurrent use.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/internal/ordering"
	"github.com/aretw0/aiforms/pkg/answer"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/generator"
	"github.com/aretw0/aiforms/pkg/ports"
)

// Materializer turns the validated answers (defaults applied) into the final result.
// A failure is reported to the user as an aggregate validation error.
type Materializer func(ctx context.Context, data map[string]any) (any, error)

// Session is the per-conversation state.
type Session struct {
	name  string
	table *domain.Table
	order []string

	position  int
	collected *collected
	context   map[string]any
	skipped   map[string]bool
	started   bool
	complete  bool
	result    any

	generator   ports.QuestionGenerator
	parser      ports.AnswerParser
	answers     *answer.Pipeline
	materialize Materializer
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithGenerator sets the question generator. Defaults to generator.Template.
func WithGenerator(g ports.QuestionGenerator) Option {
	return func(s *Session) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithParser sets the answer parsing collaborator.
func WithParser(p ports.AnswerParser) Option {
	return func(s *Session) {
		s.parser = p
	}
}

// WithMaterializer sets how the answers become the final result.
// Defaults to returning the answer map itself.
func WithMaterializer(m Materializer) Option {
	return func(s *Session) {
		if m != nil {
			s.materialize = m
		}
	}
}

// WithLifecycleHooks registers observability callbacks. Multiple calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = s.hooks.Merge(hooks)
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithContext seeds the caller-supplied context map.
func WithContext(ctx map[string]any) Option {
	return func(s *Session) {
		maps.Copy(s.context, ctx)
	}
}

// NewSession creates a session over a private copy of table.
// It fails with a configuration error if the dependencies form a cycle.
func NewSession(name string, table *domain.Table, opts ...Option) (*Session, error) {
	if table == nil {
		return nil, &domain.ConfigurationError{Reason: "field table is required"}
	}

	s := &Session{
		name:        name,
		table:       table.Clone(),
		collected:   newCollected(),
		context:     map[string]any{},
		skipped:     map[string]bool{},
		generator:   generator.Template{},
		materialize: func(_ context.Context, data map[string]any) (any, error) { return data, nil },
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.answers = answer.NewPipeline(answer.WithLogger(s.logger), answer.WithParser(s.parser))

	order, err := ordering.Compute(s.table)
	if err != nil {
		return nil, fmt.Errorf("failed to compute field order: %w", err)
	}
	s.order = order
	return s, nil
}

// Name returns the form name used in events and logs.
func (s *Session) Name() string { return s.name }

// Order returns a copy of the current visitation order.
func (s *Session) Order() []string {
	return append([]string{}, s.order...)
}

// Status reports the coarse state of the conversation.
func (s *Session) Status() domain.Status {
	switch {
	case !s.started:
		return domain.StatusNotStarted
	case s.complete:
		return domain.StatusComplete
	default:
		return domain.StatusInProgress
	}
}

// Position returns the cursor into Order.
func (s *Session) Position() int { return s.position }

// Progress returns the completion percentage.
func (s *Session) Progress() float64 {
	if s.complete || len(s.order) == 0 {
		return 100.0
	}
	return float64(s.position) / float64(len(s.order)) * 100
}

// Collected returns a copy of the answers collected so far.
func (s *Session) Collected() map[string]any {
	return s.collected.snapshot()
}

// CollectedFields returns the names of the collected fields in insertion order.
func (s *Session) CollectedFields() []string {
	return s.collected.names()
}

// Skipped reports whether the named field was bypassed by its skip predicate.
func (s *Session) Skipped(name string) bool {
	return s.skipped[name]
}

// Fields returns copies of the field specs in declaration order.
func (s *Session) Fields() []domain.FieldSpec {
	return s.table.Specs()
}

// Result returns the materialized result once the session is complete.
func (s *Session) Result() (any, bool) {
	return s.result, s.complete
}

// CurrentField returns the field awaiting an answer, or "".
func (s *Session) CurrentField() string {
	if !s.started || s.complete || s.position >= len(s.order) {
		return ""
	}
	return s.order[s.position]
}

// SetContext shallow-merges values into the caller-supplied context.
func (s *Session) SetContext(values map[string]any) {
	maps.Copy(s.context, values)
}

// SetGenerator replaces the question generator. nil restores the template.
func (s *Session) SetGenerator(g ports.QuestionGenerator) {
	if g == nil {
		g = generator.Template{}
	}
	s.generator = g
}

// SetParser replaces the answer parsing collaborator. nil disables it.
func (s *Session) SetParser(p ports.AnswerParser) {
	s.parser = p
	s.answers.SetParser(p)
}

// mergedData is context overlaid with collected answers; collected wins.
func (s *Session) mergedData() map[string]any {
	data := make(map[string]any, len(s.context)+s.collected.len())
	maps.Copy(data, s.context)
	maps.Copy(data, s.collected.values)
	return data
}
