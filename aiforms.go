package aiforms

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/internal/runtime"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/formdef"
	"github.com/aretw0/aiforms/pkg/ports"
)

// Form is the high-level entry point of the library.
// It collects the fields of T one question at a time and materializes a *T once
// every live field has been answered. A Form is not safe for concurrent use.
type Form[T any] struct {
	session *runtime.Session
	logger  *slog.Logger
	Name    string
}

// Response is the envelope returned by every step, with the result typed as *T.
type Response[T any] struct {
	domain.Envelope
	Data *T `json:"data"`
}

// New builds a form for T.
//
// Fields come from WithSchemaSource or WithFields; when neither is given and T
// is a struct, they are derived from T's tags (see formdef.FromStruct).
func New[T any](opts ...Option) (*Form[T], error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	specs, err := resolveFields[T](cfg)
	if err != nil {
		return nil, err
	}

	table, err := domain.NewTable(specs...)
	if err != nil {
		return nil, fmt.Errorf("invalid fields: %w", err)
	}
	for _, fc := range cfg.fields {
		if err := table.Update(fc.name, applyAll(fc.opts)); err != nil {
			return nil, err
		}
	}

	name := cfg.name
	if name == "" {
		name = defaultName[T]()
	}

	logger := cfg.logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With("form", name)

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(cfg.hooks),
		runtime.WithContext(cfg.context),
		runtime.WithMaterializer(materializer[T]()),
	}
	if cfg.generator != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithGenerator(cfg.generator))
	}
	if cfg.parser != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithParser(cfg.parser))
	}

	session, err := runtime.NewSession(name, table, runtimeOpts...)
	if err != nil {
		return nil, err
	}

	return &Form[T]{session: session, logger: logger, Name: name}, nil
}

// NewFromDefinition builds an untyped form from a parsed form definition.
func NewFromDefinition(def *formdef.Definition, opts ...Option) (*Form[map[string]any], error) {
	base := []Option{WithSchemaSource(def)}
	if def.Name != "" {
		base = append(base, WithName(def.Name))
	}
	return New[map[string]any](append(base, opts...)...)
}

func resolveFields[T any](cfg *config) ([]domain.FieldSpec, error) {
	specs := append([]domain.FieldSpec(nil), cfg.specs...)

	source := cfg.source
	if source == nil && len(specs) == 0 {
		if reflect.TypeFor[T]().Kind() != reflect.Struct {
			return nil, &domain.ConfigurationError{Reason: "no fields: use WithSchemaSource or WithFields for non-struct forms"}
		}
		source = formdef.FromStruct[T]()
	}
	if source != nil {
		fields, err := source.Fields()
		if err != nil {
			return nil, fmt.Errorf("failed to read schema: %w", err)
		}
		specs = append(fields, specs...)
	}
	return specs, nil
}

func defaultName[T any]() string {
	if n := reflect.TypeFor[T]().Name(); n != "" {
		return n
	}
	return "form"
}

// Start begins the conversation and returns the first question.
// A form without fields completes immediately.
func (f *Form[T]) Start(ctx context.Context) (*Response[T], error) {
	env, err := f.session.Start(ctx)
	if err != nil {
		return nil, err
	}
	return f.wrap(env), nil
}

// Respond submits the user's answer to the current question.
// Calling it before Start returns domain.ErrNotStarted. Invalid answers are
// reported through the response, never as an error.
func (f *Form[T]) Respond(ctx context.Context, answer string) (*Response[T], error) {
	env, err := f.session.Respond(ctx, answer)
	if err != nil {
		return nil, err
	}
	return f.wrap(env), nil
}

// Configure overrides metadata of one field and recomputes the order.
// Unknown names and dependency cycles are configuration errors; on error the
// form keeps its previous configuration.
func (f *Form[T]) Configure(name string, opts ...FieldOption) error {
	return f.session.Configure(name, applyAll(opts))
}

// MustConfigure is like Configure but panics on error. It returns the form for chaining.
func (f *Form[T]) MustConfigure(name string, opts ...FieldOption) *Form[T] {
	if err := f.Configure(name, opts...); err != nil {
		panic(err)
	}
	return f
}

// SetContext shallow-merges values into the context handed to collaborators.
func (f *Form[T]) SetContext(values map[string]any) {
	f.session.SetContext(values)
}

// SetGenerator replaces the question generator. nil restores the template.
func (f *Form[T]) SetGenerator(g ports.QuestionGenerator) {
	f.session.SetGenerator(g)
}

// SetParser replaces the answer parser. nil leaves only the built-in parsing.
func (f *Form[T]) SetParser(p ports.AnswerParser) {
	f.session.SetParser(p)
}

// Order returns the visitation order of the fields.
func (f *Form[T]) Order() []string { return f.session.Order() }

// Status reports whether the form is not started, in progress or complete.
func (f *Form[T]) Status() domain.Status { return f.session.Status() }

// Progress returns the completion percentage.
func (f *Form[T]) Progress() float64 { return f.session.Progress() }

// CurrentField returns the field awaiting an answer, or "".
func (f *Form[T]) CurrentField() string { return f.session.CurrentField() }

// Collected returns a copy of the answers collected so far.
func (f *Form[T]) Collected() map[string]any { return f.session.Collected() }

// Fields returns the field specs in declaration order.
func (f *Form[T]) Fields() []domain.FieldSpec { return f.session.Fields() }

// Result returns the materialized value once the form is complete.
func (f *Form[T]) Result() (*T, bool) {
	raw, ok := f.session.Result()
	if !ok {
		return nil, false
	}
	out, _ := raw.(*T)
	return out, out != nil
}

func (f *Form[T]) wrap(env *domain.Envelope) *Response[T] {
	resp := &Response[T]{Envelope: *env}
	if out, ok := env.Data.(*T); ok {
		resp.Data = out
	}
	return resp
}
