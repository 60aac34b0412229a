package ports

import (
	"context"

	"github.com/aretw0/aiforms/pkg/domain"
)

// QuestionGenerator phrases the question for a field.
// Implementations must be pure with respect to their inputs and callable repeatedly.
// Errors are propagated to the caller of the conversation step.
type QuestionGenerator interface {
	Generate(ctx context.Context, field domain.FieldSpec, data map[string]any) (string, error)
}

// QuestionGeneratorFunc adapts a function to QuestionGenerator.
type QuestionGeneratorFunc func(ctx context.Context, field domain.FieldSpec, data map[string]any) (string, error)

func (f QuestionGeneratorFunc) Generate(ctx context.Context, field domain.FieldSpec, data map[string]any) (string, error) {
	return f(ctx, field, data)
}

// AnswerParser turns raw user text into a value for the field.
// Failures are never fatal: the engine falls back to deterministic parsing.
type AnswerParser interface {
	Parse(ctx context.Context, raw string, field domain.FieldSpec, data map[string]any) (any, error)
}

// AnswerParserFunc adapts a function to AnswerParser.
type AnswerParserFunc func(ctx context.Context, raw string, field domain.FieldSpec, data map[string]any) (any, error)

func (f AnswerParserFunc) Parse(ctx context.Context, raw string, field domain.FieldSpec, data map[string]any) (any, error) {
	return f(ctx, raw, field, data)
}

// SchemaSource produces the field metadata of a form, in declaration order.
type SchemaSource interface {
	Fields() ([]domain.FieldSpec, error)
}
