// Package generator provides question generators that need no external service.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/ports"
)

// Template phrases questions from field metadata alone.
//
// A custom question is used verbatim. Otherwise the question reads
// "Please provide your <name>", followed by " (<description>)" when a
// description is set and ". Examples: a, b, c" for up to three examples.
type Template struct{}

// Generate implements ports.QuestionGenerator. It never fails.
func (Template) Generate(_ context.Context, field domain.FieldSpec, _ map[string]any) (string, error) {
	return Phrase(field), nil
}

// Phrase builds the templated question for field.
func Phrase(field domain.FieldSpec) string {
	if field.CustomQuestion != "" {
		return field.CustomQuestion
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Please provide your %s", field.Name)
	if field.Description != "" {
		fmt.Fprintf(&b, " (%s)", field.Description)
	}
	if examples := field.TopExamples(); len(examples) > 0 {
		fmt.Fprintf(&b, ". Examples: %s", strings.Join(examples, ", "))
	}
	return b.String()
}

// Fallback asks primary first and substitutes the template when it fails
// or returns a blank question.
type Fallback struct {
	primary ports.QuestionGenerator
	backup  ports.QuestionGenerator
	logger  *slog.Logger
}

// WithFallback wraps primary. A nil backup means Template.
func WithFallback(primary, backup ports.QuestionGenerator, logger *slog.Logger) *Fallback {
	if backup == nil {
		backup = Template{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fallback{primary: primary, backup: backup, logger: logger}
}

// Generate implements ports.QuestionGenerator.
func (f *Fallback) Generate(ctx context.Context, field domain.FieldSpec, data map[string]any) (string, error) {
	q, err := f.primary.Generate(ctx, field, data)
	if err == nil && strings.TrimSpace(q) != "" {
		return q, nil
	}
	if err != nil {
		f.logger.Warn("question generator failed, using fallback", "field", field.Name, "err", err)
	}
	return f.backup.Generate(ctx, field, data)
}
