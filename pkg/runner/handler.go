package runner

import (
	"context"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents a step to the user.
	// Returns true if the step asks a question and an answer should be read.
	Output(ctx context.Context, env *domain.Envelope) (bool, error)

	// Input reads a response from the user.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (e.g. status updates).
	// This is distinct from question rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// Conversation is the part of a form the Runner drives.
type Conversation interface {
	Start(ctx context.Context) (*domain.Envelope, error)
	Respond(ctx context.Context, answer string) (*domain.Envelope, error)
}

type formSteps[T any] struct {
	form *aiforms.Form[T]
}

// Steps adapts a typed form to Conversation. The envelope's Data holds the *T
// once the form completes.
func Steps[T any](form *aiforms.Form[T]) Conversation {
	return formSteps[T]{form: form}
}

func (s formSteps[T]) Start(ctx context.Context) (*domain.Envelope, error) {
	resp, err := s.form.Start(ctx)
	if err != nil {
		return nil, err
	}
	return &resp.Envelope, nil
}

func (s formSteps[T]) Respond(ctx context.Context, answer string) (*domain.Envelope, error) {
	resp, err := s.form.Respond(ctx, answer)
	if err != nil {
		return nil, err
	}
	return &resp.Envelope, nil
}
