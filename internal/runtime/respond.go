package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/schema"
)

// Start begins the conversation at the first live field.
// Calling it again resets the session and discards collected answers.
func (s *Session) Start(ctx context.Context) (*domain.Envelope, error) {
	s.started = true
	s.complete = false
	s.result = nil
	s.position = 0
	s.collected = newCollected()
	clear(s.skipped)

	s.logger.Debug("form started", "form", s.name, "fields", len(s.order))
	return s.nextQuestion(ctx)
}

// Respond feeds the user's answer for the current field.
// Routine input mistakes are reported in the envelope, never as an error.
func (s *Session) Respond(ctx context.Context, raw string) (*domain.Envelope, error) {
	if !s.started {
		return nil, domain.ErrNotStarted
	}
	if s.complete {
		return s.completionEnvelope(), nil
	}
	if s.position >= len(s.order) {
		return s.finish(ctx)
	}

	current := s.order[s.position]
	spec, _ := s.table.Get(current)

	value, err := s.answers.Parse(ctx, *spec, raw, s.mergedData())
	if err != nil {
		return s.reject(ctx, spec, err)
	}

	s.collected.set(current, value)
	delete(s.skipped, current)
	s.position++
	s.emitField(ctx, s.hooks.OnAnswer, domain.EventAnswer, current, "")
	s.logger.Debug("answer accepted", "form", s.name, "field", current, "progress", s.Progress())

	return s.nextQuestion(ctx)
}

// reject keeps the cursor on spec and asks again.
func (s *Session) reject(ctx context.Context, spec *domain.FieldSpec, cause error) (*domain.Envelope, error) {
	msg := cause.Error()
	s.emitField(ctx, s.hooks.OnReject, domain.EventReject, spec.Name, msg)
	s.logger.Debug("answer rejected", "form", s.name, "field", spec.Name, "err", cause)

	question, err := s.generator.Generate(ctx, *spec, s.mergedData())
	if err != nil {
		return nil, fmt.Errorf("failed to generate question for %s: %w", spec.Name, err)
	}

	env := s.envelope()
	env.Question = domain.StringPtr(question)
	env.CurrentField = domain.StringPtr(spec.Name)
	env.Errors = []string{msg}
	env.RetryPrompt = domain.StringPtr(fmt.Sprintf("Please provide a valid %s. %s", spec.Name, msg))
	return env, nil
}

// nextQuestion advances past skipped fields and asks the next live one.
// Fields answered before a reconfiguration moved them are passed over too.
// Running off the end of the order hands over to finish.
func (s *Session) nextQuestion(ctx context.Context) (*domain.Envelope, error) {
	for s.position < len(s.order) {
		current := s.order[s.position]
		spec, _ := s.table.Get(current)

		if s.collected.has(current) {
			s.position++
			continue
		}
		if spec.ShouldSkip(s.collected.snapshot()) {
			s.skipped[current] = true
			s.position++
			s.emitField(ctx, s.hooks.OnSkip, domain.EventSkip, current, "")
			s.logger.Debug("field skipped", "form", s.name, "field", current)
			continue
		}

		question, err := s.generator.Generate(ctx, *spec, s.mergedData())
		if err != nil {
			return nil, fmt.Errorf("failed to generate question for %s: %w", current, err)
		}

		env := s.envelope()
		env.Question = domain.StringPtr(question)
		env.CurrentField = domain.StringPtr(current)
		s.emitField(ctx, s.hooks.OnQuestion, domain.EventQuestion, current, "")
		return env, nil
	}

	return s.finish(ctx)
}

// finish validates and materializes the answers. On failure the cursor rolls
// back to the last field that was not skipped and the errors are surfaced
// against it.
func (s *Session) finish(ctx context.Context) (*domain.Envelope, error) {
	result, err := s.build(ctx)
	if err == nil {
		s.complete = true
		s.result = result
		s.position = len(s.order)
		s.emitComplete(ctx)
		s.logger.Info("form completed", "form", s.name, "collected", s.collected.len(), "skipped", len(s.skipped))
		return s.completionEnvelope(), nil
	}

	msgs := validationMessages(err)
	s.logger.Debug("aggregate validation failed", "form", s.name, "err", err)

	env := s.envelope()
	env.Errors = msgs

	last := s.lastAnswerable()
	if last < 0 {
		s.position = len(s.order)
		env.Progress = s.Progress()
		env.Question = domain.StringPtr("Please check your input")
		env.RetryPrompt = domain.StringPtr("Please check your input. " + strings.Join(msgs, "; "))
		return env, nil
	}

	s.position = last
	field := s.order[last]
	s.emitField(ctx, s.hooks.OnReject, domain.EventReject, field, strings.Join(msgs, "; "))

	env.Progress = s.Progress()
	env.Question = domain.StringPtr(fmt.Sprintf("Please provide a valid %s", field))
	env.CurrentField = domain.StringPtr(field)
	env.RetryPrompt = domain.StringPtr(fmt.Sprintf("Please provide a valid %s. %s", field, strings.Join(msgs, "; ")))
	return env, nil
}

// build runs aggregate validation and then the materializer.
func (s *Session) build(ctx context.Context) (any, error) {
	data := s.collected.snapshot()

	exempt := make([]string, 0, len(s.skipped))
	for name := range s.skipped {
		exempt = append(exempt, name)
	}
	if err := schema.Validate(schema.FromTable(s.table), data, schema.Exempt(exempt...)); err != nil {
		return nil, err
	}

	for _, spec := range s.table.Specs() {
		if _, ok := data[spec.Name]; !ok && spec.Default != nil {
			data[spec.Name] = spec.Default
		}
	}
	return s.materialize(ctx, data)
}

// lastAnswerable returns the index of the last field in the order that was not
// skipped, or -1.
func (s *Session) lastAnswerable() int {
	for i := len(s.order) - 1; i >= 0; i-- {
		if !s.skipped[s.order[i]] {
			return i
		}
	}
	return -1
}

func (s *Session) envelope() *domain.Envelope {
	env := domain.NewEnvelope()
	env.Progress = s.Progress()
	env.CollectedFields = s.collected.names()
	return env
}

func (s *Session) completionEnvelope() *domain.Envelope {
	env := s.envelope()
	env.IsComplete = true
	env.Progress = 100.0
	env.Data = s.result
	return env
}

func validationMessages(err error) []string {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Messages()
	}
	return schema.Messages(err)
}
