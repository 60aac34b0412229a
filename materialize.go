package aiforms

import (
	"context"
	"errors"
	"maps"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/aiforms/internal/runtime"
	"github.com/aretw0/aiforms/pkg/domain"
)

// Validator is implemented by output types with model-level rules
// (ranges, formats, cross-field checks). It runs after the answers are decoded.
type Validator interface {
	Validate() error
}

// materializer decodes the answers into a fresh *T.
// Maps receive a copy of the answers; structs are decoded through their json
// tag names and reject keys they do not declare.
func materializer[T any]() runtime.Materializer {
	return func(_ context.Context, data map[string]any) (any, error) {
		out := new(T)

		if m, ok := any(out).(*map[string]any); ok {
			*m = maps.Clone(data)
		} else if err := decode(data, out); err != nil {
			return nil, err
		}

		if v, ok := any(out).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, asValidationError(err)
			}
		}
		return out, nil
	}
}

func decode(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(data); err != nil {
		var mErr *mapstructure.Error
		if errors.As(err, &mErr) {
			return &domain.ValidationError{Reason: err.Error(), Details: mErr.Errors}
		}
		return &domain.ValidationError{Reason: err.Error()}
	}
	return nil
}

func asValidationError(err error) error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		if len(errs) == 1 {
			return asValidationError(errs[0])
		}
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, e.Error())
		}
		return &domain.ValidationError{Reason: err.Error(), Details: details}
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return vErr
	}
	return &domain.ValidationError{Reason: err.Error()}
}
