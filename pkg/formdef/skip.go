package formdef

import (
	"fmt"

	"github.com/aretw0/aiforms/pkg/domain"
)

// SkipRule is the declarative form of a skip predicate.
//
// Exactly one condition is set. Values are compared by their printed form, so
// `equals: false` matches a collected boolean false and `equals: 3` an integer 3.
type SkipRule struct {
	Field     string `mapstructure:"field" yaml:"field"`
	Equals    any    `mapstructure:"equals" yaml:"equals,omitempty"`
	NotEquals any    `mapstructure:"not_equals" yaml:"not_equals,omitempty"`
	Missing   bool   `mapstructure:"missing" yaml:"missing,omitempty"`
}

// Compile turns the rule into a domain.SkipFunc.
func (r *SkipRule) Compile() (domain.SkipFunc, error) {
	if r.Field == "" {
		return nil, &domain.ConfigurationError{Reason: "skip_if requires a field"}
	}

	conditions := 0
	if r.Equals != nil {
		conditions++
	}
	if r.NotEquals != nil {
		conditions++
	}
	if r.Missing {
		conditions++
	}
	if conditions != 1 {
		return nil, &domain.ConfigurationError{
			Field:  r.Field,
			Reason: fmt.Sprintf("skip_if on %q needs exactly one of equals, not_equals, missing", r.Field),
		}
	}

	field := r.Field
	switch {
	case r.Missing:
		return func(c map[string]any) bool {
			_, ok := c[field]
			return !ok
		}, nil
	case r.Equals != nil:
		want := fmt.Sprint(r.Equals)
		return func(c map[string]any) bool {
			v, ok := c[field]
			return ok && fmt.Sprint(v) == want
		}, nil
	default:
		want := fmt.Sprint(r.NotEquals)
		return func(c map[string]any) bool {
			v, ok := c[field]
			return !ok || fmt.Sprint(v) != want
		}, nil
	}
}
