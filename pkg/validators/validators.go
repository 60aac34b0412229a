// Package validators provides reusable value checks for the Validate method of
// form models.
//
//	func (p *Profile) Validate() error {
//		return validators.Check(
//			validators.Field("email", p.Email, validators.Email()),
//			validators.Field("age", p.Age, validators.Range(13, 120)),
//		)
//	}
package validators

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/aretw0/aiforms/pkg/domain"
)

// Validator checks a single value.
type Validator interface {
	Validate(value any) error
}

// Func adapts a predicate to a Validator. A false result fails with msg.
func Func(ok func(any) bool, msg string) Validator {
	return funcValidator{ok: ok, msg: msg}
}

type funcValidator struct {
	ok  func(any) bool
	msg string
}

func (v funcValidator) Validate(value any) error {
	if !v.ok(value) {
		return errors.New(v.msg)
	}
	return nil
}

// Email accepts strings of the form local@domain where the domain has a dot.
func Email() Validator {
	return emailValidator{}
}

type emailValidator struct{}

func isEmail(value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	parts := strings.Split(s, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	return strings.Contains(parts[1], ".")
}

func (emailValidator) Validate(value any) error {
	if !isEmail(value) {
		return fmt.Errorf("'%v' is not a valid email address", value)
	}
	return nil
}

// RangeValidator bounds numeric values. Nil bounds are open.
// Numeric strings are accepted.
type RangeValidator struct {
	Min *float64
	Max *float64
}

// Range accepts numbers in [lo, hi].
func Range(lo, hi float64) *RangeValidator {
	return &RangeValidator{Min: &lo, Max: &hi}
}

// Min accepts numbers no lower than lo.
func Min(lo float64) *RangeValidator {
	return &RangeValidator{Min: &lo}
}

// Max accepts numbers no greater than hi.
func Max(hi float64) *RangeValidator {
	return &RangeValidator{Max: &hi}
}

func (v *RangeValidator) Validate(value any) error {
	n, ok := toFloat(value)
	if !ok || (v.Min != nil && n < *v.Min) || (v.Max != nil && n > *v.Max) {
		return errors.New(v.message())
	}
	return nil
}

func (v *RangeValidator) message() string {
	switch {
	case v.Min != nil && v.Max != nil:
		return fmt.Sprintf("Value must be between %s and %s", num(*v.Min), num(*v.Max))
	case v.Min != nil:
		return fmt.Sprintf("Value must be at least %s", num(*v.Min))
	case v.Max != nil:
		return fmt.Sprintf("Value must be at most %s", num(*v.Max))
	}
	return "Invalid numeric value"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case *big.Int:
		if v == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// Field runs validators against one field's value and stops at the first
// failure, reported as a *domain.ValidationError for that field.
func Field(name string, value any, vs ...Validator) error {
	for _, v := range vs {
		if err := v.Validate(value); err != nil {
			return &domain.ValidationError{Field: name, Reason: err.Error()}
		}
	}
	return nil
}

// Check joins the failures of several Field results. It returns nil when all
// of them passed.
func Check(results ...error) error {
	return errors.Join(results...)
}
