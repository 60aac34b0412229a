// Package answer turns raw user text into typed field values.
//
// A Pipeline first delegates to an optional AnswerParser collaborator and, when
// that is absent or fails, applies Fallback: a deterministic parser driven by
// the field's type tag. Fallback is total for string and opaque fields, so a
// misbehaving external parser never blocks form completion.
package answer

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/aretw0/aiforms/pkg/domain"
)

var (
	truthy = map[string]bool{"yes": true, "true": true, "1": true, "y": true}
	falsy  = map[string]bool{"no": true, "false": true, "0": true, "n": true}
)

// Fallback parses raw according to the field's type tag.
// The input is trimmed first. Failures are *domain.ValidationError.
func Fallback(field domain.FieldSpec, raw string) (any, error) {
	value := strings.TrimSpace(raw)

	switch field.Type {
	case domain.TypeList:
		return SplitList(value), nil

	case domain.TypeInteger:
		n, ok := ParseInt(value)
		if !ok {
			return nil, reject(field, "Expected a number, got: %s", value)
		}
		return n, nil

	case domain.TypeFloat:
		digits, ok := stripDigitSeparators(value)
		f, err := strconv.ParseFloat(digits, 64)
		if !ok || err != nil {
			return nil, reject(field, "Expected a decimal number, got: %s", value)
		}
		return f, nil

	case domain.TypeBoolean:
		b, ok := ParseBool(value)
		if !ok {
			return nil, reject(field, "Expected yes/no, got: %s", value)
		}
		return b, nil
	}

	return value, nil
}

// ParseInt parses a base-10 integer. Single underscores between digits are
// accepted. Values outside the int range come back as *big.Int.
func ParseInt(value string) (any, bool) {
	digits, ok := stripDigitSeparators(strings.TrimSpace(value))
	if !ok {
		return nil, false
	}
	n, err := strconv.Atoi(digits)
	if err == nil {
		return n, true
	}
	if errors.Is(err, strconv.ErrRange) {
		if b, ok := new(big.Int).SetString(digits, 10); ok {
			return b, true
		}
	}
	return nil, false
}

// stripDigitSeparators removes underscores that sit between two digits.
// Any other underscore makes the number malformed.
func stripDigitSeparators(value string) (string, bool) {
	if !strings.Contains(value, "_") {
		return value, true
	}
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '_' {
			b.WriteByte(c)
			continue
		}
		if i == 0 || i == len(value)-1 || !isDigit(value[i-1]) || !isDigit(value[i+1]) {
			return "", false
		}
	}
	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// SplitList splits comma-separated text into trimmed items.
// Text without a comma is a single item; empty text is an empty list.
func SplitList(value string) []string {
	value = strings.TrimSpace(value)
	if strings.Contains(value, ",") {
		parts := strings.Split(value, ",")
		items := make([]string, len(parts))
		for i, p := range parts {
			items[i] = strings.TrimSpace(p)
		}
		return items
	}
	if value != "" {
		return []string{value}
	}
	return []string{}
}

// ParseBool matches yes/true/1/y and no/false/0/n, case-insensitively.
func ParseBool(value string) (bool, bool) {
	lower := strings.ToLower(strings.TrimSpace(value))
	if truthy[lower] {
		return true, true
	}
	if falsy[lower] {
		return false, true
	}
	return false, false
}

func reject(field domain.FieldSpec, format string, args ...any) error {
	return &domain.ValidationError{
		Field:  field.Name,
		Reason: fmt.Sprintf(format, args...),
	}
}
