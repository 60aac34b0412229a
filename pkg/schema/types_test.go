package schema

import (
	"errors"
	"math/big"
	"testing"

	"github.com/aretw0/aiforms/pkg/domain"
)

func TestStringType(t *testing.T) {
	typ := String()

	if typ.Name() != "string" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "string")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{"hello", false},
		{"", false},
		{42, true},
		{3.14, true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestIntType(t *testing.T) {
	typ := Int()

	if typ.Name() != "integer" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "integer")
	}

	tests := []struct {
		value   any
		wantErr bool
	}{
		{42, false},
		{int8(42), false},
		{int64(42), false},
		{uint(7), false},
		{new(big.Int).Lsh(big.NewInt(1), 70), false},
		{float64(42), false},
		{float64(42.5), true},
		{"42", true},
		{true, true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestFloatType(t *testing.T) {
	typ := Float()

	tests := []struct {
		value   any
		wantErr bool
	}{
		{3.14, false},
		{float32(3.14), false},
		{42, false},
		{"3.14", true},
		{nil, true},
	}

	for _, tt := range tests {
		err := typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
	}
}

func TestBoolType(t *testing.T) {
	typ := Bool()

	if typ.Name() != "boolean" {
		t.Errorf("Name() = %q, want %q", typ.Name(), "boolean")
	}
	if err := typ.Validate(false); err != nil {
		t.Errorf("Validate(false) error = %v", err)
	}
	if err := typ.Validate("yes"); err == nil {
		t.Error("Validate(\"yes\") should fail")
	}
}

func TestAnyType(t *testing.T) {
	typ := Any()
	for _, v := range []any{nil, 1, "x", map[string]any{}} {
		if err := typ.Validate(v); err != nil {
			t.Errorf("Validate(%v) error = %v, want nil", v, err)
		}
	}
}

func TestSliceType(t *testing.T) {
	stringSlice := Slice(String())
	nested := Slice(Slice(String()))

	tests := []struct {
		typ     Type
		value   any
		wantErr bool
		desc    string
	}{
		{stringSlice, []string{"a", "b"}, false, "string slice"},
		{stringSlice, []string{}, false, "empty string slice"},
		{stringSlice, []any{"a", "b"}, false, "any slice with strings"},
		{stringSlice, []int{1, 2}, true, "slice of ints when expecting strings"},
		{stringSlice, "not a slice", true, "string instead of slice"},
		{stringSlice, nil, true, "nil"},
		{nested, [][]string{{"a"}, {"b", "c"}}, false, "nested string slice"},
	}

	for _, tt := range tests {
		err := tt.typ.Validate(tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate(%v) error = %v, wantErr %v", tt.desc, tt.value, err, tt.wantErr)
		}
	}
}

func TestCustomType(t *testing.T) {
	even := Custom("even", func(v any) error {
		i, ok := v.(int)
		if !ok || i%2 != 0 {
			return errors.New("not an even number")
		}
		return nil
	})

	if even.Name() != "even" {
		t.Errorf("Name() = %q, want %q", even.Name(), "even")
	}
	if err := even.Validate(4); err != nil {
		t.Errorf("Validate(4) error = %v", err)
	}
	if err := even.Validate(3); err == nil {
		t.Error("Validate(3) should fail")
	}
}

func TestForTag(t *testing.T) {
	tests := []struct {
		tag  domain.TypeTag
		want string
	}{
		{domain.TypeString, "string"},
		{domain.TypeInteger, "integer"},
		{domain.TypeFloat, "float"},
		{domain.TypeBoolean, "boolean"},
		{domain.TypeList, "[string]"},
		{domain.TypeOther, "other"},
		{"", "string"},
	}

	for _, tt := range tests {
		if got := ForTag(tt.tag).Name(); got != tt.want {
			t.Errorf("ForTag(%q).Name() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		input    string
		wantErr  bool
		wantName string
	}{
		{"string", false, "string"},
		{"int", false, "integer"},
		{"integer", false, "integer"},
		{"float", false, "float"},
		{"bool", false, "boolean"},
		{"[string]", false, "[string]"},
		{"[int]", false, "[integer]"},
		{"[[string]]", false, "[[string]]"},
		{"list", false, "[string]"},
		{"", true, ""},
		{"invalid", true, ""},
		{"[invalid]", true, ""},
	}

	for _, tt := range tests {
		typ, err := ParseType(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && typ.Name() != tt.wantName {
			t.Errorf("ParseType(%q) Name() = %q, want %q", tt.input, typ.Name(), tt.wantName)
		}
	}
}
