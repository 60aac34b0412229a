package schema

import (
	"fmt"
	"math/big"
	"reflect"

	"github.com/aretw0/aiforms/pkg/domain"
)

// Type defines the contract for value validation.
// Implementations determine how collected answers are checked against a field type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "integer").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return string(domain.TypeString) }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return string(domain.TypeInteger) }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, *big.Int:
		return nil
	case float64:
		// Whole floats come back from JSON-speaking parsers.
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected integer, got %v", v)
	default:
		return fmt.Errorf("expected integer, got %T", value)
	}
}

// FloatType validates floating-point values. Integers are accepted.
type FloatType struct{}

func (t *FloatType) Name() string { return string(domain.TypeFloat) }

func (t *FloatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return string(domain.TypeBoolean) }

func (t *BoolType) Validate(value any) error {
	if _, ok := value.(bool); !ok {
		return fmt.Errorf("expected boolean, got %T", value)
	}
	return nil
}

// AnyType accepts every value, including nil.
type AnyType struct{}

func (t *AnyType) Name() string { return string(domain.TypeOther) }

func (t *AnyType) Validate(any) error { return nil }

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return fmt.Errorf("expected list, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Any creates a validator that accepts everything.
func Any() Type { return &AnyType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ForTag returns the validator of a field type tag.
func ForTag(tag domain.TypeTag) Type {
	switch tag {
	case domain.TypeString, "":
		return String()
	case domain.TypeInteger:
		return Int()
	case domain.TypeFloat:
		return Float()
	case domain.TypeBoolean:
		return Bool()
	case domain.TypeList:
		return Slice(String())
	default:
		return Any()
	}
}

// ParseType converts a type name to a Type.
// Scalars accept the field type names and their aliases; "[x]" is a slice of x.
func ParseType(typeStr string) (Type, error) {
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elemType), nil
	}

	tag, err := domain.ParseTypeTag(typeStr)
	if err != nil || typeStr == "" {
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
	return ForTag(tag), nil
}
