package formdef

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/aiforms/pkg/answer"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/ports"
)

// StructSource derives field specs from the exported fields of a struct type.
//
// Field names come from the json tag. The Go kind gives the field type and a
// pointer or `omitempty` makes the field optional. Supported tags:
//
//	desc:"Email address"
//	default:"free"
//	form:"priority=high;cluster=contact;depends=name;question=Where can we reach you?;hint=name@host;examples=a@b.c,x@y.z"
type StructSource struct {
	typ reflect.Type
}

// FromStruct returns the schema source of T, which must be a struct.
func FromStruct[T any]() ports.SchemaSource {
	return StructSource{typ: reflect.TypeFor[T]()}
}

// Fields implements ports.SchemaSource.
func (s StructSource) Fields() ([]domain.FieldSpec, error) {
	t := s.typ
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, &domain.ConfigurationError{Reason: fmt.Sprintf("%s is not a struct", t)}
	}

	specs := make([]domain.FieldSpec, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		spec, ok, err := structField(sf)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t.Name(), sf.Name, err)
		}
		if ok {
			specs = append(specs, spec)
		}
	}
	return specs, nil
}

func structField(sf reflect.StructField) (domain.FieldSpec, bool, error) {
	name, omitempty := jsonName(sf)
	if name == "-" {
		return domain.FieldSpec{}, false, nil
	}

	ft := sf.Type
	optional := omitempty
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
		optional = true
	}

	spec := domain.FieldSpec{
		Name:        name,
		Type:        kindTag(ft),
		Description: sf.Tag.Get("desc"),
	}

	if raw, ok := sf.Tag.Lookup("default"); ok {
		v, err := answer.Fallback(spec, raw)
		if err != nil {
			return spec, false, fmt.Errorf("bad default %q: %w", raw, err)
		}
		spec.Default = v
		optional = true
	}
	spec.Required = !optional

	if raw, ok := sf.Tag.Lookup("form"); ok {
		md, err := DecodeMetadata(parseFormTag(raw))
		if err != nil {
			return spec, false, err
		}
		if err := md.Apply(&spec); err != nil {
			return spec, false, err
		}
	}
	return spec, true, nil
}

func jsonName(sf reflect.StructField) (string, bool) {
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "-", false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = sf.Name
	}
	return name, strings.Contains(opts, "omitempty")
}

func kindTag(t reflect.Type) domain.TypeTag {
	switch t.Kind() {
	case reflect.String:
		return domain.TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return domain.TypeInteger
	case reflect.Float32, reflect.Float64:
		return domain.TypeFloat
	case reflect.Bool:
		return domain.TypeBoolean
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.String {
			return domain.TypeList
		}
	}
	return domain.TypeOther
}

// parseFormTag splits "k=v;k2=a,b" into a metadata bag.
// List-valued keys are split on commas.
func parseFormTag(raw string) map[string]any {
	bag := map[string]any{}
	for _, part := range strings.Split(raw, ";") {
		key, value, found := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !found {
			bag[key] = ""
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "examples", "depends", "dependencies":
			bag[key] = answer.SplitList(value)
		default:
			bag[key] = value
		}
	}
	return bag
}
