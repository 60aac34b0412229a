// Package schema checks a set of collected answers against the types of a form.
//
// It defines a small type system (string, integer, float, boolean, lists and
// custom validators) and an ordered Schema of fields. A schema is usually derived
// from a field table; it is checked once all questions have been answered, before
// the answers are materialized into the caller's output type.
//
// Basic usage:
//
//	s := schema.Schema{
//	    {Key: "name", Type: schema.String(), Required: true},
//	    {Key: "age", Type: schema.Int()},
//	    {Key: "skills", Type: schema.Slice(schema.String())},
//	}
//
//	data := map[string]any{
//	    "name":   "Alice",
//	    "age":    30,
//	    "skills": []string{"go", "sql"},
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, msg := range schema.Messages(err) {
//	        // one message per failed field
//	    }
//	}
//
// Required fields that were deliberately bypassed can be exempted:
//
//	err := schema.Validate(s, data, schema.Exempt("company"))
//
// Custom validators can be registered for domain-specific checks:
//
//	positive := schema.Custom("positive_int", func(v any) error {
//	    i, ok := v.(int)
//	    if !ok || i <= 0 {
//	        return fmt.Errorf("must be a positive integer")
//	    }
//	    return nil
//	})
package schema
