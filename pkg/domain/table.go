package domain

import "fmt"

// Table is the per-session registry of field metadata, in declaration order.
type Table struct {
	names []string
	specs map[string]*FieldSpec
}

// NewTable builds a table from specs. Names must be non-empty and unique.
func NewTable(specs ...FieldSpec) (*Table, error) {
	t := &Table{
		names: make([]string, 0, len(specs)),
		specs: make(map[string]*FieldSpec, len(specs)),
	}
	for _, spec := range specs {
		if spec.Name == "" {
			return nil, &ConfigurationError{Reason: "field name must not be empty"}
		}
		if _, dup := t.specs[spec.Name]; dup {
			return nil, &ConfigurationError{Field: spec.Name, Reason: "duplicate field name"}
		}
		if spec.Type == "" {
			spec.Type = TypeString
		}
		if err := normalizePriority(&spec); err != nil {
			return nil, err
		}
		s := spec.Clone()
		t.names = append(t.names, s.Name)
		t.specs[s.Name] = &s
	}
	return t, nil
}

// Names returns field names in declaration order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// Len returns the number of fields.
func (t *Table) Len() int { return len(t.names) }

// Has reports whether a field is declared.
func (t *Table) Has(name string) bool {
	_, ok := t.specs[name]
	return ok
}

// Get returns the spec for name. The pointer is owned by the table.
func (t *Table) Get(name string) (*FieldSpec, bool) {
	s, ok := t.specs[name]
	return s, ok
}

// Update applies fn to a copy of the named spec and stores the result.
// The table is unchanged when the result carries an unknown priority.
func (t *Table) Update(name string, fn func(*FieldSpec)) error {
	current, ok := t.specs[name]
	if !ok {
		return &ConfigurationError{Field: name, Reason: fmt.Sprintf("field '%s' not found in model", name)}
	}
	next := current.Clone()
	fn(&next)
	if err := normalizePriority(&next); err != nil {
		return err
	}
	t.specs[name] = &next
	return nil
}

func normalizePriority(spec *FieldSpec) error {
	p, err := ParsePriority(string(spec.Priority))
	if err != nil {
		return &ConfigurationError{Field: spec.Name, Reason: fmt.Sprintf("invalid priority %q for field '%s'", spec.Priority, spec.Name)}
	}
	spec.Priority = p
	return nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		names: t.Names(),
		specs: make(map[string]*FieldSpec, len(t.specs)),
	}
	for name, spec := range t.specs {
		s := spec.Clone()
		c.specs[name] = &s
	}
	return c
}

// Specs returns copies of all specs in declaration order.
func (t *Table) Specs() []FieldSpec {
	out := make([]FieldSpec, 0, len(t.names))
	for _, name := range t.names {
		out = append(out, t.specs[name].Clone())
	}
	return out
}
