package formdef

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Catalog is a named set of form definitions.
type Catalog struct {
	defs map[string]*Definition
}

// NewCatalog creates a catalog from definitions. Names must be unique.
func NewCatalog(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if err := c.Add(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LoadDir loads every *.yaml / *.yml file of dir.
// A definition without a name is named after its file.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read forms directory: %w", err)
	}

	c := &Catalog{defs: map[string]*Definition{}}
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		def, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if def.Name == "" {
			def.Name = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		if err := c.Add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a definition.
func (c *Catalog) Add(d *Definition) error {
	if d.Name == "" {
		return fmt.Errorf("form definition has no name")
	}
	if _, dup := c.defs[d.Name]; dup {
		return fmt.Errorf("duplicate form %q", d.Name)
	}
	c.defs[d.Name] = d
	return nil
}

// Get returns the named definition.
func (c *Catalog) Get(name string) (*Definition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Names returns the form names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for n := range c.defs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of forms.
func (c *Catalog) Len() int { return len(c.defs) }
