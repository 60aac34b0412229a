package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/aiforms/internal/config"
	"github.com/aretw0/aiforms/internal/presentation/graph"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/session"
)

// PrintOrder writes the order in which the form's questions will be asked.
func PrintOrder(w io.Writer, cfg *config.Config, ref string) error {
	def, err := resolveDefinition(ref, cfg.FormsDir)
	if err != nil {
		return err
	}
	info, err := session.Describe(def)
	if err != nil {
		return err
	}

	specs := make(map[string]domain.FieldSpec, len(info.Fields))
	for _, spec := range info.Fields {
		specs[spec.Name] = spec
	}
	for i, name := range info.Order {
		spec := specs[name]
		line := fmt.Sprintf("%2d. %-20s %-8s %s", i+1, name, spec.Type, spec.EffectivePriority())
		if len(spec.Dependencies) > 0 {
			line += " after " + strings.Join(spec.Dependencies, ", ")
		}
		if spec.SkipIf != nil {
			line += " (conditional)"
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}

// PrintGraph writes the form's dependency graph as a Mermaid flowchart.
func PrintGraph(w io.Writer, cfg *config.Config, ref string) error {
	def, err := resolveDefinition(ref, cfg.FormsDir)
	if err != nil {
		return err
	}
	info, err := session.Describe(def)
	if err != nil {
		return err
	}
	fmt.Fprint(w, graph.GenerateMermaid(info.Fields, info.Order, nil))
	return nil
}

// Validate checks each form (or every form of the forms directory when refs
// is empty): it must parse and have an acyclic dependency graph.
func Validate(w io.Writer, cfg *config.Config, refs []string) error {
	if len(refs) == 0 {
		files, err := formFiles(cfg.FormsDir)
		if err != nil {
			return err
		}
		refs = files
	}

	var failed int
	for _, ref := range refs {
		def, err := resolveDefinition(ref, cfg.FormsDir)
		if err == nil {
			_, err = session.Describe(def)
		}
		if err != nil {
			failed++
			fmt.Fprintf(w, "✗ %s: %v\n", ref, err)
			continue
		}
		fmt.Fprintf(w, "✓ %s\n", def.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d forms are invalid", failed, len(refs))
	}
	return nil
}
