package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/aiforms/pkg/domain"
)

// GraphOverlay contains conversation state to visualize on the graph.
type GraphOverlay struct {
	Collected []string
	Current   string
}

// GenerateMermaid produces a Mermaid flowchart of a form. Nodes are labelled
// with their position in order; edges run from each dependency to its
// dependent. Shapes follow the field:
// - Critical: ((Circle))
// - Conditional (skip_if): {{Hexagon}}
// - Required: [/Parallelogram/]
// - Default: [Rectangle]
// Overlay styles (collected/current) are applied when overlay is not nil.
func GenerateMermaid(specs []domain.FieldSpec, order []string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	byName := make(map[string]domain.FieldSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	for i, name := range order {
		spec, ok := byName[name]
		if !ok {
			continue
		}
		safeID := sanitizeMermaidID(name)

		opener, closer := "[", "]"
		switch {
		case spec.EffectivePriority() == domain.PriorityCritical:
			opener, closer = "((", "))"
		case spec.SkipIf != nil:
			opener, closer = "{{", "}}"
		case spec.Required:
			opener, closer = "[/", "/]"
		}

		label := fmt.Sprintf("%d. %s", i+1, name)
		if spec.Type != "" && spec.Type != domain.TypeString {
			label += " <br/> " + string(spec.Type)
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, strings.ReplaceAll(label, "\"", "'"), closer)
	}

	for _, name := range order {
		spec := byName[name]
		for _, dep := range spec.Dependencies {
			if _, ok := byName[dep]; !ok {
				continue
			}
			arrow := "-->"
			if spec.SkipIf != nil {
				arrow = "-.->"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(dep), arrow, sanitizeMermaidID(name))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef collected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Collected {
			safeID := sanitizeMermaidID(name)
			if safeID == "" || seen[safeID] || !slices.Contains(order, name) {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s collected;\n", safeID)
		}

		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
