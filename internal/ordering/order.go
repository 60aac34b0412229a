// Package ordering computes the linear visitation order of a form's fields.
package ordering

import (
	"cmp"
	"slices"

	"github.com/aretw0/aiforms/pkg/domain"
)

type color uint8

const (
	unvisited color = iota
	inProgress
	done
)

type frame struct {
	name string
	next int // index of the next dependency to inspect
}

// Candidates returns all field names stably sorted by priority rank.
// Declaration order breaks ties.
func Candidates(table *domain.Table) []string {
	names := table.Names()
	slices.SortStableFunc(names, func(a, b string) int {
		fa, _ := table.Get(a)
		fb, _ := table.Get(b)
		return cmp.Compare(fa.EffectivePriority().Rank(), fb.EffectivePriority().Rank())
	})
	return names
}

// Compute produces a permutation of all field names in which every in-table
// dependency precedes its dependent, driven by the priority-sorted candidates.
//
// The linearization is a depth-first visit using an explicit stack with
// three-colour marking. It emits the same order, and reports the same field on
// a cycle, as the recursive formulation: visit each candidate, recursively visit
// its not-yet-emitted dependencies in declaration order, then emit it.
func Compute(table *domain.Table) ([]string, error) {
	colors := make(map[string]color, table.Len())
	order := make([]string, 0, table.Len())

	for _, root := range Candidates(table) {
		if colors[root] == done {
			continue
		}

		colors[root] = inProgress
		stack := []frame{{name: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			spec, _ := table.Get(top.name)

			if top.next < len(spec.Dependencies) {
				dep := spec.Dependencies[top.next]
				top.next++

				if !table.Has(dep) {
					continue
				}
				switch colors[dep] {
				case inProgress:
					return nil, domain.CycleError(dep)
				case done:
					continue
				}

				colors[dep] = inProgress
				stack = append(stack, frame{name: dep})
				continue
			}

			colors[top.name] = done
			order = append(order, top.name)
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}
