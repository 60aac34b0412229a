package runtime

import (
	"fmt"

	"github.com/aretw0/aiforms/internal/ordering"
	"github.com/aretw0/aiforms/pkg/domain"
)

// Configure applies fn to the named field and recomputes the order.
//
// An unknown name or a resulting dependency cycle is a configuration error and
// leaves the previous configuration in place. After a successful change the
// cursor moves to the first field of the new order that is neither collected
// nor skipped, so no answered field is asked twice.
func (s *Session) Configure(name string, fn func(*domain.FieldSpec)) error {
	next := s.table.Clone()
	if err := next.Update(name, fn); err != nil {
		return err
	}

	order, err := ordering.Compute(next)
	if err != nil {
		return fmt.Errorf("failed to reconfigure %s: %w", name, err)
	}

	s.table = next
	s.order = order
	if s.started && !s.complete {
		s.position = s.resumePosition()
	}

	s.logger.Debug("field reconfigured", "form", s.name, "field", name, "order", order, "position", s.position)
	return nil
}

func (s *Session) resumePosition() int {
	for i, name := range s.order {
		if !s.collected.has(name) && !s.skipped[name] {
			return i
		}
	}
	return len(s.order)
}

// Table returns a copy of the current field table.
func (s *Session) Table() *domain.Table {
	return s.table.Clone()
}

// Spec returns a copy of the named field spec.
func (s *Session) Spec(name string) (domain.FieldSpec, bool) {
	spec, ok := s.table.Get(name)
	if !ok {
		return domain.FieldSpec{}, false
	}
	return spec.Clone(), true
}
