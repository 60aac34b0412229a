package runtime

import (
	"context"
	"time"

	"github.com/aretw0/aiforms/pkg/domain"
)

func (s *Session) emitField(ctx context.Context, hook func(context.Context, *domain.FieldEvent), typ domain.EventType, field, msg string) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.FieldEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			Form:      s.name,
		},
		Field:    field,
		Progress: s.Progress(),
		Error:    msg,
	})
}

func (s *Session) emitComplete(ctx context.Context) {
	if s.hooks.OnComplete == nil {
		return
	}
	s.hooks.OnComplete(ctx, &domain.CompleteEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventComplete,
			Form:      s.name,
		},
		Collected: s.collected.len(),
		Skipped:   len(s.skipped),
	})
}
