package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/aiforms/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every step at debug level and
// completions at info level. Rejections carry the validation message.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	step := func(ctx context.Context, e *domain.FieldEvent) {
		attrs := []any{"form", e.Form, "field", e.Field, "progress", e.Progress}
		if e.Error != "" {
			attrs = append(attrs, "reason", e.Error)
		}
		logger.DebugContext(ctx, "form_"+string(e.Type), attrs...)
	}
	return domain.LifecycleHooks{
		OnQuestion: step,
		OnSkip:     step,
		OnAnswer:   step,
		OnReject:   step,
		OnComplete: func(ctx context.Context, e *domain.CompleteEvent) {
			logger.InfoContext(ctx, "form_complete",
				"form", e.Form,
				"collected", e.Collected,
				"skipped", e.Skipped,
			)
		},
	}
}
