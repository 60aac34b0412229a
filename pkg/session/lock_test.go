package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/pkg/domain"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr, err := NewManager()
	require.NoError(t, err)
	ctx := context.Background()
	count := 10000

	form, err := aiforms.New[map[string]any](aiforms.WithFields(domain.FieldSpec{Name: "name"}))
	require.NoError(t, err)

	for i := 0; i < count; i++ {
		s := mgr.Create("demo", form)
		_ = mgr.WithLock(ctx, s.ID, func(context.Context, *Session) error { return nil })
		_ = mgr.Delete(ctx, s.ID)
	}
	_ = mgr.WithLock(ctx, "missing", func(context.Context, *Session) error { return nil })

	if n := len(mgr.locks); n != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", n)
	}
	if n := mgr.Len(); n != 0 {
		t.Errorf("expected no sessions, got %d", n)
	}
}
