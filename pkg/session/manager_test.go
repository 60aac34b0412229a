package session_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/session"
)

func newForm(t *testing.T) *aiforms.Form[map[string]any] {
	t.Helper()
	form, err := aiforms.New[map[string]any](aiforms.WithFields(
		domain.FieldSpec{Name: "tags", Type: domain.TypeList},
		domain.FieldSpec{Name: "count", Type: domain.TypeInteger},
	))
	require.NoError(t, err)
	return form
}

func TestManager_CreateAndGet(t *testing.T) {
	mgr, err := session.NewManager()
	require.NoError(t, err)

	s := mgr.Create("tags", newForm(t))
	_, err = uuid.Parse(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tags", s.Form)

	got, err := mgr.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = mgr.Get("nope")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, mgr.Delete(context.Background(), s.ID))
	_, err = mgr.Get(s.ID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, mgr.Delete(context.Background(), s.ID), session.ErrSessionNotFound)
}

func TestManager_Eviction(t *testing.T) {
	mgr, err := session.NewManager(session.WithCapacity(2))
	require.NoError(t, err)

	first := mgr.Create("a", newForm(t))
	second := mgr.Create("b", newForm(t))
	_, _ = mgr.Get(first.ID) // first becomes most recently used
	third := mgr.Create("c", newForm(t))

	assert.Equal(t, 2, mgr.Len())
	assert.Equal(t, []string{first.ID, third.ID}, mgr.List())
	_, err = mgr.Get(second.ID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_InvalidCapacity(t *testing.T) {
	_, err := session.NewManager(session.WithCapacity(0))
	assert.Error(t, err)
}

func TestManager_Locking(t *testing.T) {
	mgr, err := session.NewManager()
	require.NoError(t, err)
	ctx := context.Background()

	s := mgr.Create("tags", newForm(t))
	require.NoError(t, mgr.WithLock(ctx, s.ID, func(ctx context.Context, s *session.Session) error {
		_, err := s.Conversation().Start(ctx)
		return err
	}))

	// Concurrent answers to the same field must not interleave inside the form.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(val int) {
			defer wg.Done()
			err := mgr.WithLock(ctx, s.ID, func(ctx context.Context, s *session.Session) error {
				form := s.Conversation()
				if form.CurrentField() != "tags" {
					return nil
				}
				_, err := form.Respond(ctx, fmt.Sprintf("t%d", val))
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	err = mgr.WithLock(ctx, s.ID, func(_ context.Context, s *session.Session) error {
		form := s.Conversation()
		assert.Equal(t, "count", form.CurrentField())
		assert.Len(t, form.Collected()["tags"], 1)
		assert.False(t, s.UpdatedAt.Before(s.CreatedAt))
		return nil
	})
	require.NoError(t, err)
}

func TestManager_CanceledContext(t *testing.T) {
	mgr, err := session.NewManager()
	require.NoError(t, err)
	s := mgr.Create("tags", newForm(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err = mgr.WithLock(ctx, s.ID, func(context.Context, *session.Session) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
