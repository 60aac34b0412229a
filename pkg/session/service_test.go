package session_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/formdef"
	"github.com/aretw0/aiforms/pkg/ports"
	"github.com/aretw0/aiforms/pkg/session"
)

const signupYAML = `
name: signup
fields:
  - name: email
    description: Email address
    required: true
  - name: age
    type: integer
`

func newService(t *testing.T, opts ...aiforms.Option) *session.Service {
	t.Helper()
	def, err := formdef.Parse([]byte(signupYAML))
	require.NoError(t, err)
	catalog, err := formdef.NewCatalog(def)
	require.NoError(t, err)
	mgr, err := session.NewManager()
	require.NoError(t, err)
	return session.NewService(catalog, mgr, opts...)
}

func TestService_Conversation(t *testing.T) {
	ctx := context.Background()
	var completed int
	svc := newService(t, aiforms.WithLifecycleHooks(domain.LifecycleHooks{
		OnComplete: func(context.Context, *domain.CompleteEvent) { completed++ },
	}))

	snap, err := svc.Open(ctx, "signup", nil)
	require.NoError(t, err)
	assert.Equal(t, "signup", snap.Form)
	assert.Equal(t, domain.StatusInProgress, snap.Status)
	assert.Equal(t, []string{"email", "age"}, snap.Order)
	assert.Equal(t, "Please provide your email (Email address)", snap.QuestionText())

	snap, err = svc.Answer(ctx, snap.ID, "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "age", snap.Field())

	snap, err = svc.Answer(ctx, snap.ID, "old")
	require.NoError(t, err)
	assert.Equal(t, []string{"Expected a number, got: old"}, snap.Errors)

	snap, err = svc.Answer(ctx, snap.ID, "41")
	require.NoError(t, err)
	assert.True(t, snap.IsComplete)
	assert.Equal(t, domain.StatusComplete, snap.Status)
	assert.Equal(t, 1, completed)

	got, err := svc.Get(ctx, snap.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), got.Progress)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, snap.ID, decoded["session_id"])
	assert.Equal(t, map[string]any{"email": "a@b.co", "age": float64(41)}, decoded["data"])

	require.NoError(t, svc.Close(ctx, snap.ID))
	_, err = svc.Get(ctx, snap.ID)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestService_OpenWithContext(t *testing.T) {
	ctx := context.Background()
	var seen map[string]any
	svc := newService(t, aiforms.WithGenerator(ports.QuestionGeneratorFunc(
		func(_ context.Context, f domain.FieldSpec, data map[string]any) (string, error) {
			seen = data
			return "Your " + f.Name + "?", nil
		})))

	snap, err := svc.Open(ctx, "signup", map[string]any{"channel": "web"})
	require.NoError(t, err)
	assert.Equal(t, "Your email?", snap.QuestionText())
	assert.Equal(t, "web", seen["channel"])

	other, err := svc.Open(ctx, "signup", nil)
	require.NoError(t, err)
	assert.NotEqual(t, snap.ID, other.ID)
	assert.NotContains(t, seen, "channel")
}

func TestService_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.Open(ctx, "missing", nil)
	assert.ErrorIs(t, err, session.ErrFormNotFound)

	_, err = svc.Answer(ctx, "nope", "x")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	assert.Equal(t, []string{"signup"}, svc.Catalog().Names())
}

func TestService_Describe(t *testing.T) {
	svc := newService(t)

	info, err := svc.Describe("signup")
	require.NoError(t, err)
	assert.Equal(t, "signup", info.Name)
	assert.Equal(t, []string{"email", "age"}, info.Order)
	require.Len(t, info.Fields, 2)
	assert.Equal(t, domain.TypeInteger, info.Fields[1].Type)

	raw, err := json.Marshal(info.Schema)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key":"email","type":"string","required":true},{"key":"age","type":"integer","required":false}]`, string(raw))

	_, err = svc.Describe("missing")
	assert.ErrorIs(t, err, session.ErrFormNotFound)
}

func TestDescribe_Cycle(t *testing.T) {
	def, err := formdef.Parse([]byte(`
name: loop
fields:
  - name: a
    dependencies: [b]
  - name: b
    dependencies: [a]
`))
	require.NoError(t, err)

	_, err = session.Describe(def)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
