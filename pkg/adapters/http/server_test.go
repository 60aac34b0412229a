package http

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/pkg/formdef"
	"github.com/aretw0/aiforms/pkg/observability"
	"github.com/aretw0/aiforms/pkg/schema"
	"github.com/aretw0/aiforms/pkg/session"
)

const signupYAML = `
name: signup
title: Sign up
fields:
  - name: email
    required: true
  - name: age
    type: integer
    priority: low
  - name: newsletter
    type: boolean
    priority: high
`

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	def, err := formdef.Parse([]byte(signupYAML))
	require.NoError(t, err)
	catalog, err := formdef.NewCatalog(def)
	require.NoError(t, err)
	mgr, err := session.NewManager()
	require.NoError(t, err)
	metrics, err := observability.NewMetrics(nil)
	require.NoError(t, err)

	svc := session.NewService(catalog, mgr, aiforms.WithLifecycleHooks(metrics.Hooks()))
	return NewHandler(svc, WithMetrics(metrics.Handler()))
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, r))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthAndInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	info := decode(t, do(t, h, http.MethodGet, "/info", nil))
	assert.Equal(t, "aiforms-http", info["app"])
	assert.Equal(t, strings.TrimSpace(aiforms.Version), info["version"])
	assert.Equal(t, float64(1), info["forms"])

	w = do(t, h, http.MethodOptions, "/forms", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestForms(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/forms", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"forms":["signup"]}`, w.Body.String())

	form := decode(t, do(t, h, http.MethodGet, "/forms/signup", nil))
	assert.Equal(t, "Sign up", form["title"])
	assert.Equal(t, []any{"newsletter", "email", "age"}, form["order"])
	assert.Len(t, form["fields"], 3)
	assert.Len(t, form["schema"], 3)

	w = do(t, h, http.MethodGet, "/forms/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode(t, w)["error"], "form not found")
}

func TestGetForm_DecodesIntoFormInfo(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/forms/signup", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var info FormInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	require.Len(t, info.Schema, 3)
	assert.Equal(t, "email", info.Schema[0].Key)
	assert.True(t, info.Schema[0].Required)
	assert.Equal(t, "integer", info.Schema[1].Type.Name())
	assert.Equal(t, "boolean", info.Schema[2].Type.Name())
	assert.NoError(t, schema.Validate(info.Schema, map[string]any{"email": "a@b.c", "age": 30, "newsletter": true}))
}

func TestOpenAPI(t *testing.T) {
	h := newTestHandler(t)

	t.Run("Spec Is Valid", func(t *testing.T) {
		swagger, err := GetSwagger()
		require.NoError(t, err)
		require.NoError(t, swagger.Validate(context.Background()))

		for _, path := range []string{"/forms", "/forms/{form}", "/forms/{form}/sessions", "/sessions/{id}", "/sessions/{id}/responses", "/sessions/{id}/events", "/sessions/{id}/graph"} {
			assert.NotNil(t, swagger.Paths.Find(path), path)
		}
	})

	t.Run("Serves Spec", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/openapi.yaml", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/yaml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "StartSession")
	})

	t.Run("Serves Swagger UI", func(t *testing.T) {
		w := do(t, h, http.MethodGet, "/swagger", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "SwaggerUIBundle")
	})
}

func TestSessionLifecycle(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/forms/signup/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	started := decode(t, w)
	id := started["session_id"].(string)
	assert.Equal(t, "newsletter", started["current_field"])
	assert.Equal(t, "in_progress", started["status"])

	answer := func(text string) map[string]any {
		w := do(t, h, http.MethodPost, "/sessions/"+id+"/responses", AnswerRequest{Answer: text})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode(t, w)
	}

	step := answer("maybe")
	assert.Equal(t, []any{"Expected yes/no, got: maybe"}, step["errors"])
	assert.Equal(t, "newsletter", step["current_field"])

	answer("yes")
	answer("me@example.com")
	done := answer("33")
	assert.Equal(t, true, done["is_complete"])
	assert.Equal(t, float64(100), done["progress"])
	assert.Equal(t, map[string]any{"newsletter": true, "email": "me@example.com", "age": float64(33)}, done["data"])

	got := decode(t, do(t, h, http.MethodGet, "/sessions/"+id, nil))
	assert.Equal(t, "complete", got["status"])

	metrics := do(t, h, http.MethodGet, "/metrics", nil)
	assert.Contains(t, metrics.Body.String(), `aiforms_completions_total{form="signup"} 1`)

	w = do(t, h, http.MethodDelete, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, h, http.MethodGet, "/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSessionGraph(t *testing.T) {
	h := newTestHandler(t)
	id := decode(t, do(t, h, http.MethodPost, "/forms/signup/sessions", nil))["session_id"].(string)
	do(t, h, http.MethodPost, "/sessions/"+id+"/responses", AnswerRequest{Answer: "no"})

	w := do(t, h, http.MethodGet, "/sessions/"+id+"/graph", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, `newsletter["1. newsletter <br/> boolean"]`)
	assert.Contains(t, body, `email[/"2. email"/]`)
	assert.Contains(t, body, "class newsletter collected;")
	assert.Contains(t, body, "class email current;")

	w = do(t, h, http.MethodGet, "/sessions/nope/graph", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStartSession_WithContext(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/forms/signup/sessions", StartRequest{Context: &map[string]any{"source": "landing"}})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, h, http.MethodPost, "/forms/missing/sessions", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnswer_BadRequests(t *testing.T) {
	h := newTestHandler(t)
	id := decode(t, do(t, h, http.MethodPost, "/forms/signup/sessions", nil))["session_id"].(string)

	t.Run("Malformed Body", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sessions/"+id+"/responses", strings.NewReader("{")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Oversized Answer", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/sessions/"+id+"/responses", AnswerRequest{Answer: strings.Repeat("a", 5000)})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], "exceeds maximum allowed size")
	})

	t.Run("Unknown Session", func(t *testing.T) {
		w := do(t, h, http.MethodPost, "/sessions/nope/responses", AnswerRequest{Answer: "yes"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSubscribeEvents(t *testing.T) {
	h := newTestHandler(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/forms/signup/sessions", "application/json", nil)
	require.NoError(t, err)
	var started map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&started))
	resp.Body.Close()
	id := started["session_id"].(string)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+id+"/events", nil)
	require.NoError(t, err)
	stream, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	assert.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	lines := bufio.NewScanner(stream.Body)
	nextData := func() string {
		for lines.Scan() {
			if data, ok := strings.CutPrefix(lines.Text(), "data: "); ok {
				return data
			}
		}
		return ""
	}
	// The ping is flushed after the subscription is registered.
	require.Equal(t, "connected", nextData())

	body, _ := json.Marshal(AnswerRequest{Answer: "no"})
	answered, err := http.Post(srv.URL+"/sessions/"+id+"/responses", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	answered.Body.Close()

	var pushed map[string]any
	require.NoError(t, json.Unmarshal([]byte(nextData()), &pushed))
	assert.Equal(t, id, pushed["session_id"])
	assert.Equal(t, "email", pushed["current_field"])
}

func TestSubscribeEvents_UnknownSession(t *testing.T) {
	h := newTestHandler(t)
	w := do(t, h, http.MethodGet, "/sessions/nope/events", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStreamManager_Close(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	sm.Broadcast("s1", "hello")
	assert.Equal(t, "hello", <-ch)

	sm.Close("s1")
	_, open := <-ch
	assert.False(t, open)
	cancel() // no double close
	assert.Empty(t, sm.subscribers)
}
