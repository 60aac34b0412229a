package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms/pkg/adapters/openai"
	"github.com/aretw0/aiforms/pkg/domain"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// fakeServer answers every chat completion with reply and records the requests.
func fakeServer(t *testing.T, reply string, status int) (*httptest.Server, *[]chatRequest) {
	t.Helper()
	var seen []chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		seen = append(seen, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func newClient(t *testing.T, srv *httptest.Server) *openai.Client {
	t.Helper()
	c, err := openai.New(openai.Config{APIKey: "test-key", BaseURL: srv.URL + "/v1/", Model: "gpt-test", MaxRetries: 1})
	require.NoError(t, err)
	return c
}

func TestNew_MissingKey(t *testing.T) {
	_, err := openai.New(openai.Config{})
	assert.ErrorIs(t, err, openai.ErrMissingAPIKey)
}

func TestParser(t *testing.T) {
	srv, seen := fakeServer(t, "python, javascript, sql", http.StatusOK)
	c := newClient(t, srv)

	field := domain.FieldSpec{Name: "skills", Type: domain.TypeList, Examples: []string{"Go"}}
	got, err := c.Parser().Parse(context.Background(), "I know python, js and some sql", field, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "javascript", "sql"}, got)

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, "gpt-test", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Contains(t, req.Messages[1].Content, "Target type: list of string")
}

func TestParser_ModelRefuses(t *testing.T) {
	srv, _ := fakeServer(t, "ERROR: not a number", http.StatusOK)
	c := newClient(t, srv)

	_, err := c.Parser().Parse(context.Background(), "dunno", domain.FieldSpec{Name: "age", Type: domain.TypeInteger}, nil)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "not a number", err.Error())
}

func TestGenerator(t *testing.T) {
	srv, seen := fakeServer(t, "How old are you, Alice?", http.StatusOK)
	c := newClient(t, srv)

	q, err := c.Generator().Generate(context.Background(), domain.FieldSpec{Name: "age"}, map[string]any{"name": "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "How old are you, Alice?", q)
	assert.Contains(t, (*seen)[0].Messages[1].Content, "- name: Alice")
}

func TestComplete_ServerError(t *testing.T) {
	srv, _ := fakeServer(t, "", http.StatusBadRequest)
	c := newClient(t, srv)

	_, err := c.Complete(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai chat completion")
}
