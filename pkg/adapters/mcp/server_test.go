package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/aiforms/pkg/formdef"
	"github.com/aretw0/aiforms/pkg/session"
)

const pizzaYAML = `
name: pizza
fields:
  - name: size
    examples: [small, large]
  - name: slices
    type: integer
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	def, err := formdef.Parse([]byte(pizzaYAML))
	require.NoError(t, err)
	catalog, err := formdef.NewCatalog(def)
	require.NoError(t, err)
	mgr, err := session.NewManager()
	require.NoError(t, err)
	return NewServer(session.NewService(catalog, mgr), nil)
}

func newClient(t *testing.T, s *Server) *client.Client {
	t.Helper()
	ctx := context.Background()
	c, err := client.NewInProcessClient(s.MCPServer())
	require.NoError(t, err)
	require.NoError(t, c.Start(ctx))
	t.Cleanup(func() { _ = c.Close() })

	init := mcp.InitializeRequest{}
	init.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	init.Params.ClientInfo = mcp.Implementation{Name: "aiforms-test", Version: "0.0.0"}
	_, err = c.Initialize(ctx, init)
	require.NoError(t, err)
	return c
}

func call(t *testing.T, c *client.Client, name string, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := c.CallTool(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text, res.IsError
}

func decodeSnapshot(t *testing.T, text string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out), text)
	return out
}

func TestTools_Registered(t *testing.T) {
	tools := newTestServer(t).MCPServer().ListTools()
	for _, name := range []string{"list_forms", "describe_form", "start_form", "answer_form", "get_session", "cancel_session"} {
		assert.Contains(t, tools, name)
	}
}

func TestConversation(t *testing.T) {
	c := newClient(t, newTestServer(t))

	text, isErr := call(t, c, "list_forms", nil)
	require.False(t, isErr)
	assert.JSONEq(t, `["pizza"]`, text)

	text, isErr = call(t, c, "describe_form", map[string]any{"form": "pizza"})
	require.False(t, isErr, text)
	assert.Equal(t, []any{"size", "slices"}, decodeSnapshot(t, text)["order"])

	text, isErr = call(t, c, "start_form", map[string]any{"form": "pizza", "context": `{"table": 4}`})
	require.False(t, isErr, text)
	started := decodeSnapshot(t, text)
	id := started["session_id"].(string)
	assert.Equal(t, "Please provide your size. Examples: small, large", started["question"])

	text, _ = call(t, c, "answer_form", map[string]any{"session_id": id, "answer": "large"})
	assert.Equal(t, "slices", decodeSnapshot(t, text)["current_field"])

	text, _ = call(t, c, "answer_form", map[string]any{"session_id": id, "answer": "eight"})
	assert.Equal(t, []any{"Expected a number, got: eight"}, decodeSnapshot(t, text)["errors"])

	text, _ = call(t, c, "answer_form", map[string]any{"session_id": id, "answer": "8"})
	done := decodeSnapshot(t, text)
	assert.Equal(t, true, done["is_complete"])
	assert.Equal(t, map[string]any{"size": "large", "slices": float64(8)}, done["data"])

	text, _ = call(t, c, "get_session", map[string]any{"session_id": id})
	assert.Equal(t, "complete", decodeSnapshot(t, text)["status"])

	text, isErr = call(t, c, "cancel_session", map[string]any{"session_id": id})
	assert.False(t, isErr)
	assert.Equal(t, "cancelled "+id, text)

	text, isErr = call(t, c, "get_session", map[string]any{"session_id": id})
	assert.True(t, isErr)
	assert.Contains(t, text, "session not found")
}

func TestTools_Errors(t *testing.T) {
	c := newClient(t, newTestServer(t))

	text, isErr := call(t, c, "start_form", map[string]any{"form": "tacos"})
	assert.True(t, isErr)
	assert.Contains(t, text, "form not found")

	text, isErr = call(t, c, "start_form", map[string]any{"form": "pizza", "context": "[1"})
	assert.True(t, isErr)
	assert.Contains(t, text, "context must be a JSON object")

	started := decodeSnapshot(t, func() string {
		text, _ := call(t, c, "start_form", map[string]any{"form": "pizza"})
		return text
	}())
	text, isErr = call(t, c, "answer_form", map[string]any{
		"session_id": started["session_id"],
		"answer":     strings.Repeat("x", 5000),
	})
	assert.True(t, isErr)
	assert.Contains(t, text, "input rejected")

	text, isErr = call(t, c, "cancel_session", map[string]any{"session_id": "nope"})
	assert.True(t, isErr)
	assert.Contains(t, text, "session not found")
}

func TestFormsResource(t *testing.T) {
	c := newClient(t, newTestServer(t))

	req := mcp.ReadResourceRequest{}
	req.Params.URI = FormsURI
	res, err := c.ReadResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)

	contents, ok := mcp.AsTextResourceContents(res.Contents[0])
	require.True(t, ok)
	assert.Equal(t, "application/json", contents.MIMEType)

	var infos []session.FormInfo
	require.NoError(t, json.Unmarshal([]byte(contents.Text), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "pizza", infos[0].Name)
	assert.Len(t, infos[0].Fields, 2)
}

func TestCorsMiddleware(t *testing.T) {
	h := corsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/sse", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/message", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
