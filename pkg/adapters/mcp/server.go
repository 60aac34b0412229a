package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/pkg/runner"
	"github.com/aretw0/aiforms/pkg/session"
)

// FormsURI is the resource listing every form of the catalog.
const FormsURI = "aiforms://forms"

// StartArgs are the arguments of start_form.
type StartArgs struct {
	Form    string `json:"form"`
	Context string `json:"context,omitempty"`
}

// AnswerArgs are the arguments of answer_form.
type AnswerArgs struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// SessionArgs identify a session.
type SessionArgs struct {
	SessionID string `json:"session_id"`
}

// FormArgs identify a form.
type FormArgs struct {
	Form string `json:"form"`
}

// Server exposes a session.Service as an MCP server, so an assistant can
// fill forms on behalf of its user.
type Server struct {
	service   *session.Service
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
// A nil logger discards logs.
func NewServer(svc *session.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		service:   svc,
		logger:    logger,
		mcpServer: server.NewMCPServer("aiforms-mcp", strings.TrimSpace(aiforms.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks until ctx
// is done or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_forms",
		mcp.WithDescription("List the forms that can be started."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, _ := json.Marshal(s.service.Catalog().Names())
		return mcp.NewToolResultText(string(names)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("describe_form",
		mcp.WithDescription("Describe the fields of a form, the order they will be asked in and the resulting schema."),
		mcp.WithString("form", mcp.Required(), mcp.Description("Form name")),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("start_form",
		mcp.WithDescription("Start a new conversation for a form and return its first question."),
		mcp.WithString("form", mcp.Required(), mcp.Description("Form name")),
		mcp.WithString("context", mcp.Description("JSON object of values known up front (optional)")),
		mcp.WithOutputSchema[session.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("answer_form",
		mcp.WithDescription("Answer the current question of a conversation. Rejected answers come back with errors and the same question."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by start_form")),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The user's answer, verbatim")),
		mcp.WithOutputSchema[session.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleAnswer))

	s.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Return the current state of a conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithOutputSchema[session.Snapshot](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("cancel_session",
		mcp.WithDescription("Abandon a conversation."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
	), mcp.NewTypedToolHandler(s.handleCancel))
}

func (s *Server) handleDescribe(ctx context.Context, request mcp.CallToolRequest, args FormArgs) (*session.FormInfo, error) {
	return s.service.Describe(args.Form)
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args StartArgs) (*session.Snapshot, error) {
	var values map[string]any
	if args.Context != "" {
		if err := json.Unmarshal([]byte(args.Context), &values); err != nil {
			return nil, fmt.Errorf("context must be a JSON object: %w", err)
		}
	}

	snap, err := s.service.Open(ctx, args.Form, values)
	if err != nil {
		return nil, err
	}
	s.logger.Info("MCP session started", "session_id", snap.ID, "form", snap.Form)
	return snap, nil
}

func (s *Server) handleAnswer(ctx context.Context, request mcp.CallToolRequest, args AnswerArgs) (*session.Snapshot, error) {
	clean, err := runner.SanitizeInput(args.Answer)
	if err != nil {
		s.logger.Warn("MCP answer rejected", "error", err, "size", len(args.Answer))
		return nil, fmt.Errorf("input rejected: %w", err)
	}
	return s.service.Answer(ctx, args.SessionID, clean)
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (*session.Snapshot, error) {
	return s.service.Get(ctx, args.SessionID)
}

func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest, args SessionArgs) (*mcp.CallToolResult, error) {
	if err := s.service.Close(ctx, args.SessionID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("cancelled " + args.SessionID), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(FormsURI, "Available Forms",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		catalog := s.service.Catalog()
		infos := make([]*session.FormInfo, 0, catalog.Len())
		for _, name := range catalog.Names() {
			info, err := s.service.Describe(name)
			if err != nil {
				return nil, fmt.Errorf("failed to describe form %s: %w", name, err)
			}
			infos = append(infos, info)
		}
		jsonBytes, _ := json.Marshal(infos)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      FormsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
