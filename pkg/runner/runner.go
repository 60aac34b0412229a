package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/pkg/domain"
)

// ErrAborted is returned when the user leaves before the form is complete
// (end of input, "exit"/"quit", or an interrupt signal).
var ErrAborted = errors.New("conversation aborted")

// Runner handles the question/answer loop of a form using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler over Input/Output is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Signals enables graceful interruption by SIGINT/SIGTERM.
	Signals bool

	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the conversation until the form completes.
// It returns the final envelope, whose Data holds the materialized result.
// When the user leaves early it returns the last envelope and ErrAborted.
func (r *Runner) Run(ctx context.Context, conv Conversation) (*domain.Envelope, error) {
	handler := r.resolveHandler()
	if s, ok := handler.(interface{ Stop() }); ok {
		defer s.Stop()
	}

	if r.Signals {
		signals := NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}

	env, err := conv.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start form: %w", err)
	}

	for {
		needsInput, err := handler.Output(ctx, env)
		if err != nil {
			return env, fmt.Errorf("output error: %w", err)
		}
		if env.IsComplete || !needsInput {
			r.Logger.Debug("conversation finished", "complete", env.IsComplete)
			return env, nil
		}

		answer, err := r.readAnswer(ctx, handler)
		if err != nil {
			return env, err
		}

		r.Logger.Debug("answer received", "field", env.Field(), "size", len(answer))
		env, err = conv.Respond(ctx, answer)
		if err != nil {
			return nil, err
		}
	}
}

func (r *Runner) readAnswer(ctx context.Context, handler IOHandler) (string, error) {
	val, err := handler.Input(ctx)
	if err != nil {
		if ctx.Err() != nil {
			r.Logger.Debug("runner input: context cancelled", "err", ctx.Err())
			_ = handler.SystemOutput(context.Background(), "Interrupted.")
			return "", fmt.Errorf("%w: %w", ErrAborted, ctx.Err())
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", fmt.Errorf("input error: %w", err)
	}

	switch strings.ToLower(val) {
	case "exit", "quit":
		return "", ErrAborted
	}
	return val, nil
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	th := NewTextHandler(r.Input, r.Output, WithTextHandlerRenderer(r.Renderer))
	if !r.Headless && r.Output != nil {
		fmt.Fprintln(r.Output, "--- aiforms (type 'exit' to leave) ---")
	}
	r.Handler = th
	return th
}
