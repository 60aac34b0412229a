package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aretw0/aiforms/pkg/domain"
)

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer

	// ShowProgress prefixes each question with the completion percentage,
	// formatted by Progress when set.
	ShowProgress bool
	Progress     func(percent float64) string

	inputChan chan inputResult
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

type inputResult struct {
	text string
	err  error
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the content renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithProgress enables the progress prefix.
func WithProgress() TextHandlerOption {
	return func(h *TextHandler) {
		h.ShowProgress = true
	}
}

// WithProgressFormatter enables the progress prefix and formats it with fn.
func WithProgressFormatter(fn func(percent float64) string) TextHandlerOption {
	return func(h *TextHandler) {
		h.ShowProgress = true
		h.Progress = fn
	}
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) initPump() {
	h.startOnce.Do(func() {
		h.inputChan = make(chan inputResult)
		go h.pump()
	})
}

// pump reads lines in the background so Input can honour context cancellation.
func (h *TextHandler) pump() {
	defer close(h.inputChan)
	for {
		text, err := h.Reader.ReadString('\n')

		if text != "" {
			select {
			case h.inputChan <- inputResult{text: text}:
			case <-h.done:
				return
			}
		}

		if err != nil {
			if err != io.EOF {
				select {
				case h.inputChan <- inputResult{err: err}:
				case <-h.done:
				}
			}
			return
		}
	}
}

// Stop releases the background reader once it finishes its current line.
func (h *TextHandler) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *TextHandler) Output(ctx context.Context, env *domain.Envelope) (bool, error) {
	for _, msg := range env.Errors {
		fmt.Fprintf(h.Writer, "✗ %s\n", msg)
	}

	if env.IsComplete {
		fmt.Fprintln(h.Writer, "✓ Form complete!")
		return false, nil
	}
	if env.Question == nil {
		return false, nil
	}

	output := *env.Question
	if h.Renderer != nil {
		if rendered, err := h.Renderer(output); err == nil {
			output = rendered
		}
	}
	output = strings.TrimSpace(output)
	if h.ShowProgress {
		if h.Progress != nil {
			output = h.Progress(env.Progress) + " " + output
		} else {
			output = fmt.Sprintf("[%3.0f%%] %s", env.Progress, output)
		}
	}
	fmt.Fprintln(h.Writer, output)
	return true, nil
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
			h.initPump()
			fmt.Fprint(h.Writer, "> ")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-h.inputChan:
			if !ok {
				return "", io.EOF
			}
			if res.err != nil {
				return "", res.err
			}

			clean, err := SanitizeInput(strings.TrimSpace(res.text))
			if err != nil {
				fmt.Fprintf(h.Writer, "Error: %v. Please try again.\n", err)
				continue
			}
			return clean, nil
		}
	}
}

func (h *TextHandler) SystemOutput(ctx context.Context, msg string) error {
	fmt.Fprintf(h.Writer, "\n[System] %s\n", msg)
	return nil
}
