package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/internal/presentation/tui"
	"github.com/aretw0/aiforms/pkg/runner"
)

// createLogger configures the application logger.
// It writes to Stderr so Stdout stays free for the conversation. Without
// debug only warnings and errors reach the console, unless level asks for less.
func createLogger(level string, debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	lvl := logging.ParseLevel(level)
	if lvl < slog.LevelWarn {
		lvl = slog.LevelWarn
	}
	return logging.New(lvl)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// createRunnerOptions prepares the functional options for the Runner.
func createRunnerOptions(logger *slog.Logger, opts RunOptions, in io.Reader, out io.Writer) []runner.Option {
	ropts := []runner.Option{
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithSignals(true),
	}

	if opts.JSON {
		return append(ropts, runner.WithInputHandler(runner.NewJSONHandler(in, out)))
	}

	var thOpts []runner.TextHandlerOption
	if !opts.Headless {
		thOpts = append(thOpts, runner.WithTextHandlerRenderer(rendererFor(out)))
	}
	if opts.Progress {
		thOpts = append(thOpts, runner.WithProgressFormatter(tui.ProgressBar(out, 20)))
	}
	return append(ropts, runner.WithInputHandler(runner.NewTextHandler(in, out, thOpts...)))
}

func rendererFor(w io.Writer) runner.ContentRenderer {
	if f, ok := w.(*os.File); ok {
		return tui.RendererFor(f)
	}
	return tui.Plain
}

func isInterrupted(err error) bool {
	return errors.Is(err, runner.ErrAborted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF)
}

// handleExecutionError maps interruptions to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
