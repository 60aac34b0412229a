/*
Package runner drives a form conversation over a line-oriented console.

It is the bridge between the conversation state machine and the outside world:
the Runner asks the current question through a pluggable IOHandler, reads the
answer, sanitizes it and feeds it back until the form completes or the user
leaves.

# Key Components

  - Runner: the question/answer loop.
  - IOHandler: decouples how questions are shown and answers are read.
  - TextHandler: interactive terminal usage, with an optional markdown renderer.
  - JSONHandler: JSON-Lines for scripted clients.

# Usage

	form, _ := aiforms.New[Profile]()

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithSignals(true),
	)

	env, err := r.Run(ctx, runner.Steps(form))
*/
package runner
