package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/internal/config"
	"github.com/aretw0/aiforms/internal/presentation/tui"
	"github.com/aretw0/aiforms/pkg/observability"
	"github.com/aretw0/aiforms/pkg/runner"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	Form     string // YAML file or name in the forms directory
	Headless bool
	JSON     bool
	Debug    bool
	Progress bool
	Context  string // Raw JSON object
}

// Execute fills one form interactively on in/out and prints the result.
func Execute(ctx context.Context, cfg *config.Config, opts RunOptions, in io.Reader, out io.Writer) error {
	logger := createLogger(cfg.LogLevel, opts.Debug)

	var initialContext map[string]any
	if opts.Context != "" {
		if err := json.Unmarshal([]byte(opts.Context), &initialContext); err != nil {
			return fmt.Errorf("error parsing --context JSON: %w", err)
		}
	}

	def, err := resolveDefinition(opts.Form, cfg.FormsDir)
	if err != nil {
		return err
	}

	formOpts, err := Collaborators(ctx, cfg, logger)
	if err != nil {
		return err
	}
	formOpts = append(formOpts, aiforms.WithLogger(logger), aiforms.WithContext(initialContext))
	if opts.Debug {
		formOpts = append(formOpts, aiforms.WithLifecycleHooks(observability.LogHooks(logger)))
	}

	form, err := aiforms.NewFromDefinition(def, formOpts...)
	if err != nil {
		return fmt.Errorf("error building form: %w", err)
	}

	quiet := opts.JSON || opts.Headless
	if !quiet {
		tui.PrintBanner(out, aiforms.Version)
		title := def.Title
		if title == "" {
			title = def.Name
		}
		printSystemMessage(out, "%s: %d fields. Type 'exit' to leave.", title, len(form.Fields()))
	}

	r := runner.NewRunner(createRunnerOptions(logger, opts, in, out)...)
	env, runErr := r.Run(ctx, runner.Steps(form))

	switch {
	case runErr == nil && env != nil && env.IsComplete && !opts.JSON:
		if err := printResult(out, form); err != nil {
			return err
		}
	case isInterrupted(runErr) && !quiet:
		printSystemMessage(out, "Interrupted at '%s' field.", form.CurrentField())
	}
	return handleExecutionError(runErr)
}

// printResult writes the collected data as YAML, in question order.
func printResult(w io.Writer, form *aiforms.Form[map[string]any]) error {
	result, ok := form.Result()
	if !ok {
		return nil
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range form.Order() {
		value, ok := (*result)[name]
		if !ok {
			continue
		}
		var node yaml.Node
		if err := node.Encode(value); err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: name}, &node)
	}

	printSystemMessage(w, "Collected:")
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
