package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/internal/config"
	"github.com/aretw0/aiforms/pkg/adapters/gemini"
	"github.com/aretw0/aiforms/pkg/adapters/openai"
	"github.com/aretw0/aiforms/pkg/formdef"
	"github.com/aretw0/aiforms/pkg/generator"
	"github.com/aretw0/aiforms/pkg/llm"
	"github.com/aretw0/aiforms/pkg/observability"
	"github.com/aretw0/aiforms/pkg/session"
)

// provider is what the model adapters have in common.
type provider interface {
	Generator() *llm.Generator
	Parser() *llm.Parser
}

// Collaborators returns the form options wiring the configured model provider.
// Questions fall back to the template when the model fails; answers fall back
// to the built-in type parsing. No provider means no options.
func Collaborators(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]aiforms.Option, error) {
	var (
		p   provider
		err error
	)
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderOpenAI:
		p, err = openai.New(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.Model,
		})
	case config.ProviderGemini:
		p, err = gemini.New(ctx, gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("model provider enabled", "provider", cfg.Provider, "model", cfg.Model)
	return []aiforms.Option{
		aiforms.WithGenerator(generator.WithFallback(p.Generator(), nil, logger)),
		aiforms.WithParser(p.Parser()),
	}, nil
}

// newService loads the forms directory and builds the session service shared
// by the HTTP and MCP front-ends. Metrics are registered with reg.
func newService(ctx context.Context, cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*session.Service, *observability.Metrics, error) {
	catalog, err := formdef.LoadDir(cfg.FormsDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("forms loaded", "dir", cfg.FormsDir, "count", catalog.Len())

	opts, err := Collaborators(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	mgr, err := session.NewManager(session.WithCapacity(cfg.SessionCapacity), session.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}

	opts = append(opts,
		aiforms.WithLogger(logger),
		aiforms.WithLifecycleHooks(metrics.Hooks()),
		aiforms.WithLifecycleHooks(observability.LogHooks(logger)),
	)
	return session.NewService(catalog, mgr, opts...), metrics, nil
}
