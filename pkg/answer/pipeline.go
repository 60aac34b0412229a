package answer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/aiforms/internal/logging"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/ports"
)

// Pipeline parses answers for the current field.
type Pipeline struct {
	parser ports.AnswerParser
	logger *slog.Logger
}

// Option configures the Pipeline.
type Option func(*Pipeline)

// WithParser sets the external parsing collaborator.
func WithParser(p ports.AnswerParser) Option {
	return func(pl *Pipeline) {
		pl.parser = p
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(pl *Pipeline) {
		if logger != nil {
			pl.logger = logger
		}
	}
}

// NewPipeline creates a pipeline. Without a parser it only uses Fallback.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetParser replaces the parsing collaborator. nil disables it.
func (p *Pipeline) SetParser(parser ports.AnswerParser) {
	p.parser = parser
}

// Parse produces a value for field from raw text.
// data is the merged context/collected map handed to the collaborator.
func (p *Pipeline) Parse(ctx context.Context, field domain.FieldSpec, raw string, data map[string]any) (any, error) {
	if p.parser != nil {
		value, err := p.delegate(ctx, field, raw, data)
		if err == nil {
			return value, nil
		}
		p.logger.Debug("answer parser failed, using fallback", "field", field.Name, "err", err)
	}
	return Fallback(field, raw)
}

func (p *Pipeline) delegate(ctx context.Context, field domain.FieldSpec, raw string, data map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, err = nil, fmt.Errorf("answer parser panic: %v", r)
		}
	}()
	return p.parser.Parse(ctx, raw, field, data)
}
