package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/aiforms/pkg/answer"
	"github.com/aretw0/aiforms/pkg/domain"
)

// ErrEmptyReply is returned when the model answers with blank text.
var ErrEmptyReply = errors.New("model returned an empty reply")

// errorPrefix marks a reply in which the model declines to parse the input.
const errorPrefix = "ERROR:"

// Completer sends one system + user exchange to a chat model and returns the
// text of the reply.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, system, user string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, system, user string) (string, error) {
	return f(ctx, system, user)
}

// Generator phrases questions with a chat model.
// It implements ports.QuestionGenerator.
type Generator struct {
	c Completer
}

// NewGenerator creates a Generator backed by c.
func NewGenerator(c Completer) *Generator {
	return &Generator{c: c}
}

// Generate implements ports.QuestionGenerator.
func (g *Generator) Generate(ctx context.Context, field domain.FieldSpec, data map[string]any) (string, error) {
	reply, err := g.c.Complete(ctx, QuestionSystemPrompt, QuestionPrompt(field, data))
	if err != nil {
		return "", fmt.Errorf("question for %s: %w", field.Name, err)
	}
	q := strings.TrimSpace(unquote(reply))
	if q == "" {
		return "", fmt.Errorf("question for %s: %w", field.Name, ErrEmptyReply)
	}
	return q, nil
}

// Parser normalizes answers with a chat model.
// It implements ports.AnswerParser.
type Parser struct {
	c Completer
}

// NewParser creates a Parser backed by c.
func NewParser(c Completer) *Parser {
	return &Parser{c: c}
}

// Parse implements ports.AnswerParser. String fields, plain numbers and common
// yes/no words are parsed locally; the model only sees the rest.
func (p *Parser) Parse(ctx context.Context, raw string, field domain.FieldSpec, _ map[string]any) (any, error) {
	if field.Type == domain.TypeString || field.Type == "" {
		return strings.TrimSpace(raw), nil
	}
	if v, ok := parseLocally(field, raw); ok {
		return v, nil
	}

	reply, err := p.c.Complete(ctx, ParseSystemPrompt, ParsePrompt(raw, field))
	if err != nil {
		return nil, fmt.Errorf("could not parse %q for %s: %w", raw, field.Name, err)
	}
	return Coerce(field, reply)
}

var (
	switchedOn  = map[string]bool{"on": true, "enabled": true}
	switchedOff = map[string]bool{"off": true, "disabled": true}
)

func parseLocally(field domain.FieldSpec, raw string) (any, bool) {
	value := strings.TrimSpace(raw)
	switch field.Type {
	case domain.TypeInteger:
		return answer.ParseInt(value)
	case domain.TypeFloat:
		v, err := answer.Fallback(field, value)
		return v, err == nil
	case domain.TypeBoolean:
		if b, ok := answer.ParseBool(value); ok {
			return b, true
		}
		lower := strings.ToLower(value)
		if switchedOn[lower] {
			return true, true
		}
		if switchedOff[lower] {
			return false, true
		}
	}
	return nil, false
}

// Coerce converts a model reply to a value of the field's type.
// A reply starting with "ERROR:" becomes a *domain.ValidationError carrying the
// model's explanation.
func Coerce(field domain.FieldSpec, reply string) (any, error) {
	text := strings.TrimSpace(unquote(reply))
	if text == "" {
		return nil, &domain.ValidationError{Field: field.Name, Reason: ErrEmptyReply.Error()}
	}
	if rest, ok := strings.CutPrefix(text, errorPrefix); ok {
		return nil, &domain.ValidationError{Field: field.Name, Reason: strings.TrimSpace(rest)}
	}

	if field.Type == domain.TypeList {
		text = listText(text)
	}
	return answer.Fallback(field, text)
}

// unquote strips a code fence or one pair of surrounding quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// listText flattens bracketed or newline-separated replies into comma-separated text.
func listText(s string) string {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == ',' })
	items := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		l = strings.TrimLeft(l, "-* ")
		l = strings.Trim(l, `"'`)
		if l != "" {
			items = append(items, l)
		}
	}
	return strings.Join(items, ", ")
}
