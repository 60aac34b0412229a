package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/aiforms"
	"github.com/aretw0/aiforms/internal/ordering"
	"github.com/aretw0/aiforms/pkg/domain"
	"github.com/aretw0/aiforms/pkg/formdef"
	"github.com/aretw0/aiforms/pkg/schema"
)

// ErrFormNotFound is returned when a form name is not in the catalog.
var ErrFormNotFound = errors.New("form not found")

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	ID     string        `json:"session_id"`
	Form   string        `json:"form"`
	Status domain.Status `json:"status"`
	Order  []string      `json:"order"`
	*domain.Envelope
}

// FormInfo describes a form of the catalog.
type FormInfo struct {
	Name        string             `json:"name"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Fields      []domain.FieldSpec `json:"fields"`
	Order       []string           `json:"order"`
	Schema      schema.Schema      `json:"schema"`
}

// Service opens forms from a catalog and drives them through a Manager.
// It is what the HTTP and MCP front-ends talk to.
type Service struct {
	catalog *formdef.Catalog
	manager *Manager
	opts    []aiforms.Option
}

// NewService creates a service. opts are applied to every form it opens
// (collaborators, hooks, logger).
func NewService(catalog *formdef.Catalog, manager *Manager, opts ...aiforms.Option) *Service {
	return &Service{catalog: catalog, manager: manager, opts: opts}
}

// Catalog returns the forms this service can open.
func (s *Service) Catalog() *formdef.Catalog { return s.catalog }

// Definition returns the named form definition.
func (s *Service) Definition(name string) (*formdef.Definition, error) {
	def, ok := s.catalog.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
	return def, nil
}

// Describe returns the fields, initial order and output schema of the named form.
func (s *Service) Describe(name string) (*FormInfo, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}
	return Describe(def)
}

// Describe computes the FormInfo of a definition.
func Describe(def *formdef.Definition) (*FormInfo, error) {
	specs, err := def.Fields()
	if err != nil {
		return nil, err
	}
	table, err := domain.NewTable(specs...)
	if err != nil {
		return nil, err
	}
	order, err := ordering.Compute(table)
	if err != nil {
		return nil, fmt.Errorf("form %s: %w", def.Name, err)
	}
	return &FormInfo{
		Name:        def.Name,
		Title:       def.Title,
		Description: def.Description,
		Fields:      table.Specs(),
		Order:       order,
		Schema:      schema.FromTable(table),
	}, nil
}

// Open starts a new session of the named form, seeded with values.
func (s *Service) Open(ctx context.Context, name string, values map[string]any) (*Snapshot, error) {
	def, err := s.Definition(name)
	if err != nil {
		return nil, err
	}

	opts := s.opts
	if len(values) > 0 {
		opts = append(append([]aiforms.Option(nil), s.opts...), aiforms.WithContext(values))
	}
	conv, err := aiforms.NewFromDefinition(def, opts...)
	if err != nil {
		return nil, err
	}

	resp, err := conv.Start(ctx)
	if err != nil {
		return nil, err
	}

	sess := s.manager.Create(name, conv)
	var snap *Snapshot
	err = s.manager.WithLock(ctx, sess.ID, func(_ context.Context, sess *Session) error {
		sess.Last = &resp.Envelope
		snap = snapshot(sess)
		return nil
	})
	return snap, err
}

// Answer submits an answer to the session's current question.
func (s *Service) Answer(ctx context.Context, id, answer string) (*Snapshot, error) {
	var snap *Snapshot
	err := s.manager.WithLock(ctx, id, func(ctx context.Context, sess *Session) error {
		resp, err := sess.conv.Respond(ctx, answer)
		if err != nil {
			return err
		}
		sess.Last = &resp.Envelope
		snap = snapshot(sess)
		return nil
	})
	return snap, err
}

// Get returns the current state of the session.
func (s *Service) Get(ctx context.Context, id string) (*Snapshot, error) {
	var snap *Snapshot
	err := s.manager.WithLock(ctx, id, func(_ context.Context, sess *Session) error {
		snap = snapshot(sess)
		return nil
	})
	return snap, err
}

// Close drops the session.
func (s *Service) Close(ctx context.Context, id string) error {
	return s.manager.Delete(ctx, id)
}

func snapshot(sess *Session) *Snapshot {
	env := sess.Last
	if env == nil {
		env = domain.NewEnvelope()
	}
	return &Snapshot{
		ID:       sess.ID,
		Form:     sess.Form,
		Status:   sess.conv.Status(),
		Order:    sess.conv.Order(),
		Envelope: env,
	}
}
