package domain

// Status is the coarse state of a conversation.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Envelope is the uniform output of every conversation transition.
// It carries no behavior.
type Envelope struct {
	Question        *string  `json:"question"`
	IsComplete      bool     `json:"is_complete"`
	Data            any      `json:"data"`
	Progress        float64  `json:"progress"`
	Errors          []string `json:"errors"`
	RetryPrompt     *string  `json:"retry_prompt"`
	CurrentField    *string  `json:"current_field"`
	CollectedFields []string `json:"collected_fields"`
}

// NewEnvelope returns an envelope with empty (non-nil) lists.
func NewEnvelope() *Envelope {
	return &Envelope{
		Errors:          []string{},
		CollectedFields: []string{},
	}
}

// QuestionText returns the question or "" when none is set.
func (e *Envelope) QuestionText() string {
	if e.Question == nil {
		return ""
	}
	return *e.Question
}

// Field returns the current field name or "" when none is set.
func (e *Envelope) Field() string {
	if e.CurrentField == nil {
		return ""
	}
	return *e.CurrentField
}

// HasErrors reports whether the step was rejected.
func (e *Envelope) HasErrors() bool {
	return len(e.Errors) > 0
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
