// Package assistant defines the domain objects exchanged with assistant
// providers: assistants, threads, messages, runs, and run steps. The shapes
// follow the common REST representation used by assistant backends so that
// providers can map them onto their own wire formats without translation
// layers in the core.
package assistant

// Object type discriminators.
const (
	ObjectAssistant        = "assistant"
	ObjectAssistantDeleted = "assistant.deleted"
	ObjectThread           = "thread"
	ObjectThreadDeleted    = "thread.deleted"
	ObjectMessage          = "thread.message"
	ObjectMessageDeleted   = "thread.message.deleted"
	ObjectRun              = "thread.run"
	ObjectRunStep          = "thread.run.step"
	ObjectList             = "list"
)

// Assistant is a configured assistant on the backing provider.
type Assistant struct {
	ID           string            `json:"id"`
	Object       string            `json:"object"`
	CreatedAt    int64             `json:"created_at"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Model        string            `json:"model"`
	Instructions string            `json:"instructions,omitempty"`
	Temperature  *float64          `json:"temperature,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Thread is a conversation container.
type Thread struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Message is a single message on a thread.
type Message struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	ThreadID  string            `json:"thread_id"`
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// RunStatus enumerates the lifecycle states of a run.
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusExpired        RunStatus = "expired"
)

// IsValidRunStatus reports whether s is a known run status.
func IsValidRunStatus(s RunStatus) bool {
	switch s {
	case RunStatusQueued, RunStatusInProgress, RunStatusRequiresAction,
		RunStatusCancelling, RunStatusCancelled, RunStatusFailed,
		RunStatusCompleted, RunStatusExpired:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCancelled, RunStatusFailed, RunStatusCompleted, RunStatusExpired:
		return true
	default:
		return false
	}
}

// RunError describes why a run failed.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Run is one execution of an assistant against a thread.
type Run struct {
	ID           string            `json:"id"`
	Object       string            `json:"object"`
	CreatedAt    int64             `json:"created_at"`
	ThreadID     string            `json:"thread_id"`
	AssistantID  string            `json:"assistant_id"`
	Status       RunStatus         `json:"status"`
	Model        string            `json:"model,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
	LastError    *RunError         `json:"last_error,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// RunStep is one step taken during a run.
type RunStep struct {
	ID        string    `json:"id"`
	Object    string    `json:"object"`
	CreatedAt int64     `json:"created_at"`
	RunID     string    `json:"run_id"`
	ThreadID  string    `json:"thread_id"`
	Type      string    `json:"type"`
	Status    RunStatus `json:"status"`
	Details   string    `json:"details,omitempty"`
}

// Deleted acknowledges a delete operation.
type Deleted struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// List is a paged collection of domain objects in provider order.
type List[T any] struct {
	Object  string `json:"object"`
	Data    []T    `json:"data"`
	FirstID string `json:"first_id,omitempty"`
	LastID  string `json:"last_id,omitempty"`
	HasMore bool   `json:"has_more"`
}
