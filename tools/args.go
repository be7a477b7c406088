package tools

import (
	"strings"

	"github.com/openassistants/assistants-mcp-go/assistant"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// providerArg is embedded in every tool's arguments so callers can route a
// single call to a named provider. Empty means the configured default.
type providerArg struct {
	Provider string `json:"provider,omitempty" jsonschema:"description=Provider to route this call to. Empty selects the default provider."`
}

// listArgs are the shared paging arguments for list tools.
type listArgs struct {
	Limit  int    `json:"limit,omitempty" jsonschema:"minimum=1,maximum=100,description=Page size between 1 and 100. Defaults to 20."`
	Order  string `json:"order,omitempty" jsonschema:"enum=asc,enum=desc,description=Sort order by creation time."`
	After  string `json:"after,omitempty" jsonschema:"description=Object ID to resume after."`
	Before string `json:"before,omitempty" jsonschema:"description=Object ID to stop before."`
}

func (l listArgs) listParams() assistant.ListParams {
	return assistant.ListParams{Limit: l.Limit, Order: l.Order, After: l.After, Before: l.Before}
}

func (l listArgs) validateList() error {
	if l.Limit < 0 || l.Limit > 100 {
		return mcperr.Validationf("limit", "must be between 1 and 100, got %d", l.Limit)
	}
	if l.Order != "" && l.Order != "asc" && l.Order != "desc" {
		return mcperr.Validationf("order", "must be asc or desc, got %q", l.Order)
	}
	if l.After != "" && l.Before != "" {
		return mcperr.Validationf("after", "after and before are mutually exclusive")
	}
	return nil
}

// requireID checks presence and the conventional prefix of an object ID.
func requireID(field, value, prefix string) error {
	if value == "" {
		return &mcperr.ValidationError{Field: field, Message: "is required", Example: prefix + "abc123"}
	}
	if !strings.HasPrefix(value, prefix) {
		return &mcperr.ValidationError{
			Field:   field,
			Message: "must start with " + prefix,
			Example: prefix + "abc123",
		}
	}
	return nil
}

// --- assistants ---

type assistantCreateArgs struct {
	providerArg
	Model        string            `json:"model" jsonschema:"description=Model ID the assistant uses."`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Instructions string            `json:"instructions,omitempty" jsonschema:"description=System instructions for the assistant."`
	Temperature  *float64          `json:"temperature,omitempty" jsonschema:"minimum=0,maximum=2"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (a assistantCreateArgs) Validate() error {
	if a.Model == "" {
		return &mcperr.ValidationError{Field: "model", Message: "is required", Example: "gpt-4o"}
	}
	if a.Temperature != nil && (*a.Temperature < 0 || *a.Temperature > 2) {
		return mcperr.Validationf("temperature", "must be between 0 and 2, got %v", *a.Temperature)
	}
	return nil
}

type assistantListArgs struct {
	providerArg
	listArgs
}

func (a assistantListArgs) Validate() error { return a.validateList() }

type assistantGetArgs struct {
	providerArg
	AssistantID string `json:"assistant_id" jsonschema:"description=ID of the assistant."`
}

func (a assistantGetArgs) Validate() error { return requireID("assistant_id", a.AssistantID, "asst_") }

type assistantUpdateArgs struct {
	providerArg
	AssistantID  string            `json:"assistant_id"`
	Model        string            `json:"model,omitempty"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
	Temperature  *float64          `json:"temperature,omitempty" jsonschema:"minimum=0,maximum=2"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (a assistantUpdateArgs) Validate() error {
	if err := requireID("assistant_id", a.AssistantID, "asst_"); err != nil {
		return err
	}
	if a.Temperature != nil && (*a.Temperature < 0 || *a.Temperature > 2) {
		return mcperr.Validationf("temperature", "must be between 0 and 2, got %v", *a.Temperature)
	}
	return nil
}

type assistantDeleteArgs struct {
	providerArg
	AssistantID string `json:"assistant_id"`
}

func (a assistantDeleteArgs) Validate() error {
	return requireID("assistant_id", a.AssistantID, "asst_")
}

// --- threads ---

type threadCreateArgs struct {
	providerArg
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (a threadCreateArgs) Validate() error { return nil }

type threadGetArgs struct {
	providerArg
	ThreadID string `json:"thread_id" jsonschema:"description=ID of the thread."`
}

func (a threadGetArgs) Validate() error { return requireID("thread_id", a.ThreadID, "thread_") }

type threadUpdateArgs struct {
	providerArg
	ThreadID string            `json:"thread_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (a threadUpdateArgs) Validate() error { return requireID("thread_id", a.ThreadID, "thread_") }

type threadDeleteArgs struct {
	providerArg
	ThreadID string `json:"thread_id"`
}

func (a threadDeleteArgs) Validate() error { return requireID("thread_id", a.ThreadID, "thread_") }

// --- messages ---

type messageCreateArgs struct {
	providerArg
	ThreadID string            `json:"thread_id"`
	Role     string            `json:"role" jsonschema:"enum=user,enum=assistant,description=Author role of the message."`
	Content  string            `json:"content" jsonschema:"description=Text content of the message."`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (a messageCreateArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	if a.Role != "user" && a.Role != "assistant" {
		return mcperr.Validationf("role", "must be user or assistant, got %q", a.Role)
	}
	if a.Content == "" {
		return mcperr.Validationf("content", "is required")
	}
	return nil
}

type messageListArgs struct {
	providerArg
	listArgs
	ThreadID string `json:"thread_id"`
}

func (a messageListArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return a.validateList()
}

type messageGetArgs struct {
	providerArg
	ThreadID  string `json:"thread_id"`
	MessageID string `json:"message_id"`
}

func (a messageGetArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("message_id", a.MessageID, "msg_")
}

type messageUpdateArgs struct {
	providerArg
	ThreadID  string            `json:"thread_id"`
	MessageID string            `json:"message_id"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (a messageUpdateArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("message_id", a.MessageID, "msg_")
}

type messageDeleteArgs struct {
	providerArg
	ThreadID  string `json:"thread_id"`
	MessageID string `json:"message_id"`
}

func (a messageDeleteArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("message_id", a.MessageID, "msg_")
}

// --- runs ---

type runCreateArgs struct {
	providerArg
	ThreadID     string            `json:"thread_id"`
	AssistantID  string            `json:"assistant_id"`
	Model        string            `json:"model,omitempty" jsonschema:"description=Override the assistant's model for this run."`
	Instructions string            `json:"instructions,omitempty" jsonschema:"description=Override the assistant's instructions for this run."`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

func (a runCreateArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("assistant_id", a.AssistantID, "asst_")
}

type runListArgs struct {
	providerArg
	listArgs
	ThreadID string `json:"thread_id"`
	Status   string `json:"status,omitempty" jsonschema:"enum=queued,enum=in_progress,enum=requires_action,enum=cancelling,enum=cancelled,enum=failed,enum=completed,enum=expired,description=Filter runs by status."`
}

func (a runListArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	if a.Status != "" && !assistant.IsValidRunStatus(assistant.RunStatus(a.Status)) {
		return mcperr.Validationf("status", "unknown run status %q", a.Status)
	}
	return a.validateList()
}

type runGetArgs struct {
	providerArg
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

func (a runGetArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("run_id", a.RunID, "run_")
}

type runUpdateArgs struct {
	providerArg
	ThreadID string            `json:"thread_id"`
	RunID    string            `json:"run_id"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (a runUpdateArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("run_id", a.RunID, "run_")
}

type runCancelArgs struct {
	providerArg
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

func (a runCancelArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	return requireID("run_id", a.RunID, "run_")
}

type toolOutputArg struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

type runSubmitToolOutputsArgs struct {
	providerArg
	ThreadID    string          `json:"thread_id"`
	RunID       string          `json:"run_id"`
	ToolOutputs []toolOutputArg `json:"tool_outputs" jsonschema:"description=Tool results to submit back to the waiting run."`
}

func (a runSubmitToolOutputsArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	if err := requireID("run_id", a.RunID, "run_"); err != nil {
		return err
	}
	if len(a.ToolOutputs) == 0 {
		return mcperr.Validationf("tool_outputs", "must contain at least one output")
	}
	for i, out := range a.ToolOutputs {
		if out.ToolCallID == "" {
			return mcperr.Validationf("tool_outputs", "entry %d is missing tool_call_id", i)
		}
	}
	return nil
}

// --- run steps ---

type runStepListArgs struct {
	providerArg
	listArgs
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
}

func (a runStepListArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	if err := requireID("run_id", a.RunID, "run_"); err != nil {
		return err
	}
	return a.validateList()
}

type runStepGetArgs struct {
	providerArg
	ThreadID string `json:"thread_id"`
	RunID    string `json:"run_id"`
	StepID   string `json:"step_id"`
}

func (a runStepGetArgs) Validate() error {
	if err := requireID("thread_id", a.ThreadID, "thread_"); err != nil {
		return err
	}
	if err := requireID("run_id", a.RunID, "run_"); err != nil {
		return err
	}
	return requireID("step_id", a.StepID, "step_")
}
