// Package provider defines the capability contract every assistant backend
// must satisfy, plus the registry that owns configured provider instances.
//
// Conventions:
//   - One interface method per domain operation. Implementations that do not
//     support an operation embed Unimplemented, whose methods fail loudly
//     with a typed UnsupportedOperationError; a missing capability is never a
//     silent no-op.
//   - All methods accept a context.Context and MUST honor cancellation. Calls
//     are single-attempt; the core never retries.
//   - A Provider is constructed and connection-validated once at registration
//     and treated as immutable afterwards. Request handling never mutates it.
package provider

import (
	"context"

	"github.com/openassistants/assistants-mcp-go/assistant"
)

// Operation names, used in capability metadata and unsupported-operation
// errors. They match the tool names exposed over the protocol.
const (
	OpAssistantCreate = "assistant-create"
	OpAssistantList   = "assistant-list"
	OpAssistantGet    = "assistant-get"
	OpAssistantUpdate = "assistant-update"
	OpAssistantDelete = "assistant-delete"

	OpThreadCreate = "thread-create"
	OpThreadGet    = "thread-get"
	OpThreadUpdate = "thread-update"
	OpThreadDelete = "thread-delete"

	OpMessageCreate = "message-create"
	OpMessageList   = "message-list"
	OpMessageGet    = "message-get"
	OpMessageUpdate = "message-update"
	OpMessageDelete = "message-delete"

	OpRunCreate            = "run-create"
	OpRunList              = "run-list"
	OpRunGet               = "run-get"
	OpRunUpdate            = "run-update"
	OpRunCancel            = "run-cancel"
	OpRunSubmitToolOutputs = "run-submit-tool-outputs"

	OpRunStepList = "run-step-list"
	OpRunStepGet  = "run-step-get"
)

// Operations lists all capability operations in definition order.
var Operations = []string{
	OpAssistantCreate, OpAssistantList, OpAssistantGet, OpAssistantUpdate, OpAssistantDelete,
	OpThreadCreate, OpThreadGet, OpThreadUpdate, OpThreadDelete,
	OpMessageCreate, OpMessageList, OpMessageGet, OpMessageUpdate, OpMessageDelete,
	OpRunCreate, OpRunList, OpRunGet, OpRunUpdate, OpRunCancel, OpRunSubmitToolOutputs,
	OpRunStepList, OpRunStepGet,
}

// CapabilitySet flags which operation families a provider implements.
type CapabilitySet struct {
	Assistants bool `json:"assistants"`
	Threads    bool `json:"threads"`
	Messages   bool `json:"messages"`
	Runs       bool `json:"runs"`
	RunSteps   bool `json:"runSteps"`
}

// Info is static provider metadata surfaced through the protocol.
type Info struct {
	Name         string        `json:"name"`
	DisplayName  string        `json:"displayName"`
	Capabilities CapabilitySet `json:"capabilities"`
}

// Config carries per-provider configuration. Credential is an opaque string
// passed through to the backend; the core never interprets it.
type Config struct {
	Endpoint   string            `yaml:"endpoint" json:"endpoint,omitempty"`
	Credential string            `yaml:"credential" json:"-"`
	Options    map[string]string `yaml:"options" json:"options,omitempty"`
}

// Provider is the capability interface backing the protocol surface: one
// method per domain operation plus metadata and lifecycle hooks.
type Provider interface {
	// Metadata returns static provider information. It must be cheap and
	// side-effect free.
	Metadata() Info

	// Initialize applies configuration. Called exactly once, before
	// ValidateConnection.
	Initialize(ctx context.Context, cfg Config) error

	// ValidateConnection verifies the backend is reachable with the
	// configured credentials. Called once at registration.
	ValidateConnection(ctx context.Context) error

	// Assistants
	CreateAssistant(ctx context.Context, params assistant.CreateAssistantParams) (*assistant.Assistant, error)
	ListAssistants(ctx context.Context, params assistant.ListParams) (*assistant.List[assistant.Assistant], error)
	GetAssistant(ctx context.Context, assistantID string) (*assistant.Assistant, error)
	UpdateAssistant(ctx context.Context, assistantID string, params assistant.UpdateAssistantParams) (*assistant.Assistant, error)
	DeleteAssistant(ctx context.Context, assistantID string) (*assistant.Deleted, error)

	// Threads
	CreateThread(ctx context.Context, params assistant.CreateThreadParams) (*assistant.Thread, error)
	GetThread(ctx context.Context, threadID string) (*assistant.Thread, error)
	UpdateThread(ctx context.Context, threadID string, params assistant.UpdateThreadParams) (*assistant.Thread, error)
	DeleteThread(ctx context.Context, threadID string) (*assistant.Deleted, error)

	// Messages
	CreateMessage(ctx context.Context, threadID string, params assistant.CreateMessageParams) (*assistant.Message, error)
	ListMessages(ctx context.Context, threadID string, params assistant.ListParams) (*assistant.List[assistant.Message], error)
	GetMessage(ctx context.Context, threadID, messageID string) (*assistant.Message, error)
	UpdateMessage(ctx context.Context, threadID, messageID string, params assistant.UpdateMessageParams) (*assistant.Message, error)
	DeleteMessage(ctx context.Context, threadID, messageID string) (*assistant.Deleted, error)

	// Runs
	CreateRun(ctx context.Context, threadID string, params assistant.CreateRunParams) (*assistant.Run, error)
	ListRuns(ctx context.Context, threadID string, params assistant.ListRunsParams) (*assistant.List[assistant.Run], error)
	GetRun(ctx context.Context, threadID, runID string) (*assistant.Run, error)
	UpdateRun(ctx context.Context, threadID, runID string, params assistant.UpdateRunParams) (*assistant.Run, error)
	CancelRun(ctx context.Context, threadID, runID string) (*assistant.Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, params assistant.SubmitToolOutputsParams) (*assistant.Run, error)

	// Run steps
	ListRunSteps(ctx context.Context, threadID, runID string, params assistant.ListParams) (*assistant.List[assistant.RunStep], error)
	GetRunStep(ctx context.Context, threadID, runID, stepID string) (*assistant.RunStep, error)
}
