package provider

import (
	"context"

	"github.com/openassistants/assistants-mcp-go/assistant"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// Unimplemented is the mandatory fallback for partial providers. Embedding it
// satisfies every domain operation of the Provider interface with a loud,
// typed UnsupportedOperationError. Callers can distinguish "not implemented
// by this provider" from "does not exist" via errors.As.
//
// ProviderName should be set to the embedding provider's registered name so
// errors identify their origin.
type Unimplemented struct {
	ProviderName string
}

func (u Unimplemented) unsupported(op string) error {
	name := u.ProviderName
	if name == "" {
		name = "unknown"
	}
	return &mcperr.UnsupportedOperationError{Provider: name, Operation: op}
}

func (u Unimplemented) CreateAssistant(ctx context.Context, params assistant.CreateAssistantParams) (*assistant.Assistant, error) {
	return nil, u.unsupported(OpAssistantCreate)
}

func (u Unimplemented) ListAssistants(ctx context.Context, params assistant.ListParams) (*assistant.List[assistant.Assistant], error) {
	return nil, u.unsupported(OpAssistantList)
}

func (u Unimplemented) GetAssistant(ctx context.Context, assistantID string) (*assistant.Assistant, error) {
	return nil, u.unsupported(OpAssistantGet)
}

func (u Unimplemented) UpdateAssistant(ctx context.Context, assistantID string, params assistant.UpdateAssistantParams) (*assistant.Assistant, error) {
	return nil, u.unsupported(OpAssistantUpdate)
}

func (u Unimplemented) DeleteAssistant(ctx context.Context, assistantID string) (*assistant.Deleted, error) {
	return nil, u.unsupported(OpAssistantDelete)
}

func (u Unimplemented) CreateThread(ctx context.Context, params assistant.CreateThreadParams) (*assistant.Thread, error) {
	return nil, u.unsupported(OpThreadCreate)
}

func (u Unimplemented) GetThread(ctx context.Context, threadID string) (*assistant.Thread, error) {
	return nil, u.unsupported(OpThreadGet)
}

func (u Unimplemented) UpdateThread(ctx context.Context, threadID string, params assistant.UpdateThreadParams) (*assistant.Thread, error) {
	return nil, u.unsupported(OpThreadUpdate)
}

func (u Unimplemented) DeleteThread(ctx context.Context, threadID string) (*assistant.Deleted, error) {
	return nil, u.unsupported(OpThreadDelete)
}

func (u Unimplemented) CreateMessage(ctx context.Context, threadID string, params assistant.CreateMessageParams) (*assistant.Message, error) {
	return nil, u.unsupported(OpMessageCreate)
}

func (u Unimplemented) ListMessages(ctx context.Context, threadID string, params assistant.ListParams) (*assistant.List[assistant.Message], error) {
	return nil, u.unsupported(OpMessageList)
}

func (u Unimplemented) GetMessage(ctx context.Context, threadID, messageID string) (*assistant.Message, error) {
	return nil, u.unsupported(OpMessageGet)
}

func (u Unimplemented) UpdateMessage(ctx context.Context, threadID, messageID string, params assistant.UpdateMessageParams) (*assistant.Message, error) {
	return nil, u.unsupported(OpMessageUpdate)
}

func (u Unimplemented) DeleteMessage(ctx context.Context, threadID, messageID string) (*assistant.Deleted, error) {
	return nil, u.unsupported(OpMessageDelete)
}

func (u Unimplemented) CreateRun(ctx context.Context, threadID string, params assistant.CreateRunParams) (*assistant.Run, error) {
	return nil, u.unsupported(OpRunCreate)
}

func (u Unimplemented) ListRuns(ctx context.Context, threadID string, params assistant.ListRunsParams) (*assistant.List[assistant.Run], error) {
	return nil, u.unsupported(OpRunList)
}

func (u Unimplemented) GetRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	return nil, u.unsupported(OpRunGet)
}

func (u Unimplemented) UpdateRun(ctx context.Context, threadID, runID string, params assistant.UpdateRunParams) (*assistant.Run, error) {
	return nil, u.unsupported(OpRunUpdate)
}

func (u Unimplemented) CancelRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	return nil, u.unsupported(OpRunCancel)
}

func (u Unimplemented) SubmitToolOutputs(ctx context.Context, threadID, runID string, params assistant.SubmitToolOutputsParams) (*assistant.Run, error) {
	return nil, u.unsupported(OpRunSubmitToolOutputs)
}

func (u Unimplemented) ListRunSteps(ctx context.Context, threadID, runID string, params assistant.ListParams) (*assistant.List[assistant.RunStep], error) {
	return nil, u.unsupported(OpRunStepList)
}

func (u Unimplemented) GetRunStep(ctx context.Context, threadID, runID, stepID string) (*assistant.RunStep, error) {
	return nil, u.unsupported(OpRunStepGet)
}
