package assistant

// ListParams are the shared paging controls for provider list operations.
// Before and After are provider-side object IDs and are mutually exclusive.
type ListParams struct {
	Limit  int    `json:"limit,omitempty"`
	Order  string `json:"order,omitempty"`
	After  string `json:"after,omitempty"`
	Before string `json:"before,omitempty"`
}

// CreateAssistantParams configures a new assistant. Model is required.
type CreateAssistantParams struct {
	Model        string            `json:"model"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
	Temperature  *float64          `json:"temperature,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// UpdateAssistantParams carries partial updates; zero-valued fields are left
// unchanged by providers.
type UpdateAssistantParams struct {
	Model        string            `json:"model,omitempty"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
	Temperature  *float64          `json:"temperature,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// CreateThreadParams configures a new thread.
type CreateThreadParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpdateThreadParams carries partial thread updates.
type UpdateThreadParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateMessageParams appends a message to a thread.
type CreateMessageParams struct {
	Role     string            `json:"role"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// UpdateMessageParams carries partial message updates.
type UpdateMessageParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateRunParams starts a run of an assistant against a thread. Model and
// Instructions, when set, override the assistant's configuration for this
// run only.
type CreateRunParams struct {
	AssistantID  string            `json:"assistant_id"`
	Model        string            `json:"model,omitempty"`
	Instructions string            `json:"instructions,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// UpdateRunParams carries partial run updates.
type UpdateRunParams struct {
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ToolOutput is one tool result submitted back to a waiting run.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// SubmitToolOutputsParams resumes a run in requires_action state.
type SubmitToolOutputsParams struct {
	ToolOutputs []ToolOutput `json:"tool_outputs"`
}

// ListRunsParams filters run listings.
type ListRunsParams struct {
	ListParams
	Status RunStatus `json:"status,omitempty"`
}
