package tools

import (
	"context"

	"github.com/openassistants/assistants-mcp-go/assistant"
	"github.com/openassistants/assistants-mcp-go/provider"
)

// definitions builds every tool definition in listing order. Tool names match
// provider operation names one to one.
func definitions() []Definition {
	return []Definition{
		define(provider.OpAssistantCreate, CategoryAssistant,
			"Create an assistant with a model and optional instructions.",
			func(ctx context.Context, p provider.Provider, args assistantCreateArgs) (any, error) {
				return p.CreateAssistant(ctx, assistant.CreateAssistantParams{
					Model:        args.Model,
					Name:         args.Name,
					Description:  args.Description,
					Instructions: args.Instructions,
					Temperature:  args.Temperature,
					Metadata:     args.Metadata,
				})
			}),
		define(provider.OpAssistantList, CategoryAssistant,
			"List assistants, newest-first or oldest-first.",
			func(ctx context.Context, p provider.Provider, args assistantListArgs) (any, error) {
				return p.ListAssistants(ctx, args.listParams())
			}),
		define(provider.OpAssistantGet, CategoryAssistant,
			"Retrieve a single assistant by ID.",
			func(ctx context.Context, p provider.Provider, args assistantGetArgs) (any, error) {
				return p.GetAssistant(ctx, args.AssistantID)
			}),
		define(provider.OpAssistantUpdate, CategoryAssistant,
			"Update an assistant. Omitted fields are left unchanged.",
			func(ctx context.Context, p provider.Provider, args assistantUpdateArgs) (any, error) {
				return p.UpdateAssistant(ctx, args.AssistantID, assistant.UpdateAssistantParams{
					Model:        args.Model,
					Name:         args.Name,
					Description:  args.Description,
					Instructions: args.Instructions,
					Temperature:  args.Temperature,
					Metadata:     args.Metadata,
				})
			}),
		define(provider.OpAssistantDelete, CategoryAssistant,
			"Delete an assistant by ID.",
			func(ctx context.Context, p provider.Provider, args assistantDeleteArgs) (any, error) {
				return p.DeleteAssistant(ctx, args.AssistantID)
			}),

		define(provider.OpThreadCreate, CategoryThread,
			"Create a conversation thread.",
			func(ctx context.Context, p provider.Provider, args threadCreateArgs) (any, error) {
				return p.CreateThread(ctx, assistant.CreateThreadParams{Metadata: args.Metadata})
			}),
		define(provider.OpThreadGet, CategoryThread,
			"Retrieve a thread by ID.",
			func(ctx context.Context, p provider.Provider, args threadGetArgs) (any, error) {
				return p.GetThread(ctx, args.ThreadID)
			}),
		define(provider.OpThreadUpdate, CategoryThread,
			"Update a thread's metadata.",
			func(ctx context.Context, p provider.Provider, args threadUpdateArgs) (any, error) {
				return p.UpdateThread(ctx, args.ThreadID, assistant.UpdateThreadParams{Metadata: args.Metadata})
			}),
		define(provider.OpThreadDelete, CategoryThread,
			"Delete a thread and everything on it.",
			func(ctx context.Context, p provider.Provider, args threadDeleteArgs) (any, error) {
				return p.DeleteThread(ctx, args.ThreadID)
			}),

		define(provider.OpMessageCreate, CategoryMessage,
			"Append a message to a thread.",
			func(ctx context.Context, p provider.Provider, args messageCreateArgs) (any, error) {
				return p.CreateMessage(ctx, args.ThreadID, assistant.CreateMessageParams{
					Role:     args.Role,
					Content:  args.Content,
					Metadata: args.Metadata,
				})
			}),
		define(provider.OpMessageList, CategoryMessage,
			"List messages on a thread.",
			func(ctx context.Context, p provider.Provider, args messageListArgs) (any, error) {
				return p.ListMessages(ctx, args.ThreadID, args.listParams())
			}),
		define(provider.OpMessageGet, CategoryMessage,
			"Retrieve a message by ID.",
			func(ctx context.Context, p provider.Provider, args messageGetArgs) (any, error) {
				return p.GetMessage(ctx, args.ThreadID, args.MessageID)
			}),
		define(provider.OpMessageUpdate, CategoryMessage,
			"Update a message's metadata.",
			func(ctx context.Context, p provider.Provider, args messageUpdateArgs) (any, error) {
				return p.UpdateMessage(ctx, args.ThreadID, args.MessageID, assistant.UpdateMessageParams{Metadata: args.Metadata})
			}),
		define(provider.OpMessageDelete, CategoryMessage,
			"Delete a message from a thread.",
			func(ctx context.Context, p provider.Provider, args messageDeleteArgs) (any, error) {
				return p.DeleteMessage(ctx, args.ThreadID, args.MessageID)
			}),

		define(provider.OpRunCreate, CategoryRun,
			"Run an assistant against a thread.",
			func(ctx context.Context, p provider.Provider, args runCreateArgs) (any, error) {
				return p.CreateRun(ctx, args.ThreadID, assistant.CreateRunParams{
					AssistantID:  args.AssistantID,
					Model:        args.Model,
					Instructions: args.Instructions,
					Metadata:     args.Metadata,
				})
			}),
		define(provider.OpRunList, CategoryRun,
			"List runs on a thread, optionally filtered by status.",
			func(ctx context.Context, p provider.Provider, args runListArgs) (any, error) {
				return p.ListRuns(ctx, args.ThreadID, assistant.ListRunsParams{
					ListParams: args.listParams(),
					Status:     assistant.RunStatus(args.Status),
				})
			}),
		define(provider.OpRunGet, CategoryRun,
			"Retrieve a run by ID.",
			func(ctx context.Context, p provider.Provider, args runGetArgs) (any, error) {
				return p.GetRun(ctx, args.ThreadID, args.RunID)
			}),
		define(provider.OpRunUpdate, CategoryRun,
			"Update a run's metadata.",
			func(ctx context.Context, p provider.Provider, args runUpdateArgs) (any, error) {
				return p.UpdateRun(ctx, args.ThreadID, args.RunID, assistant.UpdateRunParams{Metadata: args.Metadata})
			}),
		define(provider.OpRunCancel, CategoryRun,
			"Cancel an in-flight run. Terminal runs are unaffected.",
			func(ctx context.Context, p provider.Provider, args runCancelArgs) (any, error) {
				return p.CancelRun(ctx, args.ThreadID, args.RunID)
			}),
		define(provider.OpRunSubmitToolOutputs, CategoryRun,
			"Submit tool results to a run waiting in requires_action.",
			func(ctx context.Context, p provider.Provider, args runSubmitToolOutputsArgs) (any, error) {
				outs := make([]assistant.ToolOutput, 0, len(args.ToolOutputs))
				for _, o := range args.ToolOutputs {
					outs = append(outs, assistant.ToolOutput{ToolCallID: o.ToolCallID, Output: o.Output})
				}
				return p.SubmitToolOutputs(ctx, args.ThreadID, args.RunID, assistant.SubmitToolOutputsParams{ToolOutputs: outs})
			}),

		define(provider.OpRunStepList, CategoryRunStep,
			"List the steps a run took.",
			func(ctx context.Context, p provider.Provider, args runStepListArgs) (any, error) {
				return p.ListRunSteps(ctx, args.ThreadID, args.RunID, args.listParams())
			}),
		define(provider.OpRunStepGet, CategoryRunStep,
			"Retrieve a single run step.",
			func(ctx context.Context, p provider.Provider, args runStepGetArgs) (any, error) {
				return p.GetRunStep(ctx, args.ThreadID, args.RunID, args.StepID)
			}),
	}
}
