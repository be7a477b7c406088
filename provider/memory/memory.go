// Package memory implements an in-process assistant provider. It backs the
// default development configuration and doubles as the test twin for the
// protocol core: every capability operation is implemented against local
// state with the same list/paging semantics a remote backend would expose.
//
// State lives for the life of the process only; nothing is persisted.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openassistants/assistants-mcp-go/assistant"
	"github.com/openassistants/assistants-mcp-go/mcperr"
	"github.com/openassistants/assistants-mcp-go/provider"
)

// Name is the registered provider name.
const Name = "memory"

// Models the memory provider pretends to offer.
var Models = []string{
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-4.1",
	"o3-mini",
}

// Provider is the in-memory implementation of provider.Provider.
type Provider struct {
	mu sync.RWMutex

	assistants map[string]*assistant.Assistant
	threads    map[string]*assistant.Thread
	messages   map[string][]*assistant.Message // threadID -> insertion order
	runs       map[string][]*assistant.Run     // threadID -> insertion order
	steps      map[string][]*assistant.RunStep // runID -> insertion order

	assistantOrder []string

	clock func() int64
}

// New constructs an empty memory provider.
func New() *Provider {
	return &Provider{
		assistants: make(map[string]*assistant.Assistant),
		threads:    make(map[string]*assistant.Thread),
		messages:   make(map[string][]*assistant.Message),
		runs:       make(map[string][]*assistant.Run),
		steps:      make(map[string][]*assistant.RunStep),
		clock:      func() int64 { return time.Now().Unix() },
	}
}

// Factory adapts New to the registry factory signature.
func Factory() provider.Provider { return New() }

func (p *Provider) Metadata() provider.Info {
	return provider.Info{
		Name:        Name,
		DisplayName: "In-Memory Assistant Provider",
		Capabilities: provider.CapabilitySet{
			Assistants: true,
			Threads:    true,
			Messages:   true,
			Runs:       true,
			RunSteps:   true,
		},
	}
}

func (p *Provider) Initialize(ctx context.Context, cfg provider.Config) error { return nil }

func (p *Provider) ValidateConnection(ctx context.Context) error { return nil }

func newID(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func notFound(kind, id string) error {
	return &mcperr.NotFoundError{Kind: kind, ID: id}
}

// --- Assistants ---

func (p *Provider) CreateAssistant(ctx context.Context, params assistant.CreateAssistantParams) (*assistant.Assistant, error) {
	if params.Model == "" {
		return nil, mcperr.Validationf("model", "is required")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	a := &assistant.Assistant{
		ID:           newID("asst"),
		Object:       assistant.ObjectAssistant,
		CreatedAt:    p.clock(),
		Name:         params.Name,
		Description:  params.Description,
		Model:        params.Model,
		Instructions: params.Instructions,
		Temperature:  params.Temperature,
		Metadata:     params.Metadata,
	}
	p.assistants[a.ID] = a
	p.assistantOrder = append(p.assistantOrder, a.ID)
	return cloneAssistant(a), nil
}

func (p *Provider) ListAssistants(ctx context.Context, params assistant.ListParams) (*assistant.List[assistant.Assistant], error) {
	p.mu.RLock()
	all := make([]*assistant.Assistant, 0, len(p.assistantOrder))
	for _, id := range p.assistantOrder {
		if a, ok := p.assistants[id]; ok {
			all = append(all, a)
		}
	}
	p.mu.RUnlock()
	return pageOf(all, params, func(a *assistant.Assistant) string { return a.ID }, cloneAssistant)
}

func (p *Provider) GetAssistant(ctx context.Context, assistantID string) (*assistant.Assistant, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a, ok := p.assistants[assistantID]
	if !ok {
		return nil, notFound("assistant", assistantID)
	}
	return cloneAssistant(a), nil
}

func (p *Provider) UpdateAssistant(ctx context.Context, assistantID string, params assistant.UpdateAssistantParams) (*assistant.Assistant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	a, ok := p.assistants[assistantID]
	if !ok {
		return nil, notFound("assistant", assistantID)
	}
	if params.Model != "" {
		a.Model = params.Model
	}
	if params.Name != "" {
		a.Name = params.Name
	}
	if params.Description != "" {
		a.Description = params.Description
	}
	if params.Instructions != "" {
		a.Instructions = params.Instructions
	}
	if params.Temperature != nil {
		a.Temperature = params.Temperature
	}
	if params.Metadata != nil {
		a.Metadata = params.Metadata
	}
	return cloneAssistant(a), nil
}

func (p *Provider) DeleteAssistant(ctx context.Context, assistantID string) (*assistant.Deleted, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.assistants[assistantID]; !ok {
		return nil, notFound("assistant", assistantID)
	}
	delete(p.assistants, assistantID)
	for i, id := range p.assistantOrder {
		if id == assistantID {
			p.assistantOrder = append(p.assistantOrder[:i], p.assistantOrder[i+1:]...)
			break
		}
	}
	return &assistant.Deleted{ID: assistantID, Object: assistant.ObjectAssistantDeleted, Deleted: true}, nil
}

// --- Threads ---

func (p *Provider) CreateThread(ctx context.Context, params assistant.CreateThreadParams) (*assistant.Thread, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := &assistant.Thread{
		ID:        newID("thread"),
		Object:    assistant.ObjectThread,
		CreatedAt: p.clock(),
		Metadata:  params.Metadata,
	}
	p.threads[t.ID] = t
	return cloneThread(t), nil
}

func (p *Provider) GetThread(ctx context.Context, threadID string) (*assistant.Thread, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.threads[threadID]
	if !ok {
		return nil, notFound("thread", threadID)
	}
	return cloneThread(t), nil
}

func (p *Provider) UpdateThread(ctx context.Context, threadID string, params assistant.UpdateThreadParams) (*assistant.Thread, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.threads[threadID]
	if !ok {
		return nil, notFound("thread", threadID)
	}
	if params.Metadata != nil {
		t.Metadata = params.Metadata
	}
	return cloneThread(t), nil
}

func (p *Provider) DeleteThread(ctx context.Context, threadID string) (*assistant.Deleted, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.threads[threadID]; !ok {
		return nil, notFound("thread", threadID)
	}
	delete(p.threads, threadID)
	delete(p.messages, threadID)
	for _, r := range p.runs[threadID] {
		delete(p.steps, r.ID)
	}
	delete(p.runs, threadID)
	return &assistant.Deleted{ID: threadID, Object: assistant.ObjectThreadDeleted, Deleted: true}, nil
}

// --- Messages ---

func (p *Provider) CreateMessage(ctx context.Context, threadID string, params assistant.CreateMessageParams) (*assistant.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.threads[threadID]; !ok {
		return nil, notFound("thread", threadID)
	}
	m := &assistant.Message{
		ID:        newID("msg"),
		Object:    assistant.ObjectMessage,
		CreatedAt: p.clock(),
		ThreadID:  threadID,
		Role:      params.Role,
		Content:   params.Content,
		Metadata:  params.Metadata,
	}
	p.messages[threadID] = append(p.messages[threadID], m)
	return cloneMessage(m), nil
}

func (p *Provider) ListMessages(ctx context.Context, threadID string, params assistant.ListParams) (*assistant.List[assistant.Message], error) {
	p.mu.RLock()
	if _, ok := p.threads[threadID]; !ok {
		p.mu.RUnlock()
		return nil, notFound("thread", threadID)
	}
	all := make([]*assistant.Message, len(p.messages[threadID]))
	copy(all, p.messages[threadID])
	p.mu.RUnlock()
	return pageOf(all, params, func(m *assistant.Message) string { return m.ID }, cloneMessage)
}

func (p *Provider) GetMessage(ctx context.Context, threadID, messageID string) (*assistant.Message, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, m := range p.messages[threadID] {
		if m.ID == messageID {
			return cloneMessage(m), nil
		}
	}
	return nil, notFound("message", messageID)
}

func (p *Provider) UpdateMessage(ctx context.Context, threadID, messageID string, params assistant.UpdateMessageParams) (*assistant.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, m := range p.messages[threadID] {
		if m.ID == messageID {
			if params.Metadata != nil {
				m.Metadata = params.Metadata
			}
			return cloneMessage(m), nil
		}
	}
	return nil, notFound("message", messageID)
}

func (p *Provider) DeleteMessage(ctx context.Context, threadID, messageID string) (*assistant.Deleted, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.messages[threadID]
	for i, m := range msgs {
		if m.ID == messageID {
			p.messages[threadID] = append(msgs[:i], msgs[i+1:]...)
			return &assistant.Deleted{ID: messageID, Object: assistant.ObjectMessageDeleted, Deleted: true}, nil
		}
	}
	return nil, notFound("message", messageID)
}

// --- Runs ---

func (p *Provider) CreateRun(ctx context.Context, threadID string, params assistant.CreateRunParams) (*assistant.Run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.threads[threadID]; !ok {
		return nil, notFound("thread", threadID)
	}
	a, ok := p.assistants[params.AssistantID]
	if !ok {
		return nil, notFound("assistant", params.AssistantID)
	}

	model := params.Model
	if model == "" {
		model = a.Model
	}
	instructions := params.Instructions
	if instructions == "" {
		instructions = a.Instructions
	}

	r := &assistant.Run{
		ID:           newID("run"),
		Object:       assistant.ObjectRun,
		CreatedAt:    p.clock(),
		ThreadID:     threadID,
		AssistantID:  params.AssistantID,
		Status:       assistant.RunStatusCompleted,
		Model:        model,
		Instructions: instructions,
		Metadata:     params.Metadata,
	}
	p.runs[threadID] = append(p.runs[threadID], r)

	// A local run completes synchronously: one message_creation step plus the
	// assistant message it produced.
	reply := &assistant.Message{
		ID:        newID("msg"),
		Object:    assistant.ObjectMessage,
		CreatedAt: p.clock(),
		ThreadID:  threadID,
		Role:      "assistant",
		Content:   fmt.Sprintf("[%s] acknowledged by %s", model, a.ID),
	}
	p.messages[threadID] = append(p.messages[threadID], reply)
	p.steps[r.ID] = append(p.steps[r.ID], &assistant.RunStep{
		ID:        newID("step"),
		Object:    assistant.ObjectRunStep,
		CreatedAt: p.clock(),
		RunID:     r.ID,
		ThreadID:  threadID,
		Type:      "message_creation",
		Status:    assistant.RunStatusCompleted,
		Details:   reply.ID,
	})

	return cloneRun(r), nil
}

func (p *Provider) ListRuns(ctx context.Context, threadID string, params assistant.ListRunsParams) (*assistant.List[assistant.Run], error) {
	p.mu.RLock()
	if _, ok := p.threads[threadID]; !ok {
		p.mu.RUnlock()
		return nil, notFound("thread", threadID)
	}
	all := make([]*assistant.Run, 0, len(p.runs[threadID]))
	for _, r := range p.runs[threadID] {
		if params.Status != "" && r.Status != params.Status {
			continue
		}
		all = append(all, r)
	}
	p.mu.RUnlock()
	return pageOf(all, params.ListParams, func(r *assistant.Run) string { return r.ID }, cloneRun)
}

func (p *Provider) GetRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, err := p.findRun(threadID, runID)
	if err != nil {
		return nil, err
	}
	return cloneRun(r), nil
}

func (p *Provider) UpdateRun(ctx context.Context, threadID, runID string, params assistant.UpdateRunParams) (*assistant.Run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, err := p.findRun(threadID, runID)
	if err != nil {
		return nil, err
	}
	if params.Metadata != nil {
		r.Metadata = params.Metadata
	}
	return cloneRun(r), nil
}

func (p *Provider) CancelRun(ctx context.Context, threadID, runID string) (*assistant.Run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, err := p.findRun(threadID, runID)
	if err != nil {
		return nil, err
	}
	if !r.Status.IsTerminal() {
		r.Status = assistant.RunStatusCancelled
	}
	return cloneRun(r), nil
}

func (p *Provider) SubmitToolOutputs(ctx context.Context, threadID, runID string, params assistant.SubmitToolOutputsParams) (*assistant.Run, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, err := p.findRun(threadID, runID)
	if err != nil {
		return nil, err
	}
	if r.Status != assistant.RunStatusRequiresAction {
		return nil, mcperr.Validationf("run_id", "run %s is %s, not %s", runID, r.Status, assistant.RunStatusRequiresAction)
	}
	for _, out := range params.ToolOutputs {
		p.steps[r.ID] = append(p.steps[r.ID], &assistant.RunStep{
			ID:        newID("step"),
			Object:    assistant.ObjectRunStep,
			CreatedAt: p.clock(),
			RunID:     r.ID,
			ThreadID:  threadID,
			Type:      "tool_calls",
			Status:    assistant.RunStatusCompleted,
			Details:   out.ToolCallID,
		})
	}
	r.Status = assistant.RunStatusCompleted
	return cloneRun(r), nil
}

func (p *Provider) findRun(threadID, runID string) (*assistant.Run, error) {
	if _, ok := p.threads[threadID]; !ok {
		return nil, notFound("thread", threadID)
	}
	for _, r := range p.runs[threadID] {
		if r.ID == runID {
			return r, nil
		}
	}
	return nil, notFound("run", runID)
}

// --- Run steps ---

func (p *Provider) ListRunSteps(ctx context.Context, threadID, runID string, params assistant.ListParams) (*assistant.List[assistant.RunStep], error) {
	p.mu.RLock()
	if _, err := p.findRun(threadID, runID); err != nil {
		p.mu.RUnlock()
		return nil, err
	}
	all := make([]*assistant.RunStep, len(p.steps[runID]))
	copy(all, p.steps[runID])
	p.mu.RUnlock()
	return pageOf(all, params, func(s *assistant.RunStep) string { return s.ID }, cloneRunStep)
}

func (p *Provider) GetRunStep(ctx context.Context, threadID, runID, stepID string) (*assistant.RunStep, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, err := p.findRun(threadID, runID); err != nil {
		return nil, err
	}
	for _, s := range p.steps[runID] {
		if s.ID == stepID {
			return cloneRunStep(s), nil
		}
	}
	return nil, notFound("run step", stepID)
}

// --- list paging ---

// pageOf applies provider-style paging (order, after/before anchors, limit)
// to an insertion-ordered snapshot.
func pageOf[T any](all []*T, params assistant.ListParams, idOf func(*T) string, clone func(*T) *T) (*assistant.List[T], error) {
	items := make([]*T, len(all))
	copy(items, all)

	if params.Order == "desc" {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}

	if params.After != "" {
		idx := indexOf(items, params.After, idOf)
		if idx < 0 {
			return nil, mcperr.Validationf("after", "unknown object id %q", params.After)
		}
		items = items[idx+1:]
	} else if params.Before != "" {
		idx := indexOf(items, params.Before, idOf)
		if idx < 0 {
			return nil, mcperr.Validationf("before", "unknown object id %q", params.Before)
		}
		items = items[:idx]
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	out := &assistant.List[T]{Object: assistant.ObjectList, Data: make([]T, 0, len(items)), HasMore: hasMore}
	for _, it := range items {
		out.Data = append(out.Data, *clone(it))
	}
	if len(items) > 0 {
		out.FirstID = idOf(items[0])
		out.LastID = idOf(items[len(items)-1])
	}
	return out, nil
}

func indexOf[T any](items []*T, id string, idOf func(*T) string) int {
	for i, it := range items {
		if idOf(it) == id {
			return i
		}
	}
	return -1
}

func cloneAssistant(a *assistant.Assistant) *assistant.Assistant { c := *a; return &c }
func cloneThread(t *assistant.Thread) *assistant.Thread          { c := *t; return &c }
func cloneMessage(m *assistant.Message) *assistant.Message       { c := *m; return &c }
func cloneRun(r *assistant.Run) *assistant.Run                   { c := *r; return &c }
func cloneRunStep(s *assistant.RunStep) *assistant.RunStep       { c := *s; return &c }
