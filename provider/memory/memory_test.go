package memory

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/openassistants/assistants-mcp-go/assistant"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p := New()
	var tick int64
	p.clock = func() int64 { tick++; return tick }
	return p
}

func TestAssistantCRUD(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	a, err := p.CreateAssistant(ctx, assistant.CreateAssistantParams{
		Model: "gpt-4o",
		Name:  "helper",
	})
	if err != nil {
		t.Fatalf("CreateAssistant: %v", err)
	}
	if !strings.HasPrefix(a.ID, "asst_") {
		t.Errorf("assistant id %q should carry asst_ prefix", a.ID)
	}
	if a.Object != assistant.ObjectAssistant {
		t.Errorf("object = %q, want %q", a.Object, assistant.ObjectAssistant)
	}

	got, err := p.GetAssistant(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAssistant: %v", err)
	}
	if got.Name != "helper" {
		t.Errorf("Name = %q, want helper", got.Name)
	}

	upd, err := p.UpdateAssistant(ctx, a.ID, assistant.UpdateAssistantParams{Name: "renamed"})
	if err != nil {
		t.Fatalf("UpdateAssistant: %v", err)
	}
	if upd.Name != "renamed" || upd.Model != "gpt-4o" {
		t.Errorf("partial update clobbered fields: %+v", upd)
	}

	del, err := p.DeleteAssistant(ctx, a.ID)
	if err != nil {
		t.Fatalf("DeleteAssistant: %v", err)
	}
	if !del.Deleted || del.Object != assistant.ObjectAssistantDeleted {
		t.Errorf("delete ack = %+v", del)
	}
	if _, err := p.GetAssistant(ctx, a.ID); err == nil {
		t.Error("deleted assistant should not be retrievable")
	}
}

func TestCreateAssistantRequiresModel(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.CreateAssistant(context.Background(), assistant.CreateAssistantParams{Name: "no-model"})
	var ve *mcperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %T: %v", err, err)
	}
	if ve.Field != "model" {
		t.Errorf("error should name the model field, got %q", ve.Field)
	}
}

func TestGetUnknownAssistantIsNotFound(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.GetAssistant(context.Background(), "asst_missing")
	var nf *mcperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %T: %v", err, err)
	}
	if nf.Kind != "assistant" || nf.ID != "asst_missing" {
		t.Errorf("error should name kind and id, got %+v", nf)
	}
}

func TestListAssistantsPaging(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		a, err := p.CreateAssistant(ctx, assistant.CreateAssistantParams{Model: "gpt-4o"})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, a.ID)
	}

	t.Run("limit and has_more", func(t *testing.T) {
		page, err := p.ListAssistants(ctx, assistant.ListParams{Limit: 2})
		if err != nil {
			t.Fatal(err)
		}
		if len(page.Data) != 2 || !page.HasMore {
			t.Fatalf("got %d items, has_more=%v", len(page.Data), page.HasMore)
		}
		if page.FirstID != ids[0] || page.LastID != ids[1] {
			t.Errorf("anchors = %q..%q, want %q..%q", page.FirstID, page.LastID, ids[0], ids[1])
		}
	})

	t.Run("after anchor resumes", func(t *testing.T) {
		page, err := p.ListAssistants(ctx, assistant.ListParams{Limit: 2, After: ids[1]})
		if err != nil {
			t.Fatal(err)
		}
		if page.FirstID != ids[2] {
			t.Errorf("resume should start at ids[2]=%q, got %q", ids[2], page.FirstID)
		}
	})

	t.Run("desc reverses", func(t *testing.T) {
		page, err := p.ListAssistants(ctx, assistant.ListParams{Limit: 1, Order: "desc"})
		if err != nil {
			t.Fatal(err)
		}
		if page.FirstID != ids[4] {
			t.Errorf("desc first = %q, want newest %q", page.FirstID, ids[4])
		}
	})

	t.Run("unknown anchor rejected", func(t *testing.T) {
		_, err := p.ListAssistants(ctx, assistant.ListParams{After: "asst_missing"})
		var ve *mcperr.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("want ValidationError, got %T: %v", err, err)
		}
	})
}

func TestThreadDeleteCascades(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	th, err := p.CreateThread(ctx, assistant.CreateThreadParams{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.CreateMessage(ctx, th.ID, assistant.CreateMessageParams{Role: "user", Content: "hi"}); err != nil {
		t.Fatal(err)
	}

	if _, err := p.DeleteThread(ctx, th.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := p.ListMessages(ctx, th.ID, assistant.ListParams{}); err == nil {
		t.Error("messages of a deleted thread should be gone")
	}
}

func TestMessageLifecycle(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	th, _ := p.CreateThread(ctx, assistant.CreateThreadParams{})

	m, err := p.CreateMessage(ctx, th.ID, assistant.CreateMessageParams{Role: "user", Content: "hello"})
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if !strings.HasPrefix(m.ID, "msg_") || m.ThreadID != th.ID {
		t.Errorf("message = %+v", m)
	}

	upd, err := p.UpdateMessage(ctx, th.ID, m.ID, assistant.UpdateMessageParams{Metadata: map[string]string{"k": "v"}})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Metadata["k"] != "v" || upd.Content != "hello" {
		t.Errorf("update should only touch metadata: %+v", upd)
	}

	if _, err := p.DeleteMessage(ctx, th.ID, m.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := p.GetMessage(ctx, th.ID, m.ID); err == nil {
		t.Error("deleted message should not be retrievable")
	}
}

func TestRunLifecycle(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	a, _ := p.CreateAssistant(ctx, assistant.CreateAssistantParams{Model: "gpt-4o", Instructions: "be brief"})
	th, _ := p.CreateThread(ctx, assistant.CreateThreadParams{})

	r, err := p.CreateRun(ctx, th.ID, assistant.CreateRunParams{AssistantID: a.ID})
	if err != nil {
		t.Fatalf("CreateRun: %v", err)
	}
	if !strings.HasPrefix(r.ID, "run_") {
		t.Errorf("run id %q should carry run_ prefix", r.ID)
	}
	if r.Status != assistant.RunStatusCompleted {
		t.Errorf("local runs complete synchronously, got %s", r.Status)
	}
	if r.Model != "gpt-4o" || r.Instructions != "be brief" {
		t.Errorf("run should inherit assistant config: %+v", r)
	}

	t.Run("run produces a step and a reply", func(t *testing.T) {
		steps, err := p.ListRunSteps(ctx, th.ID, r.ID, assistant.ListParams{})
		if err != nil {
			t.Fatal(err)
		}
		if len(steps.Data) != 1 || steps.Data[0].Type != "message_creation" {
			t.Fatalf("steps = %+v", steps.Data)
		}
		step, err := p.GetRunStep(ctx, th.ID, r.ID, steps.Data[0].ID)
		if err != nil {
			t.Fatal(err)
		}
		if step.RunID != r.ID {
			t.Errorf("step run id = %q, want %q", step.RunID, r.ID)
		}

		msgs, err := p.ListMessages(ctx, th.ID, assistant.ListParams{})
		if err != nil {
			t.Fatal(err)
		}
		if len(msgs.Data) != 1 || msgs.Data[0].Role != "assistant" {
			t.Fatalf("messages = %+v", msgs.Data)
		}
	})

	t.Run("model override wins", func(t *testing.T) {
		r2, err := p.CreateRun(ctx, th.ID, assistant.CreateRunParams{AssistantID: a.ID, Model: "o3-mini"})
		if err != nil {
			t.Fatal(err)
		}
		if r2.Model != "o3-mini" {
			t.Errorf("Model = %q, want override o3-mini", r2.Model)
		}
	})

	t.Run("cancel of a terminal run is a no-op", func(t *testing.T) {
		got, err := p.CancelRun(ctx, th.ID, r.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != assistant.RunStatusCompleted {
			t.Errorf("terminal status must not regress, got %s", got.Status)
		}
	})

	t.Run("unknown assistant rejected", func(t *testing.T) {
		_, err := p.CreateRun(ctx, th.ID, assistant.CreateRunParams{AssistantID: "asst_missing"})
		var nf *mcperr.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("want NotFoundError, got %T: %v", err, err)
		}
	})
}

func TestCancelNonTerminalRun(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	a, _ := p.CreateAssistant(ctx, assistant.CreateAssistantParams{Model: "gpt-4o"})
	th, _ := p.CreateThread(ctx, assistant.CreateThreadParams{})
	r, err := p.CreateRun(ctx, th.ID, assistant.CreateRunParams{AssistantID: a.ID})
	if err != nil {
		t.Fatal(err)
	}

	// Force a non-terminal state to exercise the transition.
	p.runs[th.ID][0].Status = assistant.RunStatusInProgress

	got, err := p.CancelRun(ctx, th.ID, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != assistant.RunStatusCancelled {
		t.Errorf("Status = %s, want cancelled", got.Status)
	}
}

func TestSubmitToolOutputs(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	a, _ := p.CreateAssistant(ctx, assistant.CreateAssistantParams{Model: "gpt-4o"})
	th, _ := p.CreateThread(ctx, assistant.CreateThreadParams{})
	r, err := p.CreateRun(ctx, th.ID, assistant.CreateRunParams{AssistantID: a.ID})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("rejected unless requires_action", func(t *testing.T) {
		_, err := p.SubmitToolOutputs(ctx, th.ID, r.ID, assistant.SubmitToolOutputsParams{})
		var ve *mcperr.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("want ValidationError, got %T: %v", err, err)
		}
	})

	t.Run("resumes a waiting run", func(t *testing.T) {
		p.runs[th.ID][0].Status = assistant.RunStatusRequiresAction
		got, err := p.SubmitToolOutputs(ctx, th.ID, r.ID, assistant.SubmitToolOutputsParams{
			ToolOutputs: []assistant.ToolOutput{{ToolCallID: "call_1", Output: "42"}},
		})
		if err != nil {
			t.Fatal(err)
		}
		if got.Status != assistant.RunStatusCompleted {
			t.Errorf("Status = %s, want completed", got.Status)
		}
		steps, err := p.ListRunSteps(ctx, th.ID, r.ID, assistant.ListParams{})
		if err != nil {
			t.Fatal(err)
		}
		var toolSteps int
		for _, s := range steps.Data {
			if s.Type == "tool_calls" {
				toolSteps++
			}
		}
		if toolSteps != 1 {
			t.Errorf("want 1 tool_calls step, got %d", toolSteps)
		}
	})
}

func TestListRunsStatusFilter(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	a, _ := p.CreateAssistant(ctx, assistant.CreateAssistantParams{Model: "gpt-4o"})
	th, _ := p.CreateThread(ctx, assistant.CreateThreadParams{})
	for i := 0; i < 3; i++ {
		if _, err := p.CreateRun(ctx, th.ID, assistant.CreateRunParams{AssistantID: a.ID}); err != nil {
			t.Fatal(err)
		}
	}
	p.runs[th.ID][1].Status = assistant.RunStatusCancelled

	got, err := p.ListRuns(ctx, th.ID, assistant.ListRunsParams{Status: assistant.RunStatusCancelled})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Data) != 1 || got.Data[0].Status != assistant.RunStatusCancelled {
		t.Errorf("filtered runs = %+v", got.Data)
	}
}

func TestReturnedObjectsAreCopies(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()
	a, _ := p.CreateAssistant(ctx, assistant.CreateAssistantParams{Model: "gpt-4o", Name: "orig"})

	a.Name = "mutated"
	got, err := p.GetAssistant(ctx, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "orig" {
		t.Error("mutating a returned object must not affect stored state")
	}
}
