package completion

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// mapSource backs both source interfaces with fixed candidate sets.
type mapSource struct {
	prompts   map[string]map[string][]string
	templates map[string]map[string][]string
}

func (m mapSource) PromptArgumentValues(prompt, arg string) ([]string, bool) {
	args, ok := m.prompts[prompt]
	if !ok {
		return nil, false
	}
	return args[arg], true
}

func (m mapSource) TemplateArgumentValues(uri, arg string) ([]string, bool) {
	args, ok := m.templates[uri]
	if !ok {
		return nil, false
	}
	return args[arg], true
}

func newTestEngine(levels []string) *Engine {
	src := mapSource{
		prompts: map[string]map[string][]string{
			"create-coding-assistant": {"experience_level": levels},
		},
		templates: map[string]map[string][]string{
			"assistant://models/{model}": {"model": {"gpt-4o", "gpt-4o-mini", "o3-mini"}},
		},
	}
	return NewEngine(src, src)
}

var levels = []string{"beginner", "intermediate", "advanced", "expert"}

func TestCompletePromptArgument(t *testing.T) {
	e := newTestEngine(levels)

	res, err := e.Complete(
		mcp.CompletionReference{Type: mcp.RefTypePrompt, Name: "create-coding-assistant"},
		mcp.CompleteArgument{Name: "experience_level", Value: "beg"},
	)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(res.Completions) != 1 {
		t.Fatalf("want exactly one completion group, got %d", len(res.Completions))
	}
	c := res.Completions[0]
	if len(c.Values) != 1 || c.Values[0] != "beginner" {
		t.Errorf("Values = %v, want [beginner]", c.Values)
	}
	if c.Total != 1 || c.HasMore {
		t.Errorf("Total=%d HasMore=%v", c.Total, c.HasMore)
	}
}

func TestCompleteEmptyValueReturnsAll(t *testing.T) {
	e := newTestEngine(levels)
	res, err := e.Complete(
		mcp.CompletionReference{Type: mcp.RefTypePrompt, Name: "create-coding-assistant"},
		mcp.CompleteArgument{Name: "experience_level"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Completions[0].Values; len(got) != 4 {
		t.Errorf("empty value should match everything, got %v", got)
	}
}

func TestCompleteIsCaseInsensitiveAndPrefersPrefix(t *testing.T) {
	e := newTestEngine([]string{"Expert", "super-expert", "beginner"})
	res, err := e.Complete(
		mcp.CompletionReference{Type: mcp.RefTypePrompt, Name: "create-coding-assistant"},
		mcp.CompleteArgument{Name: "experience_level", Value: "EX"},
	)
	if err != nil {
		t.Fatal(err)
	}
	got := res.Completions[0].Values
	if len(got) != 2 || got[0] != "Expert" || got[1] != "super-expert" {
		t.Errorf("Values = %v, want prefix match first then substring", got)
	}
}

func TestCompleteCapsAtMaxValues(t *testing.T) {
	many := make([]string, 0, 150)
	for i := 0; i < 150; i++ {
		many = append(many, fmt.Sprintf("model-%03d", i))
	}
	e := newTestEngine(many)

	res, err := e.Complete(
		mcp.CompletionReference{Type: mcp.RefTypePrompt, Name: "create-coding-assistant"},
		mcp.CompleteArgument{Name: "experience_level"},
	)
	if err != nil {
		t.Fatal(err)
	}
	c := res.Completions[0]
	if len(c.Values) != MaxValues {
		t.Errorf("len(Values) = %d, want cap %d", len(c.Values), MaxValues)
	}
	if c.Total != 150 || !c.HasMore {
		t.Errorf("truncation signal: Total=%d HasMore=%v, want 150/true", c.Total, c.HasMore)
	}
}

func TestCompleteResourceTemplate(t *testing.T) {
	e := newTestEngine(levels)
	res, err := e.Complete(
		mcp.CompletionReference{Type: mcp.RefTypeResource, URI: "assistant://models/{model}"},
		mcp.CompleteArgument{Name: "model", Value: "gpt"},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Completions[0].Values; len(got) != 2 {
		t.Errorf("Values = %v, want the two gpt models", got)
	}
}

func TestCompleteErrors(t *testing.T) {
	e := newTestEngine(levels)

	t.Run("unknown ref type", func(t *testing.T) {
		_, err := e.Complete(
			mcp.CompletionReference{Type: "ref/tool", Name: "x"},
			mcp.CompleteArgument{Name: "y"},
		)
		var ve *mcperr.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("unknown ref type must be an error, got %T: %v", err, err)
		}
	})

	t.Run("unknown prompt", func(t *testing.T) {
		_, err := e.Complete(
			mcp.CompletionReference{Type: mcp.RefTypePrompt, Name: "nope"},
			mcp.CompleteArgument{Name: "y"},
		)
		var nf *mcperr.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("want NotFoundError, got %T: %v", err, err)
		}
	})

	t.Run("unknown argument yields empty set not error", func(t *testing.T) {
		res, err := e.Complete(
			mcp.CompletionReference{Type: mcp.RefTypePrompt, Name: "create-coding-assistant"},
			mcp.CompleteArgument{Name: "unheard_of"},
		)
		if err != nil {
			t.Fatalf("known prompt with unknown argument: %v", err)
		}
		if len(res.Completions[0].Values) != 0 {
			t.Errorf("Values = %v, want empty", res.Completions[0].Values)
		}
	})
}
