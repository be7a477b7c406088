package catalog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/openassistants/assistants-mcp-go/mcperr"
)

var (
	testModels    = []string{"gpt-4o", "gpt-4o-mini"}
	testProviders = []string{"memory"}
)

func TestStaticResources(t *testing.T) {
	c := New(testModels, testProviders)

	res := c.Resources()
	if len(res) != 3 {
		t.Fatalf("want 3 static resources, got %d", len(res))
	}
	if res[0].URI != URIModels {
		t.Errorf("first resource = %q, listing order must be stable", res[0].URI)
	}

	rc, err := c.Read(URIModels)
	if err != nil {
		t.Fatalf("Read(models): %v", err)
	}
	var body struct {
		Models []string `json:"models"`
	}
	if err := json.Unmarshal([]byte(rc.Text), &body); err != nil {
		t.Fatalf("models resource should be JSON: %v", err)
	}
	if len(body.Models) != 2 || body.Models[0] != "gpt-4o" {
		t.Errorf("models = %v", body.Models)
	}
}

func TestReadUnknownResource(t *testing.T) {
	c := New(testModels, testProviders)
	_, err := c.Read("assistant://nope")
	var nf *mcperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %T: %v", err, err)
	}
	if len(nf.Suggestions) == 0 {
		t.Error("unknown resource error should list known URIs")
	}
}

func TestGetPrompt(t *testing.T) {
	c := New(testModels, testProviders)

	t.Run("renders with arguments", func(t *testing.T) {
		res, err := c.GetPrompt("create-coding-assistant", map[string]string{
			"language":         "Go",
			"experience_level": "expert",
		})
		if err != nil {
			t.Fatalf("GetPrompt: %v", err)
		}
		if len(res.Messages) != 1 {
			t.Fatalf("want 1 message, got %d", len(res.Messages))
		}
		text := res.Messages[0].Content[0].Text
		if !strings.Contains(text, "Go") || !strings.Contains(text, "expert") {
			t.Errorf("rendered prompt should embed arguments: %q", text)
		}
	})

	t.Run("missing required argument", func(t *testing.T) {
		_, err := c.GetPrompt("create-coding-assistant", nil)
		var ve *mcperr.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("want ValidationError, got %T: %v", err, err)
		}
		if ve.Field != "language" {
			t.Errorf("error should name the language argument, got %q", ve.Field)
		}
	})

	t.Run("unknown prompt", func(t *testing.T) {
		_, err := c.GetPrompt("does-not-exist", nil)
		var nf *mcperr.NotFoundError
		if !errors.As(err, &nf) {
			t.Fatalf("want NotFoundError, got %T: %v", err, err)
		}
		if len(nf.Suggestions) != 2 {
			t.Errorf("suggestions = %v", nf.Suggestions)
		}
	})
}

func TestCompletionCandidates(t *testing.T) {
	c := New(testModels, testProviders)

	vals, ok := c.PromptArgumentValues("create-coding-assistant", "experience_level")
	if !ok {
		t.Fatal("prompt should exist")
	}
	want := []string{"beginner", "intermediate", "advanced", "expert"}
	if len(vals) != len(want) {
		t.Fatalf("candidates = %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, vals[i], want[i])
		}
	}

	if _, ok := c.PromptArgumentValues("unknown", "x"); ok {
		t.Error("unknown prompt should report not ok")
	}

	models, ok := c.TemplateArgumentValues("assistant://models/{model}", "model")
	if !ok || len(models) != 2 {
		t.Errorf("template candidates = %v ok=%v", models, ok)
	}
}
