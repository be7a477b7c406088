// Package completion implements argument completion for prompt arguments and
// resource template variables. Candidates come from the catalog; the engine
// only filters and caps.
package completion

import (
	"strings"

	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// MaxValues caps the number of returned suggestions. Truncation is reported
// via total and hasMore, never by silently dropping the signal.
const MaxValues = 100

// PromptSource supplies candidate values for a prompt argument. The bool
// result reports whether the prompt exists.
type PromptSource interface {
	PromptArgumentValues(promptName, argName string) ([]string, bool)
}

// ResourceSource supplies candidate values for a resource template variable.
// The bool result reports whether the template exists.
type ResourceSource interface {
	TemplateArgumentValues(uriTemplate, argName string) ([]string, bool)
}

// Engine resolves completion references against the catalog sources.
type Engine struct {
	prompts   PromptSource
	resources ResourceSource
}

// NewEngine builds a completion engine over the given sources.
func NewEngine(prompts PromptSource, resources ResourceSource) *Engine {
	return &Engine{prompts: prompts, resources: resources}
}

// Complete resolves the reference, filters its candidates against the
// partial argument value, and returns at most MaxValues suggestions. The
// reference type is a closed enumeration; anything else is an error.
func (e *Engine) Complete(ref mcp.CompletionReference, arg mcp.CompleteArgument) (*mcp.CompleteResult, error) {
	var (
		candidates []string
		ok         bool
	)
	switch ref.Type {
	case mcp.RefTypePrompt:
		if ref.Name == "" {
			return nil, mcperr.Validationf("ref.name", "is required for %s references", mcp.RefTypePrompt)
		}
		candidates, ok = e.prompts.PromptArgumentValues(ref.Name, arg.Name)
		if !ok {
			return nil, &mcperr.NotFoundError{Kind: "prompt", ID: ref.Name}
		}
	case mcp.RefTypeResource:
		if ref.URI == "" {
			return nil, mcperr.Validationf("ref.uri", "is required for %s references", mcp.RefTypeResource)
		}
		candidates, ok = e.resources.TemplateArgumentValues(ref.URI, arg.Name)
		if !ok {
			return nil, &mcperr.NotFoundError{Kind: "resource template", ID: ref.URI}
		}
	default:
		return nil, mcperr.Validationf("ref.type",
			"must be %s or %s, got %q", mcp.RefTypePrompt, mcp.RefTypeResource, ref.Type)
	}

	matched := filter(candidates, arg.Value)
	total := len(matched)
	hasMore := total > MaxValues
	if hasMore {
		matched = matched[:MaxValues]
	}

	return &mcp.CompleteResult{
		Completions: []mcp.Completion{{
			Values:  matched,
			Total:   total,
			HasMore: hasMore,
		}},
	}, nil
}

// filter returns case-insensitive prefix matches first, then substring
// matches, preserving candidate order within each group. An empty value
// matches everything.
func filter(candidates []string, value string) []string {
	if value == "" {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}

	needle := strings.ToLower(value)
	var prefix, substr []string
	for _, c := range candidates {
		lower := strings.ToLower(c)
		switch {
		case strings.HasPrefix(lower, needle):
			prefix = append(prefix, c)
		case strings.Contains(lower, needle):
			substr = append(substr, c)
		}
	}
	return append(prefix, substr...)
}
