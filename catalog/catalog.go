// Package catalog owns the static resource and prompt catalogs served over
// the protocol, plus an optional filesystem-backed resource catalog. Listing
// order is definition order and never changes at runtime, so pagination
// cursors stay valid for the life of the process.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
)

// Well-known static resource URIs.
const (
	URIModels         = "assistant://models"
	URIProviders      = "assistant://providers"
	URIGettingStarted = "assistant://docs/getting-started"
)

// renderFunc produces prompt messages from validated arguments.
type renderFunc func(args map[string]string) []mcp.PromptMessage

type promptEntry struct {
	descriptor mcp.Prompt
	render     renderFunc
	// candidate completion values per argument name
	candidates map[string][]string
}

// Catalog is the immutable set of resources, resource templates, and prompts.
// Build it once at startup with New.
type Catalog struct {
	resources []mcp.Resource
	contents  map[string]mcp.ResourceContents
	templates []mcp.ResourceTemplate
	// template completion candidates keyed by uriTemplate then variable name
	templateCandidates map[string]map[string][]string
	prompts            []promptEntry
	byPrompt           map[string]*promptEntry

	fs *FSCatalog
}

// Option configures catalog construction.
type Option func(*Catalog)

// WithFSCatalog attaches a filesystem-backed catalog whose resources are
// listed after the static ones.
func WithFSCatalog(f *FSCatalog) Option {
	return func(c *Catalog) { c.fs = f }
}

// New builds the catalog. Models and provider names feed the static JSON
// resources and the completion candidate sets.
func New(models, providers []string, opts ...Option) *Catalog {
	c := &Catalog{
		contents:           make(map[string]mcp.ResourceContents),
		templateCandidates: make(map[string]map[string][]string),
		byPrompt:           make(map[string]*promptEntry),
	}

	c.addJSONResource(URIModels, "Available models",
		"Model IDs accepted by assistant-create and run-create.",
		map[string]any{"models": models})
	c.addJSONResource(URIProviders, "Configured providers",
		"Provider names accepted by the provider argument on every tool.",
		map[string]any{"providers": providers})
	c.addTextResource(URIGettingStarted, "Getting started", "text/markdown", gettingStartedDoc)

	c.addTemplate(mcp.ResourceTemplate{
		URITemplate: "assistant://models/{model}",
		Name:        "Model details",
		Description: "Details for a single model by ID.",
		MimeType:    "application/json",
	}, map[string][]string{"model": models})
	c.addTemplate(mcp.ResourceTemplate{
		URITemplate: "assistant://providers/{provider}",
		Name:        "Provider details",
		Description: "Details for a single configured provider.",
		MimeType:    "application/json",
	}, map[string][]string{"provider": providers})

	c.prompts = append(c.prompts, createCodingAssistantPrompt(models), summarizeThreadPrompt())
	for i := range c.prompts {
		c.byPrompt[c.prompts[i].descriptor.Name] = &c.prompts[i]
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) addJSONResource(uri, name, description string, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("catalog resource %s: %v", uri, err))
	}
	c.resources = append(c.resources, mcp.Resource{
		URI: uri, Name: name, Description: description, MimeType: "application/json",
	})
	c.contents[uri] = mcp.ResourceContents{URI: uri, MimeType: "application/json", Text: string(body)}
}

func (c *Catalog) addTextResource(uri, name, mimeType, text string) {
	c.resources = append(c.resources, mcp.Resource{
		URI: uri, Name: name, MimeType: mimeType,
	})
	c.contents[uri] = mcp.ResourceContents{URI: uri, MimeType: mimeType, Text: text}
}

func (c *Catalog) addTemplate(t mcp.ResourceTemplate, candidates map[string][]string) {
	c.templates = append(c.templates, t)
	c.templateCandidates[t.URITemplate] = candidates
}

// Resources lists static resources followed by fs-backed ones, in stable
// order.
func (c *Catalog) Resources() []mcp.Resource {
	out := make([]mcp.Resource, len(c.resources))
	copy(out, c.resources)
	if c.fs != nil {
		out = append(out, c.fs.Resources()...)
	}
	return out
}

// Templates lists resource templates in definition order.
func (c *Catalog) Templates() []mcp.ResourceTemplate {
	out := make([]mcp.ResourceTemplate, len(c.templates))
	copy(out, c.templates)
	return out
}

// Prompts lists prompt descriptors in definition order.
func (c *Catalog) Prompts() []mcp.Prompt {
	out := make([]mcp.Prompt, 0, len(c.prompts))
	for _, e := range c.prompts {
		out = append(out, e.descriptor)
	}
	return out
}

// Read resolves a resource URI to its contents. Unknown URIs are a typed
// not-found error carrying the known URIs as suggestions.
func (c *Catalog) Read(uri string) (*mcp.ResourceContents, error) {
	if rc, ok := c.contents[uri]; ok {
		return &rc, nil
	}
	if c.fs != nil && strings.HasPrefix(uri, c.fs.BaseURI()) {
		return c.fs.Read(uri)
	}
	known := make([]string, 0, len(c.resources))
	for _, r := range c.resources {
		known = append(known, r.URI)
	}
	return nil, &mcperr.NotFoundError{Kind: "resource", ID: uri, Suggestions: known}
}

// GetPrompt renders the named prompt with the given arguments. Unknown names
// and missing required arguments are typed errors.
func (c *Catalog) GetPrompt(name string, args map[string]string) (*mcp.GetPromptResult, error) {
	e, ok := c.byPrompt[name]
	if !ok {
		names := make([]string, 0, len(c.prompts))
		for _, p := range c.prompts {
			names = append(names, p.descriptor.Name)
		}
		return nil, &mcperr.NotFoundError{Kind: "prompt", ID: name, Suggestions: names}
	}
	for _, arg := range e.descriptor.Arguments {
		if arg.Required && args[arg.Name] == "" {
			return nil, &mcperr.ValidationError{Field: arg.Name, Message: "is required", Example: firstOf(e.candidates[arg.Name])}
		}
	}
	return &mcp.GetPromptResult{
		Description: e.descriptor.Description,
		Messages:    e.render(args),
	}, nil
}

// PromptArgumentValues returns the completion candidates for one prompt
// argument. The second result reports whether the prompt exists at all.
func (c *Catalog) PromptArgumentValues(promptName, argName string) ([]string, bool) {
	e, ok := c.byPrompt[promptName]
	if !ok {
		return nil, false
	}
	return e.candidates[argName], true
}

// TemplateArgumentValues returns the completion candidates for one resource
// template variable. The second result reports whether the template exists.
func (c *Catalog) TemplateArgumentValues(uriTemplate, argName string) ([]string, bool) {
	vars, ok := c.templateCandidates[uriTemplate]
	if !ok {
		return nil, false
	}
	return vars[argName], true
}

func firstOf(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// experienceLevels are the accepted values for the create-coding-assistant
// experience_level argument.
var experienceLevels = []string{"beginner", "intermediate", "advanced", "expert"}

func createCodingAssistantPrompt(models []string) promptEntry {
	return promptEntry{
		descriptor: mcp.Prompt{
			Name:        "create-coding-assistant",
			Description: "Walk through creating a coding assistant tuned to a language and experience level.",
			Arguments: []mcp.PromptArgument{
				{Name: "language", Description: "Programming language the assistant should focus on.", Required: true},
				{Name: "experience_level", Description: "Target user experience level."},
				{Name: "model", Description: "Model ID to use."},
			},
		},
		candidates: map[string][]string{
			"experience_level": experienceLevels,
			"model":            models,
		},
		render: func(args map[string]string) []mcp.PromptMessage {
			level := args["experience_level"]
			if level == "" {
				level = "intermediate"
			}
			text := fmt.Sprintf(
				"Create a coding assistant for %s aimed at %s users. "+
					"Use the assistant-create tool with clear instructions about code style, "+
					"explanation depth, and when to show full examples.",
				args["language"], level)
			if args["model"] != "" {
				text += fmt.Sprintf(" Use model %s.", args["model"])
			}
			return []mcp.PromptMessage{{
				Role:    mcp.RoleUser,
				Content: []mcp.ContentBlock{{Type: mcp.ContentTypeText, Text: text}},
			}}
		},
	}
}

func summarizeThreadPrompt() promptEntry {
	styles := []string{"brief", "detailed", "bullet-points"}
	return promptEntry{
		descriptor: mcp.Prompt{
			Name:        "summarize-thread",
			Description: "Summarize the messages on a thread.",
			Arguments: []mcp.PromptArgument{
				{Name: "thread_id", Description: "Thread to summarize.", Required: true},
				{Name: "style", Description: "Summary style."},
			},
		},
		candidates: map[string][]string{"style": styles},
		render: func(args map[string]string) []mcp.PromptMessage {
			style := args["style"]
			if style == "" {
				style = "brief"
			}
			text := fmt.Sprintf(
				"List the messages on thread %s with the message-list tool, then produce a %s summary "+
					"of the conversation so far.",
				args["thread_id"], style)
			return []mcp.PromptMessage{{
				Role:    mcp.RoleUser,
				Content: []mcp.ContentBlock{{Type: mcp.ContentTypeText, Text: text}},
			}}
		},
	}
}

const gettingStartedDoc = `# Getting started

This server exposes an assistant API as MCP tools.

1. Call ` + "`assistant-create`" + ` with a model (see assistant://models).
2. Call ` + "`thread-create`" + ` to open a conversation.
3. Append user input with ` + "`message-create`" + `.
4. Call ` + "`run-create`" + ` to execute the assistant against the thread.
5. Inspect progress with ` + "`run-step-list`" + ` and read replies with ` + "`message-list`" + `.

Every tool accepts an optional ` + "`provider`" + ` argument (see
assistant://providers) to route the call to a specific backend.
`
