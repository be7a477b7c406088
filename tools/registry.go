package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openassistants/assistants-mcp-go/internal/logctx"
	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
	"github.com/openassistants/assistants-mcp-go/provider"
)

// Catalog is the immutable set of tool definitions, built once at startup.
// Schema reflection and compilation happen here, not per request.
type Catalog struct {
	defs   []Definition
	byName map[string]*Definition
}

// NewCatalog builds the full tool catalog in listing order.
func NewCatalog() *Catalog {
	return newCatalog(definitions())
}

// newCatalog indexes definitions by name. A duplicate name is a programming
// error caught at startup, like a schema that fails to compile.
func newCatalog(defs []Definition) *Catalog {
	byName := make(map[string]*Definition, len(defs))
	for i := range defs {
		name := defs[i].Tool.Name
		if _, dup := byName[name]; dup {
			panic(fmt.Sprintf("tools: duplicate tool name %q", name))
		}
		byName[name] = &defs[i]
	}
	return &Catalog{defs: defs, byName: byName}
}

// Tools returns the protocol descriptors in stable listing order.
func (c *Catalog) Tools() []mcp.Tool {
	out := make([]mcp.Tool, len(c.defs))
	for i, d := range c.defs {
		out[i] = d.Tool
	}
	return out
}

// Names returns tool names in listing order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.defs))
	for i, d := range c.defs {
		out[i] = d.Tool.Name
	}
	return out
}

// Stats summarizes the catalog for diagnostics.
type Stats struct {
	TotalHandlers      int            `json:"totalHandlers"`
	HandlersByCategory map[string]int `json:"handlersByCategory"`
	RegisteredTools    []string       `json:"registeredTools"`
}

// Stats reports handler counts by category and the registered tool names.
func (c *Catalog) Stats() Stats {
	s := Stats{
		TotalHandlers:      len(c.defs),
		HandlersByCategory: make(map[string]int),
		RegisteredTools:    c.Names(),
	}
	for _, d := range c.defs {
		s.HandlersByCategory[d.Category]++
	}
	return s
}

// NewRegistry binds the catalog to the provider resolved for one request.
// Registries are cheap; construct one per call.
func (c *Catalog) NewRegistry(p provider.Provider) *Registry {
	return &Registry{catalog: c, provider: p}
}

// Registry executes tools against a single resolved provider.
type Registry struct {
	catalog  *Catalog
	provider provider.Provider
}

// Execute validates raw arguments for the named tool, runs it, and wraps the
// domain result as a protocol tool result. Unknown tools fail with
// suggestions drawn from the same category.
func (r *Registry) Execute(ctx context.Context, name string, raw json.RawMessage) (*mcp.CallToolResult, error) {
	def, ok := r.catalog.byName[name]
	if !ok {
		return nil, &mcperr.NotFoundError{
			Kind:        "tool",
			ID:          name,
			Suggestions: r.catalog.suggest(name),
		}
	}

	ctx = logctx.WithToolCallData(ctx, &logctx.ToolCallData{ToolName: name, Category: def.Category})
	start := time.Now()

	out, err := def.handler(ctx, r.provider, raw)
	if err != nil {
		slog.ErrorContext(ctx, "tools.execute.fail",
			slog.Int64("dur_ms", time.Since(start).Milliseconds()),
			slog.String("err", err.Error()))
		return nil, wrapExecution(def, err)
	}

	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, &mcperr.ExecutionError{Tool: name, Category: def.Category, Err: fmt.Errorf("encode result: %w", err)}
	}

	slog.InfoContext(ctx, "tools.execute.ok",
		slog.Int64("dur_ms", time.Since(start).Milliseconds()))

	return &mcp.CallToolResult{
		Content: []mcp.ContentBlock{{Type: mcp.ContentTypeText, Text: string(body)}},
	}, nil
}

// wrapExecution leaves typed domain errors alone so callers can map them to
// protocol codes, and wraps anything else as a tool execution failure.
func wrapExecution(def *Definition, err error) error {
	var (
		ve *mcperr.ValidationError
		nf *mcperr.NotFoundError
		uo *mcperr.UnsupportedOperationError
		ue *mcperr.UpstreamError
		ce *mcperr.CursorError
	)
	if errors.As(err, &ve) || errors.As(err, &nf) || errors.As(err, &uo) || errors.As(err, &ue) || errors.As(err, &ce) {
		return err
	}
	return &mcperr.ExecutionError{Tool: def.Tool.Name, Category: def.Category, Err: err}
}

// suggest returns tool names sharing the category prefix of the unknown
// name, falling back to the full listing.
func (c *Catalog) suggest(name string) []string {
	prefix, _, ok := strings.Cut(name, "-")
	if ok {
		var near []string
		for _, d := range c.defs {
			if strings.HasPrefix(d.Tool.Name, prefix+"-") {
				near = append(near, d.Tool.Name)
			}
		}
		if len(near) > 0 {
			return near
		}
	}
	return c.Names()
}

// ProviderName extracts the provider routing argument without decoding the
// full tool arguments. Malformed JSON is reported by schema validation
// later, so it is ignored here.
func ProviderName(raw json.RawMessage) string {
	var peek struct {
		Provider string `json:"provider"`
	}
	_ = json.Unmarshal(raw, &peek)
	return peek.Provider
}
