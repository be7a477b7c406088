// Package tools turns named domain operations into validated, executable
// protocol tools. Every tool follows the same template: reflect a JSON schema
// from a typed args struct, validate incoming arguments against the compiled
// schema, decode strictly, apply semantic checks, then invoke the bound
// provider operation.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
	"github.com/openassistants/assistants-mcp-go/provider"
)

// Tool categories, used for stats and error reporting.
const (
	CategoryAssistant = "assistant"
	CategoryThread    = "thread"
	CategoryMessage   = "message"
	CategoryRun       = "run"
	CategoryRunStep   = "run-step"
)

// Definition is one registered tool: its protocol descriptor, its compiled
// argument schema, and the handler that executes it against a provider.
type Definition struct {
	Tool     mcp.Tool
	Category string

	compiled *validator.Schema
	handler  func(ctx context.Context, p provider.Provider, raw json.RawMessage) (any, error)
}

// argsOf is the contract every tool argument struct satisfies: structural
// validation is the schema's job, semantic validation is Validate's.
type argsOf interface {
	Validate() error
}

// define builds a Definition from a typed args struct. The reflected schema
// drives both the listing descriptor and runtime validation, so the two can
// never drift apart. Schema compilation failures are programmer errors and
// panic at startup.
func define[A argsOf](name, category, description string, run func(ctx context.Context, p provider.Provider, args A) (any, error)) Definition {
	input := reflectInputSchema[A]()
	compiled := mustCompile[A](name)

	handler := func(ctx context.Context, p provider.Provider, raw json.RawMessage) (any, error) {
		if len(raw) == 0 {
			raw = json.RawMessage("{}")
		}

		var loose any
		if err := json.Unmarshal(raw, &loose); err != nil {
			return nil, mcperr.Validationf("arguments", "must be a JSON object: %v", err)
		}
		if err := compiled.Validate(loose); err != nil {
			return nil, schemaError(err)
		}

		var args A
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&args); err != nil {
			return nil, mcperr.Validationf("arguments", "%v", err)
		}
		if err := args.Validate(); err != nil {
			return nil, err
		}
		return run(ctx, p, args)
	}

	return Definition{
		Tool: mcp.Tool{
			Name:        name,
			Description: description,
			InputSchema: input,
		},
		Category: category,
		compiled: compiled,
		handler:  handler,
	}
}

// reflectInputSchema reflects a Go args type into the simplified protocol
// input schema. Unknown fields are always rejected.
func reflectInputSchema[A any]() mcp.ToolInputSchema {
	s := reflector().Reflect(new(A))
	if s == nil || s.Type != "object" {
		return mcp.ToolInputSchema{Type: "object", Properties: map[string]mcp.SchemaProperty{}}
	}

	props := make(map[string]mcp.SchemaProperty)
	if s.Properties != nil {
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			props[el.Key] = toProperty(el.Value)
		}
	}
	var required []string
	if len(s.Required) > 0 {
		required = append(required, s.Required...)
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

func reflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		DoNotReference: true, // inline defs
		ExpandedStruct: true, // put struct at root
	}
}

// mustCompile turns the reflected schema into a compiled validator.
func mustCompile[A any](name string) *validator.Schema {
	raw, err := json.Marshal(reflector().Reflect(new(A)))
	if err != nil {
		panic(fmt.Sprintf("tool %s: marshal schema: %v", name, err))
	}
	c := validator.NewCompiler()
	url := name + ".schema.json"
	if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("tool %s: add schema resource: %v", name, err))
	}
	compiled, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("tool %s: compile schema: %v", name, err))
	}
	return compiled
}

// toProperty recursively maps a reflected schema node to the simplified
// protocol property shape.
func toProperty(s *jsonschema.Schema) mcp.SchemaProperty {
	if s == nil {
		return mcp.SchemaProperty{}
	}
	p := mcp.SchemaProperty{
		Type:        s.Type,
		Description: s.Description,
	}
	if len(s.Enum) > 0 {
		p.Enum = s.Enum
	}
	if f, ok := toFloat(s.Minimum); ok {
		p.Minimum = &f
	}
	if f, ok := toFloat(s.Maximum); ok {
		p.Maximum = &f
	}
	if s.Type == "array" && s.Items != nil {
		item := toProperty(s.Items)
		p.Items = &item
	}
	if s.Type == "object" && s.Properties != nil {
		m := make(map[string]mcp.SchemaProperty, s.Properties.Len())
		for el := s.Properties.Oldest(); el != nil; el = el.Next() {
			m[el.Key] = toProperty(el.Value)
		}
		p.Properties = m
	}
	return p
}

func toFloat(n json.Number) (float64, bool) {
	if n == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// schemaError converts a schema validation failure into the domain
// validation error, naming the offending field where the location is known.
func schemaError(err error) error {
	ve, ok := err.(*validator.ValidationError)
	if !ok {
		return mcperr.Validationf("arguments", "%v", err)
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	field := strings.TrimPrefix(leaf.InstanceLocation, "/")
	field = strings.ReplaceAll(field, "/", ".")
	if field == "" {
		field = "arguments"
	}
	return mcperr.Validationf(field, "%s", leaf.Message)
}
