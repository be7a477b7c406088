// Package engine implements the protocol dispatcher: one JSON-RPC request in,
// one response out, never a panic or a propagated error. All domain failures
// are folded into error envelopes with a machine-readable category.
package engine

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/openassistants/assistants-mcp-go/catalog"
	"github.com/openassistants/assistants-mcp-go/completion"
	"github.com/openassistants/assistants-mcp-go/cursor"
	"github.com/openassistants/assistants-mcp-go/internal/jsonrpc"
	"github.com/openassistants/assistants-mcp-go/internal/logctx"
	"github.com/openassistants/assistants-mcp-go/mcp"
	"github.com/openassistants/assistants-mcp-go/mcperr"
	"github.com/openassistants/assistants-mcp-go/provider"
	"github.com/openassistants/assistants-mcp-go/tools"
)

const defaultPageSize = 50

// Engine routes JSON-RPC requests to the registries and catalogs. It is
// constructed once at startup and is read-only during dispatch; all
// per-request state lives on the stack.
type Engine struct {
	log        *slog.Logger
	serverInfo mcp.ImplementationInfo
	instanceID string
	pageSize   int

	providers   *provider.Registry
	tools       *tools.Catalog
	catalog     *catalog.Catalog
	completions *completion.Engine
}

// Option customizes engine construction.
type Option func(*Engine)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithServerInfo sets the identity echoed by initialize.
func WithServerInfo(info mcp.ImplementationInfo) Option {
	return func(e *Engine) { e.serverInfo = info }
}

// WithPageSize sets the page size used by all list methods.
func WithPageSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// New constructs the dispatcher. The completion engine is derived from the
// catalog, which backs both completion sources.
func New(providers *provider.Registry, toolCatalog *tools.Catalog, cat *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		log:        slog.Default(),
		serverInfo: mcp.ImplementationInfo{Name: "assistants-mcp", Version: "dev"},
		instanceID: uuid.NewString(),
		pageSize:   defaultPageSize,

		providers:   providers,
		tools:       toolCatalog,
		catalog:     cat,
		completions: completion.NewEngine(cat, cat),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// InstanceID identifies this engine instance in logs and diagnostics.
func (e *Engine) InstanceID() string { return e.instanceID }

// Handle dispatches one request. The returned response is nil iff the
// request is a notification. Handle never panics: a handler panic is caught
// and answered as an internal error.
func (e *Engine) Handle(ctx context.Context, req *jsonrpc.Request) (resp *jsonrpc.Response) {
	start := time.Now()
	log := e.log.With(slog.String("method", req.Method))

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "engine.handle_request.panic",
				slog.Any("panic", r),
				slog.Int64("dur_ms", time.Since(start).Milliseconds()))
			if !req.IsNotification() {
				resp = jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInternalError, "internal error", nil)
			}
		}
	}()

	if err := req.ValidateEnvelope(); err != nil {
		log.InfoContext(ctx, "engine.handle_request.invalid",
			slog.String("err", err.Error()),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeInvalidRequest, "invalid request", nil)
	}

	if req.IsNotification() {
		e.handleNotification(ctx, req)
		return nil
	}

	resp, err := e.dispatch(ctx, req)
	if err != nil {
		log.ErrorContext(ctx, "engine.handle_request.fail",
			slog.String("err", err.Error()),
			slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return e.errorResponse(req.ID, err)
	}

	log.InfoContext(ctx, "engine.handle_request.ok",
		slog.Int64("dur_ms", time.Since(start).Milliseconds()))
	return resp
}

func (e *Engine) handleNotification(ctx context.Context, req *jsonrpc.Request) {
	switch mcp.Method(req.Method) {
	case mcp.InitializedNotificationMethod:
		e.log.InfoContext(ctx, "engine.initialized")
	default:
		e.log.DebugContext(ctx, "engine.notification.ignored", slog.String("method", req.Method))
	}
}

func (e *Engine) dispatch(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	switch mcp.Method(req.Method) {
	case mcp.InitializeMethod:
		return e.handleInitialize(req)
	case mcp.PingMethod:
		return jsonrpc.NewResultResponse(req.ID, struct{}{})
	case mcp.ToolsListMethod:
		return listResponse(req, e.pageSize, e.tools.Tools(), func(page []mcp.Tool, next string) any {
			return mcp.ListToolsResult{Tools: page, PaginatedResult: mcp.PaginatedResult{NextCursor: next}}
		})
	case mcp.ToolsCallMethod:
		return e.handleToolCall(ctx, req)
	case mcp.ResourcesListMethod:
		return listResponse(req, e.pageSize, e.catalog.Resources(), func(page []mcp.Resource, next string) any {
			return mcp.ListResourcesResult{Resources: page, PaginatedResult: mcp.PaginatedResult{NextCursor: next}}
		})
	case mcp.ResourcesTemplatesListMethod:
		return listResponse(req, e.pageSize, e.catalog.Templates(), func(page []mcp.ResourceTemplate, next string) any {
			return mcp.ListResourceTemplatesResult{ResourceTemplates: page, PaginatedResult: mcp.PaginatedResult{NextCursor: next}}
		})
	case mcp.ResourcesReadMethod:
		return e.handleResourcesRead(req)
	case mcp.PromptsListMethod:
		return listResponse(req, e.pageSize, e.catalog.Prompts(), func(page []mcp.Prompt, next string) any {
			return mcp.ListPromptsResult{Prompts: page, PaginatedResult: mcp.PaginatedResult{NextCursor: next}}
		})
	case mcp.PromptsGetMethod:
		return e.handlePromptsGet(req)
	case mcp.CompletionCompleteMethod:
		return e.handleComplete(req)
	}

	return jsonrpc.NewErrorResponse(req.ID, jsonrpc.ErrorCodeMethodNotFound, "method not found: "+req.Method, nil), nil
}

// handleInitialize negotiates the protocol version and declares the full
// capability set. It is idempotent and side-effect-free.
func (e *Engine) handleInitialize(req *jsonrpc.Request) (*jsonrpc.Response, error) {
	var params mcp.InitializeRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, mcperr.Validationf("params", "%v", err)
		}
	}

	version := mcp.LatestProtocolVersion
	if slices.Contains(mcp.SupportedProtocolVersions, params.ProtocolVersion) {
		version = params.ProtocolVersion
	}

	return jsonrpc.NewResultResponse(req.ID, mcp.InitializeResult{
		ProtocolVersion: version,
		Capabilities: mcp.ServerCapabilities{
			Tools:       &struct{}{},
			Resources:   &struct{}{},
			Prompts:     &struct{}{},
			Completions: &struct{}{},
		},
		ServerInfo:   e.serverInfo,
		Instructions: "Assistant API over MCP. Start with the assistant://docs/getting-started resource.",
	})
}

func (e *Engine) handleToolCall(ctx context.Context, req *jsonrpc.Request) (*jsonrpc.Response, error) {
	var params mcp.CallToolRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, mcperr.Validationf("params", "%v", err)
	}
	if params.Name == "" {
		return nil, mcperr.Validationf("name", "is required")
	}

	p, err := e.providers.Select(tools.ProviderName(params.Arguments))
	if err != nil {
		return nil, err
	}
	ctx = logctx.WithProviderData(ctx, &logctx.ProviderData{Name: p.Metadata().Name})

	result, err := e.tools.NewRegistry(p).Execute(ctx, params.Name, params.Arguments)
	if err != nil {
		return nil, err
	}
	return jsonrpc.NewResultResponse(req.ID, result)
}

func (e *Engine) handleResourcesRead(req *jsonrpc.Request) (*jsonrpc.Response, error) {
	var params mcp.ReadResourceRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, mcperr.Validationf("params", "%v", err)
	}
	if params.URI == "" {
		return nil, mcperr.Validationf("uri", "is required")
	}
	rc, err := e.catalog.Read(params.URI)
	if err != nil {
		return nil, err
	}
	return jsonrpc.NewResultResponse(req.ID, mcp.ReadResourceResult{Contents: []mcp.ResourceContents{*rc}})
}

func (e *Engine) handlePromptsGet(req *jsonrpc.Request) (*jsonrpc.Response, error) {
	var params mcp.GetPromptRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, mcperr.Validationf("params", "%v", err)
	}
	if params.Name == "" {
		return nil, mcperr.Validationf("name", "is required")
	}
	res, err := e.catalog.GetPrompt(params.Name, params.Arguments)
	if err != nil {
		return nil, err
	}
	return jsonrpc.NewResultResponse(req.ID, res)
}

func (e *Engine) handleComplete(req *jsonrpc.Request) (*jsonrpc.Response, error) {
	var params mcp.CompleteRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return nil, mcperr.Validationf("params", "%v", err)
	}
	res, err := e.completions.Complete(params.Ref, params.Argument)
	if err != nil {
		return nil, err
	}
	return jsonrpc.NewResultResponse(req.ID, res)
}

// listResponse applies the shared pagination contract to a stable item set.
// Cursors are scoped to the requesting method, so a token from one list
// method is rejected by every other.
func listResponse[T any](req *jsonrpc.Request, pageSize int, items []T, build func(page []T, next string) any) (*jsonrpc.Response, error) {
	var params mcp.PaginatedRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return nil, mcperr.Validationf("params", "%v", err)
		}
	}

	var token *string
	if params.Cursor != "" {
		token = &params.Cursor
	}
	page, err := cursor.Paginate(req.Method, items, token, pageSize)
	if err != nil {
		return nil, err
	}

	var next string
	if page.NextCursor != nil {
		next = *page.NextCursor
	}
	return jsonrpc.NewResultResponse(req.ID, build(page.Items, next))
}

// errorResponse maps a domain error onto the fixed JSON-RPC code set. Every
// payload carries data.category so clients can recover the domain class.
func (e *Engine) errorResponse(id *jsonrpc.RequestID, err error) *jsonrpc.Response {
	var (
		ve *mcperr.ValidationError
		nf *mcperr.NotFoundError
		uo *mcperr.UnsupportedOperationError
		ue *mcperr.UpstreamError
		xe *mcperr.ExecutionError
		ce *mcperr.CursorError
	)
	switch {
	case errors.As(err, &ce):
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInvalidParams, ce.Error(), ce.Data())
	case errors.As(err, &ve):
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInvalidParams, ve.Error(), ve.Data())
	case errors.As(err, &nf):
		// An unknown tool is a method-level miss; every other unresolved
		// identifier is a parameter problem.
		code := jsonrpc.ErrorCodeInvalidParams
		if nf.Kind == "tool" {
			code = jsonrpc.ErrorCodeMethodNotFound
		}
		return jsonrpc.NewErrorResponse(id, code, nf.Error(), nf.Data())
	case errors.As(err, &uo):
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeMethodNotFound, uo.Error(), uo.Data())
	case errors.As(err, &xe):
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInternalError, xe.Error(), xe.Data())
	case errors.As(err, &ue):
		return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInternalError, ue.Error(), ue.Data())
	}
	return jsonrpc.NewErrorResponse(id, jsonrpc.ErrorCodeInternalError, "internal error",
		map[string]any{"category": mcperr.CategoryProtocol})
}
