// Package httprpc serves the protocol over plain HTTP POST: one JSON-RPC
// request per POST body, one response body back. Notifications are accepted
// with 202 and an empty body.
package httprpc

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/elnormous/contenttype"

	"github.com/openassistants/assistants-mcp-go/internal/jsonrpc"
	"github.com/openassistants/assistants-mcp-go/internal/logctx"
)

var jsonMediaType = contenttype.NewMediaType("application/json")

// maxBodyBytes bounds a single request body.
const maxBodyBytes = 4 * 1024 * 1024

// Handler dispatches one decoded request. A nil response means the request
// was a notification.
type Handler interface {
	Handle(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response
}

// RPCHandler is an http.Handler exposing the dispatcher at a single endpoint.
type RPCHandler struct {
	log     *slog.Logger
	handler Handler
}

// Option configures the handler.
type Option func(*RPCHandler)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *RPCHandler) { h.log = l }
}

// New constructs the HTTP handler around the dispatcher.
func New(h Handler, opts ...Option) *RPCHandler {
	rh := &RPCHandler{log: slog.Default(), handler: h}
	for _, opt := range opts {
		opt(rh)
	}
	return rh
}

func (h *RPCHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "only POST is supported")
		return
	}

	ctype, err := contenttype.GetMediaType(r)
	if err != nil || !ctype.Matches(jsonMediaType) {
		h.log.WarnContext(ctx, "http.content_type.unsupported")
		writeError(w, http.StatusUnsupportedMediaType, "content-type must be application/json")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) > maxBodyBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	var req jsonrpc.Request
	if err := json.Unmarshal(body, &req); err != nil {
		h.log.WarnContext(ctx, "http.parse_error", slog.String("err", err.Error()))
		writeResponse(w, http.StatusOK,
			jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeParseError, "parse error", nil))
		return
	}

	reqCtx := logctx.WithRequestData(ctx, &logctx.RequestData{
		RequestID: req.ID.String(),
		Method:    req.Method,
		Transport: "http",
	})
	resp := h.handler.Handle(reqCtx, &req)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeResponse(w, http.StatusOK, resp)
}

func writeResponse(w http.ResponseWriter, status int, resp *jsonrpc.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
