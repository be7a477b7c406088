// Package logctx enriches slog records with request-scoped attributes carried
// in the context. Transports attach request data, the engine attaches RPC and
// tool-call data, and the wrapping Handler folds them into every record.
package logctx

import (
	"context"
	"log/slog"
)

type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		r.AddAttrs(slog.Group("req",
			slog.String("id", rd.RequestID),
			slog.String("method", rd.Method),
			slog.String("transport", rd.Transport),
		))
	}

	if td, ok := ctx.Value(toolCallDataKey{}).(*ToolCallData); ok {
		r.AddAttrs(slog.Group("tool",
			slog.String("name", td.ToolName),
			slog.String("category", td.Category),
		))
	}

	if pd, ok := ctx.Value(providerDataKey{}).(*ProviderData); ok {
		r.AddAttrs(slog.Group("provider",
			slog.String("name", pd.Name),
		))
	}

	return h.Handler.Handle(ctx, r)
}

type requestDataKey struct{}

type RequestData struct {
	RequestID string
	Method    string
	Transport string
}

func WithRequestData(ctx context.Context, data *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, data)
}

type toolCallDataKey struct{}

type ToolCallData struct {
	ToolName string
	Category string
}

func WithToolCallData(ctx context.Context, data *ToolCallData) context.Context {
	return context.WithValue(ctx, toolCallDataKey{}, data)
}

type providerDataKey struct{}

type ProviderData struct {
	Name string
}

func WithProviderData(ctx context.Context, data *ProviderData) context.Context {
	return context.WithValue(ctx, providerDataKey{}, data)
}
