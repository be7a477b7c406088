// Package stdio serves the protocol over line-delimited JSON on standard
// input and output: one request per line in, one response per line out.
// Notifications produce no output line.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/openassistants/assistants-mcp-go/internal/jsonrpc"
	"github.com/openassistants/assistants-mcp-go/internal/logctx"
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 4 * 1024 * 1024

// Handler dispatches one decoded request. A nil response means the request
// was a notification.
type Handler interface {
	Handle(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response
}

// Server reads requests from in and writes responses to out.
type Server struct {
	log     *slog.Logger
	handler Handler
	in      io.Reader
	out     io.Writer

	writeMu sync.Mutex
}

// Option configures the server.
type Option func(*Server)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithIO overrides stdin/stdout, mainly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(s *Server) { s.in = in; s.out = out }
}

// New constructs a stdio server around the handler.
func New(h Handler, opts ...Option) *Server {
	s := &Server{
		log:     slog.Default(),
		handler: h,
		in:      os.Stdin,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run serves until the input stream ends or ctx is canceled. Unparseable
// lines are answered with a parse-error envelope rather than terminating the
// stream.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req jsonrpc.Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.WarnContext(ctx, "stdio.parse_error", slog.String("err", err.Error()))
			s.write(ctx, jsonrpc.NewErrorResponse(nil, jsonrpc.ErrorCodeParseError, "parse error", nil))
			continue
		}

		reqCtx := logctx.WithRequestData(ctx, &logctx.RequestData{
			RequestID: req.ID.String(),
			Method:    req.Method,
			Transport: "stdio",
		})
		if resp := s.handler.Handle(reqCtx, &req); resp != nil {
			s.write(ctx, resp)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	s.log.InfoContext(ctx, "stdio.eof")
	return nil
}

func (s *Server) write(ctx context.Context, resp *jsonrpc.Response) {
	body, err := json.Marshal(resp)
	if err != nil {
		s.log.ErrorContext(ctx, "stdio.marshal_response.fail", slog.String("err", err.Error()))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(append(body, '\n')); err != nil {
		s.log.ErrorContext(ctx, "stdio.write.fail", slog.String("err", err.Error()))
	}
}
