package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
)

// Handler executes one document tooling method and returns its result or a
// protocol error.
type Handler func(ctx context.Context, params json.RawMessage) (any, *Error)

// MethodRegistry maps method names (document.evaluate, history.trend, ...)
// to their handlers.
type MethodRegistry struct {
	methods map[string]Handler
}

func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{methods: make(map[string]Handler)}
}

// Register adds a handler under the given method name.
func (r *MethodRegistry) Register(method string, handler Handler) {
	r.methods[method] = handler
}

// Lookup returns the handler for a method, or nil when none is registered.
func (r *MethodRegistry) Lookup(method string) Handler {
	return r.methods[method]
}

// Server dispatches JSON-RPC 2.0 requests to registered handlers. The same
// server backs the stdio and TCP surfaces.
type Server struct {
	registry *MethodRegistry
	logger   *slog.Logger
}

func NewServer(registry *MethodRegistry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{registry: registry, logger: logger}
}

// ServeTransport processes requests from t until the reader is exhausted.
// Undecodable input gets a parse-error response with a null id and ends the
// session, since framing can no longer be trusted. Notifications (frames
// without an "id" key) are executed but never answered.
func (s *Server) ServeTransport(t *Transport) {
	ctx := context.Background()

	for {
		req, raw, err := t.ReadRequest()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			s.logger.Debug("read error", "error", err)
			s.write(t, &Response{
				JSONRPC: "2.0",
				Error:   ErrParseError(err.Error()),
				ID:      json.RawMessage("null"),
			})
			return
		}

		resp := s.dispatch(ctx, req)
		if !hasIDField(raw) {
			continue
		}
		if !s.write(t, resp) {
			return
		}
	}
}

// dispatch validates the envelope, runs the handler, and shapes the response.
func (s *Server) dispatch(ctx context.Context, req *Request) *Response {
	resp := &Response{JSONRPC: "2.0", ID: req.ID}

	if req.JSONRPC != "2.0" {
		resp.Error = ErrInvalidRequest("jsonrpc field must be \"2.0\"")
		return resp
	}

	handler := s.registry.Lookup(req.Method)
	if handler == nil {
		resp.Error = ErrMethodNotFound(req.Method)
		return resp
	}

	result, rpcErr := handler(ctx, req.Params)
	if rpcErr != nil {
		resp.Error = rpcErr
		return resp
	}
	resp.Result = result
	return resp
}

func (s *Server) write(t *Transport, resp *Response) bool {
	if err := t.WriteResponse(resp); err != nil {
		s.logger.Debug("write error", "error", err)
		return false
	}
	return true
}

// hasIDField reports whether the raw frame carries an "id" key at the top
// level. JSON-RPC 2.0 distinguishes a missing id (notification) from an
// explicit null id (request), so the decoded Request alone cannot tell.
func hasIDField(raw []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return false
	}
	_, exists := obj["id"]
	return exists
}

// ServeStdio runs the server on the given streams, typically stdin/stdout.
func (s *Server) ServeStdio(stdin io.Reader, stdout io.Writer) {
	s.ServeTransport(NewTransport(stdin, stdout))
}
