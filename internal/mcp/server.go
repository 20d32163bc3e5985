// Package mcp exposes the document pipeline over the Model Context Protocol.
// Tool calls delegate to the same JSON-RPC handlers the plain RPC surface
// uses; scoreboards recorded during the session are additionally published
// as readable resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vinothezhumalai/legalmcpserver/internal/jsonrpc"
	"github.com/vinothezhumalai/legalmcpserver/internal/orchestration"
)

const protocolVersion = "2024-11-05"

const serverName = "legalmcp"

// serverVersion is stamped at release time; dev builds carry the default.
var serverVersion = "0.1.0-dev"

// scoreboardURIPrefix is the resource namespace for recorded scoreboards.
const scoreboardURIPrefix = "legalmcp://scoreboards/"

// Server handles MCP protocol messages by delegating to the JSON-RPC handlers.
type Server struct {
	service *orchestration.Service
	reg     *jsonrpc.MethodRegistry
	logger  *slog.Logger
}

// NewServer creates an MCP server over a wired document service.
func NewServer(service *orchestration.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	reg := jsonrpc.NewMethodRegistry()
	jsonrpc.RegisterHandlers(reg, jsonrpc.NewHandlerContext(service))
	return &Server{service: service, reg: reg, logger: logger}
}

// HandleRequest processes a single MCP JSON-RPC request and returns a response.
func (s *Server) HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgement, no response for notifications.
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(ctx, req)
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	default:
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Error:   jsonrpc.ErrMethodNotFound(req.Method),
			ID:      req.ID,
		}
	}
}

// --- initialize ---

type initializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    capabilities `json:"capabilities"`
	ServerInfo      serverInfo   `json:"serverInfo"`
}

type capabilities struct {
	Tools     *toolsCap     `json:"tools,omitempty"`
	Resources *resourcesCap `json:"resources,omitempty"`
}

type toolsCap struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type resourcesCap struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type serverInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

func (s *Server) handleInitialize(req *jsonrpc.Request) *jsonrpc.Response {
	return &jsonrpc.Response{
		JSONRPC: "2.0",
		Result: initializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: capabilities{
				Tools:     &toolsCap{},
				Resources: &resourcesCap{},
			},
			ServerInfo: serverInfo{Name: serverName, Version: serverVersion},
		},
		ID: req.ID,
	}
}

// --- tools/list ---

type toolsListResult struct {
	Tools []Tool `json:"tools"`
}

func (s *Server) handleToolsList(req *jsonrpc.Request) *jsonrpc.Response {
	return &jsonrpc.Response{
		JSONRPC: "2.0",
		Result:  toolsListResult{Tools: ToolsDef()},
		ID:      req.ID,
	}
}

// --- tools/call ---

type toolsCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type toolsCallResult struct {
	Content []contentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *Server) handleToolsCall(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response {
	var p toolsCallParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Error:   jsonrpc.ErrInvalidParams(err.Error()),
			ID:      req.ID,
		}
	}

	result, rpcErr := s.dispatchTool(ctx, p.Name, p.Arguments)
	if rpcErr != nil {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Result: toolsCallResult{
				Content: []contentBlock{{Type: "text", Text: toolErrorText(rpcErr)}},
				IsError: true,
			},
			ID: req.ID,
		}
	}

	text, err := json.Marshal(result)
	if err != nil {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Result: toolsCallResult{
				Content: []contentBlock{{Type: "text", Text: fmt.Sprintf("marshal error: %v", err)}},
				IsError: true,
			},
			ID: req.ID,
		}
	}

	return &jsonrpc.Response{
		JSONRPC: "2.0",
		Result: toolsCallResult{
			Content: []contentBlock{{Type: "text", Text: string(text)}},
		},
		ID: req.ID,
	}
}

// dispatchTool maps MCP tool names to the underlying JSON-RPC methods.
func (s *Server) dispatchTool(ctx context.Context, name string, args json.RawMessage) (any, *jsonrpc.Error) {
	switch name {
	case "legal_summarize_document":
		return s.callHandler(ctx, "document.summarize", args)
	case "legal_classify_document":
		return s.callHandler(ctx, "document.classify", args)
	case "legal_evaluate_quality":
		return s.callHandler(ctx, "document.evaluate", args)
	case "legal_quality_trend":
		return s.callHandler(ctx, "history.trend", args)
	case "legal_list_evaluations":
		return s.callHandler(ctx, "history.list", args)
	default:
		return nil, &jsonrpc.Error{Code: jsonrpc.CodeMethodNotFound, Message: fmt.Sprintf("unknown tool: %s", name)}
	}
}

// callHandler delegates to the JSON-RPC method handler.
func (s *Server) callHandler(ctx context.Context, method string, args json.RawMessage) (any, *jsonrpc.Error) {
	handler := s.reg.Lookup(method)
	if handler == nil {
		return nil, jsonrpc.ErrMethodNotFound(method)
	}
	if args == nil {
		args = json.RawMessage(`{}`)
	}
	return handler(ctx, args)
}

// toolErrorText renders an RPC error as tool output text, keeping the data
// payload visible since MCP tool errors have no structured error channel.
func toolErrorText(rpcErr *jsonrpc.Error) string {
	if rpcErr.Data == nil {
		return rpcErr.Message
	}
	return fmt.Sprintf("%s: %v", rpcErr.Message, rpcErr.Data)
}

// --- resources/list ---

type resourcesListResult struct {
	Resources []resourceDescriptor `json:"resources"`
}

type resourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

func (s *Server) handleResourcesList(req *jsonrpc.Request) *jsonrpc.Response {
	boards := s.service.Recent(0)
	resources := make([]resourceDescriptor, 0, len(boards))
	for _, sb := range boards {
		resources = append(resources, resourceDescriptor{
			URI:         scoreboardURIPrefix + sb.DocumentID,
			Name:        fmt.Sprintf("Scoreboard %s", sb.DocumentID),
			Description: fmt.Sprintf("Quality scoreboard: %.1f (%s)", sb.OverallScore, sb.OverallTier),
			MimeType:    "application/json",
		})
	}
	return &jsonrpc.Response{
		JSONRPC: "2.0",
		Result:  resourcesListResult{Resources: resources},
		ID:      req.ID,
	}
}

// --- resources/read ---

type resourcesReadParams struct {
	URI string `json:"uri"`
}

type resourcesReadResult struct {
	Contents []resourceContents `json:"contents"`
}

type resourceContents struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

func (s *Server) handleResourcesRead(req *jsonrpc.Request) *jsonrpc.Response {
	var p resourcesReadParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Error:   jsonrpc.ErrInvalidParams(err.Error()),
			ID:      req.ID,
		}
	}

	documentID, ok := strings.CutPrefix(p.URI, scoreboardURIPrefix)
	if !ok || documentID == "" {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Error:   jsonrpc.ErrInvalidParams(fmt.Sprintf("unknown resource URI: %s", p.URI)),
			ID:      req.ID,
		}
	}

	sb, err := s.service.Scoreboard(documentID)
	if err != nil {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Error:   jsonrpc.ErrInvalidParams(fmt.Sprintf("no scoreboard recorded for %s", documentID)),
			ID:      req.ID,
		}
	}

	text, err := json.MarshalIndent(sb, "", "  ")
	if err != nil {
		return &jsonrpc.Response{
			JSONRPC: "2.0",
			Error:   jsonrpc.ErrInternalError(err.Error()),
			ID:      req.ID,
		}
	}

	return &jsonrpc.Response{
		JSONRPC: "2.0",
		Result: resourcesReadResult{
			Contents: []resourceContents{{
				URI:      p.URI,
				MimeType: "application/json",
				Text:     string(text),
			}},
		},
		ID: req.ID,
	}
}
