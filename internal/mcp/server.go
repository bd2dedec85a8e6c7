package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/FranksOps/jobscout/internal/pipeline"
	"github.com/FranksOps/jobscout/internal/storage"
)

// Runner executes a dispatch. Satisfied by *pipeline.Pipeline; faked in tests.
type Runner interface {
	Run(ctx context.Context, in pipeline.Intent) (*pipeline.Outcome, error)
}

// Server handles MCP protocol requests.
type Server struct {
	runner  Runner
	owner   string          // returned by the validate tool
	backend storage.Backend // optional invocation log
	logger  *slog.Logger
}

// NewServer creates a new MCP server. backend may be nil to disable
// invocation logging.
func NewServer(runner Runner, owner string, backend storage.Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		runner:  runner,
		owner:   owner,
		backend: backend,
		logger:  logger,
	}
}

// HandleRequest processes an MCP request and returns a response.
// Returns nil for notifications (requests without ID) and unknown
// notification methods - they don't require responses.
func (s *Server) HandleRequest(ctx context.Context, req *Request) *Response {
	requestID := req.ID

	switch req.Method {
	case "initialize":
		return s.handleInitialize(requestID)
	case "tools/list":
		return s.handleToolsList(requestID)
	case "tools/call":
		return s.handleToolsCall(ctx, req, requestID)
	case "ping":
		return &Response{
			JSONRPC: "2.0",
			ID:      requestID,
			Result:  json.RawMessage(`"pong"`),
		}
	}

	// Notifications (no ID) don't require responses
	if requestID == nil {
		return nil
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      requestID,
		Error: &ErrorObject{
			Code:    MethodNotFound,
			Message: "Method not found",
		},
	}
}

func (s *Server) handleInitialize(id any) *Response {
	result := map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    "jobscout",
			"version": "1.0.0",
		},
	}
	return marshalResult(id, result)
}

func (s *Server) handleToolsList(id any) *Response {
	return marshalResult(id, map[string]any{"tools": getAllTools()})
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request, id any) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(id, InvalidParams, "Invalid parameters")
	}

	switch params.Name {
	case "job_finder":
		return s.handleJobFinder(ctx, id, params.Arguments)
	case "validate":
		return s.handleValidate(id)
	default:
		return errorResponse(id, InvalidParams, "Unknown tool: "+params.Name)
	}
}

// marshalResult wraps a result payload into a Response.
func marshalResult(id any, result any) *Response {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return errorResponse(id, InternalError, fmt.Sprintf("Failed to marshal result: %v", err))
	}
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Result:  json.RawMessage(resultJSON),
	}
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &ErrorObject{
			Code:    code,
			Message: message,
		},
	}
}

// textResult builds the standard tools/call text content result.
func textResult(id any, text string) *Response {
	return marshalResult(id, map[string]any{
		"content": []map[string]any{
			{
				"type": "text",
				"text": text,
			},
		},
		"isError": false,
	})
}
