package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ServeStdio processes newline-delimited JSON-RPC requests from r and writes
// responses to w, one per request, until EOF or context cancellation. Only
// protocol JSON may go to w; logs belong on stderr.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	decoder := json.NewDecoder(r)
	// MCP clients expect compact JSON; no indentation
	encoder := json.NewEncoder(w)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var req Request
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			// Parse errors have no usable request ID. The decoder cannot
			// resynchronize after a syntax error, so report it and stop.
			resp := errorResponse(nil, ParseError, "Failed to parse request")
			if encErr := encoder.Encode(resp); encErr != nil {
				return fmt.Errorf("mcp: %w", encErr)
			}
			return fmt.Errorf("mcp: %w", err)
		}

		resp := s.HandleRequest(ctx, &req)
		if resp == nil {
			continue
		}

		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("mcp: %w", err)
		}
	}
}
