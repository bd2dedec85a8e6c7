package mcp

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Handler returns an http.Handler serving the MCP protocol over HTTP POST.
// One JSON-RPC request per POST body; notifications get 202 with no body.
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, &Response{
				JSONRPC: "2.0",
				ID:      nil,
				Error: &ErrorObject{
					Code:    ParseError,
					Message: "Failed to parse request",
				},
			})
			return
		}

		resp := s.HandleRequest(r.Context(), &req)
		if resp == nil || req.ID == nil {
			// Notification: processed, nothing to send back
			w.WriteHeader(http.StatusAccepted)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	})
}

func writeJSON(w http.ResponseWriter, status int, resp *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// MCP clients expect compact JSON; no indentation
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}
