package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/FranksOps/jobscout/internal/pipeline"
)

// fakeRunner implements Runner for testing.
type fakeRunner struct {
	outcome *pipeline.Outcome
	err     error
	intents []pipeline.Intent
}

func (f *fakeRunner) Run(ctx context.Context, in pipeline.Intent) (*pipeline.Outcome, error) {
	f.intents = append(f.intents, in)
	return f.outcome, f.err
}

func newTestServer(runner Runner) *Server {
	return NewServer(runner, "1234567890", nil, nil)
}

func callRequest(t *testing.T, s *Server, method string, params any) *Response {
	t.Helper()

	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			t.Fatalf("failed to marshal params: %v", err)
		}
		raw = data
	}

	return s.HandleRequest(context.Background(), &Request{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  raw,
	})
}

func toolCall(t *testing.T, s *Server, tool string, args any) *Response {
	t.Helper()

	argsJSON, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("failed to marshal arguments: %v", err)
	}

	return callRequest(t, s, "tools/call", map[string]any{
		"name":      tool,
		"arguments": json.RawMessage(argsJSON),
	})
}

// resultText extracts the text payload from a tools/call response.
func resultText(t *testing.T, resp *Response) string {
	t.Helper()

	if resp.Error != nil {
		t.Fatalf("unexpected error response: %+v", resp.Error)
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		IsError bool `json:"isError"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Fatalf("expected single text content, got %+v", result.Content)
	}
	return result.Content[0].Text
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := callRequest(t, s, "initialize", nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	var result struct {
		ProtocolVersion string `json:"protocolVersion"`
		ServerInfo      struct {
			Name string `json:"name"`
		} `json:"serverInfo"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}

	if result.ProtocolVersion != "2024-11-05" {
		t.Errorf("expected protocol 2024-11-05, got %s", result.ProtocolVersion)
	}
	if result.ServerInfo.Name != "jobscout" {
		t.Errorf("expected server name jobscout, got %s", result.ServerInfo.Name)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := callRequest(t, s, "tools/list", nil)
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	var result struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		t.Fatalf("failed to unmarshal result: %v", err)
	}

	if len(result.Tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(result.Tools))
	}
	if result.Tools[0].Name != "job_finder" || result.Tools[1].Name != "validate" {
		t.Errorf("unexpected tool names: %s, %s", result.Tools[0].Name, result.Tools[1].Name)
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := callRequest(t, s, "ping", nil)
	if string(resp.Result) != `"pong"` {
		t.Errorf("expected pong, got %s", resp.Result)
	}
}

func TestHandleRequest_MethodNotFound(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := callRequest(t, s, "resources/list", nil)
	if resp.Error == nil || resp.Error.Code != MethodNotFound {
		t.Errorf("expected MethodNotFound, got %+v", resp.Error)
	}
}

func TestHandleRequest_NotificationIgnored(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := s.HandleRequest(context.Background(), &Request{
		JSONRPC: "2.0",
		Method:  "notifications/initialized",
	})
	if resp != nil {
		t.Errorf("expected nil response for notification, got %+v", resp)
	}
}

func TestJobFinder_Success(t *testing.T) {
	runner := &fakeRunner{outcome: &pipeline.Outcome{
		Kind: pipeline.KindAnalysis,
		Goal: "fit check",
		Text: "desc",
	}}
	s := newTestServer(runner)

	resp := toolCall(t, s, "job_finder", map[string]any{
		"user_goal":       "fit check",
		"job_description": "desc",
	})

	text := resultText(t, resp)
	if !strings.Contains(text, "Job Description Analysis") {
		t.Errorf("expected rendered analysis, got %q", text)
	}

	if len(runner.intents) != 1 {
		t.Fatalf("expected one pipeline run, got %d", len(runner.intents))
	}
	if runner.intents[0].Text != "desc" || runner.intents[0].Goal != "fit check" {
		t.Errorf("unexpected intent: %+v", runner.intents[0])
	}
}

func TestJobFinder_MissingUserGoal(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := toolCall(t, s, "job_finder", map[string]any{"job_url": "https://example.com"})
	if resp.Error == nil || resp.Error.Code != InvalidParams {
		t.Fatalf("expected InvalidParams, got %+v", resp.Error)
	}
	if resp.Error.Message != "user_goal is required" {
		t.Errorf("unexpected message: %q", resp.Error.Message)
	}
}

func TestJobFinder_InvalidIntent(t *testing.T) {
	runner := &fakeRunner{err: pipeline.ErrInvalidIntent}
	s := newTestServer(runner)

	resp := toolCall(t, s, "job_finder", map[string]any{"user_goal": "hello"})
	if resp.Error == nil || resp.Error.Code != InvalidParams {
		t.Fatalf("expected InvalidParams, got %+v", resp.Error)
	}
	if resp.Error.Message != invalidIntentMessage {
		t.Errorf("unexpected message: %q", resp.Error.Message)
	}
}

func TestValidate(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := toolCall(t, s, "validate", map[string]any{})
	if got := resultText(t, resp); got != "1234567890" {
		t.Errorf("expected owner number, got %q", got)
	}
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(&fakeRunner{})

	resp := toolCall(t, s, "weather", map[string]any{})
	if resp.Error == nil || resp.Error.Code != InvalidParams {
		t.Errorf("expected InvalidParams for unknown tool, got %+v", resp.Error)
	}
}
