package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/FranksOps/jobscout/internal/fetch"
	"github.com/FranksOps/jobscout/internal/metrics"
	"github.com/FranksOps/jobscout/internal/pipeline"
	"github.com/FranksOps/jobscout/internal/storage"
	"github.com/google/uuid"
)

// invalidIntentMessage is what callers see when no dispatch branch matched.
const invalidIntentMessage = "Please provide either a job description, a job URL, or a search query in user_goal."

// handleJobFinder handles the job_finder tool call.
func (s *Server) handleJobFinder(ctx context.Context, id any, arguments json.RawMessage) *Response {
	var args struct {
		UserGoal       string `json:"user_goal"`
		JobDescription string `json:"job_description"`
		JobURL         string `json:"job_url"`
		Raw            bool   `json:"raw"`
	}

	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResponse(id, InvalidParams, "Invalid arguments")
	}

	if args.UserGoal == "" {
		return errorResponse(id, InvalidParams, "user_goal is required")
	}

	intent := pipeline.Intent{
		Goal: args.UserGoal,
		Text: args.JobDescription,
		URL:  args.JobURL,
		Raw:  args.Raw,
	}

	start := time.Now()
	outcome, err := s.runner.Run(ctx, intent)
	if err != nil {
		s.recordFailure(ctx, intent, err, time.Since(start))

		if errors.Is(err, pipeline.ErrInvalidIntent) {
			metrics.RecordToolCall("job_finder", "invalid_params")
			return errorResponse(id, InvalidParams, invalidIntentMessage)
		}

		metrics.RecordToolCall("job_finder", "internal_error")
		return errorResponse(id, InternalError, callerMessage(err))
	}

	s.recordSuccess(ctx, outcome, time.Since(start))
	metrics.RecordToolCall("job_finder", "ok")

	return textResult(id, outcome.Render())
}

// handleValidate handles the validate tool call, returning the configured
// owner number.
func (s *Server) handleValidate(id any) *Response {
	metrics.RecordToolCall("validate", "ok")
	return textResult(id, s.owner)
}

// callerMessage renders an internal failure for the caller. Fetch failures
// already carry the offending URL and cause; anything else passes through.
func callerMessage(err error) string {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return fetchErr.Error()
	}
	return err.Error()
}

func (s *Server) recordSuccess(ctx context.Context, outcome *pipeline.Outcome, duration time.Duration) {
	if s.backend == nil {
		return
	}

	rec := &storage.Record{
		ID:          uuid.New().String(),
		Tool:        "job_finder",
		Kind:        outcome.Kind.String(),
		Target:      outcome.Target(),
		StatusCode:  outcome.StatusCode,
		ContentType: outcome.ContentType,
		Bytes:       outcome.Bytes,
		Links:       len(outcome.Links),
		Blocked:     outcome.Blocked,
		BlockSrc:    outcome.BlockSrc,
		Duration:    duration,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.backend.Save(ctx, rec); err != nil {
		s.logger.Error("failed to save invocation record", "err", err)
	}
}

func (s *Server) recordFailure(ctx context.Context, intent pipeline.Intent, callErr error, duration time.Duration) {
	if s.backend == nil {
		return
	}

	rec := &storage.Record{
		ID:        uuid.New().String(),
		Tool:      "job_finder",
		Kind:      "error",
		Target:    intent.URL,
		Duration:  duration,
		CreatedAt: time.Now().UTC(),
		Error:     callErr.Error(),
	}

	var fetchErr *fetch.Error
	if errors.As(callErr, &fetchErr) {
		rec.StatusCode = fetchErr.StatusCode
		rec.Blocked = fetchErr.Blocked
		rec.BlockSrc = fetchErr.BlockSrc
	}

	if err := s.backend.Save(ctx, rec); err != nil {
		s.logger.Error("failed to save invocation record", "err", err)
	}
}
