package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/FranksOps/jobscout/internal/storage"
)

func newTestBackend(t *testing.T) storage.Backend {
	t.Helper()

	backend, err := New(filepath.Join(t.TempDir(), "invocations.db"))
	if err != nil {
		t.Fatalf("failed to create backend: %v", err)
	}
	t.Cleanup(func() { _ = backend.Close() })
	return backend
}

func TestSQLite_SaveAndQuery(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()

	rec := &storage.Record{
		ID:          "rec-1",
		Tool:        "job_finder",
		Kind:        "fetched_content",
		Target:      "https://example.com/job",
		StatusCode:  200,
		ContentType: "text/html",
		Bytes:       2048,
		Links:       0,
		Blocked:     true,
		BlockSrc:    "Cloudflare",
		Duration:    150 * time.Millisecond,
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := backend.Save(ctx, rec); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := backend.Query(ctx, storage.Filter{})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}

	r := got[0]
	if r.ID != rec.ID || r.Tool != rec.Tool || r.Kind != rec.Kind {
		t.Errorf("record identity mismatch: %+v", r)
	}
	if r.StatusCode != 200 || r.ContentType != "text/html" || r.Bytes != 2048 {
		t.Errorf("fetch metadata mismatch: %+v", r)
	}
	if !r.Blocked || r.BlockSrc != "Cloudflare" {
		t.Errorf("block annotation mismatch: %+v", r)
	}
	if r.Duration != 150*time.Millisecond {
		t.Errorf("expected duration round-trip, got %v", r.Duration)
	}
}

func TestSQLite_Filters(t *testing.T) {
	backend := newTestBackend(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	records := []*storage.Record{
		{ID: "a", Tool: "job_finder", Kind: "analysis", CreatedAt: base},
		{ID: "b", Tool: "job_finder", Kind: "error", Blocked: true, CreatedAt: base.Add(1 * time.Minute)},
		{ID: "c", Tool: "validate", Kind: "analysis", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		if err := backend.Save(ctx, rec); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	byTool, err := backend.Query(ctx, storage.Filter{Tool: "job_finder"})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(byTool) != 2 {
		t.Errorf("expected 2 job_finder records, got %d", len(byTool))
	}
	// Newest first
	if byTool[0].ID != "b" {
		t.Errorf("expected created_at DESC ordering, got %s first", byTool[0].ID)
	}

	blocked := true
	byBlocked, err := backend.Query(ctx, storage.Filter{Blocked: &blocked})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(byBlocked) != 1 || byBlocked[0].ID != "b" {
		t.Errorf("expected only blocked record, got %v", byBlocked)
	}

	limited, err := backend.Query(ctx, storage.Filter{Limit: 1, Offset: 2})
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "a" {
		t.Errorf("expected oldest record at offset 2, got %v", limited)
	}
}
