package storage

import (
	"context"
	"time"
)

// Record captures a single tool invocation and, when one happened, its
// outbound request. Exactly one of the network-facing fields is meaningful
// per record: a fetch populates StatusCode/ContentType/Blocked, a search
// populates Links, and an inline analysis populates neither.
type Record struct {
	ID          string
	Tool        string // "job_finder", "validate"
	Kind        string // "analysis", "fetched_content", "link_list", "error"
	Target      string // fetched URL or search query; empty for inline text
	StatusCode  int
	ContentType string
	Bytes       int64
	Links       int
	Blocked     bool
	BlockSrc    string // e.g. "Cloudflare", "Akamai", "PerimeterX", "DataDome"
	Duration    time.Duration
	CreatedAt   time.Time
	Error       string // non-empty if the invocation failed
}

// Filter allows querying for specific Records.
type Filter struct {
	Tool    string
	Blocked *bool
	Since   *time.Time
	Limit   int
	Offset  int
}

// Backend defines the interface for storing and querying invocation records.
type Backend interface {
	Save(ctx context.Context, record *Record) error
	Query(ctx context.Context, filter Filter) ([]*Record, error)
	Close() error
}
