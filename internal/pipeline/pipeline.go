// Package pipeline decides how to satisfy a job-discovery request: analyze
// supplied text, fetch and normalize a posting URL, or harvest links from a
// search provider. Each invocation performs at most one outbound call and
// keeps no state between calls.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FranksOps/jobscout/internal/fetch"
	"github.com/FranksOps/jobscout/internal/normalize"
	"github.com/FranksOps/jobscout/internal/serp"
)

// ErrInvalidIntent is returned when no dispatch branch matches the intent.
// It is the only hard failure of dispatch itself; branch content may carry
// error sentinels but the branches themselves succeed.
var ErrInvalidIntent = errors.New("no job description, job URL, or recognizable search intent provided")

// defaultKeywords is the fixed fast-path heuristic for search intent. This is
// a literal substring test, not a classifier.
var defaultKeywords = []string{
	"job", "jobs", "career", "work", "employment",
	"position", "opening", "vacancy", "look for", "find",
}

// Intent is the transient per-call input. Goal is always present; Text and
// URL are optional and checked in that priority order.
type Intent struct {
	Goal string
	Text string
	URL  string
	Raw  bool
}

// Fetcher is the single-URL retrieval dependency.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string) (*fetch.Outcome, error)
}

// Config configures a Pipeline.
type Config struct {
	Keywords  []string // default defaultKeywords
	ResultCap int      // default serp.DefaultResultCap
}

// Pipeline routes an Intent to exactly one of the three terminal branches.
type Pipeline struct {
	cfg      Config
	fetcher  Fetcher
	provider serp.Provider
}

// New creates a Pipeline. fetcher and provider may be fakes in tests.
func New(cfg Config, fetcher Fetcher, provider serp.Provider) *Pipeline {
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = defaultKeywords
	}
	if cfg.ResultCap <= 0 {
		cfg.ResultCap = serp.DefaultResultCap
	}
	return &Pipeline{cfg: cfg, fetcher: fetcher, provider: provider}
}

// Run evaluates the branches in fixed priority order: explicit text, explicit
// URL, then keyword-matched search. Branches never fail on input quality; the
// returned content may itself be a sentinel. Only the no-match branch fails,
// with ErrInvalidIntent.
func (p *Pipeline) Run(ctx context.Context, in Intent) (*Outcome, error) {
	if in.Text != "" {
		return &Outcome{Kind: KindAnalysis, Goal: in.Goal, Text: in.Text}, nil
	}

	if in.URL != "" {
		out, err := p.fetcher.Fetch(ctx, in.URL)
		if err != nil {
			return nil, err
		}
		res := normalize.Normalize(out, in.Raw)
		return &Outcome{
			Kind:        KindFetchedContent,
			Goal:        in.Goal,
			URL:         in.URL,
			Text:        res.Text,
			Note:        res.Note,
			StatusCode:  out.StatusCode,
			ContentType: out.ContentType,
			Bytes:       int64(len(out.Body)),
			Blocked:     out.Blocked,
			BlockSrc:    out.BlockSrc,
		}, nil
	}

	if matchesKeyword(in.Goal, p.cfg.Keywords) {
		links, err := p.provider.Search(ctx, in.Goal, p.cfg.ResultCap)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}
		return &Outcome{Kind: KindLinkList, Goal: in.Goal, Links: links}, nil
	}

	return nil, ErrInvalidIntent
}

// matchesKeyword reports whether goal contains any keyword, case-insensitive.
func matchesKeyword(goal string, keywords []string) bool {
	lower := strings.ToLower(goal)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
