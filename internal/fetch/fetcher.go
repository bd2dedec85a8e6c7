package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FranksOps/jobscout/internal/bypass"
	"github.com/FranksOps/jobscout/internal/fingerprint"
	"github.com/FranksOps/jobscout/internal/metrics"
	"github.com/FranksOps/jobscout/pkg/httpclient"
	"github.com/FranksOps/jobscout/pkg/ratelimit"
)

// DefaultIdentity is the client identity sent as the User-Agent header when
// Config.Identity is empty.
const DefaultIdentity = "JobScout/1.0 (Autonomous)"

// Config configures a Fetcher.
type Config struct {
	Timeout      time.Duration // default 30s
	MaxRedirects int           // default 10
	Identity     string        // User-Agent header, default DefaultIdentity
	Fingerprint  fingerprint.Profile
	Limiter      *ratelimit.Limiter // optional outbound pacing
}

// Outcome is the result of a successful fetch. It is consumed exactly once by
// the caller; nothing is cached.
type Outcome struct {
	URL         string
	Body        string
	ContentType string
	IsHTML      bool
	StatusCode  int
	Blocked     bool
	BlockSrc    string
	Duration    time.Duration
}

// Fetcher performs single-URL GET requests with a fixed client identity.
// Redirects are followed; cookies are not persisted across calls.
type Fetcher struct {
	cfg    Config
	client *httpclient.Client
}

// NewFetcher initializes a new Fetcher with the given configuration.
func NewFetcher(cfg Config) (*Fetcher, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = 10
	}
	if cfg.Identity == "" {
		cfg.Identity = DefaultIdentity
	}
	if string(cfg.Fingerprint) == "" {
		cfg.Fingerprint = fingerprint.ProfileGo
	}

	transport, err := fingerprint.Transport(cfg.Fingerprint)
	if err != nil {
		return nil, fmt.Errorf("failed to setup transport: %w", err)
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: cfg.MaxRedirects,
		Transport:    transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Fetcher{cfg: cfg, client: client}, nil
}

// Identity returns the configured client identity string.
func (f *Fetcher) Identity() string {
	return f.cfg.Identity
}

// Fetch executes a single GET request against targetURL. Failures are
// classified by *Error: transport failures (DNS/connect/TLS/timeout) and HTTP
// status failures (>= 400). There is exactly one attempt; a timeout is treated
// the same as any other transport failure.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string) (*Outcome, error) {
	if f.cfg.Limiter != nil {
		if err := f.cfg.Limiter.Wait(ctx); err != nil {
			return nil, &Error{URL: targetURL, Kind: KindTransport, cause: err}
		}
	}

	start := time.Now()
	host := hostOf(targetURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, &Error{URL: targetURL, Kind: KindTransport, cause: err}
	}

	req.Header.Set("User-Agent", f.cfg.Identity)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req.Context(), req)
	if err != nil {
		metrics.RecordFetch(host, 0, false, time.Since(start))
		return nil, &Error{URL: targetURL, Kind: KindTransport, cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordFetch(host, resp.StatusCode, false, time.Since(start))
		return nil, &Error{URL: targetURL, Kind: KindTransport, cause: err}
	}

	// Advisory challenge-page detection; recorded, never acted on.
	blocked, blockSrc := bypass.Analyze(resp.StatusCode, resp.Header, body, bypass.DefaultDetectors())

	duration := time.Since(start)
	metrics.RecordFetch(host, resp.StatusCode, blocked, duration)

	if resp.StatusCode >= 400 {
		return nil, &Error{
			URL:        targetURL,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Blocked:    blocked,
			BlockSrc:   blockSrc,
		}
	}

	contentType := resp.Header.Get("Content-Type")

	return &Outcome{
		URL:         targetURL,
		Body:        string(body),
		ContentType: contentType,
		IsHTML:      strings.Contains(contentType, "text/html"),
		StatusCode:  resp.StatusCode,
		Blocked:     blocked,
		BlockSrc:    blockSrc,
		Duration:    duration,
	}, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
