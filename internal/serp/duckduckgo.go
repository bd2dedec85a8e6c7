package serp

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/FranksOps/jobscout/internal/metrics"
	"github.com/FranksOps/jobscout/pkg/httpclient"
	"github.com/PuerkitoBio/goquery"
)

// DefaultEndpoint is DuckDuckGo's HTML-only results page. DuckDuckGo is used
// because the big engines block most programmatic scraping.
const DefaultEndpoint = "https://html.duckduckgo.com/html/"

// Config configures a DuckDuckGo provider.
type Config struct {
	Endpoint string        // default DefaultEndpoint
	Identity string        // User-Agent header, required
	Timeout  time.Duration // default 30s
}

// DuckDuckGo harvests result links from DuckDuckGo's HTML results page.
//
// It scans anchors carrying the provider's result-link class in document
// order. That class name is an implementation detail on the provider's side;
// if the markup changes, harvesting silently degrades to the no-results
// sentinel rather than failing loudly.
type DuckDuckGo struct {
	cfg    Config
	client *httpclient.Client
}

var _ Provider = (*DuckDuckGo)(nil)

// NewDuckDuckGo creates a DuckDuckGo search provider.
func NewDuckDuckGo(cfg Config) (*DuckDuckGo, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := httpclient.New(httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxRedirects: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &DuckDuckGo{cfg: cfg, client: client}, nil
}

// Search issues a single GET against the results page and collects up to
// limit outbound links in document order. A non-200 response or an unparseable
// page yields the failed-search sentinel; zero qualifying anchors yield the
// no-results sentinel. Only transport failures return an error.
func (d *DuckDuckGo) Search(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultResultCap
	}

	searchURL := d.cfg.Endpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	req.Header.Set("User-Agent", d.cfg.Identity)

	resp, err := d.client.Do(req.Context(), req)
	if err != nil {
		metrics.RecordSearch(0)
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	metrics.RecordSearch(resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return []string{SearchFailedSentinel}, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return []string{SearchFailedSentinel}, nil
	}

	var links []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if ok && strings.Contains(href, "http") {
			links = append(links, href)
		}
		return len(links) < limit
	})

	if len(links) == 0 {
		return []string{NoResultsSentinel}, nil
	}

	return links, nil
}
