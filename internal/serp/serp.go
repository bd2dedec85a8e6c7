package serp

import "context"

// Sentinel strings returned as successful data so that callers always have
// displayable text and never need to special-case an empty result set.
const (
	SearchFailedSentinel = "<error>Failed to perform search.</error>"
	NoResultsSentinel    = "<error>No results found.</error>"
)

// DefaultResultCap bounds the number of links harvested from one results page.
const DefaultResultCap = 5

// Provider abstracts a search engine that can return a list of result links
// for a given query. The limit parameter caps the number of links returned.
// Implementations return an error only for transport failures; provider-side
// problems (non-200, empty results) degrade to a one-element sentinel slice.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
