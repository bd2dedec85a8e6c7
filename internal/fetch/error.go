package fetch

import "fmt"

// ErrorKind classifies why a fetch failed.
type ErrorKind int

const (
	// KindTransport covers DNS, connect, TLS and timeout failures, i.e.
	// anything that prevented a usable HTTP response.
	KindTransport ErrorKind = iota
	// KindStatus covers responses with status code >= 400.
	KindStatus
)

// Error is the single failure type surfaced by the Fetcher. It always carries
// the offending URL; callers never retry.
type Error struct {
	URL        string
	Kind       ErrorKind
	StatusCode int // set for KindStatus
	Blocked    bool
	BlockSrc   string
	cause      error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("failed to fetch %s - status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}
