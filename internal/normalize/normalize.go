// Package normalize turns fetched documents into displayable text. HTML goes
// through readability extraction and markdown conversion; everything else is
// passed through raw with an explanatory note. It never returns an error:
// degradation to raw content or a visible sentinel is the only failure path.
package normalize

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/FranksOps/jobscout/internal/fetch"
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	readability "github.com/go-shiori/go-readability"
)

// FailedSentinel is returned as Result.Text when readability extraction or
// markdown conversion yields nothing usable. Callers always get displayable
// text, never an exception path.
const FailedSentinel = "<error>Page failed to be simplified from HTML</error>"

// Result holds the normalized text. Note is non-empty when raw content was
// returned instead of markdown and explains why.
type Result struct {
	Text string
	Note string
}

// Normalize converts a fetch outcome into displayable text. HTML content is
// simplified to markdown with ATX-style headings unless forceRaw is set;
// anything else is returned verbatim with a note naming the content type.
func Normalize(out *fetch.Outcome, forceRaw bool) Result {
	if out.IsHTML && !forceRaw {
		return Result{Text: extract(out)}
	}

	return Result{
		Text: out.Body,
		Note: fmt.Sprintf("Content type %s cannot be simplified to markdown, but here is the raw content:\n", out.ContentType),
	}
}

// extract isolates the primary article content and converts it to markdown.
// Readability is heuristic and can fail on malformed or atypical markup; any
// failure collapses to FailedSentinel.
func extract(out *fetch.Outcome) string {
	pageURL, err := url.Parse(out.URL)
	if err != nil {
		pageURL = nil
	}

	article, err := readability.FromReader(strings.NewReader(out.Body), pageURL)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return FailedSentinel
	}

	md, err := htmltomarkdown.ConvertString(article.Content)
	if err != nil || strings.TrimSpace(md) == "" {
		return FailedSentinel
	}

	return md
}
