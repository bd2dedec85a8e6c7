package pipeline

import (
	"fmt"
	"strings"
)

// Kind tags the branch that produced an Outcome.
type Kind int

const (
	KindAnalysis Kind = iota
	KindFetchedContent
	KindLinkList
)

// String returns the record/metric label for the kind.
func (k Kind) String() string {
	switch k {
	case KindAnalysis:
		return "analysis"
	case KindFetchedContent:
		return "fetched_content"
	case KindLinkList:
		return "link_list"
	}
	return "unknown"
}

// Outcome is the tagged result of a dispatch. Exactly one shape is populated
// per Kind; Render produces the uniform caller-facing text for all of them.
// The trailing fields carry fetch metadata for invocation logging only.
type Outcome struct {
	Kind  Kind
	Goal  string
	Text  string   // analysis input or normalized content
	Note  string   // set when raw content was returned instead of markdown
	URL   string   // set for KindFetchedContent
	Links []string // set for KindLinkList

	StatusCode  int
	ContentType string
	Bytes       int64
	Blocked     bool
	BlockSrc    string
}

// Render converts the outcome into the text payload returned to the caller.
func (o *Outcome) Render() string {
	switch o.Kind {
	case KindAnalysis:
		return fmt.Sprintf(
			"📝 **Job Description Analysis**\n\n"+
				"---\n%s\n---\n\n"+
				"User Goal: **%s**\n\n"+
				"💡 Suggestions:\n- Tailor your resume.\n- Evaluate skill match.\n- Consider applying if relevant.",
			strings.TrimSpace(o.Text), o.Goal,
		)

	case KindFetchedContent:
		body := o.Text
		if o.Note != "" {
			body = o.Note + o.Text
		}
		return fmt.Sprintf(
			"🔗 **Fetched Job Posting from URL**: %s\n\n"+
				"---\n%s\n---\n\n"+
				"User Goal: **%s**",
			o.URL, strings.TrimSpace(body), o.Goal,
		)

	case KindLinkList:
		var b strings.Builder
		fmt.Fprintf(&b, "🔍 **Search Results for**: _%s_\n\n", o.Goal)
		for i, link := range o.Links {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString("- ")
			b.WriteString(link)
		}
		return b.String()
	}

	return ""
}

// Target returns what the invocation reached for: the fetched URL, the search
// query, or empty for inline analysis.
func (o *Outcome) Target() string {
	switch o.Kind {
	case KindFetchedContent:
		return o.URL
	case KindLinkList:
		return o.Goal
	}
	return ""
}
