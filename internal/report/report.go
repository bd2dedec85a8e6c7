package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"text/template"
	"time"

	"github.com/FranksOps/jobscout/internal/storage"
)

// Summary contains aggregated metrics about recorded tool invocations.
type Summary struct {
	TotalCalls   int
	TotalErrors  int
	TotalBlocked int
	ByTool       map[string]int
	ByKind       map[string]int
	StatusCodes  map[int]int
	BlockedBySrc map[string]int
	TotalBytes   int64
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
}

// GenerateSummary processes a slice of invocation records into summary metrics.
func GenerateSummary(records []*storage.Record) Summary {
	s := Summary{
		ByTool:       make(map[string]int),
		ByKind:       make(map[string]int),
		StatusCodes:  make(map[int]int),
		BlockedBySrc: make(map[string]int),
	}

	if len(records) == 0 {
		return s
	}

	s.StartTime = records[0].CreatedAt
	s.EndTime = records[0].CreatedAt

	for _, r := range records {
		s.TotalCalls++
		s.ByTool[r.Tool]++
		s.ByKind[r.Kind]++
		if r.Error != "" {
			s.TotalErrors++
		}
		if r.Blocked {
			s.TotalBlocked++
			s.BlockedBySrc[r.BlockSrc]++
		}
		if r.StatusCode > 0 {
			s.StatusCodes[r.StatusCode]++
		}
		s.TotalBytes += r.Bytes

		if r.CreatedAt.Before(s.StartTime) {
			s.StartTime = r.CreatedAt
		}
		if r.CreatedAt.After(s.EndTime) {
			s.EndTime = r.CreatedAt
		}
	}

	s.Duration = s.EndTime.Sub(s.StartTime)
	return s
}

// WriteJSON writes the summary to the provided writer in JSON format.
func WriteJSON(w io.Writer, summary Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable text summary to the provided writer.
func WriteText(w io.Writer, summary Summary) error {
	const textTmpl = `Jobscout Invocation Summary
---------------------------
Time:          {{.StartTime.Format "2006-01-02 15:04:05"}} - {{.EndTime.Format "2006-01-02 15:04:05"}}
Duration:      {{.Duration}}
Total Calls:   {{.TotalCalls}}
Total Bytes:   {{.TotalBytes}} bytes
Total Errors:  {{.TotalErrors}}

By Tool:
{{- range $tool, $count := .ByTool}}
  {{$tool}}: {{$count}}
{{- else}}
  None
{{- end}}

Status Codes:
{{- range $code, $count := .StatusCodes}}
  {{$code}}: {{$count}}
{{- else}}
  None
{{- end}}

Blocked: {{.TotalBlocked}}
{{- range $src, $count := .BlockedBySrc}}
  {{$src}}: {{$count}}
{{- else}}
  None
{{- end}}
`

	t, err := template.New("textReport").Parse(textTmpl)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if err := t.Execute(w, summary); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

// Handler serves a JSON summary of the most recent invocations on the ops
// server. maxRecords bounds how many records feed the summary.
func Handler(backend storage.Backend, maxRecords int) http.Handler {
	if maxRecords <= 0 {
		maxRecords = 1000
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		records, err := backend.Query(r.Context(), storage.Filter{Limit: maxRecords})
		if err != nil {
			slog.Error("report query failed", "err", err)
			http.Error(w, "query failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := WriteJSON(w, GenerateSummary(records)); err != nil {
			slog.Error("report write failed", "err", err)
		}
	})
}
