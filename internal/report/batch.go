package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"fnol/internal/claim"
	"fnol/internal/display"
	"fnol/internal/format"
	"fnol/internal/pipeline"
)

// Document is the JSON form of one batch outcome.
type Document struct {
	Path         string        `json:"path"`
	Result       *claim.Result `json:"result,omitempty"`
	Completeness float64       `json:"completeness"`
	Error        string        `json:"error,omitempty"`
	ElapsedMS    int64         `json:"elapsedMs"`
}

// Batch is the JSON form of a batch report.
type Batch struct {
	RunID     string              `json:"runId"`
	Documents []Document          `json:"documents"`
	Routes    map[claim.Route]int `json:"routes"`
	Failed    int                 `json:"failed"`
	ElapsedMS int64               `json:"elapsedMs"`
}

// FromBatch converts a pipeline report to its serializable form.
func FromBatch(r pipeline.BatchReport) Batch {
	out := Batch{
		RunID:     r.RunID,
		Documents: make([]Document, 0, len(r.Outcomes)),
		Routes:    r.RouteCounts(),
		Failed:    r.Failed(),
		ElapsedMS: r.Elapsed.Milliseconds(),
	}
	for _, o := range r.Outcomes {
		d := Document{Path: o.Path, ElapsedMS: o.Elapsed.Milliseconds()}
		if o.Err != nil {
			d.Error = o.Err.Error()
		} else {
			res := o.Result
			d.Result = &res
			d.Completeness = o.Completeness
		}
		out.Documents = append(out.Documents, d)
	}
	return out
}

// EncodeBatch renders a batch report as indented JSON.
func EncodeBatch(r pipeline.BatchReport) ([]byte, error) {
	data, err := json.MarshalIndent(FromBatch(r), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}
	return append(data, '\n'), nil
}

// Summary renders one row per document followed by a per-route tally.
func Summary(r pipeline.BatchReport, mode format.Mode) string {
	var b strings.Builder

	docs := format.NewTable(mode)
	docs.Header("#", "Document", "Route", "Missing", "Complete", "Time")
	docs.Columns(
		format.ColumnConfig{Number: 1, Align: format.AlignRight},
		format.ColumnConfig{Number: 4, MaxWidth: 48},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	for i, o := range r.Outcomes {
		name := format.Truncate(filepath.Base(o.Path), 40)
		if o.Err != nil {
			docs.Row(i+1, name, "error", format.Truncate(o.Err.Error(), 48), "-", format.Elapsed(o.Elapsed))
			continue
		}
		missing := "-"
		if len(o.Result.MissingFields) > 0 {
			missing = strings.Join(o.Result.MissingFields, ", ")
		}
		docs.Row(i+1, name,
			display.RouteShort(string(o.Result.RecommendedRoute)),
			missing,
			fmt.Sprintf("%.0f%%", o.Completeness*100),
			format.Elapsed(o.Elapsed),
		)
	}
	b.WriteString(docs.String())
	b.WriteString("\n\n")

	counts := r.RouteCounts()
	routes := format.NewTable(mode)
	routes.Header("Route", "Documents")
	routes.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})
	for _, route := range claim.Routes() {
		routes.Row(string(route), counts[route])
	}
	if n := r.Failed(); n > 0 {
		routes.Row("Unreadable", n)
	}
	routes.Footer("Total", len(r.Outcomes))
	b.WriteString(routes.String())
	b.WriteString("\n")

	fmt.Fprintf(&b, "\nRun %s: %d document(s) in %s\n", r.RunID, len(r.Outcomes), format.Elapsed(r.Elapsed))
	return b.String()
}
