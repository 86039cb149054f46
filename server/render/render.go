// Package render writes validation reports as JSON documents or as HTML flash
// messages for embedding in an editor page.
package render

import (
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/tazeverywhere/dataquery/pkg/validate"
	"github.com/tazeverywhere/dataquery/server/types"
)

// flashClasses maps severities to the CSS classes of a flash message.
var flashClasses = map[validate.Severity]string{
	validate.SeverityOK:      "alert alert-success",
	validate.SeverityWarning: "alert alert-warning",
	validate.SeverityError:   "alert alert-danger",
}

var flashTemplate = template.Must(template.New("flash").Parse(
	`{{range .}}<div class="{{.Class}}">` +
		`{{if .Title}}<h4 class="alert-title">{{.Title}}</h4>{{end}}` +
		`<p class="alert-message">{{.Message}}</p></div>` + "\n" +
		`{{end}}`))

type flashMessage struct {
	Class   string
	Title   string
	Message string
}

// FlashClass returns the CSS class used for a severity.
func FlashClass(s validate.Severity) string {
	if class, ok := flashClasses[s]; ok {
		return class
	}
	return "alert alert-info"
}

// Response converts a report into its wire representation.
func Response(report validate.Report) types.ValidateResponse {
	resp := types.ValidateResponse{
		Success:     report.MaxSeverity() != validate.SeverityError,
		ReportID:    types.NewReportID(),
		Severity:    report.MaxSeverity().String(),
		SQL:         report.SQL,
		ExecutedSQL: report.ExecutedSQL,
		Diagnostics: make([]types.Diagnostic, 0, len(report.Diagnostics)),
	}
	for _, d := range report.Diagnostics {
		resp.Diagnostics = append(resp.Diagnostics, types.Diagnostic{
			Severity: d.Severity.String(),
			Title:    d.Title,
			Message:  d.Message,
		})
	}
	for _, c := range report.Columns {
		resp.RowType = append(resp.RowType, types.ColumnMetadata{
			Name:      c.Name,
			Type:      c.Type,
			Length:    c.Length,
			Precision: c.Precision,
			Scale:     c.Scale,
			Nullable:  c.Nullable,
		})
	}
	return resp
}

// JSON writes the report as a JSON document. Reports are always sent with 200;
// failures of the query are part of the report, not of the request.
func JSON(w http.ResponseWriter, report validate.Report) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(Response(report))
}

// HTML writes one flash message per diagnostic, in report order.
func HTML(w http.ResponseWriter, report validate.Report) error {
	messages := make([]flashMessage, 0, len(report.Diagnostics))
	for _, d := range report.Diagnostics {
		messages = append(messages, flashMessage{
			Class:   FlashClass(d.Severity),
			Title:   d.Title,
			Message: d.Message,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	return flashTemplate.Execute(w, messages)
}
