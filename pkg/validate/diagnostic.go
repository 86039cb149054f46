package validate

import "github.com/tazeverywhere/dataquery/pkg/query"

// Severity classifies a diagnostic for display.
type Severity int

const (
	// SeverityOK marks a stage that completed.
	SeverityOK Severity = iota
	// SeverityWarning marks a non-fatal compiler finding.
	SeverityWarning
	// SeverityError marks a failed stage.
	SeverityError
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one reported outcome of the pipeline.
type Diagnostic struct {
	Message  string
	Title    string
	Severity Severity
}

// Report is the ordered outcome of one validation: the compile diagnostic, an
// optional compiler warning, then the execution diagnostic.
type Report struct {
	Diagnostics []Diagnostic

	// SQL is the statement as compiled. Empty when compilation failed.
	SQL string
	// ExecutedSQL is the row-limited statement that was dry-run. Empty when compilation failed.
	ExecutedSQL string
	// Columns describes the dry-run result of a row-returning statement.
	Columns []query.ColumnMetadata
}

// Compiled reports whether the query compiled.
func (r Report) Compiled() bool {
	return len(r.Diagnostics) > 0 && r.Diagnostics[0].Severity != SeverityError
}

// MaxSeverity returns the most severe diagnostic level in the report.
func (r Report) MaxSeverity() Severity {
	highest := SeverityOK
	for _, d := range r.Diagnostics {
		if d.Severity > highest {
			highest = d.Severity
		}
	}
	return highest
}

func (r *Report) add(severity Severity, title, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Message: message, Title: title, Severity: severity})
}
