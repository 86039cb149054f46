package types

import "github.com/google/uuid"

// Validation API Types

// ValidateRequest is the JSON body accepted by the validate endpoint.
type ValidateRequest struct {
	Query string `json:"query"`
}

type ValidateResponse struct {
	// Success is false when any diagnostic has error severity.
	Success     bool             `json:"success"`
	ReportID    string           `json:"reportId"`
	Severity    string           `json:"severity"`
	SQL         string           `json:"sql,omitempty"`
	ExecutedSQL string           `json:"executedSql,omitempty"`
	Diagnostics []Diagnostic     `json:"diagnostics"`
	RowType     []ColumnMetadata `json:"rowtype,omitempty"`
}

type Diagnostic struct {
	Severity string `json:"severity"`
	Title    string `json:"title,omitempty"`
	Message  string `json:"message"`
}

type ColumnMetadata struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Length    int64  `json:"length,omitempty"`
	Precision int64  `json:"precision,omitempty"`
	Scale     int64  `json:"scale,omitempty"`
	Nullable  bool   `json:"nullable"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// NewReportID returns a unique identifier for one validation report.
func NewReportID() string {
	return uuid.NewString()
}
