package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/fatih/color"
	"github.com/tazeverywhere/dataquery/pkg/validate"
)

var (
	okColor      = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	titleColor   = color.New(color.Bold)
	sqlColor     = color.New(color.FgCyan)
)

func severityLabel(s validate.Severity) (string, *color.Color) {
	switch s {
	case validate.SeverityWarning:
		return "WARN", warningColor
	case validate.SeverityError:
		return "FAIL", errorColor
	default:
		return " OK ", okColor
	}
}

// printReport writes one line per diagnostic followed by the SQL that was run.
func printReport(w io.Writer, report validate.Report, useColor bool) {
	paint := func(c *color.Color, s string) string {
		if !useColor {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}

	for _, d := range report.Diagnostics {
		label, c := severityLabel(d.Severity)
		line := "[" + paint(c, label) + "]"
		if d.Title != "" {
			line += " " + paint(titleColor, d.Title+":")
		}
		fmt.Fprintf(w, "%s %s\n", line, d.Message)
	}

	if report.ExecutedSQL != "" {
		fmt.Fprintf(w, "executed: %s\n", paint(sqlColor, report.ExecutedSQL))
	}
	for _, c := range report.Columns {
		fmt.Fprintf(w, "  %-20s %s\n", c.Name, c.Type)
	}
}

// headerlessWriter adapts an io.Writer to http.ResponseWriter for the HTML renderer.
type headerlessWriter struct {
	io.Writer
	header http.Header
}

func (w *headerlessWriter) Header() http.Header {
	if w.header == nil {
		w.header = make(http.Header)
	}
	return w.header
}

func (w *headerlessWriter) WriteHeader(int) {}
