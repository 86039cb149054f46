// Package validate implements the validate-and-dry-run pipeline: it compiles a DSL
// query, dry-runs a row-limited rendering of it and reports every stage as an
// ordered list of severity-tagged diagnostics.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tazeverywhere/dataquery/pkg/dsl"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
	"github.com/tazeverywhere/dataquery/pkg/query"
)

// Compiler normalizes and compiles DSL text.
type Compiler interface {
	Normalize(raw string) (string, error)
	Compile(text string) (dsl.Query, string, error)
}

// Executor dry-runs rendered SQL.
type Executor interface {
	Execute(ctx context.Context, sql string) (*query.Result, error)
}

// Localizer resolves catalog keys to display text.
type Localizer interface {
	Lookup(key string) string
}

// driverMessager is implemented by execution errors that carry the raw driver text.
type driverMessager interface {
	DriverMessage() string
}

// Validator runs the pipeline. It keeps no per-request state and is safe for
// concurrent use when its collaborators are.
type Validator struct {
	compiler  Compiler
	executor  Executor
	localizer Localizer
	logger    *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for stage failures.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// New creates a Validator from its collaborators.
func New(compiler Compiler, executor Executor, localizer Localizer, opts ...Option) *Validator {
	v := &Validator{
		compiler:  compiler,
		executor:  executor,
		localizer: localizer,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate compiles raw, dry-runs it and returns the report. Compile and execution
// failures are reported as diagnostics and never returned as errors; the report
// always holds at least one diagnostic.
func (v *Validator) Validate(ctx context.Context, raw string) Report {
	var report Report

	q, warning, err := v.compile(raw)
	if err != nil {
		code, _ := dsl.CodeOf(err)
		v.logger.DebugContext(ctx, "query compilation failed", "code", code, "error", err)
		report.add(SeverityError, v.localizer.Lookup(i18n.KeyFailure), v.localizer.Lookup(ExceptionKey(err)))
		return report
	}

	report.SQL = q.Render()
	report.add(SeverityOK, v.localizer.Lookup(i18n.KeySuccess), report.SQL)
	if warning != "" {
		report.add(SeverityWarning, v.localizer.Lookup(i18n.KeyWarning), warning)
	}

	report.ExecutedSQL = LimitToOneRow(q).Render()
	result, err := v.executor.Execute(ctx, report.ExecutedSQL)
	switch {
	case err != nil:
		v.logger.DebugContext(ctx, "query execution failed", "sql", report.ExecutedSQL, "error", err)
		template := v.localizer.Lookup(i18n.KeyExecutionFailed)
		report.add(SeverityError, "", interpolate(template, driverMessage(err)))
	case result != nil && result.Skipped:
		report.add(SeverityOK, "", v.localizer.Lookup(i18n.KeyExecutionSkipped))
	default:
		if result != nil {
			report.Columns = result.Columns
		}
		report.add(SeverityOK, "", v.localizer.Lookup(i18n.KeyExecutionSuccessful))
	}

	return report
}

// compile runs normalization and compilation. A panicking compiler is reported as
// a compile failure so that one bad query cannot abort the request.
func (v *Validator) compile(raw string) (q dsl.Query, warning string, err error) {
	defer func() {
		if r := recover(); r != nil {
			q, warning = dsl.Query{}, ""
			err = fmt.Errorf("compiler panic: %v", r)
		}
	}()

	text, err := v.compiler.Normalize(raw)
	if err != nil {
		return dsl.Query{}, "", err
	}
	return v.compiler.Compile(text)
}

func driverMessage(err error) string {
	var dm driverMessager
	if errors.As(err, &dm) {
		return dm.DriverMessage()
	}
	return err.Error()
}
