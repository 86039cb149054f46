package dsl

import (
	"strconv"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// Query is a compiled DSL statement. A Query is immutable once Compile returns it:
// WithLimit produces a new Query and leaves the receiver untouched, so the same
// compiled statement can be rendered as compiled and as limited.
type Query struct {
	stmt   sqlparser.Statement
	kind   Kind
	source string
}

// Kind returns the statement kind.
func (q Query) Kind() Kind {
	return q.kind
}

// Source returns the normalized DSL text the query was compiled from.
func (q Query) Source() string {
	return q.source
}

// Render returns the SQL text of the statement.
func (q Query) Render() string {
	if q.stmt == nil {
		return ""
	}
	return render(q.stmt)
}

// RowLimit returns the rendered row count of the cardinality clause.
// ok is false when the statement has no such clause.
func (q Query) RowLimit() (rowcount string, ok bool) {
	limit := limitOf(q.stmt)
	if limit == nil || limit.Rowcount == nil {
		return "", false
	}
	return render(limit.Rowcount), true
}

// WithLimit returns a copy of q whose cardinality clause requests exactly n rows.
// An existing offset is kept. Statements without a cardinality clause, such as
// INSERT, UPDATE and DELETE, are returned unchanged.
func (q Query) WithLimit(n int) Query {
	stmt, ok := withLimit(q.stmt, n)
	if !ok {
		return q
	}
	return Query{stmt: stmt, kind: q.kind, source: q.source}
}

// withLimit copies the top-level node only; subtrees are shared with the original
// statement and must not be mutated.
func withLimit(stmt sqlparser.Statement, n int) (sqlparser.SelectStatement, bool) {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		cp := *s
		cp.Limit = newLimit(s.Limit, n)
		return &cp, true
	case *sqlparser.Union:
		cp := *s
		cp.Limit = newLimit(s.Limit, n)
		return &cp, true
	case *sqlparser.ParenSelect:
		inner, ok := withLimit(s.Select, n)
		if !ok {
			return nil, false
		}
		cp := *s
		cp.Select = inner
		return &cp, true
	default:
		return nil, false
	}
}

func newLimit(prev *sqlparser.Limit, n int) *sqlparser.Limit {
	limit := &sqlparser.Limit{
		Rowcount: sqlparser.NewIntVal([]byte(strconv.Itoa(n))),
	}
	if prev != nil {
		limit.Offset = prev.Offset
	}
	return limit
}

func limitOf(stmt sqlparser.Statement) *sqlparser.Limit {
	switch s := stmt.(type) {
	case *sqlparser.Select:
		return s.Limit
	case *sqlparser.Union:
		return s.Limit
	case *sqlparser.ParenSelect:
		return limitOf(s.Select)
	default:
		return nil
	}
}
