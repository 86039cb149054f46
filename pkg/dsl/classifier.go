package dsl

import (
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// Kind represents the category of a statement.
type Kind int

// Statement kinds.
const (
	KindOther       Kind = iota // Unknown or unsupported
	KindSelect                  // SELECT, UNION, parenthesised SELECT
	KindInsert                  // INSERT, REPLACE
	KindUpdate                  // UPDATE
	KindDelete                  // DELETE
	KindDDL                     // CREATE, DROP, ALTER, TRUNCATE, RENAME
)

// String returns a lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindDDL:
		return "ddl"
	default:
		return "other"
	}
}

// IsQuery reports whether statements of this kind return rows.
func (k Kind) IsQuery() bool {
	return k == KindSelect
}

// IsMutation reports whether statements of this kind change table data.
func (k Kind) IsMutation() bool {
	return k == KindInsert || k == KindUpdate || k == KindDelete
}

// Supported reports whether the DSL accepts statements of this kind.
func (k Kind) Supported() bool {
	return k.IsQuery() || k.IsMutation()
}

// kindOf classifies a parsed statement.
func kindOf(stmt sqlparser.Statement) Kind {
	switch stmt.(type) {
	case *sqlparser.Select, *sqlparser.Union, *sqlparser.ParenSelect:
		return KindSelect
	case *sqlparser.Insert:
		return KindInsert
	case *sqlparser.Update:
		return KindUpdate
	case *sqlparser.Delete:
		return KindDelete
	case *sqlparser.DDL:
		return KindDDL
	default:
		return KindOther
	}
}

// Classify inspects the leading keyword of rendered SQL and returns its kind.
// It is used where only rendered text is available, such as the executor, and
// recognises the kinds Compile accepts.
func Classify(sql string) Kind {
	upperSQL := strings.ToUpper(strings.TrimLeft(sql, "( \t\r\n"))

	switch {
	case strings.HasPrefix(upperSQL, "SELECT"):
		return KindSelect
	case strings.HasPrefix(upperSQL, "INSERT"), strings.HasPrefix(upperSQL, "REPLACE"):
		return KindInsert
	case strings.HasPrefix(upperSQL, "UPDATE"):
		return KindUpdate
	case strings.HasPrefix(upperSQL, "DELETE"):
		return KindDelete
	default:
		return KindOther
	}
}
