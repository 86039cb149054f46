package dsl

import (
	"bytes"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

// render prints node in the dialect DuckDB executes. The parser's own
// formatter is used for everything except the cardinality clause and
// string literals, which it prints in MySQL form.
func render(node sqlparser.SQLNode) string {
	buf := sqlparser.NewTrackedBuffer(formatNode)
	buf.Myprintf("%v", node)
	return buf.String()
}

func formatNode(buf *sqlparser.TrackedBuffer, node sqlparser.SQLNode) {
	switch n := node.(type) {
	case *sqlparser.Limit:
		if n == nil {
			return
		}
		buf.Myprintf(" limit %v", n.Rowcount)
		if n.Offset != nil {
			buf.Myprintf(" offset %v", n.Offset)
		}
	case *sqlparser.SQLVal:
		if n.Type != sqlparser.StrVal {
			n.Format(buf)
			return
		}
		buf.WriteByte('\'')
		buf.Write(bytes.ReplaceAll(n.Val, []byte("'"), []byte("''")))
		buf.WriteByte('\'')
	default:
		node.Format(buf)
	}
}
