package validate

import (
	"github.com/tazeverywhere/dataquery/pkg/config"
	"github.com/tazeverywhere/dataquery/pkg/dsl"
)

// LimitToOneRow returns q with its cardinality clause forced to a single row,
// whatever the previous limit was. The input is not modified and applying it
// twice is the same as applying it once. Statements without a cardinality
// clause are returned unchanged; the executor keeps those side-effect free.
func LimitToOneRow(q dsl.Query) dsl.Query {
	return q.WithLimit(config.DryRunRowLimit)
}
