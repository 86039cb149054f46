package query

import (
	"database/sql"
	"strings"
)

// Display type names reported for dry-run columns.
const (
	TypeNumber    = "NUMBER"
	TypeReal      = "REAL"
	TypeText      = "TEXT"
	TypeBoolean   = "BOOLEAN"
	TypeDate      = "DATE"
	TypeTime      = "TIME"
	TypeTimestamp = "TIMESTAMP"
	TypeBinary    = "BINARY"
	TypeJSON      = "JSON"
	TypeList      = "LIST"
	TypeStruct    = "STRUCT"
)

// TypeMapper maps DuckDB column types to display type names.
type TypeMapper struct {
	typeMapping map[string]string
}

// NewTypeMapper creates a new type mapper with default mappings.
func NewTypeMapper() *TypeMapper {
	return &TypeMapper{
		typeMapping: map[string]string{
			"BIGINT":       TypeNumber,
			"INTEGER":      TypeNumber,
			"INT":          TypeNumber,
			"SMALLINT":     TypeNumber,
			"TINYINT":      TypeNumber,
			"HUGEINT":      TypeNumber,
			"UBIGINT":      TypeNumber,
			"UINTEGER":     TypeNumber,
			"USMALLINT":    TypeNumber,
			"UTINYINT":     TypeNumber,
			"DECIMAL":      TypeNumber,
			"NUMERIC":      TypeNumber,
			"DOUBLE":       TypeReal,
			"FLOAT":        TypeReal,
			"REAL":         TypeReal,
			"VARCHAR":      TypeText,
			"TEXT":         TypeText,
			"STRING":       TypeText,
			"UUID":         TypeText,
			"INTERVAL":     TypeText,
			"ENUM":         TypeText,
			"TIMESTAMP":    TypeTimestamp,
			"TIMESTAMP_NS": TypeTimestamp,
			"TIMESTAMP_MS": TypeTimestamp,
			"TIMESTAMP_S":  TypeTimestamp,
			"TIMESTAMPTZ":  TypeTimestamp,
			"DATE":         TypeDate,
			"TIME":         TypeTime,
			"BOOLEAN":      TypeBoolean,
			"BOOL":         TypeBoolean,
			"BLOB":         TypeBinary,
			"BYTEA":        TypeBinary,
			"JSON":         TypeJSON,
			"LIST":         TypeList,
			"STRUCT":       TypeStruct,
			"MAP":          TypeStruct,

			"TIMESTAMP WITH TIME ZONE": TypeTimestamp,
		},
	}
}

// MapDuckDBType converts a DuckDB type name such as "DECIMAL(18,3)" to its display name.
func (m *TypeMapper) MapDuckDBType(duckType string) string {
	base := strings.ToUpper(strings.TrimSpace(duckType))
	if strings.HasSuffix(base, "]") {
		return TypeList
	}
	if i := strings.IndexByte(base, '('); i >= 0 {
		base = base[:i]
	}
	if t, ok := m.typeMapping[base]; ok {
		return t
	}
	return TypeText
}

// InferColumns builds column metadata from the column types of rows.
// Columns whose type cannot be read default to nullable TEXT.
func (m *TypeMapper) InferColumns(columns []string, columnTypes []*sql.ColumnType) []ColumnMetadata {
	meta := make([]ColumnMetadata, len(columns))

	for i, col := range columns {
		c := ColumnMetadata{
			Name:     col,
			Type:     TypeText,
			Nullable: true,
		}

		if i < len(columnTypes) && columnTypes[i] != nil {
			ct := columnTypes[i]
			c.Type = m.MapDuckDBType(ct.DatabaseTypeName())
			if length, ok := ct.Length(); ok {
				c.Length = length
			}
			if precision, scale, ok := ct.DecimalSize(); ok {
				c.Precision = precision
				c.Scale = scale
			}
			if nullable, ok := ct.Nullable(); ok {
				c.Nullable = nullable
			}
		}

		meta[i] = c
	}

	return meta
}
