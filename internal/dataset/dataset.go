package dataset

// ColumnType is the simplified application-level type of a column.
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// Numeric reports whether the type supports numeric aggregation.
func (t ColumnType) Numeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Column describes one column of a tabular dataset.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Row maps column names to cell values. A value is a string, a numeric
// type (int64 or float64), a bool, or nil when the cell is null.
type Row map[string]any

// ResultSet is a bounded in-memory window of rows as returned by query
// execution: ordered column names plus ordered row records.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Schema maps column names to their types for validation lookups.
type Schema map[string]ColumnType

// SchemaOf builds a Schema from a column list.
func SchemaOf(cols []Column) Schema {
	s := make(Schema, len(cols))
	for _, c := range cols {
		s[c.Name] = c.Type
	}
	return s
}

// Names returns the column names in declaration order.
func Names(cols []Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Name
	}
	return out
}
