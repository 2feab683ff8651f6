package types

// Column types for the flat tabular schema inferred from a template.
// Boolean is checked before integer during inference: a true/false default
// always yields a boolean column, never a long.
const (
	ColumnString  = "string"
	ColumnBoolean = "boolean"
	ColumnLong    = "long"
)

// Column is a single named, typed column in an inferred schema.
type Column struct {
	Name string
	Type string // One of the Column* constants.
}

// Schema is the ordered column list for the managed control table.
// Columns are sorted by name so inference is deterministic.
type Schema struct {
	Columns []Column
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Row is one entity document rendered under a schema: column name to value.
// Absent document keys are represented by nil values.
type Row map[string]any
