package types

// Control table attribute columns. The four columns together synthesize
// the document filename <system>_<kind>_<schema>_<table>.json.
const (
	ColSystem = "system"
	ColKind   = "kind"
	ColSchema = "schema_name"
	ColTable  = "table_name"
)

// Predicate is one column = value condition on the control table.
// Predicates are combined as a conjunction; an empty predicate list
// matches every row.
type Predicate struct {
	Column string
	Value  string
}

// RowQuerier answers filename lookups against the control table.
// Implementations synthesize <system>_<kind>_<schema>_<table>.json from
// the control table's attribute columns.
type RowQuerier interface {
	// QueryFilenames returns the distinct synthesized filenames of control
	// table rows matching all predicates.
	QueryFilenames(preds ...Predicate) ([]string, error)
}

// TableWriter commits a schema and rows to a managed destination table,
// in "overwrite with schema merge" mode: columns absent from the
// destination are added, existing columns are preserved, and all rows are
// replaced.
type TableWriter interface {
	Overwrite(table string, schema Schema, rows []Row) error
}

// RunRecorder records completed write operations for auditing.
// A nil recorder disables auditing.
type RunRecorder interface {
	RecordRun(operation string, examined, changed int) error
}

// ControlStore is the full control-store surface: attach/detach lifecycle
// plus filename queries, managed-table writes, and audit records.
type ControlStore interface {
	Attach(config Config) error
	Detach() error
	RowQuerier
	TableWriter
	RunRecorder
}

// Confirmer asks the user a yes/no question before a batch of writes.
// Only an affirmative answer proceeds; anything else aborts.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}
