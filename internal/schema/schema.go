// Package schema infers the flat control-table schema from the template
// and commits the entity-document corpus to the managed destination table.
package schema

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
	"github.com/mesh-intelligence/ctlfiles/internal/template"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// Infer derives a tabular schema from the template's default value types.
// Booleans are checked before numbers: a true/false default yields a
// boolean column, integral numbers yield long, everything else string.
// Columns come back sorted by name.
func Infer(tmpl types.Template) types.Schema {
	columns := make([]types.Column, 0, len(tmpl))
	for _, key := range tmpl.Keys() {
		columns = append(columns, types.Column{Name: key, Type: columnType(tmpl[key])})
	}
	return types.Schema{Columns: columns}
}

// columnType maps one template default to a column type.
func columnType(v any) string {
	switch val := v.(type) {
	case bool:
		return types.ColumnBoolean
	case int, int32, int64:
		return types.ColumnLong
	case float64:
		if val == math.Trunc(val) {
			return types.ColumnLong
		}
		return types.ColumnString
	default:
		return types.ColumnString
	}
}

// ReadCorpus reads every entity document under the root's json_<system>
// subdirectories as one row each. It returns the rows and the observed
// column set: the sorted union of all document key sets. Only the per-
// system subdirectories are read, so the template document itself never
// becomes a row.
func ReadCorpus(root string) ([]types.Row, []string, error) {
	dirs, err := corpus.SystemDirs(root)
	if err != nil {
		return nil, nil, err
	}

	var files []string
	for _, dir := range dirs {
		walked, err := corpus.Walk(dir)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, walked...)
	}

	observed := make(map[string]bool)
	rows := make([]types.Row, 0, len(files))
	for _, path := range files {
		doc, err := corpus.ReadDoc(path)
		if err != nil {
			return nil, nil, err
		}
		row := make(types.Row, len(doc))
		for k, v := range doc {
			observed[k] = true
			row[k] = v
		}
		rows = append(rows, row)
	}

	columns := make([]string, 0, len(observed))
	for k := range observed {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return rows, columns, nil
}

// Committer writes the corpus into the managed control table once the
// observed column set exactly matches the template's key set.
type Committer struct {
	templates *template.Store
	root      string
	writer    types.TableWriter
	table     string
	out       io.Writer
	runs      types.RunRecorder
	log       zerolog.Logger
}

// NewCommitter returns a Committer targeting the named destination table.
func NewCommitter(templates *template.Store, root string, writer types.TableWriter, table string, out io.Writer, runs types.RunRecorder, log zerolog.Logger) *Committer {
	return &Committer{
		templates: templates,
		root:      root,
		writer:    writer,
		table:     table,
		out:       out,
		runs:      runs,
		log:       log,
	}
}

// Commit infers the schema from the template, reads the corpus under that
// schema, and overwrites the destination table with schema merge enabled.
// Any divergence between corpus columns and template keys aborts the write
// and reports the mismatched keys.
func (c *Committer) Commit() error {
	tmpl, err := c.templates.Load()
	if err != nil {
		return err
	}

	sch := Infer(tmpl)
	rows, columns, err := ReadCorpus(c.root)
	if err != nil {
		return err
	}

	mismatch := keyMismatch(tmpl.KeySet(), columns)
	if len(mismatch) > 0 {
		fmt.Fprintf(c.out, "Commit skipped; mismatched keys: %v\n", mismatch)
		return fmt.Errorf("%w: %v", types.ErrSchemaMismatch, mismatch)
	}

	if err := c.writer.Overwrite(c.table, sch, rows); err != nil {
		return fmt.Errorf("overwriting %s: %w", c.table, err)
	}
	fmt.Fprintf(c.out, "Committed %d row(s) to %s.\n", len(rows), c.table)
	c.log.Info().Int("rows", len(rows)).Str("table", c.table).Msg("control table committed")

	if c.runs != nil {
		if err := c.runs.RecordRun("commit", len(rows), len(rows)); err != nil {
			c.log.Warn().Err(err).Msg("failed to record commit run")
		}
	}
	return nil
}

// keyMismatch returns the sorted symmetric difference between the template
// key set and the observed corpus columns.
func keyMismatch(templateKeys map[string]bool, columns []string) []string {
	observed := make(map[string]bool, len(columns))
	var mismatch []string
	for _, c := range columns {
		observed[c] = true
		if !templateKeys[c] {
			mismatch = append(mismatch, c)
		}
	}
	for k := range templateKeys {
		if !observed[k] {
			mismatch = append(mismatch, k)
		}
	}
	sort.Strings(mismatch)
	return mismatch
}
