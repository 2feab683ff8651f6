// Package modify rewrites a single key's value across the subset of
// entity documents selected by control-table attribute filters.
//
// The target file set comes from the control table, not the filesystem:
// filenames are synthesized from attribute columns, then resolved to the
// owning system's subdirectory. Only files that already contain the key
// are touched; every other outcome is reported per file and never aborts
// the rest of the batch.
package modify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// Wildcard matches every value of a filter attribute.
const Wildcard = "*"

// Filters selects control-table rows by attribute. Empty or "*" fields
// match everything.
type Filters struct {
	System string
	Schema string
	Kind   string
	Table  string
}

// Predicates returns the SQL predicate conjunction for the non-wildcard
// filters, in a fixed column order.
func (f Filters) Predicates() []types.Predicate {
	var preds []types.Predicate
	add := func(col, val string) {
		if val != "" && val != Wildcard {
			preds = append(preds, types.Predicate{Column: col, Value: val})
		}
	}
	add(types.ColSystem, f.System)
	add(types.ColSchema, f.Schema)
	add(types.ColKind, f.Kind)
	add(types.ColTable, f.Table)
	return preds
}

// Outcome classifies what happened to one target file.
type Outcome string

const (
	OutcomeModified    Outcome = "modified"
	OutcomeKeyMissing  Outcome = "key not found"
	OutcomeFileMissing Outcome = "file not found"
	OutcomeFailed      Outcome = "failed"
)

// FileResult is the per-file outcome of a bulk modify.
type FileResult struct {
	Filename string
	Path     string
	Outcome  Outcome
	Err      error
}

// Modifier applies filtered bulk edits to the corpus under root, using the
// control table to select target filenames.
type Modifier struct {
	root    string
	querier types.RowQuerier
	out     io.Writer
	log     zerolog.Logger
}

// New returns a Modifier. out receives the per-file outcome report.
func New(root string, querier types.RowQuerier, out io.Writer, log zerolog.Logger) *Modifier {
	return &Modifier{root: root, querier: querier, out: out, log: log}
}

// Apply sets key to value in every control file selected by the filters.
// Filenames are queried once per system subdirectory of the root and
// deduplicated across subdirectories. Files lacking the key are left
// byte-identical. The returned results are sorted by filename.
func (m *Modifier) Apply(key string, value any, f Filters) ([]FileResult, error) {
	if key == "" {
		return nil, types.ErrEmptyKey
	}

	dirs, err := corpus.SystemDirs(m.root)
	if err != nil {
		return nil, err
	}

	preds := f.Predicates()
	seen := make(map[string]bool)
	var filenames []string
	for range dirs {
		names, err := m.querier.QueryFilenames(preds...)
		if err != nil {
			return nil, fmt.Errorf("querying control table: %w", err)
		}
		for _, name := range names {
			if !seen[name] {
				seen[name] = true
				filenames = append(filenames, name)
			}
		}
	}
	sort.Strings(filenames)

	results := make([]FileResult, 0, len(filenames))
	for _, name := range filenames {
		res := m.applyOne(name, key, value)
		m.report(res, key)
		results = append(results, res)
	}
	return results, nil
}

// applyOne edits a single target file. Errors are captured in the result,
// never returned, so one file cannot abort the batch.
func (m *Modifier) applyOne(filename, key string, value any) FileResult {
	res := FileResult{Filename: filename}

	system, err := corpus.SystemOf(filename)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}
	res.Path = filepath.Join(corpus.SystemDir(m.root, system), filename)

	if _, err := os.Stat(res.Path); err != nil {
		if os.IsNotExist(err) {
			res.Outcome = OutcomeFileMissing
			return res
		}
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	doc, err := corpus.ReadDoc(res.Path)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	if _, ok := doc[key]; !ok {
		res.Outcome = OutcomeKeyMissing
		return res
	}

	doc[key] = value
	if err := corpus.WriteDoc(res.Path, doc); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	res.Outcome = OutcomeModified
	return res
}

// report writes one file's outcome to the modifier's output.
func (m *Modifier) report(res FileResult, key string) {
	switch res.Outcome {
	case OutcomeModified:
		fmt.Fprintf(m.out, "%s: key %q modified\n", res.Filename, key)
	case OutcomeKeyMissing:
		fmt.Fprintf(m.out, "%s: key %q not found\n", res.Filename, key)
	case OutcomeFileMissing:
		fmt.Fprintf(m.out, "%s: file not found\n", res.Filename)
	case OutcomeFailed:
		fmt.Fprintf(m.out, "%s: failed: %v\n", res.Filename, res.Err)
		m.log.Error().Err(res.Err).Str("file", res.Filename).Msg("bulk modify failed")
	}
}
