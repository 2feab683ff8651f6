// Package reconcile aligns entity-document key sets with the template.
//
// A reconcile run walks every .json file under a target subfolder,
// computes per-file key-set divergence from the template, presents the
// whole report, and applies corrections to every diverged file after a
// single batch confirmation. Values for keys present in both the document
// and the template are preserved; missing keys are filled from the
// template's defaults and extra keys are deleted.
package reconcile

import (
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
	"github.com/mesh-intelligence/ctlfiles/internal/template"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// FileDiff is the key-set divergence of one entity document from the
// template: template keys the document is missing, and document keys the
// template does not have.
type FileDiff struct {
	Path    string
	Missing []string
	Extra   []string
}

// Diverged reports whether the document's key set differs from the
// template's at all.
func (d FileDiff) Diverged() bool {
	return len(d.Missing) > 0 || len(d.Extra) > 0
}

// Divergence returns the sorted symmetric difference of the two key sets.
func (d FileDiff) Divergence() []string {
	keys := make([]string, 0, len(d.Missing)+len(d.Extra))
	keys = append(keys, d.Missing...)
	keys = append(keys, d.Extra...)
	sort.Strings(keys)
	return keys
}

// Result summarizes a reconcile run.
type Result struct {
	Examined int  // files inspected during diffing
	Diverged int  // files whose key set differed from the template
	Updated  int  // files rewritten (0 unless Applied)
	Applied  bool // false when dry-run or the confirmation declined
}

// Reconciler computes and applies key-set corrections for a corpus
// subfolder against the template store.
type Reconciler struct {
	templates *template.Store
	confirm   types.Confirmer
	out       io.Writer
	runs      types.RunRecorder
	log       zerolog.Logger
}

// New returns a Reconciler. out receives the human-readable divergence
// report; runs may be nil to disable audit records.
func New(templates *template.Store, confirm types.Confirmer, out io.Writer, runs types.RunRecorder, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		templates: templates,
		confirm:   confirm,
		out:       out,
		runs:      runs,
		log:       log,
	}
}

// Diff walks every .json file under subdir and computes its key-set
// divergence from the template. The returned slice covers all files
// inspected, diverged or not, in walk order.
func (r *Reconciler) Diff(subdir string) ([]FileDiff, error) {
	tmpl, err := r.templates.Load()
	if err != nil {
		return nil, err
	}

	files, err := corpus.Walk(subdir)
	if err != nil {
		return nil, err
	}

	diffs := make([]FileDiff, 0, len(files))
	for _, path := range files {
		doc, err := corpus.ReadDoc(path)
		if err != nil {
			return nil, err
		}
		diffs = append(diffs, diffDoc(path, doc, tmpl))
	}
	return diffs, nil
}

// diffDoc computes one document's divergence from the template.
func diffDoc(path string, doc map[string]any, tmpl types.Template) FileDiff {
	d := FileDiff{Path: path}
	for k := range tmpl {
		if _, ok := doc[k]; !ok {
			d.Missing = append(d.Missing, k)
		}
	}
	for k := range doc {
		if _, ok := tmpl[k]; !ok {
			d.Extra = append(d.Extra, k)
		}
	}
	sort.Strings(d.Missing)
	sort.Strings(d.Extra)
	return d
}

// Report writes the full divergence report to the reconciler's output:
// one line per inspected file, "no changes" when the key sets match.
func (r *Reconciler) Report(diffs []FileDiff) {
	for _, d := range diffs {
		if !d.Diverged() {
			fmt.Fprintf(r.out, "%s: no changes\n", d.Path)
			continue
		}
		fmt.Fprintf(r.out, "%s: %v\n", d.Path, d.Divergence())
	}
}

// Run diffs subdir against the template, prints the report, and — unless
// dryRun — asks for one confirmation covering the entire batch, then
// applies corrections to every diverged file from the report.
func (r *Reconciler) Run(subdir string, dryRun bool) (Result, error) {
	diffs, err := r.Diff(subdir)
	if err != nil {
		return Result{}, err
	}

	res := Result{Examined: len(diffs)}
	var diverged []FileDiff
	for _, d := range diffs {
		if d.Diverged() {
			diverged = append(diverged, d)
		}
	}
	res.Diverged = len(diverged)

	r.Report(diffs)

	if dryRun {
		return res, nil
	}
	if len(diverged) == 0 {
		fmt.Fprintln(r.out, "Nothing to reconcile.")
		return res, nil
	}

	prompt := fmt.Sprintf("Apply corrections to %d file(s)?", len(diverged))
	ok, err := r.confirm.Confirm(prompt)
	if err != nil {
		return res, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(r.out, "Aborted; no files written.")
		return res, nil
	}

	tmpl, err := r.templates.Load()
	if err != nil {
		return res, err
	}

	// Apply to every file from the divergence report, not just the files
	// of the last directory walked.
	for _, d := range diverged {
		if err := applyDiff(d, tmpl); err != nil {
			return res, err
		}
		res.Updated++
		r.log.Debug().Str("file", d.Path).
			Strs("keys", d.Divergence()).
			Msg("reconciled entity document")
	}
	res.Applied = true

	if r.runs != nil {
		if err := r.runs.RecordRun("reconcile", res.Examined, res.Updated); err != nil {
			r.log.Warn().Err(err).Msg("failed to record reconcile run")
		}
	}
	return res, nil
}

// applyDiff corrects one document: template keys missing from the file are
// added with the template's default, file keys absent from the template
// are deleted, and everything else is preserved.
func applyDiff(d FileDiff, tmpl types.Template) error {
	doc, err := corpus.ReadDoc(d.Path)
	if err != nil {
		return err
	}
	for _, k := range d.Missing {
		doc[k] = tmpl[k]
	}
	for _, k := range d.Extra {
		delete(doc, k)
	}
	return corpus.WriteDoc(d.Path, doc)
}
