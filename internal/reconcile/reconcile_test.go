package reconcile

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
	"github.com/mesh-intelligence/ctlfiles/internal/template"
)

// fakeConfirmer records the prompt and answers with a fixed response.
type fakeConfirmer struct {
	answer bool
	asked  int
	prompt string
}

func (f *fakeConfirmer) Confirm(prompt string) (bool, error) {
	f.asked++
	f.prompt = prompt
	return f.answer, nil
}

// fakeRecorder captures audit records.
type fakeRecorder struct {
	ops      []string
	examined int
	changed  int
}

func (f *fakeRecorder) RecordRun(operation string, examined, changed int) error {
	f.ops = append(f.ops, operation)
	f.examined = examined
	f.changed = changed
	return nil
}

// fixture builds a template file and a corpus subfolder with the given
// documents, returning the reconciler pieces.
func fixture(t *testing.T, tmplJSON string, docs map[string]string) (*template.Store, string) {
	t.Helper()
	dir := t.TempDir()

	tmplPath := filepath.Join(dir, "template.json")
	if err := os.WriteFile(tmplPath, []byte(tmplJSON), 0o644); err != nil {
		t.Fatalf("write template failed: %v", err)
	}

	sub := filepath.Join(dir, "json_sys1")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(sub, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write doc failed: %v", err)
		}
	}
	return template.NewStore(tmplPath), sub
}

func TestDiffReportsSymmetricDifference(t *testing.T) {
	store, sub := fixture(t, `{"a": 1, "b": true}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"a": 2, "c": "x"}`,
		"sys1_full_schemaA_tbl2.json": `{"a": 5, "b": false}`,
	})

	r := New(store, &fakeConfirmer{}, io.Discard, nil, zerolog.Nop())
	diffs, err := r.Diff(sub)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if len(diffs) != 2 {
		t.Fatalf("expected 2 diffs, got %d", len(diffs))
	}

	d := diffs[0]
	if !d.Diverged() {
		t.Fatal("expected tbl1 to diverge")
	}
	got := d.Divergence()
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Errorf("expected divergence [b c], got %v", got)
	}

	if diffs[1].Diverged() {
		t.Errorf("expected tbl2 to match template, got %v", diffs[1].Divergence())
	}
}

func TestReportNoChanges(t *testing.T) {
	store, sub := fixture(t, `{"a": 1}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"a": 9}`,
	})

	var out strings.Builder
	r := New(store, &fakeConfirmer{}, &out, nil, zerolog.Nop())
	diffs, err := r.Diff(sub)
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	r.Report(diffs)

	if !strings.Contains(out.String(), "no changes") {
		t.Errorf("expected 'no changes' in report, got:\n%s", out.String())
	}
}

func TestRunAppliesCorrectionsAfterConfirmation(t *testing.T) {
	store, sub := fixture(t, `{"a": 1, "b": true}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"a": 2, "c": "x"}`,
	})

	confirm := &fakeConfirmer{answer: true}
	rec := &fakeRecorder{}
	r := New(store, confirm, io.Discard, rec, zerolog.Nop())

	res, err := r.Run(sub, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Applied || res.Updated != 1 || res.Diverged != 1 || res.Examined != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if confirm.asked != 1 {
		t.Errorf("expected exactly one batch confirmation, got %d", confirm.asked)
	}

	doc, err := corpus.ReadDoc(filepath.Join(sub, "sys1_full_schemaA_tbl1.json"))
	if err != nil {
		t.Fatalf("ReadDoc failed: %v", err)
	}
	// b added with the template default, c removed, a preserved.
	if doc["a"] != float64(2) {
		t.Errorf("expected a preserved as 2, got %v", doc["a"])
	}
	if doc["b"] != true {
		t.Errorf("expected b filled with template default, got %v", doc["b"])
	}
	if _, ok := doc["c"]; ok {
		t.Error("expected c to be removed")
	}
	if len(doc) != 2 {
		t.Errorf("expected key set {a, b}, got %v", doc)
	}

	if len(rec.ops) != 1 || rec.ops[0] != "reconcile" || rec.changed != 1 {
		t.Errorf("expected one reconcile audit record, got %+v", rec)
	}
}

func TestRunDeclinedWritesNothing(t *testing.T) {
	store, sub := fixture(t, `{"a": 1, "b": true}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"a": 2, "c": "x"}`,
	})
	path := filepath.Join(sub, "sys1_full_schemaA_tbl1.json")
	before, _ := os.ReadFile(path)

	r := New(store, &fakeConfirmer{answer: false}, io.Discard, nil, zerolog.Nop())
	res, err := r.Run(sub, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Applied || res.Updated != 0 {
		t.Errorf("expected no writes, got %+v", res)
	}

	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("expected file byte-identical after declined confirmation")
	}
}

func TestRunDryRunDoesNotPrompt(t *testing.T) {
	store, sub := fixture(t, `{"a": 1}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"z": 0}`,
	})

	confirm := &fakeConfirmer{answer: true}
	r := New(store, confirm, io.Discard, nil, zerolog.Nop())
	res, err := r.Run(sub, true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Applied || confirm.asked != 0 {
		t.Errorf("dry run must not prompt or write: %+v asked=%d", res, confirm.asked)
	}
}

func TestRunAppliesAcrossNestedDirectories(t *testing.T) {
	// Files from every walked directory are corrected, not only the last.
	store, sub := fixture(t, `{"a": 1}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"a": 1, "extra": 1}`,
	})
	nested := filepath.Join(sub, "archive")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	nestedDoc := filepath.Join(nested, "sys1_full_schemaA_old.json")
	if err := os.WriteFile(nestedDoc, []byte(`{"stale": true}`), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	r := New(store, &fakeConfirmer{answer: true}, io.Discard, nil, zerolog.Nop())
	res, err := r.Run(sub, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Updated != 2 {
		t.Fatalf("expected 2 files updated, got %d", res.Updated)
	}

	doc, _ := corpus.ReadDoc(nestedDoc)
	if doc["a"] != float64(1) {
		t.Errorf("expected nested doc filled from template, got %v", doc)
	}
	if _, ok := doc["stale"]; ok {
		t.Error("expected stale key removed from nested doc")
	}
}

func TestRunNothingToReconcile(t *testing.T) {
	store, sub := fixture(t, `{"a": 1}`, map[string]string{
		"sys1_full_schemaA_tbl1.json": `{"a": 3}`,
	})

	confirm := &fakeConfirmer{answer: true}
	var out strings.Builder
	r := New(store, confirm, &out, nil, zerolog.Nop())
	res, err := r.Run(sub, false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if confirm.asked != 0 {
		t.Error("expected no prompt when nothing diverges")
	}
	if res.Diverged != 0 || res.Applied {
		t.Errorf("unexpected result: %+v", res)
	}
}
