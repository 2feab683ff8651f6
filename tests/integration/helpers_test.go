// Package integration provides shared test helpers for the end-to-end
// ctlfiles flows: template editing, reconciliation, filtered bulk
// modification, and the control table commit.
package integration

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
	"github.com/mesh-intelligence/ctlfiles/internal/sqlite"
	"github.com/mesh-intelligence/ctlfiles/internal/template"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// env is one isolated ctlfiles installation: a corpus root, a template,
// and an attached control store.
type env struct {
	cfg       types.Config
	store     *sqlite.Store
	templates *template.Store
}

// newEnv builds an isolated environment with the given template document.
func newEnv(t *testing.T, templateJSON string) *env {
	t.Helper()
	dir := t.TempDir()

	tmplPath := filepath.Join(dir, "template.json")
	if err := os.WriteFile(tmplPath, []byte(templateJSON), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	cfg := types.Config{
		RootDir:      dir,
		TemplatePath: tmplPath,
		DBPath:       filepath.Join(dir, "control.db"),
	}

	store := sqlite.NewStore(zerolog.Nop())
	if err := store.Attach(cfg); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(func() { store.Detach() })

	return &env{cfg: cfg, store: store, templates: template.NewStore(tmplPath)}
}

// systemDir returns the json_<system> subdirectory for a system.
func (e *env) systemDir(system string) string {
	return corpus.SystemDir(e.cfg.RootDir, system)
}

// writeEntity places an entity document into its system subdirectory,
// deriving the system from the filename.
func (e *env) writeEntity(t *testing.T, filename, content string) string {
	t.Helper()
	system, err := corpus.SystemOf(filename)
	if err != nil {
		t.Fatalf("SystemOf(%q): %v", filename, err)
	}
	dir := corpus.SystemDir(e.cfg.RootDir, system)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write entity: %v", err)
	}
	return path
}

// readEntity reads an entity document back as a map.
func (e *env) readEntity(t *testing.T, path string) map[string]any {
	t.Helper()
	doc, err := corpus.ReadDoc(path)
	if err != nil {
		t.Fatalf("ReadDoc(%q): %v", path, err)
	}
	return doc
}

// seedControl creates the default control table in the environment's
// database and inserts one row per attribute tuple.
func (e *env) seedControl(t *testing.T, rows [][4]string) {
	t.Helper()
	db, err := sql.Open("sqlite", e.cfg.DBPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pipeline_control (
		system TEXT, kind TEXT, schema_name TEXT, table_name TEXT
	)`)
	if err != nil {
		t.Fatalf("create control table: %v", err)
	}
	for _, r := range rows {
		_, err := db.Exec(
			`INSERT INTO pipeline_control (system, kind, schema_name, table_name) VALUES (?, ?, ?, ?)`,
			r[0], r[1], r[2], r[3],
		)
		if err != nil {
			t.Fatalf("seed control table: %v", err)
		}
	}
}

// yesConfirmer approves every batch.
type yesConfirmer struct{}

func (yesConfirmer) Confirm(string) (bool, error) { return true, nil }

// noConfirmer declines every batch.
type noConfirmer struct{}

func (noConfirmer) Confirm(string) (bool, error) { return false, nil }
