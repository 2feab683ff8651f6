// Package sqlite implements the control store: the SQL side of ctlfiles.
// It answers filename lookups against the control table, performs the
// "overwrite with schema merge" commit of the corpus, and keeps the
// run_log audit table.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// DefaultDBName is the database file created under the corpus root when
// the config does not name one.
const DefaultDBName = "control.db"

// Store is the SQLite-backed control store. It is not attached until
// Attach is called with a Config; after Detach every operation returns
// ErrStoreDetached.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      zerolog.Logger
}

// NewStore creates a detached Store.
func NewStore(log zerolog.Logger) *Store {
	return &Store{log: log}
}

// Attach opens the database named by the config (default: control.db under
// the corpus root) and ensures the audit schema exists. The control table
// itself is expected to pre-exist; Attach never drops or recreates it.
// Returns ErrAlreadyAttached when called twice.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dbPath := config.DBPath
	if dbPath == "" {
		dbPath = filepath.Join(config.RootDir, DefaultDBName)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("initializing audit schema: %w", err)
	}

	s.db = db
	s.config = config
	s.attached = true
	s.log.Debug().Str("db", dbPath).Msg("control store attached")
	return nil
}

// Detach closes the database. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	s.attached = false
	return nil
}

// Control returns the configured control table name.
func (s *Store) Control() string {
	return s.config.Control()
}

// identRe restricts table and column names interpolated into SQL text.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkIdent validates a SQL identifier before interpolation.
func checkIdent(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("%w: %q", types.ErrBadIdentifier, name)
	}
	return nil
}

// newRunID generates a UUID v7 for run_log rows.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// RecordRun inserts one audit row for a completed write operation.
func (s *Store) RecordRun(operation string, examined, changed int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	_, err := s.db.Exec(
		`INSERT INTO run_log (run_id, operation, examined, changed, created_at) VALUES (?, ?, ?, ?, ?)`,
		newRunID(), operation, examined, changed, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s run: %w", operation, err)
	}
	return nil
}
