// Package template owns the canonical template document: whole-document
// load and save plus the add, rename, and remove key operations.
//
// Every operation reads the whole template, mutates it in memory, and
// writes the whole template back atomically. Last writer wins.
package template

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/ctlfiles/internal/corpus"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// Store reads and edits the template document at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for the template document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the template document's location.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the whole template document.
func (s *Store) Load() (types.Template, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", s.path, err)
	}
	var tmpl types.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", s.path, err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, fmt.Errorf("template %s: %w", s.path, err)
	}
	return tmpl, nil
}

// Save writes the whole template document back atomically.
func (s *Store) Save(tmpl types.Template) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("template %s: %w", s.path, err)
	}
	return corpus.WriteDoc(s.path, tmpl)
}

// AddKey sets key to value in the template, overwriting an existing
// default silently, and persists the result.
func (s *Store) AddKey(key string, value any) error {
	if key == "" {
		return types.ErrEmptyKey
	}
	if !types.IsLegalValue(value) {
		return fmt.Errorf("%w: key %q has %T value", types.ErrInvalidValue, key, value)
	}
	tmpl, err := s.Load()
	if err != nil {
		return err
	}
	tmpl[key] = value
	return s.Save(tmpl)
}

// RenameKey moves the default from oldKey to newKey and persists the
// result. Returns ErrKeyNotFound, without writing, when oldKey is absent;
// callers report that as a notice rather than a failure.
func (s *Store) RenameKey(oldKey, newKey string) error {
	if oldKey == "" || newKey == "" {
		return types.ErrEmptyKey
	}
	tmpl, err := s.Load()
	if err != nil {
		return err
	}
	value, ok := tmpl[oldKey]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrKeyNotFound, oldKey)
	}
	delete(tmpl, oldKey)
	tmpl[newKey] = value
	return s.Save(tmpl)
}

// RemoveKey deletes key from the template and persists the result.
// Returns ErrKeyNotFound, without writing, when key is absent.
func (s *Store) RemoveKey(key string) error {
	if key == "" {
		return types.ErrEmptyKey
	}
	tmpl, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := tmpl[key]; !ok {
		return fmt.Errorf("%w: %q", types.ErrKeyNotFound, key)
	}
	delete(tmpl, key)
	return s.Save(tmpl)
}
