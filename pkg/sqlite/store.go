// Package sqlite provides the public API for the SQLite control store.
// This package exposes the factory function for creating control stores
// while keeping implementation details internal.
package sqlite

import (
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/ctlfiles/internal/sqlite"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// NewStore creates a new SQLite control store. The store is not attached;
// call Attach with a Config to open the database.
//
// Example:
//
//	store := sqlite.NewStore(logger)
//	err := store.Attach(types.Config{
//	    RootDir:      "controls",
//	    TemplatePath: "controls/template.json",
//	})
//	defer store.Detach()
func NewStore(log zerolog.Logger) types.ControlStore {
	return sqlite.NewStore(log)
}
