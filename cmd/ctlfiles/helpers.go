// Shared helpers for ctlfiles CLI commands.
package main

import (
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/ctlfiles/internal/sqlite"
	"github.com/mesh-intelligence/ctlfiles/internal/template"
	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// buildConfig resolves the effective Config from flags, config.yaml, and
// defaults.
func buildConfig() (types.Config, error) {
	rootDir, err := resolveRootDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve root dir: %w", err)
	}
	templatePath, err := resolveTemplatePath(rootDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve template path: %w", err)
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = configDBPath
	}
	controlTable := flagControlTable
	if controlTable == "" {
		controlTable = configControlTable
	}

	return types.Config{
		RootDir:      rootDir,
		TemplatePath: templatePath,
		DBPath:       dbPath,
		ControlTable: controlTable,
	}, nil
}

// attachStore builds the Config and attaches the control store. The caller
// must defer store.Detach().
func attachStore() (*sqlite.Store, types.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, types.Config{}, err
	}

	store := sqlite.NewStore(logger)
	if err := store.Attach(cfg); err != nil {
		return nil, types.Config{}, fmt.Errorf("attach control store: %w", err)
	}
	return store, cfg, nil
}

// templateStore returns the template store for the resolved config.
func templateStore() (*template.Store, types.Config, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, types.Config{}, err
	}
	return template.NewStore(cfg.TemplatePath), cfg, nil
}

// parseValue interprets a flag value as a JSON literal where possible, so
// "true" becomes a boolean and "3" a number; anything that does not parse
// is kept as a plain string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
