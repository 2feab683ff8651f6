// Package corpus provides access to the entity-document corpus: the
// filename convention, per-system directory layout, whole-document JSON
// reads and writes, and directory walking.
//
// An entity document lives at
// <root>/json_<system>/<system>_<kind>_<schema>_<table>.json and is always
// read and written as a whole UTF-8 JSON object with 4-space indentation.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

// systemDirPrefix is the prefix of each per-system subdirectory.
const systemDirPrefix = "json_"

// Filename builds the canonical document filename from its four attributes.
func Filename(system, kind, schema, table string) string {
	return fmt.Sprintf("%s_%s_%s_%s.json", system, kind, schema, table)
}

// SystemOf parses the owning system name back out of a document filename:
// the token before the first underscore. Returns ErrBadFilename when the
// name has no underscore-separated system token.
func SystemOf(filename string) (string, error) {
	base := filepath.Base(filename)
	idx := strings.Index(base, "_")
	if idx <= 0 {
		return "", fmt.Errorf("%w: %q", types.ErrBadFilename, filename)
	}
	return base[:idx], nil
}

// SystemDir returns the per-system subdirectory under the corpus root.
func SystemDir(root, system string) string {
	return filepath.Join(root, systemDirPrefix+system)
}

// Walk collects every .json file under dir, in sorted order.
// Paths are returned absolute to dir (i.e. joined with it).
func Walk(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// SystemDirs lists the per-system subdirectories directly under root,
// sorted by name. Non-directories and entries without the json_ prefix
// are skipped.
func SystemDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), systemDirPrefix) {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ReadDoc reads a whole entity document into a key->value map.
func ReadDoc(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// WriteDoc atomically writes a whole entity document using the temp-file,
// fsync, rename pattern. Output is UTF-8 JSON with 4-space indentation and
// a trailing newline; map keys marshal in sorted order.
func WriteDoc(path string, doc map[string]any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".json-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
