package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mesh-intelligence/ctlfiles/pkg/types"
)

func TestFilename(t *testing.T) {
	got := Filename("sys1", "full", "schemaA", "tbl1")
	want := "sys1_full_schemaA_tbl1.json"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSystemOf(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  error
	}{
		{
			name:     "plain filename",
			filename: "sys1_full_schemaA_tbl1.json",
			want:     "sys1",
		},
		{
			name:     "path is reduced to its base",
			filename: "/data/json_sys2/sys2_delta_schemaB_tbl9.json",
			want:     "sys2",
		},
		{
			name:     "no underscore",
			filename: "bogus.json",
			wantErr:  types.ErrBadFilename,
		},
		{
			name:     "leading underscore",
			filename: "_full_schemaA_tbl1.json",
			wantErr:  types.ErrBadFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SystemOf(tt.filename)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SystemOf failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSystemDir(t *testing.T) {
	got := SystemDir("/data/corpus", "sys1")
	want := filepath.Join("/data/corpus", "json_sys1")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWalkCollectsOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	mustWrite(t, filepath.Join(dir, "a.json"), `{"k": 1}`)
	mustWrite(t, filepath.Join(sub, "b.json"), `{"k": 2}`)
	mustWrite(t, filepath.Join(dir, "notes.txt"), "not json")

	files, err := Walk(dir)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.json" {
		t.Errorf("unexpected walk order: %v", files)
	}
}

func TestSystemDirs(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"json_sys1", "json_sys2", "other", "stray.json"} {
		path := filepath.Join(root, name)
		if strings.HasSuffix(name, ".json") {
			mustWrite(t, path, "{}")
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
	}

	dirs, err := SystemDirs(root)
	if err != nil {
		t.Fatalf("SystemDirs failed: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 system dirs, got %d: %v", len(dirs), dirs)
	}
	if filepath.Base(dirs[0]) != "json_sys1" || filepath.Base(dirs[1]) != "json_sys2" {
		t.Errorf("unexpected dirs: %v", dirs)
	}
}

func TestReadWriteDocRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sys1_full_schemaA_tbl1.json")
	doc := map[string]any{
		"active": true,
		"name":   "tbl1",
		"rows":   float64(42),
	}

	if err := WriteDoc(path, doc); err != nil {
		t.Fatalf("WriteDoc failed: %v", err)
	}

	got, err := ReadDoc(path)
	if err != nil {
		t.Fatalf("ReadDoc failed: %v", err)
	}
	if len(got) != len(doc) {
		t.Fatalf("expected %d keys, got %d", len(doc), len(got))
	}
	if got["active"] != true || got["name"] != "tbl1" || got["rows"] != float64(42) {
		t.Errorf("round trip mismatch: %v", got)
	}
}

func TestWriteDocUsesFourSpaceIndent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := WriteDoc(path, map[string]any{"a": 1, "b": true}); err != nil {
		t.Fatalf("WriteDoc failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "\n    \"a\"") {
		t.Errorf("expected 4-space indentation, got:\n%s", text)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("expected trailing newline")
	}
	// Map keys marshal sorted.
	if strings.Index(text, `"a"`) > strings.Index(text, `"b"`) {
		t.Errorf("expected sorted keys, got:\n%s", text)
	}
}

func TestReadDocMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	mustWrite(t, path, `{"unclosed": `)

	if _, err := ReadDoc(path); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", path, err)
	}
}
