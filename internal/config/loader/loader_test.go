package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestForPath(t *testing.T) {
	memfs := NewMemFS()

	tests := []struct {
		path    string
		wantErr bool
	}{
		{"/a.toml", false},
		{"/a.TOML", false},
		{"/a.yaml", false},
		{"/a.yml", false},
		{"/a.json", true},
		{"/a", true},
	}

	for _, tt := range tests {
		_, err := ForPath(memfs, tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("ForPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}

func TestForPathTOMLFollowsIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/cfg/main.toml", `
"@include" = "base.toml"

[console]
title = "main"
`)
	memfs.AddFile("/cfg/base.toml", `
[console]
title = "base"
width = 100
`)

	l, err := ForPath(memfs, "/cfg/main.toml")
	if err != nil {
		t.Fatalf("ForPath failed: %v", err)
	}
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := getByPath(config, "console.title"); v != "main" {
		t.Errorf("console.title = %v, want 'main'", v)
	}
	if v, _ := getByPath(config, "console.width"); v != int64(100) {
		t.Errorf("console.width = %v (%T), want 100", v, v)
	}
	if _, ok := config["@include"]; ok {
		t.Error("@include should be removed from the result")
	}
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format  string
		input   string
		wantErr bool
	}{
		{"", "[console]\ntitle = \"t\"\n", false},
		{"TOML", "[console]\ntitle = \"t\"\n", false},
		{"yaml", "console:\n  title: t\n", false},
		{"yml", "console:\n  title: t\n", false},
		{"json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rl, err := ForFormat(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ForFormat failed: %v", err)
			}
			data, err := rl.LoadFromReader(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("LoadFromReader failed: %v", err)
			}
			console, _ := data["console"].(map[string]any)
			if console["title"] != "t" {
				t.Errorf("console.title = %v", console["title"])
			}
		})
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  *ParseError
		want string
	}{
		{&ParseError{Path: "a", Message: "bad"}, "parse error in a: bad"},
		{&ParseError{Path: "a", Line: 3, Message: "bad"}, "parse error in a at line 3: bad"},
		{&ParseError{Path: "a", Line: 3, Column: 7, Message: "bad"}, "parse error in a at line 3, column 7: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	inner := errors.New("inner")
	if !errors.Is(&ParseError{Err: inner}, inner) {
		t.Error("ParseError should unwrap to its cause")
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"console": map[string]any{"title": "a", "width": int64(80)},
		"panes":   []any{"x"},
	}
	src := map[string]any{
		"console": map[string]any{"title": "b"},
		"panes":   []any{"y", "z"},
	}

	got := DeepMerge(dst, src)
	if v, _ := getByPath(got, "console.title"); v != "b" {
		t.Errorf("console.title = %v, want 'b'", v)
	}
	if v, _ := getByPath(got, "console.width"); v != int64(80) {
		t.Errorf("console.width = %v, want 80", v)
	}
	if panes := got["panes"].([]any); len(panes) != 2 {
		t.Errorf("slices should be replaced, got %v", panes)
	}

	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"console": map[string]any{"title": "a"},
		"panes":   []any{map[string]any{"text": "x"}},
	}

	c := Clone(src)
	c["console"].(map[string]any)["title"] = "changed"
	c["panes"].([]any)[0].(map[string]any)["text"] = "changed"

	if v, _ := getByPath(src, "console.title"); v != "a" {
		t.Error("Clone should copy nested maps")
	}
	if src["panes"].([]any)[0].(map[string]any)["text"] != "x" {
		t.Error("Clone should copy maps inside slices")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestOSFSMissingFile(t *testing.T) {
	l := NewTOMLLoader(t.TempDir() + "/missing.toml")
	config, err := l.Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}
