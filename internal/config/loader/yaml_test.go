package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestYAMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
console:
  title: New Screen
  height: 29
probe:
  useTerminal: true
panes:
  - row: 1
    col: 2
    width: 5
    height: 2
    text: hi
`)

	config, err := NewYAMLLoaderWithFS(memfs, "/config.yaml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := getByPath(config, "console.title"); v != "New Screen" {
		t.Errorf("console.title = %v", v)
	}
	if v, _ := getByPath(config, "console.height"); v != int64(29) {
		t.Errorf("console.height = %v (%T), want int64 29", v, v)
	}
	if v, _ := getByPath(config, "probe.useTerminal"); v != true {
		t.Errorf("probe.useTerminal = %v", v)
	}

	panes := config["panes"].([]any)
	if col := panes[0].(map[string]any)["col"]; col != int64(2) {
		t.Errorf("pane col = %v (%T), want int64 2", col, col)
	}
}

func TestYAMLLoader_Empty(t *testing.T) {
	config, err := NewYAMLLoader("").LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config == nil || len(config) != 0 {
		t.Errorf("expected empty map, got %v", config)
	}
}

func TestYAMLLoader_NonExistent(t *testing.T) {
	config, err := NewYAMLLoaderWithFS(NewMemFS(), "/missing.yaml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestYAMLLoader_Invalid(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.yaml", "console:\n  title: [unclosed\n")

	_, err := NewYAMLLoaderWithFS(memfs, "/bad.yaml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if perr.Path != "/bad.yaml" {
		t.Errorf("Path = %q", perr.Path)
	}
}
