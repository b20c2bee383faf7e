package console

import (
	"strings"
	"testing"

	"github.com/dshills/consolewind/internal/renderer/core"
	"github.com/dshills/consolewind/internal/renderer/cursor"
	"github.com/dshills/consolewind/internal/renderer/subscreen"
)

func TestNewDefaults(t *testing.T) {
	s := New(Config{Title: "t", Width: 10, Height: 5}, nil, nil)

	if s.Theme() != core.DefaultTheme {
		t.Errorf("Theme() = %q, expected %q", s.Theme(), core.DefaultTheme)
	}
	if s.SubScreens() == nil || s.Cursor() == nil {
		t.Fatal("registry and cursor should be created")
	}
	if !s.Cursor().Visible() {
		t.Error("default cursor should be visible")
	}
}

func TestAccessors(t *testing.T) {
	s := New(DefaultConfig(), subscreen.NewRegistry(), nil)

	s.SetTitle("Last Era")
	s.SetTheme("light")
	s.SetWidth(120)
	s.SetHeight(29)

	if s.Title() != "Last Era" || s.Theme() != "light" {
		t.Errorf("title/theme = %q/%q", s.Title(), s.Theme())
	}
	if s.Width() != 120 || s.Height() != 29 {
		t.Errorf("size = %dx%d", s.Width(), s.Height())
	}

	s.Resize(40, 10)
	if s.Size() != core.NewSize(40, 10) {
		t.Errorf("Size() = %v", s.Size())
	}

	r := subscreen.NewRegistry()
	s.SetSubScreens(r)
	if s.SubScreens() != r {
		t.Error("SetSubScreens should replace the registry")
	}
}

func TestResizeLeavesPanes(t *testing.T) {
	r := subscreen.NewRegistry()
	f := subscreen.NewFactory(r, nil, subscreen.DefaultOptions())
	pane, _ := f.Create(core.Origin, core.NewSize(4, 2))

	s := New(DefaultConfig(), r, nil)
	s.Resize(200, 100)

	if pane.Size() != core.NewSize(4, 2) {
		t.Errorf("pane size changed to %v", pane.Size())
	}
}

func TestClearAllPanes(t *testing.T) {
	r := subscreen.NewRegistry()
	f := subscreen.NewFactory(r, nil, subscreen.DefaultOptions())
	a, _ := f.Create(core.Origin, core.NewSize(3, 1))
	b, _ := f.Create(core.NewScreenPos(1, 0), core.NewSize(2, 2))
	_, _ = a.WriteText(0, 0, "abc")
	_, _ = b.WriteText(0, 0, "wxyz")

	s := New(DefaultConfig(), r, nil)
	s.Clear()

	if got := a.Render(); got[0] != "---" {
		t.Errorf("pane a = %q", got)
	}
	if got := b.Render(); got[0] != "--" || got[1] != "--" {
		t.Errorf("pane b = %q", got)
	}

	// Back buffers were cleared through the same publish path.
	if ch, _ := a.PendingCell(0, 0); ch != '-' {
		t.Errorf("pane a back buffer = %q", ch)
	}
}

func TestString(t *testing.T) {
	r := subscreen.NewRegistry()
	f := subscreen.NewFactory(r, nil, subscreen.DefaultOptions())
	_, _ = f.Create(core.Origin, core.NewSize(3, 1))

	s := New(Config{Title: "demo", Width: 20, Height: 4}, r, nil)
	out := s.String()
	if !strings.Contains(out, `"demo"`) || !strings.Contains(out, "20x4") || !strings.Contains(out, "pane 0") {
		t.Errorf("String() = %q", out)
	}
}

func TestFactory(t *testing.T) {
	r := subscreen.NewRegistry()
	cc := cursor.Config{Position: core.NewScreenPos(2, 3), Visible: false}
	f := NewFactory(Config{Title: "x", Width: 30, Height: 10}, r, cc)

	s := f.Create()
	if s.Title() != "x" || s.Size() != core.NewSize(30, 10) {
		t.Errorf("unexpected screen %v", s)
	}
	if s.SubScreens() != r {
		t.Error("factory should pass its registry through")
	}
	pos, visible := s.Cursor().State()
	if pos != core.NewScreenPos(2, 3) || visible {
		t.Errorf("cursor state = %v, %v", pos, visible)
	}
}
