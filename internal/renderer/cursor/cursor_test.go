package cursor

import (
	"sync"
	"testing"

	"github.com/dshills/consolewind/internal/renderer/core"
)

func TestDefaultConfig(t *testing.T) {
	c := New(DefaultConfig())

	if !c.Position().Equals(core.Origin) {
		t.Errorf("expected origin, got %v", c.Position())
	}
	if !c.Visible() {
		t.Error("cursor should be visible by default")
	}
}

func TestSetPosition(t *testing.T) {
	c := New(DefaultConfig())

	c.SetPosition(core.NewScreenPos(4, 7))
	if got := c.Position(); got != core.NewScreenPos(4, 7) {
		t.Errorf("Position() = %v, expected (4, 7)", got)
	}

	// Same value is still stored without complaint.
	c.SetPosition(core.NewScreenPos(4, 7))
	if got := c.Position(); got != core.NewScreenPos(4, 7) {
		t.Errorf("Position() = %v, expected (4, 7)", got)
	}
}

func TestSetVisible(t *testing.T) {
	c := New(DefaultConfig())

	if c.SetVisible(true) {
		t.Error("setting the current visibility should report no change")
	}
	if !c.Visible() {
		t.Error("visibility should be unchanged")
	}

	if !c.SetVisible(false) {
		t.Error("hiding a visible cursor should report a change")
	}
	if c.Visible() {
		t.Error("cursor should be hidden")
	}

	if c.SetVisible(false) {
		t.Error("hiding a hidden cursor should report no change")
	}
}

func TestState(t *testing.T) {
	c := New(Config{Position: core.NewScreenPos(1, 2), Visible: false})

	pos, visible := c.State()
	if pos != core.NewScreenPos(1, 2) || visible {
		t.Errorf("State() = %v, %v", pos, visible)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			c.SetPosition(core.NewScreenPos(n, n))
			c.SetVisible(n%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = c.State()
		}()
	}
	wg.Wait()
}
