package app

import (
	"github.com/dshills/consolewind/internal/config"
	"github.com/dshills/consolewind/internal/config/watcher"
	"github.com/dshills/consolewind/internal/renderer/backend"
	"github.com/dshills/consolewind/internal/renderer/core"
)

// Run presents the console on the backend and processes events until the
// user quits or Shutdown is called. A quit request returns ErrQuit.
func (app *Application) Run() error {
	app.mu.RLock()
	b := app.backend
	app.mu.RUnlock()
	if b == nil {
		return ErrNoBackend
	}

	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()
	// Wakes the input pump blocked in PollEvent once the loop has ended.
	defer b.PostEvent(backend.Event{Type: backend.EventInterrupt})
	defer app.stop()

	if w := app.startWatcher(); w != nil {
		defer func() {
			if err := w.Stop(); err != nil {
				app.logComponentError("watcher", err)
			}
		}()
	}

	app.present()
	return app.eventLoop(b)
}

// eventLoop is the main application loop. Input is read on a separate
// goroutine because PollEvent blocks.
func (app *Application) eventLoop(b backend.Backend) error {
	events := make(chan backend.Event)
	go func() {
		for {
			ev := b.PollEvent()
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	for {
		select {
		case <-app.done:
			return nil

		case <-app.reloads:
			if err := app.Reload(); err != nil {
				app.logComponentError("config", err)
				continue
			}
			app.present()

		case ev := <-events:
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
		}
	}
}

// handleBackendEvent processes a backend event.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.handleResize(ev.Width, ev.Height)
		app.present()
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	}
	return nil
}

// handleKeyEvent quits on q, Escape or Ctrl-C and redraws on Ctrl-L.
func (app *Application) handleKeyEvent(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyRune:
		if ev.Rune == 'q' || ev.Rune == 'Q' {
			return ErrQuit
		}
	case backend.KeyCtrlL:
		app.mu.RLock()
		p := app.presenter
		app.mu.RUnlock()
		p.Invalidate()
		app.present()
	}
	return nil
}

// handleResize resizes the console surface and the panes that extend to
// its edge.
func (app *Application) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	app.screen.Resize(width, height)

	size := core.NewSize(width, height)
	for _, slot := range app.layout {
		if slot.cfg.Width == 0 || slot.cfg.Height == 0 {
			s := slot.cfg.Size(size)
			slot.pane.Resize(s.Width, s.Height)
			app.logger.WithPane(slot.pane).Debug("resized to %v", s)
		}
	}
	app.logger.Debug("resized console to %v", size)
}

// present draws the console on the backend.
func (app *Application) present() {
	app.mu.RLock()
	p := app.presenter
	app.mu.RUnlock()
	if p == nil {
		return
	}
	sent := p.Present(app.screen)
	app.logger.Debug("presented %d cells", sent)
}

// startWatcher begins watching the configuration file when live reload is
// enabled. Returns nil when nothing is watched.
func (app *Application) startWatcher() *watcher.Watcher {
	path := app.opts.ConfigPath
	if !app.Config().Watch || path == "" || path == StdinPath {
		return nil
	}

	log := app.logger.WithComponent("watcher")
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error: %v", err)
	}))
	if err != nil {
		app.logComponentError("watcher", err)
		return nil
	}
	if err := w.Watch(path); err != nil {
		app.logComponentError("watcher", err)
		_ = w.Stop()
		return nil
	}

	w.OnChange(func(e watcher.Event) {
		if e.Op == watcher.OpRemove {
			return
		}
		log.Debug("%s %s", e.Op, e.Path)
		select {
		case app.reloads <- struct{}{}:
		default:
		}
	})
	w.Start()
	return w
}

// Reload re-reads the configuration file and applies the settings that can
// change at runtime: title, theme, cursor, log level and pane text. Pane
// geometry and buffer settings apply on the next start. Configuration read
// from stdin cannot be reloaded.
func (app *Application) Reload() error {
	if app.opts.ConfigPath == StdinPath {
		return ErrNotReloadable
	}
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return err
	}
	app.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	app.screen.SetTitle(cfg.Console.Title)
	app.screen.SetTheme(cfg.Console.Theme)

	cur := app.screen.Cursor()
	cur.SetPosition(cfg.Cursor.Position())
	cur.SetVisible(cfg.Cursor.Visible)

	for i, slot := range app.layout {
		if i >= len(cfg.Panes) || cfg.Panes[i].Text == slot.cfg.Text {
			continue
		}
		log := app.logger.WithPane(slot.pane)
		slot.pane.Clear()
		if err := writeLines(slot.pane, cfg.Panes[i].Text); err != nil {
			log.Error("rewriting text: %v", err)
			continue
		}
		log.Debug("text replaced")
		app.layout[i].cfg.Text = cfg.Panes[i].Text
	}

	app.logger.Info("configuration reloaded")
	return nil
}
