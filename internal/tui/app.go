// Package tui renders the interactive keyboard and routes terminal
// input into the keyboard engine.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jkoivu/kbpreview/internal/config"
	"github.com/jkoivu/kbpreview/internal/kbdfmt"
	"github.com/jkoivu/kbpreview/internal/keyboard"
	"github.com/jkoivu/kbpreview/internal/layout"
	"github.com/jkoivu/kbpreview/internal/source"
	"github.com/jkoivu/kbpreview/internal/store"
)

// App is the bubbletea model. All engine operations run synchronously
// inside Update; layout replacement is produced asynchronously by a
// command and applied here as a single swap.
type App struct {
	cfg    config.Config
	log    *zap.SugaredLogger
	keys   keyMap
	styles styles

	loader  *source.Loader
	watcher *source.Watcher // nil unless previewing a local file
	st      *store.Store    // nil when the recents store is disabled

	ref string
	def *kbdfmt.Definition
	eng *keyboard.Engine

	text    []rune
	curRow  int
	curCol  int
	flash   string // key id of the last virtual click, briefly highlighted
	recents []store.Entry
	picker  *picker

	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// New builds the app around an already transformed layout.
func New(cfg config.Config, log *zap.SugaredLogger, loader *source.Loader, st *store.Store, watcher *source.Watcher, ref string, def *kbdfmt.Definition, l *layout.Layout) *App {
	a := &App{
		cfg:     cfg,
		log:     log,
		keys:    defaultKeyMap(),
		styles:  newStyles(cfg.UI.Accent),
		loader:  loader,
		watcher: watcher,
		st:      st,
		ref:     ref,
		def:     def,
		eng:     keyboard.New(),
		status:  "Ready",
	}
	a.eng.SetLayout(l)
	return a
}

func (a *App) Init() tea.Cmd {
	return a.waitForChange()
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(err error) {
	if err == nil {
		a.status = ""
		a.statusErr = false
		return
	}
	a.log.Warnw("status error", "error", err)
	a.status = err.Error()
	a.statusErr = true
}

// apply folds one engine effect into the committed-text buffer.
func (a *App) apply(eff keyboard.Effect) {
	switch eff.Kind {
	case keyboard.EffectAppend:
		a.text = append(a.text, []rune(eff.Text)...)
	case keyboard.EffectDeleteBack:
		if n := len(a.text); n > 0 {
			a.text = a.text[:n-1]
		}
	case keyboard.EffectClear:
		a.text = a.text[:0]
	}
}

// cursorKey returns the key under the navigation cursor, or nil.
func (a *App) cursorKey() *layout.Key {
	l := a.eng.Layout()
	if l == nil || a.curRow >= len(l.Rows) {
		return nil
	}
	row := l.Rows[a.curRow]
	if a.curCol >= len(row) {
		return nil
	}
	return &row[a.curCol]
}

func (a *App) moveCursor(dRow, dCol int) {
	l := a.eng.Layout()
	if l == nil || len(l.Rows) == 0 {
		return
	}
	a.curRow = clamp(a.curRow+dRow, 0, len(l.Rows)-1)
	a.curCol = clamp(a.curCol+dCol, 0, len(l.Rows[a.curRow])-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
