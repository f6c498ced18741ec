package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jkoivu/kbpreview/internal/kbdfmt"
	"github.com/jkoivu/kbpreview/internal/keyboard"
	"github.com/jkoivu/kbpreview/internal/layout"
	"github.com/jkoivu/kbpreview/internal/store"
)

const flashDuration = 150 * time.Millisecond

type fileChangedMsg struct{}

type layoutSwappedMsg struct {
	layout *layout.Layout
	note   string
	touch  bool
}

type definitionLoadedMsg struct {
	ref    string
	def    *kbdfmt.Definition
	layout *layout.Layout
}

type loadFailedMsg struct{ err error }

type flashExpiredMsg struct{ id string }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case fileChangedMsg:
		return a, tea.Batch(a.reloadCmd(), a.waitForChange())

	case layoutSwappedMsg:
		a.apply(a.eng.SetLayout(msg.layout))
		a.curRow, a.curCol = 0, 0
		a.setStatus(msg.note)
		if msg.touch {
			return a, a.touchCmd(msg.layout)
		}
		return a, nil

	case definitionLoadedMsg:
		a.ref = msg.ref
		a.def = msg.def
		a.apply(a.eng.SetLayout(msg.layout))
		a.curRow, a.curCol = 0, 0
		a.setStatus(fmt.Sprintf("Loaded %s", msg.layout.Name))
		return a, a.touchCmd(msg.layout)

	case loadFailedMsg:
		a.setError(msg.err)
		return a, nil

	case flashExpiredMsg:
		if a.flash == msg.id {
			a.flash = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}
	return a, nil
}

func (a *App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		a.quitting = true
		return a, tea.Quit
	}
	if a.picker != nil {
		return a.updatePicker(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Platforms):
		a.picker = a.platformPicker()
		return a, nil
	case key.Matches(msg, a.keys.Recents):
		return a, a.openRecents()
	case key.Matches(msg, a.keys.ClearText):
		a.text = a.text[:0]
		a.eng.ClearState()
		a.setStatus("Cleared")
		return a, nil
	case key.Matches(msg, a.keys.Reset):
		a.eng.ClearState()
		a.setStatus("Modifiers reset")
		return a, nil
	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1, 0)
		return a, nil
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1, 0)
		return a, nil
	case key.Matches(msg, a.keys.Left):
		a.moveCursor(0, -1)
		return a, nil
	case key.Matches(msg, a.keys.Right):
		a.moveCursor(0, 1)
		return a, nil
	case key.Matches(msg, a.keys.Press):
		return a, a.clickKey(a.cursorKey())
	}

	// Everything else is treated as typing on the virtual keyboard.
	l := a.eng.Layout()
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return a, a.typeRune(msg.Runes[0])
		}
	case tea.KeySpace:
		return a, a.clickKey(l.KeyByID("Space"))
	case tea.KeyBackspace:
		return a, a.clickKey(l.KeyByID("Backspace"))
	case tea.KeyTab:
		return a, a.clickKey(l.KeyByID("Tab"))
	}
	return a, nil
}

func (a *App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, cancelled, cmd := a.picker.update(msg)
	if cancelled {
		a.picker = nil
		return a, nil
	}
	if selected == nil {
		return a, cmd
	}
	kind := a.picker.kind
	a.picker = nil
	switch kind {
	case pickerPlatforms:
		platform, variant, _ := strings.Cut(selected.ID, ":")
		return a, a.transformCmd(layout.Platform(platform), variant)
	case pickerRecents:
		for _, e := range a.recents {
			if e.ID == selected.ID {
				return a, a.loadCmd(e.Ref, layout.Platform(e.Platform), e.Variant)
			}
		}
	}
	return a, nil
}

// typeRune maps a typed character to a virtual click on the key that
// produces it on the active layer. Unmapped characters are no-ops.
func (a *App) typeRune(r rune) tea.Cmd {
	k := a.eng.KeyForOutput(string(r))
	if k == nil {
		a.setStatus(fmt.Sprintf("%q is not on the active layer", r))
		return nil
	}
	return a.clickKey(k)
}

func (a *App) clickKey(k *layout.Key) tea.Cmd {
	if k == nil {
		return nil
	}
	eff := a.eng.Click(k)
	a.apply(eff)
	if eff.Kind != keyboard.EffectNone || k.Type != layout.KeyNormal {
		a.status = ""
	}
	a.flash = k.ID
	id := k.ID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{id: id}
	})
}

// waitForChange blocks on the file watcher in a command so live reloads
// arrive as ordinary messages.
func (a *App) waitForChange() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	ch := a.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

// reloadCmd re-fetches and re-transforms the current reference. The
// active layout keeps serving input until the replacement lands.
func (a *App) reloadCmd() tea.Cmd {
	ref := a.ref
	platform, variant := a.currentSelection()
	loader := a.loader
	return func() tea.Msg {
		data, err := loader.Load(context.Background(), ref)
		if err != nil {
			return loadFailedMsg{err}
		}
		def, err := kbdfmt.Parse(data)
		if err != nil {
			return loadFailedMsg{err}
		}
		l, err := layout.Transform(def, platform, variant)
		if err != nil {
			return loadFailedMsg{err}
		}
		return layoutSwappedMsg{layout: l, note: "Reloaded"}
	}
}

// transformCmd re-transforms the already loaded definition for a new
// platform/variant selection.
func (a *App) transformCmd(platform layout.Platform, variant string) tea.Cmd {
	def := a.def
	return func() tea.Msg {
		l, err := layout.Transform(def, platform, variant)
		if err != nil {
			return loadFailedMsg{err}
		}
		return layoutSwappedMsg{
			layout: l,
			note:   fmt.Sprintf("Switched to %s", l.Name),
			touch:  true,
		}
	}
}

// loadCmd loads a different definition reference end to end.
func (a *App) loadCmd(ref string, platform layout.Platform, variant string) tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		data, err := loader.Load(context.Background(), ref)
		if err != nil {
			return loadFailedMsg{err}
		}
		def, err := kbdfmt.Parse(data)
		if err != nil {
			return loadFailedMsg{err}
		}
		l, err := layout.Transform(def, platform, variant)
		if err != nil {
			return loadFailedMsg{err}
		}
		return definitionLoadedMsg{ref: ref, def: def, layout: l}
	}
}

func (a *App) touchCmd(l *layout.Layout) tea.Cmd {
	if a.st == nil {
		return nil
	}
	st, ref := a.st, a.ref
	entry := store.Entry{
		Ref:          ref,
		DefinitionID: l.ID,
		Name:         l.Name,
		Platform:     string(l.Platform),
		Variant:      l.Variant,
	}
	return func() tea.Msg {
		if err := st.Touch(context.Background(), entry); err != nil {
			return loadFailedMsg{err}
		}
		return nil
	}
}

// currentSelection reports the platform/variant being previewed.
func (a *App) currentSelection() (layout.Platform, string) {
	if l := a.eng.Layout(); l != nil {
		return l.Platform, l.Variant
	}
	return layout.Platform(a.cfg.Source.Platform), a.cfg.Source.Variant
}

func (a *App) platformPicker() *picker {
	var items []pickerItem
	for _, p := range layout.Platforms {
		src, ok := a.def.Platforms[string(p)]
		if !ok {
			continue
		}
		variants := make([]string, 0, len(src.Variants))
		for v := range src.Variants {
			variants = append(variants, v)
		}
		sort.Strings(variants)
		for _, v := range variants {
			items = append(items, pickerItem{
				ID:    string(p) + ":" + v,
				Label: string(p) + " " + v,
				Meta:  fmt.Sprintf("%d layers", len(src.Variants[v])),
			})
		}
	}
	return newPicker(pickerPlatforms, "Platform / variant", items)
}

func (a *App) openRecents() tea.Cmd {
	if a.st == nil {
		a.setStatus("Recents store disabled")
		return nil
	}
	entries, err := a.st.Recent(context.Background(), 50)
	if err != nil {
		a.setError(err)
		return nil
	}
	a.recents = entries
	items := make([]pickerItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, pickerItem{
			ID:    e.ID,
			Label: e.Name,
			Meta:  fmt.Sprintf("%s %s · %s", e.Platform, e.Variant, e.Ref),
		})
	}
	a.picker = newPicker(pickerRecents, "Recent definitions", items)
	return nil
}
