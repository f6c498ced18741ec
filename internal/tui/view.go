package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jkoivu/kbpreview/internal/layout"
)

// keyUnit is how many terminal cells one key unit occupies.
const keyUnit = 6

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	l := a.eng.Layout()
	if l == nil {
		return "no active layout\n"
	}

	sections := []string{a.viewHeader(l)}
	if a.picker != nil {
		sections = append(sections, a.viewPicker())
	} else {
		sections = append(sections, a.viewKeyboard(l), a.viewText())
	}
	sections = append(sections, a.viewStatus(), a.viewHints())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a *App) viewHeader(l *layout.Layout) string {
	meta := fmt.Sprintf("  %s %s · layer %s", l.Platform, l.Variant, a.eng.ActiveLayer())
	if p := a.eng.Pending(); p != "" {
		meta += fmt.Sprintf(" · deadkey %s", p)
	}
	return a.styles.header.Render(l.Name) + a.styles.headerMeta.Render(meta)
}

func (a *App) viewKeyboard(l *layout.Layout) string {
	rows := make([]string, 0, len(l.Rows))
	for ri, row := range l.Rows {
		caps := make([]string, 0, len(row))
		for ki := range row {
			caps = append(caps, a.renderKey(&row[ki], ri == a.curRow && ki == a.curCol))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, caps...))
	}
	return strings.Join(rows, "\n")
}

func (a *App) renderKey(k *layout.Key, underCursor bool) string {
	w := int(k.Width*keyUnit) - 1
	if w < 3 {
		w = 3
	}
	label := a.keyLabel(k)
	if len([]rune(label)) > w {
		label = string([]rune(label)[:w])
	}

	sty := a.styles.key
	switch {
	case underCursor:
		sty = a.styles.keyCursor
	case a.flash == k.ID || a.eng.Pressed() == k.ID:
		sty = a.styles.keyPressed
	case a.eng.Pending() != "" && layout.OutputFor(k, a.eng.ActiveLayer()) == a.eng.Pending():
		sty = a.styles.keyPending
	case a.modifierActive(k):
		sty = a.styles.keyActive
	case k.Type != layout.KeyNormal:
		sty = a.styles.keySpecial
	}
	return sty.Width(w).Render(label) + " "
}

func (a *App) keyLabel(k *layout.Key) string {
	if k.Label != "" {
		return k.Label
	}
	if out := layout.OutputFor(k, a.eng.ActiveLayer()); out != "" && out != " " {
		return out
	}
	if a.cfg.UI.ShowKeyIDs {
		return k.ID
	}
	return ""
}

func (a *App) modifierActive(k *layout.Key) bool {
	if k.Type != layout.KeyModifier {
		return false
	}
	m := a.eng.Modifiers()
	switch k.Mod {
	case layout.ModShift:
		return m.Shift || (m.Symbols && m.Symbols2)
	case layout.ModCaps:
		return m.Caps
	case layout.ModAlt:
		return m.Alt
	case layout.ModCmd:
		return m.Cmd
	case layout.ModCtrl:
		return m.Ctrl
	case layout.ModSymbols:
		return m.Symbols
	}
	return false
}

func (a *App) viewText() string {
	width := a.width - 4
	if width < 20 {
		width = 76
	}
	content := string(a.text) + "▌"
	return a.styles.textPane.Width(width).Render(content)
}

func (a *App) viewPicker() string {
	p := a.picker
	var b strings.Builder
	b.WriteString(a.styles.header.Render(p.title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if len(p.filtered) == 0 {
		b.WriteString(a.styles.pickerMeta.Render("no matches"))
	}
	for i, it := range p.filtered {
		line := it.Label
		if it.Meta != "" {
			line += "  " + a.styles.pickerMeta.Render(it.Meta)
		}
		if i == p.cursor {
			b.WriteString(a.styles.pickerSel.Render("› " + line))
		} else {
			b.WriteString(a.styles.pickerItem.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return a.styles.pickerBox.Render(b.String())
}

func (a *App) viewStatus() string {
	if a.statusErr {
		return a.styles.statusErr.Render(" " + a.status + " ")
	}
	return a.styles.statusBar.Render(" " + a.status + " ")
}

func (a *App) viewHints() string {
	hints := []struct{ k, d string }{
		{"↑↓←→", "move"},
		{"enter", "press"},
		{"type", "simulate"},
		{"ctrl+p", "platform"},
		{"ctrl+r", "recents"},
		{"ctrl+l", "clear"},
		{"esc", "reset mods"},
		{"ctrl+c", "quit"},
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, a.styles.hintKey.Render(h.k)+" "+a.styles.hintDesc.Render(h.d))
	}
	return strings.Join(parts, a.styles.hintDesc.Render(" · "))
}
