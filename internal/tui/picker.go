package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type pickerKind uint8

const (
	pickerPlatforms pickerKind = iota
	pickerRecents
)

type pickerItem struct {
	ID    string
	Label string
	Meta  string
}

// picker is a modal fuzzy-filtered list. The query ranks items by
// substring match first, then levenshtein similarity.
type picker struct {
	kind     pickerKind
	title    string
	input    textinput.Model
	items    []pickerItem
	filtered []pickerItem
	cursor   int
}

func newPicker(kind pickerKind, title string, items []pickerItem) *picker {
	in := textinput.New()
	in.Placeholder = "filter"
	in.Prompt = "> "
	in.Focus()
	p := &picker{kind: kind, title: title, items: items}
	p.input = in
	p.filtered = rankItems("", items)
	return p
}

// update consumes one key message. It returns the selected item when
// the user confirms, and cancelled when the picker should close empty.
func (p *picker) update(msg tea.KeyMsg) (selected *pickerItem, cancelled bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil
	case "enter":
		if len(p.filtered) == 0 {
			return nil, true, nil
		}
		it := p.filtered[p.cursor]
		return &it, false, nil
	case "up", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, false, nil
	case "down", "ctrl+j":
		if p.cursor < len(p.filtered)-1 {
			p.cursor++
		}
		return nil, false, nil
	}

	var c tea.Cmd
	p.input, c = p.input.Update(msg)
	p.filtered = rankItems(p.input.Value(), p.items)
	if p.cursor >= len(p.filtered) {
		p.cursor = 0
	}
	return nil, false, c
}

// rankItems filters and orders items for a query. Exact substring hits
// rank above similarity hits; everything below the similarity floor is
// dropped.
func rankItems(query string, items []pickerItem) []pickerItem {
	if strings.TrimSpace(query) == "" {
		return append([]pickerItem(nil), items...)
	}
	q := strings.ToLower(strings.TrimSpace(query))

	type scored struct {
		item  pickerItem
		score float64
	}
	var ranked []scored
	for _, it := range items {
		label := strings.ToLower(it.Label)
		switch {
		case strings.Contains(label, q):
			ranked = append(ranked, scored{it, 2 - float64(len(label)-len(q))/float64(len(label)+1)})
		default:
			if s := similarity(q, label); s >= 0.3 {
				ranked = append(ranked, scored{it, s})
			}
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	out := make([]pickerItem, len(ranked))
	for i, r := range ranked {
		out[i] = r.item
	}
	return out
}

func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}
