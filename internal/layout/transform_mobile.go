package layout

import (
	"fmt"
	"strings"
)

// tokenizeGrid parses a mobile layer string into rows of tagged tokens
// with spacers already removed, so key positions align across layers
// regardless of where a layer places its spacers.
func tokenizeGrid(src string) [][]token {
	var grid [][]token
	for _, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		toks := tokenizeRow(line)
		kept := toks[:0]
		for _, t := range toks {
			if t.kind != tokenSpacer {
				kept = append(kept, t)
			}
		}
		grid = append(grid, kept)
	}
	return grid
}

// mobileSpecialKey maps an escape-token name to the fixed mobile key
// catalogue. Unknown names return false and the token is dropped.
func mobileSpecialKey(name string, width float64) (Key, bool) {
	var k Key
	switch name {
	case "shift":
		k = specialKey("Shift", "⇧", 1.5, KeyModifier, ModShift)
	case "backspace":
		k = specialKey("Backspace", "⌫", 1.5, KeyFunction, ModNone)
	case "return", "enter":
		k = specialKey("Enter", "⏎", 1.5, KeyEnter, ModNone)
	case "symbols":
		k = specialKey("Symbols", "?123", 1.5, KeyModifier, ModSymbols)
	case "space":
		k = specialKey("Space", "", 4, KeySpace, ModNone)
	default:
		return Key{}, false
	}
	if width > 0 {
		k.Width = width
	}
	return k, true
}

// mobileCellLayers reads one literal position across every layer grid.
// A layer contributes only when its token at the same position is a
// non-empty literal.
func mobileCellLayers(grids map[Layer][][]token, row, col int) map[Layer]string {
	layers := map[Layer]string{LayerDefault: ""}
	for layer, grid := range grids {
		if row >= len(grid) || col >= len(grid[row]) {
			continue
		}
		t := grid[row][col]
		if t.kind == tokenLiteral && t.text != "" {
			layers[layer] = t.text
		}
	}
	return layers
}

// buildMobileRows builds the mobile rows from the default layer's token
// spine, then appends the synthetic bottom row the source format never
// encodes. Only the iOS family gets a bottom-row symbols toggle; other
// platforms carry theirs inside the layer strings.
func buildMobileRows(grids map[Layer][][]token, platform Platform) []Row {
	spine := grids[LayerDefault]
	rows := make([]Row, 0, len(spine)+1)
	for ri, toks := range spine {
		row := make(Row, 0, len(toks))
		for ci, t := range toks {
			switch t.kind {
			case tokenSpecial:
				if k, ok := mobileSpecialKey(t.name, t.width); ok {
					row = append(row, k)
				}
			case tokenLiteral:
				w := t.width
				if w <= 0 {
					w = 1
				}
				row = append(row, Key{
					ID:     fmt.Sprintf("r%dc%d", ri, ci),
					Layers: mobileCellLayers(grids, ri, ci),
					Width:  w,
					Height: 1,
					Type:   KeyNormal,
				})
			}
		}
		rows = append(rows, row)
	}

	bottom := Row{}
	if platform == PlatformIOS {
		k, _ := mobileSpecialKey("symbols", 0)
		bottom = append(bottom, k)
	}
	space, _ := mobileSpecialKey("space", 0)
	ret, _ := mobileSpecialKey("return", 0)
	bottom = append(bottom, space, ret)
	return append(rows, bottom)
}
