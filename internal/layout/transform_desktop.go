package layout

import "strings"

// isoRowCodes fixes the physical key order of the four alphanumeric ISO
// rows, top to bottom. Layer strings are read against these positions:
// one line per row, one whitespace-separated token per key.
var isoRowCodes = [4][]string{
	{"Backquote", "Digit1", "Digit2", "Digit3", "Digit4", "Digit5", "Digit6", "Digit7", "Digit8", "Digit9", "Digit0", "Minus", "Equal"},
	{"KeyQ", "KeyW", "KeyE", "KeyR", "KeyT", "KeyY", "KeyU", "KeyI", "KeyO", "KeyP", "BracketLeft", "BracketRight"},
	{"KeyA", "KeyS", "KeyD", "KeyF", "KeyG", "KeyH", "KeyJ", "KeyK", "KeyL", "Semicolon", "Quote", "Backslash"},
	{"IntlBackslash", "KeyZ", "KeyX", "KeyC", "KeyV", "KeyB", "KeyN", "KeyM", "Comma", "Period", "Slash"},
}

func specialKey(id, label string, width float64, typ KeyType, mod Modifier) Key {
	layers := map[Layer]string{LayerDefault: ""}
	if typ == KeySpace {
		layers[LayerDefault] = " "
	}
	return Key{ID: id, Label: label, Layers: layers, Width: width, Height: 1, Type: typ, Mod: mod}
}

// The static catalogue of desktop keys the source format never encodes.
func backspaceKey() Key { return specialKey("Backspace", "⌫", 1.5, KeyFunction, ModNone) }
func tabKey() Key       { return specialKey("Tab", "⇥", 1.5, KeyFunction, ModNone) }
func enterKey() Key     { return specialKey("Enter", "⏎", 1.5, KeyEnter, ModNone) }
func capsKey() Key      { return specialKey("CapsLock", "⇪", 1.75, KeyModifier, ModCaps) }
func spaceKey() Key     { return specialKey("Space", "", 6.25, KeySpace, ModNone) }

func shiftKey(id string, width float64) Key { return specialKey(id, "⇧", width, KeyModifier, ModShift) }
func ctrlKey(id string) Key                 { return specialKey(id, "⌃", 1.25, KeyModifier, ModCtrl) }
func cmdKey(id string) Key                  { return specialKey(id, "⌘", 1.25, KeyModifier, ModCmd) }
func altKey(id string) Key                  { return specialKey(id, "⌥", 1.25, KeyModifier, ModAlt) }

// parseGrid splits a desktop layer string into rows of tokens. Blank
// lines are dropped so indentation-heavy YAML block scalars parse the
// same as tight ones.
func parseGrid(src string) [][]string {
	var grid [][]string
	for _, line := range strings.Split(src, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		grid = append(grid, fields)
	}
	return grid
}

// cellLayers reads the same grid cell across every parsed layer that
// defines it. Absent or empty cells are omitted, except the default
// layer which is always present.
func cellLayers(grids map[Layer][][]string, row, col int) map[Layer]string {
	layers := map[Layer]string{LayerDefault: ""}
	for layer, grid := range grids {
		if row >= len(grid) || col >= len(grid[row]) {
			continue
		}
		if v := decodeToken(grid[row][col]); v != "" {
			layers[layer] = v
		}
	}
	return layers
}

// buildDesktopRows assembles the fixed ISO rows from parsed cells plus
// the static special-key catalogue.
func buildDesktopRows(grids map[Layer][][]string) []Row {
	alnum := make([]Row, 4)
	for r := range isoRowCodes {
		row := make(Row, 0, len(isoRowCodes[r]))
		for c, code := range isoRowCodes[r] {
			row = append(row, Key{
				ID:     code,
				Layers: cellLayers(grids, r, c),
				Width:  1,
				Height: 1,
				Type:   KeyNormal,
			})
		}
		alnum[r] = row
	}

	rows := make([]Row, 0, 5)
	rows = append(rows, append(alnum[0], backspaceKey()))
	rows = append(rows, append(Row{tabKey()}, append(alnum[1], enterKey())...))
	rows = append(rows, append(Row{capsKey()}, alnum[2]...))
	rows = append(rows, append(Row{shiftKey("ShiftLeft", 1.25)}, append(alnum[3], shiftKey("ShiftRight", 2.75))...))
	rows = append(rows, Row{
		ctrlKey("ControlLeft"), cmdKey("MetaLeft"), altKey("AltLeft"),
		spaceKey(),
		altKey("AltRight"), cmdKey("MetaRight"), ctrlKey("ControlRight"),
	})
	return rows
}
