package keyboard

import (
	"testing"

	"github.com/jkoivu/kbpreview/internal/kbdfmt"
	"github.com/jkoivu/kbpreview/internal/layout"
)

func mobileLayout(t *testing.T) *layout.Layout {
	t.Helper()
	def := &kbdfmt.Definition{
		ID:   "test-mobile",
		Name: "Test Mobile",
		Platforms: map[string]kbdfmt.Platform{
			"ios": {
				Variants: map[string]kbdfmt.LayerBundle{
					"iphone": {
						"default":   `q w e` + "\n" + `\s{shift:1.5} z x \s{backspace}`,
						"shift":     `Q W E` + "\n" + `\s{shift:1.5} Z X \s{backspace}`,
						"symbols-1": `1 2 3` + "\n" + `\s{shift:1.5} + - \s{backspace}`,
						"symbols-2": `[ ] {` + "\n" + `\s{shift:1.5} = _ \s{backspace}`,
					},
				},
			},
		},
	}
	l, err := layout.Transform(def, layout.PlatformIOS, "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return l
}

func TestMobileSymbolsToggle(t *testing.T) {
	e := New()
	e.SetLayout(mobileLayout(t))

	click(t, e, "Symbols")
	if got := e.ActiveLayer(); got != layout.LayerSymbols1 {
		t.Fatalf("active layer = %s", got)
	}
	wantAppend(t, click(t, e, "r0c0"), "1")

	click(t, e, "Symbols")
	if got := e.ActiveLayer(); got != layout.LayerDefault {
		t.Fatalf("active layer after toggle off = %s", got)
	}
	wantAppend(t, click(t, e, "r0c0"), "q")
}

func TestMobileShiftPagesSymbols(t *testing.T) {
	e := New()
	e.SetLayout(mobileLayout(t))

	click(t, e, "Symbols")
	click(t, e, "Shift")
	if got := e.ActiveLayer(); got != layout.LayerSymbols2 {
		t.Fatalf("shift on symbols should page, got %s", got)
	}
	wantAppend(t, click(t, e, "r0c0"), "[")
	if e.Modifiers().Shift {
		t.Fatal("paging must not set the shift flag")
	}

	click(t, e, "Shift")
	if got := e.ActiveLayer(); got != layout.LayerSymbols1 {
		t.Fatalf("second shift should page back, got %s", got)
	}

	// leaving the symbols layers drops the page with them
	click(t, e, "Shift")
	click(t, e, "Symbols")
	if e.Modifiers().Symbols2 {
		t.Fatal("symbols off must force the second page off")
	}
	if got := e.ActiveLayer(); got != layout.LayerDefault {
		t.Fatalf("active layer = %s", got)
	}
}

func TestMobileShiftOffSymbolsActsNormally(t *testing.T) {
	e := New()
	e.SetLayout(mobileLayout(t))

	click(t, e, "Shift")
	if !e.Modifiers().Shift {
		t.Fatal("shift should latch when symbols is inactive")
	}
	wantAppend(t, click(t, e, "r0c0"), "Q")
	wantAppend(t, click(t, e, "r0c0"), "q")
}
