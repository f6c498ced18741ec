package keyboard

import (
	"testing"

	"github.com/jkoivu/kbpreview/internal/kbdfmt"
	"github.com/jkoivu/kbpreview/internal/layout"
)

func desktopLayout(t *testing.T) *layout.Layout {
	t.Helper()
	def := &kbdfmt.Definition{
		ID:   "test",
		Name: "Test",
		Platforms: map[string]kbdfmt.Platform{
			"macos": {
				Variants: map[string]kbdfmt.LayerBundle{
					"primary": {
						"default":    "q w e a z ´ ж",
						"shift":      "Q W E A Z ~ Ж",
						"caps":       "Q W E A Z ´ Ж",
						"caps+shift": "q w e a z ~ ж",
						"alt":        "@ ł € å ≤ ¨ …",
					},
				},
			},
		},
		Transforms: kbdfmt.TransformTable{
			"´": {"a": "á", "e": "é"},
			"¨": {"o": "ö"},
		},
	}
	l, err := layout.Transform(def, layout.PlatformMacOS, "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	return l
}

// key ids for the first source row of desktopLayout, in order:
// q=Backquote w=Digit1 e=Digit2 a=Digit3 z=Digit4 ´=Digit5 ж=Digit6
const (
	keyQ    = "Backquote"
	keyW    = "Digit1"
	keyE    = "Digit2"
	keyA    = "Digit3"
	keyZ    = "Digit4"
	keyDead = "Digit5"
	keyZhe  = "Digit6"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	e.SetLayout(desktopLayout(t))
	return e
}

func click(t *testing.T, e *Engine, id string) Effect {
	t.Helper()
	k := e.Layout().KeyByID(id)
	if k == nil {
		t.Fatalf("no key with id %s", id)
	}
	return e.Click(k)
}

func wantAppend(t *testing.T, eff Effect, text string) {
	t.Helper()
	if eff.Kind != EffectAppend || eff.Text != text {
		t.Fatalf("got effect %+v, want append %q", eff, text)
	}
}

func wantNone(t *testing.T, eff Effect) {
	t.Helper()
	if eff.Kind != EffectNone {
		t.Fatalf("got effect %+v, want none", eff)
	}
}

func TestPrintableCommitsDirectly(t *testing.T) {
	e := newTestEngine(t)
	wantAppend(t, click(t, e, keyQ), "q")
}

func TestDeadkeyComposition(t *testing.T) {
	e := newTestEngine(t)

	wantNone(t, click(t, e, keyDead))
	if e.Pending() != "´" {
		t.Fatalf("pending = %q", e.Pending())
	}
	wantAppend(t, click(t, e, keyA), "á")
	if e.Pending() != "" {
		t.Fatal("pending not cleared after composition")
	}
}

func TestDeadkeyFallbackConcatenation(t *testing.T) {
	e := newTestEngine(t)

	wantNone(t, click(t, e, keyDead))
	wantAppend(t, click(t, e, keyZ), "´z")
	if e.Pending() != "" {
		t.Fatal("pending not cleared after fallback")
	}
}

func TestOneShotShift(t *testing.T) {
	e := newTestEngine(t)

	wantNone(t, click(t, e, "ShiftLeft"))
	if !e.Modifiers().Shift || !e.Latched(layout.ModShift) {
		t.Fatal("click should latch shift")
	}
	wantAppend(t, click(t, e, keyQ), "Q")
	if e.Modifiers().Shift {
		t.Fatal("latch should clear after one committed character")
	}
	wantAppend(t, click(t, e, keyQ), "q")
}

func TestRepeatModifierClickTogglesOff(t *testing.T) {
	e := newTestEngine(t)

	click(t, e, "ShiftLeft")
	click(t, e, "ShiftLeft")
	if e.Modifiers().Shift || e.Latched(layout.ModShift) {
		t.Fatal("second click should toggle shift off")
	}
}

func TestHeldShift(t *testing.T) {
	e := newTestEngine(t)

	wantNone(t, e.KeyDown("ShiftLeft"))
	wantAppend(t, e.KeyDown(keyQ), "Q")
	wantAppend(t, e.KeyDown(keyW), "W")
	if !e.Modifiers().Shift {
		t.Fatal("held shift must survive committed characters")
	}
	e.KeyUp("ShiftLeft")
	wantAppend(t, e.KeyDown(keyE), "e")
}

func TestCapsShiftInversion(t *testing.T) {
	e := newTestEngine(t)

	click(t, e, "CapsLock")
	wantAppend(t, click(t, e, keyQ), "Q")
	wantAppend(t, click(t, e, keyZhe), "Ж")

	// caps AND shift -> lowercase
	e.KeyDown("ShiftLeft")
	wantAppend(t, e.KeyDown(keyQ), "q")
	wantAppend(t, e.KeyDown(keyZhe), "ж")
	e.KeyUp("ShiftLeft")

	// caps persists; it is a toggle, not a latch
	wantAppend(t, click(t, e, keyQ), "Q")
	click(t, e, "CapsLock")
	wantAppend(t, click(t, e, keyQ), "q")
}

func TestBackspaceCancelsPendingDeadkey(t *testing.T) {
	e := newTestEngine(t)

	click(t, e, keyDead)
	eff := click(t, e, "Backspace")
	wantNone(t, eff)
	if e.Pending() != "" {
		t.Fatal("backspace should cancel the pending deadkey")
	}

	eff = click(t, e, "Backspace")
	if eff.Kind != EffectDeleteBack {
		t.Fatalf("plain backspace should request deletion, got %+v", eff)
	}
}

func TestEnterAndTabFlushPendingDeadkey(t *testing.T) {
	e := newTestEngine(t)

	click(t, e, keyDead)
	wantAppend(t, click(t, e, "Enter"), "´\n")

	click(t, e, keyDead)
	wantAppend(t, click(t, e, "Tab"), "´\t")
}

func TestBackspaceClearsLatches(t *testing.T) {
	e := newTestEngine(t)

	click(t, e, "ShiftLeft")
	click(t, e, "Backspace")
	if e.Modifiers().Shift {
		t.Fatal("backspace should consume the shift latch")
	}
}

func TestPendingDeadkeyConsumesLatch(t *testing.T) {
	e := newTestEngine(t)

	// shift+´ yields "~", which is not a trigger: it commits directly
	click(t, e, "ShiftLeft")
	wantAppend(t, click(t, e, keyDead), "~")
	if e.Pending() != "" {
		t.Fatal("non-trigger output must not go pending")
	}

	// alt+´ yields "¨", a trigger: pending is set and the latch consumed
	click(t, e, "AltLeft")
	if got := e.ActiveLayer(); got != layout.LayerAlt {
		t.Fatalf("active layer = %s", got)
	}
	wantNone(t, click(t, e, keyDead))
	if e.Pending() != "¨" {
		t.Fatalf("pending = %q", e.Pending())
	}
	if e.Modifiers().Alt {
		t.Fatal("setting a pending deadkey should consume the alt latch")
	}
	wantAppend(t, click(t, e, keyA), "¨a")
}

func TestSetLayoutResetsState(t *testing.T) {
	e := newTestEngine(t)

	click(t, e, keyDead)
	click(t, e, "ShiftLeft")
	click(t, e, "CapsLock")

	eff := e.SetLayout(desktopLayout(t))
	if eff.Kind != EffectClear {
		t.Fatalf("layout swap should request a clear, got %+v", eff)
	}
	if e.Pending() != "" || e.Modifiers() != (layout.ModifierState{}) || e.Pressed() != "" {
		t.Fatal("state must not leak across layouts")
	}
}

func TestNilLayoutIsNoOp(t *testing.T) {
	e := New()
	wantNone(t, e.KeyDown("Backquote"))
	wantNone(t, e.KeyUp("Backquote"))
	wantNone(t, e.Click(nil))
	if e.KeyForOutput("q") != nil {
		t.Fatal("no layout, no keys")
	}
}

func TestEmptyOutputIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	// KeyM has no source cell on any layer
	wantNone(t, e.KeyDown("KeyM"))
}

func TestKeyForOutput(t *testing.T) {
	e := newTestEngine(t)
	k := e.KeyForOutput("ж")
	if k == nil || k.ID != keyZhe {
		t.Fatalf("KeyForOutput(ж) = %+v", k)
	}
	if e.KeyForOutput("Ж") != nil {
		t.Fatal("shifted output should not resolve on the default layer")
	}
	click(t, e, "ShiftLeft")
	if k := e.KeyForOutput("Ж"); k == nil || k.ID != keyZhe {
		t.Fatal("shifted output should resolve while shift is active")
	}
}

func TestPressedTracksPhysicalKeys(t *testing.T) {
	e := newTestEngine(t)
	e.KeyDown(keyQ)
	if e.Pressed() != keyQ {
		t.Fatalf("pressed = %q", e.Pressed())
	}
	e.KeyUp(keyQ)
	if e.Pressed() != "" {
		t.Fatal("release should clear the pressed indicator")
	}
}
