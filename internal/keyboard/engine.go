// Package keyboard implements the key-input state machine: it consumes
// physical and virtual key events against the active layout, maintains
// modifier and deadkey state, and emits committed-text effects.
package keyboard

import (
	"github.com/jkoivu/kbpreview/internal/layout"
)

// Engine is the input state machine. It is single-threaded and
// event-driven: every operation runs to completion before the next is
// processed. It never returns an error; with no active layout every
// operation is a no-op.
type Engine struct {
	layout  *layout.Layout
	mods    layout.ModifierState
	latched latchSet
	pending string // deadkey awaiting its combining partner
	pressed string // key id currently held down, for rendering
}

// latchSet tracks which modifier flags were activated by a virtual
// click and auto-clear after the next committed action.
type latchSet struct {
	shift, alt, cmd, ctrl bool
}

// New returns an engine with no active layout.
func New() *Engine {
	return &Engine{}
}

// SetLayout swaps the active layout as a single assignment and resets
// all input state: deadkey tables and layer sets are layout-specific,
// so pending state must never leak across layouts. The returned effect
// asks the consumer to discard committed text.
func (e *Engine) SetLayout(l *layout.Layout) Effect {
	e.layout = l
	e.ClearState()
	return Effect{Kind: EffectClear}
}

// ClearState resets every modifier flag, click-latch, pending deadkey
// and pressed-key indicator to initial values.
func (e *Engine) ClearState() {
	e.mods = layout.ModifierState{}
	e.latched = latchSet{}
	e.pending = ""
	e.pressed = ""
}

// Layout returns the active layout snapshot, which may be nil.
func (e *Engine) Layout() *layout.Layout { return e.layout }

// ActiveLayer resolves the current modifier state to a layer.
func (e *Engine) ActiveLayer() layout.Layer { return layout.ResolveLayer(e.mods) }

// Modifiers returns the current modifier-state vector.
func (e *Engine) Modifiers() layout.ModifierState { return e.mods }

// Pending returns the deadkey awaiting combination, or "".
func (e *Engine) Pending() string { return e.pending }

// Pressed returns the id of the physically held key, or "".
func (e *Engine) Pressed() string { return e.pressed }

// Latched reports whether a modifier is click-latched (one-shot).
func (e *Engine) Latched(m layout.Modifier) bool {
	switch m {
	case layout.ModShift:
		return e.latched.shift
	case layout.ModAlt:
		return e.latched.alt
	case layout.ModCmd:
		return e.latched.cmd
	case layout.ModCtrl:
		return e.latched.ctrl
	}
	return false
}

// Click processes a virtual key activation from the rendered layout.
func (e *Engine) Click(k *layout.Key) Effect {
	if e.layout == nil || k == nil {
		return Effect{}
	}
	return e.activate(k, false)
}

// KeyDown processes a physical key press resolved by activation code.
func (e *Engine) KeyDown(code string) Effect {
	k := e.layout.KeyByID(code)
	if k == nil {
		return Effect{}
	}
	e.pressed = k.ID
	return e.activate(k, true)
}

// KeyUp processes a physical key release. Only modifier keys react;
// caps-lock ignores release entirely.
func (e *Engine) KeyUp(code string) Effect {
	k := e.layout.KeyByID(code)
	if k == nil {
		return Effect{}
	}
	if e.pressed == k.ID {
		e.pressed = ""
	}
	if k.Type == layout.KeyModifier {
		switch k.Mod {
		case layout.ModShift:
			e.mods.Shift = false
			e.latched.shift = false
		case layout.ModAlt:
			e.mods.Alt = false
			e.latched.alt = false
		case layout.ModCmd:
			e.mods.Cmd = false
			e.latched.cmd = false
		case layout.ModCtrl:
			e.mods.Ctrl = false
			e.latched.ctrl = false
		}
	}
	return Effect{}
}

// KeyForOutput finds a key that produces out on the current layer.
// Used by consumers that map typed characters back to virtual clicks.
func (e *Engine) KeyForOutput(out string) *layout.Key {
	if e.layout == nil || out == "" {
		return nil
	}
	active := e.ActiveLayer()
	for ri := range e.layout.Rows {
		for ki := range e.layout.Rows[ri] {
			k := &e.layout.Rows[ri][ki]
			if k.Type != layout.KeyNormal && k.Type != layout.KeySpace {
				continue
			}
			if layout.OutputFor(k, active) == out {
				return k
			}
		}
	}
	return nil
}

func (e *Engine) activate(k *layout.Key, held bool) Effect {
	switch k.Type {
	case layout.KeyModifier:
		e.toggleModifier(k.Mod, held)
		return Effect{}
	case layout.KeyFunction:
		switch k.ID {
		case "Backspace":
			return e.backspace()
		case "Tab":
			return e.flushAndAppend("\t")
		}
		return Effect{}
	case layout.KeyEnter:
		return e.flushAndAppend("\n")
	default:
		return e.printable(k)
	}
}

func (e *Engine) toggleModifier(m layout.Modifier, held bool) {
	switch m {
	case layout.ModCaps:
		// Caps toggles unconditionally and is never click-latched.
		e.mods.Caps = !e.mods.Caps
	case layout.ModSymbols:
		e.mods.Symbols = !e.mods.Symbols
		if !e.mods.Symbols {
			e.mods.Symbols2 = false
		}
	case layout.ModShift:
		if e.layout.Mobile && e.mods.Symbols {
			// On the symbols layers the shift position pages
			// between symbols-1 and symbols-2.
			e.mods.Symbols2 = !e.mods.Symbols2
			return
		}
		e.mods.Shift, e.latched.shift = press(e.mods.Shift, held)
	case layout.ModAlt:
		e.mods.Alt, e.latched.alt = press(e.mods.Alt, held)
	case layout.ModCmd:
		e.mods.Cmd, e.latched.cmd = press(e.mods.Cmd, held)
	case layout.ModCtrl:
		e.mods.Ctrl, e.latched.ctrl = press(e.mods.Ctrl, held)
	}
}

// press computes the new flag and latch for a hold-style modifier. A
// physical hold pins the flag; a virtual click toggles it and latches
// when toggled on.
func press(flag, held bool) (newFlag, latch bool) {
	if held {
		return true, false
	}
	flag = !flag
	return flag, flag
}

// backspace cancels a pending deadkey without deleting, otherwise asks
// the consumer to delete one unit.
func (e *Engine) backspace() Effect {
	defer e.clearLatches()
	if e.pending != "" {
		e.pending = ""
		return Effect{}
	}
	return Effect{Kind: EffectDeleteBack}
}

// flushAndAppend emits a pending deadkey verbatim, then the suffix.
func (e *Engine) flushAndAppend(suffix string) Effect {
	defer e.clearLatches()
	text := e.pending + suffix
	e.pending = ""
	return appendEffect(text)
}

func (e *Engine) printable(k *layout.Key) Effect {
	out := layout.OutputFor(k, e.ActiveLayer())
	if out == "" {
		return Effect{}
	}
	defer e.clearLatches()

	if e.pending != "" {
		trigger := e.pending
		e.pending = ""
		if composed, ok := e.layout.Deadkeys.Compose(trigger, out); ok {
			return appendEffect(composed)
		}
		// No composition for this pair: commit both, losing nothing.
		return appendEffect(trigger + out)
	}
	if e.layout.Deadkeys.IsTrigger(out) {
		e.pending = out
		return Effect{}
	}
	return appendEffect(out)
}

// clearLatches releases every one-shot modifier after a committed
// character or special action.
func (e *Engine) clearLatches() {
	if e.latched.shift {
		e.mods.Shift = false
	}
	if e.latched.alt {
		e.mods.Alt = false
	}
	if e.latched.cmd {
		e.mods.Cmd = false
	}
	if e.latched.ctrl {
		e.mods.Ctrl = false
	}
	e.latched = latchSet{}
}
