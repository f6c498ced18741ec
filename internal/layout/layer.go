package layout

// Layer is one of the fixed, enumerated layer names a key can map an
// output for. Source layer names are validated against this catalogue
// at construction time; unknown names never reach the resolver.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerShift
	LayerCaps
	LayerCapsShift
	LayerAlt
	LayerAltShift
	LayerAltCaps
	LayerCmd
	LayerCmdShift
	LayerCmdAlt
	LayerCmdAltShift
	LayerCtrl
	LayerCtrlShift
	LayerSymbols1
	LayerSymbols2

	layerCount
)

var layerNames = [layerCount]string{
	LayerDefault:     "default",
	LayerShift:       "shift",
	LayerCaps:        "caps",
	LayerCapsShift:   "caps+shift",
	LayerAlt:         "alt",
	LayerAltShift:    "alt+shift",
	LayerAltCaps:     "alt+caps",
	LayerCmd:         "cmd",
	LayerCmdShift:    "cmd+shift",
	LayerCmdAlt:      "cmd+alt",
	LayerCmdAltShift: "cmd+alt+shift",
	LayerCtrl:        "ctrl",
	LayerCtrlShift:   "ctrl+shift",
	LayerSymbols1:    "symbols-1",
	LayerSymbols2:    "symbols-2",
}

func (l Layer) String() string {
	if l < layerCount {
		return layerNames[l]
	}
	return "default"
}

// ParseLayer maps a source layer name to its catalogue entry.
func ParseLayer(name string) (Layer, bool) {
	for l, n := range layerNames {
		if n == name {
			return Layer(l), true
		}
	}
	return LayerDefault, false
}

// ModifierState is the full modifier-state vector. The five desktop
// flags select desktop layers; the two mobile flags override them
// entirely while Symbols is active.
type ModifierState struct {
	Shift bool
	Caps  bool
	Alt   bool
	Cmd   bool
	Ctrl  bool

	Symbols  bool
	Symbols2 bool
}

// layerRule pairs a modifier predicate with the layer it selects.
// Rules are evaluated strictly top to bottom so a less specific
// combination can never mask a more specific one.
type layerRule struct {
	matches func(ModifierState) bool
	layer   Layer
}

var desktopRules = []layerRule{
	{func(s ModifierState) bool { return s.Cmd && s.Alt && s.Shift }, LayerCmdAltShift},
	{func(s ModifierState) bool { return s.Cmd && s.Alt }, LayerCmdAlt},
	{func(s ModifierState) bool { return s.Cmd && s.Shift }, LayerCmdShift},
	{func(s ModifierState) bool { return s.Cmd }, LayerCmd},
	{func(s ModifierState) bool { return s.Alt && s.Shift }, LayerAltShift},
	{func(s ModifierState) bool { return s.Alt && s.Caps }, LayerAltCaps},
	{func(s ModifierState) bool { return s.Alt }, LayerAlt},
	{func(s ModifierState) bool { return s.Ctrl && s.Shift }, LayerCtrlShift},
	{func(s ModifierState) bool { return s.Ctrl }, LayerCtrl},
	{func(s ModifierState) bool { return s.Caps && s.Shift }, LayerCapsShift},
	{func(s ModifierState) bool { return s.Caps }, LayerCaps},
	{func(s ModifierState) bool { return s.Shift }, LayerShift},
	{func(ModifierState) bool { return true }, LayerDefault},
}

// ResolveLayer maps a modifier-state vector to the layer it selects.
// Total over all inputs. Mobile symbols mode overrides every desktop
// modifier.
func ResolveLayer(s ModifierState) Layer {
	if s.Symbols {
		if s.Symbols2 {
			return LayerSymbols2
		}
		return LayerSymbols1
	}
	for _, r := range desktopRules {
		if r.matches(s) {
			return r.layer
		}
	}
	return LayerDefault
}

// OutputFor returns the key's output on the given layer. An empty or
// absent entry falls back to the default layer, except that symbols-2
// first falls back to symbols-1. No other cross-layer fallback exists.
func OutputFor(k *Key, layer Layer) string {
	if k == nil {
		return ""
	}
	if v := k.Layers[layer]; v != "" {
		return v
	}
	if layer == LayerSymbols2 {
		if v := k.Layers[LayerSymbols1]; v != "" {
			return v
		}
	}
	return k.Layers[LayerDefault]
}
