// Package layout holds the internal keyboard layout model and the
// transformer that builds it from a parsed source definition.
package layout

// KeyType classifies how the input engine treats a key.
type KeyType uint8

const (
	KeyNormal KeyType = iota
	KeySpace
	KeyEnter
	KeyModifier
	KeyFunction
)

// Modifier identifies which modifier flag a KeyModifier key drives.
type Modifier uint8

const (
	ModNone Modifier = iota
	ModShift
	ModCaps
	ModAlt
	ModCmd
	ModCtrl
	ModSymbols
)

// Key is a single physical or virtual key with its per-layer outputs.
// Layers always contains LayerDefault, possibly as the empty string.
type Key struct {
	ID     string
	Layers map[Layer]string
	Label  string
	Width  float64 // key units, 1.0 = one standard cap
	Height float64
	Type   KeyType
	Mod    Modifier
}

// Row is an ordered sequence of keys, left to right.
type Row []Key

// DeadkeyTable maps a deadkey trigger character to the composition map
// for the character typed after it. A missing combination is a valid
// state, not an error.
type DeadkeyTable map[string]map[string]string

// Compose looks up the composed character for trigger followed by next.
func (t DeadkeyTable) Compose(trigger, next string) (string, bool) {
	m, ok := t[trigger]
	if !ok {
		return "", false
	}
	out, ok := m[next]
	return out, ok
}

// IsTrigger reports whether s starts a deadkey sequence.
func (t DeadkeyTable) IsTrigger(s string) bool {
	_, ok := t[s]
	return ok
}

// Platform tags the source platform a layout was built for.
type Platform string

const (
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
	PlatformChrome  Platform = "chrome"
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// Platforms lists recognized platforms in fallback preference order.
var Platforms = []Platform{PlatformMacOS, PlatformWindows, PlatformChrome, PlatformIOS, PlatformAndroid}

// Mobile reports whether the platform uses the mobile source format.
func (p Platform) Mobile() bool {
	return p == PlatformAndroid || p == PlatformIOS
}

// Layout is the immutable internal layout model. It is built once by
// Transform and replaced wholesale when the source, platform or variant
// changes; it is never mutated in place.
type Layout struct {
	ID       string
	Name     string
	Rows     []Row
	Deadkeys DeadkeyTable
	Platform Platform
	Variant  string
	Mobile   bool

	byID map[string]*Key
}

// KeyByID resolves a physical key-activation code against the layout's
// flattened key-id set. Returns nil when the code is not present.
func (l *Layout) KeyByID(id string) *Key {
	if l == nil {
		return nil
	}
	return l.byID[id]
}

// indexKeys builds the flattened id index. Called once at construction.
func (l *Layout) indexKeys() {
	l.byID = make(map[string]*Key)
	for ri := range l.Rows {
		for ki := range l.Rows[ri] {
			k := &l.Rows[ri][ki]
			if _, dup := l.byID[k.ID]; !dup {
				l.byID[k.ID] = k
			}
		}
	}
}
