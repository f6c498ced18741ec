package layout

import (
	"testing"

	"github.com/jkoivu/kbpreview/internal/kbdfmt"
)

func mobileDefinition() *kbdfmt.Definition {
	return &kbdfmt.Definition{
		ID:   "sms-test",
		Name: "Test Mobile",
		Platforms: map[string]kbdfmt.Platform{
			"ios": {
				Variants: map[string]kbdfmt.LayerBundle{
					"iphone": {
						"default":   "q w \\s{spacer} e\n\\s{shift:1.5} z x \\s{backspace}",
						"shift":     "Q W E\n\\s{shift:1.5} Z X \\s{backspace}",
						"symbols-1": "1 2 3\n\\s{shift:1.5} + - \\s{backspace}",
						"symbols-2": "[ ] {\n\\s{shift:1.5} = _ \\s{backspace}",
					},
				},
			},
			"android": {
				Variants: map[string]kbdfmt.LayerBundle{
					"phone": {
						"default": "q w e \\s{symbols}",
					},
				},
			},
		},
	}
}

func TestTransformMobileSpacers(t *testing.T) {
	l, err := Transform(mobileDefinition(), PlatformIOS, "iphone")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if !l.Mobile {
		t.Fatal("ios layout should be mobile")
	}

	row0 := l.Rows[0]
	if len(row0) != 3 {
		t.Fatalf("spacer must contribute zero keys, row has %d", len(row0))
	}
	// the spacer must not shift the third key's layer mapping
	third := row0[2]
	if got := OutputFor(&third, LayerDefault); got != "e" {
		t.Fatalf("third key default = %q", got)
	}
	if got := OutputFor(&third, LayerShift); got != "E" {
		t.Fatalf("third key shift = %q", got)
	}
}

func TestTransformMobileSpecials(t *testing.T) {
	l, err := Transform(mobileDefinition(), PlatformIOS, "")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}

	row1 := l.Rows[1]
	if row1[0].ID != "Shift" || row1[0].Mod != ModShift {
		t.Fatalf("row 1 should start with the shift key, got %+v", row1[0])
	}
	if row1[0].Width != 1.5 {
		t.Fatalf("width annotation should override unit width, got %v", row1[0].Width)
	}
	if row1[len(row1)-1].ID != "Backspace" {
		t.Fatal("row 1 should end with backspace")
	}
}

func TestTransformMobileBottomRow(t *testing.T) {
	ios, err := Transform(mobileDefinition(), PlatformIOS, "")
	if err != nil {
		t.Fatalf("ios transform: %v", err)
	}
	bottom := ios.Rows[len(ios.Rows)-1]
	ids := make([]string, len(bottom))
	for i, k := range bottom {
		ids[i] = k.ID
	}
	want := []string{"Symbols", "Space", "Enter"}
	if len(ids) != 3 || ids[0] != want[0] || ids[1] != want[1] || ids[2] != want[2] {
		t.Fatalf("ios bottom row = %v, want %v", ids, want)
	}

	android, err := Transform(mobileDefinition(), PlatformAndroid, "")
	if err != nil {
		t.Fatalf("android transform: %v", err)
	}
	bottom = android.Rows[len(android.Rows)-1]
	if len(bottom) != 2 || bottom[0].ID != "Space" || bottom[1].ID != "Enter" {
		t.Fatal("android bottom row must not carry a synthetic symbols key")
	}
}

func TestTransformMobileVariantFallback(t *testing.T) {
	l, err := Transform(mobileDefinition(), PlatformIOS, "ipad-12in")
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if l.Variant != "iphone" {
		t.Fatalf("unknown variant should fall back to primary, got %q", l.Variant)
	}
}
