package layout

import (
	"fmt"

	"github.com/jkoivu/kbpreview/internal/kbdfmt"
)

// Transform converts a parsed source definition into the internal
// layout model for one platform and device variant. It is pure: the
// same definition always yields the same layout, and the definition is
// never mutated. On failure no partial Layout is produced.
func Transform(def *kbdfmt.Definition, platform Platform, variant string) (*Layout, error) {
	if !hasAnyPlatform(def) {
		return nil, ErrNoPlatforms
	}
	src, ok := def.Platforms[string(platform)]
	if !ok {
		return nil, &UnsupportedPlatformError{Platform: platform}
	}

	resolved := resolveVariant(src, platform, variant)
	bundle := src.Variants[resolved]
	if bundle == nil || bundle["default"] == "" {
		return nil, &MissingLayerError{Platform: platform, Variant: resolved}
	}

	l := &Layout{
		ID:       def.ID,
		Name:     displayName(def, platform, resolved),
		Deadkeys: mergeTransforms(def.Transforms, src.Transforms),
		Platform: platform,
		Variant:  resolved,
		Mobile:   platform.Mobile(),
	}
	if l.Mobile {
		l.Rows = buildMobileRows(tokenizeBundle(bundle), platform)
	} else {
		l.Rows = buildDesktopRows(parseBundle(bundle))
	}
	l.indexKeys()
	return l, nil
}

func hasAnyPlatform(def *kbdfmt.Definition) bool {
	for _, p := range Platforms {
		if _, ok := def.Platforms[string(p)]; ok {
			return true
		}
	}
	return false
}

// primaryVariant is the variant a platform falls back to when the
// requested one is absent or unknown. Desktop platforms nest their
// layers under a single primary group.
func primaryVariant(p Platform) string {
	switch p {
	case PlatformIOS:
		return "iphone"
	case PlatformAndroid:
		return "phone"
	default:
		return "primary"
	}
}

func resolveVariant(src kbdfmt.Platform, platform Platform, variant string) string {
	if variant != "" {
		if _, ok := src.Variants[variant]; ok {
			return variant
		}
	}
	return primaryVariant(platform)
}

// mergeTransforms builds the layout's deadkey table. Top-level
// cross-platform entries are the base; platform-specific entries
// override same-key entries and add new triggers.
func mergeTransforms(base, override kbdfmt.TransformTable) DeadkeyTable {
	out := make(DeadkeyTable, len(base)+len(override))
	for trigger, m := range base {
		inner := make(map[string]string, len(m))
		for k, v := range m {
			inner[k] = v
		}
		out[trigger] = inner
	}
	for trigger, m := range override {
		inner, ok := out[trigger]
		if !ok {
			inner = make(map[string]string, len(m))
			out[trigger] = inner
		}
		for k, v := range m {
			inner[k] = v
		}
	}
	return out
}

// displayName picks the layout's presentation name: localized name,
// then locale code, then a synthesized fallback.
func displayName(def *kbdfmt.Definition, platform Platform, variant string) string {
	if n := def.DisplayNames[def.Locale]; n != "" {
		return n
	}
	if def.Locale != "" {
		return def.Locale
	}
	tag := string(platform)
	if variant != "" && variant != "primary" {
		tag += " " + variant
	}
	return fmt.Sprintf("%s - %s (%s)", def.ID, def.Name, tag)
}

// parseBundle parses every recognized layer string of a desktop bundle
// into a row-by-column token grid. Unknown layer names are skipped.
func parseBundle(bundle kbdfmt.LayerBundle) map[Layer][][]string {
	grids := make(map[Layer][][]string, len(bundle))
	for name, src := range bundle {
		layer, ok := ParseLayer(name)
		if !ok {
			continue
		}
		grids[layer] = parseGrid(src)
	}
	return grids
}

// tokenizeBundle runs the mobile tokenizer over every recognized layer,
// dropping spacer tokens so they consume no physical position.
func tokenizeBundle(bundle kbdfmt.LayerBundle) map[Layer][][]token {
	grids := make(map[Layer][][]token, len(bundle))
	for name, src := range bundle {
		layer, ok := ParseLayer(name)
		if !ok {
			continue
		}
		grids[layer] = tokenizeGrid(src)
	}
	return grids
}
