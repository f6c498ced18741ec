// Package kbdfmt models the external multi-platform keyboard definition
// format and parses raw YAML documents into it. The layout transformer
// consumes the parsed structure; it never sees raw bytes.
package kbdfmt

// TransformTable maps a deadkey trigger character to the characters it
// composes with and their results.
type TransformTable map[string]map[string]string

// LayerBundle maps a layer name (default, shift, caps+shift, ...) to a
// newline-delimited layer string.
type LayerBundle map[string]string

// Platform is one per-platform block of a definition: a set of named
// layer bundles keyed by device variant, plus platform-specific deadkey
// transforms that override the definition's top-level table.
type Platform struct {
	Variants   map[string]LayerBundle `yaml:"variants"`
	Transforms TransformTable         `yaml:"transforms"`
}

// Definition is a parsed source keyboard definition.
type Definition struct {
	ID           string              `yaml:"id"`
	Name         string              `yaml:"name"`
	Locale       string              `yaml:"locale"`
	DisplayNames map[string]string   `yaml:"displayNames"`
	Platforms    map[string]Platform `yaml:"platforms"`
	Transforms   TransformTable      `yaml:"transforms"`
}

// PlatformNames returns the platform keys present in the definition.
func (d *Definition) PlatformNames() []string {
	names := make([]string, 0, len(d.Platforms))
	for name := range d.Platforms {
		names = append(names, name)
	}
	return names
}
