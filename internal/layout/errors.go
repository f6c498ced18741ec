package layout

import (
	"errors"
	"fmt"
)

// ErrNoPlatforms is returned when a source definition contains zero
// recognized platforms.
var ErrNoPlatforms = errors.New("keyboard definition lists no supported platforms")

// UnsupportedPlatformError is returned when the requested platform is
// absent from the source definition.
type UnsupportedPlatformError struct {
	Platform Platform
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("platform %q not present in keyboard definition", string(e.Platform))
}

// MissingLayerError is returned when the platform is present but holds
// no default layer for the requested platform/variant.
type MissingLayerError struct {
	Platform Platform
	Variant  string
}

func (e *MissingLayerError) Error() string {
	if e.Variant != "" {
		return fmt.Sprintf("platform %q variant %q has no default layer", string(e.Platform), e.Variant)
	}
	return fmt.Sprintf("platform %q has no default layer", string(e.Platform))
}
