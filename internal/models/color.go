package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB display color. Alpha is not persisted; every color
// round-trips through its #RRGGBB hex form.
type Color struct {
	R, G, B uint8
}

// Hex returns the canonical persisted form, e.g. "#FD4C49".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses a #RRGGBB string (leading '#' optional, case
// insensitive). Malformed input yields an error; callers decoding persisted
// rows are expected to skip and log rather than fail the whole listing.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: expected 6 hex digits", s)
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		channels[i] = uint8(v)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}
