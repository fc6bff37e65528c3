package badgeformat

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses a #RGB or #RRGGBB hex color string.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: missing '#'", s)
	}
	hex := s[1:]

	parse := func(part string) (uint8, error) {
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q", s)
		}
		return uint8(v), nil
	}

	var parts [3]string
	switch len(hex) {
	case 3:
		for i := 0; i < 3; i++ {
			parts[i] = strings.Repeat(hex[i:i+1], 2)
		}
	case 6:
		for i := 0; i < 3; i++ {
			parts[i] = hex[i*2 : i*2+2]
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: expected 3 or 6 digits", s)
	}

	r, err := parse(parts[0])
	if err != nil {
		return color.RGBA{}, err
	}
	g, err := parse(parts[1])
	if err != nil {
		return color.RGBA{}, err
	}
	b, err := parse(parts[2])
	if err != nil {
		return color.RGBA{}, err
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// BackgroundColor resolves a background value to a concrete color. The
// transparent sentinel maps to white, matching the print output which has
// no alpha channel. Unparseable values also fall back to white.
func BackgroundColor(background string) color.RGBA {
	if background == "" || background == BackgroundTransparent {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	c, err := ParseHexColor(background)
	if err != nil {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return c
}

// DecimalTriplet encodes a color value as the "R-G-B" decimal triplet the
// external QR image service expects. The transparent sentinel encodes the
// same as white, "255-255-255".
func DecimalTriplet(value string) string {
	c := BackgroundColor(value)
	return fmt.Sprintf("%d-%d-%d", c.R, c.G, c.B)
}
