// Package style contains the appearance descriptors a map theme is built from:
// colours, zoom visibility, label and outline rules, and the icon, line and
// polygon style variants.
package style

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
)

var (
	// ErrHexLength is returned when a hex colour is not exactly 8 digits.
	ErrHexLength = errors.New("hex colour must be 8 digits")
	// ErrHexDigit is returned when a hex colour contains a non-hex character.
	ErrHexDigit = errors.New("invalid hex digit in colour")
)

// Color is a non-premultiplied 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Common colours.
var (
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Transparent = Color{0, 0, 0, 0}
)

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromRGB unpacks the low 24 bits of a packed 0xRRGGBB int and attaches alpha.
// Any bits above the low 24 are ignored.
func FromRGB(packed uint32, alpha uint8) Color {
	return Color{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
		A: alpha,
	}
}

// FromARGB unpacks a 0xAARRGGBB int.
func FromARGB(argb uint32) Color {
	return FromRGB(argb, uint8(argb>>24))
}

// FromColor converts any image/color value.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// ARGB packs the colour as 0xAARRGGBB.
func (c Color) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// WithAlpha returns the colour with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// HexStandard encodes the colour as RRGGBBAA.
func (c Color) HexStandard() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// HexAlphabetical encodes the colour in KML order, AABBGGRR.
func (c Color) HexAlphabetical() string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.A, c.B, c.G, c.R)
}

// CSS returns a #rrggbb string, dropping alpha.
func (c Color) CSS() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String returns the standard hex encoding.
func (c Color) String() string {
	return c.HexStandard()
}

// ParseHexStandard parses an RRGGBBAA string.
func ParseHexStandard(s string) (Color, error) {
	b, err := hexBytes(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

// ParseHexAlphabetical parses a KML AABBGGRR string.
func ParseHexAlphabetical(s string) (Color, error) {
	b, err := hexBytes(s)
	if err != nil {
		return Color{}, err
	}
	return Color{A: b[0], B: b[1], G: b[2], R: b[3]}, nil
}

// ColorFromHex parses RRGGBBAA, logging and returning black on failure.
func ColorFromHex(s string) Color {
	c, err := ParseHexStandard(s)
	if err != nil {
		slog.Warn("invalid colour, using black", "value", s, "err", err)
		return Black
	}
	return c
}

// ColorFromKMLHex parses AABBGGRR, logging and returning black on failure.
func ColorFromKMLHex(s string) Color {
	c, err := ParseHexAlphabetical(s)
	if err != nil {
		slog.Warn("invalid KML colour, using black", "value", s, "err", err)
		return Black
	}
	return c
}

func hexBytes(s string) ([4]byte, error) {
	var out [4]byte
	if len(s) != 8 {
		return out, fmt.Errorf("%w: %q", ErrHexLength, s)
	}
	for i := range out {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return out, fmt.Errorf("%w: %q", ErrHexDigit, s)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// MarshalText encodes the colour as RRGGBBAA.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.HexStandard()), nil
}

// UnmarshalText parses RRGGBBAA strictly.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHexStandard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
