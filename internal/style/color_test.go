package style

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRoundTrip(t *testing.T) {
	colors := []Color{
		Black,
		White,
		Transparent,
		{R: 0x12, G: 0x34, B: 0x56, A: 0x78},
		{R: 0x01, G: 0x02, B: 0x03, A: 0x04},
		{R: 0xFF, G: 0x00, B: 0x80, A: 0x7F},
	}
	for _, c := range colors {
		std, err := ParseHexStandard(c.HexStandard())
		require.NoError(t, err)
		assert.Equal(t, c, std)

		kml, err := ParseHexAlphabetical(c.HexAlphabetical())
		require.NoError(t, err)
		assert.Equal(t, c, kml)
	}
}

func TestHexOrdering(t *testing.T) {
	c := Color{R: 0x11, G: 0x22, B: 0x33, A: 0x44}
	assert.Equal(t, "11223344", c.HexStandard())
	assert.Equal(t, "44332211", c.HexAlphabetical())

	// one digit components are zero padded
	assert.Equal(t, "01020304", Color{R: 1, G: 2, B: 3, A: 4}.HexStandard())
}

func TestParseHex_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "six digits", input: "FF0000", want: ErrHexLength},
		{name: "nine digits", input: "FF00000FF", want: ErrHexLength},
		{name: "empty", input: "", want: ErrHexLength},
		{name: "bad digit", input: "GG0000FF", want: ErrHexDigit},
		{name: "sign", input: "+F0000FF", want: ErrHexDigit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHexStandard(tt.input)
			assert.ErrorIs(t, err, tt.want)
			_, err = ParseHexAlphabetical(tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestColorFromHex_DefaultsToBlack(t *testing.T) {
	assert.Equal(t, Black, ColorFromHex("nothex"))
	assert.Equal(t, Black, ColorFromKMLHex("123"))
	assert.Equal(t, RGB(0xFF, 0, 0), ColorFromHex("FF0000FF"))
	assert.Equal(t, RGB(0xFF, 0, 0), ColorFromKMLHex("FF0000FF"))
}

func TestPackedInts(t *testing.T) {
	c := FromARGB(0x80FF8040)
	assert.Equal(t, Color{R: 0xFF, G: 0x80, B: 0x40, A: 0x80}, c)
	assert.Equal(t, uint32(0x80FF8040), c.ARGB())

	// high byte is ignored when unpacking 24-bit RGB
	assert.Equal(t, Color{R: 0x12, G: 0x34, B: 0x56, A: 9}, FromRGB(0xFF123456, 9))
}

func TestColorImplementsImageColor(t *testing.T) {
	var c color.Color = Color{R: 255, G: 0, B: 0, A: 128}
	got := FromColor(c)
	assert.Equal(t, Color{R: 255, G: 0, B: 0, A: 128}, got)
	assert.Equal(t, "#ff0000", got.CSS())
}

func TestColorText(t *testing.T) {
	c := RGB(1, 2, 3)
	b, err := c.MarshalText()
	require.NoError(t, err)

	var back Color
	require.NoError(t, back.UnmarshalText(b))
	assert.Equal(t, c, back)
	assert.Error(t, back.UnmarshalText([]byte("zz")))
}
