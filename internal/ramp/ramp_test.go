package ramp

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
)

// indexPalette stores i in the blue channel of entry i so positions can be
// read back from sampled colours.
func indexPalette() *Palette {
	var p Palette
	for i := range p {
		p[i] = 0xFF000000 | uint32(i)
	}
	return &p
}

func TestColorRamp_DefaultFallback(t *testing.T) {
	def := style.RGB(0x80, 0x80, 0x80)
	r := New("x", def)
	assert.Equal(t, def, r.Color("never-added-key"))

	r.AddEntry("a", style.Black)
	assert.Equal(t, style.Black, r.Color("a"))

	require.True(t, r.RemoveEntry("a"))
	assert.False(t, r.RemoveEntry("a"))
	assert.Equal(t, def, r.Color("a"))
	assert.Empty(t, r.Keys())
}

func TestColorRamp_KeyOrder(t *testing.T) {
	r := New("x", style.Transparent)
	r.AddEntry("b", style.Black)
	r.AddEntry("a", style.Black)
	r.AddEntry("b", style.White)

	assert.Equal(t, []string{"b", "a"}, r.Keys())
	assert.Equal(t, style.White, r.Color("b"))

	c := r.Clone()
	c.AddEntry("z", style.Black)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3, c.Len())
}

func TestPosition_Clamp(t *testing.T) {
	opts := GradientOptions{Min: 0, Max: 100, Alpha: 255}
	tests := []struct {
		value float64
		want  int
	}{
		{150, 255},
		{-10, 0},
		{0, 0},
		{100, 255},
		{50, 128},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Position(tt.value, opts), "value %v", tt.value)
	}
}

func TestPosition_DividesByMax(t *testing.T) {
	// (v-min)/max, so with min 50 the top of the range is not 255
	opts := GradientOptions{Min: 50, Max: 100}
	assert.Equal(t, 128, Position(100, opts))
	assert.Equal(t, 0, Position(50, opts))

	opts.Normalize = true
	assert.Equal(t, 255, Position(100, opts))
	assert.Equal(t, 0, Position(50, opts))
}

func TestPosition_DegenerateRange(t *testing.T) {
	assert.Equal(t, 255, Position(5, GradientOptions{Min: 0, Max: 0}), "+Inf clamps high")
	assert.Equal(t, 0, Position(-5, GradientOptions{Min: 0, Max: 0}), "-Inf clamps low")
	assert.Equal(t, 0, Position(0, GradientOptions{Min: 0, Max: 0}), "NaN lands on 0")
	assert.Equal(t, 0, Position(10, GradientOptions{Min: 20, Max: 10}), "inverted range goes negative")
}

func TestInterpolate(t *testing.T) {
	p := indexPalette()
	c := Interpolate(p, 150, GradientOptions{Min: 0, Max: 100, Alpha: 77})
	assert.Equal(t, style.Color{R: 0, G: 0, B: 255, A: 77}, c)

	c = Interpolate(p, -10, GradientOptions{Min: 0, Max: 100, Alpha: 200})
	assert.Equal(t, style.Color{A: 200}, c)

	assert.Equal(t, style.Transparent, InterpolateString(p, "  ", GradientOptions{Max: 1, Alpha: 255}))
	assert.Equal(t, style.Transparent, InterpolateString(p, "n/a", GradientOptions{Max: 1, Alpha: 255}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   Mode
	}{
		{"letters", []string{"A", "B", "A"}, ModeCategorical},
		{"numbers", []string{"1", "2.5", "-3e2"}, ModeNumeric},
		{"numbers with blanks", []string{"1", "", "  ", "4"}, ModeNumeric},
		{"one bad value", []string{"1", "2", "three"}, ModeCategorical},
		{"only blanks", []string{"", " "}, ModeCategorical},
		{"empty", nil, ModeCategorical},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.values))
		})
	}
}

func TestNumericRange(t *testing.T) {
	lo, hi, ok := NumericRange([]string{"5", "", "x", "-2", "11.5"})
	require.True(t, ok)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 11.5, hi)

	_, _, ok = NumericRange([]string{"a"})
	assert.False(t, ok)
}

func TestNumericRamp_SkipsBlanks(t *testing.T) {
	p := indexPalette()
	r := NumericRamp("pop", []string{"0", "", "100", " "}, p, GradientOptions{Min: 0, Max: 100, Alpha: 255})

	assert.Equal(t, []string{"0", "100"}, r.Keys())
	assert.Equal(t, uint8(0), r.Color("0").B)
	assert.Equal(t, uint8(255), r.Color("100").B)
	assert.Equal(t, style.Transparent, r.Color(""))
	assert.Equal(t, uint8(0), r.Color("").A)
}

func TestBuild_Categorical(t *testing.T) {
	r, mode := Build("kind", []string{"A", "B", "A"}, Config{})
	require.Equal(t, ModeCategorical, mode)
	assert.Equal(t, 2, r.Len())

	a, ok := r.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, CategoricalColors[0], a)
	b, ok := r.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, CategoricalColors[1], b)
}

func TestCategoricalRamp_OverridesAndWrap(t *testing.T) {
	values := make([]string, 0, len(CategoricalColors)+1)
	for i := 0; i <= len(CategoricalColors); i++ {
		values = append(values, string(rune('a'+i)))
	}
	red := style.RGB(255, 0, 0)
	r := CategoricalRamp("x", values, map[string]style.Color{"b": red}, style.White)

	assert.Equal(t, red, r.Color("b"))
	assert.Equal(t, CategoricalColors[0], r.Color(values[len(values)-1]), "positions wrap")
	assert.Equal(t, style.White, r.Color("unseen"))
}

func TestBuild_NumericAutoRange(t *testing.T) {
	p := indexPalette()
	r, mode := Build("pop", []string{"0", "50", "200"}, Config{
		Palette:   p,
		Gradient:  GradientOptions{Alpha: 255},
		AutoRange: true,
	})
	require.Equal(t, ModeNumeric, mode)
	assert.Equal(t, uint8(255), r.Color("200").B)
	assert.Equal(t, uint8(64), r.Color("50").B)
	assert.Equal(t, style.Transparent, r.Color("999"))

	grey := style.RGB(0x80, 0x80, 0x80)
	r, _ = Build("pop", []string{"1", "2"}, Config{DefaultColor: grey})
	assert.Equal(t, grey, r.Color("3"), "default applies to numeric ramps")
}

func TestBlend(t *testing.T) {
	p := Blend(style.Black, style.White)
	assert.Equal(t, style.Black, p.At(0))
	assert.Equal(t, style.White, p.At(PaletteSize-1))

	mid := p.At(128)
	assert.Greater(t, mid.R, uint8(0))
	assert.Less(t, mid.R, uint8(255))
	assert.Equal(t, uint8(255), mid.A)

	flat := Blend(style.White)
	assert.Equal(t, style.White, flat.At(77))
}

func TestBuiltinPalettes(t *testing.T) {
	names := PaletteNames()
	require.NotEmpty(t, names)
	for _, n := range names {
		p, ok := BuiltinPalette(n)
		require.True(t, ok, n)
		assert.Equal(t, uint8(255), p.At(0).A, n)
	}
	_, ok := BuiltinPalette("nope")
	assert.False(t, ok)
}

func TestPaletteFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 512, 3))
	for x := 0; x < 512; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x / 2), A: 255})
		}
	}
	p, err := PaletteFromImage(img)
	require.NoError(t, err)
	for _, i := range []int{0, 1, 100, 255} {
		assert.Equal(t, uint8(i), p.At(i).R)
	}

	_, err = PaletteFromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.ErrorIs(t, err, ErrPaletteSize)
}

func TestLoadPalette(t *testing.T) {
	strip := image.NewNRGBA(image.Rect(0, 0, 256, 1))
	for x := 0; x < 256; x++ {
		strip.Set(x, 0, color.NRGBA{G: uint8(x), A: 255})
	}
	res := resource.Map{"gradients/greens.png": strip}

	p, err := LoadPalette(res, "greens.png")
	require.NoError(t, err)
	assert.Equal(t, uint8(200), p.At(200).G)

	_, err = LoadPalette(res, "Heat")
	require.NoError(t, err, "built-ins need no provider lookup")

	_, err = LoadPalette(res, "missing.png")
	assert.ErrorIs(t, err, resource.ErrNotFound)

	_, err = LoadPalette(nil, "missing.png")
	assert.ErrorIs(t, err, resource.ErrNotFound)
}
