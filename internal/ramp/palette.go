package ramp

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
)

// PaletteSize is the number of entries in a gradient palette.
const PaletteSize = 256

// ErrPaletteSize is returned for gradient images too small to sample.
var ErrPaletteSize = errors.New("gradient image has no pixels")

// Palette is a gradient sampled into packed 0xAARRGGBB ints.
type Palette [PaletteSize]uint32

// At returns entry i as a colour.
func (p *Palette) At(i int) style.Color {
	return style.FromARGB(p[i])
}

// PaletteFromImage samples a horizontal gradient strip along its middle row.
// Narrow images are stretched, wide ones are subsampled.
func PaletteFromImage(img image.Image) (Palette, error) {
	var p Palette
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return p, ErrPaletteSize
	}
	y := b.Min.Y + b.Dy()/2
	for i := range p {
		x := b.Min.X + i*b.Dx()/PaletteSize
		p[i] = style.FromColor(img.At(x, y)).ARGB()
	}
	return p, nil
}

// LoadPalette returns a built-in palette by name, or decodes the gradient
// image of that name through res.
func LoadPalette(res resource.Provider, name string) (Palette, error) {
	if p, ok := BuiltinPalette(name); ok {
		return p, nil
	}
	if res == nil {
		return Palette{}, fmt.Errorf("palette %q: %w", name, resource.ErrNotFound)
	}
	img, err := resource.Gradient(res, name)
	if err != nil {
		return Palette{}, fmt.Errorf("palette %q: %w", name, err)
	}
	return PaletteFromImage(img)
}

// Blend builds a palette by interpolating evenly spaced stops in Lab space.
// A single stop gives a flat palette.
func Blend(stops ...style.Color) Palette {
	var p Palette
	switch len(stops) {
	case 0:
		return p
	case 1:
		for i := range p {
			p[i] = stops[0].ARGB()
		}
		return p
	}

	cs := make([]colorful.Color, len(stops))
	for i, s := range stops {
		cs[i] = colorful.Color{R: float64(s.R) / 255, G: float64(s.G) / 255, B: float64(s.B) / 255}
	}
	segments := len(stops) - 1
	for i := range p {
		t := float64(i) / float64(PaletteSize-1) * float64(segments)
		seg := int(t)
		if seg >= segments {
			seg = segments - 1
		}
		c := cs[seg].BlendLab(cs[seg+1], t-float64(seg)).Clamped()
		r, g, b := c.RGB255()
		p[i] = style.RGB(r, g, b).ARGB()
	}
	// stops land exactly on the ends
	p[0] = stops[0].ARGB()
	p[PaletteSize-1] = stops[len(stops)-1].ARGB()
	return p
}

var builtinStops = map[string][]style.Color{
	"Blue-Red": {
		style.RGB(0x00, 0x00, 0xFF), style.RGB(0x00, 0xFF, 0xFF),
		style.RGB(0x00, 0xFF, 0x00), style.RGB(0xFF, 0xFF, 0x00), style.RGB(0xFF, 0x00, 0x00),
	},
	"Heat": {
		style.RGB(0x00, 0x00, 0x00), style.RGB(0xCC, 0x00, 0x00),
		style.RGB(0xFF, 0xCC, 0x00), style.RGB(0xFF, 0xFF, 0xFF),
	},
	"Green-Yellow-Red": {
		style.RGB(0x1A, 0x98, 0x50), style.RGB(0xFF, 0xFF, 0xBF), style.RGB(0xD7, 0x30, 0x27),
	},
	"Grayscale": {style.Black, style.White},
	"Water": {
		style.RGB(0xF7, 0xFB, 0xFF), style.RGB(0x6B, 0xAE, 0xD6), style.RGB(0x08, 0x30, 0x6B),
	},
	"Viridis": {
		style.RGB(0x44, 0x01, 0x54), style.RGB(0x3B, 0x52, 0x8B), style.RGB(0x21, 0x90, 0x8C),
		style.RGB(0x5D, 0xC8, 0x63), style.RGB(0xFD, 0xE7, 0x25),
	},
}

// BuiltinPalette returns one of the generated palettes.
func BuiltinPalette(name string) (Palette, bool) {
	stops, ok := builtinStops[name]
	if !ok {
		return Palette{}, false
	}
	return Blend(stops...), true
}

// PaletteNames lists the built-in palettes, sorted.
func PaletteNames() []string {
	names := make([]string, 0, len(builtinStops))
	for n := range builtinStops {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
