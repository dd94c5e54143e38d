package ramp

import (
	"math"
	"strconv"
	"strings"

	"github.com/joeblew999/foldingmap/internal/style"
)

// GradientOptions controls numeric interpolation.
//
// By default the ratio is (v-min)/max, which is only linear over [min, max]
// when min is 0. Normalize divides by (max-min) instead. Neither form guards
// max == 0 or min > max.
type GradientOptions struct {
	Min       float64
	Max       float64
	Alpha     uint8
	Normalize bool
}

// Position returns the palette index for value, clamped to [0, 255]. A NaN
// ratio, as from 0/0, lands on 0.
func Position(value float64, opts GradientOptions) int {
	den := opts.Max
	if opts.Normalize {
		den = opts.Max - opts.Min
	}
	pos := math.Floor((value-opts.Min)/den*float64(PaletteSize-1) + 0.5)
	switch {
	case math.IsNaN(pos) || pos < 0:
		return 0
	case pos > PaletteSize-1:
		return PaletteSize - 1
	}
	return int(pos)
}

// Interpolate samples p at value and applies the options' alpha.
func Interpolate(p *Palette, value float64, opts GradientOptions) style.Color {
	return style.FromRGB(p[Position(value, opts)], opts.Alpha)
}

// InterpolateString is Interpolate for a raw field value. Blank values and
// values that do not parse are fully transparent.
func InterpolateString(p *Palette, raw string, opts GradientOptions) style.Color {
	v, ok := parseNumber(raw)
	if !ok {
		return style.Transparent
	}
	return Interpolate(p, v, opts)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func parseNumber(s string) (float64, bool) {
	if isBlank(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
