package ramp

import (
	"math"

	"github.com/joeblew999/foldingmap/internal/style"
)

// Mode is how a value set is turned into colours.
type Mode int

const (
	ModeCategorical Mode = iota
	ModeNumeric
)

func (m Mode) String() string {
	if m == ModeNumeric {
		return "numeric"
	}
	return "categorical"
}

// Classify returns ModeNumeric when every non-blank value parses as a float.
// A set with no non-blank values is categorical.
func Classify(values []string) Mode {
	seen := false
	for _, v := range values {
		if isBlank(v) {
			continue
		}
		if _, ok := parseNumber(v); !ok {
			return ModeCategorical
		}
		seen = true
	}
	if !seen {
		return ModeCategorical
	}
	return ModeNumeric
}

// NumericRange returns the smallest and largest parseable values.
func NumericRange(values []string) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, raw := range values {
		v, parsed := parseNumber(raw)
		if !parsed {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// CategoricalColors are assigned to categorical values by position, wrapping.
var CategoricalColors = []style.Color{
	style.RGB(0x1F, 0x77, 0xB4),
	style.RGB(0xFF, 0x7F, 0x0E),
	style.RGB(0x2C, 0xA0, 0x2C),
	style.RGB(0xD6, 0x27, 0x28),
	style.RGB(0x94, 0x67, 0xBD),
	style.RGB(0x8C, 0x56, 0x4B),
	style.RGB(0xE3, 0x77, 0xC2),
	style.RGB(0x7F, 0x7F, 0x7F),
	style.RGB(0xBC, 0xBD, 0x22),
	style.RGB(0x17, 0xBE, 0xCF),
}

// NumericRamp interpolates every non-blank value. Blank values are not stored
// and fall through to the transparent default.
func NumericRamp(id string, values []string, p *Palette, opts GradientOptions) *ColorRamp {
	r := New(id, style.Transparent)
	for _, raw := range values {
		v, ok := parseNumber(raw)
		if !ok {
			continue
		}
		r.AddEntry(raw, Interpolate(p, v, opts))
	}
	return r
}

// CategoricalRamp gives each distinct value a colour: its override if set,
// else the CategoricalColors entry for its position. Duplicates keep their
// first position. Blank values are skipped.
func CategoricalRamp(id string, values []string, overrides map[string]style.Color, defaultColor style.Color) *ColorRamp {
	r := New(id, defaultColor)
	for _, v := range values {
		if isBlank(v) {
			continue
		}
		if _, ok := r.Lookup(v); ok {
			continue
		}
		c, ok := overrides[v]
		if !ok {
			c = CategoricalColors[r.Len()%len(CategoricalColors)]
		}
		r.AddEntry(v, c)
	}
	return r
}

// Config selects the palette and range used when a value set is numeric and
// the overrides used when it is categorical.
type Config struct {
	Palette  *Palette
	Gradient GradientOptions
	// AutoRange replaces Gradient.Min/Max with the range of the values.
	AutoRange bool

	Overrides    map[string]style.Color
	DefaultColor style.Color
}

// Build classifies values and builds the matching ramp. A numeric set without
// a palette falls back to the Blue-Red palette. Both modes resolve unknown
// keys to cfg.DefaultColor.
func Build(id string, values []string, cfg Config) (*ColorRamp, Mode) {
	mode := Classify(values)
	if mode == ModeCategorical {
		return CategoricalRamp(id, values, cfg.Overrides, cfg.DefaultColor), mode
	}

	p := cfg.Palette
	if p == nil {
		def, _ := BuiltinPalette("Blue-Red")
		p = &def
	}
	opts := cfg.Gradient
	if cfg.AutoRange {
		opts.Min, opts.Max, _ = NumericRange(values)
	}
	r := NumericRamp(id, values, p, opts)
	r.DefaultColor = cfg.DefaultColor
	return r, mode
}
