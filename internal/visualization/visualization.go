// Package visualization builds heat map and bubble chart overlays: a field's
// values are snapshot from a collection, classified, and turned into a colour
// ramp that colours each object.
package visualization

import (
	"math"
	"strconv"
	"strings"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
)

// Options selects the field and the colouring of an overlay.
type Options struct {
	Variable string
	Scope    feature.Scope

	// Numeric fields.
	Palette   *ramp.Palette
	Gradient  ramp.GradientOptions
	AutoRange bool

	// Categorical fields.
	Overrides    map[string]style.Color
	DefaultColor style.Color
}

func (o Options) config() ramp.Config {
	return ramp.Config{
		Palette:      o.Palette,
		Gradient:     o.Gradient,
		AutoRange:    o.AutoRange,
		Overrides:    o.Overrides,
		DefaultColor: o.DefaultColor,
	}
}

// Mark is the drawing decision for one object.
type Mark struct {
	ObjectID string      `json:"objectId"`
	Value    string      `json:"value"`
	Color    style.Color `json:"color"`
	Radius   float64     `json:"radius,omitempty"`
}

// HeatMap colours objects by one field.
type HeatMap struct {
	ID       string
	Variable string
	Mode     ramp.Mode
	Ramp     *ramp.ColorRamp
}

// NewHeatMap snapshots the field values of the objects in scope and builds
// the ramp. Values seen later that were not in the snapshot get the ramp's
// default colour.
func NewHeatMap(id string, c *feature.Collection, opts Options) *HeatMap {
	values := c.FieldValues(opts.Variable, opts.Scope)
	r, mode := ramp.Build(id, values, opts.config())
	return &HeatMap{ID: id, Variable: opts.Variable, Mode: mode, Ramp: r}
}

// Color returns the colour of an object.
func (h *HeatMap) Color(o *feature.Object) style.Color {
	return h.Ramp.Color(o.Field(h.Variable))
}

// Marks colours every object in scope.
func (h *HeatMap) Marks(c *feature.Collection, scope feature.Scope) []Mark {
	objs := c.In(scope)
	out := make([]Mark, 0, len(objs))
	for _, o := range objs {
		v := o.Field(h.Variable)
		out = append(out, Mark{ObjectID: o.ID, Value: v, Color: h.Ramp.Color(v)})
	}
	return out
}

// Register stores the overlay's ramp in a theme.
func (h *HeatMap) Register(t *theme.MapTheme) error {
	return t.AddColorRamp(h.Ramp)
}

// BubbleChart is a heat map whose marks also get a radius from a second,
// numeric field.
type BubbleChart struct {
	*HeatMap
	SizeVariable string
	MinRadius    float64
	MaxRadius    float64

	lo, hi float64
	ranged bool
}

// NewBubbleChart builds the colour ramp like NewHeatMap and takes the radius
// range from the size field's values in scope.
func NewBubbleChart(id string, c *feature.Collection, opts Options, sizeVariable string, minRadius, maxRadius float64) *BubbleChart {
	b := &BubbleChart{
		HeatMap:      NewHeatMap(id, c, opts),
		SizeVariable: sizeVariable,
		MinRadius:    minRadius,
		MaxRadius:    maxRadius,
	}
	b.lo, b.hi, b.ranged = ramp.NumericRange(c.FieldValues(sizeVariable, opts.Scope))
	return b
}

// Radius interpolates linearly between MinRadius and MaxRadius over the size
// field's range. Objects whose size value does not parse get MinRadius, as
// does every object when the range is a single value.
func (b *BubbleChart) Radius(o *feature.Object) float64 {
	raw := strings.TrimSpace(o.Field(b.SizeVariable))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !b.ranged || b.hi == b.lo {
		return b.MinRadius
	}
	t := (v - b.lo) / (b.hi - b.lo)
	t = math.Max(0, math.Min(1, t))
	return b.MinRadius + t*(b.MaxRadius-b.MinRadius)
}

// Marks colours and sizes every object in scope.
func (b *BubbleChart) Marks(c *feature.Collection, scope feature.Scope) []Mark {
	marks := b.HeatMap.Marks(c, scope)
	for i, o := range c.In(scope) {
		marks[i].Radius = b.Radius(o)
	}
	return marks
}
