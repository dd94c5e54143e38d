package themefile

import (
	"fmt"

	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
)

func fromBase(c *style.ColorStyle) Base {
	b := Base{
		ID:              c.ID,
		Fill:            c.FillColor,
		Outline:         c.OutlineColor,
		SelectedFill:    c.SelectedFillColor,
		SelectedOutline: c.SelectedOutlineColor,
		Filled:          c.Fill,
		Outlined:        c.Outline,
	}
	if c.ColorMode != style.ColorModeNormal {
		b.ColorMode = c.ColorMode.String()
	}
	if l := c.Label; l != nil {
		b.Label = &Label{
			Fill:       l.FillColor,
			Outline:    l.OutlineColor,
			FontFamily: l.Font.Family,
			FontStyle:  l.Font.Style.String(),
			FontSize:   l.Font.Size,
			Visible:    l.Visible,
		}
	}
	if v := c.Visibility; v != nil {
		b.Visibility = &Visibility{MinZoom: v.MinZoom(), MaxZoom: v.MaxZoom()}
	}
	return b
}

func (b Base) apply(c *style.ColorStyle) error {
	c.ID = b.ID
	c.FillColor = b.Fill
	c.OutlineColor = b.Outline
	c.SelectedFillColor = b.SelectedFill
	c.SelectedOutlineColor = b.SelectedOutline
	c.Fill = b.Filled
	c.Outline = b.Outlined
	c.ColorMode = style.ParseColorMode(b.ColorMode)

	c.Label = nil
	if l := b.Label; l != nil {
		c.Label = &style.LabelStyle{
			FillColor:    l.Fill,
			OutlineColor: l.Outline,
			Font: style.Font{
				Family: l.FontFamily,
				Style:  style.ParseFontStyle(l.FontStyle),
				Size:   l.FontSize,
			},
			Visible: l.Visible,
		}
	}

	c.Visibility = nil
	if v := b.Visibility; v != nil {
		vis, err := style.NewVisibility(v.MinZoom, v.MaxZoom)
		if err != nil {
			return fmt.Errorf("style %q: %w", b.ID, err)
		}
		c.Visibility = vis
	}
	return nil
}

// FromIcon converts an icon style.
func FromIcon(s *style.IconStyle) Icon {
	return Icon{
		Base:    fromBase(&s.ColorStyle),
		Scale:   s.Scale,
		Heading: s.Heading,
		Image:   s.ImageFile,
	}
}

// Style builds the icon style, bound to res.
func (d Icon) Style(res resource.Provider) (*style.IconStyle, error) {
	s := style.NewIconStyle(d.ID, d.Fill, res)
	if err := d.Base.apply(&s.ColorStyle); err != nil {
		return nil, err
	}
	s.Scale = d.Scale
	s.Heading = d.Heading
	s.ImageFile = d.Image
	return s, nil
}

// FromLine converts a line style.
func FromLine(s *style.LineStyle) Line {
	return Line{
		Base:   fromBase(&s.ColorStyle),
		Width:  s.Width(),
		Stroke: s.Stroke.String(),
	}
}

// Style builds the line style. A width of zero or less is rejected.
func (d Line) Style() (*style.LineStyle, error) {
	s, err := style.NewLineStyle(d.ID, d.Fill, d.Width)
	if err != nil {
		return nil, err
	}
	if err := d.Base.apply(&s.ColorStyle); err != nil {
		return nil, err
	}
	s.Stroke = style.ParseStrokeStyle(d.Stroke)
	return s, nil
}

// FromPolygon converts a polygon style; outline rules keep their order.
func FromPolygon(s *style.PolygonStyle) Polygon {
	d := Polygon{
		Base:        fromBase(&s.ColorStyle),
		FeatureType: s.FeatureType,
		Image:       s.ImageFile,
	}
	for _, o := range s.Outlines {
		d.Outlines = append(d.Outlines, Outline{
			Condition:     o.BorderCondition,
			Color:         o.Color,
			SelectedColor: o.SelectedColor,
			Stroke:        o.Stroke.String(),
			Width:         o.Width(),
		})
	}
	return d
}

// Style builds the polygon style.
func (d Polygon) Style() (*style.PolygonStyle, error) {
	s := style.NewPolygonStyle(d.ID, d.Fill, d.FeatureType)
	if err := d.Base.apply(&s.ColorStyle); err != nil {
		return nil, err
	}
	s.ImageFile = d.Image
	for _, od := range d.Outlines {
		o, err := od.Style()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", d.ID, err)
		}
		s.Outlines = append(s.Outlines, o)
	}
	return s, nil
}

// Style builds the outline rule.
func (d Outline) Style() (style.OutlineStyle, error) {
	o, err := style.NewOutlineStyle(d.Color, d.Width, d.Condition)
	if err != nil {
		return style.OutlineStyle{}, err
	}
	o.SelectedColor = d.SelectedColor
	o.Stroke = style.ParseStrokeStyle(d.Stroke)
	return o, nil
}

// FromRamp converts a colour ramp.
func FromRamp(r *ramp.ColorRamp) Ramp {
	d := Ramp{ID: r.ID, Default: r.DefaultColor}
	for _, k := range r.Keys() {
		c, _ := r.Lookup(k)
		d.Entries = append(d.Entries, RampEntry{Key: k, Color: c})
	}
	return d
}

// ColorRamp builds the ramp.
func (d Ramp) ColorRamp() *ramp.ColorRamp {
	r := ramp.New(d.ID, d.Default)
	for _, e := range d.Entries {
		r.AddEntry(e.Key, e.Color)
	}
	return r
}

// Entry carries one style of any kind. Exactly one of Icon, Line and Polygon
// is set, matching Kind.
type Entry struct {
	Kind    string   `yaml:"kind" json:"kind" enum:"icon,line,polygon"`
	Icon    *Icon    `yaml:"icon,omitempty" json:"icon,omitempty"`
	Line    *Line    `yaml:"line,omitempty" json:"line,omitempty"`
	Polygon *Polygon `yaml:"polygon,omitempty" json:"polygon,omitempty"`
}

// FromStyle wraps any style.
func FromStyle(s style.Style) Entry {
	e := Entry{Kind: s.Kind().String()}
	switch v := s.(type) {
	case *style.IconStyle:
		d := FromIcon(v)
		e.Icon = &d
	case *style.LineStyle:
		d := FromLine(v)
		e.Line = &d
	case *style.PolygonStyle:
		d := FromPolygon(v)
		e.Polygon = &d
	}
	return e
}

// Style builds the wrapped style.
func (e Entry) Style(res resource.Provider) (style.Style, error) {
	kind, err := style.ParseKind(e.Kind)
	if err != nil {
		return nil, err
	}
	var (
		s    style.Style
		berr error
	)
	switch {
	case kind == style.KindIcon && e.Icon != nil:
		s, berr = e.Icon.Style(res)
	case kind == style.KindLine && e.Line != nil:
		s, berr = e.Line.Style()
	case kind == style.KindPolygon && e.Polygon != nil:
		s, berr = e.Polygon.Style()
	default:
		return nil, fmt.Errorf("%s style body missing", kind)
	}
	if berr != nil {
		return nil, berr
	}
	return s, nil
}
