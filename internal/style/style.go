package style

import (
	"fmt"
	"image"
	"slices"
	"strings"

	"github.com/joeblew999/foldingmap/internal/resource"
)

// Kind identifies a style variant.
type Kind int

const (
	KindUnknown Kind = iota
	KindIcon
	KindLine
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindIcon:
		return "icon"
	case KindLine:
		return "line"
	case KindPolygon:
		return "polygon"
	}
	return "unknown"
}

// ParseKind accepts icon, line and polygon.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "icon":
		return KindIcon, nil
	case "line":
		return KindLine, nil
	case "polygon":
		return KindPolygon, nil
	}
	return KindUnknown, fmt.Errorf("unknown style kind %q", s)
}

// ColorMode is the KML colour mode.
type ColorMode int

const (
	ColorModeNormal ColorMode = iota
	ColorModeRandom
)

func (m ColorMode) String() string {
	if m == ColorModeRandom {
		return "random"
	}
	return "normal"
}

// ParseColorMode is the inverse of String; anything but "random" is normal.
func ParseColorMode(s string) ColorMode {
	if strings.EqualFold(s, "random") {
		return ColorModeRandom
	}
	return ColorModeNormal
}

// SelectionHighlight is the default selected colour of new styles.
var SelectionHighlight = RGB(0x33, 0x99, 0xFF)

// Style is one of *IconStyle, *LineStyle or *PolygonStyle.
type Style interface {
	Base() *ColorStyle
	Kind() Kind
	Clone() Style
	Equal(Style) bool

	isStyle()
}

// ColorStyle holds the fields shared by every style variant.
type ColorStyle struct {
	ID                   string
	FillColor            Color
	OutlineColor         Color
	SelectedFillColor    Color
	SelectedOutlineColor Color
	Fill                 bool
	Outline              bool
	ColorMode            ColorMode
	Label                *LabelStyle
	Visibility           *Visibility
}

func newColorStyle(id string, fill Color) ColorStyle {
	return ColorStyle{
		ID:                   id,
		FillColor:            fill,
		OutlineColor:         fill,
		SelectedFillColor:    SelectionHighlight,
		SelectedOutlineColor: SelectionHighlight,
		Fill:                 true,
		Outline:              false,
		Label:                NewLabelStyle(Black, White),
	}
}

// Base returns the shared fields.
func (c *ColorStyle) Base() *ColorStyle { return c }

// VisibleAt reports whether the style is drawn at zoom. Styles without a
// visibility are always drawn.
func (c *ColorStyle) VisibleAt(zoom float64) bool {
	return c.Visibility == nil || c.Visibility.Contains(zoom)
}

func (c ColorStyle) equal(o ColorStyle) bool {
	return c.ID == o.ID &&
		c.FillColor == o.FillColor &&
		c.OutlineColor == o.OutlineColor &&
		c.SelectedFillColor == o.SelectedFillColor &&
		c.SelectedOutlineColor == o.SelectedOutlineColor &&
		c.Fill == o.Fill &&
		c.Outline == o.Outline &&
		c.ColorMode == o.ColorMode &&
		c.Label.Equal(o.Label) &&
		c.Visibility.Equal(o.Visibility)
}

func (c ColorStyle) clone() ColorStyle {
	c.Label = c.Label.clone()
	return c
}

// IconStyle styles point objects.
type IconStyle struct {
	ColorStyle
	Scale     float64
	Heading   float64
	ImageFile string

	res resource.Provider
}

// NewIconStyle returns an icon style; res resolves ImageFile and may be nil.
func NewIconStyle(id string, fill Color, res resource.Provider) *IconStyle {
	return &IconStyle{
		ColorStyle: newColorStyle(id, fill),
		Scale:      1,
		res:        res,
	}
}

func (*IconStyle) Kind() Kind { return KindIcon }
func (*IconStyle) isStyle()   {}

// SetResources replaces the provider used to load the icon image.
func (s *IconStyle) SetResources(res resource.Provider) { s.res = res }

// Image loads the icon image through the injected provider.
func (s *IconStyle) Image() (image.Image, error) {
	if s.ImageFile == "" {
		return nil, fmt.Errorf("icon style %q has no image: %w", s.ID, resource.ErrNotFound)
	}
	if s.res == nil {
		return nil, fmt.Errorf("icon style %q has no resource provider: %w", s.ID, resource.ErrNotFound)
	}
	return resource.Icon(s.res, s.ImageFile)
}

func (s *IconStyle) Clone() Style {
	c := *s
	c.ColorStyle = s.ColorStyle.clone()
	return &c
}

// Equal compares every field except the resource provider.
func (s *IconStyle) Equal(other Style) bool {
	o, ok := other.(*IconStyle)
	if !ok || s == nil || o == nil {
		return ok && s == o
	}
	return s.ColorStyle.equal(o.ColorStyle) &&
		s.Scale == o.Scale &&
		s.Heading == o.Heading &&
		s.ImageFile == o.ImageFile
}

// LineStyle styles line strings and linear rings.
type LineStyle struct {
	ColorStyle
	Stroke StrokeStyle

	width float64
}

// NewLineStyle returns a line style, rejecting width <= 0.
func NewLineStyle(id string, fill Color, width float64) (*LineStyle, error) {
	s := &LineStyle{ColorStyle: newColorStyle(id, fill)}
	if err := s.SetWidth(width); err != nil {
		return nil, err
	}
	return s, nil
}

// MustLineStyle is NewLineStyle for constant catalog entries.
func MustLineStyle(id string, fill Color, width float64) *LineStyle {
	s, err := NewLineStyle(id, fill, width)
	if err != nil {
		panic(err)
	}
	return s
}

func (*LineStyle) Kind() Kind { return KindLine }
func (*LineStyle) isStyle()   {}

// Width returns the line width in pixels.
func (s *LineStyle) Width() float64 { return s.width }

// SetWidth sets the line width. Width must be positive.
func (s *LineStyle) SetWidth(w float64) error {
	if !(w > 0) {
		return fmt.Errorf("line %q width %v: %w", s.ID, w, ErrOutOfRange)
	}
	s.width = w
	return nil
}

func (s *LineStyle) Clone() Style {
	c := *s
	c.ColorStyle = s.ColorStyle.clone()
	return &c
}

func (s *LineStyle) Equal(other Style) bool {
	o, ok := other.(*LineStyle)
	if !ok || s == nil || o == nil {
		return ok && s == o
	}
	return s.ColorStyle.equal(o.ColorStyle) &&
		s.Stroke == o.Stroke &&
		s.width == o.width
}

// PolygonStyle styles polygons. Outlines are conditional border rules.
type PolygonStyle struct {
	ColorStyle
	FeatureType string
	ImageFile   string
	Outlines    []OutlineStyle
}

// NewPolygonStyle returns a filled polygon style with no outline rules.
func NewPolygonStyle(id string, fill Color, featureType string) *PolygonStyle {
	return &PolygonStyle{
		ColorStyle:  newColorStyle(id, fill),
		FeatureType: featureType,
	}
}

func (*PolygonStyle) Kind() Kind { return KindPolygon }
func (*PolygonStyle) isStyle()   {}

// AddOutline appends a border rule. Order matters for matching.
func (s *PolygonStyle) AddOutline(o OutlineStyle) {
	s.Outlines = append(s.Outlines, o)
	s.Outline = true
}

// OutlineByCondition returns the border rule for condition.
//
// The first rule whose condition equals condition (ignoring case) wins.
// Failing that the first "Any" rule is used wherever it sits in the list.
// A polygon with neither gets a one pixel solid outline in its fill colour.
func (s *PolygonStyle) OutlineByCondition(condition string) OutlineStyle {
	var anyRule *OutlineStyle
	for i := range s.Outlines {
		o := &s.Outlines[i]
		if anyRule == nil && o.IsAny() {
			anyRule = o
		}
		if strings.EqualFold(o.BorderCondition, condition) {
			return *o
		}
	}
	if anyRule != nil {
		return *anyRule
	}
	return OutlineStyle{
		Color:           s.FillColor,
		SelectedColor:   s.SelectedOutlineColor,
		Stroke:          StrokeSolid,
		BorderCondition: ConditionAny,
		width:           1,
	}
}

func (s *PolygonStyle) Clone() Style {
	c := *s
	c.ColorStyle = s.ColorStyle.clone()
	c.Outlines = slices.Clone(s.Outlines)
	return &c
}

func (s *PolygonStyle) Equal(other Style) bool {
	o, ok := other.(*PolygonStyle)
	if !ok || s == nil || o == nil {
		return ok && s == o
	}
	return s.ColorStyle.equal(o.ColorStyle) &&
		s.FeatureType == o.FeatureType &&
		s.ImageFile == o.ImageFile &&
		slices.Equal(s.Outlines, o.Outlines)
}
