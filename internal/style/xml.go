package style

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/joeblew999/foldingmap/internal/resource"
)

// Element order in these structs is the order the markup reader expects.

type xmlIcon struct {
	Href string `xml:"href"`
}

type xmlVisibility struct {
	MinZoom float64 `xml:"minZoom"`
	MaxZoom float64 `xml:"maxZoom"`
}

type xmlLabel struct {
	Color        string  `xml:"color"`
	OutlineColor string  `xml:"outlineColor"`
	FontFamily   string  `xml:"fontFamily"`
	FontStyle    string  `xml:"fontStyle"`
	FontSize     float64 `xml:"fontSize"`
	Visible      int     `xml:"visible"`
}

type xmlIconStyle struct {
	XMLName      xml.Name       `xml:"IconStyle"`
	ID           string         `xml:"id,attr"`
	Color        string         `xml:"color"`
	ColorMode    string         `xml:"colorMode"`
	Outline      int            `xml:"outline"`
	OutlineColor string         `xml:"outlineColor,omitempty"`
	Scale        float64        `xml:"scale"`
	Heading      float64        `xml:"heading"`
	Icon         *xmlIcon       `xml:"Icon,omitempty"`
	Visibility   *xmlVisibility `xml:"visibility,omitempty"`
	Label        *xmlLabel      `xml:"LabelStyle,omitempty"`
}

type xmlLineStyle struct {
	XMLName       xml.Name       `xml:"LineStyle"`
	ID            string         `xml:"id,attr"`
	Color         string         `xml:"color"`
	ColorMode     string         `xml:"colorMode"`
	SelectedColor string         `xml:"selectedColor"`
	Width         float64        `xml:"width"`
	LineStroke    string         `xml:"lineStroke"`
	Outline       int            `xml:"outline"`
	OutlineColor  string         `xml:"outlineColor,omitempty"`
	Visibility    *xmlVisibility `xml:"visibility,omitempty"`
	Label         *xmlLabel      `xml:"LabelStyle,omitempty"`
}

type xmlOutlineStyle struct {
	BorderCondition string  `xml:"borderCondition"`
	Color           string  `xml:"color"`
	SelectedColor   string  `xml:"selectedColor"`
	StrokeStyle     string  `xml:"strokeStyle"`
	Width           float64 `xml:"width"`
}

type xmlPolygonStyle struct {
	XMLName     xml.Name          `xml:"PolygonStyle"`
	ID          string            `xml:"id,attr"`
	FeatureType string            `xml:"featureType"`
	Color       string            `xml:"color"`
	ColorMode   string            `xml:"colorMode"`
	Fill        int               `xml:"fill"`
	Icon        *xmlIcon          `xml:"Icon,omitempty"`
	Outlines    []xmlOutlineStyle `xml:"outlines>outlineStyle"`
	Visibility  *xmlVisibility    `xml:"visibility,omitempty"`
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func encodeVisibility(v *Visibility) *xmlVisibility {
	if v == nil {
		return nil
	}
	return &xmlVisibility{MinZoom: v.minZoom, MaxZoom: v.maxZoom}
}

func decodeVisibility(v *xmlVisibility) (*Visibility, error) {
	if v == nil {
		return nil, nil
	}
	return NewVisibility(v.MinZoom, v.MaxZoom)
}

func encodeLabel(l *LabelStyle) *xmlLabel {
	if l == nil {
		return nil
	}
	return &xmlLabel{
		Color:        l.FillColor.HexStandard(),
		OutlineColor: l.OutlineColor.HexStandard(),
		FontFamily:   l.Font.Family,
		FontStyle:    l.Font.Style.String(),
		FontSize:     l.Font.Size,
		Visible:      boolInt(l.Visible),
	}
}

func decodeLabel(l *xmlLabel) *LabelStyle {
	if l == nil {
		return nil
	}
	return &LabelStyle{
		FillColor:    ColorFromHex(l.Color),
		OutlineColor: ColorFromHex(l.OutlineColor),
		Font:         Font{Family: l.FontFamily, Style: ParseFontStyle(l.FontStyle), Size: l.FontSize},
		Visible:      l.Visible != 0,
	}
}

func encodeIcon(href string) *xmlIcon {
	if href == "" {
		return nil
	}
	return &xmlIcon{Href: href}
}

func decodeIcon(i *xmlIcon) string {
	if i == nil {
		return ""
	}
	return i.Href
}

// markup returns the struct encoding/xml writes for s.
func markup(s Style) (any, error) {
	switch s := s.(type) {
	case *IconStyle:
		x := xmlIconStyle{
			ID:         s.ID,
			Color:      s.FillColor.HexStandard(),
			ColorMode:  s.ColorMode.String(),
			Outline:    boolInt(s.Outline),
			Scale:      s.Scale,
			Heading:    s.Heading,
			Icon:       encodeIcon(s.ImageFile),
			Visibility: encodeVisibility(s.Visibility),
			Label:      encodeLabel(s.Label),
		}
		if s.Outline {
			x.OutlineColor = s.OutlineColor.HexStandard()
		}
		return x, nil
	case *LineStyle:
		x := xmlLineStyle{
			ID:            s.ID,
			Color:         s.FillColor.HexStandard(),
			ColorMode:     s.ColorMode.String(),
			SelectedColor: s.SelectedFillColor.HexStandard(),
			Width:         s.width,
			LineStroke:    s.Stroke.String(),
			Outline:       boolInt(s.Outline),
			Visibility:    encodeVisibility(s.Visibility),
			Label:         encodeLabel(s.Label),
		}
		if s.Outline {
			x.OutlineColor = s.OutlineColor.HexStandard()
		}
		return x, nil
	case *PolygonStyle:
		x := xmlPolygonStyle{
			ID:          s.ID,
			FeatureType: s.FeatureType,
			Color:       s.FillColor.HexStandard(),
			ColorMode:   s.ColorMode.String(),
			Fill:        boolInt(s.Fill),
			Icon:        encodeIcon(s.ImageFile),
			Outlines:    make([]xmlOutlineStyle, 0, len(s.Outlines)),
			Visibility:  encodeVisibility(s.Visibility),
		}
		for _, o := range s.Outlines {
			x.Outlines = append(x.Outlines, xmlOutlineStyle{
				BorderCondition: o.BorderCondition,
				Color:           o.Color.HexStandard(),
				SelectedColor:   o.SelectedColor.HexStandard(),
				StrokeStyle:     o.Stroke.String(),
				Width:           o.width,
			})
		}
		return x, nil
	}
	return nil, fmt.Errorf("style %T: unsupported kind", s)
}

// WriteXML writes the style markup for s.
func WriteXML(w io.Writer, s Style) error {
	x, err := markup(s)
	if err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(x); err != nil {
		return err
	}
	return enc.Flush()
}

// ReadXML reads one style element written by WriteXML. Icon styles get res
// as their resource provider.
//
// Polygon markup holds only the fill and the outline rules, so polygon
// labels and the polygon's own outline and selected colours read back as
// defaults, and the outline flag is set exactly when rules are present.
func ReadXML(r io.Reader, res resource.Provider) (Style, error) {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("no style element: %w", io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "IconStyle":
			var x xmlIconStyle
			if err := dec.DecodeElement(&x, &start); err != nil {
				return nil, err
			}
			return x.style(res)
		case "LineStyle":
			var x xmlLineStyle
			if err := dec.DecodeElement(&x, &start); err != nil {
				return nil, err
			}
			return x.style()
		case "PolygonStyle":
			var x xmlPolygonStyle
			if err := dec.DecodeElement(&x, &start); err != nil {
				return nil, err
			}
			return x.style()
		default:
			return nil, fmt.Errorf("unexpected element <%s>", start.Name.Local)
		}
	}
}

func (x xmlIconStyle) style(res resource.Provider) (Style, error) {
	s := NewIconStyle(x.ID, ColorFromHex(x.Color), res)
	s.ColorMode = ParseColorMode(x.ColorMode)
	s.Outline = x.Outline != 0
	if s.Outline {
		s.OutlineColor = ColorFromHex(x.OutlineColor)
	}
	s.Scale = x.Scale
	s.Heading = x.Heading
	s.ImageFile = decodeIcon(x.Icon)
	s.Label = decodeLabel(x.Label)
	vis, err := decodeVisibility(x.Visibility)
	if err != nil {
		return nil, err
	}
	s.Visibility = vis
	return s, nil
}

func (x xmlLineStyle) style() (Style, error) {
	s, err := NewLineStyle(x.ID, ColorFromHex(x.Color), x.Width)
	if err != nil {
		return nil, err
	}
	s.ColorMode = ParseColorMode(x.ColorMode)
	s.SelectedFillColor = ColorFromHex(x.SelectedColor)
	s.Stroke = ParseStrokeStyle(x.LineStroke)
	s.Outline = x.Outline != 0
	if s.Outline {
		s.OutlineColor = ColorFromHex(x.OutlineColor)
	}
	s.Label = decodeLabel(x.Label)
	if s.Visibility, err = decodeVisibility(x.Visibility); err != nil {
		return nil, err
	}
	return s, nil
}

func (x xmlPolygonStyle) style() (Style, error) {
	s := NewPolygonStyle(x.ID, ColorFromHex(x.Color), x.FeatureType)
	s.ColorMode = ParseColorMode(x.ColorMode)
	s.Fill = x.Fill != 0
	s.ImageFile = decodeIcon(x.Icon)
	for _, xo := range x.Outlines {
		o, err := NewOutlineStyle(ColorFromHex(xo.Color), xo.Width, xo.BorderCondition)
		if err != nil {
			return nil, err
		}
		o.SelectedColor = ColorFromHex(xo.SelectedColor)
		o.Stroke = ParseStrokeStyle(xo.StrokeStyle)
		s.Outlines = append(s.Outlines, o)
	}
	s.Outline = len(s.Outlines) > 0
	var err error
	if s.Visibility, err = decodeVisibility(x.Visibility); err != nil {
		return nil, err
	}
	return s, nil
}
