package style

import (
	"encoding/xml"
	"fmt"
	"io"
)

// KML colours are written AABBGGRR.

type kmlIconStyle struct {
	Color     string   `xml:"color"`
	ColorMode string   `xml:"colorMode"`
	Scale     float64  `xml:"scale"`
	Heading   float64  `xml:"heading"`
	Icon      *xmlIcon `xml:"Icon,omitempty"`
}

type kmlLabelStyle struct {
	Color string  `xml:"color"`
	Scale float64 `xml:"scale"`
}

type kmlLineStyle struct {
	Color string  `xml:"color"`
	Width float64 `xml:"width"`
}

type kmlPolyStyle struct {
	Color   string `xml:"color"`
	Fill    int    `xml:"fill"`
	Outline int    `xml:"outline"`
}

type kmlStyle struct {
	XMLName    xml.Name       `xml:"Style"`
	ID         string         `xml:"id,attr"`
	IconStyle  *kmlIconStyle  `xml:"IconStyle,omitempty"`
	LabelStyle *kmlLabelStyle `xml:"LabelStyle,omitempty"`
	LineStyle  *kmlLineStyle  `xml:"LineStyle,omitempty"`
	PolyStyle  *kmlPolyStyle  `xml:"PolyStyle,omitempty"`
}

func kmlLabel(l *LabelStyle) *kmlLabelStyle {
	if l == nil || !l.Visible {
		return nil
	}
	return &kmlLabelStyle{Color: l.FillColor.HexAlphabetical(), Scale: 1}
}

// WriteKML writes s as a KML <Style> element. A polygon's border is taken from
// its catch-all outline rule.
func WriteKML(w io.Writer, s Style) error {
	k := kmlStyle{ID: s.Base().ID}
	switch s := s.(type) {
	case *IconStyle:
		k.IconStyle = &kmlIconStyle{
			Color:     s.FillColor.HexAlphabetical(),
			ColorMode: s.ColorMode.String(),
			Scale:     s.Scale,
			Heading:   s.Heading,
			Icon:      encodeIcon(s.ImageFile),
		}
		k.LabelStyle = kmlLabel(s.Label)
	case *LineStyle:
		k.LineStyle = &kmlLineStyle{Color: s.FillColor.HexAlphabetical(), Width: s.width}
		k.LabelStyle = kmlLabel(s.Label)
	case *PolygonStyle:
		border := s.OutlineByCondition(ConditionAny)
		k.LineStyle = &kmlLineStyle{Color: border.Color.HexAlphabetical(), Width: border.width}
		k.PolyStyle = &kmlPolyStyle{
			Color:   s.FillColor.HexAlphabetical(),
			Fill:    boolInt(s.Fill),
			Outline: boolInt(s.Outline),
		}
	default:
		return fmt.Errorf("style %T: unsupported kind", s)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(k); err != nil {
		return err
	}
	return enc.Flush()
}
