package style

import "fmt"

// FontStyle mirrors the plain/bold/italic font flags.
type FontStyle int

const (
	FontPlain FontStyle = iota
	FontBold
	FontItalic
	FontBoldItalic
)

func (f FontStyle) String() string {
	switch f {
	case FontBold:
		return "bold"
	case FontItalic:
		return "italic"
	case FontBoldItalic:
		return "bold-italic"
	}
	return "plain"
}

// ParseFontStyle is the inverse of FontStyle.String; unknown names are plain.
func ParseFontStyle(s string) FontStyle {
	switch s {
	case "bold":
		return FontBold
	case "italic":
		return FontItalic
	case "bold-italic":
		return FontBoldItalic
	}
	return FontPlain
}

// Font describes a label font.
type Font struct {
	Family string
	Style  FontStyle
	Size   float64
}

func (f Font) String() string {
	return fmt.Sprintf("%s-%s-%g", f.Family, f.Style, f.Size)
}

// DefaultFont is used by labels that do not specify one.
var DefaultFont = Font{Family: "Arial", Style: FontPlain, Size: 12}

// LabelStyle describes how an object's name is drawn. It is a plain value;
// equal fields mean equal labels.
type LabelStyle struct {
	FillColor    Color
	OutlineColor Color
	Font         Font
	Visible      bool
}

// NewLabelStyle returns a visible label using the default font.
func NewLabelStyle(fill, outline Color) *LabelStyle {
	return &LabelStyle{
		FillColor:    fill,
		OutlineColor: outline,
		Font:         DefaultFont,
		Visible:      true,
	}
}

// Equal compares two possibly-nil labels by value.
func (l *LabelStyle) Equal(o *LabelStyle) bool {
	if l == nil || o == nil {
		return l == o
	}
	return *l == *o
}

func (l *LabelStyle) clone() *LabelStyle {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
