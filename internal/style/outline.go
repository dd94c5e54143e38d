package style

import (
	"fmt"
	"strings"
)

// StrokeStyle is the dash pattern of a line or outline.
type StrokeStyle int

const (
	StrokeSolid StrokeStyle = iota
	StrokeDashed
	StrokeDotted
	StrokeDashDot
)

var strokeNames = [...]string{"solid", "dashed", "dotted", "dashdot"}

func (s StrokeStyle) String() string {
	if int(s) < len(strokeNames) && s >= 0 {
		return strokeNames[s]
	}
	return strokeNames[StrokeSolid]
}

// ParseStrokeStyle is the inverse of String; unknown names are solid.
func ParseStrokeStyle(s string) StrokeStyle {
	for i, n := range strokeNames {
		if strings.EqualFold(n, s) {
			return StrokeStyle(i)
		}
	}
	return StrokeSolid
}

// Border conditions. A condition may also be any object class name.
const (
	ConditionAny     = "Any"
	ConditionLand    = "Land"
	ConditionWater   = "Water"
	ConditionRoad    = "Road"
	ConditionNone    = "None"
	ConditionUnknown = "Unknown"
)

// OutlineStyle is a border rule attached to a polygon style, selected by its
// border condition.
type OutlineStyle struct {
	Color           Color
	SelectedColor   Color
	Stroke          StrokeStyle
	BorderCondition string
	width           float64
}

// NewOutlineStyle builds an outline, rejecting width <= 0.
func NewOutlineStyle(c Color, width float64, condition string) (OutlineStyle, error) {
	o := OutlineStyle{
		Color:           c,
		SelectedColor:   c,
		Stroke:          StrokeSolid,
		BorderCondition: condition,
	}
	if err := o.SetWidth(width); err != nil {
		return OutlineStyle{}, err
	}
	return o, nil
}

// MustOutlineStyle is NewOutlineStyle for constant catalog entries.
func MustOutlineStyle(c Color, width float64, condition string) OutlineStyle {
	o, err := NewOutlineStyle(c, width, condition)
	if err != nil {
		panic(err)
	}
	return o
}

// Width returns the stroke width in pixels.
func (o OutlineStyle) Width() float64 {
	return o.width
}

// SetWidth sets the stroke width. Width must be positive.
func (o *OutlineStyle) SetWidth(w float64) error {
	if !(w > 0) {
		return fmt.Errorf("outline width %v: %w", w, ErrOutOfRange)
	}
	o.width = w
	return nil
}

// IsAny reports whether this outline is the catch-all rule.
func (o OutlineStyle) IsAny() bool {
	return strings.EqualFold(o.BorderCondition, ConditionAny)
}
