package style

import (
	"errors"
	"fmt"
)

// Supported tile zoom range.
const (
	MinZoomLevel = 0.0
	MaxZoomLevel = 25.0
)

// ErrOutOfRange is returned when a numeric style value is outside its domain.
var ErrOutOfRange = errors.New("numeric value out of range")

// Visibility is an inclusive zoom range. It is immutable; edits produce a new
// value.
type Visibility struct {
	minZoom float64
	maxZoom float64
}

// NewVisibility validates 0 <= min <= max <= 25.
func NewVisibility(minZoom, maxZoom float64) (*Visibility, error) {
	if minZoom < MinZoomLevel || maxZoom > MaxZoomLevel || minZoom > maxZoom {
		return nil, fmt.Errorf("visibility %v-%v: %w", minZoom, maxZoom, ErrOutOfRange)
	}
	return &Visibility{minZoom: minZoom, maxZoom: maxZoom}, nil
}

// MustVisibility is NewVisibility for constant catalog entries.
func MustVisibility(minZoom, maxZoom float64) *Visibility {
	v, err := NewVisibility(minZoom, maxZoom)
	if err != nil {
		panic(err)
	}
	return v
}

// FullRange is the visibility of an element with no zoom restriction.
func FullRange() *Visibility {
	return &Visibility{minZoom: MinZoomLevel, maxZoom: MaxZoomLevel}
}

// MinZoom returns the lowest zoom the element is drawn at.
func (v *Visibility) MinZoom() float64 { return v.minZoom }

// MaxZoom returns the highest zoom the element is drawn at.
func (v *Visibility) MaxZoom() float64 { return v.maxZoom }

// Contains reports whether minZoom <= zoom <= maxZoom.
func (v *Visibility) Contains(zoom float64) bool {
	return v.minZoom <= zoom && zoom <= v.maxZoom
}

// Equal compares two possibly-nil visibilities by value.
func (v *Visibility) Equal(o *Visibility) bool {
	if v == nil || o == nil {
		return v == o
	}
	return *v == *o
}

func (v *Visibility) String() string {
	if v == nil {
		return "always"
	}
	return fmt.Sprintf("%g-%g", v.minZoom, v.maxZoom)
}
