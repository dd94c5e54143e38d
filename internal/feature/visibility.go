package feature

import (
	"github.com/joeblew999/foldingmap/internal/style"
)

// AggregateVisibility merges the visibility of objs into one range: the
// lowest minZoom and the highest maxZoom. Objects without visibility count as
// the full range, so they widen the result rather than tighten it. An empty
// slice gives the full range.
func AggregateVisibility(objs []*Object) *style.Visibility {
	if len(objs) == 0 {
		return style.FullRange()
	}
	lo, hi := style.MaxZoomLevel, style.MinZoomLevel
	for _, o := range objs {
		minZoom, maxZoom := style.MinZoomLevel, style.MaxZoomLevel
		if o.Visibility != nil {
			minZoom, maxZoom = o.Visibility.MinZoom(), o.Visibility.MaxZoom()
		}
		lo = min(lo, minZoom)
		hi = max(hi, maxZoom)
	}
	return style.MustVisibility(lo, hi)
}

// VisibilityEdit is the write-back from a visibility editor: a single zoom
// value and two bound checkboxes, or "always visible".
type VisibilityEdit struct {
	AlwaysVisible bool    `json:"alwaysVisible,omitempty" yaml:"alwaysVisible,omitempty"`
	UseMin        bool    `json:"useMin,omitempty" yaml:"useMin,omitempty"`
	UseMax        bool    `json:"useMax,omitempty" yaml:"useMax,omitempty"`
	Zoom          float64 `json:"zoom,omitempty" yaml:"zoom,omitempty" minimum:"0" maximum:"25"`
}

// Visibility returns the range the edit describes. Nil means unrestricted.
//
//	always visible  -> nil
//	max only        -> [0, zoom]
//	min only        -> [zoom, 25]
//	min and max     -> [zoom, zoom]
//
// An edit with neither bound checked is also unrestricted.
func (e VisibilityEdit) Visibility() (*style.Visibility, error) {
	switch {
	case e.AlwaysVisible:
		return nil, nil
	case e.UseMin && e.UseMax:
		return style.NewVisibility(e.Zoom, e.Zoom)
	case e.UseMax:
		return style.NewVisibility(style.MinZoomLevel, e.Zoom)
	case e.UseMin:
		return style.NewVisibility(e.Zoom, style.MaxZoomLevel)
	}
	return nil, nil
}

// ApplyVisibility sets the edited visibility on every object. An invalid zoom
// leaves all objects unchanged.
func ApplyVisibility(objs []*Object, e VisibilityEdit) error {
	v, err := e.Visibility()
	if err != nil {
		return err
	}
	for _, o := range objs {
		o.Visibility = v
	}
	return nil
}
