package feature

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/paulmach/orb/geojson"

	"github.com/joeblew999/foldingmap/internal/style"
)

// Reserved GeoJSON properties. Every other property becomes a custom field.
const (
	PropClass    = "class"
	PropSelected = "selected"
	PropMinZoom  = "minZoom"
	PropMaxZoom  = "maxZoom"
)

// FromGeoJSON reads a FeatureCollection. Property values are stringified;
// minZoom/maxZoom, when present, become the object's visibility.
func FromGeoJSON(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}

	c := &Collection{Objects: make([]*Object, 0, len(fc.Features))}
	for i, f := range fc.Features {
		o, err := fromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if o.ID == "" {
			o.ID = strconv.Itoa(i)
		}
		c.Add(o)
	}
	return c, nil
}

func fromFeature(f *geojson.Feature) (*Object, error) {
	o := &Object{
		Geometry: f.Geometry,
		Fields:   make(map[string]string),
	}
	if f.ID != nil {
		o.ID = fmt.Sprint(f.ID)
	}

	var minZoom, maxZoom *float64
	for _, k := range sortedKeys(map[string]any(f.Properties)) {
		v := f.Properties[k]
		switch k {
		case PropClass:
			o.Class = fmt.Sprint(v)
		case PropSelected:
			o.Selected, _ = v.(bool)
		case PropMinZoom, PropMaxZoom:
			z, ok := v.(float64)
			if !ok {
				return nil, fmt.Errorf("%s is not a number", k)
			}
			if k == PropMinZoom {
				minZoom = &z
			} else {
				maxZoom = &z
			}
		default:
			o.Fields[k] = stringify(v)
		}
	}

	if minZoom != nil || maxZoom != nil {
		lo, hi := style.MinZoomLevel, style.MaxZoomLevel
		if minZoom != nil {
			lo = *minZoom
		}
		if maxZoom != nil {
			hi = *maxZoom
		}
		v, err := style.NewVisibility(lo, hi)
		if err != nil {
			return nil, err
		}
		o.Visibility = v
	}
	return o, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
