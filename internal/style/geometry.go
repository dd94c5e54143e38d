package style

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// Geometry is the geometry kind a style is looked up for.
type Geometry int

const (
	GeometryUnknown Geometry = iota
	GeometryPoint
	GeometryLineString
	GeometryLinearRing
	GeometryPolygon
)

func (g Geometry) String() string {
	switch g {
	case GeometryPoint:
		return "point"
	case GeometryLineString:
		return "linestring"
	case GeometryLinearRing:
		return "linearring"
	case GeometryPolygon:
		return "polygon"
	}
	return "unknown"
}

// Kind returns the style variant drawn for this geometry.
func (g Geometry) Kind() Kind {
	switch g {
	case GeometryPoint:
		return KindIcon
	case GeometryLineString, GeometryLinearRing:
		return KindLine
	case GeometryPolygon:
		return KindPolygon
	}
	return KindUnknown
}

// ParseGeometry accepts the names produced by String, case-insensitively.
func ParseGeometry(s string) (Geometry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point":
		return GeometryPoint, nil
	case "linestring", "line":
		return GeometryLineString, nil
	case "linearring", "ring":
		return GeometryLinearRing, nil
	case "polygon":
		return GeometryPolygon, nil
	}
	return GeometryUnknown, fmt.Errorf("unknown geometry %q", s)
}

// GeometryOf maps an orb geometry onto a geometry kind. Multi-geometries take
// the kind of their members; collections and nil are unknown.
func GeometryOf(g orb.Geometry) Geometry {
	switch g.(type) {
	case orb.Point, orb.MultiPoint:
		return GeometryPoint
	case orb.LineString, orb.MultiLineString:
		return GeometryLineString
	case orb.Ring:
		return GeometryLinearRing
	case orb.Polygon, orb.MultiPolygon, orb.Bound:
		return GeometryPolygon
	}
	return GeometryUnknown
}
