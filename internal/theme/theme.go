// Package theme holds MapTheme, the registry that turns an object class and
// geometry into the style to draw it with.
package theme

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
)

// IDs of the fallback styles every theme carries.
const (
	UnspecifiedPoint      = "(Unspecified Point)"
	UnspecifiedLinestring = "(Unspecified Linestring)"
	UnspecifiedPolygon    = "(Unspecified Polygon)"
)

var (
	// ErrUnknownKind is returned for a style that is not an icon, line or polygon.
	ErrUnknownKind = errors.New("unknown style kind")
	// ErrEmptyID is returned for a style without an id.
	ErrEmptyID = errors.New("style id is empty")
)

// MapTheme is a named catalog of styles and colour ramps. Styles go in and
// come out as copies, so the registry methods are the only way to change it.
type MapTheme struct {
	Name       string
	Background style.Color

	res resource.Provider

	mu       sync.RWMutex
	icons    map[string]*style.IconStyle
	lines    map[string]*style.LineStyle
	polygons map[string]*style.PolygonStyle
	ramps    map[string]*ramp.ColorRamp
}

// New returns a theme holding only the three unspecified fallback styles.
// res resolves icon images and may be nil.
func New(name string, background style.Color, res resource.Provider) *MapTheme {
	t := &MapTheme{
		Name:       name,
		Background: background,
		res:        res,
		icons:      make(map[string]*style.IconStyle),
		lines:      make(map[string]*style.LineStyle),
		polygons:   make(map[string]*style.PolygonStyle),
		ramps:      make(map[string]*ramp.ColorRamp),
	}
	grey := style.RGB(0x80, 0x80, 0x80)
	t.icons[UnspecifiedPoint] = style.NewIconStyle(UnspecifiedPoint, grey, res)
	t.lines[UnspecifiedLinestring] = style.MustLineStyle(UnspecifiedLinestring, grey, 1)
	t.polygons[UnspecifiedPolygon] = style.NewPolygonStyle(UnspecifiedPolygon, grey.WithAlpha(0x80), style.ConditionUnknown)
	return t
}

// Resources returns the provider icon styles are bound to.
func (t *MapTheme) Resources() resource.Provider {
	return t.res
}

// AddStyle stores a copy of s under its id, replacing any style of the same
// kind and id.
func (t *MapTheme) AddStyle(s style.Style) error {
	if s == nil {
		return ErrUnknownKind
	}
	if s.Base().ID == "" {
		return ErrEmptyID
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	switch v := s.Clone().(type) {
	case *style.IconStyle:
		v.SetResources(t.res)
		t.icons[v.ID] = v
	case *style.LineStyle:
		t.lines[v.ID] = v
	case *style.PolygonStyle:
		t.polygons[v.ID] = v
	default:
		return fmt.Errorf("%T: %w", s, ErrUnknownKind)
	}
	return nil
}

// RemoveStyle deletes a style and reports whether it existed. The
// unspecified fallbacks cannot be removed.
func (t *MapTheme) RemoveStyle(kind style.Kind, id string) bool {
	if id == unspecifiedID(kind) {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var ok bool
	switch kind {
	case style.KindIcon:
		_, ok = t.icons[id]
		delete(t.icons, id)
	case style.KindLine:
		_, ok = t.lines[id]
		delete(t.lines, id)
	case style.KindPolygon:
		_, ok = t.polygons[id]
		delete(t.polygons, id)
	}
	return ok
}

// GetStyle returns the style registered for objectClass in the registry the
// geometry selects: points use icon styles, line strings and rings use line
// styles, polygons use polygon styles. Matching is exact. A miss returns nil;
// the unspecified fallback is not substituted, see Unspecified.
func (t *MapTheme) GetStyle(objectClass string, geom style.Geometry) style.Style {
	return t.Style(geom.Kind(), objectClass)
}

// GetStyleAtZoom is GetStyle. Zoom does not take part in lookup; it only
// matters to visibility.
func (t *MapTheme) GetStyleAtZoom(objectClass string, geom style.Geometry, zoom float64) style.Style {
	return t.GetStyle(objectClass, geom)
}

// Style returns a copy of the style of the given kind and id, or nil.
func (t *MapTheme) Style(kind style.Kind, id string) style.Style {
	t.mu.RLock()
	defer t.mu.RUnlock()

	switch kind {
	case style.KindIcon:
		if s, ok := t.icons[id]; ok {
			return s.Clone()
		}
	case style.KindLine:
		if s, ok := t.lines[id]; ok {
			return s.Clone()
		}
	case style.KindPolygon:
		if s, ok := t.polygons[id]; ok {
			return s.Clone()
		}
	}
	return nil
}

// IconStyle returns a copy of an icon style.
func (t *MapTheme) IconStyle(id string) (*style.IconStyle, bool) {
	s, ok := t.Style(style.KindIcon, id).(*style.IconStyle)
	return s, ok
}

// LineStyle returns a copy of a line style.
func (t *MapTheme) LineStyle(id string) (*style.LineStyle, bool) {
	s, ok := t.Style(style.KindLine, id).(*style.LineStyle)
	return s, ok
}

// PolygonStyle returns a copy of a polygon style.
func (t *MapTheme) PolygonStyle(id string) (*style.PolygonStyle, bool) {
	s, ok := t.Style(style.KindPolygon, id).(*style.PolygonStyle)
	return s, ok
}

// Unspecified returns the fallback style for a kind, or nil for an unknown
// kind.
func (t *MapTheme) Unspecified(kind style.Kind) style.Style {
	return t.Style(kind, unspecifiedID(kind))
}

func unspecifiedID(kind style.Kind) string {
	switch kind {
	case style.KindIcon:
		return UnspecifiedPoint
	case style.KindLine:
		return UnspecifiedLinestring
	case style.KindPolygon:
		return UnspecifiedPolygon
	}
	return ""
}

// StyleIDs returns the ids registered for a kind, sorted.
func (t *MapTheme) StyleIDs(kind style.Kind) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var ids []string
	switch kind {
	case style.KindIcon:
		ids = keys(t.icons)
	case style.KindLine:
		ids = keys(t.lines)
	case style.KindPolygon:
		ids = keys(t.polygons)
	}
	slices.Sort(ids)
	return ids
}

// Styles returns copies of every style of a kind, sorted by id.
func (t *MapTheme) Styles(kind style.Kind) []style.Style {
	ids := t.StyleIDs(kind)
	out := make([]style.Style, 0, len(ids))
	for _, id := range ids {
		if s := t.Style(kind, id); s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of styles across all kinds.
func (t *MapTheme) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.icons) + len(t.lines) + len(t.polygons)
}

// OutlineByCondition resolves the outline of a polygon style against a
// border condition. ok is false when the polygon style does not exist.
func (t *MapTheme) OutlineByCondition(polygonID, condition string) (style.OutlineStyle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	p, ok := t.polygons[polygonID]
	if !ok {
		return style.OutlineStyle{}, false
	}
	return p.OutlineByCondition(condition), true
}

// IsVisible reports whether an object is drawn at zoom. The object's own
// visibility wins; otherwise the visibility of its resolved style applies;
// an object with neither is always visible.
func (t *MapTheme) IsVisible(o *feature.Object, zoom float64) bool {
	if o.Visibility != nil {
		return o.Visibility.Contains(zoom)
	}
	s := t.GetStyle(o.Class, o.GeometryKind())
	if s == nil {
		return true
	}
	return s.Base().VisibleAt(zoom)
}

// AddColorRamp stores a copy of r under its id.
func (t *MapTheme) AddColorRamp(r *ramp.ColorRamp) error {
	if r.ID == "" {
		return ErrEmptyID
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ramps[r.ID] = r.Clone()
	return nil
}

// RemoveColorRamp deletes a ramp and reports whether it existed.
func (t *MapTheme) RemoveColorRamp(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.ramps[id]
	delete(t.ramps, id)
	return ok
}

// ColorRamp returns a copy of a ramp.
func (t *MapTheme) ColorRamp(id string) (*ramp.ColorRamp, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.ramps[id]
	if !ok {
		return nil, false
	}
	return r.Clone(), true
}

// ColorRampIDs returns the ramp ids, sorted.
func (t *MapTheme) ColorRampIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := keys(t.ramps)
	slices.Sort(ids)
	return ids
}

// Copy returns an independent theme with a new name and the same contents.
func (t *MapTheme) Copy(name string) *MapTheme {
	c := New(name, t.Background, t.res)

	t.mu.RLock()
	defer t.mu.RUnlock()

	for id, s := range t.icons {
		c.icons[id] = s.Clone().(*style.IconStyle)
	}
	for id, s := range t.lines {
		c.lines[id] = s.Clone().(*style.LineStyle)
	}
	for id, s := range t.polygons {
		c.polygons[id] = s.Clone().(*style.PolygonStyle)
	}
	for id, r := range t.ramps {
		c.ramps[id] = r.Clone()
	}
	return c
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
