// Package feature describes the map objects a theme styles: their class name,
// geometry, custom fields and optional object-level visibility.
package feature

import (
	"maps"

	"github.com/paulmach/orb"

	"github.com/joeblew999/foldingmap/internal/style"
)

// Object is a styled map object. The theme finds its style by Class and the
// kind of Geometry; the object never holds a style directly.
type Object struct {
	ID       string
	Class    string
	Geometry orb.Geometry
	Fields   map[string]string
	// Visibility overrides the style's visibility when set.
	Visibility *style.Visibility
	Selected   bool
}

// Clone returns a copy that shares only the read-only geometry and
// visibility.
func (o *Object) Clone() *Object {
	c := *o
	c.Fields = maps.Clone(o.Fields)
	return &c
}

// GeometryKind returns the style lookup key for the object's geometry.
func (o *Object) GeometryKind() style.Geometry {
	return style.GeometryOf(o.Geometry)
}

// Field returns a custom field value, or "" when unset.
func (o *Object) Field(name string) string {
	return o.Fields[name]
}

// Scope selects which objects of a collection an operation reads.
type Scope int

const (
	ScopeAll Scope = iota
	ScopeSelected
)

func (s Scope) String() string {
	if s == ScopeSelected {
		return "selected"
	}
	return "all"
}

// ParseScope accepts "all" and "selected"; anything else is ScopeAll.
func ParseScope(s string) Scope {
	if s == "selected" {
		return ScopeSelected
	}
	return ScopeAll
}

// Collection is an ordered set of objects.
type Collection struct {
	Objects []*Object
}

// Add appends objects.
func (c *Collection) Add(objs ...*Object) {
	c.Objects = append(c.Objects, objs...)
}

// Clone returns a collection of copied objects.
func (c *Collection) Clone() *Collection {
	out := &Collection{Objects: make([]*Object, len(c.Objects))}
	for i, o := range c.Objects {
		out.Objects[i] = o.Clone()
	}
	return out
}

// Len returns the number of objects.
func (c *Collection) Len() int {
	return len(c.Objects)
}

// In returns the objects within scope, keeping collection order.
func (c *Collection) In(scope Scope) []*Object {
	if scope == ScopeAll {
		return c.Objects
	}
	var out []*Object
	for _, o := range c.Objects {
		if o.Selected {
			out = append(out, o)
		}
	}
	return out
}

// Selected returns the selected objects.
func (c *Collection) Selected() []*Object {
	return c.In(ScopeSelected)
}

// FieldNames returns the distinct custom field names in first-seen order.
// Names within one object are visited sorted so the result is stable.
func (c *Collection) FieldNames() []string {
	d := NewDistinct()
	for _, o := range c.Objects {
		for _, k := range sortedKeys(o.Fields) {
			d.Add(k)
		}
	}
	return d.Values()
}

// FieldValues returns the distinct values of a custom field across the
// objects in scope, in first-seen order. Objects without the field are
// skipped.
func (c *Collection) FieldValues(variable string, scope Scope) []string {
	d := NewDistinct()
	for _, o := range c.In(scope) {
		v, ok := o.Fields[variable]
		if !ok {
			continue
		}
		d.Add(v)
	}
	return d.Values()
}

// Distinct collects strings once each, in first-seen order.
type Distinct struct {
	seen   map[string]struct{}
	values []string
}

// NewDistinct returns an empty collector.
func NewDistinct() *Distinct {
	return &Distinct{seen: make(map[string]struct{})}
}

// Add records v and reports whether it was new.
func (d *Distinct) Add(v string) bool {
	if _, ok := d.seen[v]; ok {
		return false
	}
	d.seen[v] = struct{}{}
	d.values = append(d.values, v)
	return true
}

// Values returns the collected strings.
func (d *Distinct) Values() []string {
	return d.values
}
