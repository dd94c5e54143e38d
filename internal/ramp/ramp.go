// Package ramp maps data values to colours for heat map and bubble chart
// overlays, either through a 256-entry gradient palette or a categorical table.
package ramp

import (
	"slices"

	"github.com/joeblew999/foldingmap/internal/style"
)

// ColorRamp maps raw field values to colours. Keys that were never added
// resolve to DefaultColor.
type ColorRamp struct {
	ID           string
	DefaultColor style.Color

	keys    []string
	entries map[string]style.Color
}

// New returns an empty ramp.
func New(id string, defaultColor style.Color) *ColorRamp {
	return &ColorRamp{
		ID:           id,
		DefaultColor: defaultColor,
		entries:      make(map[string]style.Color),
	}
}

// AddEntry sets the colour for key. A new key is appended to the key order;
// an existing key keeps its position.
func (r *ColorRamp) AddEntry(key string, c style.Color) {
	if r.entries == nil {
		r.entries = make(map[string]style.Color)
	}
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = c
}

// RemoveEntry deletes key and reports whether it was present.
func (r *ColorRamp) RemoveEntry(key string) bool {
	if _, ok := r.entries[key]; !ok {
		return false
	}
	delete(r.entries, key)
	r.keys = slices.DeleteFunc(r.keys, func(k string) bool { return k == key })
	return true
}

// Color returns the colour for key, or DefaultColor.
func (r *ColorRamp) Color(key string) style.Color {
	if c, ok := r.entries[key]; ok {
		return c
	}
	return r.DefaultColor
}

// Lookup returns the explicit entry for key.
func (r *ColorRamp) Lookup(key string) (style.Color, bool) {
	c, ok := r.entries[key]
	return c, ok
}

// Keys returns the keys in insertion order.
func (r *ColorRamp) Keys() []string {
	return slices.Clone(r.keys)
}

// Len returns the number of explicit entries.
func (r *ColorRamp) Len() int {
	return len(r.keys)
}

// Clone returns an independent copy.
func (r *ColorRamp) Clone() *ColorRamp {
	c := New(r.ID, r.DefaultColor)
	for _, k := range r.keys {
		c.AddEntry(k, r.entries[k])
	}
	return c
}
