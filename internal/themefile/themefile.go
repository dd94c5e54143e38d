// Package themefile is the document form of a MapTheme, written as YAML for
// user themes on disk and as JSON by the API.
package themefile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
)

// Document is a whole theme.
type Document struct {
	Name       string      `yaml:"name" json:"name"`
	Background style.Color `yaml:"background" json:"background"`
	Icons      []Icon      `yaml:"icons,omitempty" json:"icons,omitempty"`
	Lines      []Line      `yaml:"lines,omitempty" json:"lines,omitempty"`
	Polygons   []Polygon   `yaml:"polygons,omitempty" json:"polygons,omitempty"`
	Ramps      []Ramp      `yaml:"ramps,omitempty" json:"ramps,omitempty"`
}

// Visibility is an inclusive zoom range.
type Visibility struct {
	MinZoom float64 `yaml:"minZoom" json:"minZoom" minimum:"0" maximum:"25"`
	MaxZoom float64 `yaml:"maxZoom" json:"maxZoom" minimum:"0" maximum:"25"`
}

// Label describes how names are drawn.
type Label struct {
	Fill       style.Color `yaml:"fill" json:"fill"`
	Outline    style.Color `yaml:"outline" json:"outline"`
	FontFamily string      `yaml:"fontFamily" json:"fontFamily"`
	FontStyle  string      `yaml:"fontStyle" json:"fontStyle" enum:"plain,bold,italic,bold-italic"`
	FontSize   float64     `yaml:"fontSize" json:"fontSize"`
	Visible    bool        `yaml:"visible" json:"visible"`
}

// Base holds the fields shared by every style.
type Base struct {
	ID              string      `yaml:"id" json:"id" minLength:"1"`
	Fill            style.Color `yaml:"fill" json:"fill"`
	Outline         style.Color `yaml:"outline" json:"outline"`
	SelectedFill    style.Color `yaml:"selectedFill" json:"selectedFill"`
	SelectedOutline style.Color `yaml:"selectedOutline" json:"selectedOutline"`
	Filled          bool        `yaml:"filled" json:"filled"`
	Outlined        bool        `yaml:"outlined" json:"outlined"`
	ColorMode       string      `yaml:"colorMode,omitempty" json:"colorMode,omitempty" enum:"normal,random"`
	Label           *Label      `yaml:"label,omitempty" json:"label,omitempty"`
	Visibility      *Visibility `yaml:"visibility,omitempty" json:"visibility,omitempty"`
}

// Icon is an icon style.
type Icon struct {
	Base    `yaml:",inline"`
	Scale   float64 `yaml:"scale" json:"scale"`
	Heading float64 `yaml:"heading" json:"heading"`
	Image   string  `yaml:"image,omitempty" json:"image,omitempty"`
}

// Line is a line style.
type Line struct {
	Base   `yaml:",inline"`
	Width  float64 `yaml:"width" json:"width" exclusiveMinimum:"0"`
	Stroke string  `yaml:"stroke,omitempty" json:"stroke,omitempty" enum:"solid,dashed,dotted,dashdot"`
}

// Outline is a conditional polygon border.
type Outline struct {
	Condition     string      `yaml:"condition" json:"condition"`
	Color         style.Color `yaml:"color" json:"color"`
	SelectedColor style.Color `yaml:"selectedColor" json:"selectedColor"`
	Stroke        string      `yaml:"stroke,omitempty" json:"stroke,omitempty" enum:"solid,dashed,dotted,dashdot"`
	Width         float64     `yaml:"width" json:"width" exclusiveMinimum:"0"`
}

// Polygon is a polygon style.
type Polygon struct {
	Base        `yaml:",inline"`
	FeatureType string    `yaml:"featureType,omitempty" json:"featureType,omitempty"`
	Image       string    `yaml:"image,omitempty" json:"image,omitempty"`
	Outlines    []Outline `yaml:"outlines,omitempty" json:"outlines,omitempty"`
}

// RampEntry is one key of a colour ramp.
type RampEntry struct {
	Key   string      `yaml:"key" json:"key"`
	Color style.Color `yaml:"color" json:"color"`
}

// Ramp is a colour ramp with its entries in insertion order.
type Ramp struct {
	ID      string      `yaml:"id" json:"id"`
	Default style.Color `yaml:"default" json:"default"`
	Entries []RampEntry `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// FromTheme snapshots a theme.
func FromTheme(t *theme.MapTheme) *Document {
	d := &Document{Name: t.Name, Background: t.Background}
	for _, s := range t.Styles(style.KindIcon) {
		d.Icons = append(d.Icons, FromIcon(s.(*style.IconStyle)))
	}
	for _, s := range t.Styles(style.KindLine) {
		d.Lines = append(d.Lines, FromLine(s.(*style.LineStyle)))
	}
	for _, s := range t.Styles(style.KindPolygon) {
		d.Polygons = append(d.Polygons, FromPolygon(s.(*style.PolygonStyle)))
	}
	for _, id := range t.ColorRampIDs() {
		r, _ := t.ColorRamp(id)
		d.Ramps = append(d.Ramps, FromRamp(r))
	}
	return d
}

// Theme builds a MapTheme from the document. Styles replace the theme's
// unspecified fallbacks when they share an id.
func (d *Document) Theme(res resource.Provider) (*theme.MapTheme, error) {
	t := theme.New(d.Name, d.Background, res)
	for _, doc := range d.Icons {
		s, err := doc.Style(res)
		if err != nil {
			return nil, err
		}
		if err := t.AddStyle(s); err != nil {
			return nil, err
		}
	}
	for _, doc := range d.Lines {
		s, err := doc.Style()
		if err != nil {
			return nil, err
		}
		if err := t.AddStyle(s); err != nil {
			return nil, err
		}
	}
	for _, doc := range d.Polygons {
		s, err := doc.Style()
		if err != nil {
			return nil, err
		}
		if err := t.AddStyle(s); err != nil {
			return nil, err
		}
	}
	for _, doc := range d.Ramps {
		if err := t.AddColorRamp(doc.ColorRamp()); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Encode writes a theme as YAML.
func Encode(w io.Writer, t *theme.MapTheme) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromTheme(t)); err != nil {
		return err
	}
	return enc.Close()
}

// Decode reads a YAML theme.
func Decode(r io.Reader, res resource.Provider) (*theme.MapTheme, error) {
	var d Document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	t, err := d.Theme(res)
	if err != nil {
		return nil, fmt.Errorf("theme %q: %w", d.Name, err)
	}
	return t, nil
}

// Load reads a YAML theme file.
func Load(path string, res resource.Provider) (*theme.MapTheme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, res)
}

// Save writes a theme to a YAML file, creating its directory. The file is
// replaced only once the whole theme has been written.
func Save(path string, t *theme.MapTheme) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := Encode(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
