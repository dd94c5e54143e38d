// Package service contains the stateful registries behind the API and CLI:
// themes, datasets of map objects, and change events.
package service

import (
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
)

// ThemeInfo summarises a theme for listings.
type ThemeInfo struct {
	Name       string      `json:"name" doc:"Theme name" example:"Toner"`
	Builtin    bool        `json:"builtin" doc:"Built-in themes are read-only"`
	Background style.Color `json:"background" doc:"Background colour, RRGGBBAA" example:"FFFFFFFF"`
	Icons      int         `json:"icons" doc:"Number of icon styles"`
	Lines      int         `json:"lines" doc:"Number of line styles"`
	Polygons   int         `json:"polygons" doc:"Number of polygon styles"`
	Ramps      []string    `json:"ramps" doc:"Colour ramp IDs"`
}

func infoOf(t *theme.MapTheme) ThemeInfo {
	return ThemeInfo{
		Name:       t.Name,
		Builtin:    theme.IsBuiltin(t.Name),
		Background: t.Background,
		Icons:      len(t.StyleIDs(style.KindIcon)),
		Lines:      len(t.StyleIDs(style.KindLine)),
		Polygons:   len(t.StyleIDs(style.KindPolygon)),
		Ramps:      t.ColorRampIDs(),
	}
}

// DatasetFile is a GeoJSON file of map objects in the sources directory.
type DatasetFile struct {
	Name   string `json:"name" doc:"File name" example:"peaks.geojson"`
	Size   string `json:"size" doc:"Human-readable file size" example:"1.2 MB"`
	Loaded bool   `json:"loaded" doc:"Whether the objects are held in memory"`
}
