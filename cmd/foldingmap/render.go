package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joeblew999/foldingmap/internal/service"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
	"github.com/joeblew999/foldingmap/internal/visualization"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	kindStyle   = lipgloss.NewStyle().Width(8)
	idStyle     = lipgloss.NewStyle().Width(28)
)

// swatch renders a colour as a small block; transparent colours show as a
// dotted outline.
func swatch(c style.Color) string {
	if c.A == 0 {
		return dimStyle.Render("··")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.CSS())).Render("  ")
}

func printThemeInfo(w io.Writer, info service.ThemeInfo) {
	tag := ""
	if info.Builtin {
		tag = dimStyle.Render(" (built-in)")
	}
	fmt.Fprintf(w, "%s %s%s  %s\n", swatch(info.Background), headerStyle.Render(info.Name), tag,
		dimStyle.Render(fmt.Sprintf("%d icons, %d lines, %d polygons, %d ramps",
			info.Icons, info.Lines, info.Polygons, len(info.Ramps))))
}

func printTheme(w io.Writer, t *theme.MapTheme) {
	fmt.Fprintf(w, "%s %s\n", swatch(t.Background), headerStyle.Render(t.Name))
	for _, kind := range []style.Kind{style.KindIcon, style.KindLine, style.KindPolygon} {
		for _, s := range t.Styles(kind) {
			fmt.Fprintf(w, "  %s\n", styleLine(s))
		}
	}
	for _, id := range t.ColorRampIDs() {
		r, _ := t.ColorRamp(id)
		var b strings.Builder
		for _, k := range r.Keys() {
			c, _ := r.Lookup(k)
			b.WriteString(swatch(c))
		}
		fmt.Fprintf(w, "  %s%s %s\n", kindStyle.Render("ramp"), idStyle.Render(id), b.String())
	}
}

func styleLine(s style.Style) string {
	c := s.Base()
	line := kindStyle.Render(s.Kind().String()) + idStyle.Render(c.ID) + " " + swatch(c.FillColor)
	if c.Outline {
		line += swatch(c.OutlineColor)
	}
	switch v := s.(type) {
	case *style.LineStyle:
		line += dimStyle.Render(fmt.Sprintf(" %gpx %s", v.Width(), v.Stroke))
	case *style.PolygonStyle:
		if len(v.Outlines) > 0 {
			line += dimStyle.Render(fmt.Sprintf(" %d outlines", len(v.Outlines)))
		}
	}
	if c.Visibility != nil {
		line += dimStyle.Render(" zoom " + c.Visibility.String())
	}
	return line
}

func printRamp(w io.Writer, hm *visualization.HeatMap) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.Render(hm.Variable), dimStyle.Render(hm.Mode.String()))
	for _, k := range hm.Ramp.Keys() {
		c, _ := hm.Ramp.Lookup(k)
		fmt.Fprintf(w, "  %s %s %s\n", swatch(c), c.HexStandard(), k)
	}
}
