package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/service"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
	"github.com/joeblew999/foldingmap/internal/themefile"
	"github.com/joeblew999/foldingmap/internal/visualization"
)

func resources(opts *Options) resource.Provider {
	return resource.NewDirProvider(filepath.Join(opts.DataDir, "resources"))
}

// loadTheme looks a theme up among the built-ins and the saved user themes.
func loadTheme(opts *Options, name string) *theme.MapTheme {
	setupLogging(opts)
	themes := service.NewThemeService(opts.DataDir, resources(opts), nil)
	t, ok := themes.Get(name)
	if !ok {
		fail("theme %q not found", name)
	}
	return t
}

func themesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "themes [name]",
		Short: "List themes, or the styles of one theme",
		Args:  cobra.MaximumNArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				printTheme(out, loadTheme(opts, args[0]))
				return
			}
			setupLogging(opts)
			themes := service.NewThemeService(opts.DataDir, resources(opts), nil)
			for _, info := range themes.List() {
				printThemeInfo(out, info)
			}
		}),
	}
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <theme> <class> <point|linestring|polygon>",
		Short: "Show the style a theme draws an object class with",
		Args:  cobra.ExactArgs(3),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			t := loadTheme(opts, args[0])
			geom, err := style.ParseGeometry(args[2])
			if err != nil {
				fail("%v", err)
			}
			zoom, _ := cmd.Flags().GetFloat64("zoom")

			out := cmd.OutOrStdout()
			s := t.GetStyleAtZoom(args[1], geom, zoom)
			if s == nil {
				fmt.Fprintf(out, "%s has no %s style for %q; drawn as %s\n",
					t.Name, geom.Kind(), args[1], t.Unspecified(geom.Kind()).Base().ID)
				return
			}
			visible := "visible"
			if !s.Base().VisibleAt(zoom) {
				visible = "hidden"
			}
			fmt.Fprintf(out, "%s  %s at zoom %g\n", styleLine(s), visible, zoom)

			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(themefile.FromStyle(s)); err != nil {
				fail("%v", err)
			}
		}),
	}
	cmd.Flags().Float64P("zoom", "z", 10, "Zoom level for the visibility check")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <theme>",
		Short: "Write a theme as YAML, or its styles as XML or KML",
		Args:  cobra.ExactArgs(1),
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			t := loadTheme(opts, args[0])
			format, _ := cmd.Flags().GetString("format")
			if err := export(cmd.OutOrStdout(), t, format); err != nil {
				fail("%v", err)
			}
		}),
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml, xml or kml")
	return cmd
}

func export(w io.Writer, t *theme.MapTheme, format string) error {
	var write func(io.Writer, style.Style) error
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return themefile.Encode(w, t)
	case "xml":
		write = style.WriteXML
	case "kml":
		write = style.WriteKML
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	for _, kind := range []style.Kind{style.KindIcon, style.KindLine, style.KindPolygon} {
		for _, s := range t.Styles(kind) {
			if err := write(w, s); err != nil {
				return err
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func rampCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ramp",
		Short: "Build a colour ramp from a field of a GeoJSON file",
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, opts *Options) {
			setupLogging(opts)
			path, _ := cmd.Flags().GetString("geojson")
			field, _ := cmd.Flags().GetString("field")
			paletteName, _ := cmd.Flags().GetString("palette")
			selected, _ := cmd.Flags().GetBool("selected")
			if path == "" || field == "" {
				fail("--geojson and --field are required")
			}

			f, err := os.Open(path)
			if err != nil {
				fail("%v", err)
			}
			defer f.Close()
			c, err := feature.FromGeoJSON(f)
			if err != nil {
				fail("%s: %v", path, err)
			}

			p, err := ramp.LoadPalette(resources(opts), paletteName)
			if err != nil {
				fail("%v", err)
			}
			scope := feature.ScopeAll
			if selected {
				scope = feature.ScopeSelected
			}
			hm := visualization.NewHeatMap(field, c, visualization.Options{
				Variable:  field,
				Scope:     scope,
				Palette:   &p,
				Gradient:  ramp.GradientOptions{Alpha: 255},
				AutoRange: true,
			})
			slog.Debug("ramp built", "field", field, "mode", hm.Mode, "keys", hm.Ramp.Len())
			printRamp(cmd.OutOrStdout(), hm)
		}),
	}
	cmd.Flags().StringP("geojson", "g", "", "GeoJSON file of map objects")
	cmd.Flags().String("field", "", "Field whose values are coloured")
	cmd.Flags().String("palette", "Blue-Red", "Gradient palette for numeric fields")
	cmd.Flags().Bool("selected", false, "Read only objects marked selected")
	return cmd
}
