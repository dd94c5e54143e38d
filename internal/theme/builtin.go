package theme

import (
	"slices"
	"strings"

	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/style"
)

// Object classes shared by the built-in catalogs.
const (
	ClassPrimaryHighway   = "Road - Primary Highway"
	ClassSecondaryHighway = "Road - Secondary Highway"
	ClassMotorway         = "Road - Motorway"
	ClassResidentialRoad  = "Road - Residential"
	ClassServiceRoad      = "Road - Service"
	ClassRail             = "Rail"
	ClassTrail            = "Trail"
	ClassRiver            = "River"
	ClassBoundary         = "Boundary - Administrative"
	ClassCoastline        = "Coastline"

	ClassWater       = "Water"
	ClassLand        = "Land"
	ClassPark        = "Park"
	ClassForest      = "Forest"
	ClassBuilding    = "Building"
	ClassResidential = "Residential Area"

	ClassPeak       = "Peak"
	ClassParking    = "Parking"
	ClassRestaurant = "Restaurant"
	ClassHotel      = "Hotel"
)

// palette is the colour scheme a built-in catalog is generated from.
type palette struct {
	background style.Color
	land       style.Color
	water      style.Color
	coast      style.Color
	park       style.Color
	forest     style.Color
	building   style.Color
	residence  style.Color

	motorway  style.Color
	primary   style.Color
	secondary style.Color
	minor     style.Color
	casing    style.Color
	rail      style.Color
	trail     style.Color
	boundary  style.Color

	poi       style.Color
	label     style.Color
	labelHalo style.Color

	primaryWidth float64
}

func hex(s string) style.Color {
	c, err := style.ParseHexStandard(s)
	if err != nil {
		panic(err)
	}
	return c
}

type builder struct {
	t *MapTheme
	p palette
}

func (b builder) line(id string, fill style.Color, width float64, vis *style.Visibility) *style.LineStyle {
	s := style.MustLineStyle(id, fill, width)
	s.Visibility = vis
	s.Label = style.NewLabelStyle(b.p.label, b.p.labelHalo)
	return s
}

func (b builder) polygon(id string, fill style.Color, featureType string, vis *style.Visibility) *style.PolygonStyle {
	s := style.NewPolygonStyle(id, fill, featureType)
	s.Visibility = vis
	s.Label = style.NewLabelStyle(b.p.label, b.p.labelHalo)
	return s
}

func (b builder) icon(id, image string, vis *style.Visibility) {
	s := style.NewIconStyle(id, b.p.poi, b.t.res)
	s.ImageFile = image
	s.Visibility = vis
	s.Label = style.NewLabelStyle(b.p.label, b.p.labelHalo)
	b.add(s)
}

func (b builder) add(s style.Style) {
	if err := b.t.AddStyle(s); err != nil {
		panic(err)
	}
}

// catalog builds the classes every built-in theme carries.
func catalog(name string, p palette, res resource.Provider) (*MapTheme, builder) {
	b := builder{t: New(name, p.background, res), p: p}

	b.add(b.line(ClassMotorway, p.motorway, p.primaryWidth+1, nil))
	primary := b.line(ClassPrimaryHighway, p.primary, p.primaryWidth, nil)
	primary.Outline = true
	primary.OutlineColor = p.casing
	b.add(primary)
	b.add(b.line(ClassSecondaryHighway, p.secondary, p.primaryWidth*0.75, style.MustVisibility(8, 25)))
	b.add(b.line(ClassResidentialRoad, p.minor, 1, style.MustVisibility(13, 25)))
	b.add(b.line(ClassServiceRoad, p.minor, 0.5, style.MustVisibility(15, 25)))
	rail := b.line(ClassRail, p.rail, 1, style.MustVisibility(10, 25))
	rail.Stroke = style.StrokeDashed
	b.add(rail)
	trail := b.line(ClassTrail, p.trail, 1, style.MustVisibility(12, 25))
	trail.Stroke = style.StrokeDotted
	b.add(trail)
	b.add(b.line(ClassRiver, p.water, 1.5, style.MustVisibility(6, 25)))
	boundary := b.line(ClassBoundary, p.boundary, 1, nil)
	boundary.Stroke = style.StrokeDashDot
	b.add(boundary)
	b.add(b.line(ClassCoastline, p.coast, 1, nil))

	land := b.polygon(ClassLand, p.land, style.ConditionLand, nil)
	land.AddOutline(style.MustOutlineStyle(p.coast, 1, style.ConditionWater))
	b.add(land)

	water := b.polygon(ClassWater, p.water, style.ConditionWater, nil)
	water.AddOutline(style.MustOutlineStyle(p.coast, 1, style.ConditionLand))
	water.AddOutline(style.MustOutlineStyle(p.water, 1, style.ConditionAny))
	b.add(water)

	park := b.polygon(ClassPark, p.park, style.ConditionLand, style.MustVisibility(10, 25))
	park.AddOutline(style.MustOutlineStyle(p.park, 1, style.ConditionAny))
	b.add(park)

	b.add(b.polygon(ClassForest, p.forest, style.ConditionLand, style.MustVisibility(8, 25)))

	building := b.polygon(ClassBuilding, p.building, style.ConditionNone, style.MustVisibility(15, 25))
	building.AddOutline(style.MustOutlineStyle(p.casing, 0.5, style.ConditionAny))
	b.add(building)

	b.add(b.polygon(ClassResidential, p.residence, style.ConditionLand, style.MustVisibility(11, 25)))

	b.icon(ClassPeak, "peak.png", style.MustVisibility(9, 25))
	b.icon(ClassParking, "parking.png", style.MustVisibility(15, 25))
	b.icon(ClassRestaurant, "restaurant.png", style.MustVisibility(16, 25))
	b.icon(ClassHotel, "hotel.png", style.MustVisibility(15, 25))

	return b.t, b
}

// Toner is a black and white high contrast theme.
func Toner(res resource.Provider) *MapTheme {
	black, white := style.Black, style.White
	t, _ := catalog("Toner", palette{
		background:   white,
		land:         white,
		water:        black,
		coast:        black,
		park:         hex("DDDDDDFF"),
		forest:       hex("CCCCCCFF"),
		building:     hex("999999FF"),
		residence:    hex("EEEEEEFF"),
		motorway:     black,
		primary:      black,
		secondary:    black,
		minor:        black,
		casing:       white,
		rail:         black,
		trail:        black,
		boundary:     black,
		poi:          black,
		label:        black,
		labelHalo:    white,
		primaryWidth: 2,
	}, res)
	return t
}

// Web is the default light street theme.
func Web(res resource.Provider) *MapTheme {
	t, _ := catalog("Web", palette{
		background:   hex("F2EFE9FF"),
		land:         hex("F2EFE9FF"),
		water:        hex("AAD3DFFF"),
		coast:        hex("7FB4C9FF"),
		park:         hex("C8FACCFF"),
		forest:       hex("ADD19EFF"),
		building:     hex("D9D0C9FF"),
		residence:    hex("E0DFDFFF"),
		motorway:     hex("E892A2FF"),
		primary:      hex("FCD6A4FF"),
		secondary:    hex("F7FABFFF"),
		minor:        style.White,
		casing:       hex("B9A48AFF"),
		rail:         hex("707070FF"),
		trail:        hex("FA8072FF"),
		boundary:     hex("9E9CABFF"),
		poi:          hex("734A08FF"),
		label:        hex("333333FF"),
		labelHalo:    style.White,
		primaryWidth: 3,
	}, res)
	return t
}

// Night is a dark theme for low light.
func Night(res resource.Provider) *MapTheme {
	t, _ := catalog("Night", palette{
		background:   hex("1B1F2AFF"),
		land:         hex("1B1F2AFF"),
		water:        hex("0E1A2BFF"),
		coast:        hex("35506EFF"),
		park:         hex("1F3326FF"),
		forest:       hex("1A2B20FF"),
		building:     hex("2B2F3AFF"),
		residence:    hex("222632FF"),
		motorway:     hex("8C6D3FFF"),
		primary:      hex("6B5A3EFF"),
		secondary:    hex("4D4B45FF"),
		minor:        hex("3A3D47FF"),
		casing:       hex("101218FF"),
		rail:         hex("5A5E6BFF"),
		trail:        hex("7A4E4AFF"),
		boundary:     hex("6E6A86FF"),
		poi:          hex("C9A35CFF"),
		label:        hex("C8C8D0FF"),
		labelHalo:    hex("101218FF"),
		primaryWidth: 3,
	}, res)
	return t
}

// Taxi emphasises the road network, primary routes in yellow.
func Taxi(res resource.Provider) *MapTheme {
	t, b := catalog("Taxi", palette{
		background:   hex("E8E8E8FF"),
		land:         hex("E8E8E8FF"),
		water:        hex("9CC0F9FF"),
		coast:        hex("6F9AD8FF"),
		park:         hex("D4E8C8FF"),
		forest:       hex("C4DDB5FF"),
		building:     hex("CFCFCFFF"),
		residence:    hex("DEDEDEFF"),
		motorway:     hex("FFB300FF"),
		primary:      hex("FFD600FF"),
		secondary:    hex("FFF176FF"),
		minor:        style.White,
		casing:       hex("5F5F5FFF"),
		rail:         hex("8A8A8AFF"),
		trail:        hex("B0B0B0FF"),
		boundary:     hex("8F8F8FFF"),
		poi:          hex("212121FF"),
		label:        hex("212121FF"),
		labelHalo:    style.White,
		primaryWidth: 4,
	}, res)
	// every street is shown early so addresses can be read
	b.add(b.line(ClassResidentialRoad, style.White, 1.5, style.MustVisibility(11, 25)))
	b.add(b.line(ClassServiceRoad, style.White, 1, style.MustVisibility(13, 25)))
	b.icon("Taxi Stand", "taxi.png", style.MustVisibility(13, 25))
	return t
}

// Trail is an outdoor theme that brings paths and terrain forward.
func Trail(res resource.Provider) *MapTheme {
	t, b := catalog("Trail", palette{
		background:   hex("F4F1E4FF"),
		land:         hex("F4F1E4FF"),
		water:        hex("9FC9E3FF"),
		coast:        hex("5E8FB3FF"),
		park:         hex("CFE6B8FF"),
		forest:       hex("A9CC8EFF"),
		building:     hex("C9BFB0FF"),
		residence:    hex("EAE4D4FF"),
		motorway:     hex("C2A98CFF"),
		primary:      hex("D6C2A0FF"),
		secondary:    hex("E3D6BBFF"),
		minor:        hex("EFE7D3FF"),
		casing:       hex("9C8A70FF"),
		rail:         hex("6B6B6BFF"),
		trail:        hex("B5291FFF"),
		boundary:     hex("7A7F9AFF"),
		poi:          hex("4A3B2AFF"),
		label:        hex("3C3327FF"),
		labelHalo:    hex("F4F1E4FF"),
		primaryWidth: 2,
	}, res)
	trail := b.line(ClassTrail, hex("B5291FFF"), 2, style.MustVisibility(9, 25))
	trail.Stroke = style.StrokeDashed
	b.add(trail)
	b.icon("Trailhead", "trailhead.png", style.MustVisibility(11, 25))
	b.icon("Campsite", "campsite.png", style.MustVisibility(12, 25))
	return t
}

// Climbing is Trail with crags and climbing areas.
func Climbing(res resource.Provider) *MapTheme {
	t := Trail(res).Copy("Climbing")
	b := builder{t: t, p: palette{
		poi:       hex("7A1F5CFF"),
		label:     hex("3C3327FF"),
		labelHalo: hex("F4F1E4FF"),
	}}
	b.icon("Crag", "crag.png", style.MustVisibility(10, 25))
	b.icon("Boulder", "boulder.png", style.MustVisibility(14, 25))
	b.icon(ClassPeak, "peak.png", style.MustVisibility(8, 25))

	area := b.polygon("Climbing Area", hex("7A1F5C40"), style.ConditionLand, style.MustVisibility(10, 25))
	area.AddOutline(style.MustOutlineStyle(hex("7A1F5CFF"), 1.5, style.ConditionAny))
	b.add(area)
	return t
}

var builtins = map[string]func(resource.Provider) *MapTheme{
	"Climbing": Climbing,
	"Night":    Night,
	"Taxi":     Taxi,
	"Toner":    Toner,
	"Trail":    Trail,
	"Web":      Web,
}

// BuiltinNames lists the built-in themes, sorted.
func BuiltinNames() []string {
	names := keys(builtins)
	slices.Sort(names)
	return names
}

// Builtin constructs a built-in theme by name, ignoring case.
func Builtin(name string, res resource.Provider) (*MapTheme, bool) {
	for n, fn := range builtins {
		if strings.EqualFold(n, name) {
			return fn(res), true
		}
	}
	return nil, false
}

// IsBuiltin reports whether name is a built-in theme, ignoring case.
func IsBuiltin(name string) bool {
	for n := range builtins {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// Builtins constructs every built-in theme, sorted by name.
func Builtins(res resource.Provider) []*MapTheme {
	names := BuiltinNames()
	out := make([]*MapTheme, 0, len(names))
	for _, n := range names {
		out = append(out, builtins[n](res))
	}
	return out
}
