package themefile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
)

func assertSameStyles(t *testing.T, want, got *theme.MapTheme) {
	t.Helper()
	for _, k := range []style.Kind{style.KindIcon, style.KindLine, style.KindPolygon} {
		require.Equal(t, want.StyleIDs(k), got.StyleIDs(k), k.String())
		for _, id := range want.StyleIDs(k) {
			w, g := want.Style(k, id), got.Style(k, id)
			assert.True(t, w.Equal(g), "%s %q differs", k, id)
		}
	}
}

func TestRoundTrip_Builtins(t *testing.T) {
	for _, src := range theme.Builtins(nil) {
		t.Run(src.Name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src))

			got, err := Decode(&buf, nil)
			require.NoError(t, err)
			assert.Equal(t, src.Name, got.Name)
			assert.Equal(t, src.Background, got.Background)
			assertSameStyles(t, src, got)
		})
	}
}

func TestRoundTrip_Ramps(t *testing.T) {
	src := theme.New("r", style.White, nil)
	r := ramp.New("kind", style.Transparent)
	r.AddEntry("b", style.Black)
	r.AddEntry("a", style.White)
	require.NoError(t, src.AddColorRamp(r))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src))
	got, err := Decode(&buf, nil)
	require.NoError(t, err)

	gr, ok := got.ColorRamp("kind")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, gr.Keys())
	assert.Equal(t, style.Transparent, gr.Color("zzz"))
}

func TestDecode_HandWritten(t *testing.T) {
	doc := `
name: Mine
background: "FFFFFFFF"
lines:
  - id: Ferry
    fill: "0000FFFF"
    outline: "0000FFFF"
    filled: true
    width: 1.5
    stroke: dashed
    visibility: {minZoom: 10, maxZoom: 18}
polygons:
  - id: Glacier
    fill: "E0F0FFFF"
    featureType: Land
    outlined: true
    outlines:
      - {condition: Water, color: "000080FF", selectedColor: "3399FFFF", width: 2}
      - {condition: Any, color: "808080FF", selectedColor: "3399FFFF", width: 1}
`
	th, err := Decode(strings.NewReader(doc), nil)
	require.NoError(t, err)

	ferry, ok := th.LineStyle("Ferry")
	require.True(t, ok)
	assert.Equal(t, 1.5, ferry.Width())
	assert.Equal(t, style.StrokeDashed, ferry.Stroke)
	assert.Nil(t, ferry.Label, "absent label stays absent")
	assert.True(t, ferry.Visibility.Equal(style.MustVisibility(10, 18)))

	o, ok := th.OutlineByCondition("Glacier", "water")
	require.True(t, ok)
	assert.Equal(t, 2.0, o.Width())
	o, _ = th.OutlineByCondition("Glacier", "Road")
	assert.True(t, o.IsAny())

	assert.NotNil(t, th.Unspecified(style.KindPolygon), "fallbacks are always present")
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero width", "name: x\nlines:\n  - {id: a, fill: \"000000FF\", width: 0}\n"},
		{"bad visibility", "name: x\nicons:\n  - {id: a, fill: \"000000FF\", visibility: {minZoom: 9, maxZoom: 2}}\n"},
		{"bad colour", "name: x\nbackground: \"red\"\n"},
		{"bad outline width", "name: x\npolygons:\n  - id: p\n    fill: \"000000FF\"\n    outlines: [{condition: Any, color: \"000000FF\", width: -1}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), nil)
			assert.Error(t, err)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes", "night.yaml")
	src := theme.Night(nil)
	require.NoError(t, Save(path, src))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assertSameStyles(t, src, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestSave_Replaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mine.yaml")
	require.NoError(t, Save(path, theme.Night(nil)))
	require.NoError(t, Save(path, theme.New("Mine", style.White, nil)))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	// a directory in the way fails the save and keeps nothing half-written
	blocked := filepath.Join(dir, "blocked.yaml")
	require.NoError(t, os.Mkdir(blocked, 0755))
	assert.Error(t, Save(blocked, theme.Night(nil)))
	entries, _ = os.ReadDir(dir)
	assert.Len(t, entries, 2)
}

func TestEntry(t *testing.T) {
	th := theme.Toner(nil)
	s := th.GetStyle(theme.ClassPrimaryHighway, style.GeometryLineString)
	e := FromStyle(s)
	assert.Equal(t, "line", e.Kind)
	require.NotNil(t, e.Line)
	assert.Nil(t, e.Icon)

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"fill":"000000FF"`)
	assert.Contains(t, string(data), `"width":2`)

	var back Entry
	require.NoError(t, json.Unmarshal(data, &back))
	got, err := back.Style(nil)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))

	_, err = Entry{Kind: "icon"}.Style(nil)
	assert.Error(t, err)
	_, err = Entry{Kind: "blob"}.Style(nil)
	assert.Error(t, err)
}
