package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeblew999/foldingmap/internal/service"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/theme"
	"github.com/joeblew999/foldingmap/internal/themefile"
)

const peaks = `{"type":"FeatureCollection","features":[
 {"type":"Feature","id":"a","geometry":{"type":"Point","coordinates":[0,0]},"properties":{"class":"Peak","ele":"1200","minZoom":3,"maxZoom":10}},
 {"type":"Feature","id":"b","geometry":{"type":"Point","coordinates":[1,1]},"properties":{"class":"Peak","ele":"900","minZoom":5,"maxZoom":20}},
 {"type":"Feature","id":"c","geometry":{"type":"Point","coordinates":[2,2]},"properties":{"class":"Peak","ele":"1500"}}
]}`

func newTestAPI(t *testing.T) (humatest.TestAPI, *Services) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sources"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sources", "peaks.geojson"), []byte(peaks), 0644))

	bus := service.NewEventBus()
	svc := &Services{
		Themes:   service.NewThemeService(dir, nil, bus),
		Datasets: service.NewDatasetService(dir, bus),
		Bus:      bus,
	}
	_, api := humatest.New(t, huma.DefaultConfig("foldingmap test", "1.0.0"))
	RegisterRoutes(api, svc)
	NewInfoHandler(dir, false).RegisterRoutes(api)
	return api, svc
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestHealthAndInfo(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", decode[HealthBody](t, resp.Body.Bytes()).Status)

	resp = api.Get("/api/v1/info")
	require.Equal(t, http.StatusOK, resp.Code)
	info := decode[InfoBody](t, resp.Body.Bytes())
	assert.Equal(t, "foldingmap", info.Name)
	assert.Contains(t, info.Themes, "Toner")
	assert.NotContains(t, info.Features, "duckdb")
}

func TestThemes_ListAndGet(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/api/v1/themes")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decode[[]service.ThemeInfo](t, resp.Body.Bytes())
	assert.Len(t, list, len(theme.BuiltinNames()))

	resp = api.Get("/api/v1/themes/toner")
	require.Equal(t, http.StatusOK, resp.Code)
	doc := decode[themefile.Document](t, resp.Body.Bytes())
	assert.Equal(t, "Toner", doc.Name)
	assert.NotEmpty(t, doc.Lines)

	assert.Equal(t, http.StatusNotFound, api.Get("/api/v1/themes/sepia").Code)
}

func TestThemes_Resolve(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Post("/api/v1/themes/Toner/resolve", map[string]any{
		"objectClass": theme.ClassPrimaryHighway,
		"geometry":    "linestring",
		"zoom":        5,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	res := decode[ResolveResult](t, resp.Body.Bytes())
	require.True(t, res.Found)
	assert.True(t, res.Visible)
	require.NotNil(t, res.Style.Line)
	assert.Equal(t, "line", res.Style.Kind)
	assert.Equal(t, 2.0, res.Style.Line.Width)
	assert.Equal(t, style.Black, res.Style.Line.Fill)
	assert.Nil(t, res.Fallback)

	resp = api.Post("/api/v1/themes/Toner/resolve", map[string]any{
		"objectClass": "Ferry Route",
		"geometry":    "linestring",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	res = decode[ResolveResult](t, resp.Body.Bytes())
	assert.False(t, res.Found)
	assert.Nil(t, res.Style)
	require.NotNil(t, res.Fallback)
	assert.Equal(t, theme.UnspecifiedLinestring, res.Fallback.Line.ID)

	// residential roads only show from zoom 13
	resp = api.Post("/api/v1/themes/Toner/resolve", map[string]any{
		"objectClass": theme.ClassResidentialRoad,
		"geometry":    "linestring",
		"zoom":        4,
	})
	assert.False(t, decode[ResolveResult](t, resp.Body.Bytes()).Visible)

	// the object's own range wins
	resp = api.Post("/api/v1/themes/Toner/resolve", map[string]any{
		"objectClass": theme.ClassResidentialRoad,
		"geometry":    "linestring",
		"zoom":        4,
		"visibility":  map[string]any{"minZoom": 2, "maxZoom": 6},
	})
	assert.True(t, decode[ResolveResult](t, resp.Body.Bytes()).Visible)
}

func TestThemes_Outline(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/api/v1/themes/Toner/polygons/Water/outline?condition=land")
	require.Equal(t, http.StatusOK, resp.Code)
	o := decode[themefile.Outline](t, resp.Body.Bytes())
	assert.Equal(t, style.ConditionLand, o.Condition)

	resp = api.Get("/api/v1/themes/Toner/polygons/Forest/outline?condition=Road")
	require.Equal(t, http.StatusOK, resp.Code)
	o = decode[themefile.Outline](t, resp.Body.Bytes())
	assert.Equal(t, 1.0, o.Width, "synthesized from the fill")
	assert.Equal(t, "solid", o.Stroke)

	assert.Equal(t, http.StatusNotFound, api.Get("/api/v1/themes/Toner/polygons/Nope/outline").Code)
}

func TestThemes_CreateEditDelete(t *testing.T) {
	api, svc := newTestAPI(t)

	resp := api.Post("/api/v1/themes", map[string]any{"name": "Mine", "base": "Web"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, http.StatusConflict, api.Post("/api/v1/themes", map[string]any{"name": "mine"}).Code)
	assert.Equal(t, http.StatusNotFound, api.Post("/api/v1/themes", map[string]any{"name": "Other", "base": "Sepia"}).Code)

	ferry := themefile.FromStyle(style.MustLineStyle("Ferry", style.RGB(0, 0, 255), 1.5))
	resp = api.Put("/api/v1/themes/Mine/styles", ferry)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, http.StatusForbidden, api.Put("/api/v1/themes/Toner/styles", ferry).Code)

	mine, ok := svc.Themes.Get("Mine")
	require.True(t, ok)
	assert.NotNil(t, mine.GetStyle("Ferry", style.GeometryLineString))

	resp = api.Get("/api/v1/themes/Mine/styles/line/Ferry/xml")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/xml", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Body.String(), "Ferry")

	assert.Equal(t, http.StatusOK, api.Delete("/api/v1/themes/Mine/styles/line/Ferry").Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/api/v1/themes/Mine/styles/line/Ferry").Code)
	assert.Equal(t, http.StatusNotFound, api.Get("/api/v1/themes/Mine/styles/line/Ferry/xml").Code)

	assert.Equal(t, http.StatusForbidden, api.Delete("/api/v1/themes/Toner").Code)
	assert.Equal(t, http.StatusOK, api.Delete("/api/v1/themes/Mine").Code)
	assert.Equal(t, http.StatusNotFound, api.Delete("/api/v1/themes/Mine").Code)
}

func TestRamps(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Post("/api/v1/themes/Web/ramps", map[string]any{
		"id":     "kind",
		"values": []string{"town", "city", ""},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	res := decode[RampResult](t, resp.Body.Bytes())
	assert.Equal(t, "categorical", res.Mode)
	assert.Len(t, res.Ramp.Entries, 2)

	resp = api.Post("/api/v1/themes/Web/ramps", map[string]any{
		"id":        "ele",
		"dataset":   "peaks.geojson",
		"variable":  "ele",
		"palette":   "Heat",
		"autoRange": true,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	res = decode[RampResult](t, resp.Body.Bytes())
	assert.Equal(t, "numeric", res.Mode)
	assert.Len(t, res.Ramp.Entries, 3)

	resp = api.Get("/api/v1/themes/Web/ramps/ele/color?key=900")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decode[RampColorBody](t, resp.Body.Bytes()).Matched)

	resp = api.Get("/api/v1/themes/Web/ramps/ele/color?key=1")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.False(t, decode[RampColorBody](t, resp.Body.Bytes()).Matched)

	assert.Equal(t, http.StatusNotFound, api.Get("/api/v1/themes/Web/ramps/nope/color?key=1").Code)
	assert.Equal(t, http.StatusBadRequest, api.Post("/api/v1/themes/Web/ramps", map[string]any{
		"id": "x", "values": []string{"1"}, "palette": "Sepia",
	}).Code)
	assert.Equal(t, http.StatusNotFound, api.Post("/api/v1/themes/Web/ramps", map[string]any{
		"id": "x", "dataset": "missing.geojson", "variable": "ele",
	}).Code)
}

func TestVisibilityFlow(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/api/v1/datasets")
	require.Equal(t, http.StatusOK, resp.Code)
	files := decode[[]service.DatasetFile](t, resp.Body.Bytes())
	require.Len(t, files, 1)

	resp = api.Post("/api/v1/datasets/peaks.geojson/select", SelectBody{IDs: []string{"a", "b"}})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 2, decode[CountBody](t, resp.Body.Bytes()).Count)

	resp = api.Post("/api/v1/visibility/aggregate", AggregateBody{Dataset: "peaks.geojson"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	agg := decode[AggregateResult](t, resp.Body.Bytes())
	assert.Equal(t, 2, agg.Count)
	assert.Equal(t, &themefile.Visibility{MinZoom: 3, MaxZoom: 20}, agg.Visibility)
	assert.False(t, agg.Always)

	resp = api.Post("/api/v1/visibility/apply", map[string]any{
		"dataset": "peaks.geojson",
		"edit":    map[string]any{"useMax": true, "zoom": 12},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 2, decode[CountBody](t, resp.Body.Bytes()).Count)

	agg = decode[AggregateResult](t, api.Post("/api/v1/visibility/aggregate", AggregateBody{Dataset: "peaks.geojson"}).Body.Bytes())
	assert.Equal(t, &themefile.Visibility{MinZoom: 0, MaxZoom: 12}, agg.Visibility)

	resp = api.Post("/api/v1/visibility/apply", map[string]any{
		"dataset": "peaks.geojson",
		"edit":    map[string]any{"alwaysVisible": true},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	agg = decode[AggregateResult](t, api.Post("/api/v1/visibility/aggregate", AggregateBody{Dataset: "peaks.geojson"}).Body.Bytes())
	assert.True(t, agg.Always)

	assert.Equal(t, http.StatusNotFound, api.Post("/api/v1/visibility/aggregate", AggregateBody{Dataset: "nope.geojson"}).Code)
}

func TestObjectsPaging(t *testing.T) {
	api, _ := newTestAPI(t)

	resp := api.Get("/api/v1/datasets/peaks.geojson/objects?limit=2")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	page := decode[struct {
		Total int          `json:"total"`
		Data  []ObjectBody `json:"data"`
	}](t, resp.Body.Bytes())
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "point", page.Data[0].Geometry)
	assert.Equal(t, "1200", page.Data[0].Fields["ele"])

	resp = api.Get("/api/v1/datasets/peaks.geojson/fields")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, []string{"ele"}, decode[[]string](t, resp.Body.Bytes()))
}

func TestLinkTransformer(t *testing.T) {
	cfg := huma.DefaultConfig("foldingmap test", "1.0.0")
	cfg.Transformers = append(cfg.Transformers, LinkTransformer())
	_, api := humatest.New(t, cfg)
	svc := &Services{Datasets: service.NewDatasetService(t.TempDir(), nil)}
	RegisterRoutes(api, svc)

	resp := api.Get("/health")
	links := strings.Join(resp.Header().Values("Link"), ",")
	assert.Contains(t, links, `rel="themes"`)
	assert.NotContains(t, links, `rel="self"`)
}

func TestUnavailableBackends(t *testing.T) {
	_, api := humatest.New(t, huma.DefaultConfig("foldingmap test", "1.0.0"))
	RegisterRoutes(api, nil)

	assert.Equal(t, http.StatusOK, api.Get("/api/v1/themes").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/themes/Toner").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/tables").Code)
	assert.Equal(t, http.StatusServiceUnavailable, api.Get("/api/v1/events").Code)
}
