package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/paulmach/orb"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/service"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/themefile"
)

type CreateThemeBody struct {
	Name       string      `json:"name" minLength:"1" doc:"New theme name" example:"My Trail"`
	Base       string      `json:"base,omitempty" doc:"Theme to copy styles from" example:"Trail"`
	Background style.Color `json:"background,omitempty" doc:"Background colour when no base is given, RRGGBBAA" example:"FFFFFFFF"`
}

type ResolveBody struct {
	ObjectClass string                `json:"objectClass" doc:"Object class to look up" example:"Road - Primary Highway"`
	Geometry    string                `json:"geometry" enum:"point,linestring,polygon" doc:"Geometry of the object"`
	Zoom        float64               `json:"zoom,omitempty" minimum:"0" maximum:"25" doc:"Zoom level for the visibility check"`
	Visibility  *themefile.Visibility `json:"visibility,omitempty" doc:"The object's own zoom range, overriding the style's"`
}

type ResolveResult struct {
	Found   bool             `json:"found" doc:"Whether the theme has a style for the class"`
	Visible bool             `json:"visible" doc:"Whether the object is drawn at the zoom"`
	Style   *themefile.Entry `json:"style,omitempty" doc:"The matched style, absent on a miss"`
	// Fallback is set on a miss so callers can draw the object anyway.
	Fallback *themefile.Entry `json:"fallback,omitempty" doc:"The unspecified style for the geometry, set on a miss"`
}

type StyleKeyInput struct {
	NameInput
	Kind string `path:"kind" enum:"icon,line,polygon" doc:"Style kind"`
	ID   string `path:"id" doc:"Style ID" example:"Water"`
}

type OutlineInput struct {
	NameInput
	ID        string `path:"id" doc:"Polygon style ID" example:"Land"`
	Condition string `query:"condition" doc:"Border condition" example:"Water"`
}

// RegisterThemes registers theme CRUD and lookup routes.
func (h *APIHandler) RegisterThemes(api huma.API) {
	huma.Get(api, "/api/v1/themes", h.ListThemes, huma.OperationTags("themes"))
	huma.Post(api, "/api/v1/themes", h.CreateTheme, huma.OperationTags("themes"))
	huma.Get(api, "/api/v1/themes/{name}", h.GetTheme, huma.OperationTags("themes"))
	huma.Delete(api, "/api/v1/themes/{name}", h.DeleteTheme, huma.OperationTags("themes"))
	huma.Post(api, "/api/v1/themes/{name}/resolve", h.ResolveStyle, huma.OperationTags("themes"))
	huma.Get(api, "/api/v1/themes/{name}/polygons/{id}/outline", h.GetOutline, huma.OperationTags("themes"))
}

// RegisterStyles registers style editing routes.
func (h *APIHandler) RegisterStyles(api huma.API) {
	huma.Put(api, "/api/v1/themes/{name}/styles", h.PutStyle, huma.OperationTags("styles"))
	huma.Delete(api, "/api/v1/themes/{name}/styles/{kind}/{id}", h.DeleteStyle, huma.OperationTags("styles"))
	huma.Register(api, huma.Operation{
		OperationID: "get-style-xml",
		Method:      http.MethodGet,
		Path:        "/api/v1/themes/{name}/styles/{kind}/{id}/xml",
		Summary:     "Get style as XML",
		Tags:        []string{"styles"},
	}, h.GetStyleXML)
}

func (h *APIHandler) themes() (*service.ThemeService, error) {
	if h.svc.Themes == nil {
		return nil, huma.Error503ServiceUnavailable("theme service not available")
	}
	return h.svc.Themes, nil
}

func (h *APIHandler) ListThemes(ctx context.Context, input *struct{}) (*struct{ Body []service.ThemeInfo }, error) {
	if h.svc.Themes == nil {
		return &struct{ Body []service.ThemeInfo }{Body: []service.ThemeInfo{}}, nil
	}
	return &struct{ Body []service.ThemeInfo }{Body: h.svc.Themes.List()}, nil
}

func (h *APIHandler) CreateTheme(ctx context.Context, input *struct{ Body CreateThemeBody }) (*struct{ Body *themefile.Document }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	t, err := svc.Create(input.Body.Name, input.Body.Base, input.Body.Background)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body *themefile.Document }{Body: themefile.FromTheme(t)}, nil
}

func (h *APIHandler) GetTheme(ctx context.Context, input *NameInput) (*struct{ Body *themefile.Document }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	t, ok := svc.Get(input.Name)
	if !ok {
		return nil, huma.Error404NotFound("theme not found")
	}
	return &struct{ Body *themefile.Document }{Body: themefile.FromTheme(t)}, nil
}

func (h *APIHandler) DeleteTheme(ctx context.Context, input *NameInput) (*struct{ Body MessageBody }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	if err := svc.Delete(input.Name); err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Theme deleted"}}, nil
}

func (h *APIHandler) ResolveStyle(ctx context.Context, input *struct {
	NameInput
	Body ResolveBody
}) (*struct{ Body ResolveResult }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	t, ok := svc.Get(input.Name)
	if !ok {
		return nil, huma.Error404NotFound("theme not found")
	}
	geom, err := style.ParseGeometry(input.Body.Geometry)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	obj := &feature.Object{Class: input.Body.ObjectClass, Geometry: placeholder(geom)}
	if v := input.Body.Visibility; v != nil {
		vis, err := style.NewVisibility(v.MinZoom, v.MaxZoom)
		if err != nil {
			return nil, huma.Error400BadRequest(err.Error())
		}
		obj.Visibility = vis
	}

	res := ResolveResult{Visible: t.IsVisible(obj, input.Body.Zoom)}
	if s := t.GetStyleAtZoom(obj.Class, geom, input.Body.Zoom); s != nil {
		e := themefile.FromStyle(s)
		res.Found, res.Style = true, &e
	} else if fb := t.Unspecified(geom.Kind()); fb != nil {
		e := themefile.FromStyle(fb)
		res.Fallback = &e
	}
	return &struct{ Body ResolveResult }{Body: res}, nil
}

func (h *APIHandler) GetOutline(ctx context.Context, input *OutlineInput) (*struct{ Body themefile.Outline }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	t, ok := svc.Get(input.Name)
	if !ok {
		return nil, huma.Error404NotFound("theme not found")
	}
	o, ok := t.OutlineByCondition(input.ID, input.Condition)
	if !ok {
		return nil, huma.Error404NotFound("polygon style not found")
	}
	return &struct{ Body themefile.Outline }{Body: themefile.Outline{
		Condition:     o.BorderCondition,
		Color:         o.Color,
		SelectedColor: o.SelectedColor,
		Stroke:        o.Stroke.String(),
		Width:         o.Width(),
	}}, nil
}

func (h *APIHandler) PutStyle(ctx context.Context, input *struct {
	NameInput
	Body themefile.Entry
}) (*struct{ Body themefile.Entry }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	s, err := input.Body.Style(h.svc.Resources)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	if err := svc.PutStyle(input.Name, s); err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body themefile.Entry }{Body: themefile.FromStyle(s)}, nil
}

func (h *APIHandler) DeleteStyle(ctx context.Context, input *StyleKeyInput) (*struct{ Body MessageBody }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	kind, err := style.ParseKind(input.Kind)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	if err := svc.RemoveStyle(input.Name, kind, input.ID); err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body MessageBody }{Body: MessageBody{Message: "Style deleted"}}, nil
}

type XMLOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func (h *APIHandler) GetStyleXML(ctx context.Context, input *StyleKeyInput) (*XMLOutput, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	t, ok := svc.Get(input.Name)
	if !ok {
		return nil, huma.Error404NotFound("theme not found")
	}
	kind, err := style.ParseKind(input.Kind)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	s := t.Style(kind, input.ID)
	if s == nil {
		return nil, huma.Error404NotFound("style not found")
	}
	var buf bytes.Buffer
	if err := style.WriteXML(&buf, s); err != nil {
		return nil, huma.Error500InternalServerError("Failed to encode style", err)
	}
	return &XMLOutput{ContentType: "application/xml", Body: buf.Bytes()}, nil
}

// placeholder returns an empty orb geometry of the given kind so lookups
// that take an object can run without coordinates.
func placeholder(g style.Geometry) orb.Geometry {
	switch g {
	case style.GeometryPoint:
		return orb.Point{}
	case style.GeometryLineString:
		return orb.LineString{}
	case style.GeometryLinearRing:
		return orb.Ring{}
	case style.GeometryPolygon:
		return orb.Polygon{}
	}
	return nil
}
