package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/humastar"
	"github.com/joeblew999/foldingmap/internal/service"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/themefile"
)

type DatasetInput struct {
	Dataset string `path:"dataset" doc:"Dataset file name" example:"peaks.geojson"`
}

type ObjectsInput struct {
	DatasetInput
	Offset int    `query:"offset" minimum:"0" doc:"Index of the first object"`
	Limit  int    `query:"limit" minimum:"0" maximum:"1000" default:"100" doc:"Page size"`
	Scope  string `query:"scope" enum:"all,selected" default:"all" doc:"Objects to list"`
}

// ObjectBody is one map object without its coordinates.
type ObjectBody struct {
	ID         string                `json:"id"`
	Class      string                `json:"class"`
	Geometry   string                `json:"geometry" doc:"point, linestring, linearring, polygon or unknown"`
	Selected   bool                  `json:"selected"`
	Visibility *themefile.Visibility `json:"visibility,omitempty" doc:"Own zoom range, absent when always visible"`
	Fields     map[string]string     `json:"fields"`
}

type SelectBody struct {
	IDs []string `json:"ids" doc:"Object IDs to select; all others are deselected"`
}

type CountBody struct {
	Count int `json:"count" doc:"Number of objects affected"`
}

type AggregateBody struct {
	Dataset string `json:"dataset" minLength:"1" doc:"Dataset file name" example:"peaks.geojson"`
}

type AggregateResult struct {
	Count      int                   `json:"count" doc:"Number of selected objects"`
	Visibility *themefile.Visibility `json:"visibility" doc:"Combined zoom range of the selection"`
	Always     bool                  `json:"alwaysVisible" doc:"True when the combined range is the full range"`
}

type ApplyBody struct {
	Dataset string                 `json:"dataset" minLength:"1" doc:"Dataset file name" example:"peaks.geojson"`
	Edit    feature.VisibilityEdit `json:"edit" doc:"Visibility edit for the selected objects"`
}

// RegisterDatasets registers map object routes.
func (h *APIHandler) RegisterDatasets(api huma.API) {
	huma.Get(api, "/api/v1/datasets", h.ListDatasets, huma.OperationTags("datasets"))
	huma.Get(api, "/api/v1/datasets/{dataset}/objects", h.ListObjects, huma.OperationTags("datasets"))
	huma.Get(api, "/api/v1/datasets/{dataset}/fields", h.ListFields, huma.OperationTags("datasets"))
	huma.Post(api, "/api/v1/datasets/{dataset}/select", h.SelectObjects, huma.OperationTags("datasets"))
}

// RegisterVisibility registers the selection visibility editor routes.
func (h *APIHandler) RegisterVisibility(api huma.API) {
	huma.Post(api, "/api/v1/visibility/aggregate", h.AggregateVisibility, huma.OperationTags("visibility"))
	huma.Post(api, "/api/v1/visibility/apply", h.ApplyVisibility, huma.OperationTags("visibility"))
}

func (h *APIHandler) datasets() (*service.DatasetService, error) {
	if h.svc.Datasets == nil {
		return nil, huma.Error503ServiceUnavailable("dataset service not available")
	}
	return h.svc.Datasets, nil
}

func (h *APIHandler) ListDatasets(ctx context.Context, input *struct{}) (*struct{ Body []service.DatasetFile }, error) {
	if h.svc.Datasets == nil {
		return &struct{ Body []service.DatasetFile }{Body: []service.DatasetFile{}}, nil
	}
	files, err := h.svc.Datasets.List()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list datasets", err)
	}
	return &struct{ Body []service.DatasetFile }{Body: files}, nil
}

func (h *APIHandler) ListObjects(ctx context.Context, input *ObjectsInput) (*struct {
	Body humastar.PageBody[ObjectBody]
}, error) {
	svc, err := h.datasets()
	if err != nil {
		return nil, err
	}
	objs, err := svc.Objects(input.Dataset, feature.ParseScope(input.Scope))
	if err != nil {
		return nil, statusError(err)
	}
	bodies := make([]ObjectBody, len(objs))
	for i, o := range objs {
		bodies[i] = objectBody(o)
	}
	return &struct {
		Body humastar.PageBody[ObjectBody]
	}{Body: humastar.Paginate(bodies, input.Offset, input.Limit)}, nil
}

func (h *APIHandler) ListFields(ctx context.Context, input *DatasetInput) (*struct{ Body []string }, error) {
	svc, err := h.datasets()
	if err != nil {
		return nil, err
	}
	names, err := svc.FieldNames(input.Dataset)
	if err != nil {
		return nil, statusError(err)
	}
	if names == nil {
		names = []string{}
	}
	return &struct{ Body []string }{Body: names}, nil
}

func (h *APIHandler) SelectObjects(ctx context.Context, input *struct {
	DatasetInput
	Body SelectBody
}) (*struct{ Body CountBody }, error) {
	svc, err := h.datasets()
	if err != nil {
		return nil, err
	}
	n, err := svc.Select(input.Dataset, input.Body.IDs)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body CountBody }{Body: CountBody{Count: n}}, nil
}

func (h *APIHandler) AggregateVisibility(ctx context.Context, input *struct{ Body AggregateBody }) (*struct{ Body AggregateResult }, error) {
	svc, err := h.datasets()
	if err != nil {
		return nil, err
	}
	v, n, err := svc.AggregateVisibility(input.Body.Dataset)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body AggregateResult }{Body: AggregateResult{
		Count:      n,
		Visibility: visibilityBody(v),
		Always:     v.Equal(style.FullRange()),
	}}, nil
}

func (h *APIHandler) ApplyVisibility(ctx context.Context, input *struct{ Body ApplyBody }) (*struct{ Body CountBody }, error) {
	svc, err := h.datasets()
	if err != nil {
		return nil, err
	}
	n, err := svc.ApplyVisibility(input.Body.Dataset, input.Body.Edit)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body CountBody }{Body: CountBody{Count: n}}, nil
}

func objectBody(o *feature.Object) ObjectBody {
	fields := o.Fields
	if fields == nil {
		fields = map[string]string{}
	}
	return ObjectBody{
		ID:         o.ID,
		Class:      o.Class,
		Geometry:   o.GeometryKind().String(),
		Selected:   o.Selected,
		Visibility: visibilityBody(o.Visibility),
		Fields:     fields,
	}
}

func visibilityBody(v *style.Visibility) *themefile.Visibility {
	if v == nil {
		return nil
	}
	return &themefile.Visibility{MinZoom: v.MinZoom(), MaxZoom: v.MaxZoom()}
}
