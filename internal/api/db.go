package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/foldingmap/internal/db"
)

// TableInput names a DuckDB table.
type TableInput struct {
	Table string `path:"table" doc:"Table name" example:"towns"`
}

// TablesOutput is the response for listing tables.
type TablesOutput struct {
	Body struct {
		Tables []string `json:"tables" doc:"List of table names"`
	}
}

type TableRampBody struct {
	RampOptions
	Theme  string `json:"theme" minLength:"1" doc:"Theme to store the ramp on" example:"Web"`
	Column string `json:"column" minLength:"1" doc:"Column whose values drive the ramp" example:"population"`
}

type ImportBody struct {
	Dataset string `json:"dataset" minLength:"1" doc:"Dataset to copy into the table" example:"peaks.geojson"`
}

// RegisterTables registers DuckDB attribute table routes.
func (h *APIHandler) RegisterTables(api huma.API) {
	huma.Get(api, "/api/v1/tables", h.ListTables, huma.OperationTags("tables"))
	huma.Get(api, "/api/v1/tables/{table}/columns", h.ListColumns, huma.OperationTags("tables"))
	huma.Put(api, "/api/v1/tables/{table}", h.ImportTable, huma.OperationTags("tables"))
	huma.Post(api, "/api/v1/tables/{table}/ramp", h.CreateTableRamp, huma.OperationTags("tables", "ramps"))
}

func (h *APIHandler) fields() (*db.FieldStore, error) {
	if h.svc.Fields == nil {
		return nil, huma.Error503ServiceUnavailable("Database not available")
	}
	return h.svc.Fields, nil
}

// ListTables returns all DuckDB tables.
func (h *APIHandler) ListTables(ctx context.Context, input *struct{}) (*TablesOutput, error) {
	store, err := h.fields()
	if err != nil {
		return nil, err
	}
	tables, err := store.Tables(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list tables", err)
	}
	out := &TablesOutput{}
	out.Body.Tables = tables
	return out, nil
}

func (h *APIHandler) ListColumns(ctx context.Context, input *TableInput) (*struct{ Body []string }, error) {
	store, err := h.fields()
	if err != nil {
		return nil, err
	}
	cols, err := store.Columns(ctx, input.Table)
	if err != nil {
		return nil, statusError(err)
	}
	return &struct{ Body []string }{Body: cols}, nil
}

// ImportTable copies a dataset's objects into a table, replacing it.
func (h *APIHandler) ImportTable(ctx context.Context, input *struct {
	TableInput
	Body ImportBody
}) (*struct{ Body CountBody }, error) {
	store, err := h.fields()
	if err != nil {
		return nil, err
	}
	datasets, err := h.datasets()
	if err != nil {
		return nil, err
	}
	c, err := datasets.Snapshot(input.Body.Dataset)
	if err != nil {
		return nil, statusError(err)
	}
	if err := store.ImportCollection(ctx, input.Table, c); err != nil {
		return nil, huma.Error500InternalServerError("Failed to import dataset", err)
	}
	return &struct{ Body CountBody }{Body: CountBody{Count: c.Len()}}, nil
}

// CreateTableRamp builds a ramp from the distinct values of a column.
func (h *APIHandler) CreateTableRamp(ctx context.Context, input *struct {
	TableInput
	Body TableRampBody
}) (*struct{ Body RampResult }, error) {
	store, err := h.fields()
	if err != nil {
		return nil, err
	}
	values, err := store.FieldValues(ctx, input.Table, input.Body.Column)
	if err != nil {
		return nil, statusError(err)
	}
	res, err := h.storeRamp(input.Body.Theme, values, input.Body.RampOptions)
	if err != nil {
		return nil, err
	}
	return &struct{ Body RampResult }{Body: res}, nil
}
