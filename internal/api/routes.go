// Package api defines the Huma API routes and handlers.
package api

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/foldingmap/internal/db"
	"github.com/joeblew999/foldingmap/internal/resource"
	"github.com/joeblew999/foldingmap/internal/service"
)

// Services holds the service dependencies for API handlers. Fields may be nil
// when the matching backend is unavailable.
type Services struct {
	Themes    *service.ThemeService
	Datasets  *service.DatasetService
	Fields    *db.FieldStore
	Bus       *service.EventBus
	Resources resource.Provider
}

// Types

type NameInput struct {
	Name string `path:"name" doc:"Theme name, case-insensitive" example:"Toner"`
}

type MessageBody struct {
	Message string `json:"message" doc:"Result message"`
}

type HealthBody struct {
	Status  string `json:"status" doc:"Health status" example:"ok"`
	Version string `json:"version" doc:"API version" example:"1.0.0"`
}

// APIHandler holds all REST API handlers. Methods named Register* are
// auto-discovered by huma.AutoRegister.
type APIHandler struct {
	svc *Services
}

func NewAPIHandler(svc *Services) *APIHandler {
	if svc == nil {
		svc = &Services{}
	}
	return &APIHandler{svc: svc}
}

// RegisterRoutes wires every handler group onto api.
func RegisterRoutes(api huma.API, svc *Services) {
	huma.AutoRegister(api, NewAPIHandler(svc))
}

// RegisterHealth registers health check routes.
func (h *APIHandler) RegisterHealth(api huma.API) {
	huma.Get(api, "/health", h.GetHealth, huma.OperationTags("health"))
}

func (h *APIHandler) GetHealth(ctx context.Context, input *struct{}) (*struct{ Body HealthBody }, error) {
	return &struct{ Body HealthBody }{Body: HealthBody{Status: "ok", Version: "1.0.0"}}, nil
}

// statusError maps service errors onto HTTP problems.
func statusError(err error) error {
	switch {
	case errors.Is(err, service.ErrThemeNotFound),
		errors.Is(err, service.ErrStyleNotFound),
		errors.Is(err, service.ErrDatasetNotFound),
		errors.Is(err, db.ErrNoTable),
		errors.Is(err, db.ErrNoColumn):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, service.ErrThemeExists):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, service.ErrBuiltinReadOnly):
		return huma.Error403Forbidden(err.Error())
	}
	return huma.Error400BadRequest(err.Error())
}
