package api

import (
	"context"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/humastar"
	"github.com/joeblew999/foldingmap/internal/style"
)

// RegisterEvents registers the Datastar change stream and the selection
// visibility editor.
func (h *APIHandler) RegisterEvents(api huma.API) {
	huma.Get(api, "/api/v1/events", h.Events, huma.OperationTags("editor"))
	huma.Post(api, "/api/v1/editor/visibility", h.EditVisibility, huma.OperationTags("editor"))
}

// Events streams theme and dataset change events as Datastar signals until
// the client goes away.
func (h *APIHandler) Events(ctx context.Context, input *humastar.EmptyInput) (*huma.StreamResponse, error) {
	if h.svc.Bus == nil {
		return nil, huma.Error503ServiceUnavailable("event bus not available")
	}
	bus := h.svc.Bus
	return humastar.Stream(func(sse humastar.SSE) {
		ch := bus.Subscribe()
		defer bus.Unsubscribe(ch)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-ch:
				if !ok {
					return
				}
				sse.Signals(map[string]any{
					"resource": ev.Resource,
					"action":   ev.Action,
					"id":       ev.ID,
				})
			}
		}
	}), nil
}

// EditVisibility reads the editor form signals, applies the edit to the
// selection and patches the aggregated range back into the form.
//
// Signals: dataset, alwaysvisible, usemin, usemax, zoom.
func (h *APIHandler) EditVisibility(ctx context.Context, input *humastar.SignalsInput) (*huma.StreamResponse, error) {
	signals, err := input.Parse()
	if err != nil {
		return nil, err
	}
	svc, err := h.datasets()
	if err != nil {
		return nil, err
	}
	name := signals.String("dataset")
	edit := feature.VisibilityEdit{
		AlwaysVisible: signals.Bool("alwaysvisible"),
		UseMin:        signals.Bool("usemin"),
		UseMax:        signals.Bool("usemax"),
		Zoom:          signals.Float("zoom"),
	}

	return humastar.Stream(func(sse humastar.SSE) {
		n, err := svc.ApplyVisibility(name, edit)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		v, _, err := svc.AggregateVisibility(name)
		if err != nil {
			sse.Error(err.Error())
			return
		}
		sse.Signals(editorSignals(v))
		sse.Success(pluralObjects(n) + " updated")
	}), nil
}

// editorSignals describes an aggregated range the way the form shows it.
func editorSignals(v *style.Visibility) map[string]any {
	if v.Equal(style.FullRange()) {
		return map[string]any{"alwaysvisible": true, "usemin": false, "usemax": false, "minzoom": style.MinZoomLevel, "maxzoom": style.MaxZoomLevel}
	}
	return map[string]any{
		"alwaysvisible": false,
		"usemin":        v.MinZoom() > style.MinZoomLevel,
		"usemax":        v.MaxZoom() < style.MaxZoomLevel,
		"minzoom":       v.MinZoom(),
		"maxzoom":       v.MaxZoom(),
	}
}

func pluralObjects(n int) string {
	if n == 1 {
		return "1 object"
	}
	return fmt.Sprintf("%d objects", n)
}
