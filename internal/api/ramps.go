package api

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/joeblew999/foldingmap/internal/feature"
	"github.com/joeblew999/foldingmap/internal/ramp"
	"github.com/joeblew999/foldingmap/internal/style"
	"github.com/joeblew999/foldingmap/internal/themefile"
)

// RampOptions controls how a set of field values becomes a colour ramp.
type RampOptions struct {
	ID        string                 `json:"id" minLength:"1" doc:"Ramp ID" example:"population"`
	Palette   string                 `json:"palette,omitempty" doc:"Gradient palette, built-in name or gradients/ file" example:"Heat"`
	Min       float64                `json:"min,omitempty" doc:"Value mapped to the start of the palette"`
	Max       float64                `json:"max,omitempty" doc:"Value mapped to the end of the palette"`
	Alpha     *uint8                 `json:"alpha,omitempty" doc:"Alpha of gradient colours, 255 when omitted"`
	Normalize bool                   `json:"normalize,omitempty" doc:"Divide by max-min instead of max"`
	AutoRange bool                   `json:"autoRange,omitempty" doc:"Use the min and max of the values"`
	Overrides map[string]style.Color `json:"overrides,omitempty" doc:"Fixed colours for categorical keys"`
	Default   style.Color            `json:"defaultColor,omitempty" doc:"Colour for keys missing from the ramp"`
}

type CreateRampBody struct {
	RampOptions
	Values   []string `json:"values,omitempty" doc:"Field values, used when no dataset is given"`
	Dataset  string   `json:"dataset,omitempty" doc:"Dataset to read the field from" example:"peaks.geojson"`
	Variable string   `json:"variable,omitempty" doc:"Field name in the dataset" example:"ele"`
	Scope    string   `json:"scope,omitempty" enum:"all,selected" doc:"Objects the values are read from"`
}

type RampResult struct {
	Mode string         `json:"mode" enum:"categorical,numeric" doc:"How the values were classified"`
	Ramp themefile.Ramp `json:"ramp" doc:"The stored ramp"`
}

type RampColorInput struct {
	NameInput
	ID  string `path:"id" doc:"Ramp ID" example:"population"`
	Key string `query:"key" doc:"Ramp key to colour" example:"1200"`
}

type RampColorBody struct {
	Key     string      `json:"key" doc:"Requested key"`
	Color   style.Color `json:"color" doc:"Colour, RRGGBBAA"`
	Matched bool        `json:"matched" doc:"False when the default colour was used"`
}

// RegisterRamps registers colour ramp routes.
func (h *APIHandler) RegisterRamps(api huma.API) {
	huma.Post(api, "/api/v1/themes/{name}/ramps", h.CreateRamp, huma.OperationTags("ramps"))
	huma.Get(api, "/api/v1/themes/{name}/ramps/{id}/color", h.GetRampColor, huma.OperationTags("ramps"))
}

func (h *APIHandler) CreateRamp(ctx context.Context, input *struct {
	NameInput
	Body CreateRampBody
}) (*struct{ Body RampResult }, error) {
	b := input.Body
	values := b.Values
	if b.Dataset != "" {
		if h.svc.Datasets == nil {
			return nil, huma.Error503ServiceUnavailable("dataset service not available")
		}
		if b.Variable == "" {
			return nil, huma.Error400BadRequest("variable is required with dataset")
		}
		v, err := h.svc.Datasets.FieldValues(b.Dataset, b.Variable, feature.ParseScope(b.Scope))
		if err != nil {
			return nil, statusError(err)
		}
		values = v
	}
	res, err := h.storeRamp(input.Name, values, b.RampOptions)
	if err != nil {
		return nil, err
	}
	return &struct{ Body RampResult }{Body: res}, nil
}

// storeRamp builds a ramp from values and saves it on the named theme.
func (h *APIHandler) storeRamp(themeName string, values []string, opts RampOptions) (RampResult, error) {
	svc, err := h.themes()
	if err != nil {
		return RampResult{}, err
	}
	cfg, err := h.rampConfig(opts)
	if err != nil {
		return RampResult{}, err
	}
	r, mode := ramp.Build(opts.ID, values, cfg)
	if err := svc.PutRamp(themeName, r); err != nil {
		return RampResult{}, statusError(err)
	}
	return RampResult{Mode: mode.String(), Ramp: themefile.FromRamp(r)}, nil
}

func (h *APIHandler) rampConfig(opts RampOptions) (ramp.Config, error) {
	cfg := ramp.Config{
		Gradient: ramp.GradientOptions{
			Min:       opts.Min,
			Max:       opts.Max,
			Alpha:     255,
			Normalize: opts.Normalize,
		},
		AutoRange:    opts.AutoRange,
		Overrides:    opts.Overrides,
		DefaultColor: opts.Default,
	}
	if opts.Alpha != nil {
		cfg.Gradient.Alpha = *opts.Alpha
	}
	if opts.Palette != "" {
		p, err := ramp.LoadPalette(h.svc.Resources, opts.Palette)
		if err != nil {
			return ramp.Config{}, huma.Error400BadRequest(err.Error())
		}
		cfg.Palette = &p
	}
	return cfg, nil
}

func (h *APIHandler) GetRampColor(ctx context.Context, input *RampColorInput) (*struct{ Body RampColorBody }, error) {
	svc, err := h.themes()
	if err != nil {
		return nil, err
	}
	t, ok := svc.Get(input.Name)
	if !ok {
		return nil, huma.Error404NotFound("theme not found")
	}
	r, ok := t.ColorRamp(input.ID)
	if !ok {
		return nil, huma.Error404NotFound("ramp not found")
	}
	c, matched := r.Lookup(input.Key)
	if !matched {
		c = r.Color(input.Key)
	}
	return &struct{ Body RampColorBody }{Body: RampColorBody{Key: input.Key, Color: c, Matched: matched}}, nil
}
