package domain

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Params are named parameters forwarded verbatim to a metric function.
// They are not validated by the observers; a bad parameter surfaces as an
// error from the metric function itself.
type Params map[string]any

// Clone returns a shallow copy, or nil for an empty set.
func (p Params) Clone() Params {
	if len(p) == 0 {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Decode maps the params onto a typed struct using "mapstructure" tags.
// Loose input types (e.g. "0.5" for a float) are converted where possible.
func (p Params) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("failed to build params decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("invalid metric params: %w", err)
	}
	return nil
}
