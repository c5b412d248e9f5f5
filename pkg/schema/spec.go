package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// TourSpec is the declarative form of a tour.
type TourSpec struct {
	ID    string     `json:"id" yaml:"id" mapstructure:"id"`
	Title string     `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
	Steps []StepSpec `json:"steps" yaml:"steps" mapstructure:"steps"`
}

// StepSpec is the declarative form of a step.
type StepSpec struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Target      string `json:"target,omitempty" yaml:"target,omitempty" mapstructure:"target"`
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Placement uses the "side-align" shorthand, e.g. "right-start".
	Placement string `json:"placement,omitempty" yaml:"placement,omitempty" mapstructure:"placement"`

	// NextRoute is requested when advancing from this step; the controller
	// then waits for the next step's target.
	NextRoute string `json:"next_route,omitempty" yaml:"next_route,omitempty" mapstructure:"next_route"`

	// PrevRoute is requested when retreating from this step.
	PrevRoute string `json:"prev_route,omitempty" yaml:"prev_route,omitempty" mapstructure:"prev_route"`

	// DisableTarget blocks interaction with the target while the step is shown.
	DisableTarget bool `json:"disable_target,omitempty" yaml:"disable_target,omitempty" mapstructure:"disable_target"`
}

// Decode converts a loosely typed map (decoded JSON, YAML or front matter)
// into a TourSpec. Scalars are converted weakly ("true" becomes true);
// unknown keys are rejected so typos surface early.
func Decode(raw map[string]any) (TourSpec, error) {
	var spec TourSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return TourSpec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return TourSpec{}, fmt.Errorf("decode tour: %w", err)
	}
	return spec, nil
}

// DecodeStep converts a loosely typed map into a StepSpec.
func DecodeStep(raw map[string]any) (StepSpec, error) {
	var step StepSpec
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &step,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return StepSpec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return StepSpec{}, fmt.Errorf("decode step: %w", err)
	}
	return step, nil
}
