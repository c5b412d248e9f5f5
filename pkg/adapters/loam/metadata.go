package loam

// StepMetadata is the front matter of a step document. The document body
// becomes the step description.
type StepMetadata struct {
	// Tour groups documents into tours. Documents without it are ignored.
	Tour string `json:"tour" mapstructure:"tour"`

	// Order positions the step inside its tour; ties are broken by ID.
	Order int `json:"order" mapstructure:"order"`

	ID            string `json:"id" mapstructure:"id"`
	Target        string `json:"target" mapstructure:"target"`
	Title         string `json:"title" mapstructure:"title"`
	Placement     string `json:"placement" mapstructure:"placement"`
	NextRoute     string `json:"next_route" mapstructure:"next_route"`
	PrevRoute     string `json:"prev_route" mapstructure:"prev_route"`
	DisableTarget bool   `json:"disable_target" mapstructure:"disable_target"`
}
