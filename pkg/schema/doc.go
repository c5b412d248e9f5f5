// Package schema defines declarative tour definitions.
//
// A TourSpec describes a tour as data (YAML files, Markdown front matter or
// JSON over the wire). Decode turns a loosely typed map into a TourSpec,
// Validate reports every problem at once and Compile turns a valid spec into
// a registry.BuildFunc whose steps navigate and toggle interaction through
// the collaborators handed to the builder.
//
// Basic usage:
//
//	spec, err := schema.Decode(raw)
//	if err != nil {
//	    return err
//	}
//	if err := schema.Validate(spec); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        log.Println(e)
//	    }
//	}
//	reg.Register(spec.ID, schema.Compile(spec))
package schema
