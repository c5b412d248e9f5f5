// Package file loads tour definitions from YAML files.
//
// A file holds one or more YAML documents, each describing one tour:
//
//	id: setup
//	steps:
//	  - target: "#dashboard-summary"
//	    title: Your dashboard
//	    next_route: /students
//	---
//	id: dashboard
//	steps: [...]
package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/waypoint/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Load reads tour definitions from a file, or from every *.yaml and *.yml
// file of a directory (not recursive) in name order.
func Load(path string) ([]schema.TourSpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return loadFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var specs []schema.TourSpec
	for _, name := range names {
		loaded, err := loadFile(filepath.Join(path, name))
		if err != nil {
			return nil, err
		}
		specs = append(specs, loaded...)
	}
	return specs, nil
}

func loadFile(path string) ([]schema.TourSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	specs, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// Decode reads every YAML document from r as a tour definition.
func Decode(r io.Reader) ([]schema.TourSpec, error) {
	dec := yaml.NewDecoder(r)

	var specs []schema.TourSpec
	for i := 0; ; i++ {
		var raw map[string]any
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			return specs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if raw == nil {
			continue
		}
		spec, err := schema.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		specs = append(specs, spec)
	}
}

// Encode writes specs as a multi-document YAML stream.
func Encode(w io.Writer, specs ...schema.TourSpec) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, spec := range specs {
		if err := enc.Encode(spec); err != nil {
			return err
		}
	}
	return enc.Close()
}
