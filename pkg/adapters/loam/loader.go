// Package loam reads tour definitions from a Markdown repository managed by
// Loam. Every document is one step; its front matter names the tour and
// the position of the step, and its body is the step description.
package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/waypoint/pkg/schema"
)

// Loader adapts a Loam repository to tour definitions.
type Loader struct {
	Repo *loam.TypedRepository[StepMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[StepMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tours path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open tours repository: %w", err)
	}
	return New(loam.NewTypedRepository[StepMetadata](repo)), nil
}

type orderedStep struct {
	order int
	key   string
	spec  schema.StepSpec
}

// Tours reads every document and groups them into tour definitions,
// sorted by tour ID. The definitions are not validated.
func (l *Loader) Tours(ctx context.Context) ([]schema.TourSpec, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	grouped := make(map[string][]orderedStep)
	seen := make(map[string]string)
	for _, doc := range docs {
		meta := doc.Data
		if meta.Tour == "" {
			continue
		}

		stepID := meta.ID
		if stepID == "" {
			stepID = trimExtension(filepath.Base(doc.ID))
		}
		key := meta.Tour + "/" + stepID
		if existing, ok := seen[key]; ok {
			return nil, fmt.Errorf("collision detected: step '%s' is defined in both '%s' and '%s'", key, existing, doc.ID)
		}
		seen[key] = doc.ID

		grouped[meta.Tour] = append(grouped[meta.Tour], orderedStep{
			order: meta.Order,
			key:   stepID,
			spec: schema.StepSpec{
				ID:            stepID,
				Target:        meta.Target,
				Title:         meta.Title,
				Description:   strings.TrimSpace(doc.Content),
				Placement:     meta.Placement,
				NextRoute:     meta.NextRoute,
				PrevRoute:     meta.PrevRoute,
				DisableTarget: meta.DisableTarget,
			},
		})
	}

	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	specs := make([]schema.TourSpec, 0, len(ids))
	for _, id := range ids {
		steps := grouped[id]
		sort.SliceStable(steps, func(i, j int) bool {
			if steps[i].order != steps[j].order {
				return steps[i].order < steps[j].order
			}
			return steps[i].key < steps[j].key
		})
		spec := schema.TourSpec{ID: id, Steps: make([]schema.StepSpec, len(steps))}
		for i, st := range steps {
			spec.Steps[i] = st.spec
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Watch emits the ID of every document that changes until ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
