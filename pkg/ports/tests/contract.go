package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

type nopNavigator struct{}

func (nopNavigator) GoTo(context.Context, string) error { return nil }

type nopHandle struct{}

func (nopHandle) Session() domain.Session { return domain.IdleSession() }

func (nopHandle) SetInteractive(context.Context, domain.Locator, bool) error { return nil }

// TourBuilderContractTest verifies that a builder complies with ports.TourBuilder.
// expected maps every tour ID the builder should know to its step count.
func TourBuilderContractTest(t *testing.T, builder ports.TourBuilder, expected map[string]int) {
	t.Helper()

	t.Run("Build_Success", func(t *testing.T) {
		for id, steps := range expected {
			tour, err := builder.Build(id, nopNavigator{}, nopHandle{})
			if err != nil {
				t.Fatalf("unexpected error building tour %s: %v", id, err)
			}
			if tour.ID() != id {
				t.Errorf("tour id mismatch: got %q, want %q", tour.ID(), id)
			}
			if tour.Len() != steps {
				t.Errorf("tour %s: expected %d steps, got %d", id, steps, tour.Len())
			}
		}
	})

	t.Run("Build_NotFound", func(t *testing.T) {
		tour, err := builder.Build("non-existent-tour", nopNavigator{}, nopHandle{})
		if !errors.Is(err, domain.ErrTourNotFound) {
			t.Errorf("expected ErrTourNotFound, got %v", err)
		}
		if tour != nil {
			t.Error("expected no tour on NotFound")
		}
	})

	if catalog, ok := builder.(ports.Catalog); ok {
		t.Run("IDs", func(t *testing.T) {
			ids := catalog.IDs()
			if len(ids) != len(expected) {
				t.Errorf("expected %d tours, got %d (%v)", len(expected), len(ids), ids)
			}
			for _, id := range ids {
				if _, ok := expected[id]; !ok {
					t.Errorf("unexpected tour id %q", id)
				}
			}
		})
	}
}
