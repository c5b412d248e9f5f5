// Package memory provides an in-process implementation of every adapter
// port. A Bridge records what the controller asks for (routes, highlights,
// interaction toggles, confirmation prompts) and lets a remote front-end or
// a test answer back.
package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// ErrNoPendingConfirmation is returned by Answer when nothing is being asked.
var ErrNoPendingConfirmation = errors.New("no pending confirmation")

var (
	_ ports.NavigationBridge   = (*Bridge)(nil)
	_ ports.Renderer           = (*Bridge)(nil)
	_ ports.InteractionToggler = (*Bridge)(nil)
	_ ports.ConfirmationGate   = (*Bridge)(nil)
)

// Bridge implements the adapter ports in memory.
// Safe for concurrent use.
type Bridge struct {
	mu sync.Mutex

	// present is nil until the set of targets is known; every locator
	// resolves until then.
	present  map[domain.Locator]bool
	screens  map[string][]domain.Locator
	delay    time.Duration
	route    string
	history  []string
	view     *domain.View
	disabled map[domain.Locator]bool

	highlights int
	clears     int

	pending *prompt
}

type prompt struct {
	message string
	answer  chan bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithPresent declares the targets currently on screen.
func WithPresent(targets ...domain.Locator) Option {
	return func(b *Bridge) {
		b.setPresent(targets)
	}
}

// WithScreens maps routes to the targets they show. GoTo replaces the
// present targets with those of the destination.
func WithScreens(screens map[string][]domain.Locator) Option {
	return func(b *Bridge) {
		b.screens = screens
		if b.present == nil {
			b.present = make(map[domain.Locator]bool)
		}
	}
}

// WithNavigationDelay makes screen content appear some time after GoTo
// returns, like a real page load.
func WithNavigationDelay(d time.Duration) Option {
	return func(b *Bridge) {
		b.delay = d
	}
}

// New creates a bridge.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		disabled: make(map[domain.Locator]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State is a point-in-time view of the bridge.
type State struct {
	Route   string           `json:"route,omitempty"`
	History []string         `json:"history,omitempty"`
	View    *domain.View     `json:"view,omitempty"`
	Present []domain.Locator `json:"present,omitempty"`

	// Disabled lists targets whose interaction is blocked.
	Disabled []domain.Locator `json:"disabled,omitempty"`

	// Pending is the confirmation question awaiting an answer, if any.
	Pending string `json:"pending,omitempty"`

	Highlights int `json:"highlights"`
	Clears     int `json:"clears"`
}

// Snapshot returns the current state.
func (b *Bridge) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	st := State{
		Route:      b.route,
		History:    append([]string(nil), b.history...),
		Highlights: b.highlights,
		Clears:     b.clears,
		Present:    sortedKeys(b.present),
		Disabled:   sortedKeys(b.disabled),
	}
	if b.view != nil {
		v := *b.view
		st.View = &v
	}
	if b.pending != nil {
		st.Pending = b.pending.message
	}
	return st
}

func sortedKeys(m map[domain.Locator]bool) []domain.Locator {
	var out []domain.Locator
	for k, ok := range m {
		if ok {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
