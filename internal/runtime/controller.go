package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/waypoint/internal/logging"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/readiness"
	"github.com/google/uuid"
)

// Controller is the tour state machine. It owns the single tour session,
// sequences steps, runs step hooks and guarantees that the completion
// callback fires exactly once per Start.
//
// The session mutex is never held while hooks, readiness waits, rendering,
// confirmation prompts or the completion callback run. At most one
// transition is in flight at a time; further requests fail with
// domain.ErrTransitionInFlight.
//
// Finalizing clears the highlight before the completion callback runs, except
// for a rejected Start: that request never owned the session and the running
// tour keeps its highlight.
type Controller struct {
	builder       ports.TourBuilder
	nav           ports.NavigationBridge
	renderer      ports.Renderer
	gate          ports.ConfirmationGate
	onComplete    func(domain.Outcome)
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
	readyTimeout  time.Duration
	readyInterval time.Duration
	cancelMessage string
	newID         func() string

	locker    ports.DistributedLocker
	leaseKey  string
	leaseTTL  time.Duration
	leaseWait time.Duration

	mu      sync.Mutex
	session *session
}

// session is the mutable record behind domain.Session. Fields are guarded
// by Controller.mu, except tour which is immutable once set.
type session struct {
	id        string
	tourID    string
	tour      *domain.Tour
	index     int
	status    domain.Status
	startedAt time.Time
	unlock    ports.UnlockFunc

	entered   bool // OnEnter of the current step ran and OnExit is owed
	busy      bool // a transition owns the session
	abort     bool // Close arrived while busy
	finalized bool
	notifying bool // teardown is done and the completion callback is running
}

var _ ports.Handle = (*Controller)(nil)

// NewController creates a controller building tours from builder.
func NewController(builder ports.TourBuilder, opts ...Option) *Controller {
	c := &Controller{
		builder:       builder,
		nav:           nopNavigator{},
		renderer:      nopRenderer{},
		logger:        logging.NewNop(),
		readyTimeout:  DefaultReadinessTimeout,
		readyInterval: DefaultReadinessInterval,
		cancelMessage: DefaultCancelMessage,
		newID:         uuid.NewString,
		leaseKey:      DefaultLeaseKey,
		leaseTTL:      DefaultLeaseTTL,
		leaseWait:     DefaultLeaseWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start builds tourID and shows its first step.
//
// An unknown tour fires the completion callback with domain.ReasonUnknownTour
// and returns an error wrapping domain.ErrTourNotFound; the session never
// becomes active. If another tour is in progress, this request is finalized
// with domain.ReasonRejected and domain.ErrTourActive is returned; the
// running tour is not touched. A tour that is still being torn down counts
// as in progress until its completion callback runs; the callback itself may
// start the next tour.
func (c *Controller) Start(ctx context.Context, tourID string) error {
	s := &session{
		id:     c.newID(),
		tourID: tourID,
		index:  -1,
		status: domain.StatusIdle,
		busy:   true,
	}

	c.mu.Lock()
	if cur := c.session; cur != nil && !cur.notifying {
		c.mu.Unlock()
		err := fmt.Errorf("%w: %s", domain.ErrTourActive, cur.tourID)
		c.logger.Warn("tour start rejected", "tour", tourID, "active_tour", cur.tourID)
		c.finalize(ctx, s, domain.ReasonRejected, err)
		return err
	}
	c.session = s
	c.mu.Unlock()
	defer c.settle(ctx, s)

	tour, err := c.builder.Build(tourID, c.nav, c)
	if err != nil {
		if errors.Is(err, domain.ErrTourNotFound) {
			attrs := []any{"tour", tourID, "err", err}
			if sg, ok := c.builder.(interface{ Suggest(string) string }); ok {
				if hint := sg.Suggest(tourID); hint != "" {
					attrs = append(attrs, "did_you_mean", hint)
				}
			}
			c.logger.Warn("unknown tour", attrs...)
		} else {
			c.logger.Error("tour build failed", "tour", tourID, "err", err)
		}
		c.finalize(ctx, s, domain.ReasonUnknownTour, err)
		return err
	}

	if c.locker != nil {
		lockCtx, cancel := context.WithTimeout(ctx, c.leaseWait)
		unlock, err := c.locker.Lock(lockCtx, c.leaseKey, c.leaseTTL)
		cancel()
		if err != nil {
			err = fmt.Errorf("%w: lease %q: %v", domain.ErrTourActive, c.leaseKey, err)
			c.logger.Warn("tour lease unavailable", "tour", tourID, "err", err)
			c.finalize(ctx, s, domain.ReasonRejected, err)
			return err
		}
		c.mu.Lock()
		s.unlock = unlock
		c.mu.Unlock()
	}

	c.mu.Lock()
	s.tour = tour
	s.index = 0
	s.status = domain.StatusActive
	s.startedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("tour started", "session_id", s.id, "tour", tourID, "steps", tour.Len())
	if c.hooks.OnTourStart != nil {
		c.hooks.OnTourStart(ctx, &domain.TourEvent{
			EventBase: c.base(domain.EventTourStart, s),
			Total:     tour.Len(),
		})
	}

	c.enterStep(ctx, s, 0)
	return nil
}

// Advance moves to the next step, or completes the tour from the last one.
//
// If the current step has an OnAdvance hook it runs first; when it asks for
// domain.AwaitTarget the controller waits (bounded) for the next step's
// target and proceeds even if the wait times out. A hook error aborts the
// transition and leaves the session unchanged.
func (c *Controller) Advance(ctx context.Context) error {
	s, err := c.begin()
	if err != nil {
		return err
	}
	defer c.settle(ctx, s)

	index := c.position(s)
	step := s.tour.Step(index)
	last := s.tour.IsLast(index)

	if step.OnAdvance != nil {
		await, err := step.OnAdvance(ctx)
		if err != nil {
			c.logger.Warn("advance hook failed", "session_id", s.id, "tour", s.tourID, "step", step.ID, "err", err)
			return fmt.Errorf("advance from step %s: %w", step.ID, err)
		}
		if await == domain.AwaitTarget && !last {
			c.awaitTarget(ctx, s, s.tour.Step(index+1))
		}
	}
	if c.aborting(s) {
		return nil
	}

	c.exitStep(ctx, s, index)
	if last {
		c.finalize(ctx, s, domain.ReasonCompleted, nil)
		return nil
	}
	c.moveTo(s, index+1)
	c.enterStep(ctx, s, index+1)
	return nil
}

// Retreat moves to the previous step. It is a no-op on the first step.
func (c *Controller) Retreat(ctx context.Context) error {
	s, err := c.begin()
	if err != nil {
		return err
	}
	defer c.settle(ctx, s)

	index := c.position(s)
	if index == 0 {
		return nil
	}
	step := s.tour.Step(index)

	if step.OnRetreat != nil {
		await, err := step.OnRetreat(ctx)
		if err != nil {
			c.logger.Warn("retreat hook failed", "session_id", s.id, "tour", s.tourID, "step", step.ID, "err", err)
			return fmt.Errorf("retreat from step %s: %w", step.ID, err)
		}
		if await == domain.AwaitTarget {
			c.awaitTarget(ctx, s, s.tour.Step(index-1))
		}
	}
	if c.aborting(s) {
		return nil
	}

	c.exitStep(ctx, s, index)
	c.moveTo(s, index-1)
	c.enterStep(ctx, s, index-1)
	return nil
}

// RequestCancel ends the tour on user request. On the last step (or without
// a confirmation gate) it cancels at once. Otherwise it asks the gate: only
// an affirmative answer cancels; a negative one leaves the session exactly
// as it was. A gate error is treated as a negative answer and returned.
func (c *Controller) RequestCancel(ctx context.Context) error {
	s, err := c.begin()
	if err != nil {
		return err
	}
	defer c.settle(ctx, s)

	index := c.position(s)
	if s.tour.IsLast(index) || c.gate == nil {
		c.finalize(ctx, s, domain.ReasonUserCancelled, nil)
		return nil
	}

	ok, err := c.gate.Confirm(ctx, c.cancelMessage)
	if err != nil {
		c.logger.Warn("cancel confirmation failed", "session_id", s.id, "tour", s.tourID, "err", err)
		return fmt.Errorf("confirm cancellation: %w", err)
	}
	if !ok {
		c.logger.Debug("cancellation declined", "session_id", s.id, "tour", s.tourID, "step_index", index)
		return nil
	}

	c.finalize(ctx, s, domain.ReasonUserCancelled, nil)
	return nil
}

// Close ends the active tour with domain.ReasonAborted, for instance when the
// application shuts down. A transition in flight is never interrupted: the
// abort is applied when it reaches its next step boundary.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	s := c.session
	if s == nil || s.finalized {
		c.mu.Unlock()
		return
	}
	if s.busy {
		s.abort = true
		c.mu.Unlock()
		return
	}
	s.busy = true
	c.mu.Unlock()

	c.finalize(ctx, s, domain.ReasonAborted, nil)
}

// Session returns a snapshot of the session in progress.
func (c *Controller) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil {
		return domain.IdleSession()
	}
	snap := domain.Session{
		ID:        s.id,
		TourID:    s.tourID,
		StepIndex: s.index,
		Status:    s.status,
		StartedAt: s.startedAt,
	}
	if s.tour != nil {
		snap.Total = s.tour.Len()
	}
	if snap.Status == domain.StatusIdle {
		snap.StepIndex = -1
	}
	return snap
}

// SetInteractive forwards to the renderer when it supports interaction
// toggling and is a no-op otherwise.
func (c *Controller) SetInteractive(ctx context.Context, target domain.Locator, enabled bool) error {
	if t, ok := c.renderer.(ports.InteractionToggler); ok {
		return t.SetInteractive(ctx, target, enabled)
	}
	return nil
}

// begin claims the active session for one transition.
func (c *Controller) begin() (*session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.session
	if s == nil || s.finalized {
		return nil, domain.ErrNoActiveTour
	}
	if s.busy {
		return nil, domain.ErrTransitionInFlight
	}
	if s.status != domain.StatusActive {
		return nil, domain.ErrNoActiveTour
	}
	s.busy = true
	return s, nil
}

// settle releases the claim taken by begin (or Start) and applies an abort
// requested meanwhile.
func (c *Controller) settle(ctx context.Context, s *session) {
	c.mu.Lock()
	s.busy = false
	pending := s.abort && !s.finalized
	if pending {
		s.busy = true
	}
	c.mu.Unlock()

	if pending {
		c.finalize(ctx, s, domain.ReasonAborted, nil)
	}
}

func (c *Controller) aborting(s *session) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return s.abort
}

func (c *Controller) position(s *session) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return s.index
}

func (c *Controller) moveTo(s *session, index int) {
	c.mu.Lock()
	s.index = index
	c.mu.Unlock()
}

func (c *Controller) enterStep(ctx context.Context, s *session, index int) {
	step := s.tour.Step(index)

	// Marked before the hook runs so a failing OnEnter still gets its OnExit.
	c.mu.Lock()
	s.entered = true
	c.mu.Unlock()

	if step.OnEnter != nil {
		if err := step.OnEnter(ctx); err != nil {
			c.fault(ctx, s, step, domain.FaultHook, 0, "enter: "+err.Error())
		}
	}
	if c.hooks.OnStepEnter != nil {
		c.hooks.OnStepEnter(ctx, &domain.StepEvent{
			EventBase: c.base(domain.EventStepEnter, s),
			StepID:    step.ID,
			Index:     index,
		})
	}

	if step.Target != "" && !c.renderer.Resolve(ctx, step.Target) {
		c.fault(ctx, s, step, domain.FaultTargetNotResolved, 0, "highlighting without a resolved target")
	}
	view := domain.View{Step: step, Index: index, Total: s.tour.Len()}
	if err := c.renderer.Highlight(ctx, view); err != nil {
		c.fault(ctx, s, step, domain.FaultRender, 0, "highlight: "+err.Error())
	}
	c.logger.Debug("step entered", "session_id", s.id, "tour", s.tourID, "step", step.ID, "index", index)
}

// exitStep runs OnExit once for the step entered last.
func (c *Controller) exitStep(ctx context.Context, s *session, index int) {
	c.mu.Lock()
	owed := s.entered
	s.entered = false
	c.mu.Unlock()

	if owed {
		c.runExit(ctx, s, index)
	}
}

func (c *Controller) runExit(ctx context.Context, s *session, index int) {
	step := s.tour.Step(index)
	if step.OnExit != nil {
		if err := step.OnExit(ctx); err != nil {
			c.fault(ctx, s, step, domain.FaultHook, 0, "exit: "+err.Error())
		}
	}
	if c.hooks.OnStepLeave != nil {
		c.hooks.OnStepLeave(ctx, &domain.StepEvent{
			EventBase: c.base(domain.EventStepLeave, s),
			StepID:    step.ID,
			Index:     index,
		})
	}
}

// awaitTarget waits for the destination step's target after a navigating
// hook. A timeout is soft: it is reported and the tour moves on.
func (c *Controller) awaitTarget(ctx context.Context, s *session, next domain.Step) {
	if next.Target == "" {
		return
	}
	started := time.Now()
	ok := readiness.WaitUntil(ctx, func(ctx context.Context) bool {
		return c.renderer.Resolve(ctx, next.Target)
	}, c.readyTimeout, c.readyInterval)
	if !ok {
		c.fault(ctx, s, next, domain.FaultReadinessTimeout, time.Since(started), "target did not appear in time")
	}
}

// finalize is the single terminal transition. It is idempotent per session:
// whichever path arrives first wins and the others return silently.
func (c *Controller) finalize(ctx context.Context, s *session, reason domain.Reason, cause error) {
	c.mu.Lock()
	if s.finalized {
		c.mu.Unlock()
		return
	}
	s.finalized = true
	if st := reason.Status(); st.IsTerminal() {
		s.status = st
	}
	owed := s.entered
	s.entered = false
	index := s.index
	activated := s.tour != nil && index >= 0
	unlock := s.unlock
	s.unlock = nil
	startedAt := s.startedAt
	c.mu.Unlock()

	// Cleanup must run even if the caller's context is already done.
	cleanupCtx := context.WithoutCancel(ctx)

	if owed {
		c.runExit(cleanupCtx, s, index)
	}
	if reason != domain.ReasonRejected {
		if err := c.renderer.Clear(cleanupCtx); err != nil {
			c.logger.Warn("clear highlight failed", "session_id", s.id, "tour", s.tourID, "err", err)
		}
	}
	if unlock != nil {
		if err := unlock(cleanupCtx); err != nil {
			c.logger.Warn("failed to release tour lease (will expire via TTL)", "session_id", s.id, "err", err)
		}
	}

	outcome := domain.Outcome{
		SessionID: s.id,
		TourID:    s.tourID,
		Reason:    reason,
		Status:    reason.Status(),
		StepIndex: index,
		Err:       cause,
	}
	if !activated {
		outcome.StepIndex = -1
	}

	var elapsed time.Duration
	if !startedAt.IsZero() {
		elapsed = time.Since(startedAt)
	}
	c.logger.Info("tour finished", "session_id", s.id, "tour", s.tourID, "reason", reason, "step_index", outcome.StepIndex, "duration", elapsed)
	if c.hooks.OnTourEnd != nil {
		c.hooks.OnTourEnd(cleanupCtx, &domain.EndEvent{
			EventBase: c.base(domain.EventTourEnd, s),
			Reason:    reason,
			Duration:  elapsed,
		})
	}

	c.mu.Lock()
	s.notifying = true
	c.mu.Unlock()

	if c.onComplete != nil {
		c.onComplete(outcome)
	}

	// Tear down unless the callback already started another tour.
	c.mu.Lock()
	if c.session == s {
		c.session = nil
	}
	c.mu.Unlock()
}

func (c *Controller) fault(ctx context.Context, s *session, step domain.Step, kind domain.FaultKind, waited time.Duration, msg string) {
	c.logger.Warn("tour soft fault",
		"session_id", s.id,
		"tour", s.tourID,
		"step", step.ID,
		"target", step.Target,
		"kind", kind,
		"waited", waited,
		"detail", msg,
	)
	if c.hooks.OnFault != nil {
		c.hooks.OnFault(ctx, &domain.FaultEvent{
			EventBase: c.base(domain.EventFault, s),
			Kind:      kind,
			StepID:    step.ID,
			Target:    step.Target,
			Waited:    waited,
			Message:   msg,
		})
	}
}

func (c *Controller) base(t domain.EventType, s *session) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		SessionID: s.id,
		TourID:    s.tourID,
	}
}

type nopNavigator struct{}

func (nopNavigator) GoTo(context.Context, string) error { return nil }

type nopRenderer struct{}

func (nopRenderer) Highlight(context.Context, domain.View) error { return nil }
func (nopRenderer) Clear(context.Context) error                  { return nil }
func (nopRenderer) Resolve(context.Context, domain.Locator) bool { return true }
