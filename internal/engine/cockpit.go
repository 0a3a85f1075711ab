package engine

import (
	"context"
	"sort"
	"time"

	"github.com/bdf/cockpit/internal/database/repository"
)

// Store is the order store adapter boundary. The engine treats it as
// authoritative and never caches beyond the in-memory snapshot used for
// diffing. Calls are blocking and synchronous.
type Store interface {
	LoadOrders(ctx context.Context) ([]repository.Order, error)
	SaveOrder(ctx context.Context, o repository.Order) error
	LoadCouriers(ctx context.Context) ([]repository.Courier, error)
	AddCourierLoad(ctx context.Context, id int64, delta int) error
}

// ActivityLog receives a record for every completed state transition.
// Implementations must never block or fail the transition.
type ActivityLog interface {
	Record(ctx context.Context, e repository.ActivityEvent)
}

// Intent is a raw input to the orchestrator. Exactly one redraw instruction
// is produced per processed intent.
type Intent int

const (
	IntentUp Intent = iota
	IntentDown
	IntentEnter
	IntentRouteToggle // F4
	IntentDismiss     // esc / close command
	IntentTick        // low-priority background timer
)

// DefaultLateAfter is how long an order may wait before dispatch without
// raising the Late alert.
const DefaultLateAfter = 45 * time.Minute

// Options tune the orchestrator. The zero value is usable.
type Options struct {
	LateAfter time.Duration
	Clock     func() time.Time
	Operator  string
}

// Cockpit is the orchestrator: it owns NavigationState, PanelState, the order
// snapshot and the diff memory, processes one intent to completion at a time,
// and emits redraw instructions for the presentation layer. Single logical
// thread of control; no locking needed.
type Cockpit struct {
	store     Store
	log       ActivityLog
	now       func() time.Time
	lateAfter time.Duration
	operator  string

	orders map[int64]repository.Order
	alerts map[int64]AlertFlags
	nav    Navigation
	panel  Panel
	diff   *Diff

	routeActive bool
}

func New(store Store, log ActivityLog, opts Options) *Cockpit {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.LateAfter <= 0 {
		opts.LateAfter = DefaultLateAfter
	}
	return &Cockpit{
		store:     store,
		log:       log,
		now:       opts.Clock,
		lateAfter: opts.LateAfter,
		operator:  opts.Operator,
		orders:    make(map[int64]repository.Order),
		alerts:    make(map[int64]AlertFlags),
		diff:      NewDiff(),
	}
}

// Refresh reloads the snapshot from the store and rebuilds the visible
// sequence. Orders that disappeared force-close the panel if it targeted
// them.
func (c *Cockpit) Refresh(ctx context.Context) (Redraw, error) {
	loaded, err := c.store.LoadOrders(ctx)
	if err != nil {
		return None(), &StoreError{Op: "load orders", Err: err}
	}

	fresh := make(map[int64]repository.Order, len(loaded))
	for _, o := range loaded {
		if o.Status.Terminal() {
			continue
		}
		fresh[o.ID] = o
	}
	for id := range c.orders {
		if _, ok := fresh[id]; !ok {
			c.panel.OrderRemoved(id)
			c.diff.Forget(id)
			delete(c.alerts, id)
		}
	}
	c.orders = fresh
	now := c.now()
	for id, o := range c.orders {
		a := ComputeAlerts(o, now, c.lateAfter)
		c.alerts[id] = a
		c.diff.Observe(Snapshot{Order: o, Alerts: a})
	}

	seq := c.viewSequence()
	c.nav.SetVisible(seq)
	return Reorder(seq), nil
}

// HandleIntent processes one raw intent to completion.
func (c *Cockpit) HandleIntent(ctx context.Context, in Intent) (Redraw, error) {
	switch in {
	case IntentUp:
		c.nav.MoveSelection(DirUp)
		return None(), nil
	case IntentDown:
		c.nav.MoveSelection(DirDown)
		return None(), nil
	case IntentEnter:
		id, ok := c.nav.Selected()
		if !ok {
			return None(), nil
		}
		if c.routeActive {
			return c.EnterRouteMode(ctx, id)
		}
		c.panel.Open(id, PanelEdit)
		return None(), nil
	case IntentRouteToggle:
		return None(), c.ToggleRouteMode(ctx)
	case IntentDismiss:
		c.panel.ExplicitClose()
		return None(), nil
	case IntentTick:
		return c.tick(), nil
	}
	return None(), nil
}

// tick recomputes derived alert flags. A single flipped card gets a surgical
// update; several at once fall back to one reorder instruction.
func (c *Cockpit) tick() Redraw {
	now := c.now()
	var changed []int64
	for id, o := range c.orders {
		a := ComputeAlerts(o, now, c.lateAfter)
		if a != c.alerts[id] {
			c.alerts[id] = a
			c.diff.Observe(Snapshot{Order: o, Alerts: a})
			changed = append(changed, id)
		}
	}
	switch len(changed) {
	case 0:
		return None()
	case 1:
		return SingleCard(changed[0])
	default:
		return Reorder(c.viewSequence())
	}
}

// ---------------------------------------------------------------------------
// Panel-confirmed actions. Each persists, diffs, logs the transition, and
// leaves the panel open unless the action demands closing.
// ---------------------------------------------------------------------------

// ConfirmPix marks a pending PIX payment confirmed.
func (c *Cockpit) ConfirmPix(ctx context.Context) (Redraw, error) {
	id, ok := c.panelTarget()
	if !ok {
		return None(), nil
	}
	return c.mutate(ctx, id, "confirm pix", func(o *repository.Order) error {
		if o.Payment != repository.PaymentPix || o.PixConfirmed {
			return &InvalidStateError{OrderID: o.ID, Status: o.Status, Op: "confirm pix"}
		}
		o.PixConfirmed = true
		return nil
	})
}

// ReceivePayment settles the order's payment.
func (c *Cockpit) ReceivePayment(ctx context.Context) (Redraw, error) {
	id, ok := c.panelTarget()
	if !ok {
		return None(), nil
	}
	return c.mutate(ctx, id, "receive payment", func(o *repository.Order) error {
		if o.Payment == repository.PaymentPaid {
			return &InvalidStateError{OrderID: o.ID, Status: o.Status, Op: "receive payment"}
		}
		o.Payment = repository.PaymentPaid
		return nil
	})
}

// AssignCourier sets the courier reference on the panel's order. BALCÃO
// orders never take a courier.
func (c *Cockpit) AssignCourier(ctx context.Context, courierID int64) (Redraw, error) {
	id, ok := c.panelTarget()
	if !ok {
		return None(), nil
	}
	return c.mutate(ctx, id, "assign courier", func(o *repository.Order) error {
		if o.Channel == repository.ChannelBalcao {
			return ErrChannelLocked
		}
		o.CourierID = &courierID
		return nil
	})
}

// SaveNote replaces the order's observation note.
func (c *Cockpit) SaveNote(ctx context.Context, text string) (Redraw, error) {
	id, ok := c.panelTarget()
	if !ok {
		return None(), nil
	}
	return c.mutate(ctx, id, "save note", func(o *repository.Order) error {
		o.Note = text
		return nil
	})
}

// AdvanceStatus moves the order one step forward on the lifecycle.
func (c *Cockpit) AdvanceStatus(ctx context.Context) (Redraw, error) {
	id, ok := c.panelTarget()
	if !ok {
		return None(), nil
	}
	return c.mutate(ctx, id, "advance status", func(o *repository.Order) error {
		next := o.Status.Next()
		if !repository.CanTransition(o.Status, next) {
			return &InvalidStateError{OrderID: o.ID, Status: o.Status, Op: "advance status"}
		}
		if next == repository.StatusEnRoute && o.CourierID == nil && o.Channel != repository.ChannelBalcao {
			return &InvalidStateError{OrderID: o.ID, Status: o.Status, Op: "advance without courier"}
		}
		o.Status = next
		return nil
	})
}

// CancelOrder cancels the panel's order and closes the panel (an explicit
// close-after-save action).
func (c *Cockpit) CancelOrder(ctx context.Context) (Redraw, error) {
	id, ok := c.panelTarget()
	if !ok {
		return None(), nil
	}
	rd, err := c.mutate(ctx, id, "cancel order", func(o *repository.Order) error {
		if !repository.CanTransition(o.Status, repository.StatusCancelled) {
			return &InvalidStateError{OrderID: o.ID, Status: o.Status, Op: "cancel"}
		}
		o.Status = repository.StatusCancelled
		return nil
	})
	if err == nil {
		c.panel.ExplicitClose()
	}
	return rd, err
}

// OpenPanelFor opens the sticky action panel for an order id.
func (c *Cockpit) OpenPanelFor(id int64, mode PanelMode) bool {
	if _, ok := c.orders[id]; !ok {
		return false
	}
	c.panel.Open(id, mode)
	return true
}

// ---------------------------------------------------------------------------
// mutate is the single mutation path: copy, apply, persist, install, diff.
// A store failure leaves the in-memory snapshot untouched (rollback), so
// every failure path stays consistent with the last persisted state.
// ---------------------------------------------------------------------------

func (c *Cockpit) mutate(ctx context.Context, id int64, action string, fn func(*repository.Order) error) (Redraw, error) {
	cur, ok := c.orders[id]
	if !ok {
		return None(), &InvalidStateError{OrderID: id, Op: action}
	}
	prev := Snapshot{Order: cur, Alerts: c.alerts[id]}

	next := cur
	if err := fn(&next); err != nil {
		return None(), err
	}
	if err := c.store.SaveOrder(ctx, next); err != nil {
		return None(), &StoreError{Op: action, Err: err}
	}

	c.orders[id] = next
	nextSnap := Snapshot{Order: next, Alerts: ComputeAlerts(next, c.now(), c.lateAfter)}
	c.alerts[id] = nextSnap.Alerts
	rd := c.diff.ComputeDelta(prev, nextSnap)

	if prev.Order.Status != next.Status {
		oid := id
		c.log.Record(ctx, repository.ActivityEvent{
			OrderID:    &oid,
			Action:     action,
			FromStatus: prev.Order.Status,
			ToStatus:   next.Status,
			Operator:   c.operator,
		})
	}

	// A courier takes on load whenever an order goes en route under it, no
	// matter which flow dispatched it. The counter is advisory; a failed
	// adjustment never rolls back.
	if next.Status == repository.StatusEnRoute && prev.Order.Status != repository.StatusEnRoute && next.CourierID != nil {
		_ = c.store.AddCourierLoad(ctx, *next.CourierID, 1)
	}

	if rd.Kind == RedrawRemove {
		// The courier is freed when its en-route order terminates.
		if prev.Order.Status == repository.StatusEnRoute && next.CourierID != nil {
			_ = c.store.AddCourierLoad(ctx, *next.CourierID, -1)
		}
		delete(c.orders, id)
		delete(c.alerts, id)
		c.diff.Forget(id)
		c.panel.OrderRemoved(id)
		seq := c.viewSequence()
		c.nav.SetVisible(seq) // exactly once for the removal
		rd.Sequence = seq
	}
	return rd, nil
}

// ---------------------------------------------------------------------------
// Accessors for the presentation layer
// ---------------------------------------------------------------------------

// Order returns the in-memory snapshot of one order.
func (c *Cockpit) Order(id int64) (repository.Order, bool) {
	o, ok := c.orders[id]
	return o, ok
}

// Alerts returns the derived flags for one order.
func (c *Cockpit) Alerts(id int64) AlertFlags { return c.alerts[id] }

// Nav exposes the navigation model for selection queries.
func (c *Cockpit) Nav() *Navigation { return &c.nav }

// PanelState exposes the action panel state machine.
func (c *Cockpit) PanelState() *Panel { return &c.panel }

// panelTarget returns the panel's order id when the panel is open.
func (c *Cockpit) panelTarget() (int64, bool) {
	id, _, open := c.panel.OpenFor()
	return id, open
}

// viewSequence is the active partition in view order: newest id first.
func (c *Cockpit) viewSequence() []int64 {
	seq := make([]int64, 0, len(c.orders))
	for id := range c.orders {
		seq = append(seq, id)
	}
	sort.Slice(seq, func(i, j int) bool { return seq[i] > seq[j] })
	return seq
}
