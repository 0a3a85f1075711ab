package engine

import (
	"time"

	"github.com/bdf/cockpit/internal/database/repository"
)

// AlertFlags are derived per order, never stored.
type AlertFlags struct {
	PixPending  bool
	PayOnPickup bool
	HasNote     bool
	Late        bool
}

// ComputeAlerts derives the flags for an order as of now. lateAfter bounds how
// long an order may sit before dispatch without being flagged.
func ComputeAlerts(o repository.Order, now time.Time, lateAfter time.Duration) AlertFlags {
	a := AlertFlags{
		PixPending:  o.Payment == repository.PaymentPix && !o.PixConfirmed,
		PayOnPickup: o.Channel == repository.ChannelBalcao && o.Payment == repository.PaymentOnPickup,
		HasNote:     o.Note != "",
	}
	if !o.Status.Terminal() && o.Status != repository.StatusEnRoute {
		a.Late = now.Sub(o.CreatedAt) > lateAfter
	}
	return a
}

// Snapshot pairs an order with its derived alert flags; it is the unit the
// diff engine compares.
type Snapshot struct {
	Order  repository.Order
	Alerts AlertFlags
}

// RedrawKind tags a redraw instruction.
type RedrawKind int

const (
	RedrawNone RedrawKind = iota
	RedrawSingleCard
	RedrawReorder
	RedrawRemove
)

// Redraw is the instruction handed to the presentation layer: repaint exactly
// one card, remove one card, or rebuild the visible sequence. One instruction
// per processed intent, never batched.
type Redraw struct {
	Kind     RedrawKind
	OrderID  int64
	Sequence []int64 // populated for Reorder and Remove (the surviving view order)
}

func None() Redraw               { return Redraw{Kind: RedrawNone} }
func SingleCard(id int64) Redraw { return Redraw{Kind: RedrawSingleCard, OrderID: id} }
func Reorder(seq []int64) Redraw { return Redraw{Kind: RedrawReorder, Sequence: seq} }
func Remove(id int64, seq []int64) Redraw {
	return Redraw{Kind: RedrawRemove, OrderID: id, Sequence: seq}
}

// Diff computes minimal redraw instructions. It remembers the last snapshot it
// emitted an instruction for, so replaying the same mutation yields None
// instead of a redundant repaint.
type Diff struct {
	applied map[int64]Snapshot
}

func NewDiff() *Diff {
	return &Diff{applied: make(map[int64]Snapshot)}
}

// ComputeDelta compares two snapshots of one order and returns the minimal
// instruction. Mutable-field changes that cannot affect the order's position
// in the view produce SingleCard (the surgical update). A transition out of
// the active partition produces Remove; the caller is responsible for running
// Navigation.SetVisible exactly once with the surviving sequence.
func (d *Diff) ComputeDelta(prev, next Snapshot) Redraw {
	if last, ok := d.applied[next.Order.ID]; ok && snapshotsEqual(last, next) {
		return None()
	}
	d.applied[next.Order.ID] = next

	if snapshotsEqual(prev, next) {
		return None()
	}

	if next.Order.Status.Terminal() && !prev.Order.Status.Terminal() {
		return Remove(next.Order.ID, nil)
	}

	// View order is newest-id-first, so no surviving mutation moves a card.
	return SingleCard(next.Order.ID)
}

// Observe records a snapshot as already rendered without emitting an
// instruction. Refresh and alert ticks use it to keep the dedupe memory
// aligned with what the presentation layer has on screen.
func (d *Diff) Observe(s Snapshot) { d.applied[s.Order.ID] = s }

// Forget drops the diff memory for an order that left the system.
func (d *Diff) Forget(id int64) { delete(d.applied, id) }

func snapshotsEqual(a, b Snapshot) bool {
	if a.Alerts != b.Alerts {
		return false
	}
	ao, bo := a.Order, b.Order
	if ao.ID != bo.ID || ao.Status != bo.Status || ao.Payment != bo.Payment ||
		ao.PixConfirmed != bo.PixConfirmed || ao.Note != bo.Note {
		return false
	}
	return int64Ptr(ao.CourierID) == int64Ptr(bo.CourierID)
}

func int64Ptr(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
