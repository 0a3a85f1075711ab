package engine

import (
	"testing"
	"time"

	"github.com/bdf/cockpit/internal/database/repository"
)

func snap(o repository.Order) Snapshot {
	return Snapshot{Order: o, Alerts: ComputeAlerts(o, time.Now(), DefaultLateAfter)}
}

func TestComputeDeltaStatusChangeIsSingleCard(t *testing.T) {
	d := NewDiff()
	before := repository.Order{ID: 1, Status: repository.StatusReceived, CreatedAt: time.Now()}
	after := before
	after.Status = repository.StatusPreparing

	rd := d.ComputeDelta(snap(before), snap(after))
	if rd.Kind != RedrawSingleCard || rd.OrderID != 1 {
		t.Fatalf("got %+v, want SingleCard(1)", rd)
	}
}

func TestComputeDeltaMutableFieldsNeverReorder(t *testing.T) {
	base := repository.Order{ID: 3, Status: repository.StatusPreparing, Payment: repository.PaymentPix, CreatedAt: time.Now()}

	mutations := []func(*repository.Order){
		func(o *repository.Order) { o.Status = repository.StatusReadyForDispatch },
		func(o *repository.Order) { o.PixConfirmed = true },
		func(o *repository.Order) { o.Payment = repository.PaymentPaid },
		func(o *repository.Order) { o.Note = "sem cebola" },
		func(o *repository.Order) { id := int64(2); o.CourierID = &id },
	}
	for i, fn := range mutations {
		d := NewDiff()
		after := base
		fn(&after)
		rd := d.ComputeDelta(snap(base), snap(after))
		if rd.Kind != RedrawSingleCard {
			t.Errorf("mutation %d: kind = %v, want SingleCard", i, rd.Kind)
		}
	}
}

func TestComputeDeltaTerminalTransitionIsRemove(t *testing.T) {
	before := repository.Order{ID: 2, Status: repository.StatusEnRoute, CreatedAt: time.Now()}

	for _, terminal := range []repository.Status{repository.StatusDelivered, repository.StatusCancelled} {
		d := NewDiff()
		after := before
		after.Status = terminal
		rd := d.ComputeDelta(snap(before), snap(after))
		if rd.Kind != RedrawRemove || rd.OrderID != 2 {
			t.Errorf("%s: got %+v, want Remove(2)", terminal, rd)
		}
	}
}

func TestComputeDeltaIdenticalSnapshotsIsNone(t *testing.T) {
	d := NewDiff()
	o := repository.Order{ID: 4, Status: repository.StatusReceived, CreatedAt: time.Now()}
	if rd := d.ComputeDelta(snap(o), snap(o)); rd.Kind != RedrawNone {
		t.Fatalf("got %v, want None", rd.Kind)
	}
}

func TestComputeDeltaIsIdempotent(t *testing.T) {
	d := NewDiff()
	before := repository.Order{ID: 5, Status: repository.StatusReceived, CreatedAt: time.Now()}
	after := before
	after.Status = repository.StatusPreparing

	first := d.ComputeDelta(snap(before), snap(after))
	if first.Kind != RedrawSingleCard {
		t.Fatalf("first delta: got %v, want SingleCard", first.Kind)
	}
	// Replaying the identical mutation must not repaint.
	second := d.ComputeDelta(snap(before), snap(after))
	if second.Kind != RedrawNone {
		t.Fatalf("second delta: got %v, want None", second.Kind)
	}
}

func TestForgetDropsDedupeMemory(t *testing.T) {
	d := NewDiff()
	before := repository.Order{ID: 6, Status: repository.StatusReceived, CreatedAt: time.Now()}
	after := before
	after.Note = "troco para 50"

	d.ComputeDelta(snap(before), snap(after))
	d.Forget(6)
	if rd := d.ComputeDelta(snap(before), snap(after)); rd.Kind != RedrawSingleCard {
		t.Fatalf("after Forget: got %v, want SingleCard", rd.Kind)
	}
}

func TestComputeAlertsLateFlag(t *testing.T) {
	created := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		status repository.Status
		now    time.Time
		late   bool
	}{
		{"fresh order", repository.StatusReceived, created.Add(10 * time.Minute), false},
		{"overdue order", repository.StatusReceived, created.Add(time.Hour), true},
		{"en route never late", repository.StatusEnRoute, created.Add(2 * time.Hour), false},
		{"delivered never late", repository.StatusDelivered, created.Add(2 * time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := repository.Order{Status: tc.status, CreatedAt: created}
			a := ComputeAlerts(o, tc.now, 45*time.Minute)
			if a.Late != tc.late {
				t.Errorf("Late = %v, want %v", a.Late, tc.late)
			}
		})
	}
}

func TestComputeAlertsPixAndPickup(t *testing.T) {
	now := time.Now()
	pix := repository.Order{Channel: repository.ChannelWhatsApp, Payment: repository.PaymentPix, CreatedAt: now}
	if a := ComputeAlerts(pix, now, DefaultLateAfter); !a.PixPending {
		t.Error("unconfirmed PIX should raise PixPending")
	}
	pix.PixConfirmed = true
	if a := ComputeAlerts(pix, now, DefaultLateAfter); a.PixPending {
		t.Error("confirmed PIX should clear PixPending")
	}

	counter := repository.Order{Channel: repository.ChannelBalcao, Payment: repository.PaymentOnPickup, CreatedAt: now}
	if a := ComputeAlerts(counter, now, DefaultLateAfter); !a.PayOnPickup {
		t.Error("balcão + on-pickup should raise PayOnPickup")
	}
}
