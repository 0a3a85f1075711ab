package engine

import (
	"errors"
	"fmt"

	"github.com/bdf/cockpit/internal/database/repository"
)

// ErrChannelLocked is returned when a courier dispatch is attempted on a
// BALCÃO order. The lock is absolute; counter orders are picked up in person.
var ErrChannelLocked = errors.New("balcão orders are picked up in person; dispatch refused")

// ErrNoCourierAvailable is returned when Route Mode finds no active courier.
var ErrNoCourierAvailable = errors.New("no active courier available")

// InvalidStateError reports an operation that is not valid for the order's
// current status. No mutation has taken place.
type InvalidStateError struct {
	OrderID int64
	Status  repository.Status
	Op      string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("order #%d: %s not valid in status %s", e.OrderID, e.Op, e.Status)
}

// StoreError wraps a persistence failure. The orchestrator reverts in-memory
// state before surfacing it, so the cockpit stays consistent with the last
// successfully persisted state.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }
