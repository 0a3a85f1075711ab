package repository

import "time"

// Channel is the sales channel an order arrived through. Immutable after
// creation.
type Channel string

const (
	ChannelBalcao   Channel = "BALCÃO"
	ChannelDelivery Channel = "DELIVERY"
	ChannelApp      Channel = "APP"
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelIFood    Channel = "IFOOD"
)

// Channels lists every known channel in registration-form order.
func Channels() []Channel {
	return []Channel{ChannelWhatsApp, ChannelIFood, ChannelApp, ChannelDelivery, ChannelBalcao}
}

// Status is the order lifecycle state. Progression is linear; Cancelled is
// reachable from any non-terminal state.
type Status string

const (
	StatusReceived         Status = "RECEIVED"
	StatusPreparing        Status = "PREPARING"
	StatusReadyForDispatch Status = "READY_FOR_DISPATCH"
	StatusEnRoute          Status = "EN_ROUTE"
	StatusDelivered        Status = "DELIVERED"
	StatusCancelled        Status = "CANCELLED"
)

// statusRank orders the linear progression. Terminal states have no rank
// beyond Delivered.
var statusRank = map[Status]int{
	StatusReceived:         0,
	StatusPreparing:        1,
	StatusReadyForDispatch: 2,
	StatusEnRoute:          3,
	StatusDelivered:        4,
}

// Terminal reports whether s is an end state (the order leaves the active view).
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether from -> to is a legal move: one step forward
// on the linear progression, or Cancelled from any non-terminal state.
func CanTransition(from, to Status) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	fr, ok := statusRank[from]
	if !ok {
		return false
	}
	tr, ok := statusRank[to]
	if !ok {
		return false
	}
	return tr == fr+1
}

// Next returns the next status on the linear progression, or s itself when no
// forward step exists.
func (s Status) Next() Status {
	switch s {
	case StatusReceived:
		return StatusPreparing
	case StatusPreparing:
		return StatusReadyForDispatch
	case StatusReadyForDispatch:
		return StatusEnRoute
	case StatusEnRoute:
		return StatusDelivered
	default:
		return s
	}
}

// Payment methods accepted at registration.
type Payment string

const (
	PaymentPix      Payment = "PIX"
	PaymentCash     Payment = "CASH"
	PaymentOnPickup Payment = "ON_PICKUP"
	PaymentPaid     Payment = "PAID"
)

// Order represents an order row. Channel never changes after creation; only
// Status, CourierID, payment confirmation and the note mutate in place.
type Order struct {
	ID             int64
	Customer       string
	Channel        Channel
	Status         Status
	CourierID      *int64
	NeighborhoodID *int64
	Payment        Payment
	PixConfirmed   bool
	ProductsValue  float64
	DeliveryFee    float64
	TotalValue     float64
	Note           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Courier represents a courier row. LoadCount never goes negative.
type Courier struct {
	ID        int64
	Name      string
	Active    bool
	LoadCount int
}

// Neighborhood represents a delivery area row with its flat fee.
type Neighborhood struct {
	ID   int64
	Name string
	Fee  float64
}

// ActivityEvent represents an activity_log row. ID is a uuid assigned by the
// logger.
type ActivityEvent struct {
	ID         string
	OrderID    *int64
	Action     string
	FromStatus Status
	ToStatus   Status
	Operator   string
	CreatedAt  time.Time
}
