package engine

// PanelMode is what the action panel was opened for.
type PanelMode int

const (
	PanelEdit PanelMode = iota
	PanelDispatch
	PanelCancel
)

func (m PanelMode) String() string {
	switch m {
	case PanelDispatch:
		return "dispatch"
	case PanelCancel:
		return "cancel"
	default:
		return "edit"
	}
}

// Panel is the action panel state machine: Closed or OpenFor(order, mode).
//
// The panel is sticky. It closes only on an explicit dismiss command or when
// the order it targets is removed from the system — never on focus loss or a
// selection change. Actions confirmed inside the panel leave it open unless
// the action itself demands closing.
type Panel struct {
	open    bool
	orderID int64
	mode    PanelMode
}

// Open transitions Closed -> OpenFor(id, mode). Reopening for a different
// order retargets the panel.
func (p *Panel) Open(id int64, mode PanelMode) {
	p.open = true
	p.orderID = id
	p.mode = mode
}

// ExplicitClose is the only operator-driven path back to Closed.
func (p *Panel) ExplicitClose() {
	p.open = false
	p.orderID = 0
}

// OrderRemoved force-closes the panel when the order it targets no longer
// exists. Returns true when the panel closed as a result.
func (p *Panel) OrderRemoved(id int64) bool {
	if p.open && p.orderID == id {
		p.open = false
		p.orderID = 0
		return true
	}
	return false
}

// OpenFor returns the target order and mode while the panel is open.
func (p *Panel) OpenFor() (int64, PanelMode, bool) {
	return p.orderID, p.mode, p.open
}

// IsOpen reports whether the panel is showing.
func (p *Panel) IsOpen() bool { return p.open }
