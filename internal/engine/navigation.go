package engine

// Direction moves the selection one card up or down the list.
type Direction int

const (
	DirUp Direction = iota
	DirDown
)

// Navigation tracks which order is highlighted in the visible list. Pure
// state, no I/O; the orchestrator owns exactly one of these.
type Navigation struct {
	visible  []int64
	selected int64
	hasSel   bool
}

// Visible returns the current view order of card ids.
func (n *Navigation) Visible() []int64 { return n.visible }

// Selected returns the highlighted order id, if any.
func (n *Navigation) Selected() (int64, bool) { return n.selected, n.hasSel }

// Index returns the position of the selected id, or -1 when nothing is
// selected.
func (n *Navigation) Index() int {
	if !n.hasSel {
		return -1
	}
	return indexOf(n.visible, n.selected)
}

// MoveSelection shifts the highlight one step, clamping at the list
// boundaries. No wraparound; no-op on an empty list.
func (n *Navigation) MoveSelection(d Direction) (int64, bool) {
	if len(n.visible) == 0 {
		return 0, false
	}
	if !n.hasSel {
		return n.selectAt(0)
	}
	i := indexOf(n.visible, n.selected)
	if i < 0 {
		return n.selectAt(0)
	}
	switch d {
	case DirUp:
		if i > 0 {
			i--
		}
	case DirDown:
		if i < len(n.visible)-1 {
			i++
		}
	}
	return n.selectAt(i)
}

// Select highlights id directly. Returns false when id is not visible.
func (n *Navigation) Select(id int64) bool {
	if indexOf(n.visible, id) < 0 {
		return false
	}
	n.selected = id
	n.hasSel = true
	return true
}

// SetVisible replaces the visible sequence. The current selection survives if
// its id is still present; otherwise the nearest surviving neighbor by prior
// index takes over (falling forward, then backward), and an empty list clears
// the selection. Returns the resulting selection.
func (n *Navigation) SetVisible(seq []int64) (int64, bool) {
	prev := n.visible
	prevIdx := -1
	if n.hasSel {
		prevIdx = indexOf(prev, n.selected)
	}
	n.visible = seq

	if len(seq) == 0 {
		n.hasSel = false
		n.selected = 0
		return 0, false
	}
	if n.hasSel && indexOf(seq, n.selected) >= 0 {
		return n.selected, true
	}
	if prevIdx < 0 {
		n.hasSel = false
		n.selected = 0
		return 0, false
	}

	// Fall forward through the prior sequence, then backward.
	for i := prevIdx + 1; i < len(prev); i++ {
		if indexOf(seq, prev[i]) >= 0 {
			n.selected = prev[i]
			return n.selected, true
		}
	}
	for i := prevIdx - 1; i >= 0; i-- {
		if indexOf(seq, prev[i]) >= 0 {
			n.selected = prev[i]
			return n.selected, true
		}
	}
	n.hasSel = false
	n.selected = 0
	return 0, false
}

func (n *Navigation) selectAt(i int) (int64, bool) {
	n.selected = n.visible[i]
	n.hasSel = true
	return n.selected, true
}

func indexOf(seq []int64, id int64) int {
	for i, v := range seq {
		if v == id {
			return i
		}
	}
	return -1
}
