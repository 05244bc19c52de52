package grid

import (
	"venueops/internal/domain"
	"venueops/internal/modules/schedule"
	"venueops/internal/timegrid"
)

// The gesture state machine replaces the usual tangle of ad-hoc
// mouse-move/mouse-up listeners: every pointer event goes through one
// explicit Idle -> Selecting/Resizing/Dragging -> Idle cycle, and the
// terminating PointerUp emits at most one Action for the caller to turn
// into a server call.

type State int

const (
	StateIdle State = iota
	// StatePressed is a down on a block that has not yet crossed the drag
	// threshold; it resolves to a click (details) or a drag (move).
	StatePressed
	StateSelecting
	StateResizing
	StateDragging
)

type TargetKind int

const (
	TargetCell TargetKind = iota
	TargetBlock
	TargetBlockTopEdge
	TargetBlockBottomEdge
)

// Target is the hit-test result the renderer passes with PointerDown.
type Target struct {
	Kind          TargetKind
	Column        int
	ReservationID int64
}

type Pointer struct {
	X, Y      int
	ScrollTop int
}

type ActionType int

const (
	ActionNone ActionType = iota
	// ActionQuickBook opens the quick-booking flow for a free range.
	ActionQuickBook
	// ActionCommitMove sends a move/resize of an existing reservation.
	ActionCommitMove
	// ActionOpenDetails opens the reservation popover (plain click).
	ActionOpenDetails
	// ActionAbort means the gesture ended on a conflicting range.
	ActionAbort
)

type Action struct {
	Type          ActionType
	Column        int
	ResourceID    int64
	ReservationID int64
	StartMin      int
	EndMin        int
}

// Preview is the provisional ghost the renderer draws during a gesture.
type Preview struct {
	State    State
	Column   int
	StartMin int
	EndMin   int
	Conflict bool
}

// Column binds a grid column to its resource and that resource's current
// non-canceled reservations (server state merged with the overlay).
type Column struct {
	ResourceID   int64
	Reservations []domain.Reservation
}

type Config struct {
	Geometry Geometry
	// MinSelectionMin is the smallest drag-select range.
	MinSelectionMin int
	// DefaultDurationMin is used by click-to-book.
	DefaultDurationMin int
	// DragThresholdPx separates a click from a drag.
	DragThresholdPx int
}

func DefaultConfig() Config {
	return Config{
		Geometry:           DefaultGeometry(),
		MinSelectionMin:    60,
		DefaultDurationMin: 60,
		DragThresholdPx:    4,
	}
}

type Machine struct {
	cfg     Config
	columns []Column

	state     State
	downAt    Pointer
	target    Target
	anchor    int // minutes at PointerDown, for selections and resizes
	column    int
	preview   Preview
	grabbed   *domain.Reservation // block being dragged or resized
	resizeTop bool
}

func NewMachine(cfg Config, columns []Column) *Machine {
	return &Machine{cfg: cfg, columns: columns}
}

// SetColumns swaps in fresh reservation state (after a re-fetch or overlay
// change) without disturbing an in-flight gesture.
func (m *Machine) SetColumns(columns []Column) {
	m.columns = columns
}

func (m *Machine) State() State { return m.state }

// Preview returns the current provisional range for ghost rendering.
func (m *Machine) Preview() Preview { return m.preview }

func (m *Machine) PointerDown(p Pointer, t Target) {
	if m.state != StateIdle {
		return
	}
	m.downAt = p
	m.target = t
	m.column = t.Column

	switch t.Kind {
	case TargetCell:
		m.anchor = m.cfg.Geometry.SnappedMinutes(p.Y, p.ScrollTop)
		m.state = StateSelecting
		m.updateSelection(p)
	case TargetBlock:
		m.grabbed = m.findReservation(t.Column, t.ReservationID)
		if m.grabbed == nil {
			return
		}
		m.state = StatePressed
	case TargetBlockTopEdge, TargetBlockBottomEdge:
		m.grabbed = m.findReservation(t.Column, t.ReservationID)
		if m.grabbed == nil {
			return
		}
		m.resizeTop = t.Kind == TargetBlockTopEdge
		m.state = StateResizing
		m.updateResize(p)
	}
}

func (m *Machine) PointerMove(p Pointer) Preview {
	switch m.state {
	case StateSelecting:
		m.updateSelection(p)
	case StatePressed:
		if m.moved(p) {
			m.state = StateDragging
			m.updateDrag(p)
		}
	case StateDragging:
		m.updateDrag(p)
	case StateResizing:
		m.updateResize(p)
	}
	return m.preview
}

// PointerUp terminates the gesture and resets to Idle. The returned Action
// is the single server call (or popover) the gesture amounts to.
func (m *Machine) PointerUp(p Pointer) Action {
	defer m.reset()

	switch m.state {
	case StateSelecting:
		m.updateSelection(p)
		if m.preview.Conflict {
			return Action{Type: ActionAbort}
		}
		start, end := m.preview.StartMin, m.preview.EndMin
		if !m.moved(p) {
			// click-to-book: the cell's slot plus the default duration
			end = start + m.cfg.DefaultDurationMin
			if end > timegrid.GridEndMin {
				end = timegrid.GridEndMin
			}
			if m.conflicts(m.column, start, end, 0) {
				return Action{Type: ActionAbort}
			}
		}
		return Action{
			Type:       ActionQuickBook,
			Column:     m.column,
			ResourceID: m.resourceID(m.column),
			StartMin:   start,
			EndMin:     end,
		}

	case StatePressed:
		return Action{Type: ActionOpenDetails, ReservationID: m.target.ReservationID}

	case StateDragging:
		m.updateDrag(p)
		if m.preview.Conflict {
			return Action{Type: ActionAbort}
		}
		return Action{
			Type:          ActionCommitMove,
			Column:        m.preview.Column,
			ResourceID:    m.resourceID(m.preview.Column),
			ReservationID: m.grabbed.ID,
			StartMin:      m.preview.StartMin,
			EndMin:        m.preview.EndMin,
		}

	case StateResizing:
		m.updateResize(p)
		if m.preview.Conflict {
			return Action{Type: ActionAbort}
		}
		return Action{
			Type:          ActionCommitMove,
			Column:        m.column,
			ResourceID:    m.resourceID(m.column),
			ReservationID: m.grabbed.ID,
			StartMin:      m.preview.StartMin,
			EndMin:        m.preview.EndMin,
		}
	}
	return Action{Type: ActionNone}
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.grabbed = nil
	m.preview = Preview{}
}

func (m *Machine) moved(p Pointer) bool {
	dx := p.X - m.downAt.X
	dy := p.Y - m.downAt.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx > m.cfg.DragThresholdPx || dy > m.cfg.DragThresholdPx
}

// updateSelection keeps a provisional [start,end) between the anchor and the
// pointer, never shorter than the minimum selection, with live conflict
// highlighting.
func (m *Machine) updateSelection(p Pointer) {
	cur := m.cfg.Geometry.SnappedMinutes(p.Y, p.ScrollTop)
	start, end := m.anchor, cur
	if end < start {
		start, end = end, start
	}
	if end-start < m.cfg.MinSelectionMin {
		end = start + m.cfg.MinSelectionMin
	}
	if end > timegrid.GridEndMin {
		end = timegrid.GridEndMin
		if end-start < m.cfg.MinSelectionMin {
			start = end - m.cfg.MinSelectionMin
		}
	}
	m.preview = Preview{
		State:    StateSelecting,
		Column:   m.column,
		StartMin: start,
		EndMin:   end,
		Conflict: m.conflicts(m.column, start, end, 0),
	}
}

// updateDrag recomputes the ghost from the drop cell, preserving the
// original duration; the target column may differ from the source.
func (m *Machine) updateDrag(p Pointer) {
	duration := m.grabbed.EndMin - m.grabbed.StartMin
	col := m.cfg.Geometry.ColumnAt(p.X, 0)
	if col >= len(m.columns) {
		col = len(m.columns) - 1
	}
	start := m.cfg.Geometry.SnappedMinutes(p.Y, p.ScrollTop)
	if start+duration > timegrid.GridEndMin {
		start = timegrid.GridEndMin - duration
	}
	end := start + duration
	m.preview = Preview{
		State:    StateDragging,
		Column:   col,
		StartMin: start,
		EndMin:   end,
		Conflict: m.conflicts(col, start, end, m.grabbed.ID),
	}
}

// updateResize moves one edge in slot steps, keeping at least one slot.
func (m *Machine) updateResize(p Pointer) {
	cur := m.cfg.Geometry.SnappedMinutes(p.Y, p.ScrollTop)
	start, end := m.grabbed.StartMin, m.grabbed.EndMin
	if m.resizeTop {
		start = cur
		if start > end-timegrid.SlotMinutes {
			start = end - timegrid.SlotMinutes
		}
	} else {
		end = cur
		if end < start+timegrid.SlotMinutes {
			end = start + timegrid.SlotMinutes
		}
	}
	m.preview = Preview{
		State:    StateResizing,
		Column:   m.column,
		StartMin: start,
		EndMin:   end,
		Conflict: m.conflicts(m.column, start, end, m.grabbed.ID),
	}
}

// conflicts runs the same overlap rule as the server, locally, for live
// highlighting. The server remains authoritative on commit.
func (m *Machine) conflicts(column, start, end int, excludeID int64) bool {
	if column < 0 || column >= len(m.columns) {
		return false
	}
	return schedule.FindConflict(m.columns[column].Reservations, start, end, excludeID) != nil
}

func (m *Machine) resourceID(column int) int64 {
	if column < 0 || column >= len(m.columns) {
		return 0
	}
	return m.columns[column].ResourceID
}

func (m *Machine) findReservation(column int, id int64) *domain.Reservation {
	if column < 0 || column >= len(m.columns) {
		return nil
	}
	for i := range m.columns[column].Reservations {
		if m.columns[column].Reservations[i].ID == id {
			r := m.columns[column].Reservations[i]
			return &r
		}
	}
	return nil
}
