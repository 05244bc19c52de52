package grid

import "venueops/internal/domain"

// Overlay keeps the client's provisional edits separate from committed
// server state. The two are reconciled by merging on render and by
// discarding provisional entries: Rollback on any non-2xx response, Confirm
// once the re-fetched server state contains the change. Provisional state
// is never authoritative.
type Overlay struct {
	staged   map[int64]domain.Reservation
	canceled map[int64]bool
	nextTemp int64
}

func NewOverlay() *Overlay {
	return &Overlay{
		staged:   make(map[int64]domain.Reservation),
		canceled: make(map[int64]bool),
		nextTemp: -1,
	}
}

// StageMove records a provisional time/resource change for an existing
// reservation.
func (o *Overlay) StageMove(r domain.Reservation, resourceID int64, startMin, endMin int) {
	r.ResourceID = resourceID
	r.StartMin = startMin
	r.EndMin = endMin
	o.staged[r.ID] = r
}

// StageCreate records a provisional new reservation under a temporary
// negative id and returns that id.
func (o *Overlay) StageCreate(r domain.Reservation) int64 {
	id := o.nextTemp
	o.nextTemp--
	r.ID = id
	o.staged[id] = r
	return id
}

// StageCancel hides a reservation pending the server's confirmation.
func (o *Overlay) StageCancel(id int64) {
	o.canceled[id] = true
}

// Rollback discards a provisional change after a rejected server call.
func (o *Overlay) Rollback(id int64) {
	delete(o.staged, id)
	delete(o.canceled, id)
}

// Confirm drops a provisional change once the re-fetched committed state
// includes it.
func (o *Overlay) Confirm(id int64) {
	delete(o.staged, id)
	delete(o.canceled, id)
}

// Pending reports whether any provisional edits are outstanding.
func (o *Overlay) Pending() bool {
	return len(o.staged) > 0 || len(o.canceled) > 0
}

// View merges committed server state with the provisional edits: staged
// moves replace their rows, staged cancels hide theirs, staged creates are
// appended.
func (o *Overlay) View(committed []domain.Reservation) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(committed)+len(o.staged))
	for _, r := range committed {
		if o.canceled[r.ID] {
			continue
		}
		if s, ok := o.staged[r.ID]; ok {
			out = append(out, s)
			continue
		}
		out = append(out, r)
	}
	for id, s := range o.staged {
		if id < 0 {
			out = append(out, s)
		}
	}
	return out
}
