package domain

import "time"

type ReservationStatus string

const (
	ReservationDraft     ReservationStatus = "draft"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCanceled  ReservationStatus = "canceled"
	ReservationDone      ReservationStatus = "done"
)

// DefaultCleaningBufferMin is the table turnover buffer applied when a
// reservation does not specify its own.
const DefaultCleaningBufferMin = 15

// CanTransitionTo enforces the reservation lifecycle:
// draft -> confirmed -> done, with cancellation allowed from draft and
// confirmed. canceled and done are terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case ReservationDraft:
		return next == ReservationConfirmed || next == ReservationCanceled
	case ReservationConfirmed:
		return next == ReservationDone || next == ReservationCanceled
	default:
		return false
	}
}

// Reservation is a time-bounded claim on one resource for one event date.
// StartMin/EndMin are minutes from midnight, venue-local; EventDate is a
// "YYYY-MM-DD" calendar day with no time component.
type Reservation struct {
	ID                int64             `json:"id"`
	Kind              ResourceKind      `json:"resource_kind"`
	ResourceID        int64             `json:"resource_id"`
	BookingID         int64             `json:"booking_id"`
	EventDate         string            `json:"event_date"`
	StartMin          int               `json:"-"`
	EndMin            int               `json:"-"`
	Status            ReservationStatus `json:"status"`
	CleaningBufferMin int               `json:"cleaning_buffer_minutes"`
	Title             string            `json:"title"`
	Comment           string            `json:"comment,omitempty"`
	AnimatorName      string            `json:"animator_name,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// EffectiveInterval is the half-open window the reservation blocks on its
// resource: tables keep the resource busy for the trailing cleaning buffer,
// quests block exactly their play window.
func (r *Reservation) EffectiveInterval() (start, end int) {
	if r.Kind == KindTable {
		return r.StartMin, r.EndMin + r.CleaningBufferMin
	}
	return r.StartMin, r.EndMin
}

// Active reports whether the reservation participates in overlap checks.
func (r *Reservation) Active() bool {
	return r.Status != ReservationCanceled
}
