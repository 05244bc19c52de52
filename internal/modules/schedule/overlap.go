package schedule

import "venueops/internal/domain"

// Conflict describes the reservation blocking a candidate window.
// EffectiveEndMin includes the trailing cleaning buffer for tables.
type Conflict struct {
	ReservationID   int64  `json:"reservation_id"`
	Title           string `json:"title"`
	StartMin        int    `json:"-"`
	EndMin          int    `json:"-"`
	EffectiveEndMin int    `json:"-"`
}

// FindConflict checks a candidate half-open window [startMin, endMin)
// against existing reservations of one resource-day and returns the first
// conflicting one, or nil. Canceled reservations must already be filtered
// out by the caller's query; excludeID skips the reservation being moved so
// it cannot collide with itself. Two half-open intervals [a,b) and [c,d)
// overlap iff a < d && b > c, so a candidate starting exactly at an existing
// effective end is legal (buffers are consumed, not doubled).
func FindConflict(existing []domain.Reservation, startMin, endMin int, excludeID int64) *Conflict {
	for i := range existing {
		r := &existing[i]
		if r.ID == excludeID {
			continue
		}
		if !r.Active() {
			continue
		}
		effStart, effEnd := r.EffectiveInterval()
		if startMin < effEnd && endMin > effStart {
			return &Conflict{
				ReservationID:   r.ID,
				Title:           r.Title,
				StartMin:        r.StartMin,
				EndMin:          r.EndMin,
				EffectiveEndMin: effEnd,
			}
		}
	}
	return nil
}
