package schedule

import (
	"errors"
	"fmt"

	"venueops/internal/timegrid"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrSlotTaken         = errors.New("slot taken")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// SlotTakenError carries the conflicting reservation's window so the client
// can tell the user which block is in the way. errors.Is(err, ErrSlotTaken)
// holds for it.
type SlotTakenError struct {
	Conflict Conflict
}

func (e *SlotTakenError) Error() string {
	c := e.Conflict
	return fmt.Sprintf("slot taken by reservation %d (%s-%s, blocked through %s)",
		c.ReservationID,
		timegrid.MinutesToTime(c.StartMin),
		timegrid.MinutesToTime(c.EndMin),
		timegrid.MinutesToTime(c.EffectiveEndMin))
}

func (e *SlotTakenError) Is(target error) bool { return target == ErrSlotTaken }
