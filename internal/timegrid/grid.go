// Package timegrid holds the canonical schedule grid: a venue day divided
// into fixed 30-minute slots between GridStartMin and GridEndMin. All time
// arithmetic is integer minutes-of-day; dates and times stay venue-local
// wall-clock values and are never converted to UTC.
package timegrid

import (
	"fmt"
	"time"
)

const (
	// SlotMinutes is the grid granularity. Every reservation boundary is a
	// multiple of it.
	SlotMinutes = 30

	// GridStartMin and GridEndMin bound the schedulable window [start, end).
	GridStartMin = 9*60 + 30 // 09:30
	GridEndMin   = 24 * 60   // 24:00

	MinutesPerDay = 24 * 60
)

// TimeToMinutes parses "HH:MM" into minutes from midnight. "24:00" is
// accepted as the exclusive end of day.
func TimeToMinutes(hhmm string) (int, error) {
	if hhmm == "24:00" {
		return MinutesPerDay, nil
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesToTime formats minutes from midnight as "HH:MM". 1440 renders as
// "24:00" so a day-end boundary round-trips.
func MinutesToTime(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// SnapToGrid rounds to the nearest slot boundary.
func SnapToGrid(mins int) int {
	snapped := (mins + SlotMinutes/2) / SlotMinutes * SlotMinutes
	if snapped < 0 {
		return 0
	}
	if snapped > MinutesPerDay {
		return MinutesPerDay
	}
	return snapped
}

// Aligned reports whether mins sits on a slot boundary.
func Aligned(mins int) bool {
	return mins%SlotMinutes == 0
}

// ClampToDay restricts mins to the schedulable window.
func ClampToDay(mins int) int {
	if mins < GridStartMin {
		return GridStartMin
	}
	if mins > GridEndMin {
		return GridEndMin
	}
	return mins
}

// Slots returns every slot start of the schedulable window as "HH:MM",
// in order. Computed from constants only.
func Slots() []string {
	out := make([]string, 0, (GridEndMin-GridStartMin)/SlotMinutes)
	for m := GridStartMin; m < GridEndMin; m += SlotMinutes {
		out = append(out, MinutesToTime(m))
	}
	return out
}

// SlotCount is the number of slots in the window.
func SlotCount() int {
	return (GridEndMin - GridStartMin) / SlotMinutes
}

// ParseDate validates a "YYYY-MM-DD" calendar date and returns it in the
// same canonical form. The value is treated as an opaque venue-local day.
func ParseDate(date string) (string, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", date)
	}
	return t.Format("2006-01-02"), nil
}
