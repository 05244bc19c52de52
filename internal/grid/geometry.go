// Package grid is the headless view-model of the interactive day grid: time
// geometry, block layout, the pointer gesture state machine and the
// optimistic overlay. It is independent of any UI toolkit; a renderer feeds
// it pointer events and draws whatever it returns.
package grid

import (
	"venueops/internal/domain"
	"venueops/internal/timegrid"
)

// Geometry maps between screen pixels and minutes-of-day. One slot row is
// SlotHeightPx tall; the time axis starts right below the column header.
type Geometry struct {
	SlotHeightPx   int
	HeaderHeightPx int
	ColumnWidthPx  int
}

func DefaultGeometry() Geometry {
	return Geometry{SlotHeightPx: 40, HeaderHeightPx: 48, ColumnWidthPx: 160}
}

// PixelsToMinutes converts a viewport Y plus scroll offset to raw
// minutes-of-day, unclamped and unsnapped.
func (g Geometry) PixelsToMinutes(y, scrollTop int) int {
	rel := y + scrollTop - g.HeaderHeightPx
	return timegrid.GridStartMin + rel*timegrid.SlotMinutes/g.SlotHeightPx
}

// SnappedMinutes is PixelsToMinutes rounded to the slot grid and clamped to
// the schedulable window.
func (g Geometry) SnappedMinutes(y, scrollTop int) int {
	return timegrid.ClampToDay(timegrid.SnapToGrid(g.PixelsToMinutes(y, scrollTop)))
}

// MinutesToPixels positions a minutes-of-day value on the unscrolled canvas.
func (g Geometry) MinutesToPixels(mins int) int {
	return g.HeaderHeightPx + (mins-timegrid.GridStartMin)*g.SlotHeightPx/timegrid.SlotMinutes
}

// ColumnAt resolves a viewport X plus horizontal scroll to a column index.
func (g Geometry) ColumnAt(x, scrollLeft int) int {
	abs := x + scrollLeft
	if abs < 0 {
		return 0
	}
	return abs / g.ColumnWidthPx
}

// Block is one visual reservation rectangle inside a column.
type Block struct {
	ReservationID int64
	StartMin      int
	EndMin        int
	TopPx         int
	HeightPx      int
	Status        domain.ReservationStatus
	Title         string
}

// BlocksFor lays out one column: one block per non-canceled reservation,
// block height proportional to its slot count.
func (g Geometry) BlocksFor(reservations []domain.Reservation) []Block {
	out := make([]Block, 0, len(reservations))
	for i := range reservations {
		r := &reservations[i]
		if !r.Active() {
			continue
		}
		slots := (r.EndMin - r.StartMin) / timegrid.SlotMinutes
		out = append(out, Block{
			ReservationID: r.ID,
			StartMin:      r.StartMin,
			EndMin:        r.EndMin,
			TopPx:         g.MinutesToPixels(r.StartMin),
			HeightPx:      slots * g.SlotHeightPx,
			Status:        r.Status,
			Title:         r.Title,
		})
	}
	return out
}
