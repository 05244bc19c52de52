package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venueops/internal/domain"
	"venueops/internal/timegrid"
)

// yFor positions the pointer on a minutes-of-day value with zero scroll.
func yFor(g Geometry, mins int) int {
	return g.MinutesToPixels(mins)
}

func testColumns() []Column {
	return []Column{
		{
			ResourceID: 11,
			Reservations: []domain.Reservation{{
				ID:                7,
				Kind:              domain.KindTable,
				ResourceID:        11,
				StartMin:          600,
				EndMin:            720,
				Status:            domain.ReservationConfirmed,
				CleaningBufferMin: 15,
			}},
		},
		{ResourceID: 12, Reservations: []domain.Reservation{}},
	}
}

func TestDragSelectQuickBook(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	m.PointerDown(Pointer{X: 200, Y: yFor(g, 600)}, Target{Kind: TargetCell, Column: 1})
	assert.Equal(t, StateSelecting, m.State())

	preview := m.PointerMove(Pointer{X: 200, Y: yFor(g, 690)})
	assert.Equal(t, 600, preview.StartMin)
	assert.Equal(t, 690, preview.EndMin)
	assert.False(t, preview.Conflict)

	a := m.PointerUp(Pointer{X: 200, Y: yFor(g, 690)})
	assert.Equal(t, ActionQuickBook, a.Type)
	assert.Equal(t, int64(12), a.ResourceID)
	assert.Equal(t, 600, a.StartMin)
	assert.Equal(t, 690, a.EndMin)
	assert.Equal(t, StateIdle, m.State())
}

func TestSelectionMinimumRange(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	m.PointerDown(Pointer{X: 200, Y: yFor(g, 600)}, Target{Kind: TargetCell, Column: 1})
	preview := m.PointerMove(Pointer{X: 200, Y: yFor(g, 630)})

	// a one-slot drag still previews the minimum selection
	assert.Equal(t, 600, preview.StartMin)
	assert.Equal(t, 600+cfg.MinSelectionMin, preview.EndMin)
}

func TestClickToBook(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	y := yFor(g, 600)
	m.PointerDown(Pointer{X: 200, Y: y}, Target{Kind: TargetCell, Column: 1})
	a := m.PointerUp(Pointer{X: 200, Y: y})

	assert.Equal(t, ActionQuickBook, a.Type)
	assert.Equal(t, 600, a.StartMin)
	assert.Equal(t, 600+cfg.DefaultDurationMin, a.EndMin)
}

func TestClickToBookClampsToClose(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	y := yFor(g, timegrid.GridEndMin-timegrid.SlotMinutes) // last slot of the day
	m.PointerDown(Pointer{X: 200, Y: y}, Target{Kind: TargetCell, Column: 1})
	a := m.PointerUp(Pointer{X: 200, Y: y})

	assert.Equal(t, ActionQuickBook, a.Type)
	assert.Equal(t, timegrid.GridEndMin, a.EndMin)
}

func TestSelectionOverBusyRangeAborts(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	// column 0 holds 10:00-12:00, clicking into it must not book
	y := yFor(g, 630)
	m.PointerDown(Pointer{X: 10, Y: y}, Target{Kind: TargetCell, Column: 0})
	assert.True(t, m.Preview().Conflict)

	a := m.PointerUp(Pointer{X: 10, Y: y})
	assert.Equal(t, ActionAbort, a.Type)
	assert.Equal(t, StateIdle, m.State())
}

func TestClickOnBlockOpensDetails(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	y := yFor(g, 630)
	m.PointerDown(Pointer{X: 10, Y: y}, Target{Kind: TargetBlock, Column: 0, ReservationID: 7})
	assert.Equal(t, StatePressed, m.State())

	// jitter below the threshold stays a click
	m.PointerMove(Pointer{X: 12, Y: y + 2})
	assert.Equal(t, StatePressed, m.State())

	a := m.PointerUp(Pointer{X: 12, Y: y + 2})
	assert.Equal(t, ActionOpenDetails, a.Type)
	assert.Equal(t, int64(7), a.ReservationID)
}

func TestDragBlockToOtherColumn(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	m.PointerDown(Pointer{X: 10, Y: yFor(g, 630)}, Target{Kind: TargetBlock, Column: 0, ReservationID: 7})
	preview := m.PointerMove(Pointer{X: g.ColumnWidthPx + 10, Y: yFor(g, 840)})

	assert.Equal(t, StateDragging, m.State())
	assert.Equal(t, 1, preview.Column)
	assert.Equal(t, 840, preview.StartMin)
	assert.Equal(t, 960, preview.EndMin) // duration preserved

	a := m.PointerUp(Pointer{X: g.ColumnWidthPx + 10, Y: yFor(g, 840)})
	assert.Equal(t, ActionCommitMove, a.Type)
	assert.Equal(t, int64(12), a.ResourceID)
	assert.Equal(t, int64(7), a.ReservationID)
	assert.Equal(t, 840, a.StartMin)
	assert.Equal(t, 960, a.EndMin)
}

func TestDragBlockWithinOwnColumn(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	// one slot earlier overlaps the block's old interval, which must not
	// count against itself
	m.PointerDown(Pointer{X: 10, Y: yFor(g, 600)}, Target{Kind: TargetBlock, Column: 0, ReservationID: 7})
	preview := m.PointerMove(Pointer{X: 10, Y: yFor(g, 570)})
	assert.False(t, preview.Conflict)

	a := m.PointerUp(Pointer{X: 10, Y: yFor(g, 570)})
	assert.Equal(t, ActionCommitMove, a.Type)
	assert.Equal(t, 570, a.StartMin)
	assert.Equal(t, 690, a.EndMin)
}

func TestResizeBottomEdge(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	m.PointerDown(Pointer{X: 10, Y: yFor(g, 720)}, Target{Kind: TargetBlockBottomEdge, Column: 0, ReservationID: 7})
	assert.Equal(t, StateResizing, m.State())

	a := m.PointerUp(Pointer{X: 10, Y: yFor(g, 780)})
	assert.Equal(t, ActionCommitMove, a.Type)
	assert.Equal(t, 600, a.StartMin)
	assert.Equal(t, 780, a.EndMin)
}

func TestResizeKeepsOneSlot(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	// dragging the bottom edge above the start collapses to a single slot
	m.PointerDown(Pointer{X: 10, Y: yFor(g, 720)}, Target{Kind: TargetBlockBottomEdge, Column: 0, ReservationID: 7})
	a := m.PointerUp(Pointer{X: 10, Y: yFor(g, 570)})

	assert.Equal(t, ActionCommitMove, a.Type)
	assert.Equal(t, 600, a.StartMin)
	assert.Equal(t, 630, a.EndMin)
}

func TestResizeTopEdge(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	m.PointerDown(Pointer{X: 10, Y: yFor(g, 600)}, Target{Kind: TargetBlockTopEdge, Column: 0, ReservationID: 7})
	a := m.PointerUp(Pointer{X: 10, Y: yFor(g, 660)})

	assert.Equal(t, ActionCommitMove, a.Type)
	assert.Equal(t, 660, a.StartMin)
	assert.Equal(t, 720, a.EndMin)
}

func TestDownOnUnknownBlockIsIgnored(t *testing.T) {
	cfg := DefaultConfig()
	g := cfg.Geometry
	m := NewMachine(cfg, testColumns())

	m.PointerDown(Pointer{X: 10, Y: yFor(g, 630)}, Target{Kind: TargetBlock, Column: 0, ReservationID: 404})
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, ActionNone, m.PointerUp(Pointer{X: 10, Y: yFor(g, 630)}).Type)
}
