package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venueops/internal/domain"
)

func committedPair() []domain.Reservation {
	return []domain.Reservation{
		{ID: 1, Kind: domain.KindTable, ResourceID: 11, StartMin: 600, EndMin: 720, Status: domain.ReservationConfirmed},
		{ID: 2, Kind: domain.KindTable, ResourceID: 11, StartMin: 780, EndMin: 840, Status: domain.ReservationDraft},
	}
}

func TestOverlay_StageMove(t *testing.T) {
	o := NewOverlay()
	committed := committedPair()

	o.StageMove(committed[0], 12, 660, 780)
	assert.True(t, o.Pending())

	view := o.View(committed)
	if assert.Len(t, view, 2) {
		assert.Equal(t, int64(12), view[0].ResourceID)
		assert.Equal(t, 660, view[0].StartMin)
		assert.Equal(t, 780, view[0].EndMin)
		assert.Equal(t, 780, view[1].StartMin) // untouched row passes through
	}
}

func TestOverlay_StageCancelHidesRow(t *testing.T) {
	o := NewOverlay()
	committed := committedPair()

	o.StageCancel(2)
	view := o.View(committed)

	if assert.Len(t, view, 1) {
		assert.Equal(t, int64(1), view[0].ID)
	}
}

func TestOverlay_StageCreateAppendsTempRow(t *testing.T) {
	o := NewOverlay()
	committed := committedPair()

	id := o.StageCreate(domain.Reservation{
		Kind: domain.KindTable, ResourceID: 11, StartMin: 900, EndMin: 960,
		Status: domain.ReservationDraft,
	})
	assert.Negative(t, id)

	view := o.View(committed)
	if assert.Len(t, view, 3) {
		assert.Equal(t, id, view[2].ID)
	}

	// temp ids never collide
	assert.NotEqual(t, id, o.StageCreate(domain.Reservation{}))
}

func TestOverlay_RollbackRestoresCommitted(t *testing.T) {
	o := NewOverlay()
	committed := committedPair()

	o.StageMove(committed[0], 12, 660, 780)
	o.StageCancel(2)
	o.Rollback(1)
	o.Rollback(2)

	assert.False(t, o.Pending())
	assert.Equal(t, committed, o.View(committed))
}

func TestOverlay_ConfirmDropsProvisionalEntry(t *testing.T) {
	o := NewOverlay()
	committed := committedPair()

	o.StageMove(committed[0], 11, 660, 780)
	o.Confirm(1)
	assert.False(t, o.Pending())

	// after a re-fetch the committed row already carries the new interval
	committed[0].StartMin = 660
	committed[0].EndMin = 780
	view := o.View(committed)
	assert.Equal(t, 660, view[0].StartMin)
}
