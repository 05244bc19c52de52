package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveInterval_BufferAsymmetry(t *testing.T) {
	table := Reservation{Kind: KindTable, StartMin: 600, EndMin: 720, CleaningBufferMin: 15}
	start, end := table.EffectiveInterval()
	assert.Equal(t, 600, start)
	assert.Equal(t, 735, end) // table blocks through the cleaning buffer

	quest := Reservation{Kind: KindQuest, StartMin: 600, EndMin: 720}
	start, end = quest.EffectiveInterval()
	assert.Equal(t, 600, start)
	assert.Equal(t, 720, end) // quest blocks nothing after its end
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, ReservationDraft.CanTransitionTo(ReservationConfirmed))
	assert.True(t, ReservationDraft.CanTransitionTo(ReservationCanceled))
	assert.False(t, ReservationDraft.CanTransitionTo(ReservationDone))

	assert.True(t, ReservationConfirmed.CanTransitionTo(ReservationDone))
	assert.True(t, ReservationConfirmed.CanTransitionTo(ReservationCanceled))
	assert.False(t, ReservationConfirmed.CanTransitionTo(ReservationDraft))

	// terminal states
	for _, terminal := range []ReservationStatus{ReservationCanceled, ReservationDone} {
		for _, next := range []ReservationStatus{ReservationDraft, ReservationConfirmed, ReservationCanceled, ReservationDone} {
			assert.False(t, terminal.CanTransitionTo(next))
		}
	}
}

func TestActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: ReservationDraft}).Active())
	assert.True(t, (&Reservation{Status: ReservationDone}).Active())
	assert.False(t, (&Reservation{Status: ReservationCanceled}).Active())
}
