package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolvingOnlyStopsOnExplicitNotSolving(t *testing.T) {
	assert.True(t, (&Schedule{SolverStatus: SolverStatusActive}).Solving())
	assert.True(t, (&Schedule{SolverStatus: SolverStatusUnknown}).Solving())
	assert.True(t, (&Schedule{SolverStatus: "SOLVING_SCHEDULED"}).Solving())
	assert.False(t, (&Schedule{SolverStatus: SolverStatusNotSolving}).Solving())

	var missing *Schedule
	assert.False(t, missing.Solving())
}

func TestPlacedRequiresSlotAndTrainer(t *testing.T) {
	slot := NewTimeSlot(Monday, 18)
	trainer := Trainer{ID: "tr1", Name: "Alice"}

	assert.False(t, TrainingSession{}.Placed())
	assert.False(t, TrainingSession{TimeSlot: &slot}.Placed())
	assert.False(t, TrainingSession{Trainer: &trainer}.Placed())
	assert.True(t, TrainingSession{TimeSlot: &slot, Trainer: &trainer}.Placed())
}
