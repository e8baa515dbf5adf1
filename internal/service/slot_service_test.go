package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/domain"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

func newSlotFixture() (*SlotService, *dataset.Store) {
	store := dataset.NewStore(60)
	return NewSlotService(store, 8, 21, nil), store
}

func TestGridWindowAndDefaults(t *testing.T) {
	svc, _ := newSlotFixture()

	grid := svc.Grid(context.Background())

	assert.Equal(t, domain.Days, grid.Days)
	require.Len(t, grid.Hours, 14)
	assert.Equal(t, 8, grid.Hours[0])
	assert.Equal(t, 21, grid.Hours[len(grid.Hours)-1])
	assert.Equal(t, 60, grid.FieldCapacity)
	assert.Empty(t, grid.Slots)
	assert.False(t, grid.Painting)
}

func TestToggleCommitsToStore(t *testing.T) {
	svc, store := newSlotFixture()

	grid, err := svc.Toggle(context.Background(), CellRequest{Day: domain.Monday, Hour: 18})

	require.NoError(t, err)
	require.Len(t, grid.Slots, 1)
	assert.Equal(t, "MONDAY-18", grid.Slots[0].ID)

	stored := store.TimeSlots()
	require.Len(t, stored, 1)
	assert.Equal(t, "MONDAY-18", stored[0].ID)
}

func TestToggleOutsideWindowRejected(t *testing.T) {
	svc, store := newSlotFixture()

	for _, hour := range []int{7, 22, -1} {
		_, err := svc.Toggle(context.Background(), CellRequest{Day: domain.Monday, Hour: hour})
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, store.TimeSlots())
}

func TestToggleUnknownDayRejected(t *testing.T) {
	svc, _ := newSlotFixture()

	_, err := svc.Toggle(context.Background(), CellRequest{Day: "FUNDAY", Hour: 10})

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPaintGestureCommitsEveryChange(t *testing.T) {
	svc, store := newSlotFixture()

	grid, err := svc.BeginPaint(context.Background(), CellRequest{Day: domain.Tuesday, Hour: 9})
	require.NoError(t, err)
	assert.True(t, grid.Painting)
	assert.Len(t, store.TimeSlots(), 1)

	_, err = svc.PaintCell(context.Background(), CellRequest{Day: domain.Tuesday, Hour: 10})
	require.NoError(t, err)
	assert.Len(t, store.TimeSlots(), 2)

	grid = svc.EndPaint(context.Background())
	assert.False(t, grid.Painting)
	assert.Len(t, grid.Slots, 2)
}

func TestSetCapacity(t *testing.T) {
	svc, store := newSlotFixture()

	grid, err := svc.SetCapacity(context.Background(), CapacityRequest{FieldCapacity: 45})
	require.NoError(t, err)
	assert.Equal(t, 45, grid.FieldCapacity)
	assert.Equal(t, 45, store.FieldCapacity())

	_, err = svc.SetCapacity(context.Background(), CapacityRequest{FieldCapacity: 0})
	require.Error(t, err)
	assert.Equal(t, 45, store.FieldCapacity())
}
