package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bavobbr/dmon-scheduler/internal/domain"
)

func TestSnapshotIsDeepCopy(t *testing.T) {
	store := NewStore(60)
	teamID := "tm1"
	store.AddTrainer(domain.Trainer{
		ID:                 "tr1",
		Name:               "Alice",
		TrainableAgeGroups: []domain.AgeGroup{domain.AgeU10, domain.AgeU12},
		PreferredTeamID:    &teamID,
	})
	store.AddTeam(domain.Team{ID: teamID, Name: "U12 Red", AvailableDays: []domain.DayOfWeek{domain.Monday}})

	snap := store.Snapshot()
	snap.Trainers[0].Name = "mutated"
	snap.Trainers[0].TrainableAgeGroups[0] = domain.AgeSenior
	*snap.Trainers[0].PreferredTeamID = "mutated"
	snap.Teams[0].AvailableDays[0] = domain.Sunday

	trainer, ok := store.TrainerByID("tr1")
	require.True(t, ok)
	assert.Equal(t, "Alice", trainer.Name)
	assert.Equal(t, domain.AgeU10, trainer.TrainableAgeGroups[0])
	assert.Equal(t, teamID, *trainer.PreferredTeamID)

	team, ok := store.TeamByID(teamID)
	require.True(t, ok)
	assert.Equal(t, domain.Monday, team.AvailableDays[0])
}

func TestReplaceIsDestructive(t *testing.T) {
	store := NewStore(60)
	store.AddTrainer(domain.Trainer{ID: "tr1", Name: "Alice"})
	store.AddTeam(domain.Team{ID: "tm1", Name: "U12"})
	store.SetTimeSlots([]domain.TimeSlot{domain.NewTimeSlot(domain.Monday, 18)})

	store.Replace(domain.Dataset{
		Trainers:      []domain.Trainer{{ID: "tr2", Name: "Bob"}},
		TimeSlots:     nil,
		FieldCapacity: 40,
	})

	assert.Empty(t, store.Teams())
	assert.Empty(t, store.TimeSlots())
	require.Len(t, store.Trainers(), 1)
	assert.Equal(t, "Bob", store.Trainers()[0].Name)
	assert.Equal(t, 40, store.FieldCapacity())
}

func TestDeleteTeamLeavesDanglingPreference(t *testing.T) {
	store := NewStore(60)
	teamID := "tm1"
	store.AddTeam(domain.Team{ID: teamID, Name: "U12"})
	store.AddTrainer(domain.Trainer{ID: "tr1", Name: "Alice", PreferredTeamID: &teamID})

	require.True(t, store.DeleteTeam(teamID))

	trainer, ok := store.TrainerByID("tr1")
	require.True(t, ok)
	require.NotNil(t, trainer.PreferredTeamID)
	assert.Equal(t, teamID, *trainer.PreferredTeamID)

	_, found := store.TeamByID(teamID)
	assert.False(t, found)
}

func TestUpdateMissingEntitiesReportFalse(t *testing.T) {
	store := NewStore(60)

	assert.False(t, store.UpdateTrainer(domain.Trainer{ID: "nope"}))
	assert.False(t, store.UpdateTeam(domain.Team{ID: "nope"}))
	assert.False(t, store.DeleteTrainer("nope"))
	assert.False(t, store.DeleteTeam("nope"))
}

func TestSetFieldCapacityIgnoresNonPositive(t *testing.T) {
	store := NewStore(60)

	store.SetFieldCapacity(0)
	assert.Equal(t, 60, store.FieldCapacity())

	store.SetFieldCapacity(-5)
	assert.Equal(t, 60, store.FieldCapacity())

	store.SetFieldCapacity(45)
	assert.Equal(t, 45, store.FieldCapacity())
}

func TestReplaceKeepsCapacityWhenAbsent(t *testing.T) {
	store := NewStore(60)

	store.Replace(domain.Dataset{FieldCapacity: 0})

	assert.Equal(t, 60, store.FieldCapacity())
}
