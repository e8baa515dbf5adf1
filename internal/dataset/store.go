// Package dataset holds the user-authored working set (trainers, teams,
// time slots, field capacity) for the duration of a planning session. There
// is no persistence: export and import of the JSON document are the only
// ways state crosses the process boundary.
package dataset

import (
	"sync"

	"github.com/bavobbr/dmon-scheduler/internal/domain"
)

// Store is the mutex-guarded owner of the session's dataset.
type Store struct {
	mu       sync.RWMutex
	trainers []domain.Trainer
	teams    []domain.Team
	slots    []domain.TimeSlot
	capacity int
}

// NewStore builds a store seeded with the configured field capacity.
func NewStore(fieldCapacity int) *Store {
	if fieldCapacity <= 0 {
		fieldCapacity = 1
	}
	return &Store{capacity: fieldCapacity}
}

// Snapshot returns a deep copy of the full dataset.
func (s *Store) Snapshot() domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Dataset{
		Trainers:      copyTrainers(s.trainers),
		Teams:         copyTeams(s.teams),
		TimeSlots:     copySlots(s.slots),
		FieldCapacity: s.capacity,
	}
}

// Replace destructively overwrites the whole working set. Import has no
// merge semantics.
func (s *Store) Replace(ds domain.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trainers = copyTrainers(ds.Trainers)
	s.teams = copyTeams(ds.Teams)
	s.slots = copySlots(ds.TimeSlots)
	if ds.FieldCapacity > 0 {
		s.capacity = ds.FieldCapacity
	}
}

// FieldCapacity returns the configured players-per-slot capacity.
func (s *Store) FieldCapacity() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capacity
}

// SetFieldCapacity updates the capacity; non-positive values are ignored.
func (s *Store) SetFieldCapacity(capacity int) {
	if capacity <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capacity = capacity
}

// Trainers returns a copy of the trainer list.
func (s *Store) Trainers() []domain.Trainer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTrainers(s.trainers)
}

// TrainerByID looks up a trainer.
func (s *Store) TrainerByID(id string) (domain.Trainer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.trainers {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Trainer{}, false
}

// AddTrainer appends a trainer.
func (s *Store) AddTrainer(t domain.Trainer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trainers = append(s.trainers, t)
}

// UpdateTrainer replaces a trainer by id.
func (s *Store) UpdateTrainer(t domain.Trainer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trainers {
		if s.trainers[i].ID == t.ID {
			s.trainers[i] = t
			return true
		}
	}
	return false
}

// DeleteTrainer removes a trainer by id.
func (s *Store) DeleteTrainer(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.trainers {
		if s.trainers[i].ID == id {
			s.trainers = append(s.trainers[:i], s.trainers[i+1:]...)
			return true
		}
	}
	return false
}

// Teams returns a copy of the team list.
func (s *Store) Teams() []domain.Team {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTeams(s.teams)
}

// TeamByID looks up a team. Trainer preferred-team references resolve
// through here; a dangling id simply reports absence.
func (s *Store) TeamByID(id string) (domain.Team, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.teams {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Team{}, false
}

// AddTeam appends a team.
func (s *Store) AddTeam(t domain.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams = append(s.teams, t)
}

// UpdateTeam replaces a team by id.
func (s *Store) UpdateTeam(t domain.Team) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teams {
		if s.teams[i].ID == t.ID {
			s.teams[i] = t
			return true
		}
	}
	return false
}

// DeleteTeam removes a team by id. Trainers preferring the team keep their
// now-dangling reference; the lookup side tolerates it.
func (s *Store) DeleteTeam(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.teams {
		if s.teams[i].ID == id {
			s.teams = append(s.teams[:i], s.teams[i+1:]...)
			return true
		}
	}
	return false
}

// TimeSlots returns a copy of the slot collection.
func (s *Store) TimeSlots() []domain.TimeSlot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copySlots(s.slots)
}

// SetTimeSlots replaces the slot collection. The selection editor commits
// every accepted cell change through here.
func (s *Store) SetTimeSlots(slots []domain.TimeSlot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = copySlots(slots)
}

func copyTrainers(in []domain.Trainer) []domain.Trainer {
	out := make([]domain.Trainer, len(in))
	for i, t := range in {
		out[i] = t
		if t.PreferredTeamID != nil {
			id := *t.PreferredTeamID
			out[i].PreferredTeamID = &id
		}
		out[i].TrainableAgeGroups = append([]domain.AgeGroup(nil), t.TrainableAgeGroups...)
	}
	return out
}

func copyTeams(in []domain.Team) []domain.Team {
	out := make([]domain.Team, len(in))
	for i, t := range in {
		out[i] = t
		out[i].AvailableDays = append([]domain.DayOfWeek(nil), t.AvailableDays...)
	}
	return out
}

func copySlots(in []domain.TimeSlot) []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(in))
	copy(out, in)
	return out
}
