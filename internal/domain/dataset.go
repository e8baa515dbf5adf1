package domain

import "fmt"

// Trainer is a coach that can be assigned to training sessions.
// PreferredTeamID is a weak reference: the team may have been deleted since,
// so lookups must tolerate a dangling id.
type Trainer struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	MaxHoursPerWeek    int        `json:"maxHoursPerWeek"`
	TrainableAgeGroups []AgeGroup `json:"trainableAgeGroups"`
	PreferredTeamID    *string    `json:"preferredTeamId,omitempty"`
}

// Team is a group of players requiring a number of weekly training sessions
// within its availability window. Invariant: EarliestHour <= LatestHour.
type Team struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	AgeGroup         AgeGroup    `json:"ageGroup"`
	Size             int         `json:"size"`
	TrainingsPerWeek int         `json:"trainingsPerWeek"`
	AvailableDays    []DayOfWeek `json:"availableDays"`
	EarliestHour     int         `json:"earliestHour"`
	LatestHour       int         `json:"latestHour"`
}

// TimeSlot is one offered hour on one day. Its identity is derived from the
// (day, hour) pair, so no two slots can share a pair.
type TimeSlot struct {
	ID        string    `json:"id"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	StartHour int       `json:"startHour"`
}

// SlotID builds the deterministic "<DAY>-<HOUR>" identity of a time slot.
func SlotID(day DayOfWeek, hour int) string {
	return fmt.Sprintf("%s-%d", day, hour)
}

// NewTimeSlot constructs a slot with its deterministic identity.
func NewTimeSlot(day DayOfWeek, hour int) TimeSlot {
	return TimeSlot{ID: SlotID(day, hour), DayOfWeek: day, StartHour: hour}
}

// Dataset is the user-authored planning input handed to the solving service.
type Dataset struct {
	Trainers      []Trainer  `json:"trainers"`
	Teams         []Team     `json:"teams"`
	TimeSlots     []TimeSlot `json:"timeSlots"`
	FieldCapacity int        `json:"fieldCapacity"`
}

// TeamByID resolves a team reference, tolerating dangling ids.
func (d Dataset) TeamByID(id string) (Team, bool) {
	for _, t := range d.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}
