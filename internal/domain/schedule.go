package domain

// SolverStatus reflects the solving service's view of a job.
type SolverStatus string

const (
	SolverStatusActive     SolverStatus = "SOLVING_ACTIVE"
	SolverStatusNotSolving SolverStatus = "NOT_SOLVING"
	SolverStatusUnknown    SolverStatus = ""
)

// FieldConfig carries the per-field player capacity as reported by the solver.
type FieldConfig struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

// TrainingSession is one required training occurrence for a team. TimeSlot
// and Trainer are nil while the session is unassigned.
type TrainingSession struct {
	ID       string    `json:"id"`
	Team     Team      `json:"team"`
	TimeSlot *TimeSlot `json:"timeSlot"`
	Trainer  *Trainer  `json:"trainer"`
}

// Placed reports whether the session has both a slot and a trainer assigned.
func (s TrainingSession) Placed() bool {
	return s.TimeSlot != nil && s.Trainer != nil
}

// Schedule is a solver-produced snapshot of session placements. Snapshots
// are never mutated locally; each poll response replaces the prior one.
type Schedule struct {
	Trainers     []Trainer         `json:"trainers"`
	Teams        []Team            `json:"teams"`
	TimeSlots    []TimeSlot        `json:"timeSlots"`
	FieldConfigs []FieldConfig     `json:"fieldConfigs"`
	Sessions     []TrainingSession `json:"sessions"`
	Score        *string           `json:"score"`
	SolverStatus SolverStatus      `json:"solverStatus"`
}

// Solving reports whether the solver is still working on this snapshot. Only
// an explicit NOT_SOLVING means finished; an absent or unknown status keeps
// the job live.
func (s *Schedule) Solving() bool {
	return s != nil && s.SolverStatus != SolverStatusNotSolving
}
