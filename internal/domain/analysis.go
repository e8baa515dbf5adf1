package domain

// ConstraintLevel distinguishes feasibility rules from optimization preferences.
type ConstraintLevel string

const (
	LevelHard ConstraintLevel = "HARD"
	LevelSoft ConstraintLevel = "SOFT"
)

// ConstraintMatch aggregates one constraint's contribution to the score.
type ConstraintMatch struct {
	ConstraintName    string          `json:"constraintName"`
	ConstraintPackage string          `json:"constraintPackage"`
	Score             int             `json:"score"`
	MatchCount        int             `json:"matchCount"`
	Level             ConstraintLevel `json:"level"`
}

// ScoreAnalysis is the solver's aggregate constraint breakdown for a job.
type ScoreAnalysis struct {
	HardScore          int               `json:"hardScore"`
	SoftScore          int               `json:"softScore"`
	AssignedSessions   int               `json:"assignedSessions"`
	UnassignedSessions int               `json:"unassignedSessions"`
	TotalSessions      int               `json:"totalSessions"`
	ConstraintMatches  []ConstraintMatch `json:"constraintMatches"`
}

// Feasible reports whether no hard constraints are violated.
func (a ScoreAnalysis) Feasible() bool {
	return a.HardScore == 0
}

// AssignmentRate returns the assigned/total percentage, 0 for empty jobs.
func (a ScoreAnalysis) AssignmentRate() int {
	if a.TotalSessions <= 0 {
		return 0
	}
	return int(float64(a.AssignedSessions)/float64(a.TotalSessions)*100 + 0.5)
}

// MatchesByLevel splits constraint matches into hard and soft groups,
// preserving their reported order.
func (a ScoreAnalysis) MatchesByLevel() (hard, soft []ConstraintMatch) {
	for _, m := range a.ConstraintMatches {
		if m.Level == LevelHard {
			hard = append(hard, m)
		} else {
			soft = append(soft, m)
		}
	}
	return hard, soft
}

// Violation is one constraint breach attributed to a single session.
type Violation struct {
	ConstraintName string          `json:"constraintName"`
	Level          ConstraintLevel `json:"level"`
	Score          int             `json:"score"`
	Message        string          `json:"message"`
}

// SessionAnalysis is the solver's per-session violation detail, with labels
// denormalized for display.
type SessionAnalysis struct {
	SessionID     string      `json:"sessionId"`
	TeamName      string      `json:"teamName"`
	TrainerName   string      `json:"trainerName"`
	TimeSlotInfo  string      `json:"timeSlotInfo"`
	HasViolations bool        `json:"hasViolations"`
	TotalScore    int         `json:"totalScore"`
	Violations    []Violation `json:"violations"`
}
