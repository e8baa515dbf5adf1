package agenda

import (
	"github.com/bavobbr/dmon-scheduler/internal/domain"
)

// Severity classifies a rendered session for display. The classes form a
// strict priority: a session with any hard violation is hard regardless of
// how many soft violations it also carries.
type Severity string

const (
	SeverityClean Severity = "clean"
	SeveritySoft  Severity = "soft"
	SeverityHard  Severity = "hard"
)

// Mark is the per-session annotation: its severity class and the ordered
// violation list backing a tooltip or expansion.
type Mark struct {
	Severity   Severity           `json:"severity"`
	Violations []domain.Violation `json:"violations,omitempty"`
}

// Annotated couples a grid with per-session marks keyed by session id.
type Annotated struct {
	Grid  Grid            `json:"grid"`
	Marks map[string]Mark `json:"marks"`
}

// Annotate merges session analyses into the grid. A nil analyses slice means
// the analysis is not available yet; every session then renders clean, which
// is not an error. Sessions absent from the analyses also render clean.
func Annotate(grid Grid, analyses []domain.SessionAnalysis) Annotated {
	byID := make(map[string]domain.SessionAnalysis, len(analyses))
	for _, a := range analyses {
		byID[a.SessionID] = a
	}

	marks := make(map[string]Mark)
	for _, cell := range grid.Cells {
		for _, s := range cell.Sessions {
			marks[s.ID] = classify(byID, s.ID)
		}
	}
	return Annotated{Grid: grid, Marks: marks}
}

func classify(byID map[string]domain.SessionAnalysis, sessionID string) Mark {
	analysis, ok := byID[sessionID]
	if !ok || len(analysis.Violations) == 0 {
		return Mark{Severity: SeverityClean}
	}

	severity := SeveritySoft
	for _, v := range analysis.Violations {
		if v.Level == domain.LevelHard {
			severity = SeverityHard
			break
		}
	}
	return Mark{Severity: severity, Violations: analysis.Violations}
}
