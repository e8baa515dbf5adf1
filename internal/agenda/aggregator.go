// Package agenda reduces solver session assignments into a renderable weekly
// grid and annotates it with constraint-violation detail. Both computations
// are pure: they hold no state and take no locks.
package agenda

import (
	"github.com/bavobbr/dmon-scheduler/internal/domain"
)

// CellKey addresses one grid cell.
type CellKey struct {
	Day  domain.DayOfWeek `json:"day"`
	Hour int              `json:"hour"`
}

// Cell groups the sessions landing on one (day, hour) pair. Sessions keep
// the relative order they had in the input. Occupancy is the summed team
// size; OverCapacity is a pure display fact and is independent of whatever
// capacity constraint the solver itself reports.
type Cell struct {
	Sessions     []domain.TrainingSession `json:"sessions"`
	Occupancy    int                      `json:"occupancy"`
	OverCapacity bool                     `json:"overCapacity"`
}

// Grid is the day/hour view of placed sessions. Days holds only days with at
// least one placed session, in week order; Hours is the closed min..max
// range of start hours among placed sessions.
type Grid struct {
	Days  []domain.DayOfWeek `json:"days"`
	Hours []int              `json:"hours"`
	Cells map[CellKey]Cell   `json:"-"`
}

// Empty reports whether no sessions were placed at all.
func (g Grid) Empty() bool {
	return len(g.Cells) == 0
}

// Cell returns the bucket at (day, hour), zero-valued when nothing landed there.
func (g Grid) Cell(day domain.DayOfWeek, hour int) Cell {
	return g.Cells[CellKey{Day: day, Hour: hour}]
}

// Aggregate buckets placed sessions into a grid against the given field
// capacity. Unplaced sessions are excluded entirely; they surface only via
// the score analysis counts.
func Aggregate(sessions []domain.TrainingSession, capacity int) Grid {
	grid := Grid{Cells: make(map[CellKey]Cell)}

	minHour, maxHour := 0, 0
	seenDays := make(map[domain.DayOfWeek]bool)
	first := true
	for _, s := range sessions {
		if !s.Placed() {
			continue
		}
		h := s.TimeSlot.StartHour
		if first {
			minHour, maxHour = h, h
			first = false
		} else {
			if h < minHour {
				minHour = h
			}
			if h > maxHour {
				maxHour = h
			}
		}
		seenDays[s.TimeSlot.DayOfWeek] = true

		key := CellKey{Day: s.TimeSlot.DayOfWeek, Hour: h}
		cell := grid.Cells[key]
		cell.Sessions = append(cell.Sessions, s)
		cell.Occupancy += s.Team.Size
		cell.OverCapacity = cell.Occupancy > capacity
		grid.Cells[key] = cell
	}

	if first {
		return grid
	}

	for h := minHour; h <= maxHour; h++ {
		grid.Hours = append(grid.Hours, h)
	}
	for _, d := range domain.Days {
		if seenDays[d] {
			grid.Days = append(grid.Days, d)
		}
	}
	return grid
}
