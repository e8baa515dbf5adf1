package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bavobbr/dmon-scheduler/internal/agenda"
	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/domain"
	"github.com/bavobbr/dmon-scheduler/internal/orchestrator"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
	"github.com/bavobbr/dmon-scheduler/pkg/export"
)

// AgendaSession is one rendered session with its violation annotation.
type AgendaSession struct {
	ID          string             `json:"id"`
	TeamName    string             `json:"teamName"`
	TrainerName string             `json:"trainerName"`
	Size        int                `json:"size"`
	Severity    agenda.Severity    `json:"severity"`
	Violations  []domain.Violation `json:"violations,omitempty"`
}

// AgendaCell is one (day, hour) bucket of the rendered weekly grid.
type AgendaCell struct {
	Day          domain.DayOfWeek `json:"day"`
	Hour         int              `json:"hour"`
	Sessions     []AgendaSession  `json:"sessions"`
	Occupancy    int              `json:"occupancy"`
	OverCapacity bool             `json:"overCapacity"`
}

// AgendaView is the complete renderable schedule view for the current job.
type AgendaView struct {
	State         orchestrator.State `json:"state"`
	JobID         string             `json:"jobId,omitempty"`
	Score         *string            `json:"score,omitempty"`
	SolverStatus  domain.SolverStatus `json:"solverStatus,omitempty"`
	Days          []domain.DayOfWeek `json:"days"`
	Hours         []int              `json:"hours"`
	Cells         []AgendaCell       `json:"cells"`
	FieldCapacity int                `json:"fieldCapacity"`
	Empty         bool               `json:"empty"`
	ScoreAnalysis *domain.ScoreAnalysis `json:"scoreAnalysis,omitempty"`
	Error         string             `json:"error,omitempty"`
}

// SolveService drives the orchestrator with the current working set and
// turns its published snapshots into renderable and exportable views.
type SolveService struct {
	store  *dataset.Store
	orch   *orchestrator.Orchestrator
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewSolveService creates a solve service.
func NewSolveService(store *dataset.Store, orch *orchestrator.Orchestrator, logger *zap.Logger) *SolveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SolveService{
		store:  store,
		orch:   orch,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Start submits the current working set as a new solve job.
func (s *SolveService) Start(ctx context.Context) (string, error) {
	return s.orch.StartSolve(ctx, s.store.Snapshot())
}

// Stop cancels the active job and returns the resulting snapshot.
func (s *SolveService) Stop(ctx context.Context) (orchestrator.Snapshot, error) {
	if err := s.orch.Stop(ctx); err != nil {
		return s.orch.Snapshot(), err
	}
	return s.orch.Snapshot(), nil
}

// Snapshot returns the orchestrator's current published state.
func (s *SolveService) Snapshot(ctx context.Context) orchestrator.Snapshot {
	return s.orch.Snapshot()
}

// Agenda aggregates the current schedule snapshot into the annotated weekly
// grid. With no schedule yet it reports an empty view rather than an error.
func (s *SolveService) Agenda(ctx context.Context) AgendaView {
	snap := s.orch.Snapshot()
	capacity := s.store.FieldCapacity()

	view := AgendaView{
		State:         snap.State,
		JobID:         snap.JobID,
		FieldCapacity: capacity,
		ScoreAnalysis: snap.Score,
		Error:         snap.Err,
		Empty:         true,
	}
	if snap.Schedule == nil {
		return view
	}
	view.Score = snap.Schedule.Score
	view.SolverStatus = snap.Schedule.SolverStatus

	grid := agenda.Aggregate(snap.Schedule.Sessions, capacity)
	if grid.Empty() {
		return view
	}
	annotated := agenda.Annotate(grid, snap.Sessions)

	view.Empty = false
	view.Days = grid.Days
	view.Hours = grid.Hours
	for _, hour := range grid.Hours {
		for _, day := range grid.Days {
			cell := grid.Cell(day, hour)
			if len(cell.Sessions) == 0 {
				continue
			}
			out := AgendaCell{
				Day:          day,
				Hour:         hour,
				Occupancy:    cell.Occupancy,
				OverCapacity: cell.OverCapacity,
			}
			for _, sess := range cell.Sessions {
				mark := annotated.Marks[sess.ID]
				out.Sessions = append(out.Sessions, AgendaSession{
					ID:          sess.ID,
					TeamName:    sess.Team.Name,
					TrainerName: trainerName(sess.Trainer),
					Size:        sess.Team.Size,
					Severity:    mark.Severity,
					Violations:  mark.Violations,
				})
			}
			view.Cells = append(view.Cells, out)
		}
	}
	return view
}

// ExportAgenda renders the current agenda as a CSV or PDF table.
func (s *SolveService) ExportAgenda(ctx context.Context, format string) ([]byte, string, string, error) {
	view := s.Agenda(ctx)
	if view.Empty {
		return nil, "", "", appErrors.Clone(appErrors.ErrNoActiveJob, "no assigned sessions to export")
	}

	table := agendaTable(view)
	stamp := time.Now().Format("2006-01-02")

	switch strings.ToLower(format) {
	case "csv", "":
		raw, err := s.csv.Render(table)
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render agenda csv")
		}
		return raw, "text/csv", fmt.Sprintf("weekly-agenda-%s.csv", stamp), nil
	case "pdf":
		raw, err := s.pdf.Render(table, "Weekly Training Agenda")
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render agenda pdf")
		}
		return raw, "application/pdf", fmt.Sprintf("weekly-agenda-%s.pdf", stamp), nil
	default:
		return nil, "", "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+format)
	}
}

func agendaTable(view AgendaView) export.Table {
	headers := []string{"Hour"}
	for _, day := range view.Days {
		headers = append(headers, day.Short())
	}

	cells := make(map[string]AgendaCell, len(view.Cells))
	for _, c := range view.Cells {
		cells[domain.SlotID(c.Day, c.Hour)] = c
	}

	rows := make([]map[string]string, 0, len(view.Hours))
	for _, hour := range view.Hours {
		row := map[string]string{"Hour": fmt.Sprintf("%d:00", hour)}
		for _, day := range view.Days {
			cell, ok := cells[domain.SlotID(day, hour)]
			if !ok {
				row[day.Short()] = ""
				continue
			}
			parts := make([]string, 0, len(cell.Sessions)+1)
			for _, sess := range cell.Sessions {
				parts = append(parts, fmt.Sprintf("%s (%dp, %s)", sess.TeamName, sess.Size, sess.TrainerName))
			}
			parts = append(parts, fmt.Sprintf("%d/%d", cell.Occupancy, view.FieldCapacity))
			row[day.Short()] = strings.Join(parts, "; ")
		}
		rows = append(rows, row)
	}
	return export.Table{Headers: headers, Rows: rows}
}

func trainerName(t *domain.Trainer) string {
	if t == nil {
		return "?"
	}
	return t.Name
}
