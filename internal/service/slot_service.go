package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/domain"
	"github.com/bavobbr/dmon-scheduler/internal/selection"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

// CellRequest addresses one cell of the selection grid.
type CellRequest struct {
	Day  domain.DayOfWeek `json:"day"`
	Hour int              `json:"hour"`
}

// CapacityRequest updates the field capacity.
type CapacityRequest struct {
	FieldCapacity int `json:"fieldCapacity" validate:"gte=1"`
}

// SlotGrid is the selection view: the bounded hour window, the fixed week
// and the current selection.
type SlotGrid struct {
	Days          []domain.DayOfWeek `json:"days"`
	Hours         []int              `json:"hours"`
	Slots         []domain.TimeSlot  `json:"slots"`
	FieldCapacity int                `json:"fieldCapacity"`
	Painting      bool               `json:"painting"`
}

// SlotService exposes the slot selection editor over the bounded
// business-hours grid.
type SlotService struct {
	store     *dataset.Store
	editor    *selection.Editor
	firstHour int
	lastHour  int
	logger    *zap.Logger
}

// NewSlotService wires the editor to the store: every accepted cell change
// commits the full slot collection.
func NewSlotService(store *dataset.Store, firstHour, lastHour int, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lastHour < firstHour {
		firstHour, lastHour = lastHour, firstHour
	}
	s := &SlotService{store: store, firstHour: firstHour, lastHour: lastHour, logger: logger}
	s.editor = selection.NewEditor(store.SetTimeSlots)
	return s
}

// Editor exposes the underlying selection editor for import wiring.
func (s *SlotService) Editor() *selection.Editor {
	return s.editor
}

// Grid returns the current selection view.
func (s *SlotService) Grid(ctx context.Context) SlotGrid {
	hours := make([]int, 0, s.lastHour-s.firstHour+1)
	for h := s.firstHour; h <= s.lastHour; h++ {
		hours = append(hours, h)
	}
	return SlotGrid{
		Days:          domain.Days,
		Hours:         hours,
		Slots:         s.editor.Slots(),
		FieldCapacity: s.store.FieldCapacity(),
		Painting:      s.editor.Painting(),
	}
}

// Toggle flips one cell.
func (s *SlotService) Toggle(ctx context.Context, req CellRequest) (SlotGrid, error) {
	if err := s.checkCell(req); err != nil {
		return SlotGrid{}, err
	}
	s.editor.Toggle(req.Day, req.Hour)
	return s.Grid(ctx), nil
}

// BeginPaint starts a drag gesture on a cell.
func (s *SlotService) BeginPaint(ctx context.Context, req CellRequest) (SlotGrid, error) {
	if err := s.checkCell(req); err != nil {
		return SlotGrid{}, err
	}
	s.editor.BeginPaint(req.Day, req.Hour)
	return s.Grid(ctx), nil
}

// PaintCell applies the active gesture to a cell the pointer entered.
func (s *SlotService) PaintCell(ctx context.Context, req CellRequest) (SlotGrid, error) {
	if err := s.checkCell(req); err != nil {
		return SlotGrid{}, err
	}
	s.editor.PaintCell(req.Day, req.Hour)
	return s.Grid(ctx), nil
}

// EndPaint finishes the active gesture, also used when the pointer leaves
// the grid.
func (s *SlotService) EndPaint(ctx context.Context) SlotGrid {
	s.editor.EndPaint()
	return s.Grid(ctx)
}

// SetCapacity updates the field capacity.
func (s *SlotService) SetCapacity(ctx context.Context, req CapacityRequest) (SlotGrid, error) {
	if req.FieldCapacity < 1 {
		return SlotGrid{}, appErrors.Clone(appErrors.ErrValidation, "field capacity must be at least 1")
	}
	s.store.SetFieldCapacity(req.FieldCapacity)
	return s.Grid(ctx), nil
}

func (s *SlotService) checkCell(req CellRequest) error {
	if !req.Day.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown day: "+string(req.Day))
	}
	if req.Hour < s.firstHour || req.Hour > s.lastHour {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("hour %d outside grid window %d..%d", req.Hour, s.firstHour, s.lastHour))
	}
	return nil
}
