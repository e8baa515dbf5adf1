package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/domain"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

// CreateTrainerRequest captures fields for creating trainers.
type CreateTrainerRequest struct {
	Name               string            `json:"name" validate:"required"`
	MaxHoursPerWeek    int               `json:"maxHoursPerWeek" validate:"gte=1"`
	TrainableAgeGroups []domain.AgeGroup `json:"trainableAgeGroups" validate:"required,min=1"`
	PreferredTeamID    *string           `json:"preferredTeamId"`
}

// UpdateTrainerRequest modifies trainer fields.
type UpdateTrainerRequest struct {
	Name               string            `json:"name" validate:"required"`
	MaxHoursPerWeek    int               `json:"maxHoursPerWeek" validate:"gte=1"`
	TrainableAgeGroups []domain.AgeGroup `json:"trainableAgeGroups" validate:"required,min=1"`
	PreferredTeamID    *string           `json:"preferredTeamId"`
}

// TrainerView is a trainer plus its resolved preferred-team label. The label
// is nil when the reference dangles; a deleted team is not an error here.
type TrainerView struct {
	domain.Trainer
	PreferredTeamName *string `json:"preferredTeamName,omitempty"`
}

// TrainerService handles trainer roster workflows.
type TrainerService struct {
	store     *dataset.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTrainerService creates a new trainer service.
func NewTrainerService(store *dataset.Store, validate *validator.Validate, logger *zap.Logger) *TrainerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainerService{store: store, validator: validate, logger: logger}
}

// List returns all trainers with preferred-team labels resolved.
func (s *TrainerService) List(ctx context.Context) []TrainerView {
	trainers := s.store.Trainers()
	views := make([]TrainerView, 0, len(trainers))
	for _, t := range trainers {
		views = append(views, s.view(t))
	}
	return views
}

// Get returns a trainer by identifier.
func (s *TrainerService) Get(ctx context.Context, id string) (*TrainerView, error) {
	trainer, ok := s.store.TrainerByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
	}
	view := s.view(trainer)
	return &view, nil
}

// Create adds a trainer to the working set.
func (s *TrainerService) Create(ctx context.Context, req CreateTrainerRequest) (*TrainerView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainer payload")
	}
	if err := validAgeGroups(req.TrainableAgeGroups); err != nil {
		return nil, err
	}

	trainer := domain.Trainer{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		MaxHoursPerWeek:    req.MaxHoursPerWeek,
		TrainableAgeGroups: req.TrainableAgeGroups,
		PreferredTeamID:    req.PreferredTeamID,
	}
	s.store.AddTrainer(trainer)
	s.logger.Info("trainer added", zap.String("trainer_id", trainer.ID), zap.String("name", trainer.Name))

	view := s.view(trainer)
	return &view, nil
}

// Update modifies an existing trainer.
func (s *TrainerService) Update(ctx context.Context, id string, req UpdateTrainerRequest) (*TrainerView, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid trainer payload")
	}
	if err := validAgeGroups(req.TrainableAgeGroups); err != nil {
		return nil, err
	}

	trainer := domain.Trainer{
		ID:                 id,
		Name:               req.Name,
		MaxHoursPerWeek:    req.MaxHoursPerWeek,
		TrainableAgeGroups: req.TrainableAgeGroups,
		PreferredTeamID:    req.PreferredTeamID,
	}
	if !s.store.UpdateTrainer(trainer) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
	}

	view := s.view(trainer)
	return &view, nil
}

// Delete removes a trainer from the working set.
func (s *TrainerService) Delete(ctx context.Context, id string) error {
	if !s.store.DeleteTrainer(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
	}
	return nil
}

func (s *TrainerService) view(t domain.Trainer) TrainerView {
	view := TrainerView{Trainer: t}
	if t.PreferredTeamID != nil {
		if team, ok := s.store.TeamByID(*t.PreferredTeamID); ok {
			name := team.Name
			view.PreferredTeamName = &name
		}
	}
	return view
}

func validAgeGroups(groups []domain.AgeGroup) error {
	for _, g := range groups {
		if !g.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "unknown age group: "+string(g))
		}
	}
	return nil
}
