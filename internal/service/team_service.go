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

// TeamRequest captures fields for creating or updating teams.
type TeamRequest struct {
	Name             string             `json:"name" validate:"required"`
	AgeGroup         domain.AgeGroup    `json:"ageGroup" validate:"required"`
	Size             int                `json:"size" validate:"gte=1"`
	TrainingsPerWeek int                `json:"trainingsPerWeek" validate:"gte=1"`
	AvailableDays    []domain.DayOfWeek `json:"availableDays" validate:"required,min=1"`
	EarliestHour     int                `json:"earliestHour" validate:"gte=0,lte=23"`
	LatestHour       int                `json:"latestHour" validate:"gte=0,lte=23"`
}

// TeamService handles team roster workflows.
type TeamService struct {
	store     *dataset.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeamService creates a new team service.
func NewTeamService(store *dataset.Store, validate *validator.Validate, logger *zap.Logger) *TeamService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamService{store: store, validator: validate, logger: logger}
}

// List returns all teams.
func (s *TeamService) List(ctx context.Context) []domain.Team {
	return s.store.Teams()
}

// Get returns a team by identifier.
func (s *TeamService) Get(ctx context.Context, id string) (*domain.Team, error) {
	team, ok := s.store.TeamByID(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	return &team, nil
}

// Create adds a team to the working set.
func (s *TeamService) Create(ctx context.Context, req TeamRequest) (*domain.Team, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	team := s.toTeam(uuid.NewString(), req)
	s.store.AddTeam(team)
	s.logger.Info("team added", zap.String("team_id", team.ID), zap.String("name", team.Name))
	return &team, nil
}

// Update modifies an existing team.
func (s *TeamService) Update(ctx context.Context, id string, req TeamRequest) (*domain.Team, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}

	team := s.toTeam(id, req)
	if !s.store.UpdateTeam(team) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	return &team, nil
}

// Delete removes a team. Trainers that preferred it keep a dangling
// reference, which lookups tolerate.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	if !s.store.DeleteTeam(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "team not found")
	}
	return nil
}

func (s *TeamService) check(req TeamRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid team payload")
	}
	if !req.AgeGroup.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "unknown age group: "+string(req.AgeGroup))
	}
	for _, d := range req.AvailableDays {
		if !d.Valid() {
			return appErrors.Clone(appErrors.ErrValidation, "unknown day: "+string(d))
		}
	}
	if req.EarliestHour > req.LatestHour {
		return appErrors.Clone(appErrors.ErrValidation, "earliest hour must not be after latest hour")
	}
	return nil
}

func (s *TeamService) toTeam(id string, req TeamRequest) domain.Team {
	return domain.Team{
		ID:               id,
		Name:             req.Name,
		AgeGroup:         req.AgeGroup,
		Size:             req.Size,
		TrainingsPerWeek: req.TrainingsPerWeek,
		AvailableDays:    req.AvailableDays,
		EarliestHour:     req.EarliestHour,
		LatestHour:       req.LatestHour,
	}
}
