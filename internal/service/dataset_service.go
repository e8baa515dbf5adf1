package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/domain"
	"github.com/bavobbr/dmon-scheduler/internal/selection"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

var requiredDatasetKeys = []string{"trainers", "teams", "timeSlots", "fieldCapacity"}

// DatasetService handles export and import of the working set as a
// self-contained JSON document.
type DatasetService struct {
	store  *dataset.Store
	editor *selection.Editor
	logger *zap.Logger
}

// NewDatasetService creates a dataset service. The editor is kept in sync on
// import so the slot grid reflects the replaced working set.
func NewDatasetService(store *dataset.Store, editor *selection.Editor, logger *zap.Logger) *DatasetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{store: store, editor: editor, logger: logger}
}

// Snapshot returns the current working set.
func (s *DatasetService) Snapshot(ctx context.Context) domain.Dataset {
	return s.store.Snapshot()
}

// Export serializes the working set and suggests a dated file name.
func (s *DatasetService) Export(ctx context.Context) ([]byte, string, error) {
	ds := s.store.Snapshot()
	raw, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode dataset")
	}
	filename := fmt.Sprintf("hockey-dataset-%s.json", time.Now().Format("2006-01-02"))
	return raw, filename, nil
}

// Import destructively replaces the whole working set. The document must
// contain exactly the keys trainers, teams, timeSlots and fieldCapacity; a
// malformed document is rejected and the current dataset left untouched.
func (s *DatasetService) Import(ctx context.Context, raw []byte) (domain.Dataset, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return domain.Dataset{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to parse dataset document")
	}
	for _, key := range requiredDatasetKeys {
		value, ok := keys[key]
		if !ok || string(value) == "null" {
			return domain.Dataset{}, appErrors.Clone(appErrors.ErrValidation,
				"invalid dataset: must contain trainers, teams, timeSlots, and fieldCapacity")
		}
	}

	var ds domain.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return domain.Dataset{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to parse dataset document")
	}

	s.store.Replace(ds)
	if s.editor != nil {
		s.editor.Replace(ds.TimeSlots)
	}
	s.logger.Info("dataset imported",
		zap.Int("trainers", len(ds.Trainers)),
		zap.Int("teams", len(ds.Teams)),
		zap.Int("time_slots", len(ds.TimeSlots)))

	return s.store.Snapshot(), nil
}
