package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bavobbr/dmon-scheduler/internal/dataset"
	"github.com/bavobbr/dmon-scheduler/internal/domain"
	"github.com/bavobbr/dmon-scheduler/internal/selection"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

func newDatasetFixture() (*DatasetService, *dataset.Store, *selection.Editor) {
	store := dataset.NewStore(60)
	editor := selection.NewEditor(store.SetTimeSlots)
	svc := NewDatasetService(store, editor, nil)
	return svc, store, editor
}

const validDocument = `{
	"trainers": [{"id": "tr1", "name": "Alice", "maxHoursPerWeek": 4, "trainableAgeGroups": ["U12"]}],
	"teams": [{"id": "tm1", "name": "U12 Red", "ageGroup": "U12", "size": 16,
	           "trainingsPerWeek": 2, "availableDays": ["MONDAY", "WEDNESDAY"],
	           "earliestHour": 17, "latestHour": 20}],
	"timeSlots": [{"id": "MONDAY-18", "dayOfWeek": "MONDAY", "startHour": 18}],
	"fieldCapacity": 45
}`

func TestImportReplacesWorkingSet(t *testing.T) {
	svc, store, editor := newDatasetFixture()
	store.AddTrainer(domain.Trainer{ID: "old", Name: "Old Trainer"})
	editor.Toggle(domain.Friday, 10)

	ds, err := svc.Import(context.Background(), []byte(validDocument))

	require.NoError(t, err)
	require.Len(t, ds.Trainers, 1)
	assert.Equal(t, "Alice", ds.Trainers[0].Name)
	assert.Equal(t, 45, ds.FieldCapacity)

	// The old working set is gone, including the editor's selection.
	_, found := store.TrainerByID("old")
	assert.False(t, found)
	assert.False(t, editor.Selected(domain.Friday, 10))
	assert.True(t, editor.Selected(domain.Monday, 18))
}

func TestImportRejectsMissingKeys(t *testing.T) {
	for _, missing := range []string{"trainers", "teams", "timeSlots", "fieldCapacity"} {
		t.Run(missing, func(t *testing.T) {
			svc, store, _ := newDatasetFixture()
			store.AddTrainer(domain.Trainer{ID: "keep", Name: "Keep"})

			var doc map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(validDocument), &doc))
			delete(doc, missing)
			raw, err := json.Marshal(doc)
			require.NoError(t, err)

			_, err = svc.Import(context.Background(), raw)

			require.Error(t, err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
			// Rejection leaves the current dataset untouched.
			_, found := store.TrainerByID("keep")
			assert.True(t, found)
		})
	}
}

func TestImportRejectsNullKey(t *testing.T) {
	svc, _, _ := newDatasetFixture()

	doc := `{"trainers": null, "teams": [], "timeSlots": [], "fieldCapacity": 60}`
	_, err := svc.Import(context.Background(), []byte(doc))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	svc, _, _ := newDatasetFixture()

	_, err := svc.Import(context.Background(), []byte(`{"trainers": [`))

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestImportAcceptsEmptyCollections(t *testing.T) {
	svc, _, _ := newDatasetFixture()

	doc := `{"trainers": [], "teams": [], "timeSlots": [], "fieldCapacity": 60}`
	ds, err := svc.Import(context.Background(), []byte(doc))

	require.NoError(t, err)
	assert.Empty(t, ds.Trainers)
	assert.Empty(t, ds.Teams)
	assert.Empty(t, ds.TimeSlots)
}

func TestExportRoundTripsAndSuggestsDatedFilename(t *testing.T) {
	svc, store, _ := newDatasetFixture()
	store.AddTrainer(domain.Trainer{ID: "tr1", Name: "Alice"})
	store.SetTimeSlots([]domain.TimeSlot{domain.NewTimeSlot(domain.Tuesday, 19)})

	raw, filename, err := svc.Export(context.Background())

	require.NoError(t, err)
	expected := fmt.Sprintf("hockey-dataset-%s.json", time.Now().Format("2006-01-02"))
	assert.Equal(t, expected, filename)

	var ds domain.Dataset
	require.NoError(t, json.Unmarshal(raw, &ds))
	require.Len(t, ds.Trainers, 1)
	assert.Equal(t, "TUESDAY-19", ds.TimeSlots[0].ID)
	assert.Equal(t, 60, ds.FieldCapacity)
}
