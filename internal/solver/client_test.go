package solver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bavobbr/dmon-scheduler/internal/domain"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/schedule", 5*time.Second, nil)
}

func sampleDataset() domain.Dataset {
	slot := domain.NewTimeSlot(domain.Monday, 18)
	return domain.Dataset{
		Trainers:      []domain.Trainer{{ID: "tr1", Name: "Alice", TrainableAgeGroups: []domain.AgeGroup{domain.AgeU12}}},
		Teams:         []domain.Team{{ID: "tm1", Name: "U12 Red", AgeGroup: domain.AgeU12, Size: 16, EarliestHour: 17, LatestHour: 20}},
		TimeSlots:     []domain.TimeSlot{slot},
		FieldCapacity: 60,
	}
}

func TestSolveSubmitsDatasetAndReturnsJobID(t *testing.T) {
	var received domain.Dataset
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/schedule/solve", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte("a4f2c9e1\n"))
	}))

	jobID, err := client.Solve(context.Background(), sampleDataset())

	require.NoError(t, err)
	assert.Equal(t, "a4f2c9e1", jobID)
	assert.Equal(t, 60, received.FieldCapacity)
	require.Len(t, received.TimeSlots, 1)
	assert.Equal(t, "MONDAY-18", received.TimeSlots[0].ID)
}

func TestSolveRejectsEmptyJobID(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   \n"))
	}))

	_, err := client.Solve(context.Background(), sampleDataset())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSolverUnavailable.Code, appErrors.FromError(err).Code)
}

func TestStatusDecodesSolverStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/schedule/job-1/status", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"solverStatus":"SOLVING_ACTIVE","sessions":[]}`))
	}))

	schedule, err := client.Status(context.Background(), "job-1")

	require.NoError(t, err)
	assert.True(t, schedule.Solving())
}

func TestScheduleDecodesSessions(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule/job-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"solverStatus": "NOT_SOLVING",
			"score": "0hard/-2soft",
			"sessions": [{
				"id": "s1",
				"team": {"id": "tm1", "name": "U12 Red", "size": 16},
				"timeSlot": {"id": "MONDAY-18", "dayOfWeek": "MONDAY", "startHour": 18},
				"trainer": {"id": "tr1", "name": "Alice"}
			}]
		}`))
	}))

	schedule, err := client.Schedule(context.Background(), "job-1")

	require.NoError(t, err)
	assert.False(t, schedule.Solving())
	require.NotNil(t, schedule.Score)
	assert.Equal(t, "0hard/-2soft", *schedule.Score)
	require.Len(t, schedule.Sessions, 1)
	assert.True(t, schedule.Sessions[0].Placed())
	assert.Equal(t, domain.Monday, schedule.Sessions[0].TimeSlot.DayOfWeek)
}

func TestStopIssuesDelete(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/schedule/job-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"solverStatus":"NOT_SOLVING"}`))
	}))

	schedule, err := client.Stop(context.Background(), "job-1")

	require.NoError(t, err)
	assert.Equal(t, domain.SolverStatusNotSolving, schedule.SolverStatus)
}

func TestScoreAnalysis(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule/job-1/analysis", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hardScore": -1, "softScore": -4,
			"assignedSessions": 3, "unassignedSessions": 1, "totalSessions": 4,
			"constraintMatches": [
				{"constraintName": "fieldCapacity", "score": -1, "matchCount": 1, "level": "HARD"}
			]
		}`))
	}))

	analysis, err := client.ScoreAnalysis(context.Background(), "job-1")

	require.NoError(t, err)
	assert.False(t, analysis.Feasible())
	assert.Equal(t, 75, analysis.AssignmentRate())
	hard, soft := analysis.MatchesByLevel()
	assert.Len(t, hard, 1)
	assert.Empty(t, soft)
}

func TestSessionAnalysis(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/schedule/job-1/sessions/analysis", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"sessionId": "s1", "teamName": "U12 Red", "hasViolations": true,
			 "violations": [{"constraintName": "trainerPreference", "level": "SOFT", "score": -2}]}
		]`))
	}))

	analyses, err := client.SessionAnalysis(context.Background(), "job-1")

	require.NoError(t, err)
	require.Len(t, analyses, 1)
	assert.Equal(t, "s1", analyses[0].SessionID)
	assert.Equal(t, domain.LevelSoft, analyses[0].Violations[0].Level)
}

func TestNonSuccessStatusSurfacesAsSolverUnavailable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := client.Status(context.Background(), "job-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSolverUnavailable.Code, appErrors.FromError(err).Code)

	_, err = client.Solve(context.Background(), sampleDataset())
	require.Error(t, err)

	_, err = client.Stop(context.Background(), "job-1")
	require.Error(t, err)
}

func TestUnreachableServer(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/schedule", 200*time.Millisecond, nil)

	_, err := client.Status(context.Background(), "job-1")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSolverUnavailable.Code, appErrors.FromError(err).Code)
}
