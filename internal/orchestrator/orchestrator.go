// Package orchestrator owns the lifecycle of a solve job against the
// external solving service: submission, the polling loop, result hydration,
// analysis retrieval, cancellation and error surfacing.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bavobbr/dmon-scheduler/internal/domain"
	appErrors "github.com/bavobbr/dmon-scheduler/pkg/errors"
)

// State is the job lifecycle state. Completed and Failed are terminal for a
// job identifier; a new StartSolve begins a fresh machine.
type State string

const (
	StateIdle      State = "IDLE"
	StatePolling   State = "POLLING"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
)

// SolverAPI is the slice of the solving service the orchestrator drives.
type SolverAPI interface {
	Solve(ctx context.Context, dataset domain.Dataset) (string, error)
	Schedule(ctx context.Context, jobID string) (*domain.Schedule, error)
	Status(ctx context.Context, jobID string) (*domain.Schedule, error)
	Stop(ctx context.Context, jobID string) (*domain.Schedule, error)
	ScoreAnalysis(ctx context.Context, jobID string) (*domain.ScoreAnalysis, error)
	SessionAnalysis(ctx context.Context, jobID string) ([]domain.SessionAnalysis, error)
}

// Metrics receives job lifecycle observations.
type Metrics interface {
	SolveStarted()
	SolveFinished(state State, elapsed time.Duration)
	PollTick(elapsed time.Duration)
}

// Snapshot is the published view of the current job. It is replaced
// wholesale on every update; consumers never see a partially merged state.
type Snapshot struct {
	JobID    string                   `json:"jobId,omitempty"`
	State    State                    `json:"state"`
	Schedule *domain.Schedule         `json:"schedule,omitempty"`
	Score    *domain.ScoreAnalysis    `json:"scoreAnalysis,omitempty"`
	Sessions []domain.SessionAnalysis `json:"sessionAnalysis,omitempty"`
	Err      string                   `json:"error,omitempty"`
}

// Config tunes the orchestrator.
type Config struct {
	PollInterval time.Duration
	Metrics      Metrics
	OnUpdate     func(Snapshot)
}

// Orchestrator runs at most one solve job at a time. Publishing is guarded
// by an epoch (bumped whenever a job is superseded or stopped) and a tick
// sequence number, so responses from a stopped or overtaken tick are
// discarded instead of resurrecting stale state.
type Orchestrator struct {
	api      SolverAPI
	interval time.Duration
	metrics  Metrics
	onUpdate func(Snapshot)
	logger   *zap.Logger

	mu      sync.Mutex
	epoch   uint64
	lastSeq uint64
	snap    Snapshot
	cancel  context.CancelFunc
	started time.Time
}

// New builds an orchestrator in the Idle state.
func New(solverAPI SolverAPI, cfg Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	return &Orchestrator{
		api:      solverAPI,
		interval: cfg.PollInterval,
		metrics:  cfg.Metrics,
		onUpdate: cfg.OnUpdate,
		logger:   logger,
		snap:     Snapshot{State: StateIdle},
	}
}

// Snapshot returns a copy of the current published state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snap.State
}

// StartSolve validates the dataset, submits it and begins polling. A
// dataset without at least one trainer, one team and one time slot is
// rejected synchronously and the current state is left untouched. When a
// previous job is still polling it is torn down before the new submission.
func (o *Orchestrator) StartSolve(ctx context.Context, dataset domain.Dataset) (string, error) {
	if len(dataset.Trainers) == 0 || len(dataset.Teams) == 0 || len(dataset.TimeSlots) == 0 {
		return "", appErrors.Clone(appErrors.ErrPreconditionFailed,
			"dataset needs at least one trainer, one team and one time slot")
	}

	o.mu.Lock()
	wasPolling := o.snap.State == StatePolling
	o.teardownLocked()
	preEpoch := o.epoch
	started := o.started
	o.mu.Unlock()

	jobID, err := o.api.Solve(ctx, dataset)
	if err != nil {
		// The superseded loop is already torn down; its job must not stay
		// visible as POLLING when nothing is driving it anymore.
		if wasPolling {
			o.mu.Lock()
			var snap Snapshot
			failed := false
			if o.epoch == preEpoch && o.snap.State == StatePolling {
				o.snap.State = StateFailed
				o.snap.Err = err.Error()
				snap = o.snap
				failed = true
			}
			o.mu.Unlock()
			if failed {
				o.notify(snap)
				o.observeFinish(StateFailed, started)
			}
		}
		return "", err
	}

	loopCtx, cancel := context.WithCancel(context.Background())

	o.mu.Lock()
	o.teardownLocked()
	epoch := o.epoch
	o.lastSeq = 0
	o.cancel = cancel
	o.started = time.Now()
	o.snap = Snapshot{JobID: jobID, State: StatePolling}
	snap := o.snap
	o.mu.Unlock()

	if o.metrics != nil {
		o.metrics.SolveStarted()
	}
	o.notify(snap)
	o.logger.Info("solve started", zap.String("job_id", jobID))

	go o.pollLoop(loopCtx, jobID, epoch)
	return jobID, nil
}

// Stop cancels the active job. It is a no-op outside the Polling state. The
// local poll loop is torn down and in-flight tick results invalidated before
// the remote cancellation is issued, so no update from the stopped job can
// surface afterwards. The cancellation response's schedule is published.
func (o *Orchestrator) Stop(ctx context.Context) error {
	o.mu.Lock()
	if o.snap.State != StatePolling {
		o.mu.Unlock()
		return nil
	}
	jobID := o.snap.JobID
	started := o.started
	o.teardownLocked()
	epoch := o.epoch
	o.mu.Unlock()

	schedule, err := o.api.Stop(ctx, jobID)
	if err != nil {
		o.logger.Warn("stop solving failed", zap.String("job_id", jobID), zap.Error(err))
		o.mu.Lock()
		var snap Snapshot
		if o.epoch == epoch {
			o.snap.State = StateFailed
			o.snap.Err = err.Error()
			snap = o.snap
		}
		o.mu.Unlock()
		if snap.State == StateFailed {
			o.notify(snap)
			o.observeFinish(StateFailed, started)
		}
		return err
	}

	o.mu.Lock()
	var snap Snapshot
	published := false
	if o.epoch == epoch {
		o.snap.Schedule = schedule
		o.snap.State = StateCompleted
		snap = o.snap
		published = true
	}
	o.mu.Unlock()

	if published {
		o.notify(snap)
		o.observeFinish(StateCompleted, started)
		o.logger.Info("solve stopped", zap.String("job_id", jobID))
	}
	return nil
}

// teardownLocked cancels any running poll loop and bumps the epoch so every
// in-flight tick's eventual result is discarded at publish time.
func (o *Orchestrator) teardownLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.epoch++
}

func (o *Orchestrator) pollLoop(ctx context.Context, jobID string, epoch uint64) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			seq++
			// Ticks are independently scheduled, not chained: a stalled
			// network call delays its own publish, not the next tick.
			go o.tick(ctx, jobID, epoch, seq)
		}
	}
}

func (o *Orchestrator) tick(ctx context.Context, jobID string, epoch, seq uint64) {
	start := time.Now()
	defer func() {
		if o.metrics != nil {
			o.metrics.PollTick(time.Since(start))
		}
	}()

	status, err := o.api.Status(ctx, jobID)
	if err != nil {
		o.fail(epoch, seq, jobID, err)
		return
	}

	if !status.Solving() {
		o.complete(jobID, epoch, seq)
		return
	}

	schedule, err := o.api.Schedule(ctx, jobID)
	if err != nil {
		o.fail(epoch, seq, jobID, err)
		return
	}
	o.publishSchedule(epoch, seq, schedule)

	score, sessions, err := o.fetchAnalyses(ctx, jobID)
	if err != nil {
		// Analysis is best-effort while solving; the UI shows stale or
		// absent analysis until the next tick.
		o.logger.Debug("analysis fetch skipped", zap.String("job_id", jobID), zap.Error(err))
		return
	}
	o.publishAnalyses(epoch, seq, score, sessions)
}

// complete handles a tick that observed a finished job: the completing tick
// takes ownership by tearing down the loop and bumping the epoch, so any
// sibling tick still in flight is invalidated and cannot flip the terminal
// result afterwards. The final schedule is fetched and published under the
// new epoch, and analyses attached when the service can supply them.
// Analysis failure at this point is logged but does not fail the completion.
func (o *Orchestrator) complete(jobID string, epoch, seq uint64) {
	next, ok := o.takeOver(epoch, seq)
	if !ok {
		return
	}

	// The loop context is cancelled now; final fetches run on their own,
	// bounded by the client's request timeout.
	ctx := context.Background()

	schedule, err := o.api.Schedule(ctx, jobID)
	if err != nil {
		o.fail(next, 1, jobID, err)
		return
	}
	o.publishSchedule(next, 1, schedule)

	score, sessions, err := o.fetchAnalyses(ctx, jobID)
	if err != nil {
		o.logger.Warn("analysis unavailable after completion", zap.String("job_id", jobID), zap.Error(err))
	} else {
		o.publishAnalyses(next, 1, score, sessions)
	}

	o.mu.Lock()
	var snap Snapshot
	started := o.started
	published := false
	if o.epoch == next {
		o.snap.State = StateCompleted
		snap = o.snap
		published = true
	}
	o.mu.Unlock()

	if published {
		o.notify(snap)
		o.observeFinish(StateCompleted, started)
		o.logger.Info("solve completed", zap.String("job_id", jobID))
	}
}

// fetchAnalyses issues the two analysis reads concurrently and joins them;
// they are independent reads of the same immutable snapshot.
func (o *Orchestrator) fetchAnalyses(ctx context.Context, jobID string) (*domain.ScoreAnalysis, []domain.SessionAnalysis, error) {
	var (
		wg       sync.WaitGroup
		score    *domain.ScoreAnalysis
		sessions []domain.SessionAnalysis
		scoreErr error
		sessErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		score, scoreErr = o.api.ScoreAnalysis(ctx, jobID)
	}()
	go func() {
		defer wg.Done()
		sessions, sessErr = o.api.SessionAnalysis(ctx, jobID)
	}()
	wg.Wait()

	if scoreErr != nil {
		return nil, nil, scoreErr
	}
	if sessErr != nil {
		return nil, nil, sessErr
	}
	return score, sessions, nil
}

// takeOver cancels the poll loop and bumps the epoch on behalf of the
// completing tick, returning the new epoch the tick now publishes under. A
// superseded or overtaken tick gets ok=false and must discard its result.
func (o *Orchestrator) takeOver(epoch, seq uint64) (uint64, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if epoch != o.epoch || seq < o.lastSeq {
		return 0, false
	}
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.epoch++
	o.lastSeq = 0
	return o.epoch, true
}

func (o *Orchestrator) publishSchedule(epoch, seq uint64, schedule *domain.Schedule) {
	o.mu.Lock()
	if epoch != o.epoch || seq < o.lastSeq {
		o.mu.Unlock()
		return
	}
	o.lastSeq = seq
	o.snap.Schedule = schedule
	snap := o.snap
	o.mu.Unlock()
	o.notify(snap)
}

func (o *Orchestrator) publishAnalyses(epoch, seq uint64, score *domain.ScoreAnalysis, sessions []domain.SessionAnalysis) {
	o.mu.Lock()
	if epoch != o.epoch || seq < o.lastSeq {
		o.mu.Unlock()
		return
	}
	o.lastSeq = seq
	o.snap.Score = score
	o.snap.Sessions = sessions
	snap := o.snap
	o.mu.Unlock()
	o.notify(snap)
}

// fail transitions to the terminal Failed state, keeping the triggering
// message for display. A failure observed by a superseded tick is discarded.
// The epoch is bumped so sibling ticks still in flight cannot publish over
// the terminal state.
func (o *Orchestrator) fail(epoch, seq uint64, jobID string, err error) {
	o.mu.Lock()
	if epoch != o.epoch || seq < o.lastSeq {
		o.mu.Unlock()
		return
	}
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.epoch++
	o.lastSeq = 0
	o.snap.State = StateFailed
	o.snap.Err = err.Error()
	snap := o.snap
	started := o.started
	o.mu.Unlock()

	o.notify(snap)
	o.observeFinish(StateFailed, started)
	o.logger.Error("solve failed", zap.String("job_id", jobID), zap.Error(err))
}

func (o *Orchestrator) notify(snap Snapshot) {
	if o.onUpdate != nil {
		o.onUpdate(snap)
	}
}

func (o *Orchestrator) observeFinish(state State, started time.Time) {
	if o.metrics != nil {
		o.metrics.SolveFinished(state, time.Since(started))
	}
}
