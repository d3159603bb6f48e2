// Package engine runs the background loop that turns pending weight jobs
// into finalized, packaged blend weights.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/skylark-met/blend/internal/catalog"
	"github.com/skylark-met/blend/internal/config"
	"github.com/skylark-met/blend/internal/cube"
	"github.com/skylark-met/blend/internal/events"
	"github.com/skylark-met/blend/internal/store"
	"github.com/skylark-met/blend/internal/weights"
)

type Engine struct {
	store   store.Store
	events  events.Client
	catalog catalog.Client
	cfg     *config.Config
	logger  *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, ev events.Client, cat catalog.Client, cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		store:   s,
		events:  ev,
		catalog: cat,
		cfg:     cfg,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

func (e *Engine) Start(ctx context.Context) {
	e.wg.Add(1)
	go e.processLoop(ctx)
}

func (e *Engine) Stop() {
	e.stopOnce.Do(func() { close(e.stopCh) })
	e.wg.Wait()
}

func (e *Engine) processLoop(ctx context.Context) {
	defer e.wg.Done()
	ticker := time.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.ProcessPending(ctx)
		}
	}
}

// ProcessPending picks up a batch of pending jobs and runs each through the
// weight pipeline.
func (e *Engine) ProcessPending(ctx context.Context) {
	jobs, err := e.store.GetPendingJobs(ctx, e.cfg.Engine.BatchSize)
	if err != nil {
		e.logger.Error("failed to fetch pending jobs", "error", err)
		return
	}
	for _, job := range jobs {
		e.processJob(ctx, job)
	}
}

func (e *Engine) processJob(ctx context.Context, job *store.WeightJob) {
	start := time.Now()
	result, err := e.runPipeline(ctx, job)
	now := time.Now()

	if err != nil {
		job.Status = store.StatusFailed
		job.Error = err.Error()
		jobsProcessed.WithLabelValues("failed").Inc()
		e.logger.Warn("weight job failed", "job_id", job.ID, "error", err)
	} else {
		job.Status = store.StatusCompleted
		job.CompletedAt = &now
		job.ExpectedCount = result.ExpectedCount
		job.PresenceMask = result.PresenceMask
		job.FinalWeights = result.Weights.Data
		jobsProcessed.WithLabelValues("completed").Inc()
		pipelineDuration.Observe(time.Since(start).Seconds())
		e.logger.Info("weight job completed",
			"job_id", job.ID,
			"coordinate", job.Coordinate,
			"expected", result.ExpectedCount,
			"present", len(result.Weights.Data),
		)
	}

	if err := e.store.UpdateJob(ctx, job); err != nil {
		e.logger.Error("failed to update job", "job_id", job.ID, "error", err)
		return
	}
	e.publish(ctx, job)
}

// Result is the outcome of one pipeline run: the packaged weights cube plus
// the presence bookkeeping that produced it.
type Result struct {
	ExpectedCount int
	PresenceMask  []float64
	Weights       *cube.Cube
}

// runPipeline executes normalise, presence resolution, redistribution and
// packaging for one job. Every failure is a validation error from the
// weights package; none are retried.
func (e *Engine) runPipeline(ctx context.Context, job *store.WeightJob) (*Result, error) {
	if job.ExpectedValues == nil && job.Group != "" && e.catalog != nil {
		spec, err := e.catalog.GetGroup(ctx, job.Group)
		if err != nil {
			return nil, err
		}
		job.ExpectedValues = spec.ExpectedValues
		job.ExpectedUnit = spec.Unit
		if job.Coordinate == "" {
			job.Coordinate = spec.Coordinate
		}
		if job.Method == "" {
			job.Method = spec.Method
		}
	}

	methodName := job.Method
	if methodName == "" {
		methodName = e.cfg.Weights.DefaultMethod
	}
	method, err := weights.ParseMethod(methodName)
	if err != nil {
		return nil, err
	}

	data, err := BuildDataCube(job)
	if err != nil {
		return nil, err
	}

	normalised, err := weights.Normalise(job.RawWeights)
	if err != nil {
		return nil, err
	}

	count, mask, err := weights.ResolvePresence(data, job.Coordinate, job.ExpectedValues, job.ExpectedUnit)
	if err != nil {
		return nil, err
	}

	final, err := weights.Redistribute(normalised, mask, method)
	if err != nil {
		return nil, err
	}

	packaged, err := weights.BuildWeightsCube(data, final, job.Coordinate)
	if err != nil {
		return nil, err
	}

	return &Result{ExpectedCount: count, PresenceMask: mask, Weights: packaged}, nil
}

// BuildDataCube stands in for the merged forecast data being blended: a cube
// whose blending coordinate carries the points actually present.
func BuildDataCube(job *store.WeightJob) (*cube.Cube, error) {
	return cube.New(job.Group,
		make([]float64, len(job.ActualValues)),
		cube.Coordinate{Name: job.Coordinate, Points: job.ActualValues, Units: job.CoordUnit},
	)
}

func (e *Engine) publish(ctx context.Context, job *store.WeightJob) {
	if e.events == nil {
		return
	}
	var err error
	switch job.Status {
	case store.StatusCompleted:
		err = e.events.Publish(ctx, events.SubjectWeightsComputed(job.ID.String()), events.WeightsComputedEvent{
			JobID:         job.ID.String(),
			Group:         job.Group,
			Coordinate:    job.Coordinate,
			Method:        job.Method,
			ExpectedCount: job.ExpectedCount,
			PresentCount:  len(job.FinalWeights),
			Weights:       job.FinalWeights,
			Timestamp:     time.Now().UTC(),
		})
	case store.StatusFailed:
		err = e.events.Publish(ctx, events.SubjectWeightsFailed(job.ID.String()), events.WeightsFailedEvent{
			JobID:      job.ID.String(),
			Group:      job.Group,
			Coordinate: job.Coordinate,
			Error:      job.Error,
			Timestamp:  time.Now().UTC(),
		})
	}
	if err != nil {
		e.logger.Warn("failed to publish event", "job_id", job.ID, "error", err)
	}
}
