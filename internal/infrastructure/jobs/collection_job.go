package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	"booked-barber.backend/pkg/logger"
)

// CollectionRunner is the part of the collection usecase the job drives
type CollectionRunner interface {
	RunCycle(ctx context.Context) (*entities.CollectionCycleReport, error)
}

// CollectionJob runs the collection cycle on a fixed interval
type CollectionJob struct {
	runner   CollectionRunner
	interval time.Duration
	stop     chan struct{}
}

// NewCollectionJob creates a new collection job
func NewCollectionJob(runner CollectionRunner, interval time.Duration) *CollectionJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CollectionJob{
		runner:   runner,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start runs the job loop until the context is cancelled or Stop is called
func (j *CollectionJob) Start(ctx context.Context) {
	logger.Info(ctx, "collection job started", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "collection job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "collection job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

// Stop signals the job loop to exit
func (j *CollectionJob) Stop() {
	close(j.stop)
}

func (j *CollectionJob) runOnce(ctx context.Context) {
	report, err := j.runner.RunCycle(ctx)
	if err != nil {
		logger.Error(ctx, "collection cycle failed", zap.Error(err))
		return
	}
	if report.CommissionsCreated+report.RentsCreated+report.RetriesProcessed == 0 {
		return
	}
	logger.Info(ctx, "collection cycle completed",
		zap.Int("commissions_created", report.CommissionsCreated),
		zap.Int("rents_created", report.RentsCreated),
		zap.Int("retries_processed", report.RetriesProcessed),
		zap.Int("collected", report.Collected),
		zap.Int("failed", report.Failed))
}
