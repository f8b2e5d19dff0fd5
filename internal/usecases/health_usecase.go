package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/domain/repositories"
	"booked-barber.backend/pkg/logger"
	"booked-barber.backend/pkg/utils"
)

const (
	// healthWindowSize is how many recent outcomes a window keeps
	healthWindowSize = 10
	// healthMinAttempts is the minimum history before a processor can be
	// judged unhealthy; below it the tracker stays optimistic.
	healthMinAttempts = 3
)

// HealthTracker maintains a rolling success/failure window per
// (barber, processor) pair. It is advisory: it never fails a payment path,
// so storage errors degrade to "assume healthy" and recording errors are
// logged and swallowed.
type HealthTracker struct {
	healthRepo repositories.ProcessorHealthRepository
}

// NewHealthTracker creates a new health tracker
func NewHealthTracker(healthRepo repositories.ProcessorHealthRepository) *HealthTracker {
	return &HealthTracker{healthRepo: healthRepo}
}

// RecordOutcome appends a charge outcome to the processor's window and
// recomputes its health flag
func (t *HealthTracker) RecordOutcome(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType, success bool) {
	h, err := t.healthRepo.Get(ctx, barberID, processor)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "health window read failed, starting fresh",
				zap.String("processor", string(processor)), zap.Error(err))
		}
		h = &entities.ProcessorHealth{
			ID:        utils.GenerateUUIDv7(),
			BarberID:  barberID,
			Processor: processor,
			Healthy:   true,
		}
	}

	outcome := byte('F')
	if success {
		outcome = 'S'
	}
	h.Window += string(outcome)
	if len(h.Window) > healthWindowSize {
		h.Window = h.Window[len(h.Window)-healthWindowSize:]
	}
	h.Healthy = windowHealthy(h.Window)

	if err := t.healthRepo.Upsert(ctx, h); err != nil {
		logger.Warn(ctx, "health window write failed",
			zap.String("processor", string(processor)), zap.Error(err))
	}
}

// IsHealthy reports whether a processor should receive new charges for the
// barber. The platform processor is always considered viable, and missing or
// unreadable history defaults to healthy.
func (t *HealthTracker) IsHealthy(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) bool {
	if processor == entities.ProcessorPlatform {
		return true
	}

	h, err := t.healthRepo.Get(ctx, barberID, processor)
	if err != nil {
		return true
	}
	return h.Healthy
}

// ListByBarber returns the barber's health windows for reporting
func (t *HealthTracker) ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorHealth, error) {
	return t.healthRepo.ListByBarber(ctx, barberID)
}

// windowHealthy judges a window: unhealthy once at least healthMinAttempts
// outcomes exist and failures make up half the window or more
func windowHealthy(window string) bool {
	attempts := len(window)
	if attempts < healthMinAttempts {
		return true
	}
	failures := 0
	for i := 0; i < attempts; i++ {
		if window[i] == 'F' {
			failures++
		}
	}
	return failures*2 < attempts
}
