package usecases

import (
	"context"

	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	"booked-barber.backend/pkg/logger"
)

// Alerter is notified when a collection exhausts its retry budget and needs
// a human to chase the money
type Alerter interface {
	CollectionExhausted(ctx context.Context, c *entities.PlatformCollection)
}

// LogAlerter raises alerts through the structured log; an on-call pipeline
// picks them up from there
type LogAlerter struct{}

// NewLogAlerter creates a log-backed alerter
func NewLogAlerter() *LogAlerter {
	return &LogAlerter{}
}

// CollectionExhausted logs a terminal collection failure at error level
func (a *LogAlerter) CollectionExhausted(ctx context.Context, c *entities.PlatformCollection) {
	logger.Error(ctx, "collection attempts exhausted, manual follow-up required",
		zap.String("collection_id", c.ID.String()),
		zap.String("barber_id", c.BarberID.String()),
		zap.String("type", string(c.Type)),
		zap.Int64("amount_cents", c.AmountCents),
		zap.Int("attempts", c.AttemptCount),
		zap.String("last_error", c.LastError.String),
	)
}
