package repositories

import (
	"context"

	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
)

// HybridConfigRepository defines payment config data operations.
// Save deactivates any prior active config for the barber; prior configs are
// superseded, never deleted.
type HybridConfigRepository interface {
	GetActiveByBarber(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error)
	Save(ctx context.Context, cfg *entities.HybridPaymentConfig) error
	ListRentConfigs(ctx context.Context) ([]*entities.HybridPaymentConfig, error)
}

// PaymentModeHistoryRepository defines the append-only config audit log
type PaymentModeHistoryRepository interface {
	Create(ctx context.Context, h *entities.PaymentModeHistory) error
	ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error)
}
