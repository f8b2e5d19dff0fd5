package repositories

import (
	"context"

	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
)

// ProcessorConnectionRepository defines processor connection data operations
type ProcessorConnectionRepository interface {
	Create(ctx context.Context, conn *entities.ProcessorConnection) error
	GetActive(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) (*entities.ProcessorConnection, error)
	ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorConnection, error)
	Delete(ctx context.Context, barberID, id uuid.UUID) error
}

// ProcessorHealthRepository persists the rolling outcome window per
// (barber, processor) pair. Callers treat storage errors as "no history".
type ProcessorHealthRepository interface {
	Get(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) (*entities.ProcessorHealth, error)
	Upsert(ctx context.Context, health *entities.ProcessorHealth) error
	ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorHealth, error)
}
