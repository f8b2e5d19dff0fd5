package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
)

// PlatformCollectionRepository defines collection data operations
type PlatformCollectionRepository interface {
	Create(ctx context.Context, c *entities.PlatformCollection) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.PlatformCollection, error)
	ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PlatformCollection, int, error)
	Update(ctx context.Context, c *entities.PlatformCollection) error

	// ListDueRetries returns pending collections whose NextRetryAt has passed
	ListDueRetries(ctx context.Context, now time.Time, limit int) ([]*entities.PlatformCollection, error)

	// ExistsForPeriod reports whether the barber already has a collection of
	// the given type covering the period (rent idempotency guard).
	ExistsForPeriod(ctx context.Context, barberID uuid.UUID, ctype entities.CollectionType, periodKey string) (bool, error)
}
