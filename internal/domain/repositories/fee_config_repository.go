package repositories

import (
	"context"

	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
)

// FeeConfigRepository defines fee override data operations
type FeeConfigRepository interface {
	GetByProcessor(ctx context.Context, processor entities.ProcessorType) (*entities.ProcessorFeeConfig, error)
	List(ctx context.Context) ([]*entities.ProcessorFeeConfig, error)
	Create(ctx context.Context, cfg *entities.ProcessorFeeConfig) error
	Update(ctx context.Context, cfg *entities.ProcessorFeeConfig) error
	Delete(ctx context.Context, id uuid.UUID) error
}
