package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/infrastructure/models"
)

// FeeConfigRepository implements fee override data operations
type FeeConfigRepository struct {
	db *gorm.DB
}

// NewFeeConfigRepository creates a new fee config repository
func NewFeeConfigRepository(db *gorm.DB) *FeeConfigRepository {
	return &FeeConfigRepository{db: db}
}

// GetByProcessor gets the active fee override for a processor
func (r *FeeConfigRepository) GetByProcessor(ctx context.Context, processor entities.ProcessorType) (*entities.ProcessorFeeConfig, error) {
	var m models.ProcessorFeeConfig
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("processor = ? AND is_active = ?", string(processor), true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List lists all fee overrides
func (r *FeeConfigRepository) List(ctx context.Context) ([]*entities.ProcessorFeeConfig, error) {
	var ms []models.ProcessorFeeConfig
	if err := r.db.WithContext(ctx).Order("processor ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	var cfgs []*entities.ProcessorFeeConfig
	for _, m := range ms {
		model := m
		cfgs = append(cfgs, r.toEntity(&model))
	}
	return cfgs, nil
}

// Create creates a fee override
func (r *FeeConfigRepository) Create(ctx context.Context, cfg *entities.ProcessorFeeConfig) error {
	m := &models.ProcessorFeeConfig{
		ID:               cfg.ID,
		Processor:        string(cfg.Processor),
		PercentBps:       cfg.PercentBps,
		FixedFeeCents:    cfg.FixedFeeCents,
		InstantPayoutBps: cfg.InstantPayoutBps,
		IsActive:         cfg.IsActive,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	cfg.ID = m.ID
	return nil
}

// Update updates a fee override
func (r *FeeConfigRepository) Update(ctx context.Context, cfg *entities.ProcessorFeeConfig) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.ProcessorFeeConfig{}).
		Where("id = ?", cfg.ID).
		Updates(map[string]interface{}{
			"percent_bps":        cfg.PercentBps,
			"fixed_fee_cents":    cfg.FixedFeeCents,
			"instant_payout_bps": cfg.InstantPayoutBps,
			"is_active":          cfg.IsActive,
			"updated_at":         time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft-deletes a fee override
func (r *FeeConfigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProcessorFeeConfig{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *FeeConfigRepository) toEntity(m *models.ProcessorFeeConfig) *entities.ProcessorFeeConfig {
	return &entities.ProcessorFeeConfig{
		ID:               m.ID,
		Processor:        entities.ProcessorType(m.Processor),
		PercentBps:       m.PercentBps,
		FixedFeeCents:    m.FixedFeeCents,
		InstantPayoutBps: m.InstantPayoutBps,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
