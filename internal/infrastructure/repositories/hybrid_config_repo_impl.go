package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/infrastructure/models"
)

// HybridConfigRepository implements payment config data operations
type HybridConfigRepository struct {
	db *gorm.DB
}

// NewHybridConfigRepository creates a new hybrid config repository
func NewHybridConfigRepository(db *gorm.DB) *HybridConfigRepository {
	return &HybridConfigRepository{db: db}
}

// GetActiveByBarber gets the barber's active config
func (r *HybridConfigRepository) GetActiveByBarber(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error) {
	var m models.HybridPaymentConfig
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("barber_id = ? AND is_active = ?", barberID, true).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// Save inserts a new active config, deactivating any prior active one.
// Superseded configs are kept for the audit trail.
func (r *HybridConfigRepository) Save(ctx context.Context, cfg *entities.HybridPaymentConfig) error {
	rules, err := json.Marshal(cfg.Rules)
	if err != nil {
		return err
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Model(&models.HybridPaymentConfig{}).
		Where("barber_id = ? AND is_active = ?", cfg.BarberID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return err
	}

	m := &models.HybridPaymentConfig{
		ID:                 cfg.ID,
		BarberID:           cfg.BarberID,
		Mode:               string(cfg.Mode),
		Rules:              string(rules),
		DefaultProcessor:   string(cfg.DefaultProcessor),
		FallbackToPlatform: cfg.FallbackToPlatform,
		CommissionModel:    string(cfg.CommissionModel),
		CommissionRateBps:  cfg.CommissionRateBps,
		BoothRentCents:     cfg.BoothRentCents,
		IsActive:           true,
		CreatedAt:          cfg.CreatedAt,
		UpdatedAt:          cfg.UpdatedAt,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	cfg.ID = m.ID
	return nil
}

// ListRentConfigs returns active configs with a booth-rent commission model
func (r *HybridConfigRepository) ListRentConfigs(ctx context.Context) ([]*entities.HybridPaymentConfig, error) {
	var ms []models.HybridPaymentConfig
	if err := r.db.WithContext(ctx).
		Where("is_active = ? AND commission_model = ? AND booth_rent_cents > 0", true, string(entities.CommissionModelBoothRent)).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var cfgs []*entities.HybridPaymentConfig
	for _, m := range ms {
		model := m
		cfg, err := r.toEntity(&model)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func (r *HybridConfigRepository) toEntity(m *models.HybridPaymentConfig) (*entities.HybridPaymentConfig, error) {
	var rules []entities.RoutingRule
	if m.Rules != "" {
		if err := json.Unmarshal([]byte(m.Rules), &rules); err != nil {
			return nil, err
		}
	}
	return &entities.HybridPaymentConfig{
		ID:                 m.ID,
		BarberID:           m.BarberID,
		Mode:               entities.PaymentMode(m.Mode),
		Rules:              rules,
		DefaultProcessor:   entities.ProcessorType(m.DefaultProcessor),
		FallbackToPlatform: m.FallbackToPlatform,
		CommissionModel:    entities.CommissionModel(m.CommissionModel),
		CommissionRateBps:  m.CommissionRateBps,
		BoothRentCents:     m.BoothRentCents,
		IsActive:           m.IsActive,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

// PaymentModeHistoryRepository implements the append-only config audit log
type PaymentModeHistoryRepository struct {
	db *gorm.DB
}

// NewPaymentModeHistoryRepository creates a new history repository
func NewPaymentModeHistoryRepository(db *gorm.DB) *PaymentModeHistoryRepository {
	return &PaymentModeHistoryRepository{db: db}
}

// Create appends a history record
func (r *PaymentModeHistoryRepository) Create(ctx context.Context, h *entities.PaymentModeHistory) error {
	m := &models.PaymentModeHistory{
		ID:           h.ID,
		BarberID:     h.BarberID,
		ConfigID:     h.ConfigID,
		PreviousMode: h.PreviousMode.Ptr(),
		NewMode:      string(h.NewMode),
		ChangedBy:    h.ChangedBy.Ptr(),
		CreatedAt:    h.CreatedAt,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	h.ID = m.ID
	return nil
}

// ListByBarber lists history records with pagination
func (r *PaymentModeHistoryRepository) ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PaymentModeHistory{}).
		Where("barber_id = ?", barberID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PaymentModeHistory
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var records []*entities.PaymentModeHistory
	for _, m := range ms {
		records = append(records, &entities.PaymentModeHistory{
			ID:           m.ID,
			BarberID:     m.BarberID,
			ConfigID:     m.ConfigID,
			PreviousMode: null.StringFromPtr(m.PreviousMode),
			NewMode:      entities.PaymentMode(m.NewMode),
			ChangedBy:    null.StringFromPtr(m.ChangedBy),
			CreatedAt:    m.CreatedAt,
		})
	}
	return records, int(total), nil
}
