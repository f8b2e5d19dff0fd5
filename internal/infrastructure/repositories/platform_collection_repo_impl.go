package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/infrastructure/models"
)

// PlatformCollectionRepository implements collection data operations
type PlatformCollectionRepository struct {
	db *gorm.DB
}

// NewPlatformCollectionRepository creates a new collection repository
func NewPlatformCollectionRepository(db *gorm.DB) *PlatformCollectionRepository {
	return &PlatformCollectionRepository{db: db}
}

// Create creates a new collection record
func (r *PlatformCollectionRepository) Create(ctx context.Context, c *entities.PlatformCollection) error {
	m := r.toModel(c)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	return nil
}

// GetByID gets a collection by ID
func (r *PlatformCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PlatformCollection, error) {
	var m models.PlatformCollection
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByBarber lists collections for a barber with pagination
func (r *PlatformCollectionRepository) ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PlatformCollection, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.PlatformCollection{}).
		Where("barber_id = ?", barberID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PlatformCollection
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var cs []*entities.PlatformCollection
	for _, m := range ms {
		model := m
		cs = append(cs, r.toEntity(&model))
	}
	return cs, int(total), nil
}

// Update persists the collection's current state
func (r *PlatformCollectionRepository) Update(ctx context.Context, c *entities.PlatformCollection) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.PlatformCollection{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"status":        string(c.Status),
			"method":        string(c.Method),
			"attempt_count": c.AttemptCount,
			"next_retry_at": c.NextRetryAt,
			"last_error":    c.LastError.Ptr(),
			"external_ref":  c.ExternalRef.Ptr(),
			"collected_at":  c.CollectedAt,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListDueRetries returns pending collections whose retry time has passed
func (r *PlatformCollectionRepository) ListDueRetries(ctx context.Context, now time.Time, limit int) ([]*entities.PlatformCollection, error) {
	var ms []models.PlatformCollection
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", string(entities.CollectionStatusPending), now).
		Order("next_retry_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var cs []*entities.PlatformCollection
	for _, m := range ms {
		model := m
		cs = append(cs, r.toEntity(&model))
	}
	return cs, nil
}

// ExistsForPeriod reports whether a non-failed collection of the given type
// already covers the period for the barber
func (r *PlatformCollectionRepository) ExistsForPeriod(ctx context.Context, barberID uuid.UUID, ctype entities.CollectionType, periodKey string) (bool, error) {
	var count int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.PlatformCollection{}).
		Where("barber_id = ? AND type = ? AND period_key = ? AND status <> ?",
			barberID, string(ctype), periodKey, string(entities.CollectionStatusFailed)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PlatformCollectionRepository) toModel(c *entities.PlatformCollection) *models.PlatformCollection {
	return &models.PlatformCollection{
		ID:           c.ID,
		BarberID:     c.BarberID,
		Type:         string(c.Type),
		AmountCents:  c.AmountCents,
		Status:       string(c.Status),
		Method:       string(c.Method),
		PeriodKey:    c.PeriodKey,
		AttemptCount: c.AttemptCount,
		NextRetryAt:  c.NextRetryAt,
		LastError:    c.LastError.Ptr(),
		ExternalRef:  c.ExternalRef.Ptr(),
		CollectedAt:  c.CollectedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *PlatformCollectionRepository) toEntity(m *models.PlatformCollection) *entities.PlatformCollection {
	return &entities.PlatformCollection{
		ID:           m.ID,
		BarberID:     m.BarberID,
		Type:         entities.CollectionType(m.Type),
		AmountCents:  m.AmountCents,
		Status:       entities.CollectionStatus(m.Status),
		Method:       entities.CollectionMethod(m.Method),
		PeriodKey:    m.PeriodKey,
		AttemptCount: m.AttemptCount,
		NextRetryAt:  m.NextRetryAt,
		LastError:    null.StringFromPtr(m.LastError),
		ExternalRef:  null.StringFromPtr(m.ExternalRef),
		CollectedAt:  m.CollectedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
