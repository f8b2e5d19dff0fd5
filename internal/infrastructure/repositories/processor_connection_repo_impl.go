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

// ProcessorConnectionRepository implements processor connection data operations
type ProcessorConnectionRepository struct {
	db *gorm.DB
}

// NewProcessorConnectionRepository creates a new processor connection repository
func NewProcessorConnectionRepository(db *gorm.DB) *ProcessorConnectionRepository {
	return &ProcessorConnectionRepository{db: db}
}

// Create creates a new connection
func (r *ProcessorConnectionRepository) Create(ctx context.Context, conn *entities.ProcessorConnection) error {
	m := &models.ProcessorConnection{
		ID:          conn.ID,
		BarberID:    conn.BarberID,
		Processor:   string(conn.Processor),
		Credentials: conn.Credentials,
		IsActive:    conn.IsActive,
		ConnectedAt: conn.ConnectedAt,
		CreatedAt:   conn.CreatedAt,
		UpdatedAt:   conn.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	conn.ID = m.ID
	return nil
}

// GetActive gets the barber's active connection for a processor
func (r *ProcessorConnectionRepository) GetActive(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) (*entities.ProcessorConnection, error) {
	var m models.ProcessorConnection
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("barber_id = ? AND processor = ? AND is_active = ?", barberID, string(processor), true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByBarber lists all connections for a barber
func (r *ProcessorConnectionRepository) ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorConnection, error) {
	var ms []models.ProcessorConnection
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("connected_at DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var conns []*entities.ProcessorConnection
	for _, m := range ms {
		model := m
		conns = append(conns, r.toEntity(&model))
	}
	return conns, nil
}

// Delete soft-deletes a barber's connection
func (r *ProcessorConnectionRepository) Delete(ctx context.Context, barberID, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.ProcessorConnection{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProcessorConnectionRepository) toEntity(m *models.ProcessorConnection) *entities.ProcessorConnection {
	return &entities.ProcessorConnection{
		ID:          m.ID,
		BarberID:    m.BarberID,
		Processor:   entities.ProcessorType(m.Processor),
		Credentials: m.Credentials,
		IsActive:    m.IsActive,
		ConnectedAt: m.ConnectedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ProcessorHealthRepository implements health window persistence
type ProcessorHealthRepository struct {
	db *gorm.DB
}

// NewProcessorHealthRepository creates a new processor health repository
func NewProcessorHealthRepository(db *gorm.DB) *ProcessorHealthRepository {
	return &ProcessorHealthRepository{db: db}
}

// Get returns the window row for a (barber, processor) pair
func (r *ProcessorHealthRepository) Get(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) (*entities.ProcessorHealth, error) {
	var m models.ProcessorHealth
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).
		Where("barber_id = ? AND processor = ?", barberID, string(processor)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return healthToEntity(&m), nil
}

// Upsert writes the window row, inserting it on first outcome
func (r *ProcessorHealthRepository) Upsert(ctx context.Context, health *entities.ProcessorHealth) error {
	db := GetDB(ctx, r.db)
	now := time.Now()

	result := db.WithContext(ctx).Model(&models.ProcessorHealth{}).
		Where("barber_id = ? AND processor = ?", health.BarberID, string(health.Processor)).
		Updates(map[string]interface{}{
			"window":     health.Window,
			"healthy":    health.Healthy,
			"updated_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	m := &models.ProcessorHealth{
		ID:        health.ID,
		BarberID:  health.BarberID,
		Processor: string(health.Processor),
		Window:    health.Window,
		Healthy:   health.Healthy,
		UpdatedAt: now,
	}
	return db.WithContext(ctx).Create(m).Error
}

// ListByBarber returns all health rows for a barber
func (r *ProcessorHealthRepository) ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorHealth, error) {
	var ms []models.ProcessorHealth
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("processor ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	var rows []*entities.ProcessorHealth
	for _, m := range ms {
		model := m
		rows = append(rows, healthToEntity(&model))
	}
	return rows, nil
}

func healthToEntity(m *models.ProcessorHealth) *entities.ProcessorHealth {
	return &entities.ProcessorHealth{
		ID:        m.ID,
		BarberID:  m.BarberID,
		Processor: entities.ProcessorType(m.Processor),
		Window:    m.Window,
		Healthy:   m.Healthy,
		UpdatedAt: m.UpdatedAt,
	}
}
