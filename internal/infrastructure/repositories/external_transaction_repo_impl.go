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

// ExternalTransactionRepository implements ledger data operations
type ExternalTransactionRepository struct {
	db *gorm.DB
}

// NewExternalTransactionRepository creates a new transaction repository
func NewExternalTransactionRepository(db *gorm.DB) *ExternalTransactionRepository {
	return &ExternalTransactionRepository{db: db}
}

// Create creates a new ledger entry
func (r *ExternalTransactionRepository) Create(ctx context.Context, tx *entities.ExternalTransaction) error {
	m := &models.ExternalTransaction{
		ID:                  tx.ID,
		BarberID:            tx.BarberID,
		Processor:           string(tx.Processor),
		AmountCents:         tx.AmountCents,
		CommissionOwedCents: tx.CommissionOwedCents,
		Status:              string(tx.Status),
		ExternalRef:         tx.ExternalRef.Ptr(),
		CollectionID:        tx.CollectionID,
		ServiceType:         tx.ServiceType,
		FallbackOccurred:    tx.FallbackOccurred,
		CreatedAt:           tx.CreatedAt,
		UpdatedAt:           tx.UpdatedAt,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	tx.ID = m.ID
	return nil
}

// GetByID gets a transaction by ID
func (r *ExternalTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error) {
	var m models.ExternalTransaction
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByBarber lists transactions for a barber with pagination
func (r *ExternalTransactionRepository) ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Where("barber_id = ?", barberID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.ExternalTransaction
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var txs []*entities.ExternalTransaction
	for _, m := range ms {
		model := m
		txs = append(txs, r.toEntity(&model))
	}
	return txs, int(total), nil
}

// UpdateStatus transitions a transaction's status
func (r *ExternalTransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListUncollectedBalances aggregates settled, unclaimed commission per barber
func (r *ExternalTransactionRepository) ListUncollectedBalances(ctx context.Context, minCents int64) ([]*entities.BarberBalance, error) {
	var rows []struct {
		BarberID uuid.UUID
		Total    int64
		Count    int
	}
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Select("barber_id, SUM(commission_owed_cents) AS total, COUNT(*) AS count").
		Where("status = ? AND collection_id IS NULL AND commission_owed_cents > 0", string(entities.TransactionStatusSettled)).
		Group("barber_id").
		Having("SUM(commission_owed_cents) >= ?", minCents).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	var balances []*entities.BarberBalance
	for _, row := range rows {
		balances = append(balances, &entities.BarberBalance{
			BarberID:       row.BarberID,
			TotalOwedCents: row.Total,
			TxCount:        row.Count,
		})
	}
	return balances, nil
}

// ClaimSettled atomically claims the barber's settled, unclaimed transactions
// for a collection. The WHERE clause on (status, collection_id) makes
// concurrent scheduler runs mutually exclusive per transaction.
func (r *ExternalTransactionRepository) ClaimSettled(ctx context.Context, barberID, collectionID uuid.UUID) (int, int64, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Where("barber_id = ? AND status = ? AND collection_id IS NULL AND commission_owed_cents > 0",
			barberID, string(entities.TransactionStatusSettled)).
		Updates(map[string]interface{}{
			"status":        string(entities.TransactionStatusClaimed),
			"collection_id": collectionID,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return 0, 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, 0, nil
	}

	var sum int64
	err := db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Select("COALESCE(SUM(commission_owed_cents), 0)").
		Where("collection_id = ?", collectionID).
		Scan(&sum).Error
	if err != nil {
		return 0, 0, err
	}
	return int(result.RowsAffected), sum, nil
}

// MarkCollected finalizes all transactions claimed by a collection
func (r *ExternalTransactionRepository) MarkCollected(ctx context.Context, collectionID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Where("collection_id = ? AND status = ?", collectionID, string(entities.TransactionStatusClaimed)).
		Updates(map[string]interface{}{
			"status":     string(entities.TransactionStatusCollected),
			"updated_at": time.Now(),
		}).Error
}

// ReleaseClaim returns claimed transactions to SETTLED after a terminal
// collection failure so a later cycle can claim them again.
func (r *ExternalTransactionRepository) ReleaseClaim(ctx context.Context, collectionID uuid.UUID) error {
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.ExternalTransaction{}).
		Where("collection_id = ? AND status = ?", collectionID, string(entities.TransactionStatusClaimed)).
		Updates(map[string]interface{}{
			"status":        string(entities.TransactionStatusSettled),
			"collection_id": nil,
			"updated_at":    time.Now(),
		}).Error
}

func (r *ExternalTransactionRepository) toEntity(m *models.ExternalTransaction) *entities.ExternalTransaction {
	return &entities.ExternalTransaction{
		ID:                  m.ID,
		BarberID:            m.BarberID,
		Processor:           entities.ProcessorType(m.Processor),
		AmountCents:         m.AmountCents,
		CommissionOwedCents: m.CommissionOwedCents,
		Status:              entities.TransactionStatus(m.Status),
		ExternalRef:         null.StringFromPtr(m.ExternalRef),
		CollectionID:        m.CollectionID,
		ServiceType:         m.ServiceType,
		FallbackOccurred:    m.FallbackOccurred,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}
