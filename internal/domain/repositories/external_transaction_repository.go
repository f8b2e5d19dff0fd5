package repositories

import (
	"context"

	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
)

// ExternalTransactionRepository defines ledger data operations
type ExternalTransactionRepository interface {
	Create(ctx context.Context, tx *entities.ExternalTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error)
	ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error

	// ListUncollectedBalances aggregates settled, unclaimed commission per
	// barber, returning only balances at or above minCents.
	ListUncollectedBalances(ctx context.Context, minCents int64) ([]*entities.BarberBalance, error)

	// ClaimSettled atomically moves the barber's settled, unclaimed
	// transactions to CLAIMED under collectionID and returns the count and
	// commission sum actually claimed. The conditional update is the guard
	// against concurrent scheduler runs double-collecting.
	ClaimSettled(ctx context.Context, barberID, collectionID uuid.UUID) (int, int64, error)

	// MarkCollected finalizes all transactions claimed by collectionID
	MarkCollected(ctx context.Context, collectionID uuid.UUID) error

	// ReleaseClaim returns transactions claimed by a terminally failed
	// collection to SETTLED so a later cycle can pick them up again.
	ReleaseClaim(ctx context.Context, collectionID uuid.UUID) error
}
