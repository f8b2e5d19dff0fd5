package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
)

func seedCollection(t *testing.T, repo *PlatformCollectionRepository, barberID uuid.UUID, ctype entities.CollectionType, status entities.CollectionStatus, periodKey string) *entities.PlatformCollection {
	t.Helper()
	c := &entities.PlatformCollection{
		ID:          uuid.New(),
		BarberID:    barberID,
		Type:        ctype,
		AmountCents: 1500,
		Status:      status,
		Method:      entities.CollectionMethodACH,
		PeriodKey:   periodKey,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestPlatformCollectionRepository_BasicFlow(t *testing.T) {
	db := newTestDB(t)
	createCollectionTable(t, db)
	repo := NewPlatformCollectionRepository(db)
	ctx := context.Background()

	barberID := uuid.New()
	c := seedCollection(t, repo, barberID, entities.CollectionTypeCommission, entities.CollectionStatusPending, "2026-08")

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ID)
	require.Equal(t, entities.CollectionMethodACH, got.Method)

	now := time.Now().UTC().Truncate(time.Second)
	c.Status = entities.CollectionStatusCollected
	c.Method = entities.CollectionMethodCard
	c.AttemptCount = 2
	c.ExternalRef = null.StringFrom("col_123")
	c.CollectedAt = &now
	require.NoError(t, repo.Update(ctx, c))

	got, err = repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, entities.CollectionStatusCollected, got.Status)
	require.Equal(t, entities.CollectionMethodCard, got.Method)
	require.Equal(t, 2, got.AttemptCount)
	require.Equal(t, "col_123", got.ExternalRef.String)
	require.NotNil(t, got.CollectedAt)

	list, total, err := repo.ListByBarber(ctx, barberID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, list, 1)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, &entities.PlatformCollection{ID: uuid.New()}), domainerrors.ErrNotFound)
}

func TestPlatformCollectionRepository_ListDueRetries(t *testing.T) {
	db := newTestDB(t)
	createCollectionTable(t, db)
	repo := NewPlatformCollectionRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	due := seedCollection(t, repo, uuid.New(), entities.CollectionTypeCommission, entities.CollectionStatusPending, "2026-08")
	due.NextRetryAt = &past
	due.AttemptCount = 1
	require.NoError(t, repo.Update(ctx, due))

	notYet := seedCollection(t, repo, uuid.New(), entities.CollectionTypeCommission, entities.CollectionStatusPending, "2026-08")
	notYet.NextRetryAt = &future
	notYet.AttemptCount = 1
	require.NoError(t, repo.Update(ctx, notYet))

	// Fresh collections with no retry time are not retries
	seedCollection(t, repo, uuid.New(), entities.CollectionTypeCommission, entities.CollectionStatusPending, "2026-08")

	got, err := repo.ListDueRetries(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, due.ID, got[0].ID)
}

func TestPlatformCollectionRepository_ExistsForPeriod(t *testing.T) {
	db := newTestDB(t)
	createCollectionTable(t, db)
	repo := NewPlatformCollectionRepository(db)
	ctx := context.Background()

	barberID := uuid.New()
	seedCollection(t, repo, barberID, entities.CollectionTypeBoothRent, entities.CollectionStatusCollected, "2026-08")

	exists, err := repo.ExistsForPeriod(ctx, barberID, entities.CollectionTypeBoothRent, "2026-08")
	require.NoError(t, err)
	require.True(t, exists)

	// Different period, different type, different barber: all clear
	exists, err = repo.ExistsForPeriod(ctx, barberID, entities.CollectionTypeBoothRent, "2026-09")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.ExistsForPeriod(ctx, barberID, entities.CollectionTypeCommission, "2026-08")
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.ExistsForPeriod(ctx, uuid.New(), entities.CollectionTypeBoothRent, "2026-08")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestPlatformCollectionRepository_FailedCollectionDoesNotBlockPeriod(t *testing.T) {
	db := newTestDB(t)
	createCollectionTable(t, db)
	repo := NewPlatformCollectionRepository(db)
	ctx := context.Background()

	barberID := uuid.New()
	seedCollection(t, repo, barberID, entities.CollectionTypeBoothRent, entities.CollectionStatusFailed, "2026-08")

	exists, err := repo.ExistsForPeriod(ctx, barberID, entities.CollectionTypeBoothRent, "2026-08")
	require.NoError(t, err)
	require.False(t, exists)
}
