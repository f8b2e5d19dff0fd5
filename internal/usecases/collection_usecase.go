package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	"booked-barber.backend/internal/domain/repositories"
	"booked-barber.backend/internal/infrastructure/gateways"
	"booked-barber.backend/pkg/logger"
	"booked-barber.backend/pkg/metrics"
	"booked-barber.backend/pkg/utils"
)

const (
	// DefaultMinCollectionCents is the minimum commission balance worth
	// collecting: $10. Smaller balances roll into the next cycle.
	DefaultMinCollectionCents = 1000
	// MaxCollectionAttempts is the retry budget before a collection goes
	// terminal and gets escalated
	MaxCollectionAttempts = 3

	retryBatchSize = 100
)

// collectionBackoff spaces retries out: 1h after the first failure, 4h after
// the second. The third failure is terminal.
var collectionBackoff = [...]time.Duration{time.Hour, 4 * time.Hour, 24 * time.Hour}

// CollectionUsecase runs the periodic commission and booth-rent collection
// cycle: sweep settled balances into collections, bill monthly rent once per
// period, and work through due retries.
type CollectionUsecase struct {
	txRepo     repositories.ExternalTransactionRepository
	collRepo   repositories.PlatformCollectionRepository
	configRepo repositories.HybridConfigRepository
	collector  gateways.Collector
	alerter    Alerter
	uow        repositories.UnitOfWork
	clock      Clock
	minCents   int64
}

// NewCollectionUsecase creates a new collection usecase. minCents below 1
// falls back to DefaultMinCollectionCents.
func NewCollectionUsecase(
	txRepo repositories.ExternalTransactionRepository,
	collRepo repositories.PlatformCollectionRepository,
	configRepo repositories.HybridConfigRepository,
	collector gateways.Collector,
	alerter Alerter,
	uow repositories.UnitOfWork,
	clock Clock,
	minCents int64,
) *CollectionUsecase {
	if minCents < 1 {
		minCents = DefaultMinCollectionCents
	}
	return &CollectionUsecase{
		txRepo:     txRepo,
		collRepo:   collRepo,
		configRepo: configRepo,
		collector:  collector,
		alerter:    alerter,
		uow:        uow,
		clock:      clock,
		minCents:   minCents,
	}
}

// RunCycle executes one full collection cycle. Per-barber failures are
// logged and skipped so one bad account never blocks the rest of the sweep.
func (u *CollectionUsecase) RunCycle(ctx context.Context) (*entities.CollectionCycleReport, error) {
	metrics.CollectionRuns.Inc()
	report := &entities.CollectionCycleReport{}
	period := u.clock.Now().UTC().Format("2006-01")

	balances, err := u.txRepo.ListUncollectedBalances(ctx, u.minCents)
	if err != nil {
		return nil, err
	}
	for _, b := range balances {
		c, err := u.claimCommission(ctx, b.BarberID, period)
		if err != nil {
			logger.Error(ctx, "commission claim failed",
				zap.String("barber_id", b.BarberID.String()), zap.Error(err))
			continue
		}
		if c == nil {
			// A concurrent cycle claimed these transactions first
			continue
		}
		report.CommissionsCreated++
		u.attempt(ctx, c, report)
	}

	rentCfgs, err := u.configRepo.ListRentConfigs(ctx)
	if err != nil {
		logger.Error(ctx, "rent config listing failed", zap.Error(err))
	}
	for _, cfg := range rentCfgs {
		c, err := u.createRent(ctx, cfg, period)
		if err != nil {
			logger.Error(ctx, "rent collection creation failed",
				zap.String("barber_id", cfg.BarberID.String()), zap.Error(err))
			continue
		}
		if c == nil {
			continue
		}
		report.RentsCreated++
		u.attempt(ctx, c, report)
	}

	due, err := u.collRepo.ListDueRetries(ctx, u.clock.Now(), retryBatchSize)
	if err != nil {
		logger.Error(ctx, "due retry listing failed", zap.Error(err))
	}
	for _, c := range due {
		report.RetriesProcessed++
		u.attempt(ctx, c, report)
	}

	logger.Info(ctx, "collection cycle finished",
		zap.Int("commissions_created", report.CommissionsCreated),
		zap.Int("rents_created", report.RentsCreated),
		zap.Int("retries_processed", report.RetriesProcessed),
		zap.Int("collected", report.Collected),
		zap.Int("failed", report.Failed))
	return report, nil
}

// GetCollection returns a single collection record
func (u *CollectionUsecase) GetCollection(ctx context.Context, id uuid.UUID) (*entities.PlatformCollection, error) {
	return u.collRepo.GetByID(ctx, id)
}

// ListCollections lists a barber's collections
func (u *CollectionUsecase) ListCollections(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PlatformCollection, int, error) {
	return u.collRepo.ListByBarber(ctx, barberID, limit, offset)
}

// claimCommission atomically claims the barber's settled commission and
// creates the collection record for the claimed sum, all in one transaction.
// Returns nil when nothing was left to claim.
func (u *CollectionUsecase) claimCommission(ctx context.Context, barberID uuid.UUID, period string) (*entities.PlatformCollection, error) {
	collectionID := utils.GenerateUUIDv7()
	var c *entities.PlatformCollection

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		claimed, sum, err := u.txRepo.ClaimSettled(txCtx, barberID, collectionID)
		if err != nil {
			return err
		}
		if claimed == 0 {
			return nil
		}

		now := u.clock.Now()
		c = &entities.PlatformCollection{
			ID:          collectionID,
			BarberID:    barberID,
			Type:        entities.CollectionTypeCommission,
			AmountCents: sum,
			Status:      entities.CollectionStatusPending,
			Method:      entities.CollectionMethodACH,
			PeriodKey:   period,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return u.collRepo.Create(txCtx, c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// createRent bills the barber's monthly booth rent, at most once per period
func (u *CollectionUsecase) createRent(ctx context.Context, cfg *entities.HybridPaymentConfig, period string) (*entities.PlatformCollection, error) {
	exists, err := u.collRepo.ExistsForPeriod(ctx, cfg.BarberID, entities.CollectionTypeBoothRent, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	now := u.clock.Now()
	c := &entities.PlatformCollection{
		ID:          utils.GenerateUUIDv7(),
		BarberID:    cfg.BarberID,
		Type:        entities.CollectionTypeBoothRent,
		AmountCents: cfg.BoothRentCents,
		Status:      entities.CollectionStatusPending,
		Method:      entities.CollectionMethodACH,
		PeriodKey:   period,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.collRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// attempt runs one collection attempt and advances the record's state:
// collected, scheduled for retry, or terminally failed with an alert.
func (u *CollectionUsecase) attempt(ctx context.Context, c *entities.PlatformCollection, report *entities.CollectionCycleReport) {
	c.Status = entities.CollectionStatusProcessing
	c.AttemptCount++
	c.NextRetryAt = nil
	if err := u.collRepo.Update(ctx, c); err != nil {
		logger.Error(ctx, "collection update failed",
			zap.String("collection_id", c.ID.String()), zap.Error(err))
		return
	}

	method := c.Method
	result, err := u.collector.Collect(ctx, &gateways.CollectRequest{
		AccountToken: c.BarberID.String(),
		AmountCents:  c.AmountCents,
		Method:       string(method),
	})
	now := u.clock.Now()

	if err == nil {
		c.Status = entities.CollectionStatusCollected
		c.CollectedAt = &now
		c.ExternalRef = null.StringFrom(result.CollectionID)
		c.LastError = null.String{}

		persistErr := u.uow.Do(ctx, func(txCtx context.Context) error {
			if err := u.collRepo.Update(txCtx, c); err != nil {
				return err
			}
			if c.Type == entities.CollectionTypeCommission {
				return u.txRepo.MarkCollected(txCtx, c.ID)
			}
			return nil
		})
		if persistErr != nil {
			logger.Error(ctx, "collection finalize failed",
				zap.String("collection_id", c.ID.String()), zap.Error(persistErr))
			return
		}

		metrics.CollectionOutcomes.WithLabelValues(string(method), "success").Inc()
		report.Collected++
		logger.Info(ctx, "collection succeeded",
			zap.String("collection_id", c.ID.String()),
			zap.String("method", string(method)),
			zap.Int64("amount_cents", c.AmountCents))
		return
	}

	c.LastError = null.StringFrom(err.Error())
	metrics.CollectionOutcomes.WithLabelValues(string(method), "failure").Inc()

	if c.AttemptCount >= MaxCollectionAttempts {
		c.Status = entities.CollectionStatusFailed
		c.NextRetryAt = nil

		persistErr := u.uow.Do(ctx, func(txCtx context.Context) error {
			if err := u.collRepo.Update(txCtx, c); err != nil {
				return err
			}
			if c.Type == entities.CollectionTypeCommission {
				// Claimed transactions go back to SETTLED so a later cycle
				// can sweep them again.
				return u.txRepo.ReleaseClaim(txCtx, c.ID)
			}
			return nil
		})
		if persistErr != nil {
			logger.Error(ctx, "terminal collection persist failed",
				zap.String("collection_id", c.ID.String()), zap.Error(persistErr))
			return
		}

		u.alerter.CollectionExhausted(ctx, c)
		report.Failed++
		return
	}

	c.Status = entities.CollectionStatusPending
	retryAt := now.Add(collectionBackoff[c.AttemptCount-1])
	c.NextRetryAt = &retryAt
	if c.Method == entities.CollectionMethodACH {
		// ACH bounced; the cheaper rail had its chance, retry on card
		c.Method = entities.CollectionMethodCard
	}
	if err := u.collRepo.Update(ctx, c); err != nil {
		logger.Error(ctx, "retry schedule persist failed",
			zap.String("collection_id", c.ID.String()), zap.Error(err))
	}
}
