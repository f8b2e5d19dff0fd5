package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/domain/repositories"
	"booked-barber.backend/internal/infrastructure/gateways"
	"booked-barber.backend/pkg/logger"
	"booked-barber.backend/pkg/metrics"
	"booked-barber.backend/pkg/utils"
)

const chargeCurrency = "USD"

// GatewayProvider resolves the gateway client for a processor
type GatewayProvider interface {
	Get(processor entities.ProcessorType) (gateways.Gateway, error)
}

// PaymentRouter resolves where a charge goes, executes it against the
// gateway, and writes the ledger entry with the commission computed from the
// config active at charge time.
type PaymentRouter struct {
	configRepo repositories.HybridConfigRepository
	connRepo   repositories.ProcessorConnectionRepository
	txRepo     repositories.ExternalTransactionRepository
	commission *CommissionUsecase
	resolver   *PaymentModeResolver
	health     *HealthTracker
	gateways   GatewayProvider
	uow        repositories.UnitOfWork
	clock      Clock
}

// NewPaymentRouter creates a new payment router
func NewPaymentRouter(
	configRepo repositories.HybridConfigRepository,
	connRepo repositories.ProcessorConnectionRepository,
	txRepo repositories.ExternalTransactionRepository,
	commission *CommissionUsecase,
	resolver *PaymentModeResolver,
	health *HealthTracker,
	gatewayProvider GatewayProvider,
	uow repositories.UnitOfWork,
	clock Clock,
) *PaymentRouter {
	return &PaymentRouter{
		configRepo: configRepo,
		connRepo:   connRepo,
		txRepo:     txRepo,
		commission: commission,
		resolver:   resolver,
		health:     health,
		gateways:   gatewayProvider,
		uow:        uow,
		clock:      clock,
	}
}

// RouteAndCharge resolves the target processor for a charge, runs it, and
// records the resulting transaction. At most one fallback to the platform is
// attempted, and only when the primary was unavailable (never on a decline).
func (r *PaymentRouter) RouteAndCharge(ctx context.Context, barberID uuid.UUID, input *entities.ChargeInput) (*entities.ChargeOutcome, error) {
	if input.AmountCents <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	if input.PaymentMethodToken == "" {
		return nil, domainerrors.ErrInvalidInput
	}

	cfg, err := r.configRepo.GetActiveByBarber(ctx, barberID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		cfg = entities.DefaultHybridPaymentConfig(barberID)
	}

	target, err := r.resolver.Resolve(ctx, cfg, ResolveContext{
		AmountCents: input.AmountCents,
		ServiceType: input.ServiceType,
		At:          r.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	// A resolved external target still needs a live connection; a missing one
	// is treated the same as an unhealthy processor.
	if target.External() {
		if _, err := r.connRepo.GetActive(ctx, barberID, target); err != nil {
			if !errors.Is(err, domainerrors.ErrNotFound) {
				return nil, err
			}
			if !cfg.FallbackToPlatform {
				return nil, domainerrors.ErrNoHealthyProcessor
			}
			target = entities.ProcessorPlatform
		}
	}

	idemKey := input.IdempotencyKey
	if idemKey == "" {
		idemKey = utils.GenerateUUIDv7().String()
	}
	req := &gateways.ChargeRequest{
		AmountCents:        input.AmountCents,
		Currency:           chargeCurrency,
		PaymentMethodToken: input.PaymentMethodToken,
		IdempotencyKey:     idemKey,
	}

	result, err := r.charge(ctx, barberID, target, req)
	used := target
	fellBack := false
	if err != nil {
		if !errors.Is(err, domainerrors.ErrProcessorUnavailable) ||
			target == entities.ProcessorPlatform || !cfg.FallbackToPlatform {
			return nil, err
		}

		logger.Warn(ctx, "primary processor unavailable, falling back to platform",
			zap.String("barber_id", barberID.String()),
			zap.String("processor", string(target)))
		metrics.Fallbacks.Inc()

		result, err = r.charge(ctx, barberID, entities.ProcessorPlatform, req)
		if err != nil {
			return nil, err
		}
		used = entities.ProcessorPlatform
		fellBack = true
	}

	commission, err := r.commissionFor(cfg, used, input.AmountCents)
	if err != nil {
		return nil, err
	}

	now := r.clock.Now()
	tx := &entities.ExternalTransaction{
		ID:                  utils.GenerateUUIDv7(),
		BarberID:            barberID,
		Processor:           used,
		AmountCents:         input.AmountCents,
		CommissionOwedCents: commission,
		Status:              entities.TransactionStatusSettled,
		ExternalRef:         null.StringFrom(result.ExternalID),
		ServiceType:         input.ServiceType,
		FallbackOccurred:    fellBack,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := r.uow.Do(ctx, func(txCtx context.Context) error {
		return r.txRepo.Create(txCtx, tx)
	}); err != nil {
		// The charge already went through; the ledger write must not fail
		// silently.
		logger.Error(ctx, "ledger write failed after successful charge",
			zap.String("external_ref", result.ExternalID), zap.Error(err))
		return nil, err
	}

	logger.Info(ctx, "charge routed",
		zap.String("barber_id", barberID.String()),
		zap.String("processor", string(used)),
		zap.Int64("amount_cents", input.AmountCents),
		zap.Int64("commission_cents", commission),
		zap.Bool("fallback", fellBack))

	return &entities.ChargeOutcome{
		TransactionID:    tx.ID,
		ProcessorUsed:    used,
		Status:           tx.Status,
		ExternalRef:      result.ExternalID,
		FallbackOccurred: fellBack,
		AmountCents:      input.AmountCents,
		CommissionCents:  commission,
	}, nil
}

// GetTransaction returns a single ledger entry
func (r *PaymentRouter) GetTransaction(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error) {
	return r.txRepo.GetByID(ctx, id)
}

// ListTransactions lists the barber's ledger entries
func (r *PaymentRouter) ListTransactions(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error) {
	return r.txRepo.ListByBarber(ctx, barberID, limit, offset)
}

// charge runs a single gateway attempt and records its health outcome
func (r *PaymentRouter) charge(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType, req *gateways.ChargeRequest) (*gateways.ChargeResult, error) {
	gw, err := r.gateways.Get(processor)
	if err != nil {
		return nil, err
	}

	result, err := gw.Charge(ctx, req)
	r.health.RecordOutcome(ctx, barberID, processor, err == nil)
	metrics.ChargeAttempts.WithLabelValues(string(processor), chargeOutcomeLabel(err)).Inc()
	return result, err
}

// commissionFor computes the commission owed on a routed charge. Platform
// charges owe nothing: the platform already holds the money. Booth-rent
// barbers owe nothing per transaction; their rent is collected periodically.
func (r *PaymentRouter) commissionFor(cfg *entities.HybridPaymentConfig, used entities.ProcessorType, amountCents int64) (int64, error) {
	if !used.External() || cfg.CommissionModel != entities.CommissionModelPercentage {
		return 0, nil
	}
	breakdown, err := r.commission.Calculate(amountCents, entities.CommissionModelPercentage, cfg.CommissionRateBps, 0)
	if err != nil {
		return 0, err
	}
	return breakdown.CommissionOwedCents, nil
}

func chargeOutcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domainerrors.ErrProcessorDeclined):
		return "declined"
	case errors.Is(err, domainerrors.ErrProcessorUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
