package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/domain/repositories"
	"booked-barber.backend/pkg/logger"
	"booked-barber.backend/pkg/utils"
)

const minutesPerDay = 24 * 60

// HybridConfigUsecase manages a barber's payment routing configuration and
// its audit trail
type HybridConfigUsecase struct {
	configRepo  repositories.HybridConfigRepository
	historyRepo repositories.PaymentModeHistoryRepository
	uow         repositories.UnitOfWork
	clock       Clock
}

// NewHybridConfigUsecase creates a new config usecase
func NewHybridConfigUsecase(
	configRepo repositories.HybridConfigRepository,
	historyRepo repositories.PaymentModeHistoryRepository,
	uow repositories.UnitOfWork,
	clock Clock,
) *HybridConfigUsecase {
	return &HybridConfigUsecase{
		configRepo:  configRepo,
		historyRepo: historyRepo,
		uow:         uow,
		clock:       clock,
	}
}

// GetConfig returns the barber's active config, or the implicit centralized
// default when none was ever saved
func (u *HybridConfigUsecase) GetConfig(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error) {
	cfg, err := u.configRepo.GetActiveByBarber(ctx, barberID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.DefaultHybridPaymentConfig(barberID), nil
		}
		return nil, err
	}
	return cfg, nil
}

// UpdateConfig replaces the barber's active config and appends the change to
// the audit log in the same transaction
func (u *HybridConfigUsecase) UpdateConfig(ctx context.Context, barberID uuid.UUID, input *entities.UpdateHybridConfigInput, changedBy string) (*entities.HybridPaymentConfig, error) {
	if err := validateConfigInput(input); err != nil {
		return nil, err
	}

	var previousMode null.String
	if prev, err := u.configRepo.GetActiveByBarber(ctx, barberID); err == nil {
		previousMode = null.StringFrom(string(prev.Mode))
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := u.clock.Now()
	cfg := &entities.HybridPaymentConfig{
		ID:                 utils.GenerateUUIDv7(),
		BarberID:           barberID,
		Mode:               input.Mode,
		Rules:              input.Rules,
		DefaultProcessor:   input.DefaultProcessor,
		FallbackToPlatform: input.FallbackToPlatform,
		CommissionModel:    input.CommissionModel,
		CommissionRateBps:  input.CommissionRateBps,
		BoothRentCents:     input.BoothRentCents,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	history := &entities.PaymentModeHistory{
		ID:           utils.GenerateUUIDv7(),
		BarberID:     barberID,
		ConfigID:     cfg.ID,
		PreviousMode: previousMode,
		NewMode:      cfg.Mode,
		ChangedBy:    null.NewString(changedBy, changedBy != ""),
		CreatedAt:    now,
	}

	if err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.configRepo.Save(txCtx, cfg); err != nil {
			return err
		}
		return u.historyRepo.Create(txCtx, history)
	}); err != nil {
		return nil, err
	}

	logger.Info(ctx, "payment config updated",
		zap.String("barber_id", barberID.String()),
		zap.String("mode", string(cfg.Mode)),
		zap.String("previous_mode", previousMode.String))
	return cfg, nil
}

// GetHistory lists the barber's config audit log
func (u *HybridConfigUsecase) GetHistory(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error) {
	return u.historyRepo.ListByBarber(ctx, barberID, limit, offset)
}

func validateConfigInput(input *entities.UpdateHybridConfigInput) error {
	if !input.Mode.Valid() {
		return fmt.Errorf("%w: mode %q", domainerrors.ErrInvalidInput, input.Mode)
	}

	if input.DefaultProcessor == "" {
		input.DefaultProcessor = entities.ProcessorPlatform
	}
	if !input.DefaultProcessor.Valid() {
		return fmt.Errorf("%w: default processor %q", domainerrors.ErrUnknownProcessor, input.DefaultProcessor)
	}
	if input.Mode == entities.PaymentModeDecentralized && !input.DefaultProcessor.External() {
		return fmt.Errorf("%w: decentralized mode needs an external default processor", domainerrors.ErrInvalidInput)
	}

	if input.CommissionModel == "" {
		input.CommissionModel = entities.CommissionModelPercentage
	}
	if !input.CommissionModel.Valid() {
		return fmt.Errorf("%w: commission model %q", domainerrors.ErrInvalidInput, input.CommissionModel)
	}
	if input.CommissionRateBps < 0 || input.CommissionRateBps > 10000 {
		return domainerrors.ErrInvalidRate
	}
	if input.BoothRentCents < 0 {
		return fmt.Errorf("%w: booth rent must not be negative", domainerrors.ErrInvalidInput)
	}
	if input.CommissionModel == entities.CommissionModelBoothRent && input.BoothRentCents == 0 {
		return fmt.Errorf("%w: booth rent model needs a rent amount", domainerrors.ErrInvalidInput)
	}

	for i, rule := range input.Rules {
		if err := validateRule(rule); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return nil
}

func validateRule(rule entities.RoutingRule) error {
	if !rule.Target.Valid() {
		return fmt.Errorf("%w: target %q", domainerrors.ErrUnknownProcessor, rule.Target)
	}
	switch rule.Kind {
	case entities.RuleKindAmountThreshold:
		if rule.MinAmountCents == nil && rule.MaxAmountCents == nil {
			return fmt.Errorf("%w: amount rule needs a bound", domainerrors.ErrInvalidInput)
		}
		if rule.MinAmountCents != nil && rule.MaxAmountCents != nil && *rule.MinAmountCents > *rule.MaxAmountCents {
			return fmt.Errorf("%w: amount bounds inverted", domainerrors.ErrInvalidInput)
		}
	case entities.RuleKindTimeWindow:
		if rule.StartMinute < 0 || rule.StartMinute >= minutesPerDay ||
			rule.EndMinute < 0 || rule.EndMinute >= minutesPerDay {
			return fmt.Errorf("%w: window minutes out of range", domainerrors.ErrInvalidInput)
		}
		if rule.StartMinute == rule.EndMinute {
			return fmt.Errorf("%w: empty time window", domainerrors.ErrInvalidInput)
		}
	case entities.RuleKindServiceType:
		if rule.ServiceType == "" {
			return fmt.Errorf("%w: service type rule needs a service type", domainerrors.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: rule kind %q", domainerrors.ErrInvalidInput, rule.Kind)
	}
	return nil
}
