package usecases

import (
	"context"

	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/domain/repositories"
)

// feeRate is a processor's fee table entry: percent in basis points,
// fixed fee in cents, instant payout surcharge in basis points.
type feeRate struct {
	percentBps    int64
	fixedFeeCents int64
	instantBps    int64
}

// Default published rates, used when no ProcessorFeeConfig row overrides them
var defaultFeeRates = map[entities.ProcessorType]feeRate{
	entities.ProcessorStripe:   {percentBps: 290, fixedFeeCents: 30, instantBps: entities.DefaultInstantPayoutBps},
	entities.ProcessorSquare:   {percentBps: 290, fixedFeeCents: 30, instantBps: entities.DefaultInstantPayoutBps},
	entities.ProcessorPayPal:   {percentBps: 349, fixedFeeCents: 49, instantBps: entities.DefaultInstantPayoutBps},
	entities.ProcessorClover:   {percentBps: 260, fixedFeeCents: 10, instantBps: entities.DefaultInstantPayoutBps},
	entities.ProcessorPlatform: {percentBps: 250, fixedFeeCents: 25, instantBps: entities.DefaultInstantPayoutBps},
}

// FeeUsecase computes processing fees
type FeeUsecase struct {
	feeConfigRepo repositories.FeeConfigRepository
}

// NewFeeUsecase creates a new fee usecase
func NewFeeUsecase(feeConfigRepo repositories.FeeConfigRepository) *FeeUsecase {
	return &FeeUsecase{feeConfigRepo: feeConfigRepo}
}

// CalculateFee computes the processing fee and net amount for a charge.
// Deterministic for identical inputs; ProcessingFeeCents + NetAmountCents
// always equals amountCents.
func (u *FeeUsecase) CalculateFee(ctx context.Context, amountCents int64, processor entities.ProcessorType, instantPayout bool) (*entities.FeeBreakdown, error) {
	if amountCents <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	if !processor.Valid() {
		return nil, domainerrors.ErrUnknownProcessor
	}

	rate := defaultFeeRates[processor]
	if u.feeConfigRepo != nil {
		if cfg, err := u.feeConfigRepo.GetByProcessor(ctx, processor); err == nil && cfg != nil {
			rate = feeRate{
				percentBps:    cfg.PercentBps,
				fixedFeeCents: cfg.FixedFeeCents,
				instantBps:    cfg.InstantPayoutBps,
			}
		}
	}

	bps := rate.percentBps
	if instantPayout {
		bps += rate.instantBps
	}

	fee := mulBps(amountCents, bps) + rate.fixedFeeCents
	// Fixed fees can exceed tiny charges; the fee never exceeds the amount.
	if fee > amountCents {
		fee = amountCents
	}

	return &entities.FeeBreakdown{
		ProcessingFeeCents: fee,
		NetAmountCents:     amountCents - fee,
	}, nil
}

// mulBps applies a basis-point rate with round-half-up
func mulBps(amountCents, bps int64) int64 {
	return (amountCents*bps + 5000) / 10000
}
