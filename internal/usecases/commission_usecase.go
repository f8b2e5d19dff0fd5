package usecases

import (
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
)

// CommissionUsecase computes platform commission splits. Pure computation;
// callers persist the result on the transaction at creation time so later
// rate changes never rewrite history.
type CommissionUsecase struct{}

// NewCommissionUsecase creates a new commission usecase
func NewCommissionUsecase() *CommissionUsecase {
	return &CommissionUsecase{}
}

// Calculate splits a transaction amount between the platform and the barber.
// For the percentage model, CommissionOwedCents + NetToBarberCents equals
// amountCents. For the booth-rent model the commission is the flat rent,
// independent of the transaction amount, and the transaction itself is
// untouched.
func (u *CommissionUsecase) Calculate(amountCents int64, model entities.CommissionModel, rateBps, flatCents int64) (*entities.CommissionBreakdown, error) {
	if amountCents <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}

	switch model {
	case entities.CommissionModelPercentage:
		if rateBps < 0 || rateBps > 10000 {
			return nil, domainerrors.ErrInvalidRate
		}
		commission := mulBps(amountCents, rateBps)
		return &entities.CommissionBreakdown{
			CommissionOwedCents: commission,
			NetToBarberCents:    amountCents - commission,
		}, nil
	case entities.CommissionModelBoothRent:
		if flatCents < 0 {
			return nil, domainerrors.ErrInvalidRate
		}
		return &entities.CommissionBreakdown{
			CommissionOwedCents: flatCents,
			NetToBarberCents:    amountCents,
		}, nil
	}
	return nil, domainerrors.ErrInvalidInput
}
