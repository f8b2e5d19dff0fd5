package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultCommissionRateBps is the standard platform take: 15%
	DefaultCommissionRateBps = 1500
	// DefaultInstantPayoutBps is the surcharge for instant payout: 1%
	DefaultInstantPayoutBps = 100
)

// FeeBreakdown is a processing fee quote.
// ProcessingFeeCents + NetAmountCents always equals the quoted amount.
type FeeBreakdown struct {
	ProcessingFeeCents int64 `json:"processingFeeCents"`
	NetAmountCents     int64 `json:"netAmountCents"`
}

// CommissionBreakdown splits a transaction between platform and barber
type CommissionBreakdown struct {
	CommissionOwedCents int64 `json:"commissionOwedCents"`
	NetToBarberCents    int64 `json:"netToBarberCents"`
}

// ProcessorFeeConfig overrides the published fee table for a processor
type ProcessorFeeConfig struct {
	ID               uuid.UUID     `json:"id"`
	Processor        ProcessorType `json:"processor"`
	PercentBps       int64         `json:"percentBps"`
	FixedFeeCents    int64         `json:"fixedFeeCents"`
	InstantPayoutBps int64         `json:"instantPayoutBps"`
	IsActive         bool          `json:"isActive"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// FeeQuoteInput is the input for a fee quote
type FeeQuoteInput struct {
	AmountCents   int64         `json:"amountCents" binding:"required"`
	Processor     ProcessorType `json:"processor" binding:"required"`
	InstantPayout bool          `json:"instantPayout"`
}
