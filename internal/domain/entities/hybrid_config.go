package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentMode determines how a barber's charges are routed
type PaymentMode string

const (
	// PaymentModeCentralized routes everything through the platform
	PaymentModeCentralized PaymentMode = "CENTRALIZED"
	// PaymentModeDecentralized routes everything to the barber's own processor
	PaymentModeDecentralized PaymentMode = "DECENTRALIZED"
	// PaymentModeHybrid routes per transaction based on routing rules
	PaymentModeHybrid PaymentMode = "HYBRID"
)

// Valid reports whether the mode is known
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCentralized, PaymentModeDecentralized, PaymentModeHybrid:
		return true
	}
	return false
}

// CommissionModel determines how the platform earns from a barber
type CommissionModel string

const (
	CommissionModelPercentage CommissionModel = "PERCENTAGE"
	CommissionModelBoothRent  CommissionModel = "BOOTH_RENT"
)

// Valid reports whether the commission model is known
func (m CommissionModel) Valid() bool {
	return m == CommissionModelPercentage || m == CommissionModelBoothRent
}

// RuleKind identifies the condition a routing rule matches on. Kinds are
// evaluated in a fixed precedence order: amount thresholds first, then time
// windows, then service types.
type RuleKind string

const (
	RuleKindAmountThreshold RuleKind = "AMOUNT_THRESHOLD"
	RuleKindTimeWindow      RuleKind = "TIME_WINDOW"
	RuleKindServiceType     RuleKind = "SERVICE_TYPE"
)

// RoutingRule routes a matching transaction to a target processor.
// Amount bounds are inclusive; a nil bound is open-ended. Time windows are
// minutes since midnight, [StartMinute, EndMinute), and may wrap past
// midnight when StartMinute > EndMinute.
type RoutingRule struct {
	Kind           RuleKind      `json:"kind"`
	MinAmountCents *int64        `json:"minAmountCents,omitempty"`
	MaxAmountCents *int64        `json:"maxAmountCents,omitempty"`
	StartMinute    int           `json:"startMinute,omitempty"`
	EndMinute      int           `json:"endMinute,omitempty"`
	ServiceType    string        `json:"serviceType,omitempty"`
	Target         ProcessorType `json:"target"`
}

// HybridPaymentConfig is a barber's active payment routing configuration.
// Exactly one config per barber is active at a time; superseded configs are
// deactivated, never deleted.
type HybridPaymentConfig struct {
	ID                 uuid.UUID       `json:"id"`
	BarberID           uuid.UUID       `json:"barberId"`
	Mode               PaymentMode     `json:"mode"`
	Rules              []RoutingRule   `json:"rules"`
	DefaultProcessor   ProcessorType   `json:"defaultProcessor"`
	FallbackToPlatform bool            `json:"fallbackToPlatform"`
	CommissionModel    CommissionModel `json:"commissionModel"`
	CommissionRateBps  int64           `json:"commissionRateBps"`
	BoothRentCents     int64           `json:"boothRentCents"`
	IsActive           bool            `json:"isActive"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// DefaultHybridPaymentConfig is the implicit config for barbers who never
// configured routing: everything through the platform at the standard rate.
func DefaultHybridPaymentConfig(barberID uuid.UUID) *HybridPaymentConfig {
	return &HybridPaymentConfig{
		BarberID:          barberID,
		Mode:              PaymentModeCentralized,
		DefaultProcessor:  ProcessorPlatform,
		CommissionModel:   CommissionModelPercentage,
		CommissionRateBps: DefaultCommissionRateBps,
		IsActive:          true,
	}
}

// PaymentModeHistory is one append-only audit record of a config change
type PaymentModeHistory struct {
	ID           uuid.UUID   `json:"id"`
	BarberID     uuid.UUID   `json:"barberId"`
	ConfigID     uuid.UUID   `json:"configId"`
	PreviousMode null.String `json:"previousMode,omitempty"`
	NewMode      PaymentMode `json:"newMode"`
	ChangedBy    null.String `json:"changedBy,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// UpdateHybridConfigInput is the input for replacing a barber's config
type UpdateHybridConfigInput struct {
	Mode               PaymentMode     `json:"mode" binding:"required"`
	Rules              []RoutingRule   `json:"rules"`
	DefaultProcessor   ProcessorType   `json:"defaultProcessor"`
	FallbackToPlatform bool            `json:"fallbackToPlatform"`
	CommissionModel    CommissionModel `json:"commissionModel"`
	CommissionRateBps  int64           `json:"commissionRateBps"`
	BoothRentCents     int64           `json:"boothRentCents"`
}
