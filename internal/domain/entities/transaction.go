package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionStatus is the ledger lifecycle of an external transaction
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSettled   TransactionStatus = "SETTLED"
	TransactionStatusClaimed   TransactionStatus = "CLAIMED"
	TransactionStatusCollected TransactionStatus = "COLLECTED"
)

// ExternalTransaction is one ledger entry for a routed charge.
// CommissionOwedCents is computed once at creation from the config active at
// charge time; later rate changes never rewrite it.
type ExternalTransaction struct {
	ID                  uuid.UUID         `json:"id"`
	BarberID            uuid.UUID         `json:"barberId"`
	Processor           ProcessorType     `json:"processor"`
	AmountCents         int64             `json:"amountCents"`
	CommissionOwedCents int64             `json:"commissionOwedCents"`
	Status              TransactionStatus `json:"status"`
	ExternalRef         null.String       `json:"externalRef,omitempty"`
	CollectionID        *uuid.UUID        `json:"collectionId,omitempty"`
	ServiceType         string            `json:"serviceType,omitempty"`
	FallbackOccurred    bool              `json:"fallbackOccurred"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`
}

// ChargeInput is the input for routing a charge
type ChargeInput struct {
	AmountCents        int64  `json:"amountCents" binding:"required"`
	ServiceType        string `json:"serviceType"`
	PaymentMethodToken string `json:"paymentMethodToken" binding:"required"`
	IdempotencyKey     string `json:"idempotencyKey"`
}

// ChargeOutcome is the result of a routed charge
type ChargeOutcome struct {
	TransactionID    uuid.UUID         `json:"transactionId"`
	ProcessorUsed    ProcessorType     `json:"processorUsed"`
	Status           TransactionStatus `json:"status"`
	ExternalRef      string            `json:"externalRef,omitempty"`
	FallbackOccurred bool              `json:"fallbackOccurred"`
	AmountCents      int64             `json:"amountCents"`
	CommissionCents  int64             `json:"commissionCents"`
}

// BarberBalance is a barber's settled, uncollected commission total
type BarberBalance struct {
	BarberID       uuid.UUID `json:"barberId"`
	TotalOwedCents int64     `json:"totalOwedCents"`
	TxCount        int       `json:"txCount"`
}
