package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// CollectionType distinguishes what a platform collection recovers
type CollectionType string

const (
	CollectionTypeCommission CollectionType = "COMMISSION"
	CollectionTypeBoothRent  CollectionType = "BOOTH_RENT"
)

// CollectionStatus is the collection lifecycle
type CollectionStatus string

const (
	CollectionStatusPending    CollectionStatus = "PENDING"
	CollectionStatusProcessing CollectionStatus = "PROCESSING"
	CollectionStatusCollected  CollectionStatus = "COLLECTED"
	CollectionStatusFailed     CollectionStatus = "FAILED"
)

// CollectionMethod is how the money is pulled from the barber
type CollectionMethod string

const (
	CollectionMethodACH  CollectionMethod = "ACH"
	CollectionMethodCard CollectionMethod = "CARD"
)

// PlatformCollection is one attempt to recover commission or booth rent from
// a barber. PeriodKey is the covered month ("2026-08"); for booth rent it
// guarantees at most one collection per period.
type PlatformCollection struct {
	ID           uuid.UUID        `json:"id"`
	BarberID     uuid.UUID        `json:"barberId"`
	Type         CollectionType   `json:"type"`
	AmountCents  int64            `json:"amountCents"`
	Status       CollectionStatus `json:"status"`
	Method       CollectionMethod `json:"method"`
	PeriodKey    string           `json:"periodKey"`
	AttemptCount int              `json:"attemptCount"`
	NextRetryAt  *time.Time       `json:"nextRetryAt,omitempty"`
	LastError    null.String      `json:"lastError,omitempty"`
	ExternalRef  null.String      `json:"externalRef,omitempty"`
	CollectedAt  *time.Time       `json:"collectedAt,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

// CollectionCycleReport summarizes one scheduler cycle
type CollectionCycleReport struct {
	CommissionsCreated int `json:"commissionsCreated"`
	RentsCreated       int `json:"rentsCreated"`
	RetriesProcessed   int `json:"retriesProcessed"`
	Collected          int `json:"collected"`
	Failed             int `json:"failed"`
}
