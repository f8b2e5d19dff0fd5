package gateways

import (
	"context"

	"booked-barber.backend/internal/domain/entities"
)

// ChargeRequest is the wire request sent to a processor gateway
type ChargeRequest struct {
	AmountCents        int64  `json:"amount_cents"`
	Currency           string `json:"currency"`
	PaymentMethodToken string `json:"payment_method_token"`
	IdempotencyKey     string `json:"idempotency_key"`
}

// ChargeResult is the gateway's definitive answer to a charge
type ChargeResult struct {
	Status     string `json:"status"`
	ExternalID string `json:"external_id"`
	ErrorCode  string `json:"error_code,omitempty"`
}

// Gateway is the per-processor charge interface. Implementations classify
// every failure as one of the domain gateway errors (declined, unavailable,
// unknown); a timeout is reported as unavailable.
type Gateway interface {
	Name() entities.ProcessorType
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// CollectRequest is the wire request for pulling commission/rent from a barber
type CollectRequest struct {
	AccountToken string `json:"account_token"`
	AmountCents  int64  `json:"amount_cents"`
	Method       string `json:"method"`
}

// CollectResult is the collector's answer
type CollectResult struct {
	Status       string `json:"status"`
	CollectionID string `json:"collection_id"`
	ErrorCode    string `json:"error_code,omitempty"`
}

// Collector is the ACH/card collection interface
type Collector interface {
	Collect(ctx context.Context, req *CollectRequest) (*CollectResult, error)
}
