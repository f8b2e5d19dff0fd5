package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
)

// DefaultGatewayTimeout bounds every gateway call so a slow processor can
// never hold a request indefinitely
const DefaultGatewayTimeout = 10 * time.Second

// HTTPGateway charges through a processor's HTTP API
type HTTPGateway struct {
	processor  entities.ProcessorType
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPGateway creates a gateway client for one processor
func NewHTTPGateway(processor entities.ProcessorType, baseURL, apiKey string, timeout time.Duration) *HTTPGateway {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &HTTPGateway{
		processor: processor,
		baseURL:   baseURL,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the processor this gateway charges through
func (g *HTTPGateway) Name() entities.ProcessorType {
	return g.processor
}

// Charge sends the charge and classifies the outcome. Network errors and
// timeouts are reported as unavailable: an ambiguous timeout must favor
// fallback over silently losing the charge.
func (g *HTTPGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode charge request: %v", domainerrors.ErrUnknownGateway, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build charge request: %v", domainerrors.ErrUnknownGateway, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Idempotency-Key", req.IdempotencyKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domainerrors.ErrProcessorUnavailable, g.processor, err)
	}
	defer resp.Body.Close()

	var result ChargeResult
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil && resp.StatusCode < 500 {
		return nil, fmt.Errorf("%w: decode response: %v", domainerrors.ErrUnknownGateway, decodeErr)
	}

	if err := classifyChargeResponse(resp.StatusCode, &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", err, g.processor, result.ErrorCode)
	}
	return &result, nil
}

// classifyChargeResponse maps a gateway response onto the error taxonomy
func classifyChargeResponse(statusCode int, result *ChargeResult) error {
	switch {
	case statusCode >= 500 || statusCode == http.StatusRequestTimeout || statusCode == http.StatusTooManyRequests:
		return domainerrors.ErrProcessorUnavailable
	case statusCode == http.StatusPaymentRequired || result.Status == "declined":
		return domainerrors.ErrProcessorDeclined
	case statusCode >= 200 && statusCode < 300 && result.Status != "failed":
		return nil
	}
	return domainerrors.ErrUnknownGateway
}

// HTTPCollector pulls commission/rent through the collection provider's API
type HTTPCollector struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPCollector creates an ACH/card collector client
func NewHTTPCollector(baseURL, apiKey string, timeout time.Duration) *HTTPCollector {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &HTTPCollector{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Collect issues a single collection attempt
func (c *HTTPCollector) Collect(ctx context.Context, req *CollectRequest) (*CollectResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%w: encode collect request: %v", domainerrors.ErrCollectionFailed, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/collections", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build collect request: %v", domainerrors.ErrCollectionFailed, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrCollectionFailed, err)
	}
	defer resp.Body.Close()

	var result CollectResult
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domainerrors.ErrCollectionFailed, decodeErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || result.Status == "failed" {
		return nil, fmt.Errorf("%w: %s", domainerrors.ErrCollectionFailed, result.ErrorCode)
	}
	return &result, nil
}

var _ Gateway = (*HTTPGateway)(nil)
var _ Collector = (*HTTPCollector)(nil)
