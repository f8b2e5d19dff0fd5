package gateways

import (
	"fmt"
	"sync"
	"time"

	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
)

// GatewayConfig holds connection settings for one processor's API
type GatewayConfig struct {
	Processor entities.ProcessorType
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
}

// Factory manages gateway clients per processor type
type Factory struct {
	configs  map[entities.ProcessorType]GatewayConfig
	gateways map[entities.ProcessorType]Gateway
	mu       sync.RWMutex
}

// NewFactory creates a gateway factory from processor configs
func NewFactory(configs []GatewayConfig) *Factory {
	f := &Factory{
		configs:  make(map[entities.ProcessorType]GatewayConfig),
		gateways: make(map[entities.ProcessorType]Gateway),
	}
	for _, cfg := range configs {
		f.configs[cfg.Processor] = cfg
	}
	return f
}

// Get returns the gateway for a processor, creating and caching it on first use
func (f *Factory) Get(processor entities.ProcessorType) (Gateway, error) {
	f.mu.RLock()
	gw, ok := f.gateways[processor]
	f.mu.RUnlock()
	if ok {
		return gw, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double check
	if gw, ok := f.gateways[processor]; ok {
		return gw, nil
	}

	cfg, ok := f.configs[processor]
	if !ok {
		return nil, fmt.Errorf("%w: no gateway configured for %s", domainerrors.ErrUnknownProcessor, processor)
	}

	gw = NewHTTPGateway(cfg.Processor, cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	f.gateways[processor] = gw
	return gw, nil
}

// Register injects/overrides the cached gateway for a processor.
// Useful for deterministic unit tests.
func (f *Factory) Register(processor entities.ProcessorType, gw Gateway) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gateways[processor] = gw
}
