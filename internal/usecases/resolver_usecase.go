package usecases

import (
	"context"
	"strings"
	"time"

	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
)

// ResolveContext carries the per-transaction facts routing rules match on
type ResolveContext struct {
	AmountCents int64
	ServiceType string
	At          time.Time
}

// ruleKindPrecedence orders rule evaluation: amount thresholds beat time
// windows beat service types, regardless of list order. Within a kind the
// first matching rule in list order wins.
var ruleKindPrecedence = []entities.RuleKind{
	entities.RuleKindAmountThreshold,
	entities.RuleKindTimeWindow,
	entities.RuleKindServiceType,
}

// PaymentModeResolver turns a barber's config plus transaction context into
// the processor a charge should go to. Resolution is pure given the config,
// context and health state: same inputs, same answer.
type PaymentModeResolver struct {
	health *HealthTracker
}

// NewPaymentModeResolver creates a new resolver
func NewPaymentModeResolver(health *HealthTracker) *PaymentModeResolver {
	return &PaymentModeResolver{health: health}
}

// Resolve selects the target processor for a charge
func (r *PaymentModeResolver) Resolve(ctx context.Context, cfg *entities.HybridPaymentConfig, rc ResolveContext) (entities.ProcessorType, error) {
	switch cfg.Mode {
	case entities.PaymentModeCentralized:
		return entities.ProcessorPlatform, nil
	case entities.PaymentModeDecentralized:
		return r.selectWithFallback(ctx, cfg, cfg.DefaultProcessor)
	case entities.PaymentModeHybrid:
		if target, ok := matchRule(cfg.Rules, rc); ok {
			return r.selectWithFallback(ctx, cfg, target)
		}
		return r.selectWithFallback(ctx, cfg, cfg.DefaultProcessor)
	}
	return "", domainerrors.ErrInvalidInput
}

// selectWithFallback applies the health check to a desired target. An
// unhealthy external target degrades to the platform when the config allows
// it; otherwise the charge is refused.
func (r *PaymentModeResolver) selectWithFallback(ctx context.Context, cfg *entities.HybridPaymentConfig, target entities.ProcessorType) (entities.ProcessorType, error) {
	if !target.Valid() {
		return "", domainerrors.ErrUnknownProcessor
	}
	if target == entities.ProcessorPlatform {
		return entities.ProcessorPlatform, nil
	}
	if r.health.IsHealthy(ctx, cfg.BarberID, target) {
		return target, nil
	}
	if cfg.FallbackToPlatform {
		return entities.ProcessorPlatform, nil
	}
	return "", domainerrors.ErrNoHealthyProcessor
}

// matchRule finds the winning rule target, honoring kind precedence and then
// list order within a kind
func matchRule(rules []entities.RoutingRule, rc ResolveContext) (entities.ProcessorType, bool) {
	for _, kind := range ruleKindPrecedence {
		for _, rule := range rules {
			if rule.Kind != kind || !rule.Target.Valid() {
				continue
			}
			if ruleMatches(rule, rc) {
				return rule.Target, true
			}
		}
	}
	return "", false
}

func ruleMatches(rule entities.RoutingRule, rc ResolveContext) bool {
	switch rule.Kind {
	case entities.RuleKindAmountThreshold:
		if rule.MinAmountCents == nil && rule.MaxAmountCents == nil {
			return false
		}
		if rule.MinAmountCents != nil && rc.AmountCents < *rule.MinAmountCents {
			return false
		}
		if rule.MaxAmountCents != nil && rc.AmountCents > *rule.MaxAmountCents {
			return false
		}
		return true
	case entities.RuleKindTimeWindow:
		minute := rc.At.Hour()*60 + rc.At.Minute()
		if rule.StartMinute == rule.EndMinute {
			return false
		}
		if rule.StartMinute < rule.EndMinute {
			return minute >= rule.StartMinute && minute < rule.EndMinute
		}
		// Window wraps past midnight
		return minute >= rule.StartMinute || minute < rule.EndMinute
	case entities.RuleKindServiceType:
		return rule.ServiceType != "" && strings.EqualFold(rule.ServiceType, rc.ServiceType)
	}
	return false
}
