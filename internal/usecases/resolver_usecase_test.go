package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/usecases"
)

func int64Ptr(v int64) *int64 { return &v }

func newResolver(healthRepo *MockProcessorHealthRepository) *usecases.PaymentModeResolver {
	return usecases.NewPaymentModeResolver(usecases.NewHealthTracker(healthRepo))
}

func healthyRepo(barberID uuid.UUID) *MockProcessorHealthRepository {
	repo := new(MockProcessorHealthRepository)
	repo.On("Get", mock.Anything, barberID, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	return repo
}

func unhealthyRepoFor(barberID uuid.UUID, processor entities.ProcessorType) *MockProcessorHealthRepository {
	repo := new(MockProcessorHealthRepository)
	repo.On("Get", mock.Anything, barberID, processor).Return(&entities.ProcessorHealth{
		BarberID:  barberID,
		Processor: processor,
		Window:    "FFF",
		Healthy:   false,
	}, nil)
	repo.On("Get", mock.Anything, barberID, mock.Anything).Return(nil, domainerrors.ErrNotFound)
	return repo
}

func noon() time.Time {
	return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
}

func TestResolve_CentralizedAlwaysPlatform(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeCentralized,
		DefaultProcessor: entities.ProcessorSquare,
	}

	r := newResolver(new(MockProcessorHealthRepository))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPlatform, got)
}

func TestResolve_DecentralizedUsesDefault(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeDecentralized,
		DefaultProcessor: entities.ProcessorSquare,
	}

	r := newResolver(healthyRepo(barberID))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorSquare, got)
}

func TestResolve_DecentralizedUnhealthyFallsBack(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:           barberID,
		Mode:               entities.PaymentModeDecentralized,
		DefaultProcessor:   entities.ProcessorSquare,
		FallbackToPlatform: true,
	}

	r := newResolver(unhealthyRepoFor(barberID, entities.ProcessorSquare))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPlatform, got)
}

func TestResolve_DecentralizedUnhealthyNoFallbackRefuses(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeDecentralized,
		DefaultProcessor: entities.ProcessorSquare,
	}

	r := newResolver(unhealthyRepoFor(barberID, entities.ProcessorSquare))
	_, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.ErrorIs(t, err, domainerrors.ErrNoHealthyProcessor)
}

func TestResolve_HybridAmountRule(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindAmountThreshold, MinAmountCents: int64Ptr(10000), Target: entities.ProcessorStripe},
		},
	}

	r := newResolver(healthyRepo(barberID))

	// Above threshold: rule target
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 15000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorStripe, got)

	// Below threshold: default
	got, err = r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPlatform, got)

	// Inclusive bound
	got, err = r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 10000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorStripe, got)
}

func TestResolve_AmountRuleBeatsOtherKinds(t *testing.T) {
	barberID := uuid.New()
	// Amount rule listed last but wins by kind precedence
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindServiceType, ServiceType: "haircut", Target: entities.ProcessorPayPal},
			{Kind: entities.RuleKindTimeWindow, StartMinute: 0, EndMinute: 1439, Target: entities.ProcessorClover},
			{Kind: entities.RuleKindAmountThreshold, MinAmountCents: int64Ptr(1), Target: entities.ProcessorStripe},
		},
	}

	r := newResolver(healthyRepo(barberID))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{
		AmountCents: 5000, ServiceType: "haircut", At: noon(),
	})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorStripe, got)
}

func TestResolve_ListOrderBreaksTiesWithinKind(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindAmountThreshold, MinAmountCents: int64Ptr(1000), Target: entities.ProcessorSquare},
			{Kind: entities.RuleKindAmountThreshold, MinAmountCents: int64Ptr(1000), Target: entities.ProcessorStripe},
		},
	}

	r := newResolver(healthyRepo(barberID))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorSquare, got)
}

func TestResolve_TimeWindowRule(t *testing.T) {
	barberID := uuid.New()
	// 9:00 to 17:00
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindTimeWindow, StartMinute: 540, EndMinute: 1020, Target: entities.ProcessorClover},
		},
	}

	r := newResolver(healthyRepo(barberID))

	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorClover, got)

	evening := time.Date(2026, 8, 25, 20, 30, 0, 0, time.UTC)
	got, err = r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: evening})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPlatform, got)
}

func TestResolve_TimeWindowWrapsMidnight(t *testing.T) {
	barberID := uuid.New()
	// 22:00 to 02:00
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindTimeWindow, StartMinute: 1320, EndMinute: 120, Target: entities.ProcessorStripe},
		},
	}

	r := newResolver(healthyRepo(barberID))

	lateNight := time.Date(2026, 8, 25, 23, 30, 0, 0, time.UTC)
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: lateNight})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorStripe, got)

	earlyMorning := time.Date(2026, 8, 26, 1, 0, 0, 0, time.UTC)
	got, err = r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: earlyMorning})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorStripe, got)

	got, err = r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPlatform, got)
}

func TestResolve_ServiceTypeRuleCaseInsensitive(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindServiceType, ServiceType: "Beard-Trim", Target: entities.ProcessorPayPal},
		},
	}

	r := newResolver(healthyRepo(barberID))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{
		AmountCents: 2500, ServiceType: "beard-trim", At: noon(),
	})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPayPal, got)
}

func TestResolve_HybridMatchedRuleUnhealthyTarget(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:           barberID,
		Mode:               entities.PaymentModeHybrid,
		DefaultProcessor:   entities.ProcessorPlatform,
		FallbackToPlatform: true,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindAmountThreshold, MinAmountCents: int64Ptr(1), Target: entities.ProcessorStripe},
		},
	}

	r := newResolver(unhealthyRepoFor(barberID, entities.ProcessorStripe))
	got, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 5000, At: noon()})
	assert.NoError(t, err)
	assert.Equal(t, entities.ProcessorPlatform, got)
}

func TestResolve_Deterministic(t *testing.T) {
	barberID := uuid.New()
	cfg := &entities.HybridPaymentConfig{
		BarberID:         barberID,
		Mode:             entities.PaymentModeHybrid,
		DefaultProcessor: entities.ProcessorPlatform,
		Rules: []entities.RoutingRule{
			{Kind: entities.RuleKindAmountThreshold, MinAmountCents: int64Ptr(10000), Target: entities.ProcessorStripe},
			{Kind: entities.RuleKindServiceType, ServiceType: "color", Target: entities.ProcessorSquare},
		},
	}

	r := newResolver(healthyRepo(barberID))
	rc := usecases.ResolveContext{AmountCents: 15000, ServiceType: "color", At: noon()}

	first, err := r.Resolve(context.Background(), cfg, rc)
	assert.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(context.Background(), cfg, rc)
		assert.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestResolve_UnknownModeRejected(t *testing.T) {
	cfg := &entities.HybridPaymentConfig{
		BarberID: uuid.New(),
		Mode:     entities.PaymentMode("PEER_TO_PEER"),
	}

	r := newResolver(new(MockProcessorHealthRepository))
	_, err := r.Resolve(context.Background(), cfg, usecases.ResolveContext{AmountCents: 100, At: noon()})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
