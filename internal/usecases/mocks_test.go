package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"booked-barber.backend/internal/domain/entities"
	"booked-barber.backend/internal/infrastructure/gateways"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock HybridConfigRepository
type MockHybridConfigRepository struct {
	mock.Mock
}

func (m *MockHybridConfigRepository) GetActiveByBarber(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.HybridPaymentConfig), args.Error(1)
}

func (m *MockHybridConfigRepository) Save(ctx context.Context, cfg *entities.HybridPaymentConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockHybridConfigRepository) ListRentConfigs(ctx context.Context) ([]*entities.HybridPaymentConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.HybridPaymentConfig), args.Error(1)
}

// Mock PaymentModeHistoryRepository
type MockPaymentModeHistoryRepository struct {
	mock.Mock
}

func (m *MockPaymentModeHistoryRepository) Create(ctx context.Context, h *entities.PaymentModeHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockPaymentModeHistoryRepository) ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error) {
	args := m.Called(ctx, barberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.PaymentModeHistory), args.Int(1), args.Error(2)
}

// Mock ProcessorConnectionRepository
type MockProcessorConnectionRepository struct {
	mock.Mock
}

func (m *MockProcessorConnectionRepository) Create(ctx context.Context, conn *entities.ProcessorConnection) error {
	args := m.Called(ctx, conn)
	return args.Error(0)
}

func (m *MockProcessorConnectionRepository) GetActive(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) (*entities.ProcessorConnection, error) {
	args := m.Called(ctx, barberID, processor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProcessorConnection), args.Error(1)
}

func (m *MockProcessorConnectionRepository) ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorConnection, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProcessorConnection), args.Error(1)
}

func (m *MockProcessorConnectionRepository) Delete(ctx context.Context, barberID, id uuid.UUID) error {
	args := m.Called(ctx, barberID, id)
	return args.Error(0)
}

// Mock ProcessorHealthRepository
type MockProcessorHealthRepository struct {
	mock.Mock
}

func (m *MockProcessorHealthRepository) Get(ctx context.Context, barberID uuid.UUID, processor entities.ProcessorType) (*entities.ProcessorHealth, error) {
	args := m.Called(ctx, barberID, processor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProcessorHealth), args.Error(1)
}

func (m *MockProcessorHealthRepository) Upsert(ctx context.Context, health *entities.ProcessorHealth) error {
	args := m.Called(ctx, health)
	return args.Error(0)
}

func (m *MockProcessorHealthRepository) ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorHealth, error) {
	args := m.Called(ctx, barberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProcessorHealth), args.Error(1)
}

// Mock ExternalTransactionRepository
type MockExternalTransactionRepository struct {
	mock.Mock
}

func (m *MockExternalTransactionRepository) Create(ctx context.Context, tx *entities.ExternalTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockExternalTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalTransaction), args.Error(1)
}

func (m *MockExternalTransactionRepository) ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error) {
	args := m.Called(ctx, barberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.ExternalTransaction), args.Int(1), args.Error(2)
}

func (m *MockExternalTransactionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TransactionStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockExternalTransactionRepository) ListUncollectedBalances(ctx context.Context, minCents int64) ([]*entities.BarberBalance, error) {
	args := m.Called(ctx, minCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BarberBalance), args.Error(1)
}

func (m *MockExternalTransactionRepository) ClaimSettled(ctx context.Context, barberID, collectionID uuid.UUID) (int, int64, error) {
	args := m.Called(ctx, barberID, collectionID)
	return args.Int(0), args.Get(1).(int64), args.Error(2)
}

func (m *MockExternalTransactionRepository) MarkCollected(ctx context.Context, collectionID uuid.UUID) error {
	args := m.Called(ctx, collectionID)
	return args.Error(0)
}

func (m *MockExternalTransactionRepository) ReleaseClaim(ctx context.Context, collectionID uuid.UUID) error {
	args := m.Called(ctx, collectionID)
	return args.Error(0)
}

// Mock PlatformCollectionRepository
type MockPlatformCollectionRepository struct {
	mock.Mock
}

func (m *MockPlatformCollectionRepository) Create(ctx context.Context, c *entities.PlatformCollection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPlatformCollectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.PlatformCollection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlatformCollection), args.Error(1)
}

func (m *MockPlatformCollectionRepository) ListByBarber(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PlatformCollection, int, error) {
	args := m.Called(ctx, barberID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.PlatformCollection), args.Int(1), args.Error(2)
}

func (m *MockPlatformCollectionRepository) Update(ctx context.Context, c *entities.PlatformCollection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockPlatformCollectionRepository) ListDueRetries(ctx context.Context, now time.Time, limit int) ([]*entities.PlatformCollection, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlatformCollection), args.Error(1)
}

func (m *MockPlatformCollectionRepository) ExistsForPeriod(ctx context.Context, barberID uuid.UUID, ctype entities.CollectionType, periodKey string) (bool, error) {
	args := m.Called(ctx, barberID, ctype, periodKey)
	return args.Bool(0), args.Error(1)
}

// Mock FeeConfigRepository
type MockFeeConfigRepository struct {
	mock.Mock
}

func (m *MockFeeConfigRepository) GetByProcessor(ctx context.Context, processor entities.ProcessorType) (*entities.ProcessorFeeConfig, error) {
	args := m.Called(ctx, processor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProcessorFeeConfig), args.Error(1)
}

func (m *MockFeeConfigRepository) List(ctx context.Context) ([]*entities.ProcessorFeeConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ProcessorFeeConfig), args.Error(1)
}

func (m *MockFeeConfigRepository) Create(ctx context.Context, cfg *entities.ProcessorFeeConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockFeeConfigRepository) Update(ctx context.Context, cfg *entities.ProcessorFeeConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *MockFeeConfigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeClock returns a fixed instant
type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

// fakeGateway scripts gateway answers per processor
type fakeGateway struct {
	processor entities.ProcessorType
	result    *gateways.ChargeResult
	err       error
	calls     int
}

func (g *fakeGateway) Name() entities.ProcessorType { return g.processor }

func (g *fakeGateway) Charge(ctx context.Context, req *gateways.ChargeRequest) (*gateways.ChargeResult, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// fakeGatewayProvider hands out scripted gateways
type fakeGatewayProvider struct {
	byProcessor map[entities.ProcessorType]*fakeGateway
	err         error
}

func (p *fakeGatewayProvider) Get(processor entities.ProcessorType) (gateways.Gateway, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.byProcessor[processor], nil
}

// fakeCollector scripts ACH/card collection answers; errs are consumed in
// order, then ok is returned
type fakeCollector struct {
	errs     []error
	requests []*gateways.CollectRequest
}

func (c *fakeCollector) Collect(ctx context.Context, req *gateways.CollectRequest) (*gateways.CollectResult, error) {
	c.requests = append(c.requests, req)
	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &gateways.CollectResult{Status: "collected", CollectionID: "col_ok"}, nil
}

// fakeAlerter records exhausted collections
type fakeAlerter struct {
	exhausted []*entities.PlatformCollection
}

func (a *fakeAlerter) CollectionExhausted(ctx context.Context, c *entities.PlatformCollection) {
	a.exhausted = append(a.exhausted, c)
}
