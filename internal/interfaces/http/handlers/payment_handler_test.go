package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/interfaces/http/middleware"
)

type paymentServiceStub struct {
	chargeFn func(ctx context.Context, barberID uuid.UUID, input *entities.ChargeInput) (*entities.ChargeOutcome, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error)
	listFn   func(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error)
}

func (s *paymentServiceStub) RouteAndCharge(ctx context.Context, barberID uuid.UUID, input *entities.ChargeInput) (*entities.ChargeOutcome, error) {
	if s.chargeFn != nil {
		return s.chargeFn(ctx, barberID, input)
	}
	return nil, errors.New("unused")
}
func (s *paymentServiceStub) GetTransaction(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, domainerrors.ErrNotFound
}
func (s *paymentServiceStub) ListTransactions(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error) {
	if s.listFn != nil {
		return s.listFn(ctx, barberID, limit, offset)
	}
	return nil, 0, nil
}

func paymentRouterFor(t *testing.T, svc PaymentService, barberID uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewPaymentHandler(svc)

	r := gin.New()
	withBarber := func(c *gin.Context) {
		c.Set(middleware.BarberIDKey, barberID)
		c.Next()
	}
	r.POST("/payments/charge", withBarber, h.CreateCharge)
	r.GET("/payments/transactions", withBarber, h.ListTransactions)
	r.GET("/payments/transactions/:id", withBarber, h.GetTransaction)
	return r
}

func TestPaymentHandler_CreateCharge(t *testing.T) {
	barberID := uuid.New()
	svc := &paymentServiceStub{
		chargeFn: func(_ context.Context, gotBarber uuid.UUID, input *entities.ChargeInput) (*entities.ChargeOutcome, error) {
			require.Equal(t, barberID, gotBarber)
			require.Equal(t, int64(4000), input.AmountCents)
			return &entities.ChargeOutcome{
				TransactionID: uuid.New(),
				ProcessorUsed: entities.ProcessorSquare,
				Status:        entities.TransactionStatusSettled,
				AmountCents:   4000,
			}, nil
		},
	}
	r := paymentRouterFor(t, svc, barberID)

	req := httptest.NewRequest(http.MethodPost, "/payments/charge",
		strings.NewReader(`{"amountCents":4000,"serviceType":"haircut","paymentMethodToken":"tok_x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"processorUsed":"SQUARE"`)
}

func TestPaymentHandler_CreateChargeErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"invalid amount", domainerrors.ErrInvalidAmount, http.StatusBadRequest},
		{"unknown processor", domainerrors.ErrUnknownProcessor, http.StatusBadRequest},
		{"declined", fmt.Errorf("%w: card_declined", domainerrors.ErrProcessorDeclined), http.StatusPaymentRequired},
		{"no healthy processor", domainerrors.ErrNoHealthyProcessor, http.StatusServiceUnavailable},
		{"unavailable", domainerrors.ErrProcessorUnavailable, http.StatusServiceUnavailable},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &paymentServiceStub{
				chargeFn: func(context.Context, uuid.UUID, *entities.ChargeInput) (*entities.ChargeOutcome, error) {
					return nil, tc.err
				},
			}
			r := paymentRouterFor(t, svc, uuid.New())

			req := httptest.NewRequest(http.MethodPost, "/payments/charge",
				strings.NewReader(`{"amountCents":4000,"paymentMethodToken":"tok_x"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestPaymentHandler_CreateChargeBadBody(t *testing.T) {
	r := paymentRouterFor(t, &paymentServiceStub{}, uuid.New())

	req := httptest.NewRequest(http.MethodPost, "/payments/charge", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_GetTransaction(t *testing.T) {
	txID := uuid.New()
	svc := &paymentServiceStub{
		getFn: func(_ context.Context, id uuid.UUID) (*entities.ExternalTransaction, error) {
			require.Equal(t, txID, id)
			return &entities.ExternalTransaction{ID: txID, Status: entities.TransactionStatusSettled}, nil
		},
	}
	r := paymentRouterFor(t, svc, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/transactions/"+txID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), txID.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/transactions/not-a-uuid", nil))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_GetTransactionNotFound(t *testing.T) {
	r := paymentRouterFor(t, &paymentServiceStub{}, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/transactions/"+uuid.NewString(), nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_ListTransactionsPagination(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &paymentServiceStub{
		listFn: func(_ context.Context, _ uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error) {
			gotLimit, gotOffset = limit, offset
			return []*entities.ExternalTransaction{}, 45, nil
		},
	}
	r := paymentRouterFor(t, svc, uuid.New())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/transactions?page=3&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 10, gotLimit)
	require.Equal(t, 20, gotOffset)
	require.Contains(t, w.Body.String(), `"totalPages":5`)

	// Out-of-range limit falls back to the default
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payments/transactions?limit=1000", nil))
	require.Equal(t, 20, gotLimit)
}
