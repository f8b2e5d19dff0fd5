package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/interfaces/http/middleware"
)

type configServiceStub struct {
	getFn     func(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error)
	updateFn  func(ctx context.Context, barberID uuid.UUID, input *entities.UpdateHybridConfigInput, changedBy string) (*entities.HybridPaymentConfig, error)
	historyFn func(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error)
}

func (s *configServiceStub) GetConfig(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error) {
	if s.getFn != nil {
		return s.getFn(ctx, barberID)
	}
	return nil, errors.New("unused")
}
func (s *configServiceStub) UpdateConfig(ctx context.Context, barberID uuid.UUID, input *entities.UpdateHybridConfigInput, changedBy string) (*entities.HybridPaymentConfig, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, barberID, input, changedBy)
	}
	return nil, errors.New("unused")
}
func (s *configServiceStub) GetHistory(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, barberID, limit, offset)
	}
	return nil, 0, nil
}

func configRouterFor(t *testing.T, svc ConfigService, barberID uuid.UUID, email string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewPaymentConfigHandler(svc)

	r := gin.New()
	withBarber := func(c *gin.Context) {
		c.Set(middleware.BarberIDKey, barberID)
		if email != "" {
			c.Set(middleware.BarberEmailKey, email)
		}
		c.Next()
	}
	r.GET("/payment-config", withBarber, h.GetConfig)
	r.PUT("/payment-config", withBarber, h.UpdateConfig)
	r.GET("/payment-config/history", withBarber, h.GetHistory)
	return r
}

func TestPaymentConfigHandler_GetConfig(t *testing.T) {
	barberID := uuid.New()
	svc := &configServiceStub{
		getFn: func(_ context.Context, gotBarber uuid.UUID) (*entities.HybridPaymentConfig, error) {
			require.Equal(t, barberID, gotBarber)
			return entities.DefaultHybridPaymentConfig(barberID), nil
		},
	}
	r := configRouterFor(t, svc, barberID, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment-config", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"mode":"CENTRALIZED"`)
}

func TestPaymentConfigHandler_UpdateConfig(t *testing.T) {
	barberID := uuid.New()
	svc := &configServiceStub{
		updateFn: func(_ context.Context, _ uuid.UUID, input *entities.UpdateHybridConfigInput, changedBy string) (*entities.HybridPaymentConfig, error) {
			require.Equal(t, entities.PaymentModeHybrid, input.Mode)
			require.Len(t, input.Rules, 1)
			require.Equal(t, "owner@shop.test", changedBy)
			return &entities.HybridPaymentConfig{
				ID:       uuid.New(),
				BarberID: barberID,
				Mode:     input.Mode,
				Rules:    input.Rules,
				IsActive: true,
			}, nil
		},
	}
	r := configRouterFor(t, svc, barberID, "owner@shop.test")

	body := `{
		"mode": "HYBRID",
		"rules": [{"kind":"AMOUNT_THRESHOLD","minAmountCents":5000,"target":"SQUARE"}],
		"fallbackToPlatform": true
	}`
	req := httptest.NewRequest(http.MethodPut, "/payment-config", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"mode":"HYBRID"`)
}

func TestPaymentConfigHandler_UpdateConfigValidationError(t *testing.T) {
	svc := &configServiceStub{
		updateFn: func(context.Context, uuid.UUID, *entities.UpdateHybridConfigInput, string) (*entities.HybridPaymentConfig, error) {
			return nil, domainerrors.ErrInvalidRate
		},
	}
	r := configRouterFor(t, svc, uuid.New(), "")

	req := httptest.NewRequest(http.MethodPut, "/payment-config",
		strings.NewReader(`{"mode":"CENTRALIZED","commissionRateBps":99999}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentConfigHandler_GetHistory(t *testing.T) {
	barberID := uuid.New()
	svc := &configServiceStub{
		historyFn: func(_ context.Context, _ uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error) {
			require.Equal(t, 20, limit)
			require.Equal(t, 0, offset)
			return []*entities.PaymentModeHistory{
				{
					ID:           uuid.New(),
					BarberID:     barberID,
					ConfigID:     uuid.New(),
					PreviousMode: null.StringFrom("CENTRALIZED"),
					NewMode:      entities.PaymentModeHybrid,
				},
			}, 1, nil
		},
	}
	r := configRouterFor(t, svc, barberID, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment-config/history", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"newMode":"HYBRID"`)
}
