package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/interfaces/http/middleware"
	"booked-barber.backend/internal/interfaces/http/response"
)

type ConfigService interface {
	GetConfig(ctx context.Context, barberID uuid.UUID) (*entities.HybridPaymentConfig, error)
	UpdateConfig(ctx context.Context, barberID uuid.UUID, input *entities.UpdateHybridConfigInput, changedBy string) (*entities.HybridPaymentConfig, error)
	GetHistory(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PaymentModeHistory, int, error)
}

// PaymentConfigHandler handles payment routing configuration endpoints
type PaymentConfigHandler struct {
	configUsecase ConfigService
}

// NewPaymentConfigHandler creates a new payment config handler
func NewPaymentConfigHandler(configUsecase ConfigService) *PaymentConfigHandler {
	return &PaymentConfigHandler{configUsecase: configUsecase}
}

// GetConfig returns the barber's active config
// GET /api/v1/payment-config
func (h *PaymentConfigHandler) GetConfig(c *gin.Context) {
	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	cfg, err := h.configUsecase.GetConfig(c.Request.Context(), barberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

// UpdateConfig replaces the barber's active config
// PUT /api/v1/payment-config
func (h *PaymentConfigHandler) UpdateConfig(c *gin.Context) {
	var input entities.UpdateHybridConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}
	changedBy, _ := middleware.GetBarberEmail(c)

	cfg, err := h.configUsecase.UpdateConfig(c.Request.Context(), barberID, &input, changedBy)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidInput) ||
			errors.Is(err, domainerrors.ErrInvalidRate) ||
			errors.Is(err, domainerrors.ErrUnknownProcessor) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"config": cfg})
}

// GetHistory lists the barber's config change history
// GET /api/v1/payment-config/history
func (h *PaymentConfigHandler) GetHistory(c *gin.Context) {
	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	records, total, err := h.configUsecase.GetHistory(c.Request.Context(), barberID, limit, (page-1)*limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	response.Success(c, http.StatusOK, gin.H{
		"history": records,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}
