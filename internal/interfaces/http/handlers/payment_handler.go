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

type PaymentService interface {
	RouteAndCharge(ctx context.Context, barberID uuid.UUID, input *entities.ChargeInput) (*entities.ChargeOutcome, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*entities.ExternalTransaction, error)
	ListTransactions(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.ExternalTransaction, int, error)
}

// PaymentHandler handles charge and ledger endpoints
type PaymentHandler struct {
	router PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(router PaymentService) *PaymentHandler {
	return &PaymentHandler{router: router}
}

// CreateCharge routes and executes a charge
// POST /api/v1/payments/charge
func (h *PaymentHandler) CreateCharge(c *gin.Context) {
	var input entities.ChargeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	outcome, err := h.router.RouteAndCharge(c.Request.Context(), barberID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrInvalidAmount),
			errors.Is(err, domainerrors.ErrInvalidInput),
			errors.Is(err, domainerrors.ErrUnknownProcessor):
			response.Error(c, domainerrors.BadRequest(err.Error()))
		case errors.Is(err, domainerrors.ErrProcessorDeclined),
			errors.Is(err, domainerrors.ErrNoHealthyProcessor),
			errors.Is(err, domainerrors.ErrProcessorUnavailable),
			errors.Is(err, domainerrors.ErrUnknownGateway):
			response.Error(c, domainerrors.PaymentFailed(err))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, outcome)
}

// GetTransaction gets a ledger entry by ID
// GET /api/v1/payments/transactions/:id
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid transaction ID"))
		return
	}

	tx, err := h.router.GetTransaction(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Transaction not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": tx})
}

// ListTransactions lists the barber's ledger entries
// GET /api/v1/payments/transactions
func (h *PaymentHandler) ListTransactions(c *gin.Context) {
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

	txs, total, err := h.router.ListTransactions(c.Request.Context(), barberID, limit, (page-1)*limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	response.Success(c, http.StatusOK, gin.H{
		"transactions": txs,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}
