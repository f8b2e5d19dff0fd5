package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/domain/repositories"
	"booked-barber.backend/internal/interfaces/http/response"
	"booked-barber.backend/pkg/utils"
)

type FeeService interface {
	CalculateFee(ctx context.Context, amountCents int64, processor entities.ProcessorType, instantPayout bool) (*entities.FeeBreakdown, error)
}

// FeeHandler handles fee quotes and the admin fee override table
type FeeHandler struct {
	feeUsecase    FeeService
	feeConfigRepo repositories.FeeConfigRepository
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeUsecase FeeService, feeConfigRepo repositories.FeeConfigRepository) *FeeHandler {
	return &FeeHandler{feeUsecase: feeUsecase, feeConfigRepo: feeConfigRepo}
}

// QuoteFee computes the fee breakdown for a prospective charge
// POST /api/v1/fees/quote
func (h *FeeHandler) QuoteFee(c *gin.Context) {
	var input entities.FeeQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	breakdown, err := h.feeUsecase.CalculateFee(c.Request.Context(), input.AmountCents, input.Processor, input.InstantPayout)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidAmount) || errors.Is(err, domainerrors.ErrUnknownProcessor) {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"amountCents":        input.AmountCents,
		"processor":          input.Processor,
		"instantPayout":      input.InstantPayout,
		"processingFeeCents": breakdown.ProcessingFeeCents,
		"netAmountCents":     breakdown.NetAmountCents,
	})
}

// ListFeeConfigs lists fee overrides
// GET /api/v1/admin/fee-configs
func (h *FeeHandler) ListFeeConfigs(c *gin.Context) {
	cfgs, err := h.feeConfigRepo.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"feeConfigs": cfgs})
}

type feeConfigInput struct {
	Processor        entities.ProcessorType `json:"processor" binding:"required"`
	PercentBps       int64                  `json:"percentBps"`
	FixedFeeCents    int64                  `json:"fixedFeeCents"`
	InstantPayoutBps int64                  `json:"instantPayoutBps"`
	IsActive         bool                   `json:"isActive"`
}

// CreateFeeConfig creates a fee override
// POST /api/v1/admin/fee-configs
func (h *FeeHandler) CreateFeeConfig(c *gin.Context) {
	var input feeConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	if !input.Processor.Valid() {
		response.Error(c, domainerrors.BadRequest("Unknown processor"))
		return
	}
	if input.PercentBps < 0 || input.PercentBps > 10000 || input.FixedFeeCents < 0 || input.InstantPayoutBps < 0 {
		response.Error(c, domainerrors.BadRequest("Fee rates out of range"))
		return
	}

	cfg := &entities.ProcessorFeeConfig{
		ID:               utils.GenerateUUIDv7(),
		Processor:        input.Processor,
		PercentBps:       input.PercentBps,
		FixedFeeCents:    input.FixedFeeCents,
		InstantPayoutBps: input.InstantPayoutBps,
		IsActive:         input.IsActive,
	}
	if err := h.feeConfigRepo.Create(c.Request.Context(), cfg); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"feeConfig": cfg})
}
