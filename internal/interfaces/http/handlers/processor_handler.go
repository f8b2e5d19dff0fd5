package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/interfaces/http/middleware"
	"booked-barber.backend/internal/interfaces/http/response"
)

type ConnectionService interface {
	Connect(ctx context.Context, barberID uuid.UUID, input *entities.ConnectProcessorInput) (*entities.ProcessorConnection, error)
	List(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorConnection, error)
	Disconnect(ctx context.Context, barberID, id uuid.UUID) error
}

type HealthService interface {
	ListByBarber(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorHealth, error)
}

// ProcessorHandler handles processor connection and health endpoints
type ProcessorHandler struct {
	connectionUsecase ConnectionService
	healthTracker     HealthService
}

// NewProcessorHandler creates a new processor handler
func NewProcessorHandler(connectionUsecase ConnectionService, healthTracker HealthService) *ProcessorHandler {
	return &ProcessorHandler{connectionUsecase: connectionUsecase, healthTracker: healthTracker}
}

// Connect links an external processor account
// POST /api/v1/processors/connect
func (h *ProcessorHandler) Connect(c *gin.Context) {
	var input entities.ConnectProcessorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	conn, err := h.connectionUsecase.Connect(c.Request.Context(), barberID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrUnknownProcessor), errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest(err.Error()))
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, "Processor already connected", err))
		default:
			response.Error(c, err)
		}
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"connection": conn})
}

// List lists the barber's processor connections
// GET /api/v1/processors
func (h *ProcessorHandler) List(c *gin.Context) {
	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	conns, err := h.connectionUsecase.List(c.Request.Context(), barberID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"connections": conns})
}

// Disconnect removes a processor connection
// DELETE /api/v1/processors/:id
func (h *ProcessorHandler) Disconnect(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid connection ID"))
		return
	}

	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	if err := h.connectionUsecase.Disconnect(c.Request.Context(), barberID, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Connection not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Processor disconnected"})
}

// Health lists the barber's processor health windows
// GET /api/v1/processors/health
func (h *ProcessorHandler) Health(c *gin.Context) {
	barberID, ok := middleware.GetBarberID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Not authenticated"))
		return
	}

	rows, err := h.healthTracker.ListByBarber(c.Request.Context(), barberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	type healthView struct {
		Processor entities.ProcessorType `json:"processor"`
		Healthy   bool                   `json:"healthy"`
		Attempts  int                    `json:"attempts"`
		Failures  int                    `json:"failures"`
	}
	views := make([]healthView, 0, len(rows))
	for _, r := range rows {
		views = append(views, healthView{
			Processor: r.Processor,
			Healthy:   r.Healthy,
			Attempts:  r.Attempts(),
			Failures:  r.Failures(),
		})
	}
	response.Success(c, http.StatusOK, gin.H{"health": views})
}
