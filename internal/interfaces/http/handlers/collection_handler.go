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

type CollectionService interface {
	RunCycle(ctx context.Context) (*entities.CollectionCycleReport, error)
	GetCollection(ctx context.Context, id uuid.UUID) (*entities.PlatformCollection, error)
	ListCollections(ctx context.Context, barberID uuid.UUID, limit, offset int) ([]*entities.PlatformCollection, int, error)
}

// CollectionHandler handles collection endpoints
type CollectionHandler struct {
	collectionUsecase CollectionService
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(collectionUsecase CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionUsecase: collectionUsecase}
}

// RunCycle triggers a collection cycle outside the schedule
// POST /api/v1/admin/collections/run
func (h *CollectionHandler) RunCycle(c *gin.Context) {
	report, err := h.collectionUsecase.RunCycle(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}

// GetCollection gets a collection by ID
// GET /api/v1/collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid collection ID"))
		return
	}

	coll, err := h.collectionUsecase.GetCollection(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Collection not found"))
			return
		}
		response.Error(c, err)
		return
	}

	// Barbers only see their own collections
	barberID, ok := middleware.GetBarberID(c)
	role, _ := middleware.GetBarberRole(c)
	if !ok || (coll.BarberID != barberID && role != middleware.RoleAdmin) {
		response.Error(c, domainerrors.Forbidden("Not your collection"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"collection": coll})
}

// ListCollections lists the barber's collections
// GET /api/v1/collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
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

	colls, total, err := h.collectionUsecase.ListCollections(c.Request.Context(), barberID, limit, (page-1)*limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	totalPages := (total + limit - 1) / limit
	response.Success(c, http.StatusOK, gin.H{
		"collections": colls,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": totalPages,
		},
	})
}
