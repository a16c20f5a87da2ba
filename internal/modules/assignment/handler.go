package assignment

import (
	"net/http"
	"strconv"

	"homecare/internal/domain"
	"homecare/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/requests/:id/assign", h.AssignBooking)
	rg.PATCH("/requests/:id/cancel", h.CancelBooking)
	rg.PATCH("/shifts/:id/assign", h.AssignShift)
	rg.PATCH("/shifts/:id/cancel", h.CancelShift)
	rg.PATCH("/shifts/:id/time", h.ChangeTime)
	rg.PATCH("/status/:kind/:id", h.ChangeStatus)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
	case ErrInvalidStatus:
		response.Error(c, http.StatusConflict, "INVALID_STATUS", "Operation not allowed in the current status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Operation failed")
	}
}

func (h *Handler) AssignShift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.AssignShift(c.Request.Context(), id, req.HelperID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) AssignBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.AssignBooking(c.Request.Context(), id, req.HelperID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) CancelShift(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.CancelShift(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) CancelBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.CancelBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

func (h *Handler) ChangeTime(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ChangeTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangeShiftTime(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// ChangeStatus is the generic transition endpoint: kind is "request" for a
// booking or "shift" for a single shift.
func (h *Handler) ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return
	}
	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	switch c.Param("kind") {
	case "request":
		err = h.service.ChangeBookingStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
	case "shift":
		err = h.service.ChangeShiftStatus(c.Request.Context(), id, domain.ShiftStatus(req.Status), req.Comment)
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown kind")
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}
