package fleet

import (
	"errors"
	"net/http"
	"strconv"

	"ecowaste/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterAdminRoutes expects an admin-only group mounted at /api/admin.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	workers := admin.Group("/workers")
	{
		workers.POST("", h.CreateWorker)
		workers.GET("", h.ListWorkers)
		workers.PUT("/:id", h.UpdateWorker)
		workers.DELETE("/:id", h.DeleteWorker)
	}
	vehicles := admin.Group("/vehicles")
	{
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.PUT("/:id", h.UpdateVehicle)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

// @Router	/admin/workers [POST]
func (h *Handler) CreateWorker(c *gin.Context) {
	var req CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	w, err := h.service.CreateWorker(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, w)
}

func (h *Handler) ListWorkers(c *gin.Context) {
	list, err := h.service.ListWorkers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Router	/admin/workers/{id} [PUT]
func (h *Handler) UpdateWorker(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	w, err := h.service.UpdateWorker(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, w)
}

func (h *Handler) DeleteWorker(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteWorker(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Worker deleted"})
}

// @Router	/admin/vehicles [POST]
func (h *Handler) CreateVehicle(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	v, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) ListVehicles(c *gin.Context) {
	list, err := h.service.ListVehicles(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Router	/admin/vehicles/{id} [PUT]
func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	v, err := h.service.UpdateVehicle(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, v)
}

func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteVehicle(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrWorkerNotFound), errors.Is(err, ErrVehicleNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrDuplicatePhone), errors.Is(err, ErrDuplicatePlate):
		response.Error(c, http.StatusBadRequest, "DUPLICATE", err.Error())
	case errors.Is(err, ErrInvalidJoinDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Fleet request failed")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
