package pickup

import (
	"errors"
	"net/http"
	"strconv"

	"ecowaste/internal/domain"
	"ecowaste/internal/pkg/response"
	"ecowaste/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterUserRoutes expects an authenticated group mounted at /api.
func (h *Handler) RegisterUserRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/pickups")
	{
		g.POST("", h.Create)
		g.GET("/my-pickups", h.ListMine)
		g.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes expects an admin-only group mounted at /api/admin.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/pickups")
	{
		g.GET("", h.ListAll)
		g.PUT("/:id/assign", h.Assign)
		g.PUT("/:id/status", h.UpdateStatus)
		g.DELETE("/:id", h.Delete)
	}
}

// Create schedules a pickup for the caller.
// @Summary	Schedule pickup
// @Tags	Pickups
// @Security	BearerAuth
// @Param	request	body	CreatePickupRequest	true	"pickup details"
// @Success	201	{object}	map[string]interface{}
// @Router	/pickups [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListMine(c *gin.Context) {
	pickups, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pickups)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	isAdmin := c.GetString("role") == string(domain.RoleAdmin)
	p, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), isAdmin, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// @Router	/admin/pickups [GET]
func (h *Handler) ListAll(c *gin.Context) {
	pickups, err := h.service.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, pickups)
}

// @Router	/admin/pickups/{id}/assign [PUT]
func (h *Handler) Assign(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.Assign(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// @Router	/admin/pickups/{id}/status [PUT]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	p, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Pickup deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPickupNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pickup not found")
	case errors.Is(err, ErrDriverNotFound):
		response.Error(c, http.StatusNotFound, "DRIVER_NOT_FOUND", "Driver not found")
	case errors.Is(err, ErrVehicleNotFound):
		response.Error(c, http.StatusNotFound, "VEHICLE_NOT_FOUND", "Vehicle not found")
	case errors.Is(err, ErrAccountNotFound):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this pickup")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status change not allowed")
	case errors.Is(err, ErrStatusConflict):
		response.Error(c, http.StatusConflict, "STATUS_CONFLICT", "Pickup was updated by someone else, reload and retry")
	case errors.Is(err, ErrInvalidWasteType), errors.Is(err, ErrNegativeQuantity), errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pickup ID")
		return 0, false
	}
	return id, true
}
