package complaint

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

func (h *Handler) RegisterUserRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/complaints")
	{
		g.POST("", h.Create)
		g.GET("/my-complaints", h.ListMine)
	}
}

func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	g := admin.Group("/complaints")
	{
		g.GET("", h.ListAll)
		g.PUT("/:id/status", h.UpdateStatus)
	}
}

// Create godoc
// @Summary	File complaint
// @Tags	Complaints
// @Security	BearerAuth
// @Param	request	body	CreateComplaintRequest	true	"complaint"
// @Success	201	{object}	map[string]interface{}
// @Router	/complaints [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	complaint, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, complaint)
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Router	/admin/complaints [GET]
func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.service.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

// @Router	/admin/complaints/{id}/status [PUT]
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid complaint id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	complaint, err := h.service.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, complaint)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrComplaintNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Complaint not found")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrStatusConflict):
		response.Error(c, http.StatusConflict, "STATUS_CONFLICT", err.Error())
	case errors.Is(err, ErrInvalidType), errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrDescriptionTooLong), errors.Is(err, ErrDescriptionRequired):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Complaint request failed")
	}
}
