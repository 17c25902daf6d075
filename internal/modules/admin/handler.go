package admin

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

// RegisterRoutes expects an admin-only group mounted at /api/admin.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// users
	admin.GET("/users", h.GetUsers)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)

	// dashboard
	admin.GET("/reports", h.GetReports)
}

// GetUsers lists customer accounts.
// @Summary	List users
// @Tags	Admin
// @Security	BearerAuth
// @Success	200	{object}	map[string]interface{}
// @Failure	403	{object}	map[string]interface{} "admin access required"
// @Router	/admin/users [GET]
func (h *Handler) GetUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}

// UpdateUser edits profile fields, status, type and eco-wallet counters.
// @Summary	Update user
// @Tags	Admin
// @Security	BearerAuth
// @Param	id	path	int	true	"user id"
// @Param	request	body	UpdateUserRequest	true	"fields to change"
// @Success	200	{object}	map[string]interface{}
// @Router	/admin/users/{id} [PUT]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), c.GetInt64("user_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// @Router	/admin/users/{id} [DELETE]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "User deleted"})
}

// GetReports returns the dashboard aggregates.
// @Summary	Reports
// @Tags	Admin
// @Security	BearerAuth
// @Success	200	{object}	Report
// @Router	/admin/reports [GET]
func (h *Handler) GetReports(c *gin.Context) {
	report, err := h.service.Reports(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "REPORTS_ERROR", "Server error while fetching reports data")
		return
	}
	response.Success(c, http.StatusOK, report)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrEmailTaken):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, ErrCannotEditSelf):
		response.Error(c, http.StatusBadRequest, "SELF_MODIFICATION", err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Request failed")
	}
}

func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user id")
		return 0, false
	}
	return id, true
}
