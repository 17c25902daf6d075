package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"ecowaste/internal/middleware"
	"ecowaste/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CookieOptions controls the token cookie set on login.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
	Path     string
	MaxAge   time.Duration
}

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
	cookies CookieOptions
}

func NewHandler(service *Service, cookies CookieOptions) *Handler {
	if cookies.Path == "" {
		cookies.Path = "/"
	}
	if cookies.SameSite == 0 {
		cookies.SameSite = http.SameSiteLaxMode
	}
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.POST("/user/register", h.Register)
	api.POST("/user/login", h.Login)
	api.POST("/admin/login", h.AdminLogin)
	api.POST("/admin/logout", h.Logout)
	api.POST("/user/logout", h.Logout)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/user/profile", h.GetProfile)
	protected.PUT("/user/profile", h.UpdateProfile)
}

// Register creates a home or business account.
// @Summary	Register account
// @Tags	Auth
// @Param	request	body	RegisterRequest	true	"name, email, password, userType"
// @Success	201	{object}	map[string]interface{}
// @Failure	409	{object}	map[string]interface{} "email already registered"
// @Router	/user/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	account, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register account")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": toPublic(account)})
}

// @Router	/user/login [POST]
func (h *Handler) Login(c *gin.Context) {
	h.login(c, h.service.Login)
}

// @Router	/admin/login [POST]
func (h *Handler) AdminLogin(c *gin.Context) {
	h.login(c, h.service.AdminLogin)
}

func (h *Handler) login(c *gin.Context, fn func(ctx context.Context, req LoginRequest) (*LoginResult, error)) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := fn(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
		case errors.Is(err, ErrNotAdmin):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Administrator access required")
		case errors.Is(err, ErrAccountInactive):
			response.Error(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is inactive")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setTokenCookie(c, result.Token, h.cookies.MaxAge)
	response.Success(c, http.StatusOK, gin.H{
		"user":     toPublic(result.Account),
		"userType": result.Account.Kind,
		"token":    result.Token,
	})
}

// Logout clears the token cookie. Bearer tokens stay valid until they expire.
func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge time.Duration) {
	seconds := int(maxAge.Seconds())
	if maxAge < 0 {
		seconds = -1
	}
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(middleware.TokenCookie, value, seconds, h.cookies.Path, "", h.cookies.Secure, true)
}

// @Router	/user/profile [GET]
func (h *Handler) GetProfile(c *gin.Context) {
	account, err := h.service.GetProfile(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Could not load profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(account)})
}

// @Router	/user/profile [PUT]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	account, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Account not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update profile")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(account)})
}
