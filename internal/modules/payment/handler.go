package payment

import (
	"errors"
	"net/http"

	"ecowaste/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects an authenticated group mounted at /api.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	g := protected.Group("/payments")
	{
		g.POST("/create-order", h.CreateOrder)
		g.POST("/verify-payment", h.VerifyPayment)
	}
}

// CreateOrder godoc
// @Summary	Create payment order
// @Description	Opens a Razorpay order for a business pickup owned by the caller
// @Tags	Payments
// @Security	BearerAuth
// @Accept	json
// @Produce	json
// @Param	request	body	CreateOrderRequest	true	"pickup and optional amount"
// @Success	200	{object}	CreateOrderResponse
// @Failure	400	{object}	map[string]interface{}
// @Failure	502	{object}	map[string]interface{}
// @Router	/payments/create-order [POST]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.CreateOrder(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// VerifyPayment godoc
// @Summary	Verify payment
// @Tags	Payments
// @Security	BearerAuth
// @Param	request	body	VerifyPaymentRequest	true	"gateway callback fields"
// @Success	200	{object}	VerifyPaymentResponse
// @Router	/payments/verify-payment [POST]
func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	out, err := h.service.Verify(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPickupNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pickup not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Pickup belongs to another user")
	case errors.Is(err, ErrAlreadyPaid):
		response.Error(c, http.StatusBadRequest, "ALREADY_PAID", "Pickup is already paid")
	case errors.Is(err, ErrPaidByOther):
		response.Error(c, http.StatusConflict, "ALREADY_PAID", "Pickup was paid with a different payment")
	case errors.Is(err, ErrAmountTooLarge):
		response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", "Payment amount exceeds the allowed maximum")
	case errors.Is(err, ErrInvalidSignature):
		response.Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "Payment signature verification failed")
	case errors.Is(err, ErrGateway):
		response.Error(c, http.StatusBadGateway, "GATEWAY_ERROR", "Payment gateway error")
	case errors.Is(err, ErrNotConfigured):
		response.Error(c, http.StatusServiceUnavailable, "PAYMENTS_DISABLED", "Payments are not configured")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Payment request failed")
	}
}
