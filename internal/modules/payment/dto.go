package payment

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexibleAmount accepts a JSON number or a numeric string. Anything else
// leaves it unset so the stored pickup amount is used.
type FlexibleAmount struct {
	Value float64
	Valid bool
}

func (a *FlexibleAmount) UnmarshalJSON(data []byte) error {
	*a = FlexibleAmount{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		a.Value, a.Valid = n, true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			a.Value, a.Valid = f, true
		}
	}
	return nil
}

type CreateOrderRequest struct {
	PickupID    int64          `json:"pickupId" binding:"required,gt=0" example:"12"`
	FinalAmount FlexibleAmount `json:"finalAmount" example:"300"`
}

type CreateOrderResponse struct {
	OrderID     string  `json:"orderId" example:"order_9A33XWu170gUtm"`
	Amount      int64   `json:"amount" example:"30000"`
	Currency    string  `json:"currency" example:"INR"`
	Key         string  `json:"key" example:"rzp_test_xxx"`
	FinalAmount float64 `json:"finalAmount" example:"300"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

type VerifyPaymentResponse struct {
	PickupID        int64  `json:"pickupId"`
	PaymentStatus   string `json:"paymentStatus"`
	PaymentID       string `json:"paymentId"`
	AlreadyVerified bool   `json:"alreadyVerified"`
	Message         string `json:"message"`
}
