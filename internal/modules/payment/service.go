package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"ecowaste/internal/config"
	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

type Service struct {
	pickups pickupRepo
	gateway Gateway
	cfg     config.RazorpayConfig
	events  eventPublisher
	loggerf func(format string, args ...interface{})
	now     func() time.Time
}

func NewService(pickups pickupRepo, gateway Gateway, cfg config.RazorpayConfig, events eventPublisher, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.FallbackAmount <= 0 {
		cfg.FallbackAmount = 100
	}
	if cfg.MaxAmount <= 0 || cfg.MaxAmount > maxPaiseAmount {
		cfg.MaxAmount = defaultMaxAmount
	}
	return &Service{
		pickups: pickups,
		gateway: gateway,
		cfg:     cfg,
		events:  events,
		loggerf: loggerf,
		now:     time.Now,
	}
}

const (
	defaultMaxAmount = 10_000_000
	// largest rupee amount whose paise value still fits in int64
	maxPaiseAmount = math.MaxInt64 / 100
)

// resolveAmount picks the caller's positive amount, then the stored final
// amount, then the stored cost, then the configured fallback. A caller amount
// above MaxAmount counts as invalid.
func (s *Service) resolveAmount(requested FlexibleAmount, p *domain.Pickup) float64 {
	switch {
	case requested.Valid && requested.Value > 0 && requested.Value <= s.cfg.MaxAmount:
		return requested.Value
	case p.FinalAmount > 0:
		return p.FinalAmount
	case p.Cost > 0:
		return p.Cost
	default:
		return s.cfg.FallbackAmount
	}
}

// toPaise converts a rupee amount to the gateway's minor unit.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateOrder opens a gateway order for a pickup the caller owns.
func (s *Service) CreateOrder(ctx context.Context, accountID int64, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if s.gateway == nil || s.cfg.KeyID == "" || s.cfg.KeySecret == "" {
		return nil, ErrNotConfigured
	}

	p, err := s.load(ctx, req.PickupID)
	if err != nil {
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, ErrForbidden
	}
	if p.PaymentStatus == domain.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	amount := s.resolveAmount(req.FinalAmount, p)
	if amount > s.cfg.MaxAmount {
		s.loggerf("level=warn msg=payment amount over limit pickup_id=%d amount=%.2f max=%.2f", p.ID, amount, s.cfg.MaxAmount)
		return nil, ErrAmountTooLarge
	}
	order, err := s.gateway.CreateOrder(ctx, OrderRequest{
		Amount:   toPaise(amount),
		Currency: s.cfg.Currency,
		Receipt:  fmt.Sprintf("pickup_%d_%d", p.ID, s.now().UnixMilli()),
		Notes: map[string]string{
			"pickupId": strconv.FormatInt(p.ID, 10),
			"userId":   strconv.FormatInt(accountID, 10),
		},
	})
	if err != nil {
		s.loggerf("level=error msg=create order failed pickup_id=%d err=%v", p.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if err := s.pickups.SetOrderID(ctx, p.ID, order.ID); err != nil {
		return nil, fmt.Errorf("save order id: %w", err)
	}

	s.loggerf("level=info msg=payment order created pickup_id=%d order_id=%s amount=%d currency=%s", p.ID, order.ID, order.Amount, order.Currency)
	return &CreateOrderResponse{
		OrderID:     order.ID,
		Amount:      order.Amount,
		Currency:    order.Currency,
		Key:         s.cfg.KeyID,
		FinalAmount: amount,
	}, nil
}

// Signature returns hex(HMAC-SHA256(secret, orderID + "|" + paymentID)).
func Signature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *Service) validSignature(req VerifyPaymentRequest) bool {
	expected := Signature(s.cfg.KeySecret, req.OrderID, req.PaymentID)
	return hmac.Equal([]byte(expected), []byte(req.Signature))
}

// Verify checks the gateway signature and marks the pickup paid. Repeating
// a verification with the same payment id succeeds without side effects.
func (s *Service) Verify(ctx context.Context, accountID int64, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	if s.cfg.KeySecret == "" {
		return nil, ErrNotConfigured
	}
	if !s.validSignature(req) {
		s.loggerf("level=warn msg=payment signature mismatch order_id=%s", req.OrderID)
		return nil, ErrInvalidSignature
	}

	p, err := s.pickups.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}
	if p.AccountID != accountID {
		return nil, ErrForbidden
	}

	if p.PaymentStatus == domain.PaymentPaid {
		return s.alreadyPaid(p, req.PaymentID)
	}

	changed, err := s.pickups.MarkPaid(ctx, p.ID, req.PaymentID)
	if err != nil {
		return nil, fmt.Errorf("mark pickup %d paid: %w", p.ID, err)
	}
	if !changed {
		// lost a race with another verification; report what it stored
		p, err = s.load(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		return s.alreadyPaid(p, req.PaymentID)
	}

	p.PaymentStatus = domain.PaymentPaid
	p.PaymentID = req.PaymentID
	p.RazorpayPaymentID = req.PaymentID
	s.loggerf("level=info msg=payment verified pickup_id=%d order_id=%s payment_id=%s", p.ID, req.OrderID, req.PaymentID)
	if s.events != nil {
		s.events.Publish(domain.NewPickupEvent(domain.EventPickupPaid, p))
	}

	return &VerifyPaymentResponse{
		PickupID:      p.ID,
		PaymentStatus: string(domain.PaymentPaid),
		PaymentID:     req.PaymentID,
		Message:       "Payment verified successfully",
	}, nil
}

func (s *Service) alreadyPaid(p *domain.Pickup, paymentID string) (*VerifyPaymentResponse, error) {
	if p.RazorpayPaymentID != "" && p.RazorpayPaymentID != paymentID {
		return nil, ErrPaidByOther
	}
	return &VerifyPaymentResponse{
		PickupID:        p.ID,
		PaymentStatus:   string(domain.PaymentPaid),
		PaymentID:       paymentID,
		AlreadyVerified: true,
		Message:         "Payment already verified",
	}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Pickup, error) {
	p, err := s.pickups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}
	return p, nil
}
