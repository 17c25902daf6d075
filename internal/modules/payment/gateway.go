package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderRequest is what the gateway needs to open an order. Amount is in paise.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
}

// Gateway opens orders with the payment processor.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// RazorpayGateway creates orders through the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, req OrderRequest) (*Order, error) {
	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes":    notes,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay create order: response has no id")
	}
	order := &Order{ID: id, Amount: req.Amount, Currency: req.Currency}
	// amount comes back as a JSON number
	if amount, ok := body["amount"].(float64); ok {
		order.Amount = int64(amount)
	}
	if currency, ok := body["currency"].(string); ok && currency != "" {
		order.Currency = currency
	}
	return order, nil
}
