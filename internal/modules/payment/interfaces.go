package payment

import (
	"context"

	"ecowaste/internal/domain"
)

type pickupRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Pickup, error)
	GetByOrderID(ctx context.Context, orderID string) (*domain.Pickup, error)
	SetOrderID(ctx context.Context, id int64, orderID string) error
	MarkPaid(ctx context.Context, id int64, paymentID string) (bool, error)
}

type eventPublisher interface {
	Publish(event domain.PickupEvent)
}
