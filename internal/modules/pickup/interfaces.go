package pickup

import (
	"context"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

type pickupRepo interface {
	CreateWithCredit(ctx context.Context, p *domain.Pickup) error
	GetByID(ctx context.Context, id int64) (*domain.Pickup, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Pickup, error)
	List(ctx context.Context, status domain.PickupStatus) ([]domain.Pickup, error)
	Apply(ctx context.Context, id int64, expected domain.PickupStatus, u repository.PickupUpdate) (*domain.Pickup, error)
	Delete(ctx context.Context, id int64) error
}

type workerReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
}

type vehicleReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// EventPublisher receives pickup changes for live tracking.
type EventPublisher interface {
	Publish(event domain.PickupEvent)
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.PickupEvent) {}
