package fleet

import (
	"context"

	"ecowaste/internal/domain"
)

type workerRepo interface {
	Create(ctx context.Context, w *domain.Worker) error
	GetByID(ctx context.Context, id int64) (*domain.Worker, error)
	List(ctx context.Context) ([]domain.Worker, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Worker, error)
	Delete(ctx context.Context, id int64) error
}

type vehicleRepo interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}
