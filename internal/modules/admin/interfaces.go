package admin

import (
	"context"
	"time"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

type AccountRepository interface {
	List(ctx context.Context, role domain.AccountRole) ([]domain.Account, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}

// ReportSource is the read side behind GET /admin/reports.
type ReportSource interface {
	AccountStatusCounts(ctx context.Context) (map[string]int64, error)
	WorkerStatusCounts(ctx context.Context) (map[string]int64, error)
	VehicleStatusCounts(ctx context.Context) (map[string]int64, error)
	PickupStatusCounts(ctx context.Context) (map[string]int64, error)
	ComplaintStatusCounts(ctx context.Context) (map[string]int64, error)
	PickupFacts(ctx context.Context, since time.Time) ([]repository.PickupFact, error)
	WorkerJoinTimes(ctx context.Context) ([]time.Time, error)
	VehicleJoinTimes(ctx context.Context) ([]time.Time, error)
}
