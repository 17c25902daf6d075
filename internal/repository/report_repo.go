package repository

import (
	"context"
	"time"

	"ecowaste/internal/domain"

	"gorm.io/gorm"
)

// ReportRepository runs the read-only queries behind the admin reports.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// PickupFact is the slice of a pickup the reports need.
type PickupFact struct {
	AccountID int64
	Status    domain.PickupStatus
	WasteType domain.WasteType
	Weight    float64
	CreatedAt time.Time
}

type statusCount struct {
	Status string
	N      int64
}

func (r *ReportRepository) countByStatus(ctx context.Context, model interface{}, scope func(*gorm.DB) *gorm.DB) (map[string]int64, error) {
	q := r.db.WithContext(ctx).Model(model)
	if scope != nil {
		q = scope(q)
	}
	var rows []statusCount
	if err := q.Select("status, COUNT(*) AS n").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

// AccountStatusCounts counts customer accounts (not admins) per status.
func (r *ReportRepository) AccountStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &domain.Account{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("role = ?", domain.RoleUser)
	})
}

func (r *ReportRepository) WorkerStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &domain.Worker{}, nil)
}

func (r *ReportRepository) VehicleStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &domain.Vehicle{}, nil)
}

func (r *ReportRepository) PickupStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &domain.Pickup{}, nil)
}

func (r *ReportRepository) ComplaintStatusCounts(ctx context.Context) (map[string]int64, error) {
	return r.countByStatus(ctx, &domain.Complaint{}, nil)
}

// PickupFacts returns every pickup created at or after since, plus every completed pickup.
func (r *ReportRepository) PickupFacts(ctx context.Context, since time.Time) ([]PickupFact, error) {
	var out []PickupFact
	err := r.db.WithContext(ctx).
		Model(&domain.Pickup{}).
		Select("account_id, status, waste_type, weight, created_at").
		Where("created_at >= ? OR status = ?", since, domain.PickupCompleted).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WorkerJoinTimes returns when each worker was registered.
func (r *ReportRepository) WorkerJoinTimes(ctx context.Context) ([]time.Time, error) {
	return r.createdTimes(ctx, &domain.Worker{})
}

func (r *ReportRepository) VehicleJoinTimes(ctx context.Context) ([]time.Time, error) {
	return r.createdTimes(ctx, &domain.Vehicle{})
}

func (r *ReportRepository) createdTimes(ctx context.Context, model interface{}) ([]time.Time, error) {
	var out []time.Time
	if err := r.db.WithContext(ctx).Model(model).Pluck("created_at", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
