package repository

import (
	"context"

	"ecowaste/internal/domain"

	"gorm.io/gorm"
)

type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// ListByAccount returns the most recent entries first. limit <= 0 means no limit.
func (r *LedgerRepository) ListByAccount(ctx context.Context, accountID int64, limit int) ([]domain.LedgerEntry, error) {
	q := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.LedgerEntry
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Totals sums every entry of the account. It always equals the account counters
// unless an admin edited them directly.
func (r *LedgerRepository) Totals(ctx context.Context, accountID int64) (domain.LedgerEntry, error) {
	var t struct {
		Pickups  int64
		Points   int64
		Discount float64
		CO2      float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.LedgerEntry{}).
		Select("COALESCE(SUM(pickups),0) AS pickups, COALESCE(SUM(points),0) AS points, COALESCE(SUM(discount),0) AS discount, COALESCE(SUM(co2),0) AS co2").
		Where("account_id = ?", accountID).
		Scan(&t).Error
	if err != nil {
		return domain.LedgerEntry{}, err
	}
	return domain.LedgerEntry{
		AccountID: accountID,
		Pickups:   t.Pickups,
		Points:    t.Points,
		Discount:  t.Discount,
		CO2:       t.CO2,
	}, nil
}
