package repository

import (
	"context"
	"errors"

	"ecowaste/internal/domain"

	"gorm.io/gorm"
)

type PickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) *PickupRepository {
	return &PickupRepository{db: db}
}

// PickupUpdate describes an admin change to a pickup. Zero Status leaves the status alone.
type PickupUpdate struct {
	Status        domain.PickupStatus
	DriverID      *int64
	UpdateDriver  bool
	VehicleID     *int64
	UpdateVehicle bool
	// ReverseCredit undoes the creation credit if it has not been undone yet.
	ReverseCredit bool
}

// CreateWithCredit inserts p and credits its account in one transaction.
func (r *PickupRepository) CreateWithCredit(ctx context.Context, p *domain.Pickup) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		credit := domain.CreditFor(p)
		if err := applyLedgerEntry(tx, &credit); err != nil {
			return err
		}
		return nil
	})
}

// applyLedgerEntry adds the entry's deltas to the account counters and records it.
func applyLedgerEntry(tx *gorm.DB, e *domain.LedgerEntry) error {
	res := tx.Model(&domain.Account{}).
		Where("id = ?", e.AccountID).
		Updates(map[string]interface{}{
			"total_pickups":    gorm.Expr("total_pickups + ?", e.Pickups),
			"eco_points":       gorm.Expr("eco_points + ?", e.Points),
			"discount_balance": gorm.Expr("discount_balance + ?", e.Discount),
			"co2_saved":        gorm.Expr("co2_saved + ?", e.CO2),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return tx.Create(e).Error
}

func (r *PickupRepository) GetByID(ctx context.Context, id int64) (*domain.Pickup, error) {
	var p domain.Pickup
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Vehicle").
		First(&p, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PickupRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Pickup, error) {
	var p domain.Pickup
	if err := r.db.WithContext(ctx).Where("razorpay_order_id = ?", orderID).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *PickupRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Pickup, error) {
	var out []domain.Pickup
	err := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Vehicle").
		Where("account_id = ?", accountID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns every pickup with its account, driver and vehicle, newest first.
func (r *PickupRepository) List(ctx context.Context, status domain.PickupStatus) ([]domain.Pickup, error) {
	q := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Driver").
		Preload("Vehicle")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Pickup
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Apply writes u only if the pickup is still in status expected.
// It returns ErrStaleStatus when another writer moved the pickup first.
func (r *PickupRepository) Apply(ctx context.Context, id int64, expected domain.PickupStatus, u PickupUpdate) (*domain.Pickup, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if u.Status != "" {
			updates["status"] = u.Status
		}
		if u.UpdateDriver {
			if u.DriverID == nil {
				updates["driver_id"] = nil
			} else {
				updates["driver_id"] = *u.DriverID
			}
		}
		if u.UpdateVehicle {
			if u.VehicleID == nil {
				updates["vehicle_id"] = nil
			} else {
				updates["vehicle_id"] = *u.VehicleID
			}
		}

		if len(updates) > 0 {
			res := tx.Model(&domain.Pickup{}).
				Where("id = ? AND status = ?", id, expected).
				Updates(updates)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return staleOrMissing(tx, id)
			}
		}

		if u.Status == domain.PickupCompleted && expected != domain.PickupCompleted {
			if err := countTrip(tx, id); err != nil {
				return err
			}
		}
		if u.ReverseCredit {
			return reverseCredit(tx, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func staleOrMissing(tx *gorm.DB, id int64) error {
	var n int64
	if err := tx.Model(&domain.Pickup{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStaleStatus
}

// countTrip credits the completed pickup to its driver, if any.
func countTrip(tx *gorm.DB, pickupID int64) error {
	var p domain.Pickup
	if err := tx.Select("driver_id").First(&p, pickupID).Error; err != nil {
		return err
	}
	if p.DriverID == nil {
		return nil
	}
	return tx.Model(&domain.Worker{}).
		Where("id = ?", *p.DriverID).
		Update("total_trips", gorm.Expr("total_trips + 1")).Error
}

// reverseCredit flips credit_reversed and posts the negated credit. A second call is a no-op.
func reverseCredit(tx *gorm.DB, id int64) error {
	res := tx.Model(&domain.Pickup{}).
		Where("id = ? AND credit_reversed = ?", id, false).
		Update("credit_reversed", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var p domain.Pickup
	if err := tx.First(&p, id).Error; err != nil {
		return err
	}
	reversal := domain.ReversalFor(&p)
	if err := applyLedgerEntry(tx, &reversal); err != nil {
		// the owning account is gone; nothing left to reverse
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (r *PickupRepository) SetOrderID(ctx context.Context, id int64, orderID string) error {
	res := r.db.WithContext(ctx).Model(&domain.Pickup{}).Where("id = ?", id).Update("razorpay_order_id", orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPaid records a captured payment. changed is false if the pickup was already paid.
func (r *PickupRepository) MarkPaid(ctx context.Context, id int64, paymentID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&domain.Pickup{}).
		Where("id = ? AND payment_status <> ?", id, domain.PaymentPaid).
		Updates(map[string]interface{}{
			"payment_status":      domain.PaymentPaid,
			"razorpay_payment_id": paymentID,
			"payment_id":          paymentID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PickupRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Pickup{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
