package repository

import (
	"context"
	"strings"
	"time"

	"ecowaste/internal/domain"

	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) error {
	a.Email = normalizeEmail(a.Email)
	return translate(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", normalizeEmail(email)).
		First(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

// List returns accounts with the given role, newest first. An empty role lists everyone.
func (r *AccountRepository) List(ctx context.Context, role domain.AccountRole) ([]domain.Account, error) {
	q := r.db.WithContext(ctx).Model(&domain.Account{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var out []domain.Account
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the given columns. Keys are column names.
func (r *AccountRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Account, error) {
	if email, ok := updates["email"].(string); ok {
		updates["email"] = normalizeEmail(email)
	}
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&domain.Account{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			if _, err := r.GetByID(ctx, id); err != nil {
				return nil, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

func (r *AccountRepository) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Account{}).Where("id = ?", id).Update("last_active_at", at).Error
}

// Delete removes the account together with its pickups, complaints and ledger history.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.Account{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		for _, model := range []interface{}{&domain.LedgerEntry{}, &domain.Pickup{}, &domain.Complaint{}} {
			if err := tx.Where("account_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
