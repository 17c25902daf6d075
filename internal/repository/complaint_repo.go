package repository

import (
	"context"

	"ecowaste/internal/domain"

	"gorm.io/gorm"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	var c domain.Complaint
	if err := r.db.WithContext(ctx).Preload("Account").First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ComplaintRepository) ListByAccount(ctx context.Context, accountID int64) ([]domain.Complaint, error) {
	var out []domain.Complaint
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").Order("id DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ComplaintRepository) List(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	q := r.db.WithContext(ctx).Preload("Account")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.Complaint
	if err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus writes updates only if the complaint is still in status expected.
func (r *ComplaintRepository) UpdateStatus(ctx context.Context, id int64, expected domain.ComplaintStatus, updates map[string]interface{}) (*domain.Complaint, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).
			Model(&domain.Complaint{}).
			Where("id = ? AND status = ?", id, expected).
			Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := r.db.WithContext(ctx).Model(&domain.Complaint{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return nil, err
			}
			if n == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrStaleStatus
		}
	}
	return r.GetByID(ctx, id)
}
