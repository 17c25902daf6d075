package complaint

import (
	"context"

	"ecowaste/internal/domain"
)

type complaintRepo interface {
	Create(ctx context.Context, c *domain.Complaint) error
	GetByID(ctx context.Context, id int64) (*domain.Complaint, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Complaint, error)
	List(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int64, expected domain.ComplaintStatus, updates map[string]interface{}) (*domain.Complaint, error)
}
