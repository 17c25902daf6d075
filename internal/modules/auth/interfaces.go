package auth

import (
	"context"
	"time"

	"ecowaste/internal/domain"
)

// AccountRepositoryInterface lists the account methods the auth service uses.
type AccountRepositoryInterface interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Account, error)
	TouchLastActive(ctx context.Context, id int64, at time.Time) error
}

type jwtService interface {
	GenerateToken(accountID int64, role string) (string, error)
}
