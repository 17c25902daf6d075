package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

type Service struct {
	accounts AccountRepository
	reports  ReportSource
	loggerf  func(format string, args ...interface{})
	now      func() time.Time
}

func NewService(accounts AccountRepository, reports ReportSource, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{accounts: accounts, reports: reports, loggerf: loggerf, now: time.Now}
}

// -------------------- Users --------------------

// ListUsers returns customer accounts, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx, domain.RoleUser)
}

func (s *Service) UpdateUser(ctx context.Context, adminID, id int64, req UpdateUserRequest) (*domain.Account, error) {
	if id == adminID && req.Status != nil && domain.AccountStatus(*req.Status) != domain.AccountActive {
		return nil, ErrCannotEditSelf
	}

	updates := map[string]interface{}{}
	setTrimmed(updates, "name", req.Name)
	setTrimmed(updates, "email", req.Email)
	setTrimmed(updates, "status", req.Status)
	setTrimmed(updates, "kind", req.Kind)
	setTrimmed(updates, "phone", req.Phone)
	setTrimmed(updates, "address", req.Address)
	setTrimmed(updates, "location", req.Location)
	if req.TotalPickups != nil {
		updates["total_pickups"] = *req.TotalPickups
	}
	if req.EcoPoints != nil {
		updates["eco_points"] = *req.EcoPoints
	}
	if req.DiscountBalance != nil {
		updates["discount_balance"] = *req.DiscountBalance
	}
	if req.CO2Saved != nil {
		updates["co2_saved"] = *req.CO2Saved
	}

	a, err := s.accounts.Update(ctx, id, updates)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrEmailTaken
	default:
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	s.loggerf("level=info msg=admin updated user admin_id=%d user_id=%d fields=%d", adminID, id, len(updates))
	return a, nil
}

// DeleteUser removes the account together with its pickups, complaints and ledger.
func (s *Service) DeleteUser(ctx context.Context, adminID, id int64) error {
	if id == adminID {
		return ErrCannotEditSelf
	}
	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	s.loggerf("level=info msg=admin deleted user admin_id=%d user_id=%d", adminID, id)
	return nil
}

func setTrimmed(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = strings.TrimSpace(*v)
	}
}
