package complaint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

type Service struct {
	complaints complaintRepo
	loggerf    func(format string, args ...interface{})
	now        func() time.Time
}

func NewService(complaints complaintRepo, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{complaints: complaints, loggerf: loggerf, now: time.Now}
}

// Create files a complaint. New complaints always start pending.
func (s *Service) Create(ctx context.Context, accountID int64, req CreateComplaintRequest) (*domain.Complaint, error) {
	t := domain.ComplaintType(req.Type)
	if !t.Valid() {
		return nil, ErrInvalidType
	}
	desc := strings.TrimSpace(req.Description)
	if desc == "" {
		return nil, ErrDescriptionRequired
	}
	if utf8.RuneCountInString(desc) > domain.MaxComplaintDescription {
		return nil, ErrDescriptionTooLong
	}
	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	c := &domain.Complaint{
		AccountID:   accountID,
		Type:        t,
		Description: desc,
		Status:      domain.ComplaintPending,
		Priority:    priority,
	}
	if err := s.complaints.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}
	s.loggerf("level=info msg=complaint created complaint_id=%d account_id=%d type=%s", c.ID, accountID, c.Type)
	return c, nil
}

func (s *Service) ListMine(ctx context.Context, accountID int64) ([]domain.Complaint, error) {
	return s.complaints.ListByAccount(ctx, accountID)
}

func (s *Service) ListAll(ctx context.Context, status string) ([]domain.Complaint, error) {
	st := domain.ComplaintStatus(status)
	if st != "" && !st.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.complaints.List(ctx, st)
}

// UpdateStatus moves a complaint along its workflow. A non-empty admin
// response replaces the stored one even when the status is unchanged.
// resolvedAt is stamped only on the move into resolved.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*domain.Complaint, error) {
	next := domain.ComplaintStatus(req.Status)
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	updates := map[string]interface{}{}
	if next != current.Status {
		updates["status"] = next
		if next == domain.ComplaintResolved {
			updates["resolved_at"] = s.now()
		}
	}
	if resp := strings.TrimSpace(req.AdminResponse); resp != "" {
		updates["admin_response"] = resp
	}

	c, err := s.complaints.UpdateStatus(ctx, id, current.Status, updates)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrComplaintNotFound
	case errors.Is(err, repository.ErrStaleStatus):
		return nil, ErrStatusConflict
	default:
		return nil, fmt.Errorf("update complaint %d: %w", id, err)
	}

	s.loggerf("level=info msg=complaint status updated complaint_id=%d from=%s to=%s", id, current.Status, c.Status)
	return c, nil
}
