package pickup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

type Service struct {
	pickups               pickupRepo
	workers               workerReader
	vehicles              vehicleReader
	calc                  *Calculator
	events                EventPublisher
	reverseCreditOnCancel bool
	loggerf               func(format string, args ...interface{})
}

type Options struct {
	// ReverseCreditOnCancel undoes the creation credit when a pickup is cancelled.
	ReverseCreditOnCancel bool
	Events                EventPublisher
	Loggerf               func(format string, args ...interface{})
}

func NewService(pickups pickupRepo, workers workerReader, vehicles vehicleReader, calc *Calculator, opts Options) *Service {
	if opts.Loggerf == nil {
		opts.Loggerf = func(string, ...interface{}) {}
	}
	if opts.Events == nil {
		opts.Events = noopPublisher{}
	}
	return &Service{
		pickups:               pickups,
		workers:               workers,
		vehicles:              vehicles,
		calc:                  calc,
		events:                opts.Events,
		reverseCreditOnCancel: opts.ReverseCreditOnCancel,
		loggerf:               opts.Loggerf,
	}
}

// Create stores a new pending pickup and credits the owner's eco-wallet in the same transaction.
func (s *Service) Create(ctx context.Context, accountID int64, req CreatePickupRequest) (*domain.Pickup, error) {
	wasteType := domain.WasteType(req.WasteType)
	if !wasteType.Valid() {
		return nil, ErrInvalidWasteType
	}
	count := 0.0
	if req.WasteCount != nil {
		count = *req.WasteCount
	}
	if count < 0 {
		return nil, ErrNegativeQuantity
	}

	priority := domain.Priority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	service := domain.ServiceType(req.ServiceType)
	quote := s.calc.Quote(wasteType, count, req.WasteUnit, service)

	p := &domain.Pickup{
		AccountID:     accountID,
		UserName:      strings.TrimSpace(req.UserName),
		UserPhone:     strings.TrimSpace(req.UserPhone),
		Location:      strings.TrimSpace(req.Location),
		WasteType:     wasteType,
		Date:          req.Date,
		Time:          req.Time,
		Status:        domain.PickupPending,
		Priority:      priority,
		ServiceType:   service,
		WasteCount:    count,
		WasteUnit:     strings.TrimSpace(req.WasteUnit),
		Weight:        quote.Weight,
		PointsEarned:  quote.PointsEarned,
		CO2Saved:      quote.CO2Saved,
		Cost:          quote.Cost,
		FinalAmount:   quote.FinalAmount,
		DiscountAdded: quote.DiscountAdded,
		PaymentStatus: quote.PaymentStatus,
	}

	if err := s.pickups.CreateWithCredit(ctx, p); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("create pickup: %w", err)
	}

	s.loggerf("level=info msg=pickup created pickup_id=%d account_id=%d service=%s points=%d discount=%.2f", p.ID, accountID, p.ServiceType, p.PointsEarned, p.DiscountAdded)
	s.events.Publish(domain.NewPickupEvent(domain.EventPickupCreated, p))
	return p, nil
}

func (s *Service) ListMine(ctx context.Context, accountID int64) ([]domain.Pickup, error) {
	return s.pickups.ListByAccount(ctx, accountID)
}

// Get returns the pickup if the caller owns it or is an admin.
func (s *Service) Get(ctx context.Context, accountID int64, isAdmin bool, id int64) (*domain.Pickup, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && p.AccountID != accountID {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListAll(ctx context.Context, status string) ([]domain.Pickup, error) {
	st := domain.PickupStatus(status)
	if st != "" && !st.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.pickups.List(ctx, st)
}

// Assign sets driver, vehicle and optionally status.
func (s *Service) Assign(ctx context.Context, id int64, req AssignRequest) (*domain.Pickup, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	update := repository.PickupUpdate{
		// vehicle is always written: absent or null clears it
		UpdateVehicle: true,
		VehicleID:     req.VehicleID.Value,
	}
	// a null or zero driverId leaves the current driver in place
	if id := req.DriverID.Value; id != nil && *id != 0 {
		update.UpdateDriver = true
		update.DriverID = id
	}

	if update.DriverID != nil {
		if _, err := s.workers.GetByID(ctx, *update.DriverID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrDriverNotFound
			}
			return nil, err
		}
	}
	if update.VehicleID != nil {
		if _, err := s.vehicles.GetByID(ctx, *update.VehicleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrVehicleNotFound
			}
			return nil, err
		}
	}

	if req.Status != "" {
		next := domain.PickupStatus(req.Status)
		if !current.Status.CanTransitionTo(next) {
			return nil, ErrInvalidTransition
		}
		if next != current.Status {
			update.Status = next
			update.ReverseCredit = s.shouldReverse(next)
		}
	}

	p, err := s.apply(ctx, current, update)
	if err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=pickup assigned pickup_id=%d driver_id=%v vehicle_id=%v status=%s", p.ID, ptrValue(p.DriverID), ptrValue(p.VehicleID), p.Status)
	s.events.Publish(domain.NewPickupEvent(domain.EventPickupAssigned, p))
	return p, nil
}

// UpdateStatus moves the pickup along the transition table. Re-applying the
// current status returns the pickup unchanged.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Pickup, error) {
	next := domain.PickupStatus(status)
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}
	if current.Status == next {
		return current, nil
	}

	p, err := s.apply(ctx, current, repository.PickupUpdate{
		Status:        next,
		ReverseCredit: s.shouldReverse(next),
	})
	if err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=pickup status changed pickup_id=%d from=%s to=%s credit_reversed=%t", p.ID, current.Status, p.Status, p.CreditReversed)
	s.events.Publish(domain.NewPickupEvent(domain.EventPickupStatusChanged, p))
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.pickups.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPickupNotFound
		}
		return err
	}
	s.loggerf("level=info msg=pickup deleted pickup_id=%d", id)
	return nil
}

func (s *Service) shouldReverse(next domain.PickupStatus) bool {
	return next == domain.PickupCancelled && s.reverseCreditOnCancel
}

func (s *Service) apply(ctx context.Context, current *domain.Pickup, u repository.PickupUpdate) (*domain.Pickup, error) {
	p, err := s.pickups.Apply(ctx, current.ID, current.Status, u)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrPickupNotFound
	case errors.Is(err, repository.ErrStaleStatus):
		return nil, ErrStatusConflict
	default:
		return nil, fmt.Errorf("update pickup %d: %w", current.ID, err)
	}
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Pickup, error) {
	p, err := s.pickups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPickupNotFound
		}
		return nil, err
	}
	return p, nil
}

func ptrValue(v *int64) interface{} {
	if v == nil {
		return "null"
	}
	return *v
}
