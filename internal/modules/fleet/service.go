package fleet

import (
	"context"
	"errors"
	"strings"
	"time"

	"ecowaste/internal/domain"
	"ecowaste/internal/repository"
)

const dateLayout = "2006-01-02"

// Service manages the worker and vehicle registry.
type Service struct {
	workers  workerRepo
	vehicles vehicleRepo
	loggerf  func(format string, args ...interface{})
	now      func() time.Time
}

func NewService(workers workerRepo, vehicles vehicleRepo, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{workers: workers, vehicles: vehicles, loggerf: loggerf, now: time.Now}
}

func (s *Service) CreateWorker(ctx context.Context, req CreateWorkerRequest) (*domain.Worker, error) {
	joined := s.now()
	if req.JoinDate != "" {
		t, err := time.Parse(dateLayout, req.JoinDate)
		if err != nil {
			return nil, ErrInvalidJoinDate
		}
		joined = t
	}
	w := &domain.Worker{
		Name:            strings.TrimSpace(req.Name),
		Role:            domain.WorkerRole(req.Role),
		Phone:           strings.TrimSpace(req.Phone),
		AssignedVehicle: strings.TrimSpace(req.AssignedVehicle),
		Status:          domain.WorkerStatus(req.Status),
		JoinDate:        joined,
	}
	if w.AssignedVehicle == "" {
		w.AssignedVehicle = "N/A"
	}
	if w.Status == "" {
		w.Status = domain.WorkerActive
	}

	if err := s.workers.Create(ctx, w); err != nil {
		return nil, workerError(err)
	}
	s.loggerf("level=info msg=worker created worker_id=%d role=%s", w.ID, w.Role)
	return w, nil
}

func (s *Service) ListWorkers(ctx context.Context) ([]domain.Worker, error) {
	return s.workers.List(ctx)
}

func (s *Service) UpdateWorker(ctx context.Context, id int64, req UpdateWorkerRequest) (*domain.Worker, error) {
	updates := map[string]interface{}{}
	setString(updates, "name", req.Name)
	setString(updates, "role", req.Role)
	setString(updates, "phone", req.Phone)
	setString(updates, "assigned_vehicle", req.AssignedVehicle)
	setString(updates, "status", req.Status)
	if req.JoinDate != nil {
		t, err := time.Parse(dateLayout, *req.JoinDate)
		if err != nil {
			return nil, ErrInvalidJoinDate
		}
		updates["join_date"] = t
	}

	w, err := s.workers.Update(ctx, id, updates)
	if err != nil {
		return nil, workerError(err)
	}
	return w, nil
}

func (s *Service) DeleteWorker(ctx context.Context, id int64) error {
	if err := s.workers.Delete(ctx, id); err != nil {
		return workerError(err)
	}
	s.loggerf("level=info msg=worker deleted worker_id=%d", id)
	return nil
}

func (s *Service) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		Name:         strings.TrimSpace(req.Name),
		Type:         domain.VehicleType(req.Type),
		LicensePlate: strings.ToUpper(strings.TrimSpace(req.LicensePlate)),
		Capacity:     req.Capacity,
		Status:       domain.VehicleStatus(req.Status),
	}
	if v.Status == "" {
		v.Status = domain.VehicleActive
	}

	if err := s.vehicles.Create(ctx, v); err != nil {
		return nil, vehicleError(err)
	}
	s.loggerf("level=info msg=vehicle created vehicle_id=%d plate=%s", v.ID, v.LicensePlate)
	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *Service) UpdateVehicle(ctx context.Context, id int64, req UpdateVehicleRequest) (*domain.Vehicle, error) {
	updates := map[string]interface{}{}
	setString(updates, "name", req.Name)
	setString(updates, "type", req.Type)
	setString(updates, "status", req.Status)
	if req.LicensePlate != nil {
		updates["license_plate"] = strings.ToUpper(strings.TrimSpace(*req.LicensePlate))
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}

	v, err := s.vehicles.Update(ctx, id, updates)
	if err != nil {
		return nil, vehicleError(err)
	}
	return v, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		return vehicleError(err)
	}
	s.loggerf("level=info msg=vehicle deleted vehicle_id=%d", id)
	return nil
}

func setString(updates map[string]interface{}, column string, v *string) {
	if v != nil {
		updates[column] = strings.TrimSpace(*v)
	}
}

func workerError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrWorkerNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicatePhone
	default:
		return err
	}
}

func vehicleError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrVehicleNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicatePlate
	default:
		return err
	}
}
