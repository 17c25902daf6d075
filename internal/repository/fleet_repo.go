package repository

import (
	"context"

	"ecowaste/internal/domain"

	"gorm.io/gorm"
)

type WorkerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

func (r *WorkerRepository) Create(ctx context.Context, w *domain.Worker) error {
	return translate(r.db.WithContext(ctx).Create(w).Error)
}

func (r *WorkerRepository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	var w domain.Worker
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r *WorkerRepository) List(ctx context.Context) ([]domain.Worker, error) {
	var out []domain.Worker
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *WorkerRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Worker, error) {
	if err := updateRow(ctx, r.db, &domain.Worker{}, id, updates); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *WorkerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRow(tx, &domain.Worker{}, id); err != nil {
			return err
		}
		return tx.Model(&domain.Pickup{}).Where("driver_id = ?", id).Update("driver_id", nil).Error
	})
}

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return translate(r.db.WithContext(ctx).Create(v).Error)
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err)
	}
	return &v, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *VehicleRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*domain.Vehicle, error) {
	if err := updateRow(ctx, r.db, &domain.Vehicle{}, id, updates); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRow(tx, &domain.Vehicle{}, id); err != nil {
			return err
		}
		return tx.Model(&domain.Pickup{}).Where("vehicle_id = ?", id).Update("vehicle_id", nil).Error
	})
}

func updateRow(ctx context.Context, db *gorm.DB, model interface{}, id int64, updates map[string]interface{}) error {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	if len(updates) == 0 {
		return nil
	}
	return translate(db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(updates).Error)
}

func deleteRow(tx *gorm.DB, model interface{}, id int64) error {
	res := tx.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
