package domain

import "time"

type WorkerRole string

const (
	WorkerDriver     WorkerRole = "driver"
	WorkerCollector  WorkerRole = "collector"
	WorkerSupervisor WorkerRole = "supervisor"
)

type WorkerStatus string

const (
	WorkerActive   WorkerStatus = "active"
	WorkerOnLeave  WorkerStatus = "on-leave"
	WorkerInactive WorkerStatus = "inactive"
)

type Worker struct {
	ID              int64        `json:"id" gorm:"primaryKey"`
	Name            string       `json:"name" gorm:"not null"`
	Role            WorkerRole   `json:"role" gorm:"type:varchar(16);not null"`
	Phone           string       `json:"phone" gorm:"uniqueIndex;not null"`
	AssignedVehicle string       `json:"assignedVehicle" gorm:"not null;default:'N/A'"`
	Status          WorkerStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	JoinDate        time.Time    `json:"joinDate"`
	TotalTrips      int64        `json:"totalTrips" gorm:"not null;default:0"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

func (Worker) TableName() string { return "workers" }

type VehicleType string

const (
	VehicleTruck VehicleType = "truck"
	VehicleVan   VehicleType = "van"
	VehicleOther VehicleType = "other"
)

type VehicleStatus string

const (
	VehicleActive      VehicleStatus = "active"
	VehicleMaintenance VehicleStatus = "maintenance"
)

type Vehicle struct {
	ID           int64         `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Type         VehicleType   `json:"type" gorm:"type:varchar(16);not null"`
	LicensePlate string        `json:"licensePlate" gorm:"uniqueIndex;not null"`
	Capacity     float64       `json:"capacity" gorm:"not null"`
	Status       VehicleStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

func (Vehicle) TableName() string { return "vehicles" }
