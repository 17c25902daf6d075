package admin

import "time"

// UpdateUserRequest: nil fields are left unchanged. Counter fields let an
// admin correct an eco-wallet by hand.
type UpdateUserRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Email           *string  `json:"email" binding:"omitempty,email"`
	Status          *string  `json:"status" binding:"omitempty,oneof=active inactive"`
	Kind            *string  `json:"userType" binding:"omitempty,oneof=home business"`
	Phone           *string  `json:"phone" binding:"omitempty,max=32"`
	Address         *string  `json:"address" binding:"omitempty,max=255"`
	Location        *string  `json:"location" binding:"omitempty,max=255"`
	TotalPickups    *int64   `json:"totalPickups" binding:"omitempty,gte=0"`
	EcoPoints       *int64   `json:"ecoPoints" binding:"omitempty,gte=0"`
	DiscountBalance *float64 `json:"discountBalance" binding:"omitempty,gte=0"`
	CO2Saved        *float64 `json:"co2Saved" binding:"omitempty,gte=0"`
}

type Report struct {
	Summary     Summary    `json:"summary"`
	Metrics     Metrics    `json:"metrics"`
	Efficiency  Efficiency `json:"efficiency"`
	Trends      Trends     `json:"trends"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

type Summary struct {
	Users    UserSummary    `json:"users"`
	Workers  WorkerSummary  `json:"workers"`
	Vehicles VehicleSummary `json:"vehicles"`
	Pickups  PickupSummary  `json:"pickups"`
}

type UserSummary struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type WorkerSummary struct {
	Total   int64 `json:"total"`
	Active  int64 `json:"active"`
	OnLeave int64 `json:"onLeave"`
}

type VehicleSummary struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Maintenance int64 `json:"maintenance"`
}

type PickupSummary struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Pending   int64 `json:"pending"`
}

type Metrics struct {
	WasteCollected   int64            `json:"wasteCollected"`
	WasteCollectedKg float64          `json:"wasteCollectedKg"`
	RecyclingRate    float64          `json:"recyclingRate"`
	Complaints       ComplaintMetrics `json:"complaints"`
}

type ComplaintMetrics struct {
	Active   int64 `json:"active"`
	Resolved int64 `json:"resolved"`
	Total    int64 `json:"total"`
}

// Efficiency values are percentages with one decimal.
type Efficiency struct {
	Users    float64 `json:"users"`
	Workers  float64 `json:"workers"`
	Vehicles float64 `json:"vehicles"`
	Pickups  float64 `json:"pickups"`
}

type Trends struct {
	Monthly []MonthlyTrend `json:"monthly"`
	Growth  Growth         `json:"growth"`
}

type MonthlyTrend struct {
	Month         string  `json:"month"`
	Users         int64   `json:"users"`
	Pickups       int64   `json:"pickups"`
	Workers       int64   `json:"workers"`
	Vehicles      int64   `json:"vehicles"`
	TotalWaste    float64 `json:"totalWaste"`
	RecycledWaste float64 `json:"recycledWaste"`
}

type Growth struct {
	Users           float64 `json:"users"`
	Pickups         int64   `json:"pickups"`
	PickupsThisYear int64   `json:"pickupsThisYear"`
	Waste           int64   `json:"waste"`
}
