package domain

import "time"

type WasteType string

const (
	WasteGeneral    WasteType = "general"
	WasteRecyclable WasteType = "recyclable"
	WasteOrganic    WasteType = "organic"
	WasteElectronic WasteType = "electronic"
	WasteHazardous  WasteType = "hazardous"
)

// IsRecycled reports whether collected waste of this type counts toward the recycling rate.
func (w WasteType) IsRecycled() bool {
	return w == WasteRecyclable || w == WasteOrganic || w == WasteElectronic
}

type PickupStatus string

const (
	PickupPending   PickupStatus = "pending"
	PickupAssigned  PickupStatus = "assigned"
	PickupCompleted PickupStatus = "completed"
	PickupCancelled PickupStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ServiceType string

const (
	ServiceHome     ServiceType = "home"
	ServiceBusiness ServiceType = "business"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Pickup is one scheduled collection. Weight, PointsEarned, CO2Saved, Cost, Discount,
// FinalAmount and DiscountAdded are fixed at creation.
type Pickup struct {
	ID        int64 `json:"id" gorm:"primaryKey"`
	AccountID int64 `json:"userId" gorm:"not null;index"`

	UserName  string `json:"userName" gorm:"not null"`
	UserPhone string `json:"userPhone" gorm:"not null"`
	Location  string `json:"location" gorm:"not null"`

	WasteType   WasteType    `json:"wasteType" gorm:"type:varchar(20);not null;index"`
	Date        string       `json:"date" gorm:"type:varchar(10);not null"`
	Time        string       `json:"time" gorm:"type:varchar(5);not null"`
	Status      PickupStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	Priority    Priority     `json:"priority" gorm:"type:varchar(8);not null;default:'medium'"`
	ServiceType ServiceType  `json:"serviceType" gorm:"type:varchar(16);not null"`

	DriverID  *int64 `json:"driverId" gorm:"index"`
	VehicleID *int64 `json:"assignedVehicle" gorm:"index"`

	WasteCount    float64 `json:"wasteCount" gorm:"not null;default:0"`
	WasteUnit     string  `json:"wasteUnit" gorm:"type:varchar(16)"`
	Weight        float64 `json:"weight" gorm:"not null;default:0"`
	PointsEarned  int64   `json:"pointsEarned" gorm:"not null;default:0"`
	CO2Saved      float64 `json:"co2Saved" gorm:"column:co2_saved;not null;default:0"`
	Cost          float64 `json:"cost" gorm:"not null;default:0"`
	Discount      float64 `json:"discount" gorm:"not null;default:0"`
	FinalAmount   float64 `json:"finalAmount" gorm:"not null;default:0"`
	DiscountAdded float64 `json:"discountAdded" gorm:"not null;default:0"`

	PaymentStatus     PaymentStatus `json:"paymentStatus" gorm:"type:varchar(16);not null;default:'pending';index"`
	PaymentID         string        `json:"paymentId,omitempty"`
	RazorpayOrderID   string        `json:"razorpayOrderId,omitempty" gorm:"index"`
	RazorpayPaymentID string        `json:"razorpayPaymentId,omitempty"`

	CreditReversed bool `json:"creditReversed" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	Account *Account `json:"user,omitempty" gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Driver  *Worker  `json:"driver,omitempty" gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Pickup) TableName() string { return "pickups" }

// PickupEvent is pushed to live tracking subscribers.
type PickupEvent struct {
	Type          string        `json:"type"`
	PickupID      int64         `json:"pickupId"`
	AccountID     int64         `json:"userId"`
	Status        PickupStatus  `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	At            time.Time     `json:"at"`
}

const (
	EventPickupCreated       = "pickup.created"
	EventPickupAssigned      = "pickup.assigned"
	EventPickupStatusChanged = "pickup.status_changed"
	EventPickupPaid          = "pickup.paid"
)

func NewPickupEvent(eventType string, p *Pickup) PickupEvent {
	return PickupEvent{
		Type:          eventType,
		PickupID:      p.ID,
		AccountID:     p.AccountID,
		Status:        p.Status,
		PaymentStatus: p.PaymentStatus,
		At:            time.Now().UTC(),
	}
}
