package domain

import "time"

type ComplaintType string

const (
	ComplaintMissedPickup         ComplaintType = "missed_pickup"
	ComplaintLatePickup           ComplaintType = "late_pickup"
	ComplaintIncompleteCollection ComplaintType = "incomplete_collection"
	ComplaintDriverBehavior       ComplaintType = "driver_behavior"
	ComplaintBillingIssue         ComplaintType = "billing_issue"
	ComplaintOther                ComplaintType = "other"
)

type ComplaintStatus string

const (
	ComplaintPending    ComplaintStatus = "pending"
	ComplaintInProgress ComplaintStatus = "in_progress"
	ComplaintResolved   ComplaintStatus = "resolved"
	ComplaintClosed     ComplaintStatus = "closed"
)

const MaxComplaintDescription = 500

type Complaint struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	AccountID     int64           `json:"userId" gorm:"not null;index"`
	Type          ComplaintType   `json:"type" gorm:"type:varchar(32);not null"`
	Description   string          `json:"description" gorm:"type:varchar(500);not null"`
	Status        ComplaintStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	Priority      Priority        `json:"priority" gorm:"type:varchar(8);not null;default:'medium'"`
	AdminResponse string          `json:"adminResponse" gorm:"type:text"`
	ResolvedAt    *time.Time      `json:"resolvedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Account *Account `json:"user,omitempty" gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Complaint) TableName() string { return "complaints" }
