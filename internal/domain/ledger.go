package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LedgerCredit   = "CREDIT"
	LedgerReversal = "REVERSAL"
)

// LedgerEntry records one change applied to an account's eco-wallet counters.
// Reversal entries carry negated amounts.
type LedgerEntry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AccountID int64     `json:"userId" gorm:"not null;index"`
	PickupID  int64     `json:"pickupId" gorm:"not null;index"`
	Type      string    `json:"type" gorm:"type:varchar(16);not null;index"`
	Pickups   int64     `json:"pickups" gorm:"not null"`
	Points    int64     `json:"points" gorm:"not null"`
	Discount  float64   `json:"discount" gorm:"not null"`
	CO2       float64   `json:"co2" gorm:"column:co2;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	Account *Account `json:"-" gorm:"foreignKey:AccountID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

func (e *LedgerEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// CreditFor builds the ledger credit granted when p is created.
func CreditFor(p *Pickup) LedgerEntry {
	return LedgerEntry{
		AccountID: p.AccountID,
		PickupID:  p.ID,
		Type:      LedgerCredit,
		Pickups:   1,
		Points:    p.PointsEarned,
		Discount:  p.DiscountAdded,
		CO2:       p.CO2Saved,
	}
}

// ReversalFor negates the credit of p.
func ReversalFor(p *Pickup) LedgerEntry {
	e := CreditFor(p)
	e.Type = LedgerReversal
	e.Pickups = -e.Pickups
	e.Points = -e.Points
	e.Discount = -e.Discount
	e.CO2 = -e.CO2
	return e
}
