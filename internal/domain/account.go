package domain

import "time"

type AccountRole string

const (
	RoleUser  AccountRole = "user"
	RoleAdmin AccountRole = "admin"
)

type AccountKind string

const (
	KindHome     AccountKind = "home"
	KindBusiness AccountKind = "business"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

// Account is a home or business customer, or an administrator.
// TotalPickups, EcoPoints, DiscountBalance and CO2Saved form the eco-wallet ledger;
// they are changed only by pickup credits/reversals and by admin edits.
type Account struct {
	ID           int64         `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name"`
	Email        string        `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string        `json:"-" gorm:"not null"`
	Role         AccountRole   `json:"role" gorm:"type:varchar(16);not null;default:'user';index"`
	Kind         AccountKind   `json:"kind" gorm:"type:varchar(16);not null;default:'home'"`
	Status       AccountStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	Phone        string        `json:"phone,omitempty"`
	Address      string        `json:"address,omitempty"`
	Location     string        `json:"location,omitempty"`

	TotalPickups    int64   `json:"totalPickups" gorm:"not null;default:0"`
	EcoPoints       int64   `json:"ecoPoints" gorm:"not null;default:0"`
	DiscountBalance float64 `json:"discountBalance" gorm:"not null;default:0"`
	CO2Saved        float64 `json:"co2Saved" gorm:"column:co2_saved;not null;default:0"`

	LastActiveAt *time.Time `json:"lastActive,omitempty"`
	CreatedAt    time.Time  `json:"joinDate"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Account) TableName() string { return "accounts" }

func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }

func (a *Account) IsActive() bool { return a.Status == "" || a.Status == AccountActive }
