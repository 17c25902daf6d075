package auth

import "ecowaste/internal/domain"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=120"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Kind     string `json:"userType" binding:"omitempty,oneof=home business"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Address  string `json:"address" binding:"omitempty,max=255"`
	Location string `json:"location" binding:"omitempty,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest changes only the fields that are present.
type UpdateProfileRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=120"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Address  *string `json:"address" binding:"omitempty,max=255"`
	Location *string `json:"location" binding:"omitempty,max=120"`
}

// AccountPublic is the account as returned to its owner.
type AccountPublic struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	UserType        string  `json:"userType"`
	Status          string  `json:"status"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Location        string  `json:"location"`
	TotalPickups    int64   `json:"totalPickups"`
	EcoPoints       int64   `json:"ecoPoints"`
	DiscountBalance float64 `json:"discountBalance"`
	CO2Saved        float64 `json:"co2Saved"`
	JoinDate        string  `json:"joinDate"`
}

func toPublic(a *domain.Account) AccountPublic {
	return AccountPublic{
		ID:              a.ID,
		Name:            a.Name,
		Email:           a.Email,
		Role:            string(a.Role),
		UserType:        string(a.Kind),
		Status:          string(a.Status),
		Phone:           a.Phone,
		Address:         a.Address,
		Location:        a.Location,
		TotalPickups:    a.TotalPickups,
		EcoPoints:       a.EcoPoints,
		DiscountBalance: a.DiscountBalance,
		CO2Saved:        a.CO2Saved,
		JoinDate:        a.CreatedAt.Format("2006-01-02"),
	}
}
