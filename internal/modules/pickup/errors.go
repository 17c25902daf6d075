package pickup

import "errors"

var (
	ErrPickupNotFound    = errors.New("pickup not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrForbidden         = errors.New("pickup belongs to another account")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStatusConflict    = errors.New("pickup status changed concurrently")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrInvalidWasteType  = errors.New("invalid waste type")
	ErrInvalidStatus     = errors.New("invalid pickup status")
	ErrNegativeQuantity  = errors.New("waste count must be >= 0")
)
