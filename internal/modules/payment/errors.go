package payment

import "errors"

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrPickupNotFound   = errors.New("pickup not found")
	ErrForbidden        = errors.New("pickup belongs to another account")
	ErrAlreadyPaid      = errors.New("pickup already paid")
	ErrPaidByOther      = errors.New("pickup already paid with a different payment")
	ErrGateway          = errors.New("payment gateway error")
	ErrNotConfigured    = errors.New("payment gateway is not configured")
	ErrAmountTooLarge   = errors.New("payment amount exceeds the allowed maximum")
)
