package complaint

import "errors"

var (
	ErrComplaintNotFound   = errors.New("complaint not found")
	ErrInvalidType         = errors.New("invalid complaint type")
	ErrInvalidStatus       = errors.New("invalid complaint status")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrStatusConflict      = errors.New("complaint status changed concurrently")
	ErrDescriptionTooLong  = errors.New("description exceeds 500 characters")
	ErrDescriptionRequired = errors.New("description is required")
)
