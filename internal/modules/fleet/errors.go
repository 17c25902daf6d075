package fleet

import "errors"

var (
	ErrWorkerNotFound  = errors.New("worker not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrDuplicatePhone  = errors.New("a worker with this phone already exists")
	ErrDuplicatePlate  = errors.New("a vehicle with this license plate already exists")
	ErrInvalidJoinDate = errors.New("joinDate must be YYYY-MM-DD")
)
