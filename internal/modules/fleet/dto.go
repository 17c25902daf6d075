package fleet

type CreateWorkerRequest struct {
	Name            string `json:"name" binding:"required,max=120"`
	Role            string `json:"role" binding:"required,oneof=driver collector supervisor"`
	Phone           string `json:"phone" binding:"required,max=32"`
	AssignedVehicle string `json:"assignedVehicle" binding:"omitempty,max=120"`
	Status          string `json:"status" binding:"omitempty,oneof=active on-leave inactive"`
	// JoinDate is YYYY-MM-DD; empty means today.
	JoinDate string `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateWorkerRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=120"`
	Role            *string `json:"role" binding:"omitempty,oneof=driver collector supervisor"`
	Phone           *string `json:"phone" binding:"omitempty,min=1,max=32"`
	AssignedVehicle *string `json:"assignedVehicle" binding:"omitempty,max=120"`
	Status          *string `json:"status" binding:"omitempty,oneof=active on-leave inactive"`
	JoinDate        *string `json:"joinDate" binding:"omitempty,datetime=2006-01-02"`
}

type CreateVehicleRequest struct {
	Name         string  `json:"name" binding:"required,max=120"`
	Type         string  `json:"type" binding:"required,oneof=truck van other"`
	LicensePlate string  `json:"licensePlate" binding:"required,max=32"`
	Capacity     float64 `json:"capacity" binding:"gte=0"`
	Status       string  `json:"status" binding:"omitempty,oneof=active maintenance"`
}

type UpdateVehicleRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=120"`
	Type         *string  `json:"type" binding:"omitempty,oneof=truck van other"`
	LicensePlate *string  `json:"licensePlate" binding:"omitempty,min=1,max=32"`
	Capacity     *float64 `json:"capacity" binding:"omitempty,gte=0"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active maintenance"`
}
