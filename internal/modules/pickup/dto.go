package pickup

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type CreatePickupRequest struct {
	UserName    string   `json:"userName" binding:"required,max=120"`
	UserPhone   string   `json:"userPhone" binding:"required,max=32"`
	Location    string   `json:"location" binding:"required,max=255"`
	WasteType   string   `json:"wasteType" binding:"required,oneof=general recyclable organic electronic hazardous"`
	WasteCount  *float64 `json:"wasteCount" binding:"required,gte=0"`
	WasteUnit   string   `json:"wasteUnit" binding:"omitempty,max=16"`
	ServiceType string   `json:"serviceType" binding:"required,oneof=home business"`
	Date        string   `json:"date" binding:"required" validate:"pickupdate"`
	Time        string   `json:"time" binding:"required" validate:"pickuptime"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// OptionalID tells an absent JSON field apart from an explicit null.
type OptionalID struct {
	Set   bool
	Value *int64
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) || bytes.Equal(data, []byte(`""`)) {
		o.Value = nil
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		o.Value = &id
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// AssignRequest: driverId changes only when it carries an id; vehicleId absent or null clears the vehicle.
type AssignRequest struct {
	DriverID  OptionalID `json:"driverId"`
	VehicleID OptionalID `json:"vehicleId"`
	Status    string     `json:"status" binding:"omitempty,oneof=pending assigned completed cancelled"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending assigned completed cancelled"`
}
