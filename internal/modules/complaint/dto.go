package complaint

type CreateComplaintRequest struct {
	Type        string `json:"type" binding:"required,oneof=missed_pickup late_pickup incomplete_collection driver_behavior billing_issue other"`
	Description string `json:"description" binding:"required,max=500"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=pending in_progress resolved closed"`
	AdminResponse string `json:"adminResponse" binding:"omitempty,max=2000"`
}
