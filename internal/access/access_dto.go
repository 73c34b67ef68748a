package access

type CreateAccessRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	ResourceID      string `json:"resource_id" binding:"omitempty,uuid"`
	HardwareRequest string `json:"hardware_request"`
	PermissionLevel string `json:"permission_level" binding:"omitempty,oneof=READ WRITE ADMIN"`
}

type AccessResponse struct {
	ID              string `json:"id"`
	EmployeeID      string `json:"employee_id"`
	ResourceID      string `json:"resource_id,omitempty"`
	HardwareRequest string `json:"hardware_request,omitempty"`
	PermissionLevel string `json:"permission_level"`
	Status          string `json:"status"`
	ApproverID      string `json:"approver_id,omitempty"`
	ApprovedAt      string `json:"approved_at,omitempty"`
	RevokedAt       string `json:"revoked_at,omitempty"`
	WorkflowID      string `json:"workflow_id,omitempty"`
}
