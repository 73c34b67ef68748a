package assignment

// Action pada PUT /assignments/:id.
const (
	ActionReturn       = "return"
	ActionRevoke       = "revoke"
	ActionUpdateStatus = "update_status"
)

type CreateAssignmentRequest struct {
	ResourceID string `json:"resource_id" binding:"required,uuid"`
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	ItemID     string `json:"item_id" binding:"omitempty,uuid"`
	Quantity   int    `json:"quantity" binding:"omitempty,min=1"`
	Notes      string `json:"notes"`
}

type UpdateAssignmentRequest struct {
	Action string `json:"action" binding:"required,oneof=return revoke update_status"`
	Status string `json:"status" binding:"omitempty,oneof=RETURNED LOST DAMAGED REVOKED"`
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

type AssignmentResponse struct {
	ID               string `json:"id"`
	ResourceID       string `json:"resource_id"`
	EmployeeID       string `json:"employee_id"`
	ItemID           string `json:"item_id,omitempty"`
	QuantityAssigned int    `json:"quantity_assigned"`
	AssignedBy       string `json:"assigned_by"`
	Status           string `json:"status"`
	Notes            string `json:"notes,omitempty"`
	AssignedAt       string `json:"assigned_at"`
	ReturnedAt       string `json:"returned_at,omitempty"`
}
