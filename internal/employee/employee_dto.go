package employee

type CreateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
	ManagerID  string `json:"manager_id" binding:"omitempty,uuid"`
}

type UpdateEmployeeRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required"`
	Department string `json:"department"`
	Status     string `json:"status" binding:"required"`
	ManagerID  string `json:"manager_id" binding:"omitempty,uuid"`
}

type ReassignOwnershipRequest struct {
	FromEmployeeID string `json:"from_employee_id" binding:"required,uuid"`
	ToEmployeeID   string `json:"to_employee_id" binding:"required,uuid"`
}

type ReassignOwnershipResponse struct {
	FromEmployeeID      string `json:"from_employee_id"`
	ToEmployeeID        string `json:"to_employee_id"`
	PoliciesReassigned  int64  `json:"policies_reassigned"`
	DocumentsReassigned int64  `json:"documents_reassigned"`
	ResourcesReassigned int64  `json:"resources_reassigned"`
	CustodiesReassigned int64  `json:"custodies_reassigned"`
	ReportsRepointed    int64  `json:"reports_repointed"`
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Status     string `json:"status"`
	ManagerID  string `json:"manager_id,omitempty"`

	Manager *EmployeeManagerResponse `json:"manager,omitempty"`
}

type EmployeeManagerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
