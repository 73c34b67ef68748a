package approval

type CreateWorkflowRequest struct {
	Type       string         `json:"type" binding:"required,oneof=ACCESS_REQUEST POLICY_UPDATE_REQUEST DOCUMENT_REVIEW_REQUEST RESOURCE_REQUEST"`
	Data       map[string]any `json:"data"`
	PolicyID   string         `json:"policy_id" binding:"omitempty,uuid"`
	DocumentID string         `json:"document_id" binding:"omitempty,uuid"`
	ResourceID string         `json:"resource_id" binding:"omitempty,uuid"`
	Comments   string         `json:"comments"`
}

type DecideRequest struct {
	Action     string `json:"action" binding:"required,oneof=approve reject"`
	ApproverID string `json:"approver_id" binding:"omitempty,uuid"`
	Comments   string `json:"comments"`
}

type WorkflowResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	RequesterID string         `json:"requester_id"`
	ApproverID  string         `json:"approver_id,omitempty"`
	Status      string         `json:"status"`
	Data        map[string]any `json:"data,omitempty"`
	PolicyID    string         `json:"policy_id,omitempty"`
	DocumentID  string         `json:"document_id,omitempty"`
	ResourceID  string         `json:"resource_id,omitempty"`
	Comments    string         `json:"comments,omitempty"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}

// SideEffect melaporkan hasil enrichment pasca-commit; gagal di sini tidak
// membatalkan keputusan yang sudah tersimpan.
type SideEffect struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type DecisionResponse struct {
	Workflow    WorkflowResponse `json:"workflow"`
	SideEffects []SideEffect     `json:"side_effects"`
}
