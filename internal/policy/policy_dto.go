package policy

type CreatePolicyRequest struct {
	Title   string `json:"title" binding:"required"`
	OwnerID string `json:"owner_id" binding:"required,uuid"`
	Content string `json:"content"`
}

type UpdatePolicyRequest struct {
	Title   string `json:"title" binding:"required"`
	OwnerID string `json:"owner_id" binding:"required,uuid"`
	Content string `json:"content"`
	Status  string `json:"status" binding:"required,oneof=DRAFT REVIEW APPROVED REJECTED ARCHIVED"`
}

type PolicyResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	OwnerID        string `json:"owner_id"`
	Status         string `json:"status"`
	LastReviewDate string `json:"last_review_date,omitempty"`
	Content        string `json:"content,omitempty"`
}
