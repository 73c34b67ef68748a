package approval

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipe workflow yang dikenal orchestrator.
const (
	TypeAccessRequest       = "ACCESS_REQUEST"
	TypePolicyUpdateRequest = "POLICY_UPDATE_REQUEST"
	TypeDocumentReview      = "DOCUMENT_REVIEW_REQUEST"
	TypeResourceRequest     = "RESOURCE_REQUEST"
)

// Status workflow: PENDING satu-satunya status non-terminal.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

func IsValidType(workflowType string) bool {
	switch workflowType {
	case TypeAccessRequest, TypePolicyUpdateRequest, TypeDocumentReview, TypeResourceRequest:
		return true
	}
	return false
}

type ApprovalWorkflow struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Type        string     `gorm:"type:varchar(40);not null;index:idx_workflows_type"`
	RequesterID uuid.UUID  `gorm:"type:uuid;not null;index:idx_workflows_requester"`
	ApproverID  *uuid.UUID `gorm:"type:uuid"`
	Status      string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_workflows_status"`
	Data        []byte     `gorm:"type:jsonb"`
	PolicyID    *uuid.UUID `gorm:"type:uuid"`
	DocumentID  *uuid.UUID `gorm:"type:uuid"`
	ResourceID  *uuid.UUID `gorm:"type:uuid"`
	Comments    string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_workflows_deleted_at"`
}

func (ApprovalWorkflow) TableName() string {
	return "approval_workflows"
}
