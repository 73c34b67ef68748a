package policy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "DRAFT"
	StatusReview   = "REVIEW"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusArchived = "ARCHIVED"
)

type Policy struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title          string    `gorm:"type:varchar(200);not null"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index:idx_policies_owner"`
	Status         string    `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_policies_status"`
	LastReviewDate *time.Time
	Content        string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_policies_deleted_at"`
}
