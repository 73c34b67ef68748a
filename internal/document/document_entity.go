package document

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

type Document struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_owner"`
	Category    string    `gorm:"type:varchar(80)"`
	Status      string    `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	StoragePath string    `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_documents_deleted_at"`
}
