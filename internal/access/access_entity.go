package access

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status access request.
const (
	StatusRequested = "REQUESTED"
	StatusApproved  = "APPROVED"
	StatusRevoked   = "REVOKED"
)

// Permission level yang dikenal.
const (
	PermissionRead  = "READ"
	PermissionWrite = "WRITE"
	PermissionAdmin = "ADMIN"
)

type Access struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_access_employee"`
	ResourceID      *uuid.UUID `gorm:"type:uuid;index:idx_access_resource"`
	HardwareRequest string     `gorm:"type:text"`
	PermissionLevel string     `gorm:"type:varchar(20);not null;default:'READ'"`
	Status          string     `gorm:"type:varchar(20);not null;default:'REQUESTED';index:idx_access_status"`
	ApproverID      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RevokedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_access_deleted_at"`
}

func (Access) TableName() string {
	return "access_records"
}
