package assignment

import (
	"time"

	"github.com/google/uuid"
)

// Status assignment. ACTIVE satu-satunya status yang masih bisa berubah;
// sisanya terminal.
const (
	StatusActive   = "ACTIVE"
	StatusReturned = "RETURNED"
	StatusLost     = "LOST"
	StatusDamaged  = "DAMAGED"
	StatusRevoked  = "REVOKED"
)

func IsTerminalStatus(status string) bool {
	switch status {
	case StatusReturned, StatusLost, StatusDamaged, StatusRevoked:
		return true
	}
	return false
}

type ResourceAssignment struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ResourceID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_assignments_resource"`
	EmployeeID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_assignments_employee"`
	ItemID           *uuid.UUID `gorm:"type:uuid;index:idx_assignments_item"`
	QuantityAssigned int        `gorm:"type:int;not null;default:1"`
	AssignedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	Status           string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index:idx_assignments_status"`
	Notes            string     `gorm:"type:text"`
	AssignedAt       time.Time
	ReturnedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ResourceAssignment) TableName() string {
	return "resource_assignments"
}
