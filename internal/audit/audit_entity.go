package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog adalah catatan perubahan level field. Append-only: tidak pernah
// di-update atau dihapus.
type AuditLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType   string    `gorm:"type:varchar(50);not null;index:idx_audit_logs_entity"`
	EntityID     uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_logs_entity"`
	ChangedBy    uuid.UUID `gorm:"type:uuid;not null"`
	FieldChanged string    `gorm:"type:varchar(100);not null"`
	OldValue     string    `gorm:"type:text"`
	NewValue     string    `gorm:"type:text"`
	CreatedAt    time.Time
}

// TimelineActivity adalah catatan aktivitas bisnis yang human-readable.
// Append-only seperti AuditLog.
type TimelineActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityType   string    `gorm:"type:varchar(50);not null;index:idx_timeline_entity"`
	EntityID     uuid.UUID `gorm:"type:uuid;not null;index:idx_timeline_entity"`
	ActivityType string    `gorm:"type:varchar(60);not null"`
	Title        string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text"`
	Metadata     []byte    `gorm:"type:jsonb"`
	PerformedBy  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
}
