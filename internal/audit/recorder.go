package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity types yang dipakai lintas modul.
const (
	EntityWorkflow   = "APPROVAL_WORKFLOW"
	EntityAssignment = "RESOURCE_ASSIGNMENT"
	EntityResource   = "RESOURCE"
	EntityEmployee   = "EMPLOYEE"
	EntityAccess     = "ACCESS"
	EntityPolicy     = "POLICY"
	EntityDocument   = "DOCUMENT"
)

type AuditEntry struct {
	EntityType   string
	EntityID     string
	ChangedBy    string
	FieldChanged string
	OldValue     string
	NewValue     string
}

type TimelineEntry struct {
	EntityType   string
	EntityID     string
	ActivityType string
	Title        string
	Description  string
	Metadata     map[string]any
	PerformedBy  string
}

// Recorder menulis audit log dan timeline activity secara best-effort:
// kegagalan hanya di-log, tidak pernah menggagalkan operasi pemanggil.
//
//go:generate mockgen -source=recorder.go -destination=mock/recorder_mock.go -package=mock
type Recorder interface {
	Audit(ctx context.Context, entry AuditEntry)
	Timeline(ctx context.Context, entry TimelineEntry)
}

type recorder struct {
	repo   Repository
	logger *zap.Logger
}

func NewRecorder(repo Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("audit.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.recorder")
	}
	return &recorder{repo: repo, logger: l}
}

func (r *recorder) Audit(ctx context.Context, entry AuditEntry) {
	entityID, err := uuid.Parse(entry.EntityID)
	if err != nil {
		r.logger.Error("audit entry invalid entity id",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
		return
	}
	changedBy, err := uuid.Parse(entry.ChangedBy)
	if err != nil {
		r.logger.Error("audit entry invalid changed_by",
			zap.String("entity_type", entry.EntityType),
			zap.String("changed_by", entry.ChangedBy),
			zap.Error(err),
		)
		return
	}

	row := &AuditLog{
		ID:           uuid.New(),
		EntityType:   entry.EntityType,
		EntityID:     entityID,
		ChangedBy:    changedBy,
		FieldChanged: entry.FieldChanged,
		OldValue:     entry.OldValue,
		NewValue:     entry.NewValue,
	}

	if err := r.repo.CreateAuditLog(ctx, row); err != nil {
		r.logger.Error("audit log write failed",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.String("field", entry.FieldChanged),
			zap.Error(err),
		)
	}
}

func (r *recorder) Timeline(ctx context.Context, entry TimelineEntry) {
	entityID, err := uuid.Parse(entry.EntityID)
	if err != nil {
		r.logger.Error("timeline entry invalid entity id",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
		return
	}
	performedBy, err := uuid.Parse(entry.PerformedBy)
	if err != nil {
		r.logger.Error("timeline entry invalid performed_by",
			zap.String("entity_type", entry.EntityType),
			zap.String("performed_by", entry.PerformedBy),
			zap.Error(err),
		)
		return
	}

	var metadata []byte
	if entry.Metadata != nil {
		metadata, err = json.Marshal(entry.Metadata)
		if err != nil {
			r.logger.Error("timeline metadata marshal failed",
				zap.String("entity_type", entry.EntityType),
				zap.Error(err),
			)
			metadata = nil
		}
	}

	row := &TimelineActivity{
		ID:           uuid.New(),
		EntityType:   entry.EntityType,
		EntityID:     entityID,
		ActivityType: entry.ActivityType,
		Title:        entry.Title,
		Description:  entry.Description,
		Metadata:     metadata,
		PerformedBy:  performedBy,
	}

	if err := r.repo.CreateTimelineActivity(ctx, row); err != nil {
		r.logger.Error("timeline write failed",
			zap.String("entity_type", entry.EntityType),
			zap.String("entity_id", entry.EntityID),
			zap.String("activity_type", entry.ActivityType),
			zap.Error(err),
		)
	}
}
