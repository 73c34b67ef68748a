package audit

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	CreateAuditLog(ctx context.Context, entry *AuditLog) error
	CreateTimelineActivity(ctx context.Context, activity *TimelineActivity) error
	FindAuditLogs(ctx context.Context, entityType string, offset, limit int) ([]AuditLog, int64, error)
	FindTimeline(ctx context.Context, entityType, entityID string, offset, limit int) ([]TimelineActivity, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateAuditLog(ctx context.Context, entry *AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) CreateTimelineActivity(ctx context.Context, activity *TimelineActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repository) FindAuditLogs(ctx context.Context, entityType string, offset, limit int) ([]AuditLog, int64, error) {
	var logs []AuditLog
	var total int64

	q := r.db.WithContext(ctx).Model(&AuditLog{})
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}

func (r *repository) FindTimeline(ctx context.Context, entityType, entityID string, offset, limit int) ([]TimelineActivity, int64, error) {
	var activities []TimelineActivity
	var total int64

	q := r.db.WithContext(ctx).Model(&TimelineActivity{}).
		Where("entity_type = ?", entityType).
		Where("entity_id = ?", entityID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, total, err
}
