package audit

import (
	"encoding/json"
	"time"
)

type AuditLogResponse struct {
	ID           string `json:"id"`
	EntityType   string `json:"entity_type"`
	EntityID     string `json:"entity_id"`
	ChangedBy    string `json:"changed_by"`
	FieldChanged string `json:"field_changed"`
	OldValue     string `json:"old_value"`
	NewValue     string `json:"new_value"`
	CreatedAt    string `json:"created_at"`
}

type TimelineActivityResponse struct {
	ID           string          `json:"id"`
	EntityType   string          `json:"entity_type"`
	EntityID     string          `json:"entity_id"`
	ActivityType string          `json:"activity_type"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	PerformedBy  string          `json:"performed_by"`
	CreatedAt    string          `json:"created_at"`
}

func mapAuditToResponse(l AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:           l.ID.String(),
		EntityType:   l.EntityType,
		EntityID:     l.EntityID.String(),
		ChangedBy:    l.ChangedBy.String(),
		FieldChanged: l.FieldChanged,
		OldValue:     l.OldValue,
		NewValue:     l.NewValue,
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
	}
}

func mapTimelineToResponse(a TimelineActivity) TimelineActivityResponse {
	return TimelineActivityResponse{
		ID:           a.ID.String(),
		EntityType:   a.EntityType,
		EntityID:     a.EntityID.String(),
		ActivityType: a.ActivityType,
		Title:        a.Title,
		Description:  a.Description,
		Metadata:     json.RawMessage(a.Metadata),
		PerformedBy:  a.PerformedBy.String(),
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
}
