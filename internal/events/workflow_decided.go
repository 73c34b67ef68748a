package events

import "time"

const WorkflowDecidedTopic = "portal.workflow.decision.v1"

type WorkflowDecidedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	WorkflowID   string    `json:"workflow_id"`
	WorkflowType string    `json:"workflow_type"`
	Status       string    `json:"status"`
	ApproverID   string    `json:"approver_id"`
	RequesterID  string    `json:"requester_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
