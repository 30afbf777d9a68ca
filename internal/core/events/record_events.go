package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRecordCreated       = "record.created"
	EventTypeRecordUpdated       = "record.updated"
	EventTypeRecordDeleted       = "record.deleted"
	EventTypePolicyStatusChanged = "policy.status_changed"
	EventTypePoliciesExpired     = "policy.expired"
)

// AuditedEventTypes lists the events persisted to the audit log.
var AuditedEventTypes = []string{
	EventTypeRecordCreated,
	EventTypeRecordUpdated,
	EventTypeRecordDeleted,
	EventTypePolicyStatusChanged,
	EventTypePoliciesExpired,
}

// RecordEvent reports a change to one stored record.
type RecordEvent struct {
	BaseEvent
	Kind        string `json:"kind"`
	RecordID    string `json:"record_id"`
	PerformedBy string `json:"performed_by,omitempty"`
}

// NewRecordEvent builds an event for kind/recordID. details is copied into the payload.
func NewRecordEvent(eventType, kind, recordID, performedBy string, details map[string]interface{}) *RecordEvent {
	data := map[string]interface{}{
		"kind":      kind,
		"record_id": recordID,
	}
	for k, v := range details {
		data[k] = v
	}
	if performedBy != "" {
		data["performed_by"] = performedBy
	}

	return &RecordEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now().UTC(),
			Data:      data,
		},
		Kind:        kind,
		RecordID:    recordID,
		PerformedBy: performedBy,
	}
}
