// Package audit persists record lifecycle events published on the event bus.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Log is one row of audit_logs. EntityID and PerformedBy are empty for
// batch events and anonymous callers.
type Log struct {
	ID          string            `json:"id" gorm:"type:uuid;primaryKey"`
	Action      string            `json:"action" gorm:"type:varchar(50);not null;index"`
	EntityType  string            `json:"entity_type" gorm:"type:varchar(50);not null"`
	EntityID    *string           `json:"entity_id" gorm:"type:uuid;index"`
	Metadata    datatypes.JSONMap `json:"metadata" gorm:"type:jsonb"`
	PerformedBy *string           `json:"performed_by"`
	CreatedAt   time.Time         `json:"created_at"`
}

func (Log) TableName() string {
	return "audit_logs"
}

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

// Filter narrows a listing. From and To are inclusive calendar days in UTC.
type Filter struct {
	EntityID   string
	Action     string
	EntityType string
	From       datamodel.Date
	To         datamodel.Date
	Limit      int
}

type Repository interface {
	Create(ctx context.Context, log *Log) error
	List(ctx context.Context, filter Filter) ([]*Log, error)
}

type Subscriber interface {
	SubscribeAll(eventTypes []string, handler events.Handler)
}

type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Register subscribes the recorder to every audited event type.
func (r *Recorder) Register(bus Subscriber) {
	bus.SubscribeAll(events.AuditedEventTypes, r.Handle)
}

func (r *Recorder) Handle(ctx context.Context, event events.Event) error {
	entry := &Log{
		ID:         uuid.New().String(),
		Action:     event.EventType(),
		EntityType: "unknown",
		CreatedAt:  event.OccurredAt().UTC(),
	}
	if data, ok := event.Payload().(map[string]interface{}); ok {
		entry.Metadata = datatypes.JSONMap(data)
	}

	if rec, ok := event.(*events.RecordEvent); ok {
		entry.EntityType = rec.Kind
		if rec.RecordID != "" {
			id := rec.RecordID
			entry.EntityID = &id
		}
		if rec.PerformedBy != "" {
			actor := rec.PerformedBy
			entry.PerformedBy = &actor
		}
	}

	if err := r.repo.Create(ctx, entry); err != nil {
		r.logger.Error("Handle: failed to write audit log",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
		return err
	}

	r.logger.Debug("Handle: audit log written", "action", entry.Action, "entity_type", entry.EntityType)
	return nil
}
