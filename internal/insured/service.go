// Package insured exposes the CRUD surface shared by employees, students,
// vessels and vehicles. Storage goes through the dual-write coordinator.
package insured

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/dualwrite"
	"github.com/Rutuja-Parab/policyzen/internal/core/events"
)

// Store is satisfied by *dualwrite.Coordinator.
type Store[R dualwrite.Record] interface {
	Create(ctx context.Context, rec R) (R, *entity.Entity, error)
	Get(ctx context.Context, id string) (R, error)
	List(ctx context.Context, companyID string) ([]R, error)
	Update(ctx context.Context, id string, rec R) (R, error)
	Delete(ctx context.Context, id string) error
}

type Service[R dualwrite.Record] struct {
	store     Store[R]
	publisher events.Publisher
	label     string
	logger    *slog.Logger
}

func NewService[R dualwrite.Record](store Store[R], publisher events.Publisher, label string, logger *slog.Logger) *Service[R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service[R]{
		store:     store,
		publisher: publisher,
		label:     label,
		logger:    logger,
	}
}

func (s *Service[R]) Label() string {
	return s.label
}

func (s *Service[R]) Create(ctx context.Context, rec R) (R, error) {
	created, shadow, err := s.store.Create(ctx, rec)
	if err != nil {
		s.logger.Warn("Create: failed", "kind", s.label, "error", err)
		return created, err
	}
	s.publish(ctx, events.EventTypeRecordCreated, created, map[string]interface{}{
		"entity_row_id": shadow.ID,
		"natural_key":   created.NaturalKey(),
	})
	return created, nil
}

func (s *Service[R]) Get(ctx context.Context, id string) (R, error) {
	return s.store.Get(ctx, id)
}

func (s *Service[R]) List(ctx context.Context, companyID string) ([]R, error) {
	return s.store.List(ctx, strings.TrimSpace(companyID))
}

func (s *Service[R]) Update(ctx context.Context, id string, rec R) (R, error) {
	updated, err := s.store.Update(ctx, id, rec)
	if err != nil {
		s.logger.Warn("Update: failed", "kind", s.label, "id", id, "error", err)
		return updated, err
	}
	s.publish(ctx, events.EventTypeRecordUpdated, updated, map[string]interface{}{
		"natural_key": updated.NaturalKey(),
		"description": updated.Describe(),
	})
	return updated, nil
}

func (s *Service[R]) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("Delete: failed", "kind", s.label, "id", id, "error", err)
		return err
	}
	if s.publisher != nil {
		ev := events.NewRecordEvent(events.EventTypeRecordDeleted, s.kindName(), id, internal.ActorFromContext(ctx), nil)
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Error("Delete: failed to publish event", "id", id, "error", err)
		}
	}
	return nil
}

func (s *Service[R]) publish(ctx context.Context, eventType string, rec R, details map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	ev := events.NewRecordEvent(eventType, s.kindName(), rec.GetID(), internal.ActorFromContext(ctx), details)
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Error("failed to publish record event", "event_type", eventType, "id", rec.GetID(), "error", err)
	}
}

func (s *Service[R]) kindName() string {
	return strings.ToLower(s.label)
}
