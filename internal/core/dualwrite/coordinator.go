// Package dualwrite keeps an insured record and its shadow row in the entities
// table consistent. Every write touches both rows inside one transaction.
package dualwrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/uniqueness"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is implemented by the pointer types of the insured record models.
type Record interface {
	TableName() string
	GetID() string
	SetID(id string)
	GetCompanyID() string
	// Describe renders the description stored on the paired Entity row.
	Describe() string
	// NaturalKey is the business identifier checked by the uniqueness guard.
	NaturalKey() string
	// Columns holds the mutable columns written on update.
	Columns() map[string]interface{}
}

// Kind is the per-variant descriptor: the Entity type tag, a label for
// messages, the natural-key rule and a constructor for an empty record.
type Kind[R Record] struct {
	Type  entity.Type
	Label string
	Rule  uniqueness.Rule
	New   func() R
}

func (k Kind[R]) notFound() *internal.AppError {
	return internal.NewNotFoundError(k.Label+" not found", internal.ErrCodeRecordNotFound)
}

type Coordinator[R Record] struct {
	db     *gorm.DB
	guard  *uniqueness.Guard
	kind   Kind[R]
	logger *slog.Logger
	now    func() time.Time
}

func NewCoordinator[R Record](db *gorm.DB, guard *uniqueness.Guard, kind Kind[R], logger *slog.Logger) *Coordinator[R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator[R]{
		db:     db,
		guard:  guard,
		kind:   kind,
		logger: logger.With("kind", kind.Label),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (c *Coordinator[R]) Kind() Kind[R] {
	return c.kind
}

// Create inserts rec and its Entity row. Either both rows exist afterwards or neither does.
func (c *Coordinator[R]) Create(ctx context.Context, rec R) (R, *entity.Entity, error) {
	var zero R
	now := c.now()
	rec.SetID(uuid.NewString())

	description := rec.Describe()
	shadow := &entity.Entity{
		ID:          uuid.NewString(),
		CompanyID:   rec.GetCompanyID(),
		Type:        c.kind.Type,
		EntityID:    rec.GetID(),
		Description: &description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := c.checkUnique(ctx, tx, rec, ""); err != nil {
			return err
		}
		if err := tx.Create(rec).Error; err != nil {
			return c.storageError("Create", err)
		}
		if err := tx.Create(shadow).Error; err != nil {
			return c.storageError("Create", err)
		}
		return nil
	})
	if err != nil {
		return zero, nil, err
	}

	c.logger.Info("Create: record created", "id", rec.GetID(), "entity_id", shadow.ID)
	return rec, shadow, nil
}

func (c *Coordinator[R]) Get(ctx context.Context, id string) (R, error) {
	var zero R
	rec := c.kind.New()
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, c.kind.notFound()
		}
		return zero, c.storageError("Get", err)
	}
	return rec, nil
}

// List returns records newest first, optionally restricted to one company.
func (c *Coordinator[R]) List(ctx context.Context, companyID string) ([]R, error) {
	records := make([]R, 0)
	query := c.db.WithContext(ctx).Table(c.kind.New().TableName()).Order("created_at DESC")
	if companyID != "" {
		query = query.Where("company_id = ?", companyID)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, c.storageError("List", err)
	}
	return records, nil
}

// Update rewrites the record's mutable columns and re-derives the Entity description.
func (c *Coordinator[R]) Update(ctx context.Context, id string, rec R) (R, error) {
	var zero R
	now := c.now()
	rec.SetID(id)

	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Table(rec.TableName()).Where("id = ?", id).Count(&existing).Error; err != nil {
			return c.storageError("Update", err)
		}
		if existing == 0 {
			return c.kind.notFound()
		}

		if err := c.checkUnique(ctx, tx, rec, id); err != nil {
			return err
		}

		columns := rec.Columns()
		columns["updated_at"] = now
		res := tx.Table(rec.TableName()).Where("id = ?", id).Updates(columns)
		if res.Error != nil {
			return c.storageError("Update", res.Error)
		}
		if res.RowsAffected == 0 {
			return c.kind.notFound()
		}

		res = tx.Model(&entity.Entity{}).
			Where("entity_id = ? AND type = ?", id, c.kind.Type).
			Updates(map[string]interface{}{
				"description": rec.Describe(),
				"company_id":  rec.GetCompanyID(),
				"updated_at":  now,
			})
		if res.Error != nil {
			return c.storageError("Update", res.Error)
		}

		if err := tx.Where("id = ?", id).First(rec).Error; err != nil {
			return c.storageError("Update", err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	c.logger.Info("Update: record updated", "id", id)
	return rec, nil
}

// Delete removes the Entity row and then the record. If the record does not
// exist the transaction is rolled back, so the Entity row is never lost alone.
func (c *Coordinator[R]) Delete(ctx context.Context, id string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_id = ? AND type = ?", id, c.kind.Type).Delete(&entity.Entity{}).Error; err != nil {
			return c.storageError("Delete", err)
		}
		res := tx.Where("id = ?", id).Delete(c.kind.New())
		if res.Error != nil {
			return c.storageError("Delete", res.Error)
		}
		if res.RowsAffected == 0 {
			return c.kind.notFound()
		}
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("Delete: record deleted", "id", id)
	return nil
}

func (c *Coordinator[R]) checkUnique(ctx context.Context, tx *gorm.DB, rec R, excludeID string) error {
	if c.guard == nil {
		return nil
	}
	scope := ""
	if c.kind.Rule.Scoped() {
		scope = rec.GetCompanyID()
	}
	return c.guard.Check(ctx, tx, c.kind.Rule, rec.NaturalKey(), scope, excludeID)
}

func (c *Coordinator[R]) storageError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return uniqueness.Conflict(c.kind.Rule)
	}
	c.logger.Error(op+": storage failure", "error", err)
	return internal.NewInternalError(fmt.Sprintf("Failed to %s %s", strings.ToLower(op), strings.ToLower(c.kind.Label)), err)
}
