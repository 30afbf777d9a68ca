// Package search runs a free-text query across policies, one insured-record
// table and endorsements.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/internal/core/datamodel/entity"
	"github.com/Rutuja-Parab/policyzen/internal/core/normalize"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const resultLimit = 10

type Results struct {
	Policies     []map[string]any `json:"policies"`
	Entities     []map[string]any `json:"entities"`
	Endorsements []map[string]any `json:"endorsements"`
}

// target is a table and the columns matched against the query. Drivers hand
// NUMERIC columns back as text, so numeric lists the ones sent as JSON numbers.
type target struct {
	table   string
	columns []string
	numeric []string
}

var (
	policyTarget = target{
		table:   "policies",
		columns: []string{"policy_number", "provider"},
		numeric: []string{"sum_insured", "premium_amount"},
	}
	endorsementTarget = target{table: "endorsements", columns: []string{"endorsement_number", "description"}}

	entityTargets = map[entity.Type]target{
		entity.TypeEmployee: {table: "employees", columns: []string{"name", "employee_code"}},
		entity.TypeStudent:  {table: "students", columns: []string{"name", "student_id"}},
		entity.TypeShip:     {table: "vessels", columns: []string{"vessel_name", "imo_number"}},
		entity.TypeVehicle:  {table: "vehicles", columns: []string{"registration_number", "make", "model"}},
	}
)

func (t target) query() string {
	conds := make([]string, len(t.columns))
	for i, col := range t.columns {
		conds[i] = fmt.Sprintf("LOWER(%s) LIKE ?", col)
	}
	return fmt.Sprintf("SELECT * FROM %s WHERE %s LIMIT %d", t.table, strings.Join(conds, " OR "), resultLimit)
}

func (t target) decodeNumeric(row map[string]any) {
	for _, col := range t.numeric {
		var raw string
		switch v := row[col].(type) {
		case string:
			raw = v
		case []byte:
			raw = string(v)
		default:
			continue
		}
		if d, err := decimal.NewFromString(raw); err == nil {
			row[col] = d.InexactFloat64()
		}
	}
}

type Searcher struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSearcher(db *sqlx.DB, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{db: db, logger: logger}
}

// Search matches q as a case-insensitive substring. Entities are only searched
// when entityType names a record table; anything else leaves them empty.
func (s *Searcher) Search(ctx context.Context, q, entityType string) (*Results, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, internal.NewValidationFieldError("q", "q is required", internal.ErrCodeValidationFailed)
	}
	pattern := "%" + strings.ToLower(q) + "%"

	results := &Results{Entities: []map[string]any{}}

	var err error
	if results.Policies, err = s.find(ctx, policyTarget, pattern); err != nil {
		return nil, err
	}

	if t, ok := entity.ParseType(entityType); ok {
		if et, found := entityTargets[t]; found {
			if results.Entities, err = s.find(ctx, et, pattern); err != nil {
				return nil, err
			}
		}
	}

	if results.Endorsements, err = s.find(ctx, endorsementTarget, pattern); err != nil {
		return nil, err
	}

	s.logger.Debug("Search: completed",
		"query", q,
		"entity_type", entityType,
		"policies", len(results.Policies),
		"entities", len(results.Entities),
		"endorsements", len(results.Endorsements),
	)
	return results, nil
}

func (s *Searcher) find(ctx context.Context, t target, pattern string) ([]map[string]any, error) {
	args := make([]interface{}, len(t.columns))
	for i := range args {
		args[i] = pattern
	}

	rows, err := s.db.QueryxContext(ctx, s.db.Rebind(t.query()), args...)
	if err != nil {
		s.logger.Error("Search: query failed", "table", t.table, "error", err)
		return nil, internal.NewInternalError("Search failed", err)
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			s.logger.Error("Search: scan failed", "table", t.table, "error", err)
			return nil, internal.NewInternalError("Search failed", err)
		}
		t.decodeNumeric(row)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		s.logger.Error("Search: row iteration failed", "table", t.table, "error", err)
		return nil, internal.NewInternalError("Search failed", err)
	}
	return normalize.Rows(out), nil
}
