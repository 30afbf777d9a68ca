// Package dashboard computes the summary figures shown on the landing page.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const recentWindow = 30 * 24 * time.Hour

type Stats struct {
	TotalPolicies      int64   `json:"total_policies"`
	ActivePolicies     int64   `json:"active_policies"`
	ExpiredPolicies    int64   `json:"expired_policies"`
	TotalPremium       float64 `json:"total_premium"`
	TotalEntities      int64   `json:"total_entities"`
	RecentEndorsements int64   `json:"recent_endorsements"`
}

// Aggregator runs each figure as its own read. The result is not a
// point-in-time snapshot and nothing is cached.
type Aggregator struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

func NewAggregator(db *sqlx.DB, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (a *Aggregator) Compute(ctx context.Context) (*Stats, error) {
	var stats Stats

	counts := []struct {
		name  string
		dest  *int64
		query string
		args  []interface{}
	}{
		{"total_policies", &stats.TotalPolicies, `SELECT COUNT(*) FROM policies`, nil},
		{"active_policies", &stats.ActivePolicies, `SELECT COUNT(*) FROM policies WHERE status = ?`, []interface{}{"ACTIVE"}},
		{"expired_policies", &stats.ExpiredPolicies, `SELECT COUNT(*) FROM policies WHERE status = ?`, []interface{}{"EXPIRED"}},
		{"total_entities", &stats.TotalEntities, `SELECT COUNT(*) FROM entities`, nil},
		{"recent_endorsements", &stats.RecentEndorsements, `SELECT COUNT(*) FROM endorsements WHERE created_at >= ?`,
			[]interface{}{a.now().UTC().Add(-recentWindow)}},
	}
	for _, c := range counts {
		if err := a.db.GetContext(ctx, c.dest, a.db.Rebind(c.query), c.args...); err != nil {
			a.logger.Error("Compute: aggregate query failed", "figure", c.name, "error", err)
			return nil, internal.NewInternalError("Failed to compute dashboard stats", err)
		}
	}

	var premium decimal.Decimal
	query := a.db.Rebind(`SELECT COALESCE(SUM(premium_amount), 0) FROM policies WHERE status = ?`)
	if err := a.db.GetContext(ctx, &premium, query, "ACTIVE"); err != nil {
		a.logger.Error("Compute: aggregate query failed", "figure", "total_premium", "error", err)
		return nil, internal.NewInternalError("Failed to compute dashboard stats", err)
	}
	stats.TotalPremium = premium.InexactFloat64()

	a.logger.Debug("Compute: dashboard stats computed", "total_policies", stats.TotalPolicies)
	return &stats, nil
}
