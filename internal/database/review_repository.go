package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/example/ankistats/pkg/models"
)

// ReviewLogRepository reads the revlog table of an Anki collection
type ReviewLogRepository struct {
	db   *sqlx.DB
	mode models.DateMode
}

// NewReviewLogRepository creates a new repository instance
func NewReviewLogRepository(db *sqlx.DB, mode models.DateMode) *ReviewLogRepository {
	if !mode.Valid() {
		mode = models.DateUTC
	}
	return &ReviewLogRepository{db: db, mode: mode}
}

// HasReviewLog checks that the database looks like an Anki collection
func (r *ReviewLogRepository) HasReviewLog(ctx context.Context) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'revlog'`)
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %v", err)
	}
	return n > 0, nil
}

// DailyCounts returns the number of reviews per day, ascending by date.
// revlog.id is the review time in milliseconds since the Unix epoch.
func (r *ReviewLogRepository) DailyCounts(ctx context.Context) (models.DailyCounts, error) {
	counts := models.DailyCounts{}
	err := r.db.SelectContext(ctx, &counts, dailyCountsQuery(r.mode))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily review counts: %v", err)
	}
	if counts == nil {
		counts = models.DailyCounts{}
	}
	return counts, nil
}

func dailyCountsQuery(mode models.DateMode) string {
	modifiers := "'unixepoch'"
	if mode == models.DateLocal {
		modifiers += ", 'localtime'"
	}
	return `
        SELECT
            date(id / 1000, ` + modifiers + `) AS review_date,
            COUNT(*) AS review_count
        FROM revlog
        GROUP BY review_date
        ORDER BY review_date
    `
}
