package database

import (
	"context"
	"fmt"

	"github.com/example/ankistats/pkg/models"
)

// ExtractDailyCounts opens the collection at path, reads the per-day review
// counts and closes the connection before returning
func ExtractDailyCounts(ctx context.Context, path string, mode models.DateMode) (counts models.DailyCounts, err error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %v", ErrDatabaseUnreadable, path, cerr)
			counts = nil
		}
	}()

	repo := NewReviewLogRepository(db, mode)

	ok, err := repo.HasReviewLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseUnreadable, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s has no revlog table", ErrDatabaseUnreadable, path)
	}

	counts, err = repo.DailyCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseUnreadable, err)
	}
	return counts, nil
}
