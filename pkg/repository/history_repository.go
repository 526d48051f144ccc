package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdeck/pkg/domain"
)

// HistoryRepository records visited articles and reports recently visited domains
type HistoryRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db, now: time.Now}
}

// RecordVisit stores a visit of the url, keyed by its registrable domain
func (r *HistoryRepository) RecordVisit(ctx context.Context, url string) error {
	dom := domain.RegistrableDomain(url)
	if dom == "" {
		return errors.New("no domain in url")
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	visitedAt := r.now().UTC()

	return retrier.Do(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "INSERT INTO visits (domain, url, visited_at) VALUES (?, ?, ?)",
			dom, url, visitedAt)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("record visit: %w", err)}
		}
		return nil
	})
}

// RecentDomains returns up to limit distinct domains, most recently visited first
func (r *HistoryRepository) RecentDomains(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	query := `
		SELECT domain FROM visits
		GROUP BY domain
		ORDER BY MAX(visited_at) DESC, MAX(id) DESC
		LIMIT ?
	`
	res := []string{}
	if err := r.db.SelectContext(ctx, &res, query, limit); err != nil {
		return nil, fmt.Errorf("get recent domains: %w", err)
	}
	return res, nil
}

// PruneVisits deletes visits older than the retention period and returns the number removed
func (r *HistoryRepository) PruneVisits(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := r.now().UTC().Add(-retention)
	result, err := r.db.ExecContext(ctx, "DELETE FROM visits WHERE visited_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune visits: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get affected rows: %w", err)
	}
	return n, nil
}
