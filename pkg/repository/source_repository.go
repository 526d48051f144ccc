package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newsdeck/pkg/domain"
)

// SourceRepository keeps user overrides of publisher enabled flags
type SourceRepository struct {
	db *sqlx.DB
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// LoadOverrides returns all stored overrides ordered by publisher id
func (r *SourceRepository) LoadOverrides(ctx context.Context) ([]domain.Override, error) {
	var res []domain.Override
	if err := r.db.SelectContext(ctx, &res,
		"SELECT publisher_id, enabled FROM source_overrides ORDER BY publisher_id"); err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	return res, nil
}

// SetEnabled stores the enabled flag of a publisher, replacing the previous one
func (r *SourceRepository) SetEnabled(ctx context.Context, publisherID string, enabled bool) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO source_overrides (publisher_id, enabled, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(publisher_id) DO UPDATE SET enabled = excluded.enabled, updated_at = excluded.updated_at
		`
		if _, err := r.db.ExecContext(ctx, query, publisherID, enabled, time.Now().UTC()); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set enabled for %s: %w", publisherID, err)}
		}
		return nil
	})
}

// DeleteOverride drops the stored flag so the publisher default applies again
func (r *SourceRepository) DeleteOverride(ctx context.Context, publisherID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM source_overrides WHERE publisher_id = ?", publisherID); err != nil {
		return fmt.Errorf("delete override for %s: %w", publisherID, err)
	}
	return nil
}
