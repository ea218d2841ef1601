package store

import (
	"context"
	"fmt"
)

// Discovery queries used by the worker to find books eligible for a run.
// Each returns ids only; the worker unions and deduplicates them.

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("discovery query: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PendingOutline returns books that still need an outline and have the
// pre-outline notes required to generate one.
func (s *Store) PendingOutline(ctx context.Context, limit int) ([]string, error) {
	return s.queryIDs(ctx, `
		SELECT id FROM books
		WHERE outline_status=? AND TRIM(COALESCE(notes_on_outline_before,''))<>''
		LIMIT ?`, OutlineStatusPending, limit)
}

// ApprovedNotStarted returns books with an approved outline whose output
// has not been started.
func (s *Store) ApprovedNotStarted(ctx context.Context, limit int) ([]string, error) {
	return s.queryIDs(ctx, `
		SELECT id FROM books
		WHERE outline_status=? AND book_output_status=?
		LIMIT ?`, OutlineStatusApproved, OutputStatusNotStarted, limit)
}

// ApprovedInProgress returns books with an approved outline whose output is
// either not started or mid-generation.
func (s *Store) ApprovedInProgress(ctx context.Context, limit int) ([]string, error) {
	return s.queryIDs(ctx, `
		SELECT id FROM books
		WHERE outline_status=? AND book_output_status IN (?,?)
		LIMIT ?`, OutlineStatusApproved, OutputStatusNotStarted, OutputStatusInProgress, limit)
}
