package store

import (
	"context"
	"fmt"
)

// Notification is one audit row describing a sent notification.
type Notification struct {
	BookID   string
	Type     string
	Channels string
	Payload  string
	Status   string
}

// InsertNotification appends a notification audit record.
func (s *Store) InsertNotification(ctx context.Context, n Notification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (book_id, type, channels, payload, status)
		VALUES (?,?,?,?,?)`,
		n.BookID, n.Type, n.Channels, n.Payload, n.Status,
	)
	if err != nil {
		return fmt.Errorf("insert notification for %s: %w", n.BookID, err)
	}
	return nil
}

// ListNotifications returns the audit records for a book, newest first.
func (s *Store) ListNotifications(ctx context.Context, bookID string) ([]Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, type, channels, payload, status
		FROM notifications WHERE book_id=? ORDER BY id DESC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("list notifications for %s: %w", bookID, err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.BookID, &n.Type, &n.Channels, &n.Payload, &n.Status); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
