package repository

import (
	"context"
	"fmt"

	"cinecatch/internal/database"
	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// InsertBatch writes one history row per targeted member inside a single
// transaction so a fan-out either records all recipients or none.
func (r *NotificationRepository) InsertBatch(ctx context.Context, histories []models.NotificationHistory) error {
	if len(histories) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notification_history (id, member_id, title, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range histories {
		if _, err := stmt.ExecContext(ctx, h.ID, h.MemberID, h.Title, h.Body, h.IsRead, h.CreatedAt); err != nil {
			return fmt.Errorf("failed to insert history for member %d: %w", h.MemberID, err)
		}
	}

	return tx.Commit()
}

func (r *NotificationRepository) ListByMember(ctx context.Context, memberID int64) ([]models.NotificationHistory, error) {
	query := `
		SELECT id, member_id, title, body, is_read, created_at
		FROM notification_history
		WHERE member_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var histories []models.NotificationHistory
	for rows.Next() {
		var h models.NotificationHistory
		err := rows.Scan(&h.ID, &h.MemberID, &h.Title, &h.Body, &h.IsRead, &h.CreatedAt)
		if err != nil {
			return nil, err
		}
		histories = append(histories, h)
	}
	return histories, rows.Err()
}

// MarkRead flags a notification as read, scoped to the owning member so one
// member cannot touch another's history.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID, memberID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notification_history SET is_read = TRUE WHERE id = $1 AND member_id = $2`,
		id, memberID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("notification %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, memberID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notification_history WHERE member_id = $1 AND is_read = FALSE`,
		memberID).Scan(&count)
	return count, err
}
