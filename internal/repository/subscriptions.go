package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cinecatch/internal/database"
	apperrors "cinecatch/internal/errors"
	"cinecatch/internal/models"

	"github.com/lib/pq"
)

// SubscriptionRepository covers both subscription kinds: theater-scoped
// subscriptions and event-scoped favorites.
type SubscriptionRepository struct {
	db *database.DB
}

func NewSubscriptionRepository(db *database.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

const uniqueViolation = "23505"

func translateInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("duplicate subscription: %w", apperrors.ErrConflict)
	}
	return err
}

func (r *SubscriptionRepository) CreateTheaterSubscription(ctx context.Context, sub *models.TheaterSubscription) error {
	query := `
		INSERT INTO theater_subscriptions (id, member_id, theater_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.MemberID, sub.TheaterID).Scan(&sub.CreatedAt)
	if err != nil {
		return translateInsertError(err)
	}
	return nil
}

func (r *SubscriptionRepository) DeleteTheaterSubscription(ctx context.Context, memberID int64, theaterID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM theater_subscriptions WHERE member_id = $1 AND theater_id = $2`,
		memberID, theaterID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subscription for theater %s: %w", theaterID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *SubscriptionRepository) ListTheaterSubscriptions(ctx context.Context, memberID int64) ([]models.TheaterSubscription, error) {
	query := `
		SELECT id, member_id, theater_id, created_at
		FROM theater_subscriptions
		WHERE member_id = $1
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.TheaterSubscription
	for rows.Next() {
		var s models.TheaterSubscription
		if err := rows.Scan(&s.ID, &s.MemberID, &s.TheaterID, &s.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (r *SubscriptionRepository) CreateEventSubscription(ctx context.Context, sub *models.EventSubscription) error {
	query := `
		INSERT INTO event_subscriptions (id, member_id, event_id)
		VALUES ($1, $2, $3)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, sub.ID, sub.MemberID, sub.EventID).Scan(&sub.CreatedAt)
	if err != nil {
		return translateInsertError(err)
	}
	return nil
}

func (r *SubscriptionRepository) DeleteEventSubscription(ctx context.Context, memberID int64, eventID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM event_subscriptions WHERE member_id = $1 AND event_id = $2`,
		memberID, eventID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("favorite for event %s: %w", eventID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *SubscriptionRepository) ListEventIDs(ctx context.Context, memberID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT event_id FROM event_subscriptions WHERE member_id = $1 ORDER BY created_at, id`,
		memberID)
	if err != nil {
		return nil, err
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

// FindMembersByTheater returns the members subscribed to a theater, in
// subscription order. Eligibility filtering happens in the service layer.
func (r *SubscriptionRepository) FindMembersByTheater(ctx context.Context, theaterID string) ([]models.Member, error) {
	query := `
		SELECT m.id, m.email, m.password_hash, m.nickname, m.fcm_token, m.notification_enabled
		FROM theater_subscriptions s
		JOIN members m ON m.id = s.member_id
		WHERE s.theater_id = $1
		ORDER BY s.created_at, m.id`

	rows, err := r.db.QueryContext(ctx, query, theaterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMembers(rows)
}

// FindMembersByEvent returns the members who favorited an event.
func (r *SubscriptionRepository) FindMembersByEvent(ctx context.Context, eventID string) ([]models.Member, error) {
	query := `
		SELECT m.id, m.email, m.password_hash, m.nickname, m.fcm_token, m.notification_enabled
		FROM event_subscriptions s
		JOIN members m ON m.id = s.member_id
		WHERE s.event_id = $1
		ORDER BY s.created_at, m.id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMembers(rows)
}

func scanMembers(rows *sql.Rows) ([]models.Member, error) {
	var members []models.Member
	for rows.Next() {
		var m models.Member
		var token sql.NullString
		err := rows.Scan(&m.ID, &m.Email, &m.PasswordHash, &m.Nickname, &token, &m.NotificationEnabled)
		if err != nil {
			return nil, err
		}
		if token.Valid {
			m.FCMToken = &token.String
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
