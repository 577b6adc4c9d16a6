package repository

import (
	"context"
	"database/sql"

	"cinecatch/internal/database"
	"cinecatch/internal/models"

	"github.com/lib/pq"
)

type MemberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

const memberColumns = `id, email, password_hash, nickname, fcm_token, notification_enabled`

func (r *MemberRepository) GetByID(ctx context.Context, id int64) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *MemberRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Member, error) {
	member := &models.Member{}
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&member.ID,
		&member.Email,
		&member.PasswordHash,
		&member.Nickname,
		&token,
		&member.NotificationEnabled,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if token.Valid {
		member.FCMToken = &token.String
	}
	return member, nil
}

func (r *MemberRepository) UpdateFCMToken(ctx context.Context, memberID int64, token string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members SET fcm_token = $1 WHERE id = $2`, token, memberID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *MemberRepository) SetNotificationEnabled(ctx context.Context, memberID int64, enabled bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE members SET notification_enabled = $1 WHERE id = $2`, enabled, memberID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClearTokens nulls out device tokens the push gateway reported as invalid,
// excluding their owners from future fan-outs until a token is re-registered.
func (r *MemberRepository) ClearTokens(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE members SET fcm_token = NULL WHERE fcm_token = ANY($1)`, pq.Array(tokens))
	return err
}
