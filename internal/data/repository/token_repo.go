package repository

import (
	"context"
	"fmt"

	"dampit-rental/internal/data/entity"
	"dampit-rental/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TokenRepository stores single-use email verification and password
// reset tokens. Database-backed so multiple instances agree on which
// tokens are live.
type TokenRepository interface {
	Create(ctx context.Context, token *entity.AuthToken) error
	FindValid(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error)
	MarkUsed(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log,
	}
}

func (tr *tokenRepository) Create(ctx context.Context, token *entity.AuthToken) error {
	query := `
		INSERT INTO auth_tokens (id, user_id, email, token, purpose,
		                         expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tr.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Email,
		token.Token,
		token.Purpose,
		token.ExpiresAt,
		token.IsUsed,
		token.CreatedAt,
	)

	if err != nil {
		tr.log.Error("Failed to create auth token",
			zap.Error(err),
			zap.String("email", token.Email),
			zap.String("purpose", string(token.Purpose)),
		)
		return fmt.Errorf("create auth token for %s: %w", token.Email, err)
	}

	return nil
}

// FindValid returns the token row only while it is unused and unexpired.
func (tr *tokenRepository) FindValid(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error) {
	query := `
		SELECT id, user_id, email, token, purpose, expires_at, is_used, created_at
		FROM auth_tokens
		WHERE token = $1 AND purpose = $2 AND is_used = FALSE AND expires_at > NOW()
	`

	var t entity.AuthToken
	err := tr.db.QueryRow(ctx, query, token, purpose).Scan(
		&t.ID,
		&t.UserID,
		&t.Email,
		&t.Token,
		&t.Purpose,
		&t.ExpiresAt,
		&t.IsUsed,
		&t.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		tr.log.Error("Failed to find auth token", zap.Error(err))
		return nil, fmt.Errorf("find auth token: %w", err)
	}

	return &t, nil
}

func (tr *tokenRepository) MarkUsed(ctx context.Context, token string) error {
	query := `UPDATE auth_tokens SET is_used = TRUE WHERE token = $1`

	result, err := tr.db.Exec(ctx, query, token)
	if err != nil {
		tr.log.Error("Failed to mark auth token used", zap.Error(err))
		return fmt.Errorf("mark auth token used: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("auth token not found")
	}

	return nil
}

// DeleteExpired sweeps stale rows; called on an interval from main.
func (tr *tokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM auth_tokens WHERE expires_at <= NOW() OR is_used = TRUE`

	result, err := tr.db.Exec(ctx, query)
	if err != nil {
		tr.log.Error("Failed to sweep expired auth tokens", zap.Error(err))
		return 0, fmt.Errorf("sweep expired auth tokens: %w", err)
	}

	return result.RowsAffected(), nil
}
