package entity

import (
	"time"

	"github.com/google/uuid"
)

type TokenPurpose string

const (
	TokenPurposeVerify TokenPurpose = "verify"
	TokenPurposeReset  TokenPurpose = "reset"
)

// AuthToken is a single-use email verification or password reset token.
// Stored in the database so every backend instance agrees on which
// tokens are valid.
type AuthToken struct {
	BaseSimple
	UserID    uuid.UUID    `db:"user_id"`
	Email     string       `db:"email"`
	Token     string       `db:"token"`
	Purpose   TokenPurpose `db:"purpose"`
	ExpiresAt time.Time    `db:"expires_at"`
	IsUsed    bool         `db:"is_used"`
}
