package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session binds a bearer token to a user. Sessions are issued by the
// auth service; this engine only reads them.
type Session struct {
	BaseSimple
	Token     uuid.UUID `db:"token"`
	UserID    uuid.UUID `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
