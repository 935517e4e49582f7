package session

import (
	"context"
	"errors"
	"time"
)

// TokenBytes is the entropy of a session token before hex encoding.
const TokenBytes = 32

// ErrSessionNotFound is returned when a token does not resolve to a live
// session. Missing, expired and revoked sessions are indistinguishable
// through this error on purpose.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-held proof that a request originates from a
// previously authenticated user. The token is opaque; all state lives on
// the server side.
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions keyed by their opaque token.
type Store interface {
	// Create establishes a new session for the user and returns it.
	Create(ctx context.Context, userID uint) (*Session, error)
	// Get resolves a token to a live session. Expired or unknown tokens
	// return ErrSessionNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete revokes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
