package models

import "time"

// Session maps an opaque session id to a user's primary key.
type Session struct {
	ID        string    `bson:"_id" db:"id"`
	UserID    string    `bson:"user_id" db:"user_id"`
	CreatedAt time.Time `bson:"created_at" db:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
