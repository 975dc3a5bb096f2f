package models

import "time"

// User represents an internal user model for the application/database.
// PasswordHash always holds a bcrypt digest, never the raw credential.
type User struct {
	ID           string    `bson:"_id" mapstructure:"id" db:"id" json:"id"`
	Username     string    `bson:"username" mapstructure:"username" db:"username" json:"username"`
	Email        string    `bson:"email" mapstructure:"email" db:"email" json:"email"`
	PasswordHash string    `bson:"password" mapstructure:"password" db:"password" json:"-"`
	CreatedAt    time.Time `bson:"created_at" mapstructure:"created_at" db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" mapstructure:"updated_at" db:"updated_at" json:"updatedAt"`
}

// NewUser creates a new User instance with the given username, email and password hash.
// Note: No validation or hashing is performed here.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// Identity is the authenticated user's stable reference attached to a session.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// Identity returns the session identity of u.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}
