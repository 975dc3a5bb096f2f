// Package constants names the tables and collections shared by every backend.
package constants

import "time"

const (
	UsersCollection    = "users"
	BlogsCollection    = "blogs"
	SessionsCollection = "sessions"
)

// Now returns the current time in the precision every backend can store.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
