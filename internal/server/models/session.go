package models

import "time"

// Session binds an opaque client-held token to a user identity. Sessions are
// destroyed on logout or expiry; ExpiresAt slides forward on every
// authenticated request.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
