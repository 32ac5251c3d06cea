// Package sessions declares the repository contract for server-side session
// records binding opaque tokens to user identities.
package sessions

import (
	"context"
	"time"
)

// Repository defines operations for issuing, refreshing, and destroying sessions.
type Repository interface {
	// Create stores a new session for userID with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Touch atomically slides the expiry of a live session forward to
	// now+validity and returns the owning user id. An absent or expired token
	// yields common.ErrorNotFound.
	Touch(ctx context.Context, token string, validity time.Duration) (string, error)

	// Delete destroys a session by its token. Deleting a non-existent token is
	// not an error.
	Delete(ctx context.Context, token string) error
}
