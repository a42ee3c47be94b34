// Package identity carries the caller's user ID through request contexts.
// The ID is asserted by the upstream gateway; this service does not authenticate users.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Header is the HTTP header and gRPC metadata key carrying the user ID
const Header = "x-user-id"

// ErrMissingUser is returned when a request carries no usable user ID
var ErrMissingUser = errors.New("missing user id")

type contextKey struct{}

// WithUserID returns a context carrying the user ID
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// UserID returns the user ID stored in the context
func UserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, ErrMissingUser
	}
	return userID, nil
}

// Parse validates a raw user ID header value
func Parse(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, ErrMissingUser
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMissingUser, err)
	}
	if userID == uuid.Nil {
		return uuid.Nil, ErrMissingUser
	}
	return userID, nil
}
