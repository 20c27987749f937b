package membership

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Identity provider errors, mapped from the upstream auth service
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrSignupsDisabled    = errors.New("signups are disabled")
	ErrAlreadyRegistered  = errors.New("email already registered")
)

// IdentityProvider is the port to the external identity service that
// owns credentials. Profiles reuse the identity service's user id as
// their own primary key.
type IdentityProvider interface {
	// SignUp creates a credentialed user and returns its id
	SignUp(ctx context.Context, email, password string) (uuid.UUID, error)

	// VerifyPassword checks credentials and returns the user id
	VerifyPassword(ctx context.Context, email, password string) (uuid.UUID, error)

	// DeleteUser removes a user, used to roll back half-finished
	// registrations
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}
