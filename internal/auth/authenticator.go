package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/mmynk/splitsense/internal/models"
)

var ErrUnknownUser = errors.New("no roster user matches the given email or id")

// Directory is the user lookup the authenticator needs. *ledger.Ledger satisfies it.
type Directory interface {
	User(id string) (models.User, bool)
	UserByEmail(email string) (models.User, bool)
}

// Authenticator resolves login credentials to a user.
// This abstraction allows replacing the mock roster lookup with a real
// identity provider without changing the service layer.
type Authenticator interface {
	Authenticate(ctx context.Context, email, userID string) (models.User, error)
}

// RosterAuthenticator logs in any roster member by email or user ID.
// There are no passwords; it only identifies who is acting.
type RosterAuthenticator struct {
	directory Directory
}

func NewRosterAuthenticator(directory Directory) *RosterAuthenticator {
	return &RosterAuthenticator{directory: directory}
}

// Authenticate prefers the email when both are given.
func (a *RosterAuthenticator) Authenticate(ctx context.Context, email, userID string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	if email = strings.TrimSpace(email); email != "" {
		if u, ok := a.directory.UserByEmail(email); ok {
			return u, nil
		}
		return models.User{}, ErrUnknownUser
	}
	if u, ok := a.directory.User(strings.TrimSpace(userID)); ok {
		return u, nil
	}
	return models.User{}, ErrUnknownUser
}
