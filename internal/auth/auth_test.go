package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/splitsense/internal/ledger"
	"github.com/mmynk/splitsense/internal/models"
)

func TestRosterAuthenticator(t *testing.T) {
	a := NewRosterAuthenticator(ledger.New(ledger.RosterSnapshot()))
	ctx := context.Background()

	tests := []struct {
		name    string
		email   string
		userID  string
		wantID  string
		wantErr error
	}{
		{name: "by email", email: "jay@demo.com", wantID: "user-2"},
		{name: "email ignores case and spaces", email: "  RAM@demo.com ", wantID: "user-3"},
		{name: "by user id", userID: "user-6", wantID: "user-6"},
		{name: "email wins over id", email: "raj@demo.com", userID: "user-1", wantID: "user-5"},
		{name: "unknown email", email: "nobody@demo.com", userID: "user-1", wantErr: ErrUnknownUser},
		{name: "unknown id", userID: "user-99", wantErr: ErrUnknownUser},
		{name: "nothing given", wantErr: ErrUnknownUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := a.Authenticate(ctx, tt.email, tt.userID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() unexpected error: %v", err)
			}
			if u.ID != tt.wantID {
				t.Errorf("Authenticate() user = %s, want %s", u.ID, tt.wantID)
			}
		})
	}
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.User{ID: "user-1", Email: "devparikh200479@gmail.com"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %+v, want user %s", claims, user.ID)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := models.User{ID: "user-1"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		later := NewJWTManager("test-secret", time.Hour)
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := later.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
