package domain

import (
	"time"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
)

const ProfileCollection = "users"

// Token sources.
const (
	SourceSession  = "session"
	SourceFirebase = "firebase"
)

var (
	ErrProfileNotFound     = apperr.NotFound("user profile not found")
	ErrProfileExists       = apperr.Conflict("user profile already exists")
	ErrEmailTaken          = apperr.Conflict("email is already registered")
	ErrMissingToken        = apperr.Unauthenticated("missing authorization token")
	ErrInvalidToken        = apperr.Unauthenticated("invalid or expired token")
	ErrRevokedToken        = apperr.Unauthenticated("token has been revoked")
	ErrNothingToUpdate     = apperr.Validation("no fields to update")
	ErrIdentityUnavailable = apperr.New(apperr.KindUpstream, "identity provider unavailable")
)

// Profile mirrors an identity-provider user in the document store, keyed by
// the provider UID.
type Profile struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"displayName"`
	PhotoURL    string     `json:"photoURL,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Principal is an authenticated caller.
type Principal struct {
	UID    string `json:"uid"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Source string `json:"source"`

	// TokenID and ExpiresAt are set for session tokens only.
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Identity is a user as known to the identity provider.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
	PhoneNumber string
}

// RegisterRequest creates a provider account plus its profile.
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
}

// ProfileRequest carries profile fields; nil fields are left unchanged on
// update.
type ProfileRequest struct {
	DisplayName *string
	PhotoURL    *string
	PhoneNumber *string
}

func (r ProfileRequest) IsEmpty() bool {
	return r.DisplayName == nil && r.PhotoURL == nil && r.PhoneNumber == nil
}

// Session is an issued session token.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Account is the caller as returned by register, login and me. Token and
// ExpiresAt are set when a session was issued.
type Account struct {
	UID       string     `json:"uid"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
