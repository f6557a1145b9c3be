package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/errorutils"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
)

// FirebaseProvider is the identity provider backed by Firebase Auth.
type FirebaseProvider struct {
	client *fbauth.Client
}

func NewFirebaseProvider(client *fbauth.Client) *FirebaseProvider {
	return &FirebaseProvider{client: client}
}

// CreateUser creates a Firebase Auth account.
func (p *FirebaseProvider) CreateUser(ctx context.Context, req domain.RegisterRequest) (*domain.Identity, error) {
	params := (&fbauth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password)
	if req.DisplayName != "" {
		params = params.DisplayName(req.DisplayName)
	}

	u, err := p.client.CreateUser(ctx, params)
	switch {
	case err == nil:
		return identityOf(u), nil
	case fbauth.IsEmailAlreadyExists(err):
		return nil, domain.ErrEmailTaken
	case errorutils.IsInvalidArgument(err):
		return nil, apperr.Wrap(apperr.KindValidation, "invalid email or password", err)
	default:
		return nil, apperr.Wrap(apperr.KindUpstream, domain.ErrIdentityUnavailable.Message, err)
	}
}

// DeleteUser removes a Firebase Auth account.
func (p *FirebaseProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.client.DeleteUser(ctx, uid); err != nil && !fbauth.IsUserNotFound(err) {
		return apperr.Wrap(apperr.KindUpstream, domain.ErrIdentityUnavailable.Message, err)
	}
	return nil
}

// VerifyIDToken validates a Firebase ID token.
func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*domain.Principal, error) {
	tok, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, domain.ErrInvalidToken.Message, err)
	}

	principal := &domain.Principal{UID: tok.UID, Source: domain.SourceFirebase}
	if email, ok := tok.Claims["email"].(string); ok {
		principal.Email = email
	}
	if name, ok := tok.Claims["name"].(string); ok {
		principal.Name = name
	}
	return principal, nil
}

func identityOf(u *fbauth.UserRecord) *domain.Identity {
	return &domain.Identity{
		UID:         u.UID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		PhoneNumber: u.PhoneNumber,
	}
}
