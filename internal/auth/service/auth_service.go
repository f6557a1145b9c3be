package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/session"
)

const MinPasswordLength = 6

// IdentityProvider is the external account system (Firebase Auth in
// production).
type IdentityProvider interface {
	CreateUser(ctx context.Context, req domain.RegisterRequest) (*domain.Identity, error)
	DeleteUser(ctx context.Context, uid string) error
	VerifyIDToken(ctx context.Context, idToken string) (*domain.Principal, error)
}

type AuthService struct {
	users    *repository.UserRepository
	provider IdentityProvider
	issuer   *session.Issuer
	revoker  session.Revoker
	log      *zap.Logger
}

// NewAuthService wires the auth flows. provider may be nil, in which case
// only session tokens are accepted and register/login are unavailable.
func NewAuthService(users *repository.UserRepository, provider IdentityProvider, issuer *session.Issuer, revoker session.Revoker, log *zap.Logger) *AuthService {
	if revoker == nil {
		revoker = session.NopRevoker{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		users:    users,
		provider: provider,
		issuer:   issuer,
		revoker:  revoker,
		log:      log.Named("auth"),
	}
}

// Register creates the provider account and its profile, then issues a
// session. The provider account is removed again if the profile cannot be
// written.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		return nil, apperr.Validation("email, password and name are required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, apperr.Validation("password must be at least 6 characters")
	}
	if s.provider == nil {
		return nil, domain.ErrIdentityUnavailable
	}

	identity, err := s.provider.CreateUser(ctx, req)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:          identity.UID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	}
	if err := s.users.Create(ctx, profile); err != nil {
		if derr := s.provider.DeleteUser(ctx, identity.UID); derr != nil {
			s.log.Error("failed to roll back provider user",
				zap.String("uid", identity.UID), zap.Error(derr))
		}
		return nil, err
	}

	s.log.Info("user registered", zap.String("uid", identity.UID))
	return s.issue(domain.Principal{UID: identity.UID, Email: req.Email, Name: req.DisplayName})
}

// Login exchanges a provider ID token for a session token.
func (s *AuthService) Login(ctx context.Context, idToken string) (*domain.Account, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" {
		return nil, apperr.Validation("idToken is required")
	}
	if s.provider == nil {
		return nil, domain.ErrIdentityUnavailable
	}

	principal, err := s.provider.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	profile, err := s.users.GetByUID(ctx, principal.UID)
	switch {
	case err == nil:
		if profile.DisplayName != "" {
			principal.Name = profile.DisplayName
		}
	case apperr.KindOf(err) != apperr.KindNotFound:
		return nil, err
	}

	return s.issue(*principal)
}

// Me returns the profile-backed account of the caller.
func (s *AuthService) Me(ctx context.Context, p *domain.Principal) (*domain.Account, error) {
	profile, err := s.users.GetByUID(ctx, p.UID)
	if err != nil {
		return nil, err
	}
	return &domain.Account{UID: p.UID, Email: profile.Email, Name: profile.DisplayName}, nil
}

// Logout revokes the caller's session token. Provider ID tokens are not
// tracked and are left to expire.
func (s *AuthService) Logout(ctx context.Context, p *domain.Principal) error {
	if p.Source != domain.SourceSession || p.TokenID == "" {
		return nil
	}
	if err := s.revoker.Revoke(ctx, p.TokenID, p.ExpiresAt); err != nil {
		return apperr.Wrap(apperr.KindUpstream, "token store unavailable", err)
	}
	s.log.Debug("session revoked", zap.String("uid", p.UID))
	return nil
}

// Authenticate resolves a bearer token: a session token first, then a
// provider ID token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	principal, err := s.issuer.Parse(token)
	if err == nil {
		revoked, rerr := s.revoker.IsRevoked(ctx, principal.TokenID)
		if rerr != nil {
			return nil, apperr.Wrap(apperr.KindUpstream, "token store unavailable", rerr)
		}
		if revoked {
			return nil, domain.ErrRevokedToken
		}
		return principal, nil
	}
	if s.provider == nil {
		return nil, apperr.Wrap(apperr.KindUnauthenticated, domain.ErrInvalidToken.Message, err)
	}

	return s.provider.VerifyIDToken(ctx, token)
}

func (s *AuthService) issue(p domain.Principal) (*domain.Account, error) {
	sess, err := s.issuer.Issue(p)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to issue session", err)
	}
	return &domain.Account{
		UID:       p.UID,
		Email:     p.Email,
		Name:      p.Name,
		Token:     sess.Token,
		ExpiresAt: &sess.ExpiresAt,
	}, nil
}
