package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/repository"
)

type ProfileService struct {
	users *repository.UserRepository
	log   *zap.Logger
}

func NewProfileService(users *repository.UserRepository, log *zap.Logger) *ProfileService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProfileService{users: users, log: log.Named("profiles")}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, uid string) (*domain.Profile, error) {
	return s.users.GetByUID(ctx, uid)
}

// Create writes the caller's profile. The email always comes from the
// authenticated principal; the display name falls back to the token name.
func (s *ProfileService) Create(ctx context.Context, p *domain.Principal, req domain.ProfileRequest) (*domain.Profile, error) {
	profile := &domain.Profile{ID: p.UID, Email: p.Email, DisplayName: p.Name}
	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.PhotoURL != nil {
		profile.PhotoURL = strings.TrimSpace(*req.PhotoURL)
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}

	if err := s.users.Create(ctx, profile); err != nil {
		return nil, err
	}
	s.log.Debug("profile created", zap.String("uid", p.UID))
	return profile, nil
}

// Update applies the provided profile fields.
func (s *ProfileService) Update(ctx context.Context, uid string, req domain.ProfileRequest) (*domain.Profile, error) {
	if req.IsEmpty() {
		return nil, domain.ErrNothingToUpdate
	}
	return s.users.Update(ctx, uid, trimProfile(req))
}

// Delete soft-deletes the caller's profile.
func (s *ProfileService) Delete(ctx context.Context, uid string) error {
	if err := s.users.SoftDelete(ctx, uid); err != nil {
		return err
	}
	s.log.Debug("profile deleted", zap.String("uid", uid))
	return nil
}

func trimProfile(req domain.ProfileRequest) domain.ProfileRequest {
	trim := func(v *string) *string {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		return &t
	}
	return domain.ProfileRequest{
		DisplayName: trim(req.DisplayName),
		PhotoURL:    trim(req.PhotoURL),
		PhoneNumber: trim(req.PhoneNumber),
	}
}
