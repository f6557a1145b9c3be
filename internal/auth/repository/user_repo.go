package repository

import (
	"context"
	"errors"
	"time"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

const (
	fieldEmail       = "email"
	fieldDisplayName = "displayName"
	fieldPhotoURL    = "photoURL"
	fieldPhoneNumber = "phoneNumber"
	fieldCreatedAt   = "createdAt"
	fieldUpdatedAt   = "updatedAt"
	fieldDeletedAt   = "deletedAt"
)

// UserRepository stores user profiles keyed by the identity provider UID.
type UserRepository struct {
	store   store.Store
	timeout time.Duration
	now     func() time.Time
}

func NewUserRepository(s store.Store, timeout time.Duration) *UserRepository {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &UserRepository{store: s, timeout: timeout, now: time.Now}
}

// GetByUID retrieves a live profile. Soft-deleted profiles are reported as
// not found.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.Profile, error) {
	if uid == "" {
		return nil, domain.ErrProfileNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc, err := r.store.Get(ctx, domain.ProfileCollection, uid)
	if err != nil {
		return nil, translate(err)
	}
	if doc.TimePtr(fieldDeletedAt) != nil {
		return nil, domain.ErrProfileNotFound
	}
	return profileOf(doc), nil
}

// Create writes a new profile. A soft-deleted profile with the same UID is
// replaced.
func (r *UserRepository) Create(ctx context.Context, p *domain.Profile) error {
	if _, err := r.GetByUID(ctx, p.ID); err == nil {
		return domain.ErrProfileExists
	} else if apperr.KindOf(err) != apperr.KindNotFound {
		return err
	}

	now := r.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.DeletedAt = nil

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	data := map[string]any{
		fieldEmail:       p.Email,
		fieldDisplayName: p.DisplayName,
		fieldPhotoURL:    p.PhotoURL,
		fieldPhoneNumber: p.PhoneNumber,
		fieldCreatedAt:   now,
		fieldUpdatedAt:   now,
	}
	if err := r.store.Set(ctx, domain.ProfileCollection, p.ID, data); err != nil {
		return translate(err)
	}
	return nil
}

// Update applies the non-nil fields of req to a live profile.
func (r *UserRepository) Update(ctx context.Context, uid string, req domain.ProfileRequest) (*domain.Profile, error) {
	p, err := r.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if req.DisplayName != nil {
		patch[fieldDisplayName] = *req.DisplayName
		p.DisplayName = *req.DisplayName
	}
	if req.PhotoURL != nil {
		patch[fieldPhotoURL] = *req.PhotoURL
		p.PhotoURL = *req.PhotoURL
	}
	if req.PhoneNumber != nil {
		patch[fieldPhoneNumber] = *req.PhoneNumber
		p.PhoneNumber = *req.PhoneNumber
	}
	p.UpdatedAt = r.now().UTC()
	patch[fieldUpdatedAt] = p.UpdatedAt

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.store.Update(ctx, domain.ProfileCollection, uid, patch); err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// SoftDelete marks a live profile as deleted.
func (r *UserRepository) SoftDelete(ctx context.Context, uid string) error {
	if _, err := r.GetByUID(ctx, uid); err != nil {
		return err
	}

	now := r.now().UTC()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	err := r.store.Update(ctx, domain.ProfileCollection, uid, map[string]any{
		fieldDeletedAt: now,
		fieldUpdatedAt: now,
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

func profileOf(doc *store.Document) *domain.Profile {
	return &domain.Profile{
		ID:          doc.ID,
		Email:       doc.String(fieldEmail),
		DisplayName: doc.String(fieldDisplayName),
		PhotoURL:    doc.String(fieldPhotoURL),
		PhoneNumber: doc.String(fieldPhoneNumber),
		CreatedAt:   doc.Time(fieldCreatedAt),
		UpdatedAt:   doc.Time(fieldUpdatedAt),
		DeletedAt:   doc.TimePtr(fieldDeletedAt),
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domain.ErrProfileNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.KindTimeout, "document store did not respond in time", err)
	default:
		return apperr.Wrap(apperr.KindUpstream, "document store unavailable", err)
	}
}
