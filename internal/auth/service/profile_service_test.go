package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store/memory"
)

func strPtr(s string) *string { return &s }

func TestProfileService(t *testing.T) {
	svc := NewProfileService(repository.NewUserRepository(memory.New(), time.Second), nil)
	ctx := context.Background()
	caller := &domain.Principal{UID: "u1", Email: "u1@example.com", Name: "Token Name"}

	_, err := svc.Get(ctx, "u1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	created, err := svc.Create(ctx, caller, domain.ProfileRequest{PhotoURL: strPtr(" https://example.com/a.png ")})
	require.NoError(t, err)
	assert.Equal(t, "u1@example.com", created.Email)
	assert.Equal(t, "Token Name", created.DisplayName)
	assert.Equal(t, "https://example.com/a.png", created.PhotoURL)

	_, err = svc.Create(ctx, caller, domain.ProfileRequest{})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = svc.Update(ctx, "u1", domain.ProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrNothingToUpdate)

	updated, err := svc.Update(ctx, "u1", domain.ProfileRequest{DisplayName: strPtr(" Uno ")})
	require.NoError(t, err)
	assert.Equal(t, "Uno", updated.DisplayName)
	assert.Equal(t, "https://example.com/a.png", updated.PhotoURL)

	require.NoError(t, svc.Delete(ctx, "u1"))
	_, err = svc.Get(ctx, "u1")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Create(ctx, caller, domain.ProfileRequest{DisplayName: strPtr("Again")})
	require.NoError(t, err)
}
