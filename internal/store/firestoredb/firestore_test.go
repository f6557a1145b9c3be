package firestoredb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(status.Error(codes.NotFound, "no doc")), store.ErrNotFound)
	assert.ErrorIs(t, translate(status.Error(codes.DeadlineExceeded, "slow")), context.DeadlineExceeded)
	assert.ErrorIs(t, translate(status.Error(codes.Canceled, "gone")), context.Canceled)

	unavailable := status.Error(codes.Unavailable, "down")
	err := translate(unavailable)
	assert.ErrorIs(t, err, unavailable)
	assert.False(t, errors.Is(err, store.ErrNotFound))
}
