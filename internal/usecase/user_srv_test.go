package usecase

import (
	"context"
	"testing"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetUserByIDEnforcesOwnerOrAdmin(t *testing.T) {
	user := testUser("rahasia123")
	lookups := 0

	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				lookups++
				return user, nil
			},
		},
	}
	service := NewUserService(repo, testConfig(), nil, zap.NewNop())

	stranger := &utils.AuthClaims{ID: uuid.NewString(), Role: "user"}
	_, err := service.GetByID(context.Background(), stranger, user.ID.String())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Zero(t, lookups, "forbidden callers must not reach the repository")

	owner := &utils.AuthClaims{ID: user.ID.String(), Role: "user"}
	resp, err := service.GetByID(context.Background(), owner, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Email, resp.Email)

	admin := &utils.AuthClaims{ID: uuid.NewString(), Role: "admin"}
	resp, err = service.GetByID(context.Background(), admin, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, user.Username, resp.Username)
}

func TestGetKTPEnforcesOwnerOrAdmin(t *testing.T) {
	user := testUser("rahasia123")
	ktpURL := "https://storage.googleapis.com/dampit/ktp/123_budi.jpg"
	user.KTP = &ktpURL

	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return user, nil
			},
		},
	}
	service := NewUserService(repo, testConfig(), nil, zap.NewNop())

	stranger := &utils.AuthClaims{ID: uuid.NewString(), Role: "user"}
	_, err := service.GetKTP(context.Background(), stranger, user.ID.String())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = service.GetAvatar(context.Background(), stranger, user.ID.String())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	owner := &utils.AuthClaims{ID: user.ID.String(), Role: "user"}
	url, err := service.GetKTP(context.Background(), owner, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ktpURL, url)

	admin := &utils.AuthClaims{ID: uuid.NewString(), Role: "admin"}
	url, err = service.GetKTP(context.Background(), admin, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ktpURL, url)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	user := testUser("rahasia123")
	userDeleted := false
	reservationsRemoved := false

	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return user, nil
			},
			DeleteFn: func(ctx context.Context, id uuid.UUID) error {
				userDeleted = true
				assert.Equal(t, user.ID, id)
				return nil
			},
		},
		Reservation: &mockReservationRepo{
			DeleteByUserIDFn: func(ctx context.Context, userID uuid.UUID) (int64, error) {
				reservationsRemoved = true
				assert.Equal(t, user.ID, userID)
				return 2, nil
			},
		},
	}
	service := NewUserService(repo, testConfig(), nil, zap.NewNop())

	owner := &utils.AuthClaims{ID: user.ID.String(), Role: "user"}
	err := service.Delete(context.Background(), owner, user.ID.String())
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.False(t, userDeleted)

	admin := &utils.AuthClaims{ID: uuid.NewString(), Role: "admin"}
	err = service.Delete(context.Background(), admin, user.ID.String())
	require.NoError(t, err)
	assert.True(t, userDeleted)
	assert.True(t, reservationsRemoved)
}
