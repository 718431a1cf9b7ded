package usecase

import (
	"context"
	"testing"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/dto/request"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/oauth"
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:   utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Token: utils.TokenConfig{ExpiryMinutes: 60},
	}
}

func testUser(password string) *entity.User {
	hash, _ := utils.HashPassword(password)
	return &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username:     "budi",
		FirstName:    "Budi",
		LastName:     "Santoso",
		Email:        "budi@example.com",
		PasswordHash: hash,
		Role:         entity.RoleUser,
		IsVerified:   entity.VerifiedYes,
	}
}

func TestRegisterStoresTokenAndSendsVerification(t *testing.T) {
	var (
		createdUser  *entity.User
		createdToken *entity.AuthToken
		sentEvent    string
		sentURL      string
	)

	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, nil
			},
			FindByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
				return nil, nil
			},
			CreateFn: func(ctx context.Context, user *entity.User) error {
				createdUser = user
				return nil
			},
		},
		Token: &mockTokenRepo{
			CreateFn: func(ctx context.Context, token *entity.AuthToken) error {
				createdToken = token
				return nil
			},
		},
	}

	notifier := &mockNotifier{
		DispatchFn: func(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error) {
			sentEvent = event
			sentURL = data.ActionURL
			return DispatchResult{Sent: []string{recipients[0].Email}}, nil
		},
	}

	service := NewAuthService(repo, testConfig(), notifier, nil, zap.NewNop())

	user, warnings, err := service.Register(context.Background(), &request.RegisterRequest{
		Username:  "budi",
		FirstName: "Budi",
		LastName:  "Santoso",
		Email:     "budi@example.com",
		Password:  "password123",
	}, "http://localhost:8080")

	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "no", user.IsVerified)
	assert.Equal(t, "user", user.Role)
	assert.NotEqual(t, "password123", createdUser.PasswordHash)

	require.NotNil(t, createdToken)
	assert.Equal(t, entity.TokenPurposeVerify, createdToken.Purpose)
	assert.Equal(t, createdUser.ID, createdToken.UserID)
	assert.True(t, createdToken.ExpiresAt.After(time.Now()))

	assert.Equal(t, EventVerifyEmail, sentEvent)
	assert.Contains(t, sentURL, "http://localhost:8080/auth/verify/")
	assert.Contains(t, sentURL, createdToken.Token)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return testUser("x"), nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	_, _, err := service.Register(context.Background(), &request.RegisterRequest{
		Username:  "budi",
		FirstName: "Budi",
		LastName:  "Santoso",
		Email:     "budi@example.com",
		Password:  "password123",
	}, "http://localhost:8080")

	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginHappyPath(t *testing.T) {
	user := testUser("password123")
	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	auth, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "budi@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	require.NotEmpty(t, auth.Token)

	claims, err := utils.ParseAuthToken(auth.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.ID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "budi@example.com", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	user := testUser("password123")
	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	_, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "budi@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestLoginUnverifiedIsForbidden(t *testing.T) {
	user := testUser("password123")
	user.IsVerified = entity.VerifiedNo
	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	_, err := service.Login(context.Background(), &request.LoginRequest{
		Email:    "budi@example.com",
		Password: "password123",
	})

	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestVerifyEmailConsumesToken(t *testing.T) {
	user := testUser("password123")
	user.IsVerified = entity.VerifiedNo

	marked := false
	used := false
	repo := &repository.Repository{
		User: &mockUserRepo{
			MarkVerifiedFn: func(ctx context.Context, id uuid.UUID) error {
				assert.Equal(t, user.ID, id)
				marked = true
				return nil
			},
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return user, nil
			},
		},
		Token: &mockTokenRepo{
			FindValidFn: func(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error) {
				assert.Equal(t, entity.TokenPurposeVerify, purpose)
				return &entity.AuthToken{
					BaseSimple: entity.BaseSimple{ID: uuid.New()},
					UserID:     user.ID,
					Token:      token,
					Purpose:    purpose,
					ExpiresAt:  time.Now().Add(time.Hour),
				}, nil
			},
			MarkUsedFn: func(ctx context.Context, token string) error {
				used = true
				return nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	auth, err := service.VerifyEmail(context.Background(), "sometoken")
	require.NoError(t, err)
	assert.True(t, marked)
	assert.True(t, used)
	assert.Equal(t, "yes", auth.User.IsVerified)
	assert.NotEmpty(t, auth.Token)
}

func TestVerifyEmailRejectsStaleToken(t *testing.T) {
	repo := &repository.Repository{
		Token: &mockTokenRepo{
			FindValidFn: func(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error) {
				return nil, nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	_, err := service.VerifyEmail(context.Background(), "stale")
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestResetPasswordRoundTrip(t *testing.T) {
	user := testUser("oldpassword")

	var newHash string
	repo := &repository.Repository{
		User: &mockUserRepo{
			UpdatePasswordFn: func(ctx context.Context, id uuid.UUID, passwordHash string) error {
				assert.Equal(t, user.ID, id)
				newHash = passwordHash
				return nil
			},
		},
		Token: &mockTokenRepo{
			FindValidFn: func(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error) {
				assert.Equal(t, entity.TokenPurposeReset, purpose)
				return &entity.AuthToken{
					BaseSimple: entity.BaseSimple{ID: uuid.New()},
					UserID:     user.ID,
					Token:      token,
					Purpose:    purpose,
					ExpiresAt:  time.Now().Add(time.Hour),
				}, nil
			},
			MarkUsedFn: func(ctx context.Context, token string) error {
				return nil
			},
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), nil, zap.NewNop())

	err := service.ResetPassword(context.Background(), "resettoken", &request.ResetPasswordRequest{
		Password: "newpassword123",
	})

	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("newpassword123", newHash))
}

func TestGoogleCallbackProvisionsVerifiedUser(t *testing.T) {
	var created *entity.User
	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return nil, nil
			},
			FindByUsernameFn: func(ctx context.Context, username string) (*entity.User, error) {
				return nil, nil
			},
			CreateFn: func(ctx context.Context, user *entity.User) error {
				created = user
				return nil
			},
		},
	}

	identity := &mockIdentity{
		FetchProfileFn: func(ctx context.Context, code string) (*oauth.Profile, error) {
			return &oauth.Profile{
				FirstName: "Sari",
				LastName:  "Dewi",
				Email:     "sari@gmail.com",
				Avatar:    "https://lh3.example.com/photo.jpg",
			}, nil
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), identity, zap.NewNop())

	auth, err := service.GoogleCallback(context.Background(), "authcode")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, entity.VerifiedYes, created.IsVerified)
	assert.Equal(t, "sari", created.Username)
	require.NotNil(t, created.Avatar)
	assert.Equal(t, "https://lh3.example.com/photo.jpg", *created.Avatar)
	assert.NotEmpty(t, auth.Token)
}

func TestGoogleCallbackVerifiesExistingUser(t *testing.T) {
	user := testUser("password123")
	user.IsVerified = entity.VerifiedNo

	marked := false
	repo := &repository.Repository{
		User: &mockUserRepo{
			FindByEmailFn: func(ctx context.Context, email string) (*entity.User, error) {
				return user, nil
			},
			MarkVerifiedFn: func(ctx context.Context, id uuid.UUID) error {
				marked = true
				return nil
			},
		},
	}

	identity := &mockIdentity{
		FetchProfileFn: func(ctx context.Context, code string) (*oauth.Profile, error) {
			return &oauth.Profile{FirstName: "Budi", LastName: "Santoso", Email: user.Email}, nil
		},
	}

	service := NewAuthService(repo, testConfig(), noopNotifier(), identity, zap.NewNop())

	auth, err := service.GoogleCallback(context.Background(), "authcode")
	require.NoError(t, err)
	assert.True(t, marked)
	assert.Equal(t, "yes", auth.User.IsVerified)
}
