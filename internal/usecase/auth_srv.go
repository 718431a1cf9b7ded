package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/dto/response"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/oauth"
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	// Register creates an unverified account and emails a verification
	// link. Email delivery failures are returned as warnings.
	Register(ctx context.Context, req *request.RegisterRequest, baseURL string) (*response.UserResponse, []string, error)
	// RegisterAdmin is the admin-only variant that creates another admin.
	RegisterAdmin(ctx context.Context, req *request.RegisterRequest, baseURL string) (*response.UserResponse, []string, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	VerifyEmail(ctx context.Context, token string) (*response.AuthResponse, error)
	RequestPasswordReset(ctx context.Context, req *request.ResetRequest, baseURL string) ([]string, error)
	ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error
	GoogleAuthURL(state string) string
	// GoogleCallback signs the user in through Google, creating a
	// verified account on first sign-in.
	GoogleCallback(ctx context.Context, code string) (*response.AuthResponse, error)
}

type authService struct {
	repo     *repository.Repository
	config   *utils.Config
	notifier NotifierService
	identity oauth.IdentityProvider
	log      *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, notifier NotifierService, identity oauth.IdentityProvider, log *zap.Logger) AuthService {
	return &authService{
		repo:     repo,
		config:   config,
		notifier: notifier,
		identity: identity,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, baseURL string) (*response.UserResponse, []string, error) {
	return s.register(ctx, req, entity.RoleUser, baseURL)
}

func (s *authService) RegisterAdmin(ctx context.Context, req *request.RegisterRequest, baseURL string) (*response.UserResponse, []string, error) {
	return s.register(ctx, req, entity.RoleAdmin, baseURL)
}

func (s *authService) register(ctx context.Context, req *request.RegisterRequest, role entity.UserRole, baseURL string) (*response.UserResponse, []string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, nil, apperr.Validation("validation failed", errs)
	}

	existing, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, apperr.Internal("failed to check email", err)
	}
	if existing != nil {
		return nil, nil, apperr.Conflict("email is already registered")
	}

	existing, err = s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, nil, apperr.Internal("failed to check username", err)
	}
	if existing != nil {
		return nil, nil, apperr.Conflict("username is already taken")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, nil, apperr.Internal("failed to hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         role,
		IsVerified:   entity.VerifiedNo,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, nil, apperr.Internal("failed to create user", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(role)),
	)

	warnings, err := s.sendActionEmail(ctx, user, entity.TokenPurposeVerify, EventVerifyEmail,
		baseURL+"/auth/verify/")
	if err != nil {
		return nil, nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, warnings, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed", errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Internal("failed to find user", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	if user.IsVerified != entity.VerifiedYes {
		return nil, apperr.Forbidden("please verify your email before logging in")
	}

	return s.issueToken(user)
}

func (s *authService) VerifyEmail(ctx context.Context, token string) (*response.AuthResponse, error) {
	if token == "" {
		return nil, apperr.InvalidArgument("verification token is required")
	}

	authToken, err := s.repo.Token.FindValid(ctx, token, entity.TokenPurposeVerify)
	if err != nil {
		return nil, apperr.Internal("failed to look up token", err)
	}
	if authToken == nil {
		return nil, apperr.Unauthorized("verification token is invalid or expired")
	}

	if err := s.repo.User.MarkVerified(ctx, authToken.UserID); err != nil {
		return nil, apperr.Internal("failed to mark user verified", err)
	}
	if err := s.repo.Token.MarkUsed(ctx, token); err != nil {
		return nil, apperr.Internal("failed to consume token", err)
	}

	user, err := s.repo.User.FindByID(ctx, authToken.UserID)
	if err != nil || user == nil {
		return nil, apperr.Internal("failed to load verified user", err)
	}
	user.IsVerified = entity.VerifiedYes

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))

	return s.issueToken(user)
}

func (s *authService) RequestPasswordReset(ctx context.Context, req *request.ResetRequest, baseURL string) ([]string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed", errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Internal("failed to find user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("email is not registered")
	}

	return s.sendActionEmail(ctx, user, entity.TokenPurposeReset, EventPasswordReset,
		baseURL+"/auth/reset/")
}

func (s *authService) ResetPassword(ctx context.Context, token string, req *request.ResetPasswordRequest) error {
	if token == "" {
		return apperr.InvalidArgument("reset token is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation("validation failed", errs)
	}

	authToken, err := s.repo.Token.FindValid(ctx, token, entity.TokenPurposeReset)
	if err != nil {
		return apperr.Internal("failed to look up token", err)
	}
	if authToken == nil {
		return apperr.Unauthorized("reset token is invalid or expired")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, authToken.UserID, passwordHash); err != nil {
		return apperr.Internal("failed to update password", err)
	}
	if err := s.repo.Token.MarkUsed(ctx, token); err != nil {
		return apperr.Internal("failed to consume token", err)
	}

	s.log.Info("Password reset", zap.String("user_id", authToken.UserID.String()))

	return nil
}

func (s *authService) GoogleAuthURL(state string) string {
	return s.identity.AuthURL(state)
}

func (s *authService) GoogleCallback(ctx context.Context, code string) (*response.AuthResponse, error) {
	if code == "" {
		return nil, apperr.InvalidArgument("authorization code is required")
	}

	profile, err := s.identity.FetchProfile(ctx, code)
	if err != nil {
		s.log.Error("Google sign-in failed", zap.Error(err))
		return nil, apperr.Unauthorized("google sign-in failed")
	}
	if profile.Email == "" {
		return nil, apperr.Unauthorized("google account has no email")
	}

	user, err := s.repo.User.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, apperr.Internal("failed to find user", err)
	}

	if user == nil {
		user, err = s.createOAuthUser(ctx, profile)
		if err != nil {
			return nil, err
		}
	} else if user.IsVerified != entity.VerifiedYes {
		// Google already proved ownership of this address.
		if err := s.repo.User.MarkVerified(ctx, user.ID); err != nil {
			return nil, apperr.Internal("failed to mark user verified", err)
		}
		user.IsVerified = entity.VerifiedYes
	}

	return s.issueToken(user)
}

// createOAuthUser provisions a verified account from a Google profile.
// The password is random; the user can set a real one via reset.
func (s *authService) createOAuthUser(ctx context.Context, profile *oauth.Profile) (*entity.User, error) {
	username := strings.Split(profile.Email, "@")[0]
	existing, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, apperr.Internal("failed to check username", err)
	}
	if existing != nil {
		username = username + "-" + randomToken(3)
	}

	passwordHash, err := utils.HashPassword(randomToken(16))
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Email:        profile.Email,
		PasswordHash: passwordHash,
		Role:         entity.RoleUser,
		IsVerified:   entity.VerifiedYes,
	}
	if profile.Avatar != "" {
		user.Avatar = &profile.Avatar
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	s.log.Info("User provisioned via Google",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return user, nil
}

func (s *authService) issueToken(user *entity.User) (*response.AuthResponse, error) {
	token, err := utils.GenerateAuthToken(
		user.ID.String(),
		user.FirstName,
		user.LastName,
		user.Email,
		string(user.Role),
		s.config.JWT.Secret,
		s.config.JWT.ExpiryHours,
	)
	if err != nil {
		return nil, apperr.Internal("failed to sign token", err)
	}

	return &response.AuthResponse{
		Token: token,
		User:  response.UserToResponse(user),
	}, nil
}

// sendActionEmail stores a single-use token and emails its action link.
func (s *authService) sendActionEmail(ctx context.Context, user *entity.User, purpose entity.TokenPurpose, event, urlPrefix string) ([]string, error) {
	tokenValue := randomToken(32)

	authToken := &entity.AuthToken{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:    user.ID,
		Email:     user.Email,
		Token:     tokenValue,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(time.Duration(s.config.Token.ExpiryMinutes) * time.Minute),
		IsUsed:    false,
	}

	if err := s.repo.Token.Create(ctx, authToken); err != nil {
		return nil, apperr.Internal("failed to store token", err)
	}

	recipients := []Recipient{{Name: user.FullName(), Email: user.Email}}
	data := mail.TemplateData{ActionURL: urlPrefix + tokenValue}

	result, err := s.notifier.Dispatch(ctx, event, recipients, data)
	if err != nil {
		s.log.Error("Failed to dispatch action email", zap.Error(err), zap.String("event", event))
		return []string{"notification dispatch failed"}, nil
	}

	return result.Warnings(), nil
}

func randomToken(byteLen int) string {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms.
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
