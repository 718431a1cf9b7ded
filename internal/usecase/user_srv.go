package usecase

import (
	"context"
	"io"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/dto/response"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/storage"
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetAll(ctx context.Context, req *request.UserFilterRequest) (*response.PaginatedResponse[response.UserResponse], error)
	// GetByID returns a profile to its owner or an admin only.
	GetByID(ctx context.Context, claims *utils.AuthClaims, id string) (*response.UserResponse, error)
	// Update allows owners to edit their own profile and admins to edit
	// anyone's.
	Update(ctx context.Context, claims *utils.AuthClaims, id string, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	// Delete removes an account and its reservations. Admin only.
	Delete(ctx context.Context, claims *utils.AuthClaims, id string) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, file io.Reader) (string, error)
	UploadKTP(ctx context.Context, userID uuid.UUID, filename, contentType string, file io.Reader) (string, error)
	GetAvatar(ctx context.Context, claims *utils.AuthClaims, id string) (string, error)
	// GetKTP guards the national identity document URL the same way as
	// the profile itself.
	GetKTP(ctx context.Context, claims *utils.AuthClaims, id string) (string, error)
}

type userService struct {
	repo   *repository.Repository
	config *utils.Config
	store  storage.ObjectStorage
	log    *zap.Logger
}

func NewUserService(repo *repository.Repository, config *utils.Config, store storage.ObjectStorage, log *zap.Logger) UserService {
	return &userService{
		repo:   repo,
		config: config,
		store:  store,
		log:    log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetAll(ctx context.Context, req *request.UserFilterRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed", errs)
	}

	filter := repository.UserFilter{
		Role:   req.Role,
		Gender: req.Gender,
	}
	if req.StartDate != "" || req.EndDate != "" {
		if req.StartDate == "" || req.EndDate == "" {
			return nil, apperr.InvalidArgument("startDate and endDate must be provided together")
		}
		start, end, err := parseDateRange(req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &start
		filter.EndDate = &end
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.PerPage()
	offset := utils.CalculateOffset(page, limit)

	users, err := s.repo.User.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}

	total, err := s.repo.User.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to count users", err)
	}

	rows := make([]response.UserResponse, len(users))
	for i, user := range users {
		rows[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(rows, page, limit, total), nil
}

func (s *userService) GetByID(ctx context.Context, claims *utils.AuthClaims, id string) (*response.UserResponse, error) {
	if err := requireOwnerOrAdmin(claims, id, "view this profile"); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// requireOwnerOrAdmin rejects callers that are neither the resource
// owner nor an admin.
func requireOwnerOrAdmin(claims *utils.AuthClaims, ownerID, action string) error {
	if claims.Role != "admin" && claims.ID != ownerID {
		return apperr.Forbidden("you don't have permission to " + action)
	}
	return nil
}

func (s *userService) Update(ctx context.Context, claims *utils.AuthClaims, id string, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if err := requireOwnerOrAdmin(claims, id, "update this profile"); err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed", errs)
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		existing, err := s.repo.User.FindByUsername(ctx, *req.Username)
		if err != nil {
			return nil, apperr.Internal("failed to check username", err)
		}
		if existing != nil {
			return nil, apperr.Conflict("username is already taken")
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, apperr.Internal("failed to check email", err)
		}
		if existing != nil {
			return nil, apperr.Conflict("email is already registered")
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		passwordHash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperr.Internal("failed to hash password", err)
		}
		user.PasswordHash = passwordHash
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		user.Gender = &gender
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.Contact != nil {
		user.Contact = req.Contact
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, user); err != nil {
		return nil, apperr.Internal("failed to update user", err)
	}

	s.log.Info("User profile updated", zap.String("user_id", id))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Delete removes the account and all of its reservations.
func (s *userService) Delete(ctx context.Context, claims *utils.AuthClaims, id string) error {
	if claims.Role != "admin" {
		return apperr.Forbidden("only admins can delete accounts")
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.repo.Reservation.DeleteByUserID(ctx, user.ID)
	if err != nil {
		return apperr.Internal("failed to delete user reservations", err)
	}
	if err := s.repo.User.Delete(ctx, user.ID); err != nil {
		return apperr.Internal("failed to delete user", err)
	}

	s.log.Info("User deleted",
		zap.String("user_id", id),
		zap.Int64("reservations_removed", removed),
	)

	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, filename, contentType string, file io.Reader) (string, error) {
	url, err := s.store.Upload(ctx, s.config.Storage.AvatarFolder, utils.ObjectName(filename), contentType, file)
	if err != nil {
		s.log.Error("Avatar upload failed", zap.Error(err), zap.String("user_id", userID.String()))
		return "", apperr.Upload("failed to upload avatar", err)
	}

	if err := s.repo.User.UpdateAvatar(ctx, userID, url); err != nil {
		return "", apperr.Internal("failed to save avatar URL", err)
	}

	return url, nil
}

func (s *userService) UploadKTP(ctx context.Context, userID uuid.UUID, filename, contentType string, file io.Reader) (string, error) {
	url, err := s.store.Upload(ctx, s.config.Storage.KTPFolder, utils.ObjectName(filename), contentType, file)
	if err != nil {
		s.log.Error("KTP upload failed", zap.Error(err), zap.String("user_id", userID.String()))
		return "", apperr.Upload("failed to upload KTP", err)
	}

	if err := s.repo.User.UpdateKTP(ctx, userID, url); err != nil {
		return "", apperr.Internal("failed to save KTP URL", err)
	}

	return url, nil
}

func (s *userService) GetAvatar(ctx context.Context, claims *utils.AuthClaims, id string) (string, error) {
	if err := requireOwnerOrAdmin(claims, id, "view this avatar"); err != nil {
		return "", err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return "", err
	}
	if user.Avatar == nil {
		return "", apperr.NotFound("user has no avatar")
	}
	return *user.Avatar, nil
}

func (s *userService) GetKTP(ctx context.Context, claims *utils.AuthClaims, id string) (string, error) {
	if err := requireOwnerOrAdmin(claims, id, "view this KTP"); err != nil {
		return "", err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return "", err
	}
	if user.KTP == nil {
		return "", apperr.NotFound("user has no KTP")
	}
	return *user.KTP, nil
}

func (s *userService) findUser(ctx context.Context, id string) (*entity.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid user ID format")
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}

	return user, nil
}
