package usecase

import (
	"dampit-rental/internal/data/repository"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/oauth"
	"dampit-rental/pkg/storage"
	"dampit-rental/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth        AuthService
	User        UserService
	Vehicle     VehicleService
	Reservation ReservationService
	Admin       AdminService
	Notifier    NotifierService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	sender mail.Sender,
	store storage.ObjectStorage,
	identity oauth.IdentityProvider,
) *Service {
	notifier := NewNotifierService(sender, config.Email, log)

	return &Service{
		Auth:        NewAuthService(repo, config, notifier, identity, log),
		User:        NewUserService(repo, config, store, log),
		Vehicle:     NewVehicleService(repo, log),
		Reservation: NewReservationService(repo, notifier, log),
		Admin:       NewAdminService(repo, log),
		Notifier:    notifier,
	}
}
