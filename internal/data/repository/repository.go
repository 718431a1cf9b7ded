package repository

import (
	"dampit-rental/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	Vehicle     VehicleRepository
	Reservation ReservationRepository
	Token       TokenRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		Vehicle:     NewVehicleRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Token:       NewTokenRepository(db, log),
	}
}
