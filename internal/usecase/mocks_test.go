package usecase

import (
	"context"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/oauth"

	"github.com/google/uuid"
)

// Function-field mocks: each test wires up only the calls it expects.

type mockUserRepo struct {
	CreateFn         func(ctx context.Context, user *entity.User) error
	FindByIDFn       func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmailFn    func(ctx context.Context, email string) (*entity.User, error)
	FindByUsernameFn func(ctx context.Context, username string) (*entity.User, error)
	FindAllFn        func(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, error)
	CountAllFn       func(ctx context.Context, filter repository.UserFilter) (int64, error)
	FindAdminsFn     func(ctx context.Context) ([]*entity.User, error)
	UpdateFn         func(ctx context.Context, user *entity.User) error
	MarkVerifiedFn   func(ctx context.Context, id uuid.UUID) error
	UpdatePasswordFn func(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateAvatarFn   func(ctx context.Context, id uuid.UUID, url string) error
	UpdateKTPFn      func(ctx context.Context, id uuid.UUID, url string) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.CreateFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return m.FindByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return m.FindByEmailFn(ctx, email)
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return m.FindByUsernameFn(ctx, username)
}
func (m *mockUserRepo) FindAll(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	return m.FindAllFn(ctx, filter, limit, offset)
}
func (m *mockUserRepo) CountAll(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return m.CountAllFn(ctx, filter)
}
func (m *mockUserRepo) FindAdmins(ctx context.Context) ([]*entity.User, error) {
	return m.FindAdminsFn(ctx)
}
func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.UpdateFn(ctx, user)
}
func (m *mockUserRepo) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return m.MarkVerifiedFn(ctx, id)
}
func (m *mockUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.UpdatePasswordFn(ctx, id, passwordHash)
}
func (m *mockUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return m.UpdateAvatarFn(ctx, id, url)
}
func (m *mockUserRepo) UpdateKTP(ctx context.Context, id uuid.UUID, url string) error {
	return m.UpdateKTPFn(ctx, id, url)
}
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

type mockVehicleRepo struct {
	CreateFn      func(ctx context.Context, vehicle *entity.Vehicle) error
	FindByIDFn    func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAllFn     func(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error)
	CountAllFn    func(ctx context.Context) (int64, error)
	FindByNameFn  func(ctx context.Context, name string, limit, offset int) ([]*entity.Vehicle, error)
	CountByNameFn func(ctx context.Context, name string) (int64, error)
	UpdateFn      func(ctx context.Context, vehicle *entity.Vehicle) error
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockVehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	return m.CreateFn(ctx, vehicle)
}
func (m *mockVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	return m.FindByIDFn(ctx, id)
}
func (m *mockVehicleRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error) {
	return m.FindAllFn(ctx, limit, offset)
}
func (m *mockVehicleRepo) CountAll(ctx context.Context) (int64, error) {
	return m.CountAllFn(ctx)
}
func (m *mockVehicleRepo) FindByName(ctx context.Context, name string, limit, offset int) ([]*entity.Vehicle, error) {
	return m.FindByNameFn(ctx, name, limit, offset)
}
func (m *mockVehicleRepo) CountByName(ctx context.Context, name string) (int64, error) {
	return m.CountByNameFn(ctx, name)
}
func (m *mockVehicleRepo) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	return m.UpdateFn(ctx, vehicle)
}
func (m *mockVehicleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

type mockReservationRepo struct {
	CreateFn         func(ctx context.Context, reservation *entity.Reservation) error
	FindByIDFn       func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindAllFn        func(ctx context.Context, filter repository.ReservationFilter, limit, offset int) ([]*entity.Reservation, error)
	CountAllFn       func(ctx context.Context, filter repository.ReservationFilter) (int64, error)
	FindAllTriageFn  func(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus) (bool, error)
	FinishFn         func(ctx context.Context, id uuid.UUID, update repository.FinishUpdate) (bool, error)
	ClearOvertimeFn  func(ctx context.Context, id uuid.UUID) error
	UpdateFn         func(ctx context.Context, reservation *entity.Reservation) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	DeleteByUserIDFn func(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByStatusFn  func(ctx context.Context, status entity.ReservationStatus) (int64, error)
	SumRevenueFn     func(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	return m.CreateFn(ctx, reservation)
}
func (m *mockReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	return m.FindByIDFn(ctx, id)
}
func (m *mockReservationRepo) FindAll(ctx context.Context, filter repository.ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	return m.FindAllFn(ctx, filter, limit, offset)
}
func (m *mockReservationRepo) CountAll(ctx context.Context, filter repository.ReservationFilter) (int64, error) {
	return m.CountAllFn(ctx, filter)
}
func (m *mockReservationRepo) FindAllTriage(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	return m.FindAllTriageFn(ctx, limit, offset)
}
func (m *mockReservationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus) (bool, error) {
	return m.UpdateStatusFn(ctx, id, from, to)
}
func (m *mockReservationRepo) Finish(ctx context.Context, id uuid.UUID, update repository.FinishUpdate) (bool, error) {
	return m.FinishFn(ctx, id, update)
}
func (m *mockReservationRepo) ClearOvertime(ctx context.Context, id uuid.UUID) error {
	return m.ClearOvertimeFn(ctx, id)
}
func (m *mockReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	return m.UpdateFn(ctx, reservation)
}
func (m *mockReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}
func (m *mockReservationRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.DeleteByUserIDFn(ctx, userID)
}
func (m *mockReservationRepo) CountByStatus(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	return m.CountByStatusFn(ctx, status)
}
func (m *mockReservationRepo) SumRevenue(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error) {
	return m.SumRevenueFn(ctx, startDate, endDate)
}

type mockTokenRepo struct {
	CreateFn        func(ctx context.Context, token *entity.AuthToken) error
	FindValidFn     func(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error)
	MarkUsedFn      func(ctx context.Context, token string) error
	DeleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockTokenRepo) Create(ctx context.Context, token *entity.AuthToken) error {
	return m.CreateFn(ctx, token)
}
func (m *mockTokenRepo) FindValid(ctx context.Context, token string, purpose entity.TokenPurpose) (*entity.AuthToken, error) {
	return m.FindValidFn(ctx, token, purpose)
}
func (m *mockTokenRepo) MarkUsed(ctx context.Context, token string) error {
	return m.MarkUsedFn(ctx, token)
}
func (m *mockTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return m.DeleteExpiredFn(ctx)
}

type mockSender struct {
	SendFn func(to, subject, htmlBody string) error
}

func (m *mockSender) Send(to, subject, htmlBody string) error {
	return m.SendFn(to, subject, htmlBody)
}

type mockNotifier struct {
	DispatchFn func(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error)
}

func (m *mockNotifier) Dispatch(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error) {
	return m.DispatchFn(ctx, event, recipients, data)
}

type mockIdentity struct {
	AuthURLFn      func(state string) string
	FetchProfileFn func(ctx context.Context, code string) (*oauth.Profile, error)
}

func (m *mockIdentity) AuthURL(state string) string {
	return m.AuthURLFn(state)
}
func (m *mockIdentity) FetchProfile(ctx context.Context, code string) (*oauth.Profile, error) {
	return m.FetchProfileFn(ctx, code)
}
