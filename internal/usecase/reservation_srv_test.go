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
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func noopNotifier() NotifierService {
	return &mockNotifier{
		DispatchFn: func(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error) {
			return DispatchResult{}, nil
		},
	}
}

func testReservation(status entity.ReservationStatus) *entity.Reservation {
	now := time.Now()
	return &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      uuid.New(),
		VehicleID:   uuid.New(),
		PickUp:      "Solo",
		DropOff:     "Yogyakarta",
		Passengers:  12,
		Institution: entity.InstitutionPersonal,
		Unit:        1,
		PickDate:    now,
		DropDate:    now.Add(48 * time.Hour),
		Status:      status,
		TotalPrice:  1_200_000,
	}
}

func testVehicle() *entity.Vehicle {
	return &entity.Vehicle{
		Base:     entity.Base{ID: uuid.New()},
		Name:     "Hiace Premio",
		Model:    "2022",
		Capacity: 14,
		Price:    600_000,
		Overtime: 50_000,
	}
}

func TestCreateReservationPricesBySpanCeiling(t *testing.T) {
	vehicle := testVehicle()
	userID := uuid.New()

	var created *entity.Reservation
	repo := &repository.Repository{
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return vehicle, nil
			},
		},
		Reservation: &mockReservationRepo{
			CreateFn: func(ctx context.Context, reservation *entity.Reservation) error {
				created = reservation
				return nil
			},
		},
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return nil, nil
			},
			FindAdminsFn: func(ctx context.Context) ([]*entity.User, error) {
				return nil, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	// 25 hours spans two billable days.
	resp, warnings, err := service.Create(context.Background(), userID, &request.CreateReservationRequest{
		VehicleID:   vehicle.ID.String(),
		PickUp:      "Solo",
		DropOff:     "Semarang",
		Passengers:  10,
		Institution: "company",
		Unit:        2,
		PickDate:    "2025-06-01T08:00",
		DropDate:    "2025-06-02T09:00",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Empty(t, warnings)
	assert.Equal(t, entity.ReservationStatusPending, created.Status)
	// 600,000 * 2 units * 2 days
	assert.Equal(t, int64(2_400_000), created.TotalPrice)
	assert.Equal(t, "pending", resp.Status)
}

func TestCreateReservationUnknownVehicle(t *testing.T) {
	repo := &repository.Repository{
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return nil, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	_, _, err := service.Create(context.Background(), uuid.New(), &request.CreateReservationRequest{
		VehicleID:   uuid.NewString(),
		PickUp:      "Solo",
		DropOff:     "Semarang",
		Passengers:  10,
		Institution: "personal",
		Unit:        1,
		PickDate:    "2025-06-01",
		DropDate:    "2025-06-02",
	})

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateStatusFinishComputesOvertime(t *testing.T) {
	vehicle := testVehicle()
	reservation := testReservation(entity.ReservationStatusApproved)
	reservation.VehicleID = vehicle.ID
	reservation.Unit = 2
	reservation.TotalPrice = 3_600_000

	var finish repository.FinishUpdate
	finished := testReservation(entity.ReservationStatusFinished)
	finished.Base.ID = reservation.ID

	calls := 0
	repo := &repository.Repository{
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return vehicle, nil
			},
		},
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				calls++
				if calls == 1 {
					return reservation, nil
				}
				return finished, nil
			},
			FinishFn: func(ctx context.Context, id uuid.UUID, update repository.FinishUpdate) (bool, error) {
				finish = update
				return true, nil
			},
		},
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return nil, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	hours := 2
	_, _, err := service.UpdateStatus(context.Background(), reservation.ID.String(), &request.UpdateStatusRequest{
		Status:       "finished",
		OvertimeHour: &hours,
	})

	require.NoError(t, err)
	assert.True(t, finish.IsOvertime)
	assert.Equal(t, 2, finish.OvertimeHour)
	// 3,600,000 + 2 units * 50,000 * 2 hours
	assert.Equal(t, int64(3_800_000), finish.TotalPriceAfterOvertime)
	assert.False(t, finish.FinishedAt.IsZero())
}

func TestUpdateStatusFinishWithZeroOvertime(t *testing.T) {
	vehicle := testVehicle()
	reservation := testReservation(entity.ReservationStatusApproved)
	reservation.VehicleID = vehicle.ID

	var finish repository.FinishUpdate
	repo := &repository.Repository{
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return vehicle, nil
			},
		},
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
			FinishFn: func(ctx context.Context, id uuid.UUID, update repository.FinishUpdate) (bool, error) {
				finish = update
				return true, nil
			},
		},
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return nil, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	hours := 0
	_, _, err := service.UpdateStatus(context.Background(), reservation.ID.String(), &request.UpdateStatusRequest{
		Status:       "finished",
		OvertimeHour: &hours,
	})

	require.NoError(t, err)
	assert.False(t, finish.IsOvertime)
	assert.Equal(t, reservation.TotalPrice, finish.TotalPriceAfterOvertime)
}

func TestUpdateStatusFinishRequiresOvertimeHour(t *testing.T) {
	reservation := testReservation(entity.ReservationStatusApproved)
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	_, _, err := service.UpdateStatus(context.Background(), reservation.ID.String(), &request.UpdateStatusRequest{
		Status: "finished",
	})

	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestUpdateStatusTerminalStatesAreFrozen(t *testing.T) {
	for _, from := range []entity.ReservationStatus{
		entity.ReservationStatusRejected,
		entity.ReservationStatusFinished,
		entity.ReservationStatusCancelled,
	} {
		t.Run(string(from), func(t *testing.T) {
			reservation := testReservation(from)
			repo := &repository.Repository{
				Reservation: &mockReservationRepo{
					FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
						return reservation, nil
					},
				},
			}

			service := NewReservationService(repo, noopNotifier(), zap.NewNop())

			_, _, err := service.UpdateStatus(context.Background(), reservation.ID.String(), &request.UpdateStatusRequest{
				Status: "approved",
			})

			assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
		})
	}
}

func TestUpdateStatusLostRaceIsInvalidTransition(t *testing.T) {
	reservation := testReservation(entity.ReservationStatusPending)
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
			UpdateStatusFn: func(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus) (bool, error) {
				// Another request won the transition.
				return false, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	_, _, err := service.UpdateStatus(context.Background(), reservation.ID.String(), &request.UpdateStatusRequest{
		Status: "rejected",
	})

	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestCancelRequiresOwnership(t *testing.T) {
	reservation := testReservation(entity.ReservationStatusPending)
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	_, _, err := service.Cancel(context.Background(), uuid.New(), reservation.ID.String())
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestCancelOnlyWhilePending(t *testing.T) {
	reservation := testReservation(entity.ReservationStatusApproved)
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	_, _, err := service.Cancel(context.Background(), reservation.UserID, reservation.ID.String())
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))
}

func TestCancelNotifiesAdminsWithWarnings(t *testing.T) {
	reservation := testReservation(entity.ReservationStatusPending)
	admin := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		FirstName: "Admin",
		LastName:  "One",
		Email:     "admin@example.com",
		Role:      entity.RoleAdmin,
	}

	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
			UpdateStatusFn: func(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus) (bool, error) {
				assert.Equal(t, entity.ReservationStatusPending, from)
				assert.Equal(t, entity.ReservationStatusCancelled, to)
				return true, nil
			},
		},
		User: &mockUserRepo{
			FindAdminsFn: func(ctx context.Context) ([]*entity.User, error) {
				return []*entity.User{admin}, nil
			},
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return nil, nil
			},
		},
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return nil, nil
			},
		},
	}

	notifier := &mockNotifier{
		DispatchFn: func(ctx context.Context, event string, recipients []Recipient, data mail.TemplateData) (DispatchResult, error) {
			assert.Equal(t, EventCancelled, event)
			require.Len(t, recipients, 1)
			assert.Equal(t, "admin@example.com", recipients[0].Email)
			return DispatchResult{Failed: []string{"admin@example.com"}}, nil
		},
	}

	service := NewReservationService(repo, notifier, zap.NewNop())

	resp, warnings, err := service.Cancel(context.Background(), reservation.UserID, reservation.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "admin@example.com")
}

func TestGetAllTriagePagingEnvelope(t *testing.T) {
	rows := make([]*entity.Reservation, 5)
	for i := range rows {
		rows[i] = testReservation(entity.ReservationStatusPending)
	}

	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindAllTriageFn: func(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
				assert.Equal(t, 5, limit)
				assert.Equal(t, 5, offset)
				return rows, nil
			},
			CountAllFn: func(ctx context.Context, filter repository.ReservationFilter) (int64, error) {
				return 12, nil
			},
		},
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return nil, nil
			},
		},
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return nil, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	resp, err := service.GetAllTriage(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 5)
	assert.Equal(t, int64(12), resp.TotalRows)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
}

func TestGetByIDEnforcesOwnerOrAdmin(t *testing.T) {
	reservation := testReservation(entity.ReservationStatusPending)
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
				return reservation, nil
			},
		},
		User: &mockUserRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.User, error) {
				return nil, nil
			},
		},
		Vehicle: &mockVehicleRepo{
			FindByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
				return nil, nil
			},
		},
	}

	service := NewReservationService(repo, noopNotifier(), zap.NewNop())

	stranger := &utils.AuthClaims{ID: uuid.NewString(), Role: "user"}
	_, err := service.GetByID(context.Background(), stranger, reservation.ID.String())
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	owner := &utils.AuthClaims{ID: reservation.UserID.String(), Role: "user"}
	_, err = service.GetByID(context.Background(), owner, reservation.ID.String())
	assert.NoError(t, err)

	admin := &utils.AuthClaims{ID: uuid.NewString(), Role: "admin"}
	_, err = service.GetByID(context.Background(), admin, reservation.ID.String())
	assert.NoError(t, err)
}
