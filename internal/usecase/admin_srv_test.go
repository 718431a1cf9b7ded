package usecase

import (
	"context"
	"testing"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRevenueMonthRequiresYear(t *testing.T) {
	service := NewAdminService(&repository.Repository{}, zap.NewNop())

	_, err := service.Revenue(context.Background(), "6", "")
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestRevenueMonthAndYearWindow(t *testing.T) {
	var gotStart, gotEnd *time.Time
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			SumRevenueFn: func(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error) {
				gotStart, gotEnd = startDate, endDate
				return 5_000_000, 3, nil
			},
		},
	}

	service := NewAdminService(repo, zap.NewNop())

	resp, err := service.Revenue(context.Background(), "6", "2025")
	require.NoError(t, err)

	require.NotNil(t, gotStart)
	require.NotNil(t, gotEnd)
	assert.Equal(t, time.June, gotStart.Month())
	assert.Equal(t, 2025, gotStart.Year())
	assert.Equal(t, time.July, gotEnd.Month())

	assert.Equal(t, int64(5_000_000), resp.TotalRevenue)
	assert.Equal(t, int64(3), resp.Details.TotalFinishedReservations)
	assert.Equal(t, "2025-06-01", resp.Details.StartDate)
	assert.Equal(t, "2025-06-30", resp.Details.EndDate)
}

func TestRevenueYearOnlyCoversWholeYear(t *testing.T) {
	var gotStart, gotEnd *time.Time
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			SumRevenueFn: func(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error) {
				gotStart, gotEnd = startDate, endDate
				return 0, 0, nil
			},
		},
	}

	service := NewAdminService(repo, zap.NewNop())

	_, err := service.Revenue(context.Background(), "", "2024")
	require.NoError(t, err)
	assert.Equal(t, time.January, gotStart.Month())
	assert.Equal(t, 2024, gotStart.Year())
	assert.Equal(t, 2025, gotEnd.Year())
}

func TestRevenueNoWindowMeansAllTime(t *testing.T) {
	repo := &repository.Repository{
		Reservation: &mockReservationRepo{
			SumRevenueFn: func(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error) {
				assert.Nil(t, startDate)
				assert.Nil(t, endDate)
				return 12_345, 7, nil
			},
		},
	}

	service := NewAdminService(repo, zap.NewNop())

	resp, err := service.Revenue(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(12_345), resp.TotalRevenue)
	assert.Empty(t, resp.Details.StartDate)
}

func TestRevenueRejectsBadMonth(t *testing.T) {
	service := NewAdminService(&repository.Repository{}, zap.NewNop())

	for _, month := range []string{"0", "13", "abc"} {
		_, err := service.Revenue(context.Background(), month, "2025")
		assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err), "month=%s", month)
	}
}

func TestDashboardAggregatesCounts(t *testing.T) {
	repo := &repository.Repository{
		Vehicle: &mockVehicleRepo{
			CountAllFn: func(ctx context.Context) (int64, error) { return 4, nil },
		},
		User: &mockUserRepo{
			CountAllFn: func(ctx context.Context, filter repository.UserFilter) (int64, error) {
				switch {
				case filter.Role == "admin":
					return 2, nil
				case filter.Verified == "yes":
					return 10, nil
				default:
					return 3, nil
				}
			},
		},
		Reservation: &mockReservationRepo{
			CountByStatusFn: func(ctx context.Context, status entity.ReservationStatus) (int64, error) {
				switch status {
				case entity.ReservationStatusPending:
					return 5, nil
				case entity.ReservationStatusFinished:
					return 20, nil
				case entity.ReservationStatusCancelled:
					return 1, nil
				default:
					return 2, nil
				}
			},
		},
	}

	service := NewAdminService(repo, zap.NewNop())

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), dashboard.VehicleCount)
	assert.Equal(t, int64(10), dashboard.VerifiedUserCount)
	assert.Equal(t, int64(3), dashboard.NotVerifiedUserCount)
	assert.Equal(t, int64(2), dashboard.AdminCount)
	assert.Equal(t, int64(5), dashboard.PendingReservationCount)
	assert.Equal(t, int64(20), dashboard.FinishedReservationCount)
	assert.Equal(t, int64(1), dashboard.CancelledReservationCount)
	assert.Equal(t, int64(2), dashboard.RejectedReservationCount)
}
