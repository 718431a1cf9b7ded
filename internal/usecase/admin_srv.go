package usecase

import (
	"context"
	"strconv"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/dto/response"
	"dampit-rental/pkg/apperr"

	"go.uber.org/zap"
)

type AdminService interface {
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	// Revenue sums finished-reservation income. A month needs a year;
	// a year alone covers January through December; neither means all
	// time.
	Revenue(ctx context.Context, month, year string) (*response.RevenueResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	vehicleCount, err := s.repo.Vehicle.CountAll(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to count vehicles", err)
	}

	verifiedUsers, err := s.repo.User.CountAll(ctx, repository.UserFilter{
		Role:     string(entity.RoleUser),
		Verified: string(entity.VerifiedYes),
	})
	if err != nil {
		return nil, apperr.Internal("failed to count verified users", err)
	}

	notVerifiedUsers, err := s.repo.User.CountAll(ctx, repository.UserFilter{
		Role:     string(entity.RoleUser),
		Verified: string(entity.VerifiedNo),
	})
	if err != nil {
		return nil, apperr.Internal("failed to count unverified users", err)
	}

	adminCount, err := s.repo.User.CountAll(ctx, repository.UserFilter{
		Role: string(entity.RoleAdmin),
	})
	if err != nil {
		return nil, apperr.Internal("failed to count admins", err)
	}

	dashboard := &response.DashboardResponse{
		VehicleCount:         vehicleCount,
		VerifiedUserCount:    verifiedUsers,
		NotVerifiedUserCount: notVerifiedUsers,
		AdminCount:           adminCount,
	}

	statusCounts := []struct {
		status entity.ReservationStatus
		target *int64
	}{
		{entity.ReservationStatusPending, &dashboard.PendingReservationCount},
		{entity.ReservationStatusFinished, &dashboard.FinishedReservationCount},
		{entity.ReservationStatusCancelled, &dashboard.CancelledReservationCount},
		{entity.ReservationStatusRejected, &dashboard.RejectedReservationCount},
	}
	for _, sc := range statusCounts {
		count, err := s.repo.Reservation.CountByStatus(ctx, sc.status)
		if err != nil {
			return nil, apperr.Internal("failed to count reservations", err)
		}
		*sc.target = count
	}

	return dashboard, nil
}

func (s *adminService) Revenue(ctx context.Context, month, year string) (*response.RevenueResponse, error) {
	var startDate, endDate *time.Time

	details := response.RevenueDetails{Month: month, Year: year}

	switch {
	case month != "" && year == "":
		return nil, apperr.InvalidArgument("month requires a year")

	case month != "" && year != "":
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return nil, apperr.InvalidArgument("month must be between 1 and 12")
		}
		y, err := strconv.Atoi(year)
		if err != nil || y < 1 {
			return nil, apperr.InvalidArgument("year must be a valid number")
		}
		start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(0, 1, 0)
		startDate, endDate = &start, &end

	case year != "":
		y, err := strconv.Atoi(year)
		if err != nil || y < 1 {
			return nil, apperr.InvalidArgument("year must be a valid number")
		}
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local)
		end := start.AddDate(1, 0, 0)
		startDate, endDate = &start, &end
	}

	if startDate != nil {
		details.StartDate = startDate.Format("2006-01-02")
		// The end bound is exclusive; report the last included day.
		details.EndDate = endDate.AddDate(0, 0, -1).Format("2006-01-02")
	}

	revenue, finished, err := s.repo.Reservation.SumRevenue(ctx, startDate, endDate)
	if err != nil {
		return nil, apperr.Internal("failed to sum revenue", err)
	}

	details.TotalFinishedReservations = finished

	return &response.RevenueResponse{
		TotalRevenue: revenue,
		Details:      details,
	}, nil
}
