package usecase

import (
	"context"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/dto/response"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Create books a vehicle and notifies every admin. The returned
	// warnings list carries partial notification failures.
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, []string, error)
	GetAllTriage(ctx context.Context, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetByDateRange(ctx context.Context, startDate, endDate string, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetByID(ctx context.Context, claims *utils.AuthClaims, id string) (*response.ReservationResponse, error)
	GetByUserID(ctx context.Context, claims *utils.AuthClaims, userID string, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetByVehicleID(ctx context.Context, vehicleID string, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error)
	// UpdateStatus is the admin transition (approve/reject/finish).
	UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.ReservationResponse, []string, error)
	// Cancel is the owner-initiated pending -> cancelled transition.
	Cancel(ctx context.Context, requesterID uuid.UUID, id string) (*response.ReservationResponse, []string, error)
	Update(ctx context.Context, id string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error)
	Delete(ctx context.Context, id string) error
}

type reservationService struct {
	repo     *repository.Repository
	notifier NotifierService
	log      *zap.Logger
}

func NewReservationService(repo *repository.Repository, notifier NotifierService, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateReservationRequest) (*response.ReservationResponse, []string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, nil, apperr.Validation("validation failed", errs)
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, nil, apperr.InvalidArgument("invalid vehicle ID format")
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, nil, apperr.Internal("failed to load vehicle", err)
	}
	if vehicle == nil {
		return nil, nil, apperr.NotFound("vehicle not found")
	}

	pickDate, err := parseDate(req.PickDate, "pickDate")
	if err != nil {
		return nil, nil, err
	}
	dropDate, err := parseDate(req.DropDate, "dropDate")
	if err != nil {
		return nil, nil, err
	}
	if dropDate.Before(pickDate) {
		return nil, nil, apperr.InvalidArgument("dropDate must not be before pickDate")
	}

	days := RentalDays(pickDate, dropDate)
	totalPrice := TotalPrice(vehicle.Price, req.Unit, days)

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userID,
		VehicleID:   vehicleID,
		PickUp:      req.PickUp,
		DropOff:     req.DropOff,
		Passengers:  req.Passengers,
		Institution: entity.Institution(req.Institution),
		Unit:        req.Unit,
		PickDate:    pickDate,
		DropDate:    dropDate,
		Status:      entity.ReservationStatusPending,
		TotalPrice:  totalPrice,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, nil, apperr.Internal("failed to create reservation", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("vehicle_id", vehicleID.String()),
		zap.Int("rental_days", days),
		zap.Int64("total_price", totalPrice),
	)

	// Notify every admin; their failures become warnings, not errors.
	warnings := s.notifyAdmins(ctx, EventNewReservation, reservation, vehicle)

	resp := response.ReservationToResponse(reservation)
	return &resp, warnings, nil
}

func (s *reservationService) GetAllTriage(ctx context.Context, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error) {
	offset := utils.CalculateOffset(page, limit)

	reservations, err := s.repo.Reservation.FindAllTriage(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list reservations", err)
	}

	total, err := s.repo.Reservation.CountAll(ctx, repository.ReservationFilter{})
	if err != nil {
		return nil, apperr.Internal("failed to count reservations", err)
	}

	return s.buildListResponse(ctx, reservations, page, limit, total), nil
}

func (s *reservationService) GetByDateRange(ctx context.Context, startDate, endDate string, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error) {
	if startDate == "" || endDate == "" {
		return nil, apperr.InvalidArgument("please provide a valid 'startDate' and 'endDate' parameter")
	}

	start, end, err := parseDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	filter := repository.ReservationFilter{StartDate: &start, EndDate: &end}
	offset := utils.CalculateOffset(page, limit)

	reservations, err := s.repo.Reservation.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list reservations", err)
	}

	total, err := s.repo.Reservation.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to count reservations", err)
	}

	return s.buildListResponse(ctx, reservations, page, limit, total), nil
}

func (s *reservationService) GetByID(ctx context.Context, claims *utils.AuthClaims, id string) (*response.ReservationResponse, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid reservation ID format")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, apperr.Internal("failed to load reservation", err)
	}
	if reservation == nil {
		return nil, apperr.NotFound("reservation not found")
	}

	if claims.Role != "admin" && claims.ID != reservation.UserID.String() {
		return nil, apperr.Forbidden("you don't have permission to view this reservation")
	}

	user, _ := s.repo.User.FindByID(ctx, reservation.UserID)
	vehicle, _ := s.repo.Vehicle.FindByID(ctx, reservation.VehicleID)

	resp := response.ReservationToDetailResponse(reservation, user, vehicle)
	return &resp, nil
}

func (s *reservationService) GetByUserID(ctx context.Context, claims *utils.AuthClaims, userID string, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid user ID format")
	}

	if claims.Role != "admin" && claims.ID != userID {
		return nil, apperr.Forbidden("you don't have permission to view these reservations")
	}

	filter := repository.ReservationFilter{UserID: &userUUID}
	offset := utils.CalculateOffset(page, limit)

	reservations, err := s.repo.Reservation.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list reservations", err)
	}

	total, err := s.repo.Reservation.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to count reservations", err)
	}

	return s.buildListResponse(ctx, reservations, page, limit, total), nil
}

func (s *reservationService) GetByVehicleID(ctx context.Context, vehicleID string, page, limit int) (*response.PaginatedResponse[response.ReservationResponse], error) {
	vehicleUUID, err := uuid.Parse(vehicleID)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid vehicle ID format")
	}

	filter := repository.ReservationFilter{VehicleID: &vehicleUUID}
	offset := utils.CalculateOffset(page, limit)

	reservations, err := s.repo.Reservation.FindAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list reservations", err)
	}

	total, err := s.repo.Reservation.CountAll(ctx, filter)
	if err != nil {
		return nil, apperr.Internal("failed to count reservations", err)
	}

	return s.buildListResponse(ctx, reservations, page, limit, total), nil
}

func (s *reservationService) UpdateStatus(ctx context.Context, id string, req *request.UpdateStatusRequest) (*response.ReservationResponse, []string, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, nil, apperr.Validation("validation failed", errs)
	}

	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, apperr.InvalidArgument("invalid reservation ID format")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, nil, apperr.Internal("failed to load reservation", err)
	}
	if reservation == nil {
		return nil, nil, apperr.NotFound("reservation not found")
	}

	newStatus := entity.ReservationStatus(req.Status)
	if !CanTransition(reservation.Status, newStatus) {
		return nil, nil, apperr.InvalidTransition(
			"cannot change status from " + string(reservation.Status) + " to " + string(newStatus))
	}

	switch newStatus {
	case entity.ReservationStatusFinished:
		if req.OvertimeHour == nil {
			return nil, nil, apperr.InvalidArgument("overtimeHour is required when finishing a reservation")
		}
		if *req.OvertimeHour < 0 {
			return nil, nil, apperr.InvalidArgument("overtimeHour must be a non-negative integer")
		}

		vehicle, err := s.repo.Vehicle.FindByID(ctx, reservation.VehicleID)
		if err != nil {
			return nil, nil, apperr.Internal("failed to load vehicle", err)
		}
		if vehicle == nil {
			return nil, nil, apperr.NotFound("vehicle not found")
		}

		hours := *req.OvertimeHour
		update := repository.FinishUpdate{
			OvertimeHour:            hours,
			IsOvertime:              hours != 0,
			TotalPriceAfterOvertime: OvertimePrice(reservation.TotalPrice, reservation.Unit, vehicle.Overtime, hours),
			FinishedAt:              time.Now(),
		}

		ok, err := s.repo.Reservation.Finish(ctx, reservationID, update)
		if err != nil {
			return nil, nil, apperr.Internal("failed to finish reservation", err)
		}
		if !ok {
			// Lost a concurrent transition race.
			return nil, nil, apperr.InvalidTransition("reservation is no longer approved")
		}

	default:
		ok, err := s.repo.Reservation.UpdateStatus(ctx, reservationID, entity.ReservationStatusPending, newStatus)
		if err != nil {
			return nil, nil, apperr.Internal("failed to update reservation status", err)
		}
		if !ok {
			return nil, nil, apperr.InvalidTransition("reservation is no longer pending")
		}

		// Approval starts from a clean overtime slate. Rejection leaves
		// the base price untouched: a rejected reservation represents
		// no committed price, so there is nothing to zero.
		if newStatus == entity.ReservationStatusApproved {
			if err := s.repo.Reservation.ClearOvertime(ctx, reservationID); err != nil {
				return nil, nil, apperr.Internal("failed to reset overtime fields", err)
			}
		}
	}

	updated, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil || updated == nil {
		return nil, nil, apperr.Internal("failed to reload reservation", err)
	}

	s.log.Info("Reservation status updated",
		zap.String("reservation_id", id),
		zap.String("from", string(reservation.Status)),
		zap.String("to", string(newStatus)),
	)

	// Notify the owner of the new status.
	warnings := s.notifyOwner(ctx, string(newStatus), updated)

	resp := response.ReservationToResponse(updated)
	return &resp, warnings, nil
}

func (s *reservationService) Cancel(ctx context.Context, requesterID uuid.UUID, id string) (*response.ReservationResponse, []string, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, apperr.InvalidArgument("invalid reservation ID format")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, nil, apperr.Internal("failed to load reservation", err)
	}
	if reservation == nil {
		return nil, nil, apperr.NotFound("reservation not found")
	}

	if reservation.UserID != requesterID {
		return nil, nil, apperr.Forbidden("you don't have permission to cancel this reservation")
	}

	if !CanTransition(reservation.Status, entity.ReservationStatusCancelled) {
		return nil, nil, apperr.InvalidTransition(
			"cannot cancel a reservation in status " + string(reservation.Status))
	}

	ok, err := s.repo.Reservation.UpdateStatus(ctx, reservationID,
		entity.ReservationStatusPending, entity.ReservationStatusCancelled)
	if err != nil {
		return nil, nil, apperr.Internal("failed to cancel reservation", err)
	}
	if !ok {
		return nil, nil, apperr.InvalidTransition("reservation is no longer pending")
	}

	reservation.Status = entity.ReservationStatusCancelled

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", id),
		zap.String("user_id", requesterID.String()),
	)

	vehicle, _ := s.repo.Vehicle.FindByID(ctx, reservation.VehicleID)
	warnings := s.notifyAdmins(ctx, EventCancelled, reservation, vehicle)

	resp := response.ReservationToResponse(reservation)
	return &resp, warnings, nil
}

func (s *reservationService) Update(ctx context.Context, id string, req *request.UpdateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed", errs)
	}

	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid reservation ID format")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, apperr.Internal("failed to load reservation", err)
	}
	if reservation == nil {
		return nil, apperr.NotFound("reservation not found")
	}

	if req.PickUp != nil {
		reservation.PickUp = *req.PickUp
	}
	if req.DropOff != nil {
		reservation.DropOff = *req.DropOff
	}
	if req.Passengers != nil {
		reservation.Passengers = *req.Passengers
	}
	if req.Institution != nil {
		reservation.Institution = entity.Institution(*req.Institution)
	}
	if req.Unit != nil {
		reservation.Unit = *req.Unit
	}
	if req.PickDate != nil {
		pickDate, err := parseDate(*req.PickDate, "pickDate")
		if err != nil {
			return nil, err
		}
		reservation.PickDate = pickDate
	}
	if req.DropDate != nil {
		dropDate, err := parseDate(*req.DropDate, "dropDate")
		if err != nil {
			return nil, err
		}
		reservation.DropDate = dropDate
	}
	if reservation.DropDate.Before(reservation.PickDate) {
		return nil, apperr.InvalidArgument("dropDate must not be before pickDate")
	}
	reservation.UpdatedAt = time.Now()

	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, apperr.Internal("failed to update reservation", err)
	}

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) Delete(ctx context.Context, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return apperr.InvalidArgument("invalid reservation ID format")
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return apperr.Internal("failed to load reservation", err)
	}
	if reservation == nil {
		return apperr.NotFound("reservation not found")
	}

	if err := s.repo.Reservation.Delete(ctx, reservationID); err != nil {
		return apperr.Internal("failed to delete reservation", err)
	}

	return nil
}

// buildListResponse attaches user and vehicle details to each row.
func (s *reservationService) buildListResponse(ctx context.Context, reservations []*entity.Reservation, page, limit int, total int64) *response.PaginatedResponse[response.ReservationResponse] {
	rows := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		user, _ := s.repo.User.FindByID(ctx, reservation.UserID)
		vehicle, _ := s.repo.Vehicle.FindByID(ctx, reservation.VehicleID)
		rows[i] = response.ReservationToDetailResponse(reservation, user, vehicle)
	}

	return response.NewPaginatedResponse(rows, page, limit, total)
}

func (s *reservationService) templateData(reservation *entity.Reservation, user *entity.User, vehicle *entity.Vehicle) mail.TemplateData {
	data := mail.TemplateData{
		PickUp:     reservation.PickUp,
		DropOff:    reservation.DropOff,
		PickDate:   reservation.PickDate.Format("2006-01-02 15:04"),
		DropDate:   reservation.DropDate.Format("2006-01-02 15:04"),
		Unit:       reservation.Unit,
		TotalPrice: reservation.TotalPrice,
		Status:     string(reservation.Status),
	}
	if reservation.Status == entity.ReservationStatusFinished {
		data.TotalPrice = reservation.TotalPriceAfterOvertime
	}
	if user != nil {
		data.UserName = user.FullName()
		data.UserEmail = user.Email
		if user.Contact != nil {
			data.UserContact = *user.Contact
		}
	}
	if vehicle != nil {
		data.VehicleName = vehicle.Name
	}
	return data
}

func (s *reservationService) notifyAdmins(ctx context.Context, event string, reservation *entity.Reservation, vehicle *entity.Vehicle) []string {
	admins, err := s.repo.User.FindAdmins(ctx)
	if err != nil {
		s.log.Error("Failed to load admin recipients", zap.Error(err))
		return []string{"could not load admin recipients for notification"}
	}

	user, _ := s.repo.User.FindByID(ctx, reservation.UserID)

	recipients := make([]Recipient, len(admins))
	for i, admin := range admins {
		recipients[i] = Recipient{Name: admin.FullName(), Email: admin.Email}
	}

	result, err := s.notifier.Dispatch(ctx, event, recipients, s.templateData(reservation, user, vehicle))
	if err != nil {
		s.log.Error("Failed to dispatch notification", zap.Error(err), zap.String("event", event))
		return []string{"notification dispatch failed"}
	}

	return result.Warnings()
}

func (s *reservationService) notifyOwner(ctx context.Context, event string, reservation *entity.Reservation) []string {
	user, err := s.repo.User.FindByID(ctx, reservation.UserID)
	if err != nil || user == nil {
		s.log.Error("Failed to load reservation owner for notification",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return []string{"could not load reservation owner for notification"}
	}

	vehicle, _ := s.repo.Vehicle.FindByID(ctx, reservation.VehicleID)

	recipients := []Recipient{{Name: user.FullName(), Email: user.Email}}
	result, err := s.notifier.Dispatch(ctx, event, recipients, s.templateData(reservation, user, vehicle))
	if err != nil {
		s.log.Error("Failed to dispatch notification", zap.Error(err), zap.String("event", event))
		return []string{"notification dispatch failed"}
	}

	return result.Warnings()
}
