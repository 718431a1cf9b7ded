package usecase

import (
	"context"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/dto/request"
	"dampit-rental/internal/dto/response"
	"dampit-rental/pkg/apperr"
	"dampit-rental/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VehicleService interface {
	GetAll(ctx context.Context, page, limit int) (*response.PaginatedResponse[response.VehicleResponse], error)
	// Search matches vehicle names case-insensitively on a substring.
	Search(ctx context.Context, name string, page, limit int) (*response.PaginatedResponse[response.VehicleResponse], error)
	GetByID(ctx context.Context, id string) (*response.VehicleResponse, error)
	Create(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error)
	Update(ctx context.Context, id string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error)
	Delete(ctx context.Context, id string) error
}

type vehicleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVehicleService(repo *repository.Repository, log *zap.Logger) VehicleService {
	return &vehicleService{
		repo: repo,
		log:  log.With(zap.String("service", "vehicle")),
	}
}

func (s *vehicleService) GetAll(ctx context.Context, page, limit int) (*response.PaginatedResponse[response.VehicleResponse], error) {
	offset := utils.CalculateOffset(page, limit)

	vehicles, err := s.repo.Vehicle.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to list vehicles", err)
	}

	total, err := s.repo.Vehicle.CountAll(ctx)
	if err != nil {
		return nil, apperr.Internal("failed to count vehicles", err)
	}

	return buildVehicleList(vehicles, page, limit, total), nil
}

func (s *vehicleService) Search(ctx context.Context, name string, page, limit int) (*response.PaginatedResponse[response.VehicleResponse], error) {
	if name == "" {
		return nil, apperr.InvalidArgument("please provide a valid 'name' parameter")
	}

	offset := utils.CalculateOffset(page, limit)

	vehicles, err := s.repo.Vehicle.FindByName(ctx, name, limit, offset)
	if err != nil {
		return nil, apperr.Internal("failed to search vehicles", err)
	}

	total, err := s.repo.Vehicle.CountByName(ctx, name)
	if err != nil {
		return nil, apperr.Internal("failed to count vehicles", err)
	}

	return buildVehicleList(vehicles, page, limit, total), nil
}

func (s *vehicleService) GetByID(ctx context.Context, id string) (*response.VehicleResponse, error) {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) Create(ctx context.Context, req *request.CreateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create vehicle validation failed", zap.Any("errors", errs))
		return nil, apperr.Validation("validation failed", errs)
	}

	now := time.Now()
	vehicle := &entity.Vehicle{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Model:    req.Model,
		Capacity: req.Capacity,
		Price:    req.Price,
		Overtime: req.Overtime,
		Include:  req.Include,
		Area:     req.Area,
		Parking:  req.Parking,
		Payment:  req.Payment,
	}

	if err := s.repo.Vehicle.Create(ctx, vehicle); err != nil {
		return nil, apperr.Internal("failed to create vehicle", err)
	}

	s.log.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("name", vehicle.Name),
	)

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) Update(ctx context.Context, id string, req *request.UpdateVehicleRequest) (*response.VehicleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation("validation failed", errs)
	}

	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		vehicle.Name = *req.Name
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Capacity != nil {
		vehicle.Capacity = *req.Capacity
	}
	if req.Price != nil {
		vehicle.Price = *req.Price
	}
	if req.Overtime != nil {
		vehicle.Overtime = *req.Overtime
	}
	if req.Include != nil {
		vehicle.Include = *req.Include
	}
	if req.Area != nil {
		vehicle.Area = *req.Area
	}
	if req.Parking != nil {
		vehicle.Parking = *req.Parking
	}
	if req.Payment != nil {
		vehicle.Payment = *req.Payment
	}
	vehicle.UpdatedAt = time.Now()

	if err := s.repo.Vehicle.Update(ctx, vehicle); err != nil {
		return nil, apperr.Internal("failed to update vehicle", err)
	}

	s.log.Info("Vehicle updated", zap.String("vehicle_id", id))

	resp := response.VehicleToResponse(vehicle)
	return &resp, nil
}

func (s *vehicleService) Delete(ctx context.Context, id string) error {
	vehicle, err := s.findVehicle(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Vehicle.Delete(ctx, vehicle.ID); err != nil {
		return apperr.Internal("failed to delete vehicle", err)
	}

	s.log.Info("Vehicle deleted", zap.String("vehicle_id", id))

	return nil
}

func (s *vehicleService) findVehicle(ctx context.Context, id string) (*entity.Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.InvalidArgument("invalid vehicle ID format")
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, apperr.Internal("failed to load vehicle", err)
	}
	if vehicle == nil {
		return nil, apperr.NotFound("vehicle not found")
	}

	return vehicle, nil
}

func buildVehicleList(vehicles []*entity.Vehicle, page, limit int, total int64) *response.PaginatedResponse[response.VehicleResponse] {
	rows := make([]response.VehicleResponse, len(vehicles))
	for i, vehicle := range vehicles {
		rows[i] = response.VehicleToResponse(vehicle)
	}
	return response.NewPaginatedResponse(rows, page, limit, total)
}
