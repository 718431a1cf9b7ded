package repository

import (
	"context"
	"fmt"

	"dampit-rental/internal/data/entity"
	"dampit-rental/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error)
	CountAll(ctx context.Context) (int64, error)
	FindByName(ctx context.Context, name string, limit, offset int) ([]*entity.Vehicle, error)
	CountByName(ctx context.Context, name string) (int64, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehicleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewVehicleRepository(db database.PgxIface, log *zap.Logger) VehicleRepository {
	return &vehicleRepository{
		db:  db,
		log: log,
	}
}

const vehicleColumns = `id, name, model, capacity, price, overtime, include,
       area, parking, payment, created_at, updated_at`

func scanVehicle(row pgx.Row) (*entity.Vehicle, error) {
	var vehicle entity.Vehicle
	err := row.Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Model,
		&vehicle.Capacity,
		&vehicle.Price,
		&vehicle.Overtime,
		&vehicle.Include,
		&vehicle.Area,
		&vehicle.Parking,
		&vehicle.Payment,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (vr *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, model, capacity, price, overtime, include,
		                      area, parking, payment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := vr.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Model,
		vehicle.Capacity,
		vehicle.Price,
		vehicle.Overtime,
		vehicle.Include,
		vehicle.Area,
		vehicle.Parking,
		vehicle.Payment,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		vr.log.Error("Failed to create vehicle",
			zap.Error(err),
			zap.String("name", vehicle.Name),
		)
		return fmt.Errorf("create vehicle %s: %w", vehicle.Name, err)
	}

	return nil
}

func (vr *vehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehicles WHERE id = $1`, vehicleColumns)

	vehicle, err := scanVehicle(vr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		vr.log.Error("Failed to find vehicle by ID",
			zap.Error(err),
			zap.String("vehicle_id", id.String()),
		)
		return nil, fmt.Errorf("find vehicle by ID %s: %w", id.String(), err)
	}

	return vehicle, nil
}

// FindAll retrieves a paginated vehicle listing, newest first.
func (vr *vehicleRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Vehicle, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM vehicles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, vehicleColumns)

	rows, err := vr.db.Query(ctx, query, limit, offset)
	if err != nil {
		vr.log.Error("Failed to get all vehicles",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all vehicles limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			vr.log.Error("Failed to scan vehicle row", zap.Error(err))
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles rows: %w", err)
	}

	return vehicles, nil
}

func (vr *vehicleRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles`

	var count int64
	if err := vr.db.QueryRow(ctx, query).Scan(&count); err != nil {
		vr.log.Error("Database error counting vehicles", zap.Error(err))
		return 0, fmt.Errorf("count all vehicles: %w", err)
	}

	return count, nil
}

// FindByName searches vehicles with a case-insensitive partial match.
func (vr *vehicleRepository) FindByName(ctx context.Context, name string, limit, offset int) ([]*entity.Vehicle, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM vehicles
		WHERE name ILIKE '%%' || $1 || '%%'
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, vehicleColumns)

	rows, err := vr.db.Query(ctx, query, name, limit, offset)
	if err != nil {
		vr.log.Error("Failed to search vehicles by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find vehicles by name %s: %w", name, err)
	}
	defer rows.Close()

	var vehicles []*entity.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles rows: %w", err)
	}

	return vehicles, nil
}

func (vr *vehicleRepository) CountByName(ctx context.Context, name string) (int64, error) {
	query := `SELECT COUNT(*) FROM vehicles WHERE name ILIKE '%' || $1 || '%'`

	var count int64
	if err := vr.db.QueryRow(ctx, query, name).Scan(&count); err != nil {
		vr.log.Error("Database error counting vehicles by name", zap.Error(err))
		return 0, fmt.Errorf("count vehicles by name %s: %w", name, err)
	}

	return count, nil
}

func (vr *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, model = $3, capacity = $4, price = $5, overtime = $6,
		    include = $7, area = $8, parking = $9, payment = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := vr.db.Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Model,
		vehicle.Capacity,
		vehicle.Price,
		vehicle.Overtime,
		vehicle.Include,
		vehicle.Area,
		vehicle.Parking,
		vehicle.Payment,
		vehicle.UpdatedAt,
	)

	if err != nil {
		vr.log.Error("Failed to update vehicle",
			zap.Error(err),
			zap.String("vehicle_id", vehicle.ID.String()),
		)
		return fmt.Errorf("update vehicle %s: %w", vehicle.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", vehicle.ID.String())
	}

	return nil
}

func (vr *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM vehicles WHERE id = $1`

	result, err := vr.db.Exec(ctx, query, id)
	if err != nil {
		vr.log.Error("Failed to delete vehicle",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete vehicle %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("vehicle %s not found", id.String())
	}

	vr.log.Info("Vehicle deleted", zap.String("id", id.String()))
	return nil
}
