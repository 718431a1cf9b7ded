package repository

import (
	"context"
	"fmt"
	"time"

	"dampit-rental/internal/data/entity"
	"dampit-rental/pkg/database"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ReservationFilter narrows reservation listings. Nil/zero values mean
// "no constraint".
type ReservationFilter struct {
	UserID    *uuid.UUID
	VehicleID *uuid.UUID
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// FinishUpdate carries the pricing fields written on the
// approved -> finished transition.
type FinishUpdate struct {
	OvertimeHour            int
	IsOvertime              bool
	TotalPriceAfterOvertime int64
	FinishedAt              time.Time
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindAll(ctx context.Context, filter ReservationFilter, limit, offset int) ([]*entity.Reservation, error)
	CountAll(ctx context.Context, filter ReservationFilter) (int64, error)
	FindAllTriage(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	// UpdateStatus is a compare-and-set: the row only moves to the new
	// status if it still holds the expected one. Returns false when the
	// guard fails (row gone or status already changed).
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus) (bool, error)
	// Finish atomically moves an approved reservation to finished and
	// writes the overtime pricing fields in the same statement.
	Finish(ctx context.Context, id uuid.UUID, update FinishUpdate) (bool, error)
	// ClearOvertime zeroes the overtime fields, used on approval so a
	// re-created approval always starts clean.
	ClearOvertime(ctx context.Context, id uuid.UUID) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status entity.ReservationStatus) (int64, error)
	SumRevenue(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log,
	}
}

const reservationColumns = `id, user_id, vehicle_id, pick_up, drop_off, passengers,
       institution, unit, pick_date, drop_date, status, total_price,
       is_overtime, overtime_hour, total_price_after_overtime, finished_at,
       created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.VehicleID,
		&r.PickUp,
		&r.DropOff,
		&r.Passengers,
		&r.Institution,
		&r.Unit,
		&r.PickDate,
		&r.DropDate,
		&r.Status,
		&r.TotalPrice,
		&r.IsOvertime,
		&r.OvertimeHour,
		&r.TotalPriceAfterOvertime,
		&r.FinishedAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (rr *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, vehicle_id, pick_up, drop_off,
		                          passengers, institution, unit, pick_date, drop_date,
		                          status, total_price, is_overtime, overtime_hour,
		                          total_price_after_overtime, finished_at,
		                          created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err := rr.db.Exec(ctx, query,
		reservation.ID,
		reservation.UserID,
		reservation.VehicleID,
		reservation.PickUp,
		reservation.DropOff,
		reservation.Passengers,
		reservation.Institution,
		reservation.Unit,
		reservation.PickDate,
		reservation.DropDate,
		reservation.Status,
		reservation.TotalPrice,
		reservation.IsOvertime,
		reservation.OvertimeHour,
		reservation.TotalPriceAfterOvertime,
		reservation.FinishedAt,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		rr.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("user_id", reservation.UserID.String()),
			zap.String("vehicle_id", reservation.VehicleID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

func (rr *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM reservations WHERE id = $1`, reservationColumns)

	reservation, err := scanReservation(rr.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		rr.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func reservationFilterDataset(filter ReservationFilter) *goqu.SelectDataset {
	ds := goqu.Dialect(dialectPostgres).From("reservations")

	if filter.UserID != nil {
		ds = ds.Where(goqu.C("user_id").Eq(*filter.UserID))
	}
	if filter.VehicleID != nil {
		ds = ds.Where(goqu.C("vehicle_id").Eq(*filter.VehicleID))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(filter.Status))
	}
	if filter.StartDate != nil && filter.EndDate != nil {
		ds = ds.Where(goqu.C("created_at").Between(goqu.Range(*filter.StartDate, *filter.EndDate)))
	}

	return ds
}

// FindAll retrieves a filtered, paginated listing, newest first.
func (rr *reservationRepository) FindAll(ctx context.Context, filter ReservationFilter, limit, offset int) ([]*entity.Reservation, error) {
	query, args, err := reservationFilterDataset(filter).
		Select(goqu.L(reservationColumns)).
		Order(goqu.C("created_at").Desc()).
		Limit(uint(limit)).
		Offset(uint(offset)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build reservations query: %w", err)
	}

	rows, err := rr.db.Query(ctx, query, args...)
	if err != nil {
		rr.log.Error("Failed to get reservations",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find reservations limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			rr.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations rows: %w", err)
	}

	return reservations, nil
}

func (rr *reservationRepository) CountAll(ctx context.Context, filter ReservationFilter) (int64, error) {
	query, args, err := reservationFilterDataset(filter).
		Select(goqu.COUNT("*")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build reservations count query: %w", err)
	}

	var count int64
	if err := rr.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		rr.log.Error("Database error counting reservations", zap.Error(err))
		return 0, fmt.Errorf("count reservations: %w", err)
	}

	return count, nil
}

// FindAllTriage is the admin listing: pending rows first, oldest
// pending on top so the longest-waiting request gets handled first,
// then everything else newest first.
func (rr *reservationRepository) FindAllTriage(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM reservations
		ORDER BY (status = 'pending') DESC,
		         CASE WHEN status = 'pending' THEN created_at END ASC,
		         created_at DESC
		LIMIT $1 OFFSET $2
	`, reservationColumns)

	rows, err := rr.db.Query(ctx, query, limit, offset)
	if err != nil {
		rr.log.Error("Failed to get triage reservations", zap.Error(err))
		return nil, fmt.Errorf("find triage reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reservations rows: %w", err)
	}

	return reservations, nil
}

func (rr *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.ReservationStatus) (bool, error) {
	query := `
		UPDATE reservations
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`

	result, err := rr.db.Exec(ctx, query, id, from, to)
	if err != nil {
		rr.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update reservation %s status to %s: %w", id.String(), to, err)
	}

	return result.RowsAffected() > 0, nil
}

func (rr *reservationRepository) Finish(ctx context.Context, id uuid.UUID, update FinishUpdate) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'finished', is_overtime = $2, overtime_hour = $3,
		    total_price_after_overtime = $4, finished_at = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'approved'
	`

	result, err := rr.db.Exec(ctx, query,
		id,
		update.IsOvertime,
		update.OvertimeHour,
		update.TotalPriceAfterOvertime,
		update.FinishedAt,
	)
	if err != nil {
		rr.log.Error("Failed to finish reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return false, fmt.Errorf("finish reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (rr *reservationRepository) ClearOvertime(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reservations
		SET is_overtime = FALSE, overtime_hour = 0,
		    total_price_after_overtime = 0, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := rr.db.Exec(ctx, query, id); err != nil {
		rr.log.Error("Failed to clear overtime fields",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("clear overtime for reservation %s: %w", id.String(), err)
	}

	return nil
}

func (rr *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET pick_up = $2, drop_off = $3, passengers = $4, institution = $5,
		    unit = $6, pick_date = $7, drop_date = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := rr.db.Exec(ctx, query,
		reservation.ID,
		reservation.PickUp,
		reservation.DropOff,
		reservation.Passengers,
		reservation.Institution,
		reservation.Unit,
		reservation.PickDate,
		reservation.DropDate,
		reservation.UpdatedAt,
	)

	if err != nil {
		rr.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", reservation.ID.String())
	}

	return nil
}

func (rr *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reservations WHERE id = $1`

	result, err := rr.db.Exec(ctx, query, id)
	if err != nil {
		rr.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	rr.log.Info("Reservation deleted", zap.String("id", id.String()))
	return nil
}

// DeleteByUserID removes all of a user's reservations, used when an
// admin deletes the account.
func (rr *reservationRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `DELETE FROM reservations WHERE user_id = $1`

	result, err := rr.db.Exec(ctx, query, userID)
	if err != nil {
		rr.log.Error("Failed to delete reservations by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("delete reservations for user %s: %w", userID.String(), err)
	}

	return result.RowsAffected(), nil
}

func (rr *reservationRepository) CountByStatus(ctx context.Context, status entity.ReservationStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE status = $1`

	var count int64
	if err := rr.db.QueryRow(ctx, query, status).Scan(&count); err != nil {
		rr.log.Error("Database error counting reservations by status", zap.Error(err))
		return 0, fmt.Errorf("count reservations with status %s: %w", status, err)
	}

	return count, nil
}

// SumRevenue totals total_price_after_overtime over finished
// reservations, optionally windowed on finished_at. Returns the sum and
// the number of finished reservations counted.
func (rr *reservationRepository) SumRevenue(ctx context.Context, startDate, endDate *time.Time) (int64, int64, error) {
	ds := goqu.Dialect(dialectPostgres).
		From("reservations").
		Where(goqu.C("status").Eq("finished"))

	// Half-open window so a month boundary is never counted twice.
	if startDate != nil && endDate != nil {
		ds = ds.Where(
			goqu.C("finished_at").Gte(*startDate),
			goqu.C("finished_at").Lt(*endDate),
		)
	}

	query, args, err := ds.
		Select(
			goqu.COALESCE(goqu.SUM("total_price_after_overtime"), 0),
			goqu.COUNT("*"),
		).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, 0, fmt.Errorf("build revenue query: %w", err)
	}

	var revenue, count int64
	if err := rr.db.QueryRow(ctx, query, args...).Scan(&revenue, &count); err != nil {
		rr.log.Error("Database error summing revenue", zap.Error(err))
		return 0, 0, fmt.Errorf("sum revenue: %w", err)
	}

	return revenue, count, nil
}
