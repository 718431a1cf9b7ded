package usecase

import (
	"time"

	"dampit-rental/internal/data/entity"
)

// RentalDays converts a rental span into billable days using calendar
// ceiling: a 25-hour rental bills 2 days, a same-day rental bills 1.
func RentalDays(pickDate, dropDate time.Time) int {
	span := dropDate.Sub(pickDate)
	if span <= 0 {
		return 1
	}

	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// TotalPrice is the base reservation price, fixed at creation.
func TotalPrice(dailyPrice int64, unit, days int) int64 {
	return dailyPrice * int64(unit) * int64(days)
}

// OvertimePrice is the final price on finish. The surcharge scales with
// the number of units, matching the base price scaling.
func OvertimePrice(totalPrice int64, unit int, overtimeRate int64, overtimeHours int) int64 {
	return totalPrice + int64(unit)*overtimeRate*int64(overtimeHours)
}

// CanTransition enforces the one-directional reservation lifecycle:
// pending -> approved|rejected|cancelled, approved -> finished.
func CanTransition(from, to entity.ReservationStatus) bool {
	switch to {
	case entity.ReservationStatusApproved,
		entity.ReservationStatusRejected,
		entity.ReservationStatusCancelled:
		return from == entity.ReservationStatusPending
	case entity.ReservationStatusFinished:
		return from == entity.ReservationStatusApproved
	default:
		return false
	}
}
