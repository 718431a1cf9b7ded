package usecase

import (
	"testing"
	"time"

	"dampit-rental/internal/data/entity"

	"github.com/stretchr/testify/assert"
)

func TestRentalDays(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dropDate time.Time
		want     int
	}{
		{"exactly one day", base.Add(24 * time.Hour), 1},
		{"one hour past a day rounds up", base.Add(25 * time.Hour), 2},
		{"exactly two days", base.Add(48 * time.Hour), 2},
		{"same instant bills one day", base, 1},
		{"a few hours bills one day", base.Add(6 * time.Hour), 1},
		{"drop before pick bills one day", base.Add(-3 * time.Hour), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RentalDays(base, tt.dropDate))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	// 600,000/day, 2 units, 3 days
	assert.Equal(t, int64(3_600_000), TotalPrice(600_000, 2, 3))
	assert.Equal(t, int64(600_000), TotalPrice(600_000, 1, 1))
}

func TestOvertimePrice(t *testing.T) {
	// base 3,600,000 + 1 unit * 50,000/hour * 2 hours
	assert.Equal(t, int64(3_700_000), OvertimePrice(3_600_000, 1, 50_000, 2))
	// surcharge scales with unit count
	assert.Equal(t, int64(3_800_000), OvertimePrice(3_600_000, 2, 50_000, 2))
	// zero hours leaves the base price alone
	assert.Equal(t, int64(3_600_000), OvertimePrice(3_600_000, 2, 50_000, 0))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.ReservationStatus
		want     bool
	}{
		{entity.ReservationStatusPending, entity.ReservationStatusApproved, true},
		{entity.ReservationStatusPending, entity.ReservationStatusRejected, true},
		{entity.ReservationStatusPending, entity.ReservationStatusCancelled, true},
		{entity.ReservationStatusPending, entity.ReservationStatusFinished, false},
		{entity.ReservationStatusApproved, entity.ReservationStatusFinished, true},
		{entity.ReservationStatusApproved, entity.ReservationStatusRejected, false},
		{entity.ReservationStatusApproved, entity.ReservationStatusCancelled, false},
		{entity.ReservationStatusRejected, entity.ReservationStatusApproved, false},
		{entity.ReservationStatusFinished, entity.ReservationStatusCancelled, false},
		{entity.ReservationStatusCancelled, entity.ReservationStatusApproved, false},
		{entity.ReservationStatusPending, entity.ReservationStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
