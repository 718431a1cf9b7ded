package usecase

import (
	"testing"
	"time"

	"dampit-rental/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateAcceptedLayouts(t *testing.T) {
	for _, value := range []string{
		"2025-06-01T08:00:00Z",
		"2025-06-01T08:00",
		"2025-06-01",
	} {
		got, err := parseDate(value, "pickDate")
		require.NoError(t, err, value)
		assert.Equal(t, 2025, got.Year())
		assert.Equal(t, time.June, got.Month())
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := parseDate("01/06/2025", "pickDate")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "pickDate")
}

func TestParseDateRangePlainDatesAreInclusive(t *testing.T) {
	start, end, err := parseDateRange("2025-06-01", "2025-06-01")
	require.NoError(t, err)
	assert.True(t, end.After(start))
	assert.Equal(t, 23, end.Hour())
}

func TestParseDateRangeRejectsInvertedRange(t *testing.T) {
	_, _, err := parseDateRange("2025-06-10", "2025-06-01")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}
