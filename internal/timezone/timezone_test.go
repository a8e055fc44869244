package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dailyquest/internal/errors"
)

func TestNewService_InvalidFallbackBecomesUTC(t *testing.T) {
	svc := NewService("Not/AZone")
	assert.Equal(t, "UTC", svc.Fallback())

	svc = NewService("Europe/Berlin")
	assert.Equal(t, "Europe/Berlin", svc.Fallback())
}

func TestService_IsValid(t *testing.T) {
	svc := NewService("UTC")

	assert.True(t, svc.IsValid("America/New_York"))
	assert.True(t, svc.IsValid("pst"))
	assert.True(t, svc.IsValid("  JST  "))
	assert.True(t, svc.IsValid("utc+8"))
	assert.False(t, svc.IsValid(""))
	assert.False(t, svc.IsValid("Mars/Olympus"))
}

func TestService_Normalize(t *testing.T) {
	svc := NewService("UTC")

	assert.Equal(t, "America/Los_Angeles", svc.Normalize("PST"))
	assert.Equal(t, "Asia/Tokyo", svc.Normalize("jst"))
	assert.Equal(t, "Asia/Shanghai", svc.Normalize("UTC+8"))
	assert.Equal(t, "Europe/Paris", svc.Normalize("Europe/Paris"))
	assert.Equal(t, "UTC", svc.Normalize("servertime"))
	assert.Equal(t, "UTC", svc.Normalize("nonsense"))
}

func TestService_Resolve(t *testing.T) {
	svc := NewService("UTC")

	tz, auto, err := svc.Resolve("Asia/Seoul", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Seoul", tz)
	assert.False(t, auto)

	// An invalid explicit value is an error even with a usable hint.
	_, _, err = svc.Resolve("Mars/Olympus", "America/New_York")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTimezone)

	tz, auto, err = svc.Resolve("", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", tz)
	assert.True(t, auto)

	tz, auto, err = svc.Resolve("", "bogus-hint")
	require.NoError(t, err)
	assert.Equal(t, "UTC", tz)
	assert.False(t, auto)

	tz, auto, err = svc.Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, "UTC", tz)
	assert.False(t, auto)
}

func TestNextReset(t *testing.T) {
	// 2026-03-10 10:00 UTC.
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	// Reset later the same day.
	reset, err := NextReset("UTC", "17:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC), reset)

	// Reset time already passed rolls to tomorrow.
	reset, err = NextReset("UTC", "04:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 4, 0, 0, 0, time.UTC), reset)

	// Zone conversion: 04:00 in Tokyo is still ahead of 10:00 UTC (19:00 JST).
	reset, err = NextReset("Asia/Tokyo", "04:00", now)
	require.NoError(t, err)
	loc, _ := time.LoadLocation("Asia/Tokyo")
	assert.Equal(t, time.Date(2026, 3, 11, 4, 0, 0, 0, loc).Unix(), reset.Unix())

	// An exact tie rolls forward a full day.
	reset, err = NextReset("UTC", "10:00", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC), reset)

	_, err = NextReset("Mars/Olympus", "10:00", now)
	assert.Error(t, err)

	_, err = NextReset("UTC", "25:99", now)
	assert.Error(t, err)
}
