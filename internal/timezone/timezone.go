package timezone

import (
	"strings"
	"time"

	apperrors "dailyquest/internal/errors"
)

// aliases maps common vendor and abbreviation spellings onto IANA names.
// Game publishers rarely document reset times with proper zone identifiers.
var aliases = map[string]string{
	"pst":       "America/Los_Angeles",
	"pdt":       "America/Los_Angeles",
	"pacific":   "America/Los_Angeles",
	"est":       "America/New_York",
	"edt":       "America/New_York",
	"eastern":   "America/New_York",
	"cst":       "America/Chicago",
	"central":   "America/Chicago",
	"gmt":       "Etc/GMT",
	"utc":       "UTC",
	"cet":       "Europe/Paris",
	"cest":      "Europe/Paris",
	"bst":       "Europe/London",
	"jst":       "Asia/Tokyo",
	"kst":       "Asia/Seoul",
	"china":     "Asia/Shanghai",
	"sea":       "Asia/Singapore",
	"aest":      "Australia/Sydney",
	"utc+8":     "Asia/Shanghai",
	"utc+9":     "Asia/Tokyo",
	"utc-5":     "America/New_York",
	"utc-8":     "America/Los_Angeles",
	"server":    "UTC",
	"servertime": "UTC",
}

// Service resolves free-form timezone strings to canonical IANA identifiers.
type Service struct {
	fallback string
}

// NewService creates a lookup service with the given fallback zone.
func NewService(fallback string) *Service {
	if _, err := time.LoadLocation(fallback); err != nil {
		fallback = "UTC"
	}
	return &Service{fallback: fallback}
}

// Fallback returns the configured default zone.
func (s *Service) Fallback() string {
	return s.fallback
}

// IsValid reports whether tz resolves to a known zone, directly or via alias.
func (s *Service) IsValid(tz string) bool {
	_, ok := s.lookup(tz)
	return ok
}

// Normalize returns the canonical identifier for tz, or the fallback when tz
// is unknown.
func (s *Service) Normalize(tz string) string {
	if canonical, ok := s.lookup(tz); ok {
		return canonical
	}
	return s.fallback
}

// Resolve picks the account timezone for registration. An explicit value must
// be valid; otherwise the request hint is tried best-effort, and the fallback
// closes the gap. The second return reports whether the hint was used.
func (s *Service) Resolve(explicit, hint string) (string, bool, error) {
	if explicit != "" {
		canonical, ok := s.lookup(explicit)
		if !ok {
			return "", false, apperrors.ErrInvalidTimezone
		}
		return canonical, false, nil
	}
	if hint != "" {
		if canonical, ok := s.lookup(hint); ok {
			return canonical, true, nil
		}
	}
	return s.fallback, false, nil
}

func (s *Service) lookup(tz string) (string, bool) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return "", false
	}
	if canonical, ok := aliases[strings.ToLower(tz)]; ok {
		return canonical, true
	}
	if _, err := time.LoadLocation(tz); err == nil {
		return tz, true
	}
	return "", false
}

// NextReset returns the next occurrence of the "HH:MM" reset time in the
// given zone, strictly after now.
func NextReset(tz, resetTime string, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("15:04", resetTime)
	if err != nil {
		return time.Time{}, err
	}

	local := now.In(loc)
	reset := time.Date(local.Year(), local.Month(), local.Day(), t.Hour(), t.Minute(), 0, 0, loc)
	if !reset.After(local) {
		reset = reset.AddDate(0, 0, 1)
	}
	return reset, nil
}
