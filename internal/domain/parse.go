package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrBadDate  = errors.New("invalid date")
	ErrBadClock = errors.New("invalid clock time")
	ErrBadName  = errors.New("invalid name")
)

// CallbackSeparator splits fields inside inline-keyboard callback payloads.
// Names must not contain it so payloads decode unambiguously.
const CallbackSeparator = "|"

// MaxNameLen caps event names (in bytes) so a name plus a timezone still fits
// Telegram's 64-byte callback data.
const MaxNameLen = 40

// ParseTargetDate parses a strict YYYY-MM-DD calendar date and returns its
// 00:00 UTC marker.
func ParseTargetDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// ParseClock parses "HH:MM" (24h) into hour and minute.
func ParseClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected HH:MM", ErrBadClock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%w: bad hour %q", ErrBadClock, parts[0])
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%w: bad minute %q", ErrBadClock, parts[1])
	}
	return h, m, nil
}

// ValidateTZ checks that the tz is a valid IANA location.
func ValidateTZ(tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}

// ValidateName checks create-time constraints on event names.
func ValidateName(name string) error {
	if name == "" || len(name) > MaxNameLen {
		return fmt.Errorf("%w: must be 1..%d characters", ErrBadName, MaxNameLen)
	}
	if strings.Contains(name, CallbackSeparator) {
		return fmt.Errorf("%w: must not contain %q", ErrBadName, CallbackSeparator)
	}
	return nil
}
