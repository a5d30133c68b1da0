package domain

import (
	"fmt"
	"time"
)

// Remaining returns the signed duration from now until 00:00 of the target
// calendar date in loc. Negative means the date has passed; exactly zero has
// not. The target carries no time of day, so changing the timezone moves the
// instant being counted down to.
func Remaining(targetDate time.Time, loc *time.Location, now time.Time) time.Duration {
	y, m, d := targetDate.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return midnight.Sub(now)
}

// Parts is a duration broken into whole days, hours and minutes.
// Seconds are discarded; no unit is counted twice.
type Parts struct {
	Days    int
	Hours   int // 0..23
	Minutes int // 0..59
}

// Split decomposes a non-negative duration into Parts.
func Split(d time.Duration) Parts {
	secs := int64(d / time.Second)
	return Parts{
		Days:    int(secs / 86400),
		Hours:   int(secs % 86400 / 3600),
		Minutes: int(secs % 3600 / 60),
	}
}

func (p Parts) String() string {
	return fmt.Sprintf("%d days, %d hours, %d minutes", p.Days, p.Hours, p.Minutes)
}

// WholeDays returns the number of full days in d, floored to 0 when d is
// negative.
func WholeDays(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
