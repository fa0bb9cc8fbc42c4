package timezone

import (
	"net/http"
	"time"

	"github.com/agilityengineers/SmartScheduler-sub007/internal/pkg/apperror"
)

// ErrInvalidTimezone is returned for zone identifiers the tzdata rule table
// does not recognize. Always a caller/config bug, never retried.
var ErrInvalidTimezone = apperror.New(http.StatusBadRequest, "unknown timezone identifier")

// WallClock is a timezone-less local date-time at minute precision.
type WallClock struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// Wall extracts the wall-clock components of t in its own location.
func Wall(t time.Time) WallClock {
	return WallClock{
		Year:   t.Year(),
		Month:  t.Month(),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// LoadLocation resolves a named timezone, mapping unknown identifiers to
// ErrInvalidTimezone.
func LoadLocation(zone string) (*time.Location, error) {
	if zone == "" {
		return nil, ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}
	return loc, nil
}

// ToUTC converts a wall-clock time in the named zone to a UTC instant using
// the zone's rule table at that instant.
//
// DST transitions are resolved deterministically:
//   - a wall time that occurs twice (clocks fell back) maps to the earlier
//     UTC instant;
//   - a wall time that never occurs (clocks sprang forward) maps to the first
//     valid instant after the gap, i.e. the transition boundary.
func ToUTC(w WallClock, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}

	t := time.Date(w.Year, w.Month, w.Day, w.Hour, w.Minute, 0, 0, loc)

	// A mismatch between the requested and resolved wall clock means the
	// requested time fell into a spring-forward gap and time.Date normalized
	// it past the transition. The first valid instant is the zone start.
	if !sameWall(t, w) {
		start, _ := t.ZoneBounds()
		return start.UTC(), nil
	}

	// If the wall time is ambiguous, the other candidate sits one offset
	// change earlier. Take it when it resolves to the same wall clock.
	start, _ := t.ZoneBounds()
	if !start.IsZero() {
		_, prevOff := start.Add(-time.Second).Zone()
		_, curOff := t.Zone()
		if prevOff > curOff {
			earlier := t.Add(time.Duration(curOff-prevOff) * time.Second)
			if sameWall(earlier.In(loc), w) && earlier.Before(t) {
				return earlier.UTC(), nil
			}
		}
	}

	return t.UTC(), nil
}

// ToLocal converts a UTC instant to wall-clock time in the named zone.
func ToLocal(utc time.Time, zone string) (time.Time, error) {
	loc, err := LoadLocation(zone)
	if err != nil {
		return time.Time{}, err
	}
	return utc.In(loc), nil
}

// ParseClock parses a "15:04" time-of-day string.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, apperror.Wrap(err, http.StatusBadRequest, "invalid time of day, expected HH:MM")
	}
	return t.Hour(), t.Minute(), nil
}

func sameWall(t time.Time, w WallClock) bool {
	return t.Year() == w.Year &&
		t.Month() == w.Month &&
		t.Day() == w.Day &&
		t.Hour() == w.Hour &&
		t.Minute() == w.Minute
}
