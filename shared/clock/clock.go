// Package clock models a wall-clock time of day with minute precision.
//
// A Clock is stored as minutes since midnight, so intervals on the same day
// compare with plain integer arithmetic. It reads and writes the "HH:MM"
// 24-hour form on the wire and in PostgreSQL `time` columns.
package clock

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
	layout         = "15:04"
	layoutSeconds  = "15:04:05"
)

var ErrInvalid = errors.New("invalid time of day, expected HH:MM")

type Clock int

func New(hour, minute int) Clock {
	return Clock(hour*minutesPerHour + minute)
}

// Parse accepts "HH:MM" and the "HH:MM:SS" form PostgreSQL returns for time columns.
func Parse(value string) (Clock, error) {
	value = strings.TrimSpace(value)

	parsed, err := time.Parse(layout, value)
	if err != nil {
		parsed, err = time.Parse(layoutSeconds, value)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalid, value)
		}
	}

	return New(parsed.Hour(), parsed.Minute()), nil
}

func MustParse(value string) Clock {
	c, err := Parse(value)
	if err != nil {
		panic(err)
	}

	return c
}

func (c Clock) Hour() int {
	return int(c) / minutesPerHour
}

func (c Clock) Minute() int {
	return int(c) % minutesPerHour
}

func (c Clock) Valid() bool {
	return c >= 0 && c < minutesPerDay
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// Value implements driver.Valuer.
func (c Clock) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implements sql.Scanner.
func (c *Clock) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = New(v.Hour(), v.Minute())

		return nil
	case []byte:
		return c.UnmarshalText(v)
	case string:
		return c.UnmarshalText([]byte(v))
	case nil:
		return errors.New("cannot scan NULL into clock.Clock")
	default:
		return fmt.Errorf("cannot scan %T into clock.Clock", src)
	}
}

// Interval is a half-open range [Start, End) within one day.
type Interval struct {
	Start Clock
	End   Clock
}

func (i Interval) Valid() bool {
	return i.Start.Valid() && i.End.Valid() && i.Start < i.End
}

// Overlaps reports whether the two half-open intervals share at least one minute.
// Intervals that only touch at a boundary do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Covers reports whether the instant c falls inside the interval.
func (i Interval) Covers(c Clock) bool {
	return i.Start <= c && i.End > c
}
