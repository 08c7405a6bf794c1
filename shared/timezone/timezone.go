// Package timezone pins every wall-clock reading of the service to the office
// timezone (APP_TIMEZONE, IANA name). Booking days and hours are local to the
// building, so "today" must not follow the host clock.
package timezone

import (
	"reserva/config"
	"reserva/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	location *time.Location
	loadOnce sync.Once
)

// Load resolves name into a location. An empty or unknown name yields UTC.
func Load(name string) *time.Location {
	if name == constant.Empty {
		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown timezone, falling back to UTC")

		return time.UTC
	}

	return loc
}

// Location returns the office timezone, loading it from config on first use.
func Location() *time.Location {
	loadOnce.Do(func() {
		name := config.Get().App.Timezone
		location = Load(name)

		log.Info().Str("timezone", location.String()).Msg("office timezone initialized")
	})

	return location
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders t in the office timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// Day returns the calendar day of t in the office timezone as YYYY-MM-DD.
func Day(t time.Time) string {
	return Format(t, constant.DayFormat)
}

func Today() string {
	return Day(time.Now())
}
