package model

import (
	"errors"
	"reserva/shared/clock"
	"reserva/shared/constant"
	"reserva/shared/model"
	"reserva/shared/validator"
	"slices"
	"time"

	val "github.com/go-playground/validator/v10"
)

const (
	EntityName = "booking"

	FieldID            = "id"
	FieldRequesterName = "requester_name"
	FieldArea          = "area"
	FieldReason        = "reason"
	FieldRoom          = "room"
	FieldBookingDate   = "booking_date"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldStatus        = "status"

	StatusBooked = "reservado"
)

// ErrOverlap is returned by storage when an insert would overlap an existing
// booking of the same room and day.
var ErrOverlap = errors.New("booking overlaps an existing booking")

type Area string

const (
	AreaHumanResources Area = "Gestión humana"
	AreaOperations     Area = "Operaciones"
	AreaAccounting     Area = "Contabilidad"
	AreaCommercial     Area = "Comercial"
)

var areas = []Area{AreaHumanResources, AreaOperations, AreaAccounting, AreaCommercial}

func init() {
	validator.Register("area", func(fl val.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)

		return ok && IsValidArea(value)
	})
}

func Areas() []Area {
	return slices.Clone(areas)
}

func IsValidArea(value string) bool {
	return slices.Contains(areas, Area(value))
}

type Booking struct {
	ID            string      `db:"id"`
	RequesterName string      `db:"requester_name"`
	Area          string      `db:"area"`
	Reason        string      `db:"reason"`
	Room          string      `db:"room"`
	BookingDate   time.Time   `db:"booking_date"`
	StartTime     clock.Clock `db:"start_time"`
	EndTime       clock.Clock `db:"end_time"`
	Status        string      `db:"status"`
	model.Metadata
}

func (b Booking) Interval() clock.Interval {
	return clock.Interval{Start: b.StartTime, End: b.EndTime}
}

// Day is the booking date as YYYY-MM-DD. The date column carries no zone, so
// the value is formatted as stored.
func (b Booking) Day() string {
	return b.BookingDate.Format(constant.DayFormat)
}

// Less orders bookings by day, start time and room.
func Less(a, b Booking) int {
	if a.Day() != b.Day() {
		if a.Day() < b.Day() {
			return -1
		}

		return 1
	}

	if a.StartTime != b.StartTime {
		return int(a.StartTime - b.StartTime)
	}

	switch {
	case a.Room < b.Room:
		return -1
	case a.Room > b.Room:
		return 1
	}

	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}

	return 0
}
