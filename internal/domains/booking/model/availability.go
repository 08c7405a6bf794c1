package model

import (
	"reserva/shared/clock"
)

type Slot struct {
	Hour      clock.Clock
	Available bool
	BookedBy  string
}

// ServiceWindow is the range of whole hours offered for booking. Both ends are
// listed as slots.
type ServiceWindow struct {
	Open  clock.Clock
	Close clock.Clock
}

var DefaultServiceWindow = ServiceWindow{Open: clock.New(6, 0), Close: clock.New(19, 0)}

func NewServiceWindow(openHour, closeHour int) ServiceWindow {
	window := ServiceWindow{Open: clock.New(openHour, 0), Close: clock.New(closeHour, 0)}
	if !window.Open.Valid() || !window.Close.Valid() || window.Open > window.Close {
		return DefaultServiceWindow
	}

	return window
}

func (w ServiceWindow) Hours() []clock.Clock {
	hours := []clock.Clock{}
	for hour := w.Open; hour <= w.Close; hour += clock.New(1, 0) {
		hours = append(hours, hour)
	}

	return hours
}

// Derive marks each hourly slot taken when a booking of that date and room
// covers it. Bookings for other days or rooms are ignored, so the caller may
// pass a wider set.
func (w ServiceWindow) Derive(date, room string, bookings []Booking) []Slot {
	hours := w.Hours()
	slots := make([]Slot, len(hours))

	for i, hour := range hours {
		slots[i] = Slot{Hour: hour, Available: true}

		for _, booking := range bookings {
			if booking.Day() != date || (room != "" && booking.Room != room) {
				continue
			}

			if booking.Interval().Covers(hour) {
				slots[i].Available = false
				slots[i].BookedBy = booking.RequesterName

				break
			}
		}
	}

	return slots
}

// DeriveAvailability uses the 06:00 to 19:00 window.
func DeriveAvailability(date, room string, bookings []Booking) []Slot {
	return DefaultServiceWindow.Derive(date, room, bookings)
}
