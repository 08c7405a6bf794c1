package model_test

import (
	"reserva/internal/domains/booking/model"
	"reserva/shared/clock"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func booking(id, room, date, start, end, name string) model.Booking {
	day, _ := time.Parse("2006-01-02", date)

	return model.Booking{
		ID:            id,
		RequesterName: name,
		Room:          room,
		BookingDate:   day,
		StartTime:     clock.MustParse(start),
		EndTime:       clock.MustParse(end),
		Status:        model.StatusBooked,
	}
}

func clockPtr(value string) *clock.Clock {
	c := clock.MustParse(value)

	return &c
}

func TestIsValidArea(t *testing.T) {
	for _, area := range model.Areas() {
		assert.True(t, model.IsValidArea(string(area)), area)
	}

	assert.False(t, model.IsValidArea("gestión humana"))
	assert.False(t, model.IsValidArea("Sistemas"))
}

func TestFilter_Matches(t *testing.T) {
	b := booking("1", "Sala de Juntas", "2024-06-01", "09:00", "10:00", "Ana María")

	tests := []struct {
		name     string
		filter   model.Filter
		expected bool
	}{
		{name: "empty filter", filter: model.Filter{}, expected: true},
		{name: "id", filter: model.Filter{ID: "1"}, expected: true},
		{name: "other id", filter: model.Filter{ID: "2"}, expected: false},
		{name: "room", filter: model.Filter{Room: "Sala de Juntas"}, expected: true},
		{name: "other room", filter: model.Filter{Room: "Auditorio Principal"}, expected: false},
		{name: "exact name", filter: model.Filter{RequesterName: "Ana María"}, expected: true},
		{name: "exact name is case sensitive", filter: model.Filter{RequesterName: "ana maría"}, expected: false},
		{name: "name contains ignores case", filter: model.Filter{NameContains: "maría"}, expected: true},
		{name: "percent is a literal", filter: model.Filter{NameContains: "%"}, expected: false},
		{name: "underscore is a literal", filter: model.Filter{NameContains: "An_"}, expected: false},
		{name: "date", filter: model.Filter{Date: "2024-06-01"}, expected: true},
		{name: "other date", filter: model.Filter{Date: "2024-06-02"}, expected: false},
		{name: "inclusive lower bound", filter: model.Filter{DateFrom: "2024-06-01"}, expected: true},
		{name: "inclusive upper bound", filter: model.Filter{DateTo: "2024-06-01"}, expected: true},
		{name: "outside range", filter: model.Filter{DateFrom: "2024-06-02", DateTo: "2024-06-30"}, expected: false},
		{name: "exact times", filter: model.Filter{Start: clockPtr("09:00"), End: clockPtr("10:00")}, expected: true},
		{name: "other end time", filter: model.Filter{Start: clockPtr("09:00"), End: clockPtr("09:30")}, expected: false},
		{name: "overlapping interval", filter: model.Filter{Overlapping: &clock.Interval{Start: clock.MustParse("09:30"), End: clock.MustParse("10:30")}}, expected: true},
		{name: "abutting interval", filter: model.Filter{Overlapping: &clock.Interval{Start: clock.MustParse("10:00"), End: clock.MustParse("11:00")}}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.filter.Matches(b))
		})
	}
}

func TestFilter_FilterGroup(t *testing.T) {
	filter := model.Filter{
		Room:        "Sala de Juntas",
		Date:        "2024-06-01",
		Overlapping: &clock.Interval{Start: clock.MustParse("09:00"), End: clock.MustParse("10:00")},
	}

	group := filter.FilterGroup("sala_juntas_reservas")
	where, args := group.GetWhereClause()

	assert.Equal(t, "(sala_juntas_reservas.room = :room AND sala_juntas_reservas.booking_date = :booking_date AND "+
		"sala_juntas_reservas.start_time < :overlap_end AND sala_juntas_reservas.end_time > :overlap_start)", where)
	assert.Equal(t, "Sala de Juntas", args["room"])
	assert.Equal(t, clock.MustParse("10:00"), args["overlap_end"])
	assert.Equal(t, clock.MustParse("09:00"), args["overlap_start"])

	empty := model.Filter{}.FilterGroup("auditorio_reservas")
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestFilter_FilterGroupDateRange(t *testing.T) {
	group := model.Filter{DateFrom: "2024-06-01", DateTo: "2024-06-30", NameContains: "ana"}.FilterGroup("auditorio_reservas")
	where, args := group.GetWhereClause()

	assert.Contains(t, where, "auditorio_reservas.booking_date >= :date_from")
	assert.Contains(t, where, "auditorio_reservas.booking_date <= :date_to")
	assert.Equal(t, "%ana%", args["name_contains"])
}

func TestLess(t *testing.T) {
	bookings := []model.Booking{
		booking("c", "Sala de Juntas", "2024-06-02", "08:00", "09:00", "C"),
		booking("b", "Sala de Juntas", "2024-06-01", "10:00", "11:00", "B"),
		booking("a2", "Sala de Juntas", "2024-06-01", "08:00", "09:00", "A"),
		booking("a1", "Auditorio Principal", "2024-06-01", "08:00", "09:00", "A"),
	}

	slices.SortFunc(bookings, model.Less)

	ids := []string{}
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids)
}

func TestDeriveAvailability(t *testing.T) {
	bookings := []model.Booking{
		booking("1", "Sala de Juntas", "2024-06-01", "08:00", "10:00", "Ana"),
		booking("2", "Sala de Juntas", "2024-06-02", "06:00", "19:00", "Otro día"),
		booking("3", "Auditorio Principal", "2024-06-01", "06:00", "19:00", "Otro salón"),
	}

	slots := model.DeriveAvailability("2024-06-01", "Sala de Juntas", bookings)

	assert.Len(t, slots, 14)
	assert.Equal(t, clock.New(6, 0), slots[0].Hour)
	assert.Equal(t, clock.New(19, 0), slots[len(slots)-1].Hour)

	for _, slot := range slots {
		switch slot.Hour {
		case clock.New(8, 0), clock.New(9, 0):
			assert.False(t, slot.Available, slot.Hour.String())
			assert.Equal(t, "Ana", slot.BookedBy)
		default:
			assert.True(t, slot.Available, slot.Hour.String())
			assert.Empty(t, slot.BookedBy)
		}
	}
}

func TestDeriveAvailabilityPartialHours(t *testing.T) {
	bookings := []model.Booking{
		booking("1", "Sala de Reserva", "2024-06-01", "09:30", "11:00", "Luis"),
	}

	slots := model.DeriveAvailability("2024-06-01", "Sala de Reserva", bookings)

	byHour := map[string]model.Slot{}
	for _, slot := range slots {
		byHour[slot.Hour.String()] = slot
	}

	assert.True(t, byHour["09:00"].Available)
	assert.False(t, byHour["10:00"].Available)
	assert.True(t, byHour["11:00"].Available)
}

func TestNewServiceWindow(t *testing.T) {
	window := model.NewServiceWindow(8, 12)
	assert.Len(t, window.Hours(), 5)

	assert.Equal(t, model.DefaultServiceWindow, model.NewServiceWindow(20, 6))
	assert.Equal(t, model.DefaultServiceWindow, model.NewServiceWindow(-1, 30))
}
