package model

import (
	"reserva/shared/clock"
	gDto "reserva/shared/dto"
	"strings"
)

// Filter selects bookings inside one partition. Zero fields do not constrain.
// Every field is an AND term.
type Filter struct {
	ID            string
	Room          string
	RequesterName string
	NameContains  string
	Date          string
	DateFrom      string
	DateTo        string
	Start         *clock.Clock
	End           *clock.Clock
	Overlapping   *clock.Interval
}

// Matches applies the filter in memory with the same semantics as FilterGroup.
func (f Filter) Matches(b Booking) bool {
	day := b.Day()

	switch {
	case f.ID != "" && b.ID != f.ID:
		return false
	case f.Room != "" && b.Room != f.Room:
		return false
	case f.RequesterName != "" && b.RequesterName != f.RequesterName:
		return false
	case f.NameContains != "" && !strings.Contains(strings.ToLower(b.RequesterName), strings.ToLower(f.NameContains)):
		return false
	case f.Date != "" && day != f.Date:
		return false
	case f.DateFrom != "" && day < f.DateFrom:
		return false
	case f.DateTo != "" && day > f.DateTo:
		return false
	case f.Start != nil && b.StartTime != *f.Start:
		return false
	case f.End != nil && b.EndTime != *f.End:
		return false
	case f.Overlapping != nil && !f.Overlapping.Overlaps(b.Interval()):
		return false
	}

	return true
}

// FilterGroup renders the filter for the sql repository.
func (f Filter) FilterGroup(table string) gDto.FilterGroup {
	group := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	add := func(argName, field, operator string, value any) {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  argName,
			Field:    field,
			Value:    value,
			Operator: operator,
			Table:    table,
		})
	}

	if f.ID != "" {
		add("", FieldID, gDto.FilterOperatorEq, f.ID)
	}

	if f.Room != "" {
		add("", FieldRoom, gDto.FilterOperatorEq, f.Room)
	}

	if f.RequesterName != "" {
		add("", FieldRequesterName, gDto.FilterOperatorEq, f.RequesterName)
	}

	if f.NameContains != "" {
		add("name_contains", FieldRequesterName, gDto.FilterOperatorLike, f.NameContains)
	}

	if f.Date != "" {
		add("", FieldBookingDate, gDto.FilterOperatorEq, f.Date)
	}

	if f.DateFrom != "" {
		add("date_from", FieldBookingDate, gDto.FilterOperatorGreaterEq, f.DateFrom)
	}

	if f.DateTo != "" {
		add("date_to", FieldBookingDate, gDto.FilterOperatorLessEq, f.DateTo)
	}

	if f.Start != nil {
		add("", FieldStartTime, gDto.FilterOperatorEq, *f.Start)
	}

	if f.End != nil {
		add("", FieldEndTime, gDto.FilterOperatorEq, *f.End)
	}

	if f.Overlapping != nil {
		add("overlap_end", FieldStartTime, gDto.FilterOperatorLess, f.Overlapping.End)
		add("overlap_start", FieldEndTime, gDto.FilterOperatorGreater, f.Overlapping.Start)
	}

	return group
}
