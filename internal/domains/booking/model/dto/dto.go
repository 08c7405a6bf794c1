package dto

import (
	"fmt"
	"net/http"
	"reserva/internal/domains/booking/model"
	roomModel "reserva/internal/domains/room/model"
	"reserva/shared/clock"
	"reserva/shared/constant"
	gDto "reserva/shared/dto"
	gModel "reserva/shared/model"
	"reserva/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	EventBookingCreated   = "reserva.creada"
	EventBookingCancelled = "reserva.cancelada"
)

type CreateBookingRequest struct {
	RequesterName string `json:"nombre"      validate:"required,max=30,nombre"`
	Area          string `json:"area"        validate:"required,area"`
	Reason        string `json:"motivo"      validate:"required,max=60"`
	Date          string `json:"fecha"       validate:"required,fecha"`
	StartTime     string `json:"hora_inicio" validate:"required,hhmm"`
	EndTime       string `json:"hora_fin"    validate:"required,hhmm"`
	Room          string `json:"salon"       validate:"required,salon"`
}

// Interval parses the requested times. Both fields are validated as HH:MM by
// the time this is called from the service.
func (c *CreateBookingRequest) Interval() (clock.Interval, error) {
	start, err := clock.Parse(c.StartTime)
	if err != nil {
		return clock.Interval{}, fmt.Errorf("hora_inicio: %w", err)
	}

	end, err := clock.Parse(c.EndTime)
	if err != nil {
		return clock.Interval{}, fmt.Errorf("hora_fin: %w", err)
	}

	return clock.Interval{Start: start, End: end}, nil
}

func (c *CreateBookingRequest) ToModel(user string, room roomModel.Room, interval clock.Interval) (model.Booking, error) {
	bookingDate, err := time.Parse(constant.DayFormat, c.Date)
	if err != nil {
		return model.Booking{}, fmt.Errorf("fecha: %w", err)
	}

	now := timezone.Now()

	return model.Booking{
		ID:            uuid.NewString(),
		RequesterName: strings.TrimSpace(c.RequesterName),
		Area:          c.Area,
		Reason:        strings.TrimSpace(c.Reason),
		Room:          room.Name(),
		BookingDate:   bookingDate,
		StartTime:     interval.Start,
		EndTime:       interval.End,
		Status:        model.StatusBooked,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

// BookingFilter is the query string of GET /reservas. Every field is optional;
// without salon the result spans every room.
type BookingFilter struct {
	Room          string `json:"salon"       query:"salon"       validate:"omitempty,salon"`
	Date          string `json:"fecha"       query:"fecha"       validate:"omitempty,fecha"`
	RequesterName string `json:"nombre"      query:"nombre"      validate:"omitempty,max=30"`
	DateFrom      string `json:"fecha_desde" query:"fecha_desde" validate:"omitempty,fecha"`
	DateTo        string `json:"fecha_hasta" query:"fecha_hasta" validate:"omitempty,fecha"`
}

func (f *BookingFilter) FromRequest(r *http.Request) {
	query := r.URL.Query()

	f.Room = strings.TrimSpace(query.Get(constant.RequestParamRoom))
	f.Date = strings.TrimSpace(query.Get(constant.RequestParamDate))
	f.RequesterName = strings.TrimSpace(query.Get(constant.RequestParamRequesterName))
	f.DateFrom = strings.TrimSpace(query.Get(constant.RequestParamDateFrom))
	f.DateTo = strings.TrimSpace(query.Get(constant.RequestParamDateTo))
}

// ToModel expects room to be the canonical name, or empty for every room.
func (f *BookingFilter) ToModel(room string) model.Filter {
	return model.Filter{
		Room:         room,
		NameContains: f.RequesterName,
		Date:         f.Date,
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
}

// CancelBookingRequest identifies a booking by value on DELETE /cancelarReserva.
type CancelBookingRequest struct {
	RequesterName string `json:"nombre"      query:"nombre"      validate:"required,max=30"`
	Room          string `json:"salon"       query:"salon"       validate:"required,salon"`
	Date          string `json:"fecha"       query:"fecha"       validate:"required,fecha"`
	StartTime     string `json:"hora_inicio" query:"hora_inicio" validate:"required,hhmm"`
	EndTime       string `json:"hora_fin"    query:"hora_fin"    validate:"required,hhmm"`
}

func (c *CancelBookingRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	c.RequesterName = strings.TrimSpace(query.Get(constant.RequestParamRequesterName))
	c.Room = strings.TrimSpace(query.Get(constant.RequestParamRoom))
	c.Date = strings.TrimSpace(query.Get(constant.RequestParamDate))
	c.StartTime = strings.TrimSpace(query.Get(constant.RequestParamStartTime))
	c.EndTime = strings.TrimSpace(query.Get(constant.RequestParamEndTime))
}

func (c *CancelBookingRequest) ToModel(room string) (model.Filter, error) {
	start, err := clock.Parse(c.StartTime)
	if err != nil {
		return model.Filter{}, fmt.Errorf("hora_inicio: %w", err)
	}

	end, err := clock.Parse(c.EndTime)
	if err != nil {
		return model.Filter{}, fmt.Errorf("hora_fin: %w", err)
	}

	return model.Filter{
		Room:          room,
		RequesterName: c.RequesterName,
		Date:          c.Date,
		Start:         &start,
		End:           &end,
	}, nil
}

type AvailabilityRequest struct {
	Room string `json:"salon" query:"salon" validate:"required,salon"`
	Date string `json:"fecha" query:"fecha" validate:"required,fecha"`
}

// FromRequest defaults fecha to today in the application timezone.
func (a *AvailabilityRequest) FromRequest(r *http.Request) {
	query := r.URL.Query()

	a.Room = strings.TrimSpace(query.Get(constant.RequestParamRoom))
	a.Date = strings.TrimSpace(query.Get(constant.RequestParamDate))

	if a.Date == constant.Empty {
		a.Date = timezone.Today()
	}
}

type BookingResponse struct {
	ID            string      `json:"id"`
	RequesterName string      `json:"nombre"`
	Area          string      `json:"area"`
	Reason        string      `json:"motivo"`
	Room          string      `json:"salon"`
	Date          string      `json:"fecha"`
	StartTime     clock.Clock `json:"hora_inicio"`
	EndTime       clock.Clock `json:"hora_fin"`
	Status        string      `json:"estado"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RequesterName = model.RequesterName
	r.Area = model.Area
	r.Reason = model.Reason
	r.Room = model.Room
	r.Date = model.Day()
	r.StartTime = model.StartTime
	r.EndTime = model.EndTime
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type CalendarEntry struct {
	Room          string      `json:"salon"`
	RequesterName string      `json:"nombre"`
	Date          string      `json:"fecha"`
	StartTime     clock.Clock `json:"hora_inicio"`
	EndTime       clock.Clock `json:"hora_fin"`
	Reason        string      `json:"motivo"`
}

func (c *CalendarEntry) FromModel(model model.Booking) {
	c.Room = model.Room
	c.RequesterName = model.RequesterName
	c.Date = model.Day()
	c.StartTime = model.StartTime
	c.EndTime = model.EndTime
	c.Reason = model.Reason
}

type SlotResponse struct {
	Hour      clock.Clock `json:"hora"`
	Available bool        `json:"disponible"`
	BookedBy  string      `json:"reservado_por,omitempty"`
}

func SlotsFromModels(slots []model.Slot) []SlotResponse {
	res := make([]SlotResponse, len(slots))
	for i, slot := range slots {
		res[i] = SlotResponse{Hour: slot.Hour, Available: slot.Available, BookedBy: slot.BookedBy}
	}

	return res
}

type CreateBookingResponse struct {
	Message string          `json:"mensaje"`
	Booking BookingResponse `json:"reserva"`
}

// SchedulesResponse is the envelope shared by every listing endpoint.
type SchedulesResponse[T any] struct {
	Message   string `json:"mensaje"`
	Room      string `json:"salon,omitempty"`
	Date      string `json:"fecha,omitempty"`
	Schedules []T    `json:"horarios"`
}

const (
	DiagnosticsStatusOK      = "OK"
	DiagnosticsStatusMissing = "FALTAN_TABLAS"
)

type DiagnosticsResponse struct {
	Message  string         `json:"mensaje"`
	Existing []string       `json:"tablas_existentes"`
	Expected []string       `json:"tablas_esperadas"`
	Missing  []string       `json:"tablas_faltantes"`
	Rows     map[string]int `json:"filas,omitempty"`
	Status   string         `json:"estado"`
}

// BookingEvent is published on the bookings topic after a write commits.
type BookingEvent struct {
	Type       string          `json:"tipo"`
	Booking    BookingResponse `json:"reserva"`
	OccurredAt string          `json:"ocurrido_en"`
}

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	event := BookingEvent{
		Type:       eventType,
		OccurredAt: timezone.Format(timezone.Now(), constant.DateFormat),
	}
	event.Booking.FromModel(booking)

	return event
}
