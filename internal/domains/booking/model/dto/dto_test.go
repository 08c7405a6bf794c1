package dto_test

import (
	"encoding/json"
	"net/http/httptest"
	"reserva/internal/domains/booking/model"
	"reserva/internal/domains/booking/model/dto"
	roomModel "reserva/internal/domains/room/model"
	"reserva/shared/clock"
	"reserva/shared/failure"
	"reserva/shared/validator"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RequesterName: "Ana María",
		Area:          "Operaciones",
		Reason:        "Comité semanal",
		Date:          "2024-06-01",
		StartTime:     "09:00",
		EndTime:       "10:00",
		Room:          "Meeting Room",
	}
}

func TestCreateBookingRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*dto.CreateBookingRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*dto.CreateBookingRequest) {}},
		{name: "missing name", mutate: func(r *dto.CreateBookingRequest) { r.RequesterName = "" }, wantErr: "Todos los campos son requeridos: falta nombre"},
		{name: "name with digits", mutate: func(r *dto.CreateBookingRequest) { r.RequesterName = "R2D2" }, wantErr: "nombre solo puede contener letras y espacios"},
		{name: "unknown area", mutate: func(r *dto.CreateBookingRequest) { r.Area = "Sistemas" }, wantErr: "area no es un área válida"},
		{name: "reason too long", mutate: func(r *dto.CreateBookingRequest) { r.Reason = string(make([]byte, 61)) }, wantErr: "motivo admite como máximo 60 caracteres"},
		{name: "bad date", mutate: func(r *dto.CreateBookingRequest) { r.Date = "01-06-2024" }, wantErr: "fecha debe tener el formato YYYY-MM-DD"},
		{name: "bad start time", mutate: func(r *dto.CreateBookingRequest) { r.StartTime = "9" }, wantErr: "hora_inicio debe tener el formato HH:MM"},
		{name: "unknown room", mutate: func(r *dto.CreateBookingRequest) { r.Room = "Terraza" }, wantErr: "El salón proporcionado no es válido."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantErr)
			assert.Equal(t, 400, failure.GetCode(err))
		})
	}
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := validCreateRequest()
	req.RequesterName = "  Ana María "

	interval, err := req.Interval()
	assert.NoError(t, err)
	assert.Equal(t, clock.Interval{Start: clock.New(9, 0), End: clock.New(10, 0)}, interval)

	booking, err := req.ToModel("guest", roomModel.RoomMeetingRoom, interval)

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "Ana María", booking.RequesterName)
	assert.Equal(t, "Sala de Juntas", booking.Room)
	assert.Equal(t, "2024-06-01", booking.Day())
	assert.Equal(t, model.StatusBooked, booking.Status)
	assert.Equal(t, "guest", booking.CreatedBy)
	assert.Equal(t, "guest", booking.ModifiedBy)
	assert.False(t, booking.CreatedAt.IsZero())

	req.Date = "not-a-date"
	_, err = req.ToModel("guest", roomModel.RoomMeetingRoom, interval)
	assert.Error(t, err)
}

func TestCreateBookingRequest_IntervalErrors(t *testing.T) {
	req := validCreateRequest()
	req.EndTime = "ten"

	_, err := req.Interval()
	assert.ErrorIs(t, err, clock.ErrInvalid)
}

func TestBookingFilter_FromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/reservas?salon=+Meeting+Room+&fecha=2024-06-01&nombre=ana&fecha_desde=2024-06-01&fecha_hasta=2024-06-30", nil)

	filter := dto.BookingFilter{}
	filter.FromRequest(r)

	assert.Equal(t, dto.BookingFilter{
		Room:          "Meeting Room",
		Date:          "2024-06-01",
		RequesterName: "ana",
		DateFrom:      "2024-06-01",
		DateTo:        "2024-06-30",
	}, filter)
	assert.NoError(t, validator.ValidateStruct(&filter))

	mod := filter.ToModel("Sala de Juntas")
	assert.Equal(t, "Sala de Juntas", mod.Room)
	assert.Equal(t, "ana", mod.NameContains)
	assert.Empty(t, mod.RequesterName)
}

func TestBookingFilter_EmptyIsValid(t *testing.T) {
	filter := dto.BookingFilter{}

	assert.NoError(t, validator.ValidateStruct(&filter))

	filter.Room = "Terraza"
	assert.EqualError(t, validator.ValidateStruct(&filter), "El salón proporcionado no es válido.")
}

func TestCancelBookingRequest(t *testing.T) {
	r := httptest.NewRequest("DELETE", "/cancelarReserva?nombre=Ana&salon=auditorio&fecha=2024-06-01&hora_inicio=09:00&hora_fin=10:00", nil)

	req := dto.CancelBookingRequest{}
	req.FromRequest(r)

	assert.NoError(t, validator.ValidateStruct(&req))

	filter, err := req.ToModel("Auditorio Principal")
	assert.NoError(t, err)
	assert.Equal(t, "Ana", filter.RequesterName)
	assert.Equal(t, "Auditorio Principal", filter.Room)
	assert.Equal(t, clock.New(9, 0), *filter.Start)
	assert.Equal(t, clock.New(10, 0), *filter.End)

	missing := dto.CancelBookingRequest{RequesterName: "Ana"}
	assert.Error(t, validator.ValidateStruct(&missing))
}

func TestAvailabilityRequest_DefaultsDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/disponibilidad?salon=auditorio", nil)

	req := dto.AvailabilityRequest{}
	req.FromRequest(r)

	_, err := time.Parse("2006-01-02", req.Date)
	assert.NoError(t, err)
	assert.NoError(t, validator.ValidateStruct(&req))
}

func TestBookingResponse_JSON(t *testing.T) {
	day, _ := time.Parse("2006-01-02", "2024-06-01")
	booking := model.Booking{
		ID:            "id-1",
		RequesterName: "Ana",
		Area:          "Comercial",
		Reason:        "Demo",
		Room:          "Sala de Reserva",
		BookingDate:   day,
		StartTime:     clock.New(9, 0),
		EndTime:       clock.New(10, 30),
		Status:        model.StatusBooked,
	}

	res := dto.FromModels([]model.Booking{booking})
	out, err := json.Marshal(res[0])
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "Ana", decoded["nombre"])
	assert.Equal(t, "Demo", decoded["motivo"])
	assert.Equal(t, "Sala de Reserva", decoded["salon"])
	assert.Equal(t, "2024-06-01", decoded["fecha"])
	assert.Equal(t, "09:00", decoded["hora_inicio"])
	assert.Equal(t, "10:30", decoded["hora_fin"])
	assert.Equal(t, "reservado", decoded["estado"])

	entry := dto.CalendarEntry{}
	entry.FromModel(booking)
	out, err = json.Marshal(entry)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"salon":"Sala de Reserva","nombre":"Ana","fecha":"2024-06-01","hora_inicio":"09:00","hora_fin":"10:30","motivo":"Demo"}`, string(out))
}

func TestSlotsFromModels_JSON(t *testing.T) {
	slots := dto.SlotsFromModels([]model.Slot{
		{Hour: clock.New(8, 0), Available: false, BookedBy: "Ana"},
		{Hour: clock.New(9, 0), Available: true},
	})

	out, err := json.Marshal(slots)
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"hora":"08:00","disponible":false,"reservado_por":"Ana"},{"hora":"09:00","disponible":true}]`, string(out))
}

func TestNewBookingEvent(t *testing.T) {
	event := dto.NewBookingEvent(dto.EventBookingCreated, model.Booking{ID: "id-1", Room: "Sala de Juntas"})

	assert.Equal(t, "reserva.creada", event.Type)
	assert.Equal(t, "id-1", event.Booking.ID)
	assert.NotEmpty(t, event.OccurredAt)
}
