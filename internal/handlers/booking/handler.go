package booking

import (
	"net/http"
	"reserva/infras/otel"
	"reserva/internal/domains/booking/model/dto"
	"reserva/internal/domains/booking/service"
	"reserva/shared/constant"
	"reserva/shared/validator"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const (
	msgBookingCreated      = "Reserva almacenada exitosamente"
	msgBookingCreateFailed = "Hubo un error al realizar la reserva."
	msgBookingsFound       = "Reservas encontradas"
	msgBookingsEmpty       = "No se encontraron reservas para la fecha y el salón seleccionados."
	msgQueryFailed         = "Hubo un error al consultar la base de datos."
	msgBookingCancelled    = "Reserva cancelada correctamente."
	msgCancelFailed        = "Hubo un error al cancelar la reserva."
	msgAvailabilityFound   = "Disponibilidad del salón"
	msgDiagnosticsFailed   = "Error al realizar diagnóstico"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/reservar", handler.CreateBooking)
	router.Get("/reservas", handler.GetBookings)
	router.Delete("/reservas/{id}", handler.CancelBookingByID)
	router.Delete("/cancelarReserva", handler.CancelBooking)
	router.Get("/consulta", handler.GetCalendar)
	router.Get("/disponibilidad", handler.GetAvailability)
	router.Get("/diagnostico", handler.GetDiagnostics)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a room for a time range of one day. Overlapping bookings are rejected.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} dto.CreateBookingResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservar [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithErrorMessage(writer, err, msgBookingCreateFailed)

		return
	}

	scope.AddEvent("Booking created " + booking.ID)

	response.WithJSON(writer, http.StatusCreated, dto.CreateBookingResponse{Message: msgBookingCreated, Booking: booking})
}

// GetBookings lists bookings matching the query filters.
// @Summary Query bookings
// @Description Every filter is optional. Without salon the result spans every room.
// @Tags Booking
// @Produce json
// @Param salon query string false "Room name or alias"
// @Param fecha query string false "Exact date (YYYY-MM-DD)"
// @Param nombre query string false "Requester name, case-insensitive substring"
// @Param fecha_desde query string false "First date, inclusive (YYYY-MM-DD)"
// @Param fecha_hasta query string false "Last date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.SchedulesResponse[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservas [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	filter := dto.BookingFilter{}
	filter.FromRequest(request)

	bookings, err := handler.service.QueryByFilters(ctx, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to query bookings")

		response.WithErrorMessage(writer, err, msgQueryFailed)

		return
	}

	res := dto.SchedulesResponse[dto.BookingResponse]{
		Message:   msgBookingsFound,
		Room:      filter.Room,
		Date:      filter.Date,
		Schedules: bookings,
	}

	if len(bookings) == 0 {
		res.Message = msgBookingsEmpty
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels the booking identified by its values.
// @Summary Cancel a booking by value
// @Description Cancels the single booking matching every parameter. Several matches are refused.
// @Tags Booking
// @Produce json
// @Param nombre query string true "Requester name"
// @Param salon query string true "Room name or alias"
// @Param fecha query string true "Date (YYYY-MM-DD)"
// @Param hora_inicio query string true "Start time (HH:MM)"
// @Param hora_fin query string true "End time (HH:MM)"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /cancelarReserva [delete]
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	req := dto.CancelBookingRequest{}
	req.FromRequest(request)

	if err := handler.service.Cancel(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithErrorMessage(writer, err, msgCancelFailed)

		return
	}

	response.WithMessage(writer, http.StatusOK, msgBookingCancelled)
}

// CancelBookingByID cancels a booking by its identifier.
// @Summary Cancel a booking by id
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /reservas/{id} [delete]
func (handler *Handler) CancelBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.CancelByID(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to cancel booking")

		response.WithErrorMessage(writer, err, msgCancelFailed)

		return
	}

	response.WithMessage(writer, http.StatusOK, msgBookingCancelled)
}

// GetCalendar lists every booking for the calendar view.
// @Summary Calendar listing
// @Tags Booking
// @Produce json
// @Param salon query string false "Room name or alias"
// @Success 200 {object} dto.SchedulesResponse[dto.CalendarEntry]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /consulta [get]
func (handler *Handler) GetCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	room := request.URL.Query().Get(constant.RequestParamRoom)

	entries, err := handler.service.ListForCalendar(ctx, room)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list calendar")

		response.WithErrorMessage(writer, err, msgQueryFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.SchedulesResponse[dto.CalendarEntry]{
		Message:   msgBookingsFound,
		Room:      room,
		Schedules: entries,
	})
}

// GetAvailability returns the hourly slots of a room on a date.
// @Summary Room availability
// @Description Hourly slots within the service window. fecha defaults to today.
// @Tags Booking
// @Produce json
// @Param salon query string true "Room name or alias"
// @Param fecha query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.SchedulesResponse[dto.SlotResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /disponibilidad [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	req := dto.AvailabilityRequest{}
	req.FromRequest(request)

	slots, err := handler.service.Availability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to derive availability")

		response.WithErrorMessage(writer, err, msgQueryFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.SchedulesResponse[dto.SlotResponse]{
		Message:   msgAvailabilityFound,
		Room:      req.Room,
		Date:      req.Date,
		Schedules: slots,
	})
}

// GetDiagnostics reports which booking tables exist.
// @Summary Table diagnostics
// @Tags Booking
// @Produce json
// @Success 200 {object} dto.DiagnosticsResponse
// @Failure 500 {object} response.Error
// @Router /diagnostico [get]
func (handler *Handler) GetDiagnostics(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDiagnostics")
	defer scope.End()

	res, err := handler.service.Diagnose(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to diagnose tables")

		response.WithErrorMessage(writer, err, msgDiagnosticsFailed)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
