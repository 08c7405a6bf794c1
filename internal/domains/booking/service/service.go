package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"reserva/config"
	"reserva/infras/kafka"
	"reserva/infras/otel"
	"reserva/internal/domains/booking/model"
	"reserva/internal/domains/booking/model/dto"
	"reserva/internal/domains/booking/repository"
	roomModel "reserva/internal/domains/room/model"
	roomService "reserva/internal/domains/room/service"
	"reserva/shared"
	"reserva/shared/cache"
	"reserva/shared/clock"
	"reserva/shared/constant"
	"reserva/shared/failure"
	"reserva/shared/validator"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheQueryBooking        = "booking:query"
	cacheCalendarBooking     = "booking:calendar"
	cacheAvailabilityBooking = "booking:availability"

	eventTypeHeader = "tipo"
)

const (
	msgConflict          = "Ya existe una reserva en este horario. Intenta con otro horario."
	msgInvalidInterval   = "La hora de inicio debe ser anterior a la hora de fin."
	msgInvalidDateRange  = "fecha_desde no puede ser posterior a fecha_hasta"
	msgInvalidID         = "El identificador de la reserva no es válido."
	msgCancelNotFound    = "No se encontró una reserva con los datos proporcionados."
	msgCancelAmbiguous   = "Hay varias reservas con los datos proporcionados. Cancela la reserva por su identificador."
	msgCalendarNotFound  = "No se encontraron reservas para los parámetros especificados."
	msgDiagnosticsResult = "Diagnóstico de tablas completado"
)

type Booking interface {
	CheckConflict(ctx context.Context, date, room string, start, end clock.Clock) (bool, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	QueryByFilters(ctx context.Context, filter dto.BookingFilter) ([]dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest) error
	CancelByID(ctx context.Context, id string) error
	ListForCalendar(ctx context.Context, room string) ([]dto.CalendarEntry, error)
	Availability(ctx context.Context, req dto.AvailabilityRequest) ([]dto.SlotResponse, error)
	Diagnose(ctx context.Context) (dto.DiagnosticsResponse, error)
}

type serviceImpl struct {
	repo   repository.Booking
	rooms  roomService.Room
	cfg    *config.Config
	cache  cache.RedisCache
	events kafka.Client
	otel   otel.Otel
}

func New(repo repository.Booking, rooms roomService.Room, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:   repo,
		rooms:  rooms,
		cfg:    cfg,
		cache:  cache,
		events: events,
		otel:   otel,
	}
}

// CheckConflict reports whether [start, end) overlaps a stored booking of the
// room on date. Unknown room names route to the default partition but only
// match rows stored under that exact name, so they never see its bookings.
func (s *serviceImpl) CheckConflict(ctx context.Context, date, room string, start, end clock.Clock) (res bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckConflict")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	roomName := strings.TrimSpace(room)
	if canonical, ok := s.rooms.Canonical(room); ok {
		roomName = canonical.Name()
	}

	filter := model.Filter{
		Room:        roomName,
		Date:        date,
		Overlapping: &clock.Interval{Start: start, End: end},
	}

	res, err = s.repo.Exist(ctx, s.rooms.ResolvePartition(room), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflict")

		return false, fmt.Errorf("failed to check booking conflict: %w", err)
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	room, ok := s.rooms.Canonical(req.Room)
	if !ok {
		return res, failure.InvalidRoom
	}

	interval, err := req.Interval()
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !interval.Valid() {
		return res, failure.BadRequestFromString(msgInvalidInterval) // nolint:wrapcheck
	}

	conflict, err := s.CheckConflict(ctx, req.Date, room.Name(), interval.Start, interval.End)
	if err != nil {
		return res, err
	}

	if conflict {
		return res, failure.Conflict(msgConflict) // nolint:wrapcheck
	}

	booking, err := req.ToModel(shared.UserFromContext(ctx), room, interval)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	err = s.repo.Insert(ctx, room.Partition(), booking)
	if errors.Is(err, model.ErrOverlap) {
		log.Warn().Str("room", booking.Room).Str("date", booking.Day()).Msg("booking lost the race for its slot")

		return res, failure.Conflict(msgConflict) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, dto.EventBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

// QueryByFilters returns the bookings matching every supplied filter, across
// all partitions when no room is given, ordered by date, start and room.
func (s *serviceImpl) QueryByFilters(ctx context.Context, filter dto.BookingFilter) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QueryByFilters")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if filter.DateFrom != constant.Empty && filter.DateTo != constant.Empty && filter.DateFrom > filter.DateTo {
		return nil, failure.BadRequestFromString(msgInvalidDateRange) // nolint:wrapcheck
	}

	partitions, roomName, err := s.partitionsFor(filter.Room)
	if err != nil {
		return nil, err
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheQueryBooking, filter.ToModel(roomName))

	if s.fromCache(ctx, cacheKey, &res) {
		return res, nil
	}

	models, err := s.find(ctx, partitions, filter.ToModel(roomName))
	if err != nil {
		log.Error().Err(err).Msg("failed to query bookings")

		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	res = dto.FromModels(models)
	s.toCache(ctx, cacheKey, res)

	return res, nil
}

// Cancel deletes the single booking identified by value. More than one match
// is refused so a cancellation never removes someone else's booking.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err //nolint:wrapcheck
	}

	room, ok := s.rooms.Canonical(req.Room)
	if !ok {
		return failure.InvalidRoom
	}

	filter, err := req.ToModel(room.Name())
	if err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	matches, err := s.repo.Find(ctx, room.Partition(), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to find booking to cancel")

		return fmt.Errorf("failed to find booking to cancel: %w", err)
	}

	switch len(matches) {
	case 0:
		return failure.NotFound(msgCancelNotFound) // nolint:wrapcheck
	case 1:
	default:
		log.Warn().Int("matches", len(matches)).Str("room", room.Name()).Msg("refusing ambiguous cancellation")

		return failure.Conflict(msgCancelAmbiguous) // nolint:wrapcheck
	}

	return s.delete(ctx, room.Partition(), matches[0])
}

// CancelByID deletes the booking with id from whichever partition holds it.
func (s *serviceImpl) CancelByID(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if validator.ValidateVar(id, "required,uuid") != nil {
		return failure.BadRequestFromString(msgInvalidID) // nolint:wrapcheck
	}

	for _, partition := range s.rooms.Partitions() {
		matches, err := s.repo.Find(ctx, partition, model.Filter{ID: id})
		if err != nil {
			log.Error().Err(err).Str("partition", partition.String()).Msg("failed to find booking by id")

			return fmt.Errorf("failed to find booking by id: %w", err)
		}

		if len(matches) > 0 {
			return s.delete(ctx, partition, matches[0])
		}
	}

	return failure.NotFound(msgCancelNotFound) // nolint:wrapcheck
}

// ListForCalendar returns every booking, or those of one room when room is
// set. An empty result is reported as not found.
func (s *serviceImpl) ListForCalendar(ctx context.Context, room string) (res []dto.CalendarEntry, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForCalendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	partitions, roomName, err := s.partitionsFor(room)
	if err != nil {
		return nil, err
	}

	cacheKey := shared.BuildCacheKey(cacheCalendarBooking, roomName)

	if !s.fromCache(ctx, cacheKey, &res) {
		models, err := s.find(ctx, partitions, model.Filter{Room: roomName})
		if err != nil {
			log.Error().Err(err).Msg("failed to list bookings for calendar")

			return nil, fmt.Errorf("failed to list bookings for calendar: %w", err)
		}

		res = make([]dto.CalendarEntry, len(models))
		for i, mod := range models {
			res[i].FromModel(mod)
		}

		s.toCache(ctx, cacheKey, res)
	}

	if len(res) == 0 {
		return nil, failure.NotFound(msgCalendarNotFound) // nolint:wrapcheck
	}

	return res, nil
}

// Availability derives the hourly slots of one room and day.
func (s *serviceImpl) Availability(ctx context.Context, req dto.AvailabilityRequest) (res []dto.SlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return nil, err //nolint:wrapcheck
	}

	room, ok := s.rooms.Canonical(req.Room)
	if !ok {
		return nil, failure.InvalidRoom
	}

	cacheKey := shared.BuildCacheKey(cacheAvailabilityBooking, room.Partition().String(), req.Date)

	if s.fromCache(ctx, cacheKey, &res) {
		return res, nil
	}

	bookings, err := s.repo.Find(ctx, room.Partition(), model.Filter{Room: room.Name(), Date: req.Date})
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings for availability")

		return nil, fmt.Errorf("failed to load bookings for availability: %w", err)
	}

	window := model.NewServiceWindow(s.cfg.Booking.OpenHour, s.cfg.Booking.CloseHour)
	res = dto.SlotsFromModels(window.Derive(req.Date, room.Name(), bookings))

	s.toCache(ctx, cacheKey, res)

	return res, nil
}

// Diagnose reports which partition tables exist and how many rows each holds.
func (s *serviceImpl) Diagnose(ctx context.Context) (res dto.DiagnosticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Diagnose")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	existing, err := s.repo.Tables(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list partition tables")

		return res, fmt.Errorf("failed to list partition tables: %w", err)
	}

	res = dto.DiagnosticsResponse{
		Message:  msgDiagnosticsResult,
		Existing: existing,
		Expected: []string{},
		Missing:  []string{},
		Rows:     map[string]int{},
		Status:   dto.DiagnosticsStatusOK,
	}

	for _, partition := range s.rooms.Partitions() {
		res.Expected = append(res.Expected, partition.String())

		if !slices.Contains(existing, partition.String()) {
			res.Missing = append(res.Missing, partition.String())

			continue
		}

		count, err := s.repo.Count(ctx, partition)
		if err != nil {
			log.Error().Err(err).Str("partition", partition.String()).Msg("failed to count partition rows")

			return res, fmt.Errorf("failed to count partition rows: %w", err)
		}

		res.Rows[partition.String()] = count
	}

	if len(res.Missing) > 0 {
		res.Status = dto.DiagnosticsStatusMissing
	}

	return res, nil
}

// partitionsFor resolves an optional room name. Empty means every partition.
func (s *serviceImpl) partitionsFor(name string) ([]roomModel.Partition, string, error) {
	if name == constant.Empty {
		return s.rooms.Partitions(), constant.Empty, nil
	}

	room, ok := s.rooms.Canonical(name)
	if !ok {
		return nil, constant.Empty, failure.InvalidRoom
	}

	return []roomModel.Partition{room.Partition()}, room.Name(), nil
}

func (s *serviceImpl) find(ctx context.Context, partitions []roomModel.Partition, filter model.Filter) ([]model.Booking, error) {
	models := []model.Booking{}

	for _, partition := range partitions {
		found, err := s.repo.Find(ctx, partition, filter)
		if err != nil {
			return nil, fmt.Errorf("partition %s: %w", partition, err)
		}

		models = append(models, found...)
	}

	slices.SortStableFunc(models, model.Less)

	return models, nil
}

func (s *serviceImpl) delete(ctx context.Context, partition roomModel.Partition, booking model.Booking) error {
	deleted, err := s.repo.Delete(ctx, partition, model.Filter{ID: booking.ID})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	if deleted == 0 {
		return failure.NotFound(msgCancelNotFound) // nolint:wrapcheck
	}

	s.invalidate(ctx)
	s.publish(ctx, dto.EventBookingCancelled, booking)

	return nil
}

func (s *serviceImpl) fromCache(ctx context.Context, key string, dest any) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		log.Debug().Str("cacheKey", key).Msg("cache hit for bookings")

		return true
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("cacheKey", key).Msg("failed to read bookings from cache")
	}

	return false
}

func (s *serviceImpl) toCache(ctx context.Context, key string, value any) {
	if err := s.cache.Save(ctx, key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save bookings to cache")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	c := context.WithoutCancel(ctx)

	shared.InvalidateCaches(c, s.cache, cacheQueryBooking)
	shared.InvalidateCaches(c, s.cache, cacheCalendarBooking)
	shared.InvalidateCaches(c, s.cache, cacheAvailabilityBooking)
}

// publish is best effort, the booking is already committed.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	message := kafka.Message{
		Key:     booking.ID,
		Value:   dto.NewBookingEvent(eventType, booking),
		Headers: map[string]string{eventTypeHeader: eventType},
	}

	if err := s.events.SendMessages(context.WithoutCancel(ctx), s.cfg.Kafka.Topic, message); err != nil {
		log.Error().Err(err).Str("event", eventType).Str("id", booking.ID).Msg("failed to publish booking event")
	}
}
