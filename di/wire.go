//go:build wireinject
// +build wireinject

package di

import (
	"reserva/config"
	"reserva/infras/kafka"
	"reserva/infras/otel"
	"reserva/infras/postgres"
	"reserva/infras/redis"
	"reserva/shared/cache"
	"reserva/transport/http"
	"reserva/transport/http/middleware"
	"reserva/transport/http/router"

	bookingRepository "reserva/internal/domains/booking/repository"
	bookingService "reserva/internal/domains/booking/service"
	roomService "reserva/internal/domains/room/service"
	bookingHandler "reserva/internal/handlers/booking"
	roomHandler "reserva/internal/handlers/room"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var domains = wire.NewSet(
	roomDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	bookingHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
