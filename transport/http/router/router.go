package router

import (
	"net/http"
	"reserva/internal/handlers/booking"
	"reserva/internal/handlers/room"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"
)

// APIPrefix mounts the same routes a second time for clients behind the
// /api/reservas reverse proxy path.
const APIPrefix = "/api/reservas"

type DomainHandlers struct {
	Room    room.Handler
	Booking booking.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.WithRouteNotFound(w, req.URL.Path)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.WithMethodNotAllowed(w)
	})

	router.Group(r.routes)
	router.Route(APIPrefix, r.routes)
}

func (r *Router) routes(router chi.Router) {
	r.DomainHandlers.Room.Router(router)
	r.DomainHandlers.Booking.Router(router)
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
