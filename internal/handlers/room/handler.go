package room

import (
	"net/http"
	"reserva/infras/otel"
	"reserva/internal/domains/room/service"
	"reserva/shared/constant"
	"reserva/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Room
	otel    otel.Otel
}

func New(service service.Room, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/salones", handler.GetRooms)
}

// GetRooms lists the bookable rooms and the daily service window.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {object} dto.GetRoomsResponse
// @Router /salones [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.GetAll())
}
