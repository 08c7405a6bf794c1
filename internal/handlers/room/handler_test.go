package room_test

import (
	"net/http"
	"net/http/httptest"
	"reserva/config"
	"reserva/infras/otel/mocks"
	"reserva/internal/domains/room/service"
	"reserva/internal/handlers/room"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestHandler_GetRooms(t *testing.T) {
	cfg := &config.Config{}
	cfg.Booking.OpenHour = 6
	cfg.Booking.CloseHour = 19

	handler := room.New(service.New(cfg), mocks.NewOtel())
	router := chi.NewRouter()
	handler.Router(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/salones", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"nombre":"Auditorio Principal"`)
	assert.Contains(t, rec.Body.String(), `"tabla":"sala_juntas_reservas"`)
	assert.Contains(t, rec.Body.String(), `"apertura":"06:00"`)
}
