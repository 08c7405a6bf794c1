package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"reserva/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "invalid room", err: failure.InvalidRoom, code: http.StatusBadRequest, message: "El salón proporcionado no es válido."},
		{name: "missing fields", err: failure.MissingFields, code: http.StatusBadRequest, message: "Todos los campos son requeridos"},
		{name: "bad request", err: failure.BadRequest(errors.New("fecha inválida")), code: http.StatusBadRequest, message: "fecha inválida"},
		{name: "bad request from string", err: failure.BadRequestFromString("hora inválida"), code: http.StatusBadRequest, message: "hora inválida"},
		{name: "not found", err: failure.NotFound("No se encontró la reserva"), code: http.StatusNotFound, message: "No se encontró la reserva"},
		{name: "conflict", err: failure.Conflict("El horario ya está reservado"), code: http.StatusConflict, message: "El horario ya está reservado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestNilStaysNil(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
}

func TestGetCode(t *testing.T) {
	wrapped := fmt.Errorf("cancel: %w", failure.Conflict("ambigua"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(wrapped))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(errors.New("plain")))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(nil))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, failure.IsClientError(failure.NotFound("x")))
	assert.True(t, failure.IsClientError(fmt.Errorf("wrapped: %w", failure.MissingFields)))
	assert.False(t, failure.IsClientError(failure.New(http.StatusServiceUnavailable, "x")))
	assert.False(t, failure.IsClientError(errors.New("plain")))
}
