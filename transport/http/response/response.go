package response

import (
	"encoding/json"
	"net/http"
	"reserva/shared/constant"
	"reserva/shared/failure"
	"reserva/shared/logger"
)

type Message struct {
	Message string `json:"mensaje"`
}

type Error struct {
	Message string `json:"mensaje"`
	Error   string `json:"error,omitempty"`
}

type RouteNotFound struct {
	Message string `json:"mensaje"`
	Route   string `json:"ruta"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends payload as the whole body
func WithJSON(writer http.ResponseWriter, code int, payload interface{}) {
	response(writer, code, payload)
}

// WithText sends a plain text body
func WithText(writer http.ResponseWriter, code int, text string) {
	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePlain)
	writer.WriteHeader(code)

	if _, err := writer.Write([]byte(text)); err != nil {
		logger.ErrorWithStack(err)
	}
}

// WithError sends err using the generic message for server errors
func WithError(writer http.ResponseWriter, err error) {
	WithErrorMessage(writer, err, constant.ResponseErrorInternal)
}

// WithErrorMessage sends client errors as they are. Server errors are logged
// and answered with message, their detail never reaches the caller.
func WithErrorMessage(writer http.ResponseWriter, err error, message string) {
	code := failure.GetCode(err)

	if failure.IsClientError(err) {
		response(writer, code, Error{Message: err.Error(), Error: http.StatusText(code)})

		return
	}

	logger.ErrorWithStack(err)
	response(writer, code, Error{Message: message, Error: constant.ResponseErrorInternal})
}

// WithRouteNotFound sends the default response for an unmatched path
func WithRouteNotFound(writer http.ResponseWriter, route string) {
	response(writer, http.StatusNotFound, RouteNotFound{Message: constant.ResponseErrorRouteNotFound, Route: route})
}

// WithMethodNotAllowed sends the default response for a path matched with the wrong method
func WithMethodNotAllowed(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusMethodNotAllowed, constant.ResponseErrorMethodNotAllowed)
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
