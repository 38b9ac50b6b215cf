package handler

import (
	"errors"
	"net/http"

	"github.com/franciscoengenheiro/chelas-movies-database-sub000/internal/model"
)

// WriteError translates a domain error kind into an HTTP status and writes
// the error body. This is the only place where kinds meet transport codes;
// the core never sees HTTP.
func WriteError(w http.ResponseWriter, err error) {
	status := statusOf(err)

	detail := "an unexpected error occurred"
	var e *model.Error
	if errors.As(err, &e) && e.Kind != model.KindInternal {
		detail = e.Detail
	}

	WriteJSON(w, status, ErrorResponse{Status: status, Detail: detail})
}

func statusOf(err error) int {
	switch model.KindOf(err) {
	case model.KindInvalidArgument:
		return http.StatusBadRequest
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindInvalidUser:
		return http.StatusUnauthorized
	case model.KindUserNotFound:
		return http.StatusNotFound
	case model.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
