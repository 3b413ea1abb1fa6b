package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio-service/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponseDTO{Error: message})
}

// RespondWithJSON отправляет JSON-ответ.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// statusFromError сопоставляет вид ошибки с HTTP-статусом.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrDialogNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSubmitInProgress), errors.Is(err, domain.ErrInvalidDialogState):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrIdentityResolution):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRemoteRead), errors.Is(err, domain.ErrRemoteWrite):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
