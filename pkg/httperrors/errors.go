package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/wasm_merge/internal/models"
)

// Write отвечает клиенту кодом, соответствующим ошибке, и возвращает этот код.
func Write(w http.ResponseWriter, err error) int {
	status := Status(err)
	http.Error(w, err.Error(), status)
	return status
}

// Status сопоставляет ошибку HTTP-коду.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrPartNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInvalidPartName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
