package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/service"
)

// errorResponse is the error shape the original frontend expects.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The status line is already out; an encode failure here cannot be
	// reported to the client anymore.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service or domain error to the status code and the
// Spanish-language message the original frontend expects, and writes it.
// Unrecognized errors become a generic 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// mapError translates errors into the original wire contract.
func mapError(err error) (int, string) {
	var missing *service.MissingFieldError
	if errors.As(err, &missing) {
		return http.StatusBadRequest, fmt.Sprintf("El campo '%s' es obligatorio", missing.Field)
	}

	switch {
	case errors.Is(err, service.ErrUsernameTooShort):
		return http.StatusBadRequest, "El username debe tener al menos 3 caracteres"
	case errors.Is(err, service.ErrInvalidEmail):
		return http.StatusBadRequest, "El email no es válido"
	case errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest, "La contraseña debe tener al menos 6 caracteres"
	case errors.Is(err, service.ErrInvalidQuantity):
		return http.StatusBadRequest, "La cantidad debe ser un número no negativo"
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return http.StatusBadRequest, "El usuario o email ya existe"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Usuario o contraseña incorrectos"
	case errors.Is(err, domain.ErrUnknownOwner):
		return http.StatusBadRequest, "El usuario especificado no existe"
	default:
		return http.StatusInternalServerError, "Error interno del servidor"
	}
}
