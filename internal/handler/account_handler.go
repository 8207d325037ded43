// Package handler provides the HTTP transport for Inventario. Routes,
// request and response shapes follow the original frontend's wire
// contract, Spanish field names included.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dmarrez/inventario/internal/domain"
	"github.com/dmarrez/inventario/internal/service"
)

// AccountHandler handles registration and login requests.
type AccountHandler struct {
	accounts *service.AccountService
	logger   zerolog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger.With().Str("handler", "account").Logger(),
	}
}

// registerRequest is the body of POST /api/registro.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse is the success body of POST /api/registro.
type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// Register handles POST /api/registro.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("malformed registration body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Cuerpo de la solicitud no válido"})
		return
	}

	output, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Usuario registrado exitosamente"
	if output.Degraded {
		message = "Usuario registrado exitosamente (modo simulación)"
	}

	writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Message: message,
		UserID:  output.UserID,
	})
}

// loginRequest is the body of POST /api/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userView is the identity shape returned to the frontend.
type userView struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// loginResponse is the success body of POST /api/login.
type loginResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	User    userView `json:"user"`
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug().Err(err).Msg("malformed login body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Error: "Cuerpo de la solicitud no válido"})
		return
	}

	output, err := h.accounts.Login(r.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	message := "Inicio de sesión exitoso"
	if output.Degraded {
		message = "Login exitoso (modo simulación)"
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: message,
		User:    viewOf(output.User),
	})
}

// viewOf converts the domain view into the wire shape.
func viewOf(u domain.UserView) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email}
}
