package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/msgdrop/internal/domain"
	"github.com/msomdec/msgdrop/internal/service"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	auth *service.AuthService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(auth *service.AuthService) *AccountHandler {
	return &AccountHandler{auth: auth}
}

// HandleRegister processes a JSON registration request.
// POST /account/register
// Request:  {"username":"...","password":"..."}
// Response: 201 {"message":"User registered"}
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, domain.ErrDuplicateUsername) {
			writeError(w, http.StatusConflict, "An account with that username already exists.")
			return
		}
		slog.Error("register user", "error", err)
		writeError(w, http.StatusInternalServerError, "Error registering user.")
		return
	}

	slog.Info("user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
}
