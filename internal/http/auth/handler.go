package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/auth"
	"github.com/stefifm/dashboard/internal/form"
)

type Handler struct {
	svc    *auth.Service
	tokens *auth.TokenIssuer
}

func NewHandler(svc *auth.Service, tokens *auth.TokenIssuer) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.login)
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	values, err := form.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.svc.Authenticate(r.Context(), "", values)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to authenticate", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if state.Message != "" {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: state.Message})
		return
	}

	s := state.Session
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User: userResponse{
			ID:    s.UserID,
			Email: s.Email,
			Name:  s.Name,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
