package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nvalente/bloglist-be/internal/api/pipeline"
	"github.com/nvalente/bloglist-be/internal/api/respond"
	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/auth"
	"github.com/nvalente/bloglist-be/internal/services"
)

// LoginHandler handles credential issuance.
type LoginHandler struct {
	service services.UserServiceProvider
	tokens  *auth.TokenManager
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(service services.UserServiceProvider, tokens *auth.TokenManager) *LoginHandler {
	return &LoginHandler{service: service, tokens: tokens}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a signed token.
func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request, _ *pipeline.RequestContext) error {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := h.service.AuthenticateUser(payload.Username, payload.Password)
	if err != nil {
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		return err
	}

	token, err := h.tokens.Sign(user)
	if err != nil {
		return err
	}

	respond.JSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": user.Username,
		"name":     user.Name,
	})
	return nil
}
