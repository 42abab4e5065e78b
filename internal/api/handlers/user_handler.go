package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nvalente/bloglist-be/internal/api/pipeline"
	"github.com/nvalente/bloglist-be/internal/api/respond"
	"github.com/nvalente/bloglist-be/internal/apperr"
	"github.com/nvalente/bloglist-be/internal/services"
)

// UserHandler handles HTTP requests for user management.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// GetAll lists every user with their blogs attached.
func (h *UserHandler) GetAll(w http.ResponseWriter, _ *http.Request, _ *pipeline.RequestContext) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		return err
	}
	respond.JSON(w, http.StatusOK, users)
	return nil
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request, _ *pipeline.RequestContext) error {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return apperr.Validation("invalid request body")
	}

	user, err := h.service.CreateUser(payload.Username, payload.Name, payload.Password)
	if err != nil {
		return err
	}

	log.Info().Str("username", user.Username).Msg("User registered")
	respond.JSON(w, http.StatusCreated, user)
	return nil
}
