package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	logger  *zap.SugaredLogger
}

func NewUserHandler(service ports.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

type linkGoogleRequest struct {
	Credential string `json:"credential"`
}

// LinkGoogle attaches a verified Google e-mail to the caller's account.
func (h *UserHandler) LinkGoogle(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req linkGoogleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.LinkGoogle(r.Context(), userID, req.Credential)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
