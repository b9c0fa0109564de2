package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type SpaceHandler struct {
	service ports.SpaceService
	logger  *zap.SugaredLogger
}

func NewSpaceHandler(service ports.SpaceService, logger *zap.SugaredLogger) *SpaceHandler {
	return &SpaceHandler{
		service: service,
		logger:  logger,
	}
}

type createSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RequiresKYC bool   `json:"requires_kyc"`
}

func (h *SpaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req createSpaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	space, err := h.service.Create(r.Context(), ports.CreateSpaceInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   userID,
		RequiresKYC: req.RequiresKYC,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, space)
}

func (h *SpaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid space id")
		return
	}

	space, err := h.service.Get(r.Context(), spaceID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, space)
}

func (h *SpaceHandler) Join(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid space id")
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	membership, err := h.service.Join(r.Context(), spaceID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, membership)
}

func (h *SpaceHandler) Members(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid space id")
		return
	}

	members, err := h.service.Members(r.Context(), spaceID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

type votingPowerRequest struct {
	VotingPower float64 `json:"voting_power"`
}

// SetVotingPower lets a space admin change a member's voting power.
func (h *SpaceHandler) SetVotingPower(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid space id")
		return
	}
	memberID, err := pathUUID(r, "userID")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}
	adminID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req votingPowerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.SetVotingPower(r.Context(), spaceID, adminID, memberID, req.VotingPower); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
