package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
	logger  *zap.SugaredLogger
}

func NewVoteHandler(service ports.VoteService, logger *zap.SugaredLogger) *VoteHandler {
	return &VoteHandler{
		service: service,
		logger:  logger,
	}
}

type castVoteRequest struct {
	Votes            json.RawMessage `json:"votes"`
	VotePower        *float64        `json:"vote_power"`
	SpaceID          string          `json:"space_id"`
	BlockchainTxHash *string         `json:"blockchain_tx_hash"`
	VoteHash         *string         `json:"vote_hash"`
}

// Cast godoc
// @Summary      Casts or replaces the caller's vote
// @Description  Stores one ballot per user and proposal, then refreshes the proposal results. Responds 201 for a first vote and 200 when an earlier ballot was replaced.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        id path string true "Proposal ID"
// @Success      201 {object} domain.Vote
// @Success      200 {object} domain.Vote
// @Failure      400
// @Failure      403
// @Failure      404
// @Failure      409
// @Router       /api/proposals/{id}/votes [post]
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	userID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	var req castVoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := ports.CastVoteInput{
		ProposalID:       proposalID,
		UserID:           userID,
		Votes:            req.Votes,
		VotePower:        req.VotePower,
		BlockchainTxHash: req.BlockchainTxHash,
		VoteHash:         req.VoteHash,
	}
	if req.SpaceID != "" {
		input.SpaceID, err = uuid.Parse(req.SpaceID)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid space id", Field: "space_id"})
			return
		}
	}

	vote, err := h.service.Cast(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	status := http.StatusOK
	if vote.CreatedAt.Equal(vote.UpdatedAt) {
		status = http.StatusCreated
	}
	writeJSON(w, status, vote)
}

func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid proposal id")
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid page", Field: "page"})
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit", Field: "limit"})
		return
	}

	votes, err := h.service.List(r.Context(), proposalID, page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, votes)
}

// GetMine returns the caller's ballot on the proposal, 404 when there is none.
func (h *VoteHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid proposal id")
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "missing user context")
		return
	}

	vote, err := h.service.GetMine(r.Context(), proposalID, userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, vote)
}
