package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type ProposalHandler struct {
	service ports.ProposalService
	logger  *zap.SugaredLogger
}

func NewProposalHandler(service ports.ProposalService, logger *zap.SugaredLogger) *ProposalHandler {
	return &ProposalHandler{
		service: service,
		logger:  logger,
	}
}

type createProposalRequest struct {
	Title                string                `json:"title"`
	Description          string                `json:"description"`
	VotingType           domain.VotingType     `json:"voting_type"`
	Options              []string              `json:"options"`
	StartDate            *time.Time            `json:"start_date"`
	EndDate              *time.Time            `json:"end_date"`
	Status               domain.ProposalStatus `json:"status"`
	BlockchainProposalID *int64                `json:"blockchain_proposal_id"`
	TxHash               *string               `json:"tx_hash"`
	ContractAddress      *string               `json:"contract_address"`
	IsBlockchain         bool                  `json:"is_blockchain"`
}

// Create godoc
// @Summary      Creates a proposal in a space
// @Description  The caller must be a member of the space. Results start at zero for every option and the content hash is computed from title, description and options.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Param        id path string true "Space ID"
// @Success      201 {object} domain.Proposal
// @Failure      400
// @Failure      403
// @Failure      404
// @Router       /api/spaces/{id}/proposals [post]
func (h *ProposalHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createProposalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposal, err := h.service.Create(r.Context(), ports.CreateProposalInput{
		SpaceID:              spaceID,
		CreatorID:            userID,
		Title:                req.Title,
		Description:          req.Description,
		VotingType:           req.VotingType,
		Options:              req.Options,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Status:               req.Status,
		BlockchainProposalID: req.BlockchainProposalID,
		TxHash:               req.TxHash,
		ContractAddress:      req.ContractAddress,
		IsBlockchain:         req.IsBlockchain,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, proposal)
}

// List godoc
// @Summary      Lists the proposals of a space
// @Tags         proposals
// @Produce      json
// @Param        id     path  string true  "Space ID"
// @Param        status query string false "draft, active, closed or cancelled"
// @Param        sort   query string false "asc or desc by creation time"
// @Param        page   query int    false "1-based page"
// @Param        limit  query int    false "page size"
// @Success      200 {object} ports.ProposalPage
// @Failure      400
// @Failure      404
// @Router       /api/spaces/{id}/proposals [get]
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	spaceID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid space id")
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

	result, err := h.service.List(r.Context(), ports.ListProposalsInput{
		SpaceID: spaceID,
		Status:  r.URL.Query().Get("status"),
		Sort:    r.URL.Query().Get("sort"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *ProposalHandler) Get(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	proposal, err := h.service.Get(r.Context(), proposalID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, proposal)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *ProposalHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
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

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposal, err := h.service.UpdateStatus(r.Context(), proposalID, userID, req.Status)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, proposal)
}

func (h *ProposalHandler) Recompute(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	proposal, err := h.service.RecomputeResults(r.Context(), proposalID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, proposal)
}

// VerifyChain compares the stored content with the hash committed by the
// voting contract and records the outcome on the proposal.
func (h *ProposalHandler) VerifyChain(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUUID(r, "id")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid proposal id")
		return
	}

	proposal, err := h.service.VerifyOnChain(r.Context(), proposalID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, proposal)
}

type contentHashRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Options      []string `json:"options"`
	ExpectedHash string   `json:"expected_hash,omitempty"`
}

type contentHashResponse struct {
	ContentHash string `json:"content_hash"`
	Valid       *bool  `json:"valid,omitempty"`
}

func (req contentHashRequest) input() ports.ContentHashInput {
	return ports.ContentHashInput{Title: req.Title, Description: req.Description, Options: req.Options}
}

func (h *ProposalHandler) GenerateHash(w http.ResponseWriter, r *http.Request) {
	var req contentHashRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hash, err := h.service.GenerateContentHash(req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, contentHashResponse{ContentHash: hash})
}

func (h *ProposalHandler) VerifyHash(w http.ResponseWriter, r *http.Request) {
	var req contentHashRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	valid, err := h.service.VerifyContentHash(req.input(), req.ExpectedHash)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	hash, err := h.service.GenerateContentHash(req.input())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, contentHashResponse{ContentHash: hash, Valid: &valid})
}
