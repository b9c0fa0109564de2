package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/contenthash"
	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
	"github.com/vncsmyrnk/voxen/internal/core/tally"
	"github.com/vncsmyrnk/voxen/internal/metrics"
)

// Paging bounds the page sizes list endpoints accept.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// maxOffset caps how deep a listing may page.
const maxOffset = math.MaxInt32

func (p Paging) normalize(page, limit int) (int, int, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = p.DefaultLimit
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	if limit > 0 && page-1 > maxOffset/limit {
		return 0, 0, 0, domain.NewValidationError("page", "page is out of range")
	}
	return page, limit, (page - 1) * limit, nil
}

type proposalService struct {
	proposalRepo ports.ProposalRepository
	voteRepo     ports.VoteRepository
	spaceRepo    ports.SpaceRepository
	chain        ports.ChainReader
	paging       Paging
	metrics      *metrics.Metrics
	logger       *zap.SugaredLogger
	now          func() time.Time
}

// NewProposalService wires the proposal use cases. chain may be nil when no
// RPC endpoint is configured; on-chain verification then fails with
// domain.ErrChainUnavailable.
func NewProposalService(
	proposalRepo ports.ProposalRepository,
	voteRepo ports.VoteRepository,
	spaceRepo ports.SpaceRepository,
	chain ports.ChainReader,
	paging Paging,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) ports.ProposalService {
	return &proposalService{
		proposalRepo: proposalRepo,
		voteRepo:     voteRepo,
		spaceRepo:    spaceRepo,
		chain:        chain,
		paging:       paging,
		metrics:      m,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *proposalService) Create(ctx context.Context, input ports.CreateProposalInput) (*domain.Proposal, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewValidationError("title", "title is required")
	}
	if input.EndDate == nil {
		return nil, domain.NewValidationError("end_date", "end date is required")
	}
	if len(input.Options) < 2 {
		return nil, domain.NewValidationError("options", "at least two options are required")
	}
	for i, option := range input.Options {
		if strings.TrimSpace(option) == "" {
			return nil, domain.NewValidationError("options", fmt.Sprintf("option %d is empty", i))
		}
	}

	votingType := input.VotingType
	if votingType == "" {
		votingType = domain.VotingTypeSingle
	}
	if !votingType.Valid() {
		return nil, domain.NewValidationError("voting_type", fmt.Sprintf("invalid voting type %q", votingType))
	}

	status := input.Status
	if status == "" {
		status = domain.ProposalStatusActive
	}
	if !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("invalid status %q", status))
	}

	now := s.now().UTC()
	startDate := now
	if input.StartDate != nil {
		startDate = input.StartDate.UTC()
	}
	endDate := input.EndDate.UTC()
	if !endDate.After(startDate) {
		return nil, domain.NewValidationError("end_date", "end date must be after start date")
	}

	if _, err := s.spaceRepo.GetByID(ctx, input.SpaceID); err != nil {
		return nil, err
	}
	if _, err := s.spaceRepo.GetMembership(ctx, input.SpaceID, input.CreatorID); err != nil {
		return nil, err
	}

	options := append([]string(nil), input.Options...)
	hash, err := contenthash.Generate(input.Title, input.Description, options)
	if err != nil {
		return nil, err
	}

	proposal := &domain.Proposal{
		ID:                   uuid.New(),
		SpaceID:              input.SpaceID,
		CreatorID:            input.CreatorID,
		Title:                input.Title,
		Description:          input.Description,
		Options:              options,
		VotingType:           votingType,
		StartDate:            startDate,
		EndDate:              endDate,
		Status:               status,
		Results:              domain.NewResults(len(options)),
		VoteCount:            0,
		BlockchainProposalID: input.BlockchainProposalID,
		TxHash:               input.TxHash,
		ContractAddress:      input.ContractAddress,
		IsBlockchain:         input.IsBlockchain,
		ContentHash:          &hash,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.proposalRepo.Save(ctx, proposal); err != nil {
		return nil, err
	}

	s.logger.Infow("proposal created", "proposal_id", proposal.ID, "space_id", proposal.SpaceID, "voting_type", proposal.VotingType)
	return proposal, nil
}

func (s *proposalService) Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	return s.proposalRepo.GetByID(ctx, id)
}

func (s *proposalService) List(ctx context.Context, input ports.ListProposalsInput) (*ports.ProposalPage, error) {
	status := domain.ProposalStatus(input.Status)
	if status != "" && !status.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("invalid status %q", input.Status))
	}

	sort := domain.SortOrder(strings.ToLower(input.Sort))
	if sort == "" {
		sort = domain.SortDesc
	}
	if !sort.Valid() {
		return nil, domain.NewValidationError("sort", fmt.Sprintf("invalid sort order %q", input.Sort))
	}

	page, limit, offset, err := s.paging.normalize(input.Page, input.Limit)
	if err != nil {
		return nil, err
	}

	if _, err := s.spaceRepo.GetByID(ctx, input.SpaceID); err != nil {
		return nil, err
	}

	proposals, total, err := s.proposalRepo.List(ctx, ports.ProposalFilter{
		SpaceID: input.SpaceID,
		Status:  status,
		Sort:    sort,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ProposalPage{Proposals: proposals, Total: total, Page: page, Limit: limit}, nil
}

func (s *proposalService) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*domain.Proposal, error) {
	next := domain.ProposalStatus(status)
	if !next.Valid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("invalid status %q", status))
	}

	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if proposal.CreatorID != userID {
		membership, err := s.spaceRepo.GetMembership(ctx, proposal.SpaceID, userID)
		if err != nil {
			return nil, err
		}
		if !membership.IsAdmin() {
			return nil, domain.ErrForbidden
		}
	}

	if !proposal.Status.CanTransitionTo(next) {
		return nil, domain.NewValidationError("status", fmt.Sprintf("cannot move proposal from %s to %s", proposal.Status, next))
	}

	if err := s.proposalRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	s.logger.Infow("proposal status changed", "proposal_id", id, "from", proposal.Status, "to", next)
	proposal.Status = next
	proposal.UpdatedAt = s.now().UTC()
	return proposal, nil
}

// RecomputeResults re-derives results and vote_count from every stored vote
// of the proposal and overwrites both.
func (s *proposalService) RecomputeResults(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	votes, err := s.voteRepo.ListAllByProposal(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome := tally.Compute(proposal.VotingType, len(proposal.Options), votes)
	for _, skipped := range outcome.Skipped {
		s.logger.Warnw("ballot skipped during tally",
			"proposal_id", id,
			"vote_id", skipped.VoteID,
			"user_id", skipped.UserID,
			"reason", skipped.Reason,
		)
	}

	if err := s.proposalRepo.UpdateResults(ctx, id, outcome.Results, outcome.VoteCount); err != nil {
		return nil, err
	}
	s.metrics.TallyRecomputed(len(outcome.Skipped))

	proposal.Results = outcome.Results
	proposal.VoteCount = outcome.VoteCount
	return proposal, nil
}

func (s *proposalService) GenerateContentHash(input ports.ContentHashInput) (string, error) {
	return contenthash.Generate(input.Title, input.Description, input.Options)
}

func (s *proposalService) VerifyContentHash(input ports.ContentHashInput, expected string) (bool, error) {
	if strings.TrimSpace(expected) == "" {
		return false, domain.NewValidationError("expected_hash", "expected hash is required")
	}

	match, err := contenthash.Verify(input.Title, input.Description, input.Options, expected)
	if err != nil {
		return false, err
	}
	s.metrics.HashVerified(match)
	return match, nil
}

// VerifyOnChain compares the proposal's content with the hash committed by
// the voting contract and records the outcome.
func (s *proposalService) VerifyOnChain(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !proposal.IsBlockchain || proposal.BlockchainProposalID == nil || proposal.ContractAddress == nil {
		return nil, domain.ErrNotOnChain
	}
	if s.chain == nil {
		return nil, domain.ErrChainUnavailable
	}

	committed, err := s.chain.ProposalContentHash(ctx, *proposal.ContractAddress, *proposal.BlockchainProposalID)
	if err != nil {
		return nil, fmt.Errorf("failed to read proposal %d from chain: %w", *proposal.BlockchainProposalID, err)
	}

	computed, err := contenthash.Generate(proposal.Title, proposal.Description, proposal.Options)
	if err != nil {
		return nil, err
	}
	match := contenthash.Normalize(committed) == computed
	s.metrics.HashVerified(match)

	if err := s.proposalRepo.UpdateVerification(ctx, id, computed, match, match); err != nil {
		return nil, err
	}

	if !match {
		s.logger.Warnw("on-chain content hash mismatch", "proposal_id", id, "committed", committed, "computed", computed)
	}

	proposal.ContentHash = &computed
	proposal.HashVerified = match
	proposal.BlockchainVerified = match
	return proposal, nil
}
