package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
	"github.com/vncsmyrnk/voxen/internal/metrics"
)

type voteService struct {
	proposalRepo         ports.ProposalRepository
	voteRepo             ports.VoteRepository
	spaceRepo            ports.SpaceRepository
	userRepo             ports.UserRepository
	results              ports.ProposalService
	paging               Paging
	trustClientVotePower bool
	metrics              *metrics.Metrics
	logger               *zap.SugaredLogger
	now                  func() time.Time
}

// NewVoteService wires vote casting. results is used to refresh the
// proposal tally after every accepted vote. When trustClientVotePower is
// false the caller's vote_power is ignored in favour of the voter's
// membership power.
func NewVoteService(
	proposalRepo ports.ProposalRepository,
	voteRepo ports.VoteRepository,
	spaceRepo ports.SpaceRepository,
	userRepo ports.UserRepository,
	results ports.ProposalService,
	paging Paging,
	trustClientVotePower bool,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) ports.VoteService {
	return &voteService{
		proposalRepo:         proposalRepo,
		voteRepo:             voteRepo,
		spaceRepo:            spaceRepo,
		userRepo:             userRepo,
		results:              results,
		paging:               paging,
		trustClientVotePower: trustClientVotePower,
		metrics:              m,
		logger:               logger,
		now:                  time.Now,
	}
}

func (s *voteService) Cast(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	if !domain.IsBallotJSON(input.Votes) {
		return nil, domain.NewValidationError("votes", "votes must be a JSON object or array")
	}
	if input.VotePower != nil {
		if p := *input.VotePower; p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, domain.NewValidationError("vote_power", "vote power must be a positive number")
		}
	}

	proposal, err := s.proposalRepo.GetByID(ctx, input.ProposalID)
	if err != nil {
		return nil, err
	}
	if input.SpaceID != uuid.Nil && input.SpaceID != proposal.SpaceID {
		return nil, domain.NewValidationError("space_id", "proposal belongs to another space")
	}
	if proposal.Status != domain.ProposalStatusActive {
		return nil, domain.ErrProposalNotActive
	}
	if !proposal.IsOpenAt(s.now()) {
		return nil, domain.ErrVotingClosed
	}

	membership, err := s.spaceRepo.GetMembership(ctx, proposal.SpaceID, input.UserID)
	if err != nil {
		return nil, err
	}

	space, err := s.spaceRepo.GetByID(ctx, proposal.SpaceID)
	if err != nil {
		return nil, err
	}
	if space.RequiresKYC {
		user, err := s.userRepo.GetByID(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		if !user.KYCVerified {
			return nil, domain.ErrKYCRequired
		}
	}

	vote := &domain.Vote{
		ID:               uuid.New(),
		ProposalID:       proposal.ID,
		UserID:           input.UserID,
		SpaceID:          proposal.SpaceID,
		Votes:            input.Votes,
		VotePower:        s.resolveVotePower(membership, input),
		BlockchainTxHash: input.BlockchainTxHash,
		VoteHash:         input.VoteHash,
	}

	stored, err := s.voteRepo.Upsert(ctx, vote)
	if err != nil {
		return nil, err
	}
	s.metrics.VoteCast()

	if _, err := s.results.RecomputeResults(ctx, proposal.ID); err != nil {
		return nil, fmt.Errorf("vote stored but failed to refresh results: %w", err)
	}

	s.logger.Debugw("vote cast", "proposal_id", proposal.ID, "user_id", input.UserID, "vote_power", stored.VotePower)
	return stored, nil
}

func (s *voteService) resolveVotePower(membership *domain.Membership, input ports.CastVoteInput) float64 {
	power := membership.VotingPower
	if input.VotePower != nil {
		if s.trustClientVotePower {
			power = *input.VotePower
		} else if *input.VotePower != power {
			s.logger.Warnw("ignoring client supplied vote power",
				"proposal_id", input.ProposalID,
				"user_id", input.UserID,
				"requested", *input.VotePower,
				"membership", power,
			)
		}
	}
	if power <= 0 || math.IsNaN(power) || math.IsInf(power, 0) {
		power = domain.DefaultVotePower
	}
	return power
}

func (s *voteService) List(ctx context.Context, proposalID uuid.UUID, page, limit int) (*ports.VotePage, error) {
	page, limit, offset, err := s.paging.normalize(page, limit)
	if err != nil {
		return nil, err
	}

	if _, err := s.proposalRepo.GetByID(ctx, proposalID); err != nil {
		return nil, err
	}

	votes, total, err := s.voteRepo.ListByProposal(ctx, proposalID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ports.VotePage{Votes: votes, Total: total, Page: page, Limit: limit}, nil
}

func (s *voteService) GetMine(ctx context.Context, proposalID, userID uuid.UUID) (*domain.Vote, error) {
	return s.voteRepo.GetByUser(ctx, proposalID, userID)
}
