package ports

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

type VoteRepository interface {
	// Upsert inserts the vote or, when the user already voted on the
	// proposal, overwrites the ballot in place. It returns the stored row.
	Upsert(ctx context.Context, vote *domain.Vote) (*domain.Vote, error)
	GetByUser(ctx context.Context, proposalID, userID uuid.UUID) (*domain.Vote, error)
	ListByProposal(ctx context.Context, proposalID uuid.UUID, limit, offset int) ([]*domain.Vote, int, error)
	// ListAllByProposal returns every vote record of the proposal.
	ListAllByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.Vote, error)
}

type CastVoteInput struct {
	ProposalID       uuid.UUID
	UserID           uuid.UUID
	SpaceID          uuid.UUID
	Votes            json.RawMessage
	VotePower        *float64
	BlockchainTxHash *string
	VoteHash         *string
}

type VotePage struct {
	Votes []*domain.Vote `json:"votes"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type VoteService interface {
	Cast(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
	List(ctx context.Context, proposalID uuid.UUID, page, limit int) (*VotePage, error)
	GetMine(ctx context.Context, proposalID, userID uuid.UUID) (*domain.Vote, error)
}
