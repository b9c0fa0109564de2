package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

type ProposalFilter struct {
	SpaceID uuid.UUID
	Status  domain.ProposalStatus
	Sort    domain.SortOrder
	Limit   int
	Offset  int
}

type ProposalRepository interface {
	Save(ctx context.Context, proposal *domain.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	List(ctx context.Context, filter ProposalFilter) ([]*domain.Proposal, int, error)
	ListByStatus(ctx context.Context, status domain.ProposalStatus) ([]*domain.Proposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProposalStatus) error
	// UpdateResults overwrites results and vote_count in a single statement.
	UpdateResults(ctx context.Context, id uuid.UUID, results domain.Results, voteCount int) error
	UpdateVerification(ctx context.Context, id uuid.UUID, contentHash string, hashVerified, blockchainVerified bool) error
}

type CreateProposalInput struct {
	SpaceID              uuid.UUID
	CreatorID            uuid.UUID
	Title                string
	Description          string
	VotingType           domain.VotingType
	Options              []string
	StartDate            *time.Time
	EndDate              *time.Time
	Status               domain.ProposalStatus
	BlockchainProposalID *int64
	TxHash               *string
	ContractAddress      *string
	IsBlockchain         bool
}

type ListProposalsInput struct {
	SpaceID uuid.UUID
	Status  string
	Sort    string
	Page    int
	Limit   int
}

type ProposalPage struct {
	Proposals []*domain.Proposal `json:"proposals"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

type ContentHashInput struct {
	Title       string
	Description string
	Options     []string
}

type ProposalService interface {
	Create(ctx context.Context, input CreateProposalInput) (*domain.Proposal, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	List(ctx context.Context, input ListProposalsInput) (*ProposalPage, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*domain.Proposal, error)
	RecomputeResults(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
	GenerateContentHash(input ContentHashInput) (string, error)
	VerifyContentHash(input ContentHashInput, expected string) (bool, error)
	VerifyOnChain(ctx context.Context, id uuid.UUID) (*domain.Proposal, error)
}

// SummaryService recomputes results for every active proposal.
type SummaryService interface {
	RecomputeAll(ctx context.Context) error
}
