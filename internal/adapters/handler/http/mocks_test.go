package http

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) IssueNonce(ctx context.Context, walletAddress string) (string, error) {
	args := m.Called(ctx, walletAddress)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) LoginWithWallet(ctx context.Context, walletAddress, signature string) (string, string, error) {
	args := m.Called(ctx, walletAddress, signature)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserService) LinkGoogle(ctx context.Context, id uuid.UUID, credential string) (*domain.User, error) {
	args := m.Called(ctx, id, credential)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserService) SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

type mockSpaceService struct{ mock.Mock }

func (m *mockSpaceService) Create(ctx context.Context, input ports.CreateSpaceInput) (*domain.Space, error) {
	args := m.Called(ctx, input)
	space, _ := args.Get(0).(*domain.Space)
	return space, args.Error(1)
}

func (m *mockSpaceService) Get(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	args := m.Called(ctx, id)
	space, _ := args.Get(0).(*domain.Space)
	return space, args.Error(1)
}

func (m *mockSpaceService) Join(ctx context.Context, spaceID, userID uuid.UUID) (*domain.Membership, error) {
	args := m.Called(ctx, spaceID, userID)
	membership, _ := args.Get(0).(*domain.Membership)
	return membership, args.Error(1)
}

func (m *mockSpaceService) Members(ctx context.Context, spaceID uuid.UUID) ([]*domain.Membership, error) {
	args := m.Called(ctx, spaceID)
	members, _ := args.Get(0).([]*domain.Membership)
	return members, args.Error(1)
}

func (m *mockSpaceService) SetVotingPower(ctx context.Context, spaceID, adminID, userID uuid.UUID, power float64) error {
	return m.Called(ctx, spaceID, adminID, userID, power).Error(0)
}

type mockProposalService struct{ mock.Mock }

func (m *mockProposalService) Create(ctx context.Context, input ports.CreateProposalInput) (*domain.Proposal, error) {
	args := m.Called(ctx, input)
	proposal, _ := args.Get(0).(*domain.Proposal)
	return proposal, args.Error(1)
}

func (m *mockProposalService) Get(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	proposal, _ := args.Get(0).(*domain.Proposal)
	return proposal, args.Error(1)
}

func (m *mockProposalService) List(ctx context.Context, input ports.ListProposalsInput) (*ports.ProposalPage, error) {
	args := m.Called(ctx, input)
	page, _ := args.Get(0).(*ports.ProposalPage)
	return page, args.Error(1)
}

func (m *mockProposalService) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*domain.Proposal, error) {
	args := m.Called(ctx, id, userID, status)
	proposal, _ := args.Get(0).(*domain.Proposal)
	return proposal, args.Error(1)
}

func (m *mockProposalService) RecomputeResults(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	proposal, _ := args.Get(0).(*domain.Proposal)
	return proposal, args.Error(1)
}

func (m *mockProposalService) GenerateContentHash(input ports.ContentHashInput) (string, error) {
	args := m.Called(input)
	return args.String(0), args.Error(1)
}

func (m *mockProposalService) VerifyContentHash(input ports.ContentHashInput, expected string) (bool, error) {
	args := m.Called(input, expected)
	return args.Bool(0), args.Error(1)
}

func (m *mockProposalService) VerifyOnChain(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	proposal, _ := args.Get(0).(*domain.Proposal)
	return proposal, args.Error(1)
}

type mockVoteService struct{ mock.Mock }

func (m *mockVoteService) Cast(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	args := m.Called(ctx, input)
	vote, _ := args.Get(0).(*domain.Vote)
	return vote, args.Error(1)
}

func (m *mockVoteService) List(ctx context.Context, proposalID uuid.UUID, page, limit int) (*ports.VotePage, error) {
	args := m.Called(ctx, proposalID, page, limit)
	votes, _ := args.Get(0).(*ports.VotePage)
	return votes, args.Error(1)
}

func (m *mockVoteService) GetMine(ctx context.Context, proposalID, userID uuid.UUID) (*domain.Vote, error) {
	args := m.Called(ctx, proposalID, userID)
	vote, _ := args.Get(0).(*domain.Vote)
	return vote, args.Error(1)
}
