package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type mockProposalRepo struct{ mock.Mock }

func (m *mockProposalRepo) Save(ctx context.Context, proposal *domain.Proposal) error {
	return m.Called(ctx, proposal).Error(0)
}

func (m *mockProposalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Proposal)
	return p, args.Error(1)
}

func (m *mockProposalRepo) List(ctx context.Context, filter ports.ProposalFilter) ([]*domain.Proposal, int, error) {
	args := m.Called(ctx, filter)
	proposals, _ := args.Get(0).([]*domain.Proposal)
	return proposals, args.Int(1), args.Error(2)
}

func (m *mockProposalRepo) ListByStatus(ctx context.Context, status domain.ProposalStatus) ([]*domain.Proposal, error) {
	args := m.Called(ctx, status)
	proposals, _ := args.Get(0).([]*domain.Proposal)
	return proposals, args.Error(1)
}

func (m *mockProposalRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProposalStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockProposalRepo) UpdateResults(ctx context.Context, id uuid.UUID, results domain.Results, voteCount int) error {
	return m.Called(ctx, id, results, voteCount).Error(0)
}

func (m *mockProposalRepo) UpdateVerification(ctx context.Context, id uuid.UUID, contentHash string, hashVerified, blockchainVerified bool) error {
	return m.Called(ctx, id, contentHash, hashVerified, blockchainVerified).Error(0)
}

type mockVoteRepo struct{ mock.Mock }

func (m *mockVoteRepo) Upsert(ctx context.Context, vote *domain.Vote) (*domain.Vote, error) {
	args := m.Called(ctx, vote)
	v, _ := args.Get(0).(*domain.Vote)
	return v, args.Error(1)
}

func (m *mockVoteRepo) GetByUser(ctx context.Context, proposalID, userID uuid.UUID) (*domain.Vote, error) {
	args := m.Called(ctx, proposalID, userID)
	v, _ := args.Get(0).(*domain.Vote)
	return v, args.Error(1)
}

func (m *mockVoteRepo) ListByProposal(ctx context.Context, proposalID uuid.UUID, limit, offset int) ([]*domain.Vote, int, error) {
	args := m.Called(ctx, proposalID, limit, offset)
	votes, _ := args.Get(0).([]*domain.Vote)
	return votes, args.Int(1), args.Error(2)
}

func (m *mockVoteRepo) ListAllByProposal(ctx context.Context, proposalID uuid.UUID) ([]domain.Vote, error) {
	args := m.Called(ctx, proposalID)
	votes, _ := args.Get(0).([]domain.Vote)
	return votes, args.Error(1)
}

type mockSpaceRepo struct{ mock.Mock }

func (m *mockSpaceRepo) Create(ctx context.Context, space *domain.Space, owner *domain.Membership) error {
	return m.Called(ctx, space, owner).Error(0)
}

func (m *mockSpaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*domain.Space)
	return s, args.Error(1)
}

func (m *mockSpaceRepo) AddMember(ctx context.Context, member *domain.Membership) error {
	return m.Called(ctx, member).Error(0)
}

func (m *mockSpaceRepo) GetMembership(ctx context.Context, spaceID, userID uuid.UUID) (*domain.Membership, error) {
	args := m.Called(ctx, spaceID, userID)
	ms, _ := args.Get(0).(*domain.Membership)
	return ms, args.Error(1)
}

func (m *mockSpaceRepo) ListMembers(ctx context.Context, spaceID uuid.UUID) ([]*domain.Membership, error) {
	args := m.Called(ctx, spaceID)
	members, _ := args.Get(0).([]*domain.Membership)
	return members, args.Error(1)
}

func (m *mockSpaceRepo) UpdateVotingPower(ctx context.Context, spaceID, userID uuid.UUID, power float64) error {
	return m.Called(ctx, spaceID, userID, power).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetByWallet(ctx context.Context, walletAddress string) (*domain.User, error) {
	args := m.Called(ctx, walletAddress)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) LinkEmail(ctx context.Context, id uuid.UUID, email, name string) error {
	return m.Called(ctx, id, email, name).Error(0)
}

func (m *mockUserRepo) SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	return m.Called(ctx, id, verified).Error(0)
}

type mockAuthRepo struct{ mock.Mock }

func (m *mockAuthRepo) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	t, _ := args.Get(0).(*domain.RefreshToken)
	return t, args.Error(1)
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthRepo) StoreNonce(ctx context.Context, nonce *domain.WalletNonce) error {
	return m.Called(ctx, nonce).Error(0)
}

func (m *mockAuthRepo) ConsumeNonce(ctx context.Context, walletAddress string) (*domain.WalletNonce, error) {
	args := m.Called(ctx, walletAddress)
	n, _ := args.Get(0).(*domain.WalletNonce)
	return n, args.Error(1)
}

type mockSignatureVerifier struct{ mock.Mock }

func (m *mockSignatureVerifier) Verify(message, signature, walletAddress string) error {
	return m.Called(message, signature, walletAddress).Error(0)
}

type mockTokenVerifier struct{ mock.Mock }

func (m *mockTokenVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	args := m.Called(ctx, token, clientID)
	p, _ := args.Get(0).(*ports.TokenPayload)
	return p, args.Error(1)
}

type mockChainReader struct{ mock.Mock }

func (m *mockChainReader) ProposalContentHash(ctx context.Context, contractAddress string, proposalID int64) (string, error) {
	args := m.Called(ctx, contractAddress, proposalID)
	return args.String(0), args.Error(1)
}

type mockProposalService struct {
	mock.Mock
	ports.ProposalService
}

func (m *mockProposalService) RecomputeResults(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.Proposal)
	return p, args.Error(1)
}
