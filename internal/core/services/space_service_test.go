package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

func newSpaceService(t *testing.T) (*spaceService, *mockSpaceRepo) {
	t.Helper()

	repo := &mockSpaceRepo{}
	svc := NewSpaceService(repo, zap.NewNop().Sugar()).(*spaceService)
	svc.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return svc, repo
}

func TestSpaceService_CreateMakesCreatorAdmin(t *testing.T) {
	svc, repo := newSpaceService(t)
	creatorID := uuid.New()

	var owner *domain.Membership
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Space"), mock.AnythingOfType("*domain.Membership")).
		Run(func(args mock.Arguments) { owner = args.Get(2).(*domain.Membership) }).
		Return(nil)

	space, err := svc.Create(context.Background(), ports.CreateSpaceInput{Name: " Garden Club ", CreatorID: creatorID, RequiresKYC: true})
	require.NoError(t, err)

	assert.Equal(t, "Garden Club", space.Name)
	assert.True(t, space.RequiresKYC)
	require.NotNil(t, owner)
	assert.Equal(t, space.ID, owner.SpaceID)
	assert.Equal(t, creatorID, owner.UserID)
	assert.True(t, owner.IsAdmin())
	assert.Equal(t, domain.DefaultVotePower, owner.VotingPower)
}

func TestSpaceService_CreateRequiresName(t *testing.T) {
	svc, _ := newSpaceService(t)

	_, err := svc.Create(context.Background(), ports.CreateSpaceInput{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSpaceService_Join(t *testing.T) {
	svc, repo := newSpaceService(t)
	spaceID, userID := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, spaceID).Return(&domain.Space{ID: spaceID}, nil)
	repo.On("GetMembership", mock.Anything, spaceID, userID).Return(nil, domain.ErrNotSpaceMember)
	repo.On("AddMember", mock.Anything, mock.AnythingOfType("*domain.Membership")).Return(nil)

	member, err := svc.Join(context.Background(), spaceID, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.MemberRoleMember, member.Role)
	assert.Equal(t, 1.0, member.VotingPower)
}

func TestSpaceService_JoinTwice(t *testing.T) {
	svc, repo := newSpaceService(t)
	spaceID, userID := uuid.New(), uuid.New()

	repo.On("GetByID", mock.Anything, spaceID).Return(&domain.Space{ID: spaceID}, nil)
	repo.On("GetMembership", mock.Anything, spaceID, userID).Return(&domain.Membership{}, nil)

	_, err := svc.Join(context.Background(), spaceID, userID)
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
}

func TestSpaceService_SetVotingPower(t *testing.T) {
	svc, repo := newSpaceService(t)
	spaceID, adminID, userID := uuid.New(), uuid.New(), uuid.New()

	repo.On("GetMembership", mock.Anything, spaceID, adminID).Return(&domain.Membership{Role: domain.MemberRoleAdmin}, nil)
	repo.On("GetMembership", mock.Anything, spaceID, userID).Return(&domain.Membership{Role: domain.MemberRoleMember}, nil)
	repo.On("UpdateVotingPower", mock.Anything, spaceID, userID, 3.5).Return(nil)

	require.NoError(t, svc.SetVotingPower(context.Background(), spaceID, adminID, userID, 3.5))
}

func TestSpaceService_SetVotingPowerRequiresAdmin(t *testing.T) {
	svc, repo := newSpaceService(t)
	spaceID, callerID := uuid.New(), uuid.New()

	repo.On("GetMembership", mock.Anything, spaceID, callerID).Return(&domain.Membership{Role: domain.MemberRoleMember}, nil)

	err := svc.SetVotingPower(context.Background(), spaceID, callerID, uuid.New(), 2)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSpaceService_SetVotingPowerRejectsNonPositive(t *testing.T) {
	svc, _ := newSpaceService(t)

	err := svc.SetVotingPower(context.Background(), uuid.New(), uuid.New(), uuid.New(), 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
