package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type spaceService struct {
	spaceRepo ports.SpaceRepository
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewSpaceService(spaceRepo ports.SpaceRepository, logger *zap.SugaredLogger) ports.SpaceService {
	return &spaceService{
		spaceRepo: spaceRepo,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *spaceService) Create(ctx context.Context, input ports.CreateSpaceInput) (*domain.Space, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}

	now := s.now().UTC()
	space := &domain.Space{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		CreatorID:   input.CreatorID,
		RequiresKYC: input.RequiresKYC,
		CreatedAt:   now,
	}
	owner := &domain.Membership{
		SpaceID:     space.ID,
		UserID:      input.CreatorID,
		Role:        domain.MemberRoleAdmin,
		VotingPower: domain.DefaultVotePower,
		JoinedAt:    now,
	}

	if err := s.spaceRepo.Create(ctx, space, owner); err != nil {
		return nil, err
	}

	s.logger.Infow("space created", "space_id", space.ID, "creator_id", space.CreatorID)
	return space, nil
}

func (s *spaceService) Get(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	return s.spaceRepo.GetByID(ctx, id)
}

func (s *spaceService) Join(ctx context.Context, spaceID, userID uuid.UUID) (*domain.Membership, error) {
	if _, err := s.spaceRepo.GetByID(ctx, spaceID); err != nil {
		return nil, err
	}

	_, err := s.spaceRepo.GetMembership(ctx, spaceID, userID)
	switch {
	case err == nil:
		return nil, domain.ErrAlreadyMember
	case !errors.Is(err, domain.ErrNotSpaceMember):
		return nil, err
	}

	member := &domain.Membership{
		SpaceID:     spaceID,
		UserID:      userID,
		Role:        domain.MemberRoleMember,
		VotingPower: domain.DefaultVotePower,
		JoinedAt:    s.now().UTC(),
	}
	if err := s.spaceRepo.AddMember(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *spaceService) Members(ctx context.Context, spaceID uuid.UUID) ([]*domain.Membership, error) {
	if _, err := s.spaceRepo.GetByID(ctx, spaceID); err != nil {
		return nil, err
	}
	return s.spaceRepo.ListMembers(ctx, spaceID)
}

// SetVotingPower lets a space admin change the weight a member's votes carry.
// Ballots already cast keep the power they were stored with until the member
// votes again.
func (s *spaceService) SetVotingPower(ctx context.Context, spaceID, adminID, userID uuid.UUID, power float64) error {
	if power <= 0 || math.IsNaN(power) || math.IsInf(power, 0) {
		return domain.NewValidationError("voting_power", "voting power must be a positive number")
	}

	admin, err := s.spaceRepo.GetMembership(ctx, spaceID, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotSpaceMember) {
			return domain.ErrForbidden
		}
		return err
	}
	if !admin.IsAdmin() {
		return domain.ErrForbidden
	}

	if _, err := s.spaceRepo.GetMembership(ctx, spaceID, userID); err != nil {
		return err
	}

	if err := s.spaceRepo.UpdateVotingPower(ctx, spaceID, userID, power); err != nil {
		return err
	}

	s.logger.Infow("voting power updated", "space_id", spaceID, "user_id", userID, "voting_power", power, "by", adminID)
	return nil
}
