package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

type SpaceRepository interface {
	// Create stores the space and its creator's admin membership together.
	Create(ctx context.Context, space *domain.Space, owner *domain.Membership) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Space, error)
	AddMember(ctx context.Context, member *domain.Membership) error
	GetMembership(ctx context.Context, spaceID, userID uuid.UUID) (*domain.Membership, error)
	ListMembers(ctx context.Context, spaceID uuid.UUID) ([]*domain.Membership, error)
	UpdateVotingPower(ctx context.Context, spaceID, userID uuid.UUID, power float64) error
}

type CreateSpaceInput struct {
	Name        string
	Description string
	CreatorID   uuid.UUID
	RequiresKYC bool
}

type SpaceService interface {
	Create(ctx context.Context, input CreateSpaceInput) (*domain.Space, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Space, error)
	Join(ctx context.Context, spaceID, userID uuid.UUID) (*domain.Membership, error)
	Members(ctx context.Context, spaceID uuid.UUID) ([]*domain.Membership, error)
	SetVotingPower(ctx context.Context, spaceID, adminID, userID uuid.UUID, power float64) error
}
