package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

type UserRepository interface {
	GetByWallet(ctx context.Context, walletAddress string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	LinkEmail(ctx context.Context, id uuid.UUID, email, name string) error
	SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool) error
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	LinkGoogle(ctx context.Context, id uuid.UUID, credential string) (*domain.User, error)
	SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool) error
}
