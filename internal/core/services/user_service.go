package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type UserService struct {
	repo           ports.UserRepository
	googleVerifier ports.TokenVerifier
	googleClientID string
	logger         *zap.SugaredLogger
}

// NewUserService builds the user service. googleVerifier may be nil, in
// which case linking a Google account is rejected.
func NewUserService(repo ports.UserRepository, googleVerifier ports.TokenVerifier, googleClientID string, logger *zap.SugaredLogger) ports.UserService {
	return &UserService{
		repo:           repo,
		googleVerifier: googleVerifier,
		googleClientID: googleClientID,
		logger:         logger,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// LinkGoogle attaches the e-mail of a verified Google ID token to the user.
func (s *UserService) LinkGoogle(ctx context.Context, id uuid.UUID, credential string) (*domain.User, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, domain.NewValidationError("credential", "credential is required")
	}
	if s.googleVerifier == nil || s.googleClientID == "" {
		return nil, fmt.Errorf("google sign-in is not configured: %w", domain.ErrForbidden)
	}

	payload, err := s.googleVerifier.Verify(ctx, credential, s.googleClientID)
	if err != nil {
		return nil, domain.NewValidationError("credential", fmt.Sprintf("invalid google token: %v", err))
	}

	if err := s.repo.LinkEmail(ctx, id, payload.Email, payload.Name); err != nil {
		return nil, fmt.Errorf("failed to link google account: %w", err)
	}

	s.logger.Infow("google account linked", "user_id", id)
	return s.GetByID(ctx, id)
}

func (s *UserService) SetKYCVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.repo.SetKYCVerified(ctx, id, verified); err != nil {
		return fmt.Errorf("failed to update kyc status: %w", err)
	}
	s.logger.Infow("kyc status updated", "user_id", id, "verified", verified)
	return nil
}
