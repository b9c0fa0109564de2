package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type summaryService struct {
	proposalRepo ports.ProposalRepository
	proposals    ports.ProposalService
	logger       *zap.SugaredLogger
}

func NewSummaryService(proposalRepo ports.ProposalRepository, proposals ports.ProposalService, logger *zap.SugaredLogger) ports.SummaryService {
	return &summaryService{
		proposalRepo: proposalRepo,
		proposals:    proposals,
		logger:       logger,
	}
}

// RecomputeAll refreshes the results of every active proposal. Every
// proposal is attempted; the returned error joins all failures.
func (s *summaryService) RecomputeAll(ctx context.Context) error {
	active, err := s.proposalRepo.ListByStatus(ctx, domain.ProposalStatusActive)
	if err != nil {
		return fmt.Errorf("failed to fetch active proposals: %w", err)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(active))

	for _, proposal := range active {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := s.proposals.RecomputeResults(ctx, id); err != nil {
				errChan <- fmt.Errorf("failed to recompute proposal %s: %w", id, err)
			}
		}(proposal.ID)
	}

	wg.Wait()
	close(errChan)

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
	}

	s.logger.Infow("recomputed active proposals", "count", len(active), "failed", len(errs))
	return errors.Join(errs...)
}
