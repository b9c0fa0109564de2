package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func recomputeCommand() *cobra.Command {
	var (
		all     bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "recompute [proposal-id]",
		Short: "Recompute proposal results from the stored votes",
		Long:  "Recompute the results of one proposal, or of every active proposal with --all.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass either a proposal id or --all")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			s, err := openSession(ctx, false)
			if err != nil {
				return err
			}
			defer s.Close()
			a := s.app()

			if all {
				s.logger.Infow("recomputing results of active proposals")
				if err := a.Summary.RecomputeAll(ctx); err != nil {
					return err
				}
				s.logger.Infow("recompute completed")
				return nil
			}

			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}
			proposal, err := a.Proposals.RecomputeResults(ctx, id)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"id":         proposal.ID,
				"results":    proposal.Results,
				"vote_count": proposal.VoteCount,
			})
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "recompute every active proposal")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "abort the run after this long")
	return cmd
}
