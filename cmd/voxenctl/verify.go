package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/voxen/internal/core/contenthash"
)

func verifyCommand() *cobra.Command {
	var (
		content  contentFlags
		expected string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a content hash against proposal content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			match, err := contenthash.Verify(content.title, content.description, content.options, expected)
			if err != nil {
				return err
			}
			if !match {
				return errors.New("content hash does not match")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "content hash matches")
			return nil
		},
	}
	content.register(cmd)
	cmd.Flags().StringVar(&expected, "expected", "", "hash to compare against")
	_ = cmd.MarkFlagRequired("expected")

	cmd.AddCommand(verifyChainCommand())
	return cmd
}

func verifyChainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chain <proposal-id>",
		Short: "Compare a stored proposal with the hash committed on chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			proposal, err := s.app().Proposals.VerifyOnChain(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !proposal.BlockchainVerified {
				return fmt.Errorf("proposal %s does not match its on-chain commitment", id)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "proposal %s matches its on-chain commitment\n", id)
			return nil
		},
	}
}
