package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func kycCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kyc",
		Short: "Manage identity verification of users",
	}
	cmd.AddCommand(kycSetCommand("approve", true), kycSetCommand("revoke", false))
	return cmd
}

func kycSetCommand(name string, verified bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <user-id>",
		Short: fmt.Sprintf("Set kyc_verified=%t for a user", verified),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return err
			}

			s, err := openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.app().Users.SetKYCVerified(cmd.Context(), id, verified); err != nil {
				return err
			}
			s.logger.Infow("kyc status updated", "user_id", id, "kyc_verified", verified)
			return nil
		},
	}
}
