package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vncsmyrnk/voxen/internal/core/contenthash"
)

type contentFlags struct {
	title       string
	description string
	options     []string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "proposal title")
	cmd.Flags().StringVar(&f.description, "description", "", "proposal description")
	cmd.Flags().StringArrayVar(&f.options, "option", nil, "proposal option, repeat in order")
}

func hashCommand() *cobra.Command {
	var content contentFlags

	cmd := &cobra.Command{
		Use:   "hash",
		Short: "Print the content hash of a proposal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := contenthash.Generate(content.title, content.description, content.options)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	content.register(cmd)
	return cmd
}
