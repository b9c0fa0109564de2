package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voxen/internal/core/contenthash"
)

func execute(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	want, err := contenthash.Generate("Budget", "Q3 budget", []string{"Yes", "No"})
	require.NoError(t, err)

	out, err := execute(hashCommand(), "--title", "Budget", "--description", "Q3 budget", "--option", "Yes", "--option", "No")
	require.NoError(t, err)
	assert.Equal(t, want, strings.TrimSpace(out))
}

func TestVerifyCommand(t *testing.T) {
	hash, err := contenthash.Generate("Budget", "", []string{"Yes", "No"})
	require.NoError(t, err)

	out, err := execute(verifyCommand(), "--title", "Budget", "--option", "Yes", "--option", "No", "--expected", strings.ToUpper(hash[2:]))
	require.NoError(t, err)
	assert.Contains(t, out, "matches")

	_, err = execute(verifyCommand(), "--title", "Budget", "--option", "No", "--option", "Yes", "--expected", hash)
	assert.EqualError(t, err, "content hash does not match")
}

func TestRecomputeCommand_RequiresOneTarget(t *testing.T) {
	_, err := execute(recomputeCommand())
	assert.EqualError(t, err, "pass either a proposal id or --all")

	_, err = execute(recomputeCommand(), "--all", "3f0c1c2e-8f57-4c39-9a58-0d1f2a7f9b10")
	assert.EqualError(t, err, "pass either a proposal id or --all")
}
