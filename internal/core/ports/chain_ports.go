package ports

import "context"

// ChainReader reads proposal commitments from the voting contract.
type ChainReader interface {
	ProposalContentHash(ctx context.Context, contractAddress string, proposalID int64) (string, error)
}
