// Package ethereum reads proposal commitments from the voting contract over
// JSON-RPC.
package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

const votingContractABI = `[{
	"name": "proposalContentHash",
	"type": "function",
	"stateMutability": "view",
	"inputs": [{"name": "proposalId", "type": "uint256"}],
	"outputs": [{"name": "", "type": "bytes32"}]
}]`

const contentHashMethod = "proposalContentHash"

// ContractCaller is the subset of ethclient.Client the reader needs.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type Reader struct {
	client ContractCaller
	abi    abi.ABI
	close  func()
}

func NewReader(client ContractCaller) (*Reader, error) {
	parsed, err := abi.JSON(strings.NewReader(votingContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse voting contract abi: %w", err)
	}
	return &Reader{client: client, abi: parsed, close: func() {}}, nil
}

// Dial connects to the RPC endpoint, retrying with a Fibonacci backoff.
func Dial(ctx context.Context, rpcURL string, attempts uint, logger *zap.SugaredLogger) (*Reader, error) {
	if attempts == 0 {
		attempts = 1
	}

	var client *ethclient.Client
	action := func(attempt uint) error {
		var err error
		client, err = ethclient.DialContext(ctx, rpcURL)
		if err != nil {
			logger.Warnw("chain rpc not reachable", "attempt", attempt+1, "error", err)
			return err
		}
		return nil
	}
	if err := retry.Retry(action, strategy.Limit(attempts), strategy.Backoff(backoff.Fibonacci(time.Second))); err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}

	reader, err := NewReader(client)
	if err != nil {
		client.Close()
		return nil, err
	}
	reader.close = client.Close
	return reader, nil
}

func (r *Reader) Close() {
	r.close()
}

// ProposalContentHash returns the 0x-prefixed content hash the contract
// stores for proposalID.
func (r *Reader) ProposalContentHash(ctx context.Context, contractAddress string, proposalID int64) (string, error) {
	if !common.IsHexAddress(contractAddress) {
		return "", fmt.Errorf("invalid contract address %q", contractAddress)
	}
	if proposalID < 0 {
		return "", fmt.Errorf("invalid proposal id %d", proposalID)
	}

	data, err := r.abi.Pack(contentHashMethod, big.NewInt(proposalID))
	if err != nil {
		return "", fmt.Errorf("failed to pack call: %w", err)
	}

	to := common.HexToAddress(contractAddress)
	out, err := r.client.CallContract(ctx, ethereum.CallMsg{To: &to, Data: data}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", contentHashMethod, err)
	}

	values, err := r.abi.Unpack(contentHashMethod, out)
	if err != nil {
		return "", fmt.Errorf("failed to unpack %s result: %w", contentHashMethod, err)
	}
	if len(values) != 1 {
		return "", fmt.Errorf("unexpected %s result length %d", contentHashMethod, len(values))
	}
	hash, ok := values[0].([32]byte)
	if !ok {
		return "", fmt.Errorf("unexpected %s result type %T", contentHashMethod, values[0])
	}
	return common.Hash(hash).Hex(), nil
}
