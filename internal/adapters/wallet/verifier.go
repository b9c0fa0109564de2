// Package wallet checks that a login message was signed by the wallet that
// claims to own it.
package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

var ErrSignerMismatch = errors.New("signature was not produced by the wallet")

type Verifier struct{}

func NewVerifier() ports.SignatureVerifier {
	return Verifier{}
}

// Verify recovers the signer of an EIP-191 personal_sign signature over
// message and compares it with walletAddress.
func (Verifier) Verify(message, signature, walletAddress string) error {
	sig, err := hexutil.Decode(strings.TrimSpace(signature))
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return fmt.Errorf("signature must be %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	// Wallets report the recovery id as 27/28.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return fmt.Errorf("failed to recover signer: %w", err)
	}

	if !strings.EqualFold(crypto.PubkeyToAddress(*pub).Hex(), walletAddress) {
		return ErrSignerMismatch
	}
	return nil
}
