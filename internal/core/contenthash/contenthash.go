// Package contenthash fingerprints proposal content so it can be compared
// with the commitment stored by the voting contract.
//
// The digest is keccak256 over the Solidity ABI encoding of
// (string title, string description, string[] options), the same bytes
// ethers' defaultAbiCoder.encode(["string","string","string[]"], ...) and
// Solidity's abi.encode produce.
package contenthash

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

var contentArguments = mustContentArguments()

func mustContentArguments() abi.Arguments {
	stringType, err := abi.NewType("string", "", nil)
	if err != nil {
		panic(err)
	}
	stringSliceType, err := abi.NewType("string[]", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{
		{Name: "title", Type: stringType},
		{Name: "description", Type: stringType},
		{Name: "options", Type: stringSliceType},
	}
}

// Encode returns the ABI encoding of the proposal content. A missing
// description must be passed as "".
func Encode(title, description string, options []string) ([]byte, error) {
	if options == nil {
		options = []string{}
	}
	encoded, err := contentArguments.Pack(title, description, options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode proposal content: %w", err)
	}
	return encoded, nil
}

// Generate returns the 0x-prefixed, lower-case hex keccak256 of the encoded
// content.
func Generate(title, description string, options []string) (string, error) {
	encoded, err := Encode(title, description, options)
	if err != nil {
		return "", err
	}
	return crypto.Keccak256Hash(encoded).Hex(), nil
}

// Verify reports whether the content hashes to expected. The comparison is
// case-insensitive and the 0x prefix on expected is optional.
func Verify(title, description string, options []string, expected string) (bool, error) {
	actual, err := Generate(title, description, options)
	if err != nil {
		return false, err
	}
	return Normalize(expected) == actual, nil
}

// Normalize lower-cases a hex hash and adds the 0x prefix.
func Normalize(hash string) string {
	hash = strings.ToLower(strings.TrimSpace(hash))
	if !strings.HasPrefix(hash, "0x") {
		hash = "0x" + hash
	}
	return hash
}
