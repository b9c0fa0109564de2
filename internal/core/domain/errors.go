package domain

import (
	"errors"
	"fmt"
)

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrSpaceNotFound     = errors.New("space not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrVoteNotFound      = errors.New("vote not found")
	ErrNotSpaceMember    = errors.New("user is not a member of this space")
	ErrAlreadyMember     = errors.New("user is already a member of this space")
	ErrForbidden         = errors.New("operation not allowed for this user")
	ErrKYCRequired       = errors.New("space requires a verified identity")
	ErrProposalNotActive = errors.New("proposal is not active")
	ErrVotingClosed      = errors.New("proposal is outside its voting window")
	ErrNotOnChain        = errors.New("proposal is not anchored on chain")
	ErrChainUnavailable  = errors.New("chain reader unavailable")
	ErrInvalidSignature  = errors.New("invalid wallet signature")
	ErrNonceNotFound     = errors.New("nonce not found or expired")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrValidation        = errors.New("validation failed")
	ErrInternal          = errors.New("internal server error")
)

// ValidationError reports a rejected input field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
