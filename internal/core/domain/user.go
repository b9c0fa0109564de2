package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `json:"id"`
	WalletAddress string     `json:"wallet_address"`
	Name          string     `json:"name"`
	Email         *string    `json:"email,omitempty"`
	KYCVerified   bool       `json:"kyc_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

type RefreshToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// WalletNonce is a one-time challenge a wallet signs to log in.
type WalletNonce struct {
	WalletAddress string    `json:"wallet_address"`
	Nonce         string    `json:"nonce"`
	ExpiresAt     time.Time `json:"expires_at"`
}
