package ports

import (
	"context"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
)

type AuthRepository interface {
	StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string) error
	StoreNonce(ctx context.Context, nonce *domain.WalletNonce) error
	// ConsumeNonce deletes and returns the wallet's pending nonce, or nil
	// when none is pending.
	ConsumeNonce(ctx context.Context, walletAddress string) (*domain.WalletNonce, error)
}

type TokenPayload struct {
	Email string
	Name  string
}

// TokenVerifier validates a third-party identity token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string, clientID string) (*TokenPayload, error)
}

// SignatureVerifier recovers the wallet that signed message.
type SignatureVerifier interface {
	Verify(message, signature, walletAddress string) error
}

type AuthService interface {
	IssueNonce(ctx context.Context, walletAddress string) (string, error)
	LoginWithWallet(ctx context.Context, walletAddress, signature string) (string, string, error) // returns access_token, refresh_token, error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error)
	Logout(ctx context.Context, refreshToken string) error
}
