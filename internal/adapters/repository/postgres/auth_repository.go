package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type AuthRepository struct {
	db *sql.DB
}

func NewAuthRepository(db *sql.DB) ports.AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, revoked)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, token.UserID, token.TokenHash, token.ExpiresAt, token.Revoked).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return wrap("store refresh token", err)
	}
	return nil
}

func (r *AuthRepository) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, revoked, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`
	token := &domain.RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.Revoked,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get refresh token", err)
	}
	return token, nil
}

func (r *AuthRepository) RevokeRefreshToken(ctx context.Context, id string) error {
	query := `UPDATE refresh_tokens SET revoked = true WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return wrap("revoke refresh token", err)
	}
	return nil
}

// StoreNonce keeps at most one pending nonce per wallet.
func (r *AuthRepository) StoreNonce(ctx context.Context, nonce *domain.WalletNonce) error {
	query := `
		INSERT INTO wallet_nonces (wallet_address, nonce, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_address) DO UPDATE SET nonce = EXCLUDED.nonce, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.ExecContext(ctx, query, nonce.WalletAddress, nonce.Nonce, nonce.ExpiresAt); err != nil {
		return wrap("store nonce", err)
	}
	return nil
}

func (r *AuthRepository) ConsumeNonce(ctx context.Context, walletAddress string) (*domain.WalletNonce, error) {
	query := `DELETE FROM wallet_nonces WHERE wallet_address = $1 RETURNING wallet_address, nonce, expires_at`
	nonce := &domain.WalletNonce{}
	err := r.db.QueryRowContext(ctx, query, walletAddress).Scan(&nonce.WalletAddress, &nonce.Nonce, &nonce.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("consume nonce", err)
	}
	return nonce, nil
}
