package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/config"
	"github.com/vncsmyrnk/voxen/internal/core/domain"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type AuthService struct {
	userRepo  ports.UserRepository
	authRepo  ports.AuthRepository
	signature ports.SignatureVerifier
	jwtSecret []byte
	settings  config.Auth
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewAuthService(
	userRepo ports.UserRepository,
	authRepo ports.AuthRepository,
	signature ports.SignatureVerifier,
	settings config.Auth,
	logger *zap.SugaredLogger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		authRepo:  authRepo,
		signature: signature,
		jwtSecret: []byte(settings.JWTSecret),
		settings:  settings,
		logger:    logger,
		now:       time.Now,
	}
}

// LoginMessage is the text a wallet signs to prove ownership.
func LoginMessage(walletAddress, nonce string) string {
	return fmt.Sprintf("Sign in to Voxen\n\nWallet: %s\nNonce: %s", walletAddress, nonce)
}

func normalizeWallet(walletAddress string) (string, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if !common.IsHexAddress(walletAddress) {
		return "", domain.NewValidationError("wallet_address", "invalid wallet address")
	}
	return strings.ToLower(common.HexToAddress(walletAddress).Hex()), nil
}

// IssueNonce stores a fresh challenge for the wallet, replacing any pending
// one, and returns the message the wallet must sign.
func (s *AuthService) IssueNonce(ctx context.Context, walletAddress string) (string, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return "", err
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	nonce := &domain.WalletNonce{
		WalletAddress: wallet,
		Nonce:         hex.EncodeToString(b),
		ExpiresAt:     s.now().Add(s.settings.NonceTTL),
	}
	if err := s.authRepo.StoreNonce(ctx, nonce); err != nil {
		return "", fmt.Errorf("failed to store nonce: %w", err)
	}

	return LoginMessage(wallet, nonce.Nonce), nil
}

func (s *AuthService) LoginWithWallet(ctx context.Context, walletAddress, signature string) (string, string, error) {
	wallet, err := normalizeWallet(walletAddress)
	if err != nil {
		return "", "", err
	}

	nonce, err := s.authRepo.ConsumeNonce(ctx, wallet)
	if err != nil {
		return "", "", fmt.Errorf("failed to consume nonce: %w", err)
	}
	if nonce == nil || nonce.ExpiresAt.Before(s.now()) {
		return "", "", domain.ErrNonceNotFound
	}

	if err := s.signature.Verify(LoginMessage(wallet, nonce.Nonce), signature, wallet); err != nil {
		s.logger.Infow("wallet signature rejected", "wallet_address", wallet, "error", err)
		return "", "", domain.ErrInvalidSignature
	}

	return s.login(ctx, wallet)
}

func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, string, error) {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return "", "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	if rtEntity == nil {
		return "", "", errors.New("refresh token not found")
	}

	if rtEntity.Revoked {
		return "", "", errors.New("refresh token revoked")
	}
	if rtEntity.ExpiresAt.Before(s.now()) {
		return "", "", errors.New("refresh token expired")
	}

	user, err := s.userRepo.GetByID(ctx, rtEntity.UserID)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := s.hashToken(refreshToken)

	rtEntity, err := s.authRepo.GetRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to get refresh token: %w", err)
	}
	if rtEntity == nil {
		return nil
	}

	return s.authRepo.RevokeRefreshToken(ctx, rtEntity.ID.String())
}

func (s *AuthService) login(ctx context.Context, wallet string) (string, string, error) {
	user, err := s.userRepo.GetByWallet(ctx, wallet)
	if err != nil {
		return "", "", fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		user = &domain.User{WalletAddress: wallet}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return "", "", fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Infow("user registered", "user_id", user.ID, "wallet_address", wallet)
	}

	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	rtEntity := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: s.now().Add(s.settings.RefreshTTL),
		Revoked:   false,
	}

	if err := s.authRepo.StoreRefreshToken(ctx, rtEntity); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"wallet": user.WalletAddress,
		"exp":    now.Add(s.settings.AccessTTL).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) generateRefreshToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
