package http

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/core/ports"
)

type CookieSettings struct {
	Domain     string
	SameSite   http.SameSite
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieSettings
	logger      *zap.SugaredLogger
}

func NewAuthHandler(authService ports.AuthService, cookies CookieSettings, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
		logger:      logger,
	}
}

type nonceResponse struct {
	WalletAddress string `json:"wallet_address"`
	Message       string `json:"message"`
}

// Nonce godoc
// @Summary      Issues a wallet login challenge
// @Description  Returns the message the wallet must sign with personal_sign. A new request replaces any pending challenge.
// @Tags         auth
// @Produce      json
// @Param        address query string true "Wallet address"
// @Success      200 {object} nonceResponse
// @Failure      400
// @Router       /auth/nonce [get]
func (h *AuthHandler) Nonce(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	message, err := h.authService.IssueNonce(r.Context(), address)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, nonceResponse{WalletAddress: address, Message: message})
}

type walletLoginRequest struct {
	WalletAddress string `json:"wallet_address"`
	Signature     string `json:"signature"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// WalletLogin godoc
// @Summary      Logs in with a signed wallet challenge
// @Description  Verifies the signature over the pending challenge and sets the access and refresh token cookies. Unknown wallets are registered.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200 {object} loginResponse
// @Failure      400
// @Failure      401
// @Router       /auth/wallet [post]
func (h *AuthHandler) WalletLogin(w http.ResponseWriter, r *http.Request) {
	var req walletLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Signature == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing signature", Field: "signature"})
		return
	}

	accessToken, refreshToken, err := h.authService.LoginWithWallet(r.Context(), req.WalletAddress, req.Signature)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.setAccessTokenCookie(w, accessToken)
	h.setRefreshTokenCookie(w, refreshToken)
	writeJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken})
}

// Refresh godoc
// @Summary      Refreshes the authenticated user's access token
// @Description  Creates a new access token cookie based on the refresh token. This cookie is used as authentication for `/api` calls.
// @Tags         auth
// @Accept       json
// @Success      200
// @Failure      401
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	accessToken, refreshToken, err := h.authService.RefreshAccessToken(r.Context(), cookie.Value)
	if err != nil {
		h.logger.Infow("refresh rejected", "error", err)
		h.expireCookies(w)
		writeMessage(w, http.StatusUnauthorized, "refresh failed")
		return
	}

	h.setAccessTokenCookie(w, accessToken)

	// If refresh token was rotated, update it too
	if refreshToken != "" && refreshToken != cookie.Value {
		h.setRefreshTokenCookie(w, refreshToken)
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary      Logs the authenticated user out
// @Description  Revokes the refresh token and clears both cookies
// @Tags         auth
// @Success      200
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err == nil && cookie.Value != "" {
		if err := h.authService.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warnw("failed to revoke refresh token", "error", err)
		}
	}

	h.expireCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) setAccessTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookies.SameSite,
		MaxAge:   int(h.cookies.AccessTTL.Seconds()),
	})
}

func (h *AuthHandler) setRefreshTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/auth",
		Domain:   h.cookies.Domain,
		HttpOnly: true,
		Secure:   true,
		SameSite: h.cookies.SameSite,
		MaxAge:   int(h.cookies.RefreshTTL.Seconds()),
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", MaxAge: -1, Path: "/", Domain: h.cookies.Domain})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", MaxAge: -1, Path: "/auth", Domain: h.cookies.Domain})
}
