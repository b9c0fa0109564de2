package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/metrics"
)

type Handlers struct {
	Auth     *AuthHandler
	User     *UserHandler
	Space    *SpaceHandler
	Proposal *ProposalHandler
	Vote     *VoteHandler
}

type RouterOptions struct {
	JWTSecret      []byte
	AllowedOrigins []string
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	// Ping reports whether the store is reachable. Nil always reports healthy.
	Ping   func(ctx context.Context) error
	Logger *zap.SugaredLogger
}

func NewHandler(h Handlers, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(opts.Logger, opts.Metrics))
	r.Use(CORS(opts.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.Ping != nil {
			if err := opts.Ping(r.Context()); err != nil {
				opts.Logger.Warnw("health check failed", "error", err)
				writeMessage(w, http.StatusServiceUnavailable, "database unreachable")
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.Get("/nonce", h.Auth.Nonce)
		r.Post("/wallet", h.Auth.WalletLogin)
		r.Post("/refresh", h.Auth.Refresh)
		r.Post("/logout", h.Auth.Logout)
	})

	authenticate := Authenticate(opts.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Get("/spaces/{id}", h.Space.Get)
			r.Get("/spaces/{id}/members", h.Space.Members)
			r.Get("/spaces/{id}/proposals", h.Proposal.List)
			r.Get("/proposals/{id}", h.Proposal.Get)
			r.Get("/proposals/{id}/votes", h.Vote.List)
			r.Post("/content-hash", h.Proposal.GenerateHash)
			r.Post("/content-hash/verify", h.Proposal.VerifyHash)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/me", h.User.GetMe)
			r.Post("/me/social/google", h.User.LinkGoogle)

			r.Post("/spaces", h.Space.Create)
			r.Post("/spaces/{id}/join", h.Space.Join)
			r.Put("/spaces/{id}/members/{userID}", h.Space.SetVotingPower)
			r.Post("/spaces/{id}/proposals", h.Proposal.Create)

			r.Patch("/proposals/{id}/status", h.Proposal.UpdateStatus)
			r.Post("/proposals/{id}/votes", h.Vote.Cast)
			r.Get("/proposals/{id}/my-vote", h.Vote.GetMine)
			r.Post("/proposals/{id}/recompute", h.Proposal.Recompute)
			r.Post("/proposals/{id}/verify-chain", h.Proposal.VerifyChain)
		})
	})

	return r
}
