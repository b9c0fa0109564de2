// Package app assembles repositories, services and the HTTP router from
// configuration. Both binaries build on it.
package app

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	handler "github.com/vncsmyrnk/voxen/internal/adapters/handler/http"
	"github.com/vncsmyrnk/voxen/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/voxen/internal/adapters/wallet"
	"github.com/vncsmyrnk/voxen/internal/config"
	"github.com/vncsmyrnk/voxen/internal/core/ports"
	"github.com/vncsmyrnk/voxen/internal/core/services"
	"github.com/vncsmyrnk/voxen/internal/metrics"
)

type Deps struct {
	DB *sql.DB
	// Chain is optional. Leave it nil when no RPC endpoint is configured.
	Chain ports.ChainReader
	// Google is optional. Without it linking a Google account is refused.
	Google   ports.TokenVerifier
	Registry *prometheus.Registry
	Logger   *zap.SugaredLogger
}

type App struct {
	Auth      *services.AuthService
	Users     ports.UserService
	Spaces    ports.SpaceService
	Proposals ports.ProposalService
	Votes     ports.VoteService
	Summary   ports.SummaryService
	Metrics   *metrics.Metrics

	cfg  config.Config
	deps Deps
}

func New(cfg config.Config, deps Deps) *App {
	var m *metrics.Metrics
	if deps.Registry != nil {
		m = metrics.New(deps.Registry)
	}

	userRepo := postgres.NewUserRepository(deps.DB)
	authRepo := postgres.NewAuthRepository(deps.DB)
	spaceRepo := postgres.NewSpaceRepository(deps.DB)
	proposalRepo := postgres.NewProposalRepository(deps.DB)
	voteRepo := postgres.NewVoteRepository(deps.DB)

	paging := services.Paging{
		DefaultLimit: cfg.Voting.DefaultPageSize,
		MaxLimit:     cfg.Voting.MaxPageSize,
	}

	proposals := services.NewProposalService(proposalRepo, voteRepo, spaceRepo, deps.Chain, paging, m, deps.Logger)

	return &App{
		Auth:      services.NewAuthService(userRepo, authRepo, wallet.NewVerifier(), cfg.Auth, deps.Logger),
		Users:     services.NewUserService(userRepo, deps.Google, cfg.Auth.GoogleClientID, deps.Logger),
		Spaces:    services.NewSpaceService(spaceRepo, deps.Logger),
		Proposals: proposals,
		Votes: services.NewVoteService(proposalRepo, voteRepo, spaceRepo, userRepo, proposals, paging,
			cfg.Voting.TrustClientVotePower, m, deps.Logger),
		Summary: services.NewSummaryService(proposalRepo, proposals, deps.Logger),
		Metrics: m,
		cfg:     cfg,
		deps:    deps,
	}
}

// Handler returns the HTTP API.
func (a *App) Handler() http.Handler {
	logger := a.deps.Logger
	return handler.NewHandler(handler.Handlers{
		Auth: handler.NewAuthHandler(a.Auth, handler.CookieSettings{
			Domain:     a.cfg.HTTP.CookieDomain,
			SameSite:   a.cfg.HTTP.SameSite(),
			AccessTTL:  a.cfg.Auth.AccessTTL,
			RefreshTTL: a.cfg.Auth.RefreshTTL,
		}, logger),
		User:     handler.NewUserHandler(a.Users, logger),
		Space:    handler.NewSpaceHandler(a.Spaces, logger),
		Proposal: handler.NewProposalHandler(a.Proposals, logger),
		Vote:     handler.NewVoteHandler(a.Votes, logger),
	}, handler.RouterOptions{
		JWTSecret:      []byte(a.cfg.Auth.JWTSecret),
		AllowedOrigins: a.cfg.HTTP.AllowedOrigins,
		Registry:       a.deps.Registry,
		Metrics:        a.Metrics,
		Ping:           a.deps.DB.PingContext,
		Logger:         logger,
	})
}
