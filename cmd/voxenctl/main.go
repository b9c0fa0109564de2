// Command voxenctl runs operator tasks against the Voxen database: schema
// migrations, result recomputation, content hashing and KYC approval.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/adapters/chain/ethereum"
	"github.com/vncsmyrnk/voxen/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/voxen/internal/app"
	"github.com/vncsmyrnk/voxen/internal/config"
	"github.com/vncsmyrnk/voxen/internal/logging"
)

const programName = "voxenctl"

var globalFlags = struct {
	debug bool
}{}

// session holds what every database-backed command needs.
type session struct {
	cfg    config.Config
	logger *zap.SugaredLogger
	db     *sql.DB
	chain  *ethereum.Reader
}

func openSession(ctx context.Context, withChain bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if globalFlags.debug {
		cfg.Logger.Level = "debug"
	}

	logger, err := logging.New(cfg.App, cfg.Logger)
	if err != nil {
		return nil, err
	}
	logger = logger.With("component", programName)

	db, err := postgres.Open(ctx, cfg.DB.ConnString(), cfg.DB.ConnectAttempts, logger)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, db: db}
	if withChain && cfg.Chain.RPCURL != "" {
		s.chain, err = ethereum.Dial(ctx, cfg.Chain.RPCURL, cfg.Chain.DialAttempts, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	return s, nil
}

func (s *session) app() *app.App {
	deps := app.Deps{DB: s.db, Logger: s.logger}
	if s.chain != nil {
		deps.Chain = s.chain
	}
	return app.New(s.cfg, deps)
}

func (s *session) Close() {
	if s.chain != nil {
		s.chain.Close()
	}
	s.db.Close()
	_ = s.logger.Sync()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           programName,
		Short:         "Operator tool for the Voxen voting service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.AddCommand(
		migrateCommand(),
		recomputeCommand(),
		hashCommand(),
		verifyCommand(),
		kycCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
