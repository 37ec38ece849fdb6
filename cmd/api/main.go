package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/config"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/database"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/logging"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Sobe a API do painel de leads",
		RunE:  runServe,
	}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Backend do painel administrativo de leads",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.AddCommand(serve, &cobra.Command{
		Use:   "migrate",
		Short: "Aplica as migrations do Postgres",
		RunE:  runMigrate,
	})
	return root
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao iniciar logger: %w", err)
	}
	return cfg, logger, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	return serve(cmd.Context(), cfg, logger)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL não configurada")
	}

	db, err := database.NewDBConnection(cmd.Context(), cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("erro ao conectar no banco: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db); err != nil {
		return fmt.Errorf("erro ao aplicar migrations: %w", err)
	}
	logger.Info("migrations aplicadas")
	return nil
}
