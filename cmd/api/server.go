package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/config"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/export"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/cache"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/database"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/http/handlers"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/mail"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/queue"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/infra/worker"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("TIMEZONE inválido: %w", err)
	}

	health := handlers.NewHealthHandler(version)

	// 1. Repositórios
	var leadRepo entity.LeadRepositoryInterface
	if cfg.Database.URL != "" {
		db, err := database.NewDBConnection(ctx, cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("erro ao conectar no banco: %w", err)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("erro ao aplicar migrations: %w", err)
		}
		leadRepo = database.NewLeadRepository(db)
		health.Register("database", db.PingContext)
	} else {
		logger.Warn("DATABASE_URL vazia, usando store em memória")
		leadRepo = database.NewMemoryLeadRepository()
		health.Register("database", nil)
	}

	var layoutRepo entity.LayoutConfigRepositoryInterface
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("erro ao conectar no Redis: %w", err)
		}
		layoutRepo = cache.NewLayoutConfigRepository(rdb, cfg.Layout.Operator)
		health.Register("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		layoutRepo = database.NewMemoryLayoutConfigRepository(cfg.Layout.Operator)
		health.Register("redis", nil)
	}

	g, ctx := errgroup.WithContext(ctx)

	// 2. Eventos (opcional)
	var publisher usecase.LeadEventPublisher
	if cfg.AMQP.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQP.URL)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()

		consumerCh, err := rabbitMQ.Conn.Channel()
		if err != nil {
			return fmt.Errorf("falha ao abrir canal de consumo: %w", err)
		}

		publisher = queue.NewProducer(rabbitMQ.Ch)
		notifier := mail.NewEmailSender(
			cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.User, cfg.Mail.Password,
			cfg.Mail.From, cfg.Mail.NotifyTo,
		)
		consumer := queue.NewWorker(consumerCh, notifier, logger.Named("queue"))
		g.Go(func() error {
			return consumer.Start(ctx, queue.QueueName)
		})
		health.Register("rabbitmq", handlers.ConnectionCheck(rabbitMQ.IsClosed))
	} else {
		logger.Warn("AMQP_URL vazia, eventos de lead desativados")
		health.Register("rabbitmq", nil)
	}

	// 3. UseCases
	leadUC := usecase.NewLeadUseCase(leadRepo, publisher, logger.Named("leads"))
	reportUC := usecase.NewReportUseCase(leadRepo, export.NewEncoder(loc))
	layoutUC := usecase.NewLayoutConfigUseCase(layoutRepo, cfg.Layout.Operator)

	// 4. Router
	router := newRouter(routerDeps{
		Logger:      logger,
		CORSOrigins: cfg.HTTP.CORSAllowedOrigins,
		Leads:       handlers.NewLeadHandler(leadUC, logger, cfg.HTTP.RateLimitPerMinute),
		Validation:  handlers.NewValidationHandler(leadUC, logger),
		Reports:     handlers.NewReportHandler(reportUC, logger),
		Layout:      handlers.NewLayoutConfigHandler(layoutUC, logger),
		Health:      health,
	})

	// 5. Workers
	stats := worker.NewLeadStatsWorker(leadRepo, cfg.Stats.Interval, logger.Named("stats"))
	g.Go(func() error {
		stats.Start(ctx)
		return nil
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("servidor HTTP no ar", zap.String("addr", cfg.HTTP.Addr), zap.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("encerrando servidor HTTP")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
