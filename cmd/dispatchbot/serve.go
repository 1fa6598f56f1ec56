package main

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonny/dispatchbot/internal/adapter/inbound/interactions"
	"github.com/jonny/dispatchbot/internal/adapter/outbound/discord"
	"github.com/jonny/dispatchbot/internal/adapter/outbound/persistence/memory"
	"github.com/jonny/dispatchbot/internal/adapter/outbound/persistence/noop"
	"github.com/jonny/dispatchbot/internal/adapter/outbound/persistence/sqlite"
	"github.com/jonny/dispatchbot/internal/config"
	"github.com/jonny/dispatchbot/internal/domain/port/inbound"
	"github.com/jonny/dispatchbot/internal/domain/port/outbound"
	"github.com/jonny/dispatchbot/internal/domain/service"
	"github.com/jonny/dispatchbot/pkg/health"
	"github.com/jonny/dispatchbot/pkg/version"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactions endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	checker := health.NewChecker()

	// --- Audit trail ---
	var audits outbound.AuditRepository
	if cfg.Database.Enabled {
		store, err := sqlite.NewStore(ctx, sqliteConfig(cfg.Database.SQLite))
		if err != nil {
			return fmt.Errorf("opening sqlite store: %w", err)
		}
		defer store.Close()
		audits = sqlite.NewAuditRepo(store)
		checker.Register("database", store.Ping)
	} else {
		logger.Info("database disabled, audit entries are only logged")
		audits = noop.NewAuditRepo(logger)
	}

	// --- Discord REST ---
	client, err := discord.NewClient(discord.Config{
		BotToken: cfg.Discord.BotToken,
		AppID:    cfg.Discord.AppID,
		Timeout:  cfg.Discord.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("creating discord client: %w", err)
	}
	if cfg.Discord.BotToken == "" {
		logger.Warn("DISCORD_TOKEN not set, channel lookups will fail")
	}

	// --- Domain services ---
	router := service.NewRouter(audits, logger)
	router.Register("test", inbound.CommandHandlerFunc(service.Hello))
	router.Register("challenge", service.NewChallengeCommand(memory.NewGameStore(), logger))
	router.Register("download", service.NewDownloadCommand(service.DownloadConfig{
		URL:               cfg.Download.URL,
		AllowedCategoryID: cfg.Download.AllowedCategoryID,
	}, service.NewChannelAuthorizer(client), audits, logger))
	dispatcher := service.NewDispatcher(router, logger)

	// --- Interactions endpoint ---
	publicKey, err := cfg.Discord.PublicKeyBytes()
	if err != nil {
		return err
	}
	server := interactions.NewServer(interactions.ServerConfig{
		Port:            cfg.Server.Port,
		Path:            cfg.Server.Path,
		PublicKey:       ed25519.PublicKey(publicKey),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, interactions.NewHandler(dispatcher, logger), logger)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Start(gCtx)
	})

	if cfg.Server.MetricsPort > 0 {
		metricsMux := http.NewServeMux()
		metricsMux.HandleFunc("/healthz", checker.LivenessHandler())
		metricsMux.HandleFunc("/readyz", checker.ReadinessHandler())
		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
			Handler: metricsMux,
		}

		g.Go(func() error {
			logger.Info("starting metrics server", "port", cfg.Server.MetricsPort)
			errCh := make(chan error, 1)
			go func() {
				if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()
			select {
			case <-gCtx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				return metricsServer.Shutdown(shutdownCtx)
			case err := <-errCh:
				return err
			}
		})
	}

	logger.Info("dispatchbot started",
		"version", version.String(),
		"commands", router.Names(),
		"readinessChecks", checker.Names(),
	)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server exited with error: %w", err)
	}

	logger.Info("dispatchbot stopped")
	return nil
}

func sqliteConfig(c config.SQLiteConfig) sqlite.Config {
	return sqlite.Config{
		Path:              c.Path,
		MaxOpenConns:      c.MaxOpenConns,
		PragmaJournalMode: c.PragmaJournalMode,
		PragmaBusyTimeout: c.PragmaBusyTimeout,
	}
}
