package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/auth"
	"github.com/junaidrashid-git/sunrise-cafe/config"
	"github.com/junaidrashid-git/sunrise-cafe/database"
	"github.com/junaidrashid-git/sunrise-cafe/events"
	"github.com/junaidrashid-git/sunrise-cafe/routes"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	StaticDir string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the web server until SIGINT or SIGTERM.

Migrates and seeds the database on start. Session revocation uses redis when
REDIS_ADDR is set and process memory otherwise. Orders are published to kafka
when KAFKA_BROKERS is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.StaticDir, "static", "static", "directory served under /static")

	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, opts *ServeOptions) error {
	cfg, err := loadConfig(rootOpts)
	if err != nil {
		return err
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	revoked, closeRevoked, err := revocationStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRevoked()

	hub := events.NewHub()
	publisher := events.Multi{hub}
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
		defer kafka.Close()
		publisher = append(publisher, kafka)
		slog.Info("Publishing orders to kafka", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaOrdersTopic)
	}

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.NewRouter(routes.Deps{
		DB:           db,
		Sessions:     auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, revoked),
		SecureCookie: cfg.SessionCookieSecure,
		CORSOrigins:  cfg.CORSOrigins,
		Publisher:    publisher,
		Hub:          hub,
		StaticDir:    opts.StaticDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func revocationStore(ctx context.Context, cfg config.Config) (auth.RevocationStore, func(), error) {
	if cfg.RedisAddr == "" {
		slog.Info("REDIS_ADDR not set, revoked sessions are kept in memory")
		return auth.NewMemoryRevocationStore(), func() {}, nil
	}
	rdb, err := database.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	return auth.NewRedisRevocationStore(rdb), func() { rdb.Close() }, nil
}
